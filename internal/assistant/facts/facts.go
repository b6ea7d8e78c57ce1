// Package facts folds routing metadata and compute results into the single
// capsule handed to the prose-generating model call. Pure aggregation: no
// network, no storage.
package facts

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/compute"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
)

// Routing is the slice of plan metadata the prose call needs.
type Routing struct {
	Intent      string         `json:"intent"`
	Shape       taxonomy.Shape `json:"shape"`
	Route       taxonomy.Route `json:"route"`
	Category    string         `json:"category,omitempty"`
	Subcategory string         `json:"subcategory,omitempty"`
	PeriodFrom  string         `json:"period_from,omitempty"`
	PeriodTo    string         `json:"period_to,omitempty"`
	Confidence  float64        `json:"confidence"`
}

// Derived holds metrics computed from the results, notably ready-made answer
// strings for time-anchored max/min questions.
type Derived struct {
	Answer    string               `json:"answer,omitempty"`
	MaxPeriod *compute.PeriodValue `json:"max_period,omitempty"`
	MinPeriod *compute.PeriodValue `json:"min_period,omitempty"`
}

// Context describes the data the cache actually covers, independent of the
// question asked.
type Context struct {
	PeriodFrom   string `json:"period_from,omitempty"`
	PeriodTo     string `json:"period_to,omitempty"`
	Months       int    `json:"months"`
	OverallTrend string `json:"overall_trend,omitempty"`
}

// Capsule is the complete facts bundle. It is built once per query and
// discarded after the prose call.
type Capsule struct {
	Routing Routing          `json:"routing"`
	Results []compute.Result `json:"results"`
	Derived Derived          `json:"derived"`
	Context Context          `json:"context"`
}

// Build assembles the capsule from a validated plan, its compute results and
// the cache the results came from.
func Build(plan *taxonomy.Plan, results []compute.Result, c *cache.Cache) *Capsule {
	capsule := &Capsule{
		Routing: Routing{
			Intent:      plan.Intent,
			Shape:       plan.Shape,
			Route:       plan.Route,
			Category:    plan.Category,
			Subcategory: plan.Subcategory,
			PeriodFrom:  plan.PeriodFrom,
			PeriodTo:    plan.PeriodTo,
			Confidence:  plan.Confidence,
		},
		Results: results,
	}

	capsule.Derived = deriveAnswers(plan, results)
	capsule.Context = buildContext(c)
	return capsule
}

// deriveAnswers extracts max/min facts for time-anchored questions from the
// first successful breakdown result.
func deriveAnswers(plan *taxonomy.Plan, results []compute.Result) Derived {
	derived := Derived{}
	if plan.Shape != taxonomy.ShapeMaxInTime && plan.Shape != taxonomy.ShapeMinInTime {
		return derived
	}

	for _, res := range results {
		if !res.Success || res.NotFound {
			continue
		}
		breakdown, ok := res.Data.(*compute.BreakdownResult)
		if !ok || len(breakdown.Breakdown) == 0 {
			continue
		}
		stats := compute.DeriveBreakdownStats(breakdown.Breakdown)
		derived.MaxPeriod = &stats.Max
		derived.MinPeriod = &stats.Min

		subject := plan.Category
		if plan.Subcategory != "" {
			subject = plan.Subcategory
		}
		if plan.Shape == taxonomy.ShapeMaxInTime {
			derived.Answer = answerLine("Najwięcej", subject, stats.Max)
		} else {
			derived.Answer = answerLine("Najmniej", subject, stats.Min)
		}
		break
	}
	return derived
}

func answerLine(prefix, subject string, pv compute.PeriodValue) string {
	if subject == "" {
		return fmt.Sprintf("%s wydano w %s: %.2f zł", prefix, pv.Period, pv.Value)
	}
	return fmt.Sprintf("%s na %s wydano w %s: %.2f zł", prefix, subject, pv.Period, pv.Value)
}

// buildContext summarizes the available period range and the prior overall
// spending trend.
func buildContext(c *cache.Cache) Context {
	ctx := Context{}
	if c == nil {
		return ctx
	}
	ctx.PeriodFrom = c.From
	ctx.PeriodTo = c.To
	ctx.Months = len(c.Months)

	trend := compute.Execute(
		[]taxonomy.Operation{{Function: taxonomy.FuncTrendAnalysis}},
		c, zerolog.Nop(),
	)
	if len(trend) == 1 && trend[0].Success && !trend[0].NotFound {
		if data, ok := trend[0].Data.(*compute.TrendResult); ok {
			ctx.OverallTrend = data.Direction
		}
	}
	return ctx
}
