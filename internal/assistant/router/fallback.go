package router

import (
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
)

// FallbackConfidence is the fixed mid-level score signalling "best guess".
const FallbackConfidence = 0.55

// fallback builds a routing plan purely from local hints using the fixed
// shape-to-route-to-function decision table. It always succeeds.
func (r *Router) fallback(hints Hints) *taxonomy.Plan {
	shape := hints.Shape

	route, ok := taxonomy.RouteForShape(shape)
	if !ok {
		route = taxonomy.RouteSummary
	}
	fn, ok := taxonomy.FunctionForShape(shape)
	if !ok {
		fn = taxonomy.FuncGetSummary
	}

	// SUM-shaped queries get a more specific function when the intent
	// keywords say so.
	if shape == taxonomy.ShapeSum {
		intents := hints.Synonyms.Intents
		switch {
		case synonyms.HasIntent(intents, synonyms.IntentAnomaly):
			route, fn = taxonomy.RouteAnomaly, taxonomy.FuncGetAnomalies
		case synonyms.HasIntent(intents, synonyms.IntentShare):
			route, fn = taxonomy.RouteShare, taxonomy.FuncCategoryShare
		case synonyms.HasIntent(intents, synonyms.IntentAverage):
			fn = taxonomy.FuncAverageExpense
		}
	}

	// A question with no topic and no numeric intent is not worth a compute
	// route beyond the summary.
	if shape == taxonomy.ShapeGeneral && !hints.LooksGeneral {
		route = taxonomy.RouteSummary
	}

	category, subcategory := bestTopic(hints.Synonyms)

	// Shape-specific routes need a taxonomy target. Without one the plan
	// collapses to the summary route, or to general for conversational
	// questions.
	if category == "" && subcategory == "" {
		if hints.LooksGeneral {
			route, fn = taxonomy.RouteGeneral, taxonomy.FuncGetSummary
		} else {
			route, fn = taxonomy.RouteSummary, taxonomy.FuncGetSummary
		}
	}

	op := taxonomy.Operation{
		Function:    fn,
		Category:    category,
		Subcategory: subcategory,
	}
	plan := &taxonomy.Plan{
		Intent:      "fallback interpretation from local hints",
		Shape:       shape,
		Route:       route,
		Category:    category,
		Subcategory: subcategory,
		Confidence:  FallbackConfidence,
		Operations:  []taxonomy.Operation{op},
	}

	if p := hints.Synonyms.Period; p != nil {
		plan.PeriodFrom, plan.PeriodTo = p.From, p.To
		plan.Operations[0].PeriodFrom = p.From
		plan.Operations[0].PeriodTo = p.To
	}
	return plan
}

// bestTopic picks the strongest taxonomy attribution from the synonym hits:
// the top subcategory candidate wins over a bare category match.
func bestTopic(resolved synonyms.Result) (category, subcategory string) {
	if len(resolved.Subcategories) > 0 {
		best := resolved.Subcategories[0]
		return best.Category, best.OfficialName
	}
	if len(resolved.Categories) > 0 {
		return resolved.Categories[0].OfficialName, ""
	}
	return "", ""
}
