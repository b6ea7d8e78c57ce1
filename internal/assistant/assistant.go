// Package assistant wires the budget question pipeline end to end: hints and
// synonyms feed the router, the validated plan runs against the aggregate
// cache, and the facts capsule feeds one final prose call.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/compute"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/facts"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/router"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/llm"
)

// Reply is what one question produces: the prose answer plus the structured
// intermediates for clients that want to render numbers directly.
type Reply struct {
	Answer  string           `json:"answer"`
	Plan    *taxonomy.Plan   `json:"plan"`
	Results []compute.Result `json:"results"`
	Capsule *facts.Capsule   `json:"facts"`
}

// Assistant runs the full query pipeline for one configured model provider.
type Assistant struct {
	router    *router.Router
	completer llm.Completer
	log       zerolog.Logger
}

// New builds an assistant. completer may be nil; routing then always uses the
// deterministic fallback and answers are rendered locally.
func New(completer llm.Completer, table *synonyms.Table, log zerolog.Logger) *Assistant {
	resolver := synonyms.NewResolver(table)
	return &Assistant{
		router:    router.New(completer, resolver, log),
		completer: completer,
		log:       log,
	}
}

// Ask answers one question against the session's cache. Nothing here is
// fatal: every failure path ends in a locally rendered best-effort answer.
func (a *Assistant) Ask(ctx context.Context, sess *router.Session, query string) (*Reply, error) {
	if sess == nil || sess.Cache == nil {
		return nil, fmt.Errorf("assistant.Ask: no aggregate cache in session")
	}

	plan, _ := a.router.Route(ctx, sess, query)
	results := compute.Execute(plan.Operations, sess.Cache, a.log)
	capsule := facts.Build(plan, results, sess.Cache)

	reply := &Reply{
		Plan:    plan,
		Results: results,
		Capsule: capsule,
	}
	reply.Answer = a.prose(ctx, query, capsule)
	return reply, nil
}

// prose makes the final model call over the facts capsule, falling back to a
// locally rendered answer when the model is unavailable.
func (a *Assistant) prose(ctx context.Context, query string, capsule *facts.Capsule) string {
	local := renderLocalAnswer(capsule)
	if a.completer == nil {
		return local
	}

	capsuleJSON, err := json.MarshalIndent(capsule, "", "  ")
	if err != nil {
		return local
	}

	var b strings.Builder
	b.WriteString("You are a Polish household budget assistant. Answer the user's question in Polish,\n")
	b.WriteString("in 2-4 sentences, using ONLY the numbers in the facts below. Never invent values.\n")
	b.WriteString("If a result is marked notFound, say the data is missing instead of quoting numbers.\n\n")
	b.WriteString("Facts:\n")
	b.Write(capsuleJSON)

	answer, err := a.completer.Complete(ctx, b.String(), query)
	if err != nil {
		a.log.Warn().Err(err).Msg("Prose call failed, using local answer")
		return local
	}
	return strings.TrimSpace(answer)
}

// renderLocalAnswer produces a plain answer straight from the capsule when no
// model is reachable.
func renderLocalAnswer(capsule *facts.Capsule) string {
	if capsule.Derived.Answer != "" {
		return capsule.Derived.Answer
	}
	for _, res := range capsule.Results {
		if !res.Success {
			continue
		}
		if res.NotFound {
			return "Brak danych dla tego zapytania: " + res.Message
		}
		switch data := res.Data.(type) {
		case *compute.SumResult:
			if data.Average > 0 {
				return fmt.Sprintf("Średnio miesięcznie: %.2f zł (łącznie %.2f zł).", data.Average, data.Total)
			}
			return fmt.Sprintf("Suma wydatków: %.2f zł.", data.Total)
		case *compute.BreakdownResult:
			return fmt.Sprintf("Łącznie %.2f zł; najwięcej w %s (%.2f zł), najmniej w %s (%.2f zł).",
				data.Stats.Total, data.Stats.Max.Period, data.Stats.Max.Value,
				data.Stats.Min.Period, data.Stats.Min.Value)
		case *compute.TopResult:
			if len(data.Items) > 0 {
				return fmt.Sprintf("Największa pozycja: %s (%.2f zł).", data.Items[0].Name, data.Items[0].Total)
			}
		case *compute.SummaryResult:
			return fmt.Sprintf("Wydatki: %.2f zł, przychody: %.2f zł w %d miesiącach.",
				data.TotalExpenses, data.TotalIncome, data.Months)
		case *compute.BalanceResult:
			return fmt.Sprintf("Bilans: %.2f zł (przychody %.2f zł, wydatki %.2f zł).",
				data.Balance, data.Income, data.Expenses)
		}
	}
	return "Nie udało się policzyć odpowiedzi dla tego pytania."
}
