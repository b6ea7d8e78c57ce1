// Package router turns a natural-language budget question into a validated
// routing plan: local hint collection, one model interpretation call, taxonomy
// validation, at most one repair call, and a deterministic fallback that
// always succeeds.
package router

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/llm"
)

// Session carries the per-conversation state that the browser predecessor
// kept in module-level variables. Passing it explicitly removes the race
// between overlapping invocations.
type Session struct {
	Cache    *cache.Cache
	LastPlan *taxonomy.Plan

	repairAttempted bool
}

// NewSession starts a session over a freshly built aggregate cache.
func NewSession(c *cache.Cache) *Session {
	return &Session{Cache: c}
}

// Router orchestrates the interpretation pipeline.
type Router struct {
	completer llm.Completer
	resolver  *synonyms.Resolver
	validator *taxonomy.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// New creates a router. completer may be nil, in which case every query goes
// straight to the deterministic fallback.
func New(completer llm.Completer, resolver *synonyms.Resolver, log zerolog.Logger) *Router {
	return &Router{
		completer: completer,
		resolver:  resolver,
		validator: taxonomy.NewValidator(log),
		log:       log,
		now:       time.Now,
	}
}

// Route runs the full pipeline for one query. It never fails: every error
// path terminates in the deterministic fallback plan. The returned plan is
// also recorded on the session.
func (r *Router) Route(ctx context.Context, sess *Session, query string) (*taxonomy.Plan, Hints) {
	// New query: the repair budget resets.
	sess.repairAttempted = false

	hints := r.collectHints(query, r.now())

	plan := r.interpret(ctx, sess, query, hints)
	if plan == nil {
		plan = r.fallback(hints)
		r.log.Info().Str("route", string(plan.Route)).Msg("Using deterministic fallback plan")
	}

	sess.LastPlan = plan
	return plan, hints
}

// interpret performs the primary model call, validation, and the single
// conditional repair call. A nil return means "fall back".
func (r *Router) interpret(ctx context.Context, sess *Session, query string, hints Hints) *taxonomy.Plan {
	if r.completer == nil {
		return nil
	}

	plan := r.askForPlan(ctx, interpretationPrompt(hints), query)
	if plan == nil {
		return nil
	}

	result := r.validator.Validate(plan)
	if result.Valid {
		return result.Plan
	}
	r.log.Warn().Strs("errors", result.Errors).Msg("Routing plan failed validation")

	if sess.repairAttempted {
		return nil
	}
	sess.repairAttempted = true

	repaired := r.askForPlan(ctx, repairPrompt(result.Plan, result.Errors), query)
	if repaired == nil {
		return nil
	}
	repairResult := r.validator.Validate(repaired)
	if !repairResult.Valid {
		// Repair is attempted at most once; no further retries.
		r.log.Warn().Strs("errors", repairResult.Errors).Msg("Repaired plan still invalid, abandoning repair")
		return nil
	}
	return repairResult.Plan
}

// askForPlan makes one model round trip and parses the reply into a plan.
// Network failures, empty replies and JSON-shape errors are all recoverable:
// they log and return nil.
func (r *Router) askForPlan(ctx context.Context, systemPrompt, query string) *taxonomy.Plan {
	reply, err := r.completer.Complete(ctx, systemPrompt, query)
	if err != nil {
		r.log.Warn().Err(err).Msg("Model call failed")
		return nil
	}

	clean := llm.CleanJSONObject(reply)
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		r.log.Warn().Err(err).Str("reply", truncateForLog(reply)).Msg("Model reply is not valid JSON")
		return nil
	}

	plan, err := taxonomy.PlanFromRaw(raw)
	if err != nil {
		r.log.Warn().Err(err).Msg("Model reply has wrong plan shape")
		return nil
	}
	return plan
}

func truncateForLog(s string) string {
	const maxLen = 300
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
