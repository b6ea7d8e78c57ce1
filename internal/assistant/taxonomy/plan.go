package taxonomy

import (
	"fmt"
	"strings"
)

// Operation is one compute request inside a routing plan: a whitelisted
// function name plus its parameter bag.
type Operation struct {
	Function    string  `json:"function"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	PeriodFrom  string  `json:"period_from,omitempty"`
	PeriodTo    string  `json:"period_to,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	PeriodA     string  `json:"period_a,omitempty"`
	PeriodB     string  `json:"period_b,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// Plan is the structured interpretation of a user query, produced either by
// the model or by the deterministic fallback. Empty strings mean "absent";
// empty periods mean "no constraint". The validator mutates a plan in place.
type Plan struct {
	Intent      string      `json:"intent"`
	Shape       Shape       `json:"shape"`
	Route       Route       `json:"route"`
	Operations  []Operation `json:"operations"`
	Category    string      `json:"canonical_category,omitempty"`
	Subcategory string      `json:"canonical_subcategory,omitempty"`
	PeriodFrom  string      `json:"period_from,omitempty"`
	PeriodTo    string      `json:"period_to,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// PlanFromRaw builds a Plan from the generic JSON object a model returned.
// Field presence is never trusted; every field goes through a typed extractor
// and missing fields simply stay zero. Shape defaults to GENERAL so a plan is
// always routable by the validator.
func PlanFromRaw(raw map[string]interface{}) (*Plan, error) {
	if raw == nil {
		return nil, fmt.Errorf("PlanFromRaw: nil object")
	}

	plan := &Plan{
		Intent:      rawString(raw, "intent"),
		Category:    rawString(raw, "canonical_category"),
		Subcategory: rawString(raw, "canonical_subcategory"),
		PeriodFrom:  rawString(raw, "period_from"),
		PeriodTo:    rawString(raw, "period_to"),
		Confidence:  rawFloat(raw, "confidence"),
	}

	if shape, ok := KnownShape(rawString(raw, "shape")); ok {
		plan.Shape = shape
	} else {
		plan.Shape = ShapeGeneral
	}
	plan.Route = Route(strings.TrimSpace(rawString(raw, "route")))

	opsAny, ok := raw["operations"]
	if !ok {
		return plan, nil
	}
	opsSlice, ok := opsAny.([]interface{})
	if !ok {
		return nil, fmt.Errorf("PlanFromRaw: 'operations' is %T, want array", opsAny)
	}
	for i, item := range opsSlice {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("PlanFromRaw: operation %d is %T, want object", i, item)
		}
		plan.Operations = append(plan.Operations, Operation{
			Function:    rawString(obj, "function"),
			Category:    rawString(obj, "category"),
			Subcategory: rawString(obj, "subcategory"),
			PeriodFrom:  rawString(obj, "period_from"),
			PeriodTo:    rawString(obj, "period_to"),
			Limit:       int(rawFloat(obj, "limit")),
			PeriodA:     rawString(obj, "period_a"),
			PeriodB:     rawString(obj, "period_b"),
			Threshold:   rawFloat(obj, "threshold"),
		})
	}
	return plan, nil
}

func rawString(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func rawFloat(m map[string]interface{}, key string) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	}
	return 0
}
