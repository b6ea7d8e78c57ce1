package taxonomy

import (
	"fmt"

	"github.com/rs/zerolog"
)

// FunctionSentinel is the placeholder some model replies put where a function
// name belongs. Operations carrying it get one inference attempt keyed on the
// plan's route and shape before being dropped.
const FunctionSentinel = "0"

// ValidationResult is the outcome of the technical validation pass. Plan is
// the same (repaired) plan that was passed in; Valid requires zero remaining
// errors after all auto-repairs.
type ValidationResult struct {
	Valid  bool
	Errors []string
	Plan   *Plan
}

// Validator repairs routing plans against the closed taxonomy. It never
// consults the network; validation is a pure, synchronous pass over the plan.
type Validator struct {
	log zerolog.Logger
}

// NewValidator creates a validator that logs dropped operations as warnings.
func NewValidator(log zerolog.Logger) *Validator {
	return &Validator{log: log}
}

// Validate checks and auto-repairs a plan in place. Repairs never raise
// errors; only unrepairable conditions do. Validating an already-valid plan
// is a no-op that yields zero new errors.
func (v *Validator) Validate(plan *Plan) *ValidationResult {
	result := &ValidationResult{Plan: plan}
	if plan == nil {
		result.Errors = append(result.Errors, "nil routing plan")
		return result
	}

	v.repairRoute(plan, result)
	v.repairCategory(plan, result)
	v.repairOperations(plan, result)

	result.Valid = len(result.Errors) == 0
	return result
}

// repairRoute restores plan.Route to a known route: alias remap first, then
// the operations' function names, then the question shape.
func (v *Validator) repairRoute(plan *Plan, result *ValidationResult) {
	if route, ok := KnownRoute(string(plan.Route)); ok {
		plan.Route = route
		return
	}
	if route, ok := RouteFromAlias(string(plan.Route)); ok {
		v.log.Debug().Str("from", string(plan.Route)).Str("to", string(route)).Msg("Route remapped from alias")
		plan.Route = route
		return
	}
	for _, op := range plan.Operations {
		if fn, ok := KnownFunction(op.Function); ok {
			if route, ok := RouteForFunction(fn); ok {
				plan.Route = route
				return
			}
		}
	}
	if route, ok := RouteForShape(plan.Shape); ok {
		plan.Route = route
		return
	}
	result.Errors = append(result.Errors, fmt.Sprintf("unknown route %q", plan.Route))
}

// repairCategory canonicalizes the plan's category/subcategory pair. A
// "category" that is actually a subcategory is reassigned to its parent.
func (v *Validator) repairCategory(plan *Plan, result *ValidationResult) {
	if plan.Category != "" {
		if canonical, ok := CanonicalCategory(plan.Category); ok {
			plan.Category = canonical
		} else if parent, sub, ok := FindSubcategoryParent(plan.Category); ok {
			plan.Category = parent
			plan.Subcategory = sub
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("unknown category %q", plan.Category))
		}
	}

	if plan.Subcategory != "" {
		if plan.Category != "" {
			if canonical, ok := CanonicalSubcategory(plan.Category, plan.Subcategory); ok {
				plan.Subcategory = canonical
				return
			}
		}
		if parent, sub, ok := FindSubcategoryParent(plan.Subcategory); ok {
			plan.Category = parent
			plan.Subcategory = sub
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("unknown subcategory %q", plan.Subcategory))
	}
}

// repairOperations filters the operation list down to whitelisted functions
// and repairs each operation's category fields. A plan that started with
// operations and ends with none is itself an error.
func (v *Validator) repairOperations(plan *Plan, result *ValidationResult) {
	hadOperations := len(plan.Operations) > 0
	kept := plan.Operations[:0]

	for _, op := range plan.Operations {
		fn, ok := KnownFunction(op.Function)
		if !ok && op.Function == FunctionSentinel {
			fn, ok = v.inferFunction(plan)
			if ok {
				v.log.Debug().Str("inferred", fn).Str("route", string(plan.Route)).Msg("Function inferred for sentinel operation")
			}
		}
		if !ok {
			v.log.Warn().Str("function", op.Function).Msg("Dropping operation with unknown function")
			continue
		}
		op.Function = fn

		v.repairOperationCategory(&op, plan, result)
		kept = append(kept, op)
	}
	plan.Operations = kept

	if hadOperations && len(plan.Operations) == 0 {
		result.Errors = append(result.Errors, "all operations rejected")
	}
}

// inferFunction resolves a sentinel function from plan context: route first,
// then shape.
func (v *Validator) inferFunction(plan *Plan) (string, bool) {
	if route, ok := KnownRoute(string(plan.Route)); ok {
		if fn, ok := FunctionForRoute(route); ok {
			return fn, true
		}
	}
	return FunctionForShape(plan.Shape)
}

// repairOperationCategory applies the plan-level category repairs to one
// operation and back-fills absent fields from the plan's canonical values.
func (v *Validator) repairOperationCategory(op *Operation, plan *Plan, result *ValidationResult) {
	if op.Category == "" {
		op.Category = plan.Category
	}
	if op.Subcategory == "" {
		op.Subcategory = plan.Subcategory
	}

	if op.Category != "" {
		if canonical, ok := CanonicalCategory(op.Category); ok {
			op.Category = canonical
		} else if parent, sub, ok := FindSubcategoryParent(op.Category); ok {
			op.Category = parent
			op.Subcategory = sub
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("operation %s: unknown category %q", op.Function, op.Category))
		}
	}

	if op.Subcategory != "" {
		if op.Category != "" {
			if canonical, ok := CanonicalSubcategory(op.Category, op.Subcategory); ok {
				op.Subcategory = canonical
				return
			}
		}
		if parent, sub, ok := FindSubcategoryParent(op.Subcategory); ok {
			op.Category = parent
			op.Subcategory = sub
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("operation %s: unknown subcategory %q", op.Function, op.Subcategory))
	}
}
