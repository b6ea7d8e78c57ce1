package taxonomy

import (
	"strings"
)

// Shape tags the structural type of a question.
type Shape string

const (
	ShapeRanking    Shape = "RANKING"
	ShapeMaxInTime  Shape = "MAX_IN_TIME"
	ShapeMinInTime  Shape = "MIN_IN_TIME"
	ShapeSum        Shape = "SUM"
	ShapeTrend      Shape = "TREND"
	ShapeComparison Shape = "COMPARISON"
	ShapeBreakdown  Shape = "BREAKDOWN"
	ShapeAnalysis   Shape = "ANALYSIS"
	ShapeGeneral    Shape = "GENERAL"
)

// Shapes lists every valid question shape.
var Shapes = []Shape{
	ShapeRanking, ShapeMaxInTime, ShapeMinInTime, ShapeSum, ShapeTrend,
	ShapeComparison, ShapeBreakdown, ShapeAnalysis, ShapeGeneral,
}

// KnownShape reports whether s (case-insensitive) is a valid shape, returning
// the canonical value.
func KnownShape(s string) (Shape, bool) {
	upper := Shape(strings.ToUpper(strings.TrimSpace(s)))
	for _, shape := range Shapes {
		if shape == upper {
			return shape, true
		}
	}
	return "", false
}

// Route tags the compute action family a plan resolves to.
type Route string

const (
	RouteSum       Route = "compute_sum"
	RouteTop       Route = "compute_top"
	RouteTrend     Route = "compute_trend"
	RouteCompare   Route = "compute_compare"
	RouteBreakdown Route = "compute_breakdown"
	RouteShare     Route = "compute_share"
	RouteAnomaly   Route = "compute_anomaly"
	RouteSummary   Route = "compute_summary"
	RouteGeneral   Route = "general"
)

// Routes lists every valid route.
var Routes = []Route{
	RouteSum, RouteTop, RouteTrend, RouteCompare, RouteBreakdown,
	RouteShare, RouteAnomaly, RouteSummary, RouteGeneral,
}

// KnownRoute reports whether s is a valid route after trimming and lowering.
func KnownRoute(s string) (Route, bool) {
	lower := Route(strings.ToLower(strings.TrimSpace(s)))
	for _, route := range Routes {
		if route == lower {
			return route, true
		}
	}
	return "", false
}

// routeAliases are model-observed spellings remapped to canonical routes.
var routeAliases = map[string]Route{
	"sum":              RouteSum,
	"suma":             RouteSum,
	"total":            RouteSum,
	"top":              RouteTop,
	"ranking":          RouteTop,
	"top_expenses":     RouteTop,
	"trend":            RouteTrend,
	"trends":           RouteTrend,
	"compare":          RouteCompare,
	"comparison":       RouteCompare,
	"breakdown":        RouteBreakdown,
	"monthly":          RouteBreakdown,
	"share":            RouteShare,
	"percentage":       RouteShare,
	"anomaly":          RouteAnomaly,
	"anomalies":        RouteAnomaly,
	"summary":          RouteSummary,
	"analysis":         RouteSummary,
	"analyze":          RouteSummary,
	"general_question": RouteGeneral,
	"chat":             RouteGeneral,
}

// RouteFromAlias remaps a non-canonical route spelling.
func RouteFromAlias(s string) (Route, bool) {
	r, ok := routeAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// Compute function whitelist. Operations referencing anything else are dropped
// during validation.
const (
	FuncSumByCategory    = "sumByCategory"
	FuncTopExpenses      = "topExpenses"
	FuncMonthlyBreakdown = "monthlyBreakdown"
	FuncCompareMonths    = "compareMonths"
	FuncTrendAnalysis    = "trendAnalysis"
	FuncCategoryShare    = "categoryShare"
	FuncAverageExpense   = "averageExpense"
	FuncAnalyze503020    = "analyze503020"
	FuncGetAnomalies     = "getAnomalies"
	FuncTotalBalance     = "totalBalance"
	FuncIncomeBySource   = "incomeBySource"
	FuncGetSummary       = "getSummary"
)

// Functions lists the whitelisted compute functions.
var Functions = []string{
	FuncSumByCategory, FuncTopExpenses, FuncMonthlyBreakdown, FuncCompareMonths,
	FuncTrendAnalysis, FuncCategoryShare, FuncAverageExpense, FuncAnalyze503020,
	FuncGetAnomalies, FuncTotalBalance, FuncIncomeBySource, FuncGetSummary,
}

// KnownFunction matches s case-insensitively against the whitelist, returning
// the canonical spelling.
func KnownFunction(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	for _, fn := range Functions {
		if strings.EqualFold(fn, trimmed) {
			return fn, true
		}
	}
	return "", false
}

// routeFromFunction maps each whitelisted function to the route family it
// belongs to, used when a plan carries an unknown route but valid operations.
var routeFromFunction = map[string]Route{
	FuncSumByCategory:    RouteSum,
	FuncTopExpenses:      RouteTop,
	FuncMonthlyBreakdown: RouteBreakdown,
	FuncCompareMonths:    RouteCompare,
	FuncTrendAnalysis:    RouteTrend,
	FuncCategoryShare:    RouteShare,
	FuncAverageExpense:   RouteSum,
	FuncAnalyze503020:    RouteSummary,
	FuncGetAnomalies:     RouteAnomaly,
	FuncTotalBalance:     RouteSummary,
	FuncIncomeBySource:   RouteSummary,
	FuncGetSummary:       RouteSummary,
}

// RouteForFunction returns the route family for a whitelisted function.
func RouteForFunction(fn string) (Route, bool) {
	r, ok := routeFromFunction[fn]
	return r, ok
}

// routeFromShape maps a question shape to its default route, used both by
// route repair and by the deterministic fallback.
var routeFromShape = map[Shape]Route{
	ShapeRanking:    RouteTop,
	ShapeMaxInTime:  RouteTrend,
	ShapeMinInTime:  RouteTrend,
	ShapeSum:        RouteSum,
	ShapeTrend:      RouteTrend,
	ShapeComparison: RouteCompare,
	ShapeBreakdown:  RouteBreakdown,
	ShapeAnalysis:   RouteSummary,
	ShapeGeneral:    RouteGeneral,
}

// RouteForShape returns the default route for a shape.
func RouteForShape(s Shape) (Route, bool) {
	r, ok := routeFromShape[s]
	return r, ok
}

// functionFromRoute maps each route to its default compute function, used for
// fallback plans and for inferring a function when an operation carries the
// sentinel "0".
var functionFromRoute = map[Route]string{
	RouteSum:       FuncSumByCategory,
	RouteTop:       FuncTopExpenses,
	RouteTrend:     FuncTrendAnalysis,
	RouteCompare:   FuncCompareMonths,
	RouteBreakdown: FuncMonthlyBreakdown,
	RouteShare:     FuncCategoryShare,
	RouteAnomaly:   FuncGetAnomalies,
	RouteSummary:   FuncGetSummary,
	RouteGeneral:   FuncGetSummary,
}

// FunctionForRoute returns the default compute function for a route.
func FunctionForRoute(r Route) (string, bool) {
	fn, ok := functionFromRoute[r]
	return fn, ok
}

// functionFromShape is the second inference step for "0"-function operations:
// MAX/MIN questions need the full monthly series, not a trend summary.
var functionFromShape = map[Shape]string{
	ShapeRanking:    FuncTopExpenses,
	ShapeMaxInTime:  FuncMonthlyBreakdown,
	ShapeMinInTime:  FuncMonthlyBreakdown,
	ShapeSum:        FuncSumByCategory,
	ShapeTrend:      FuncTrendAnalysis,
	ShapeComparison: FuncCompareMonths,
	ShapeBreakdown:  FuncMonthlyBreakdown,
	ShapeAnalysis:   FuncAnalyze503020,
	ShapeGeneral:    FuncGetSummary,
}

// FunctionForShape returns the default compute function for a shape.
func FunctionForShape(s Shape) (string, bool) {
	fn, ok := functionFromShape[s]
	return fn, ok
}
