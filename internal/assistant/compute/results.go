// Package compute executes a validated routing plan's operations against the
// aggregate cache. Every function is pure with respect to the cache.
package compute

// PeriodValue pairs a "YYYY-MM" period with its total.
type PeriodValue struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// RankedItem is one row of a ranking result.
type RankedItem struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Result wraps a single operation's outcome. Unknown taxonomy lookups are not
// errors: they come back as NotFound results whose numeric payload must not be
// trusted. A failed operation never aborts its siblings.
type Result struct {
	Operation string      `json:"operation"`
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	NotFound  bool        `json:"notFound,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// SumResult is the payload of sumByCategory and averageExpense.
type SumResult struct {
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	PeriodFrom  string  `json:"period_from,omitempty"`
	PeriodTo    string  `json:"period_to,omitempty"`
	Total       float64 `json:"total"`
	Count       int     `json:"count,omitempty"`
	Average     float64 `json:"average,omitempty"`
	Months      int     `json:"months,omitempty"`
}

// BreakdownStats are the derived statistics computed inline with a monthly
// breakdown.
type BreakdownStats struct {
	Total   float64     `json:"total"`
	Average float64     `json:"average"`
	Max     PeriodValue `json:"max"`
	Min     PeriodValue `json:"min"`
}

// BreakdownResult is the payload of monthlyBreakdown.
type BreakdownResult struct {
	Category    string         `json:"category,omitempty"`
	Subcategory string         `json:"subcategory,omitempty"`
	Breakdown   []PeriodValue  `json:"breakdown"`
	Stats       BreakdownStats `json:"stats"`
}

// CompareResult is the payload of compareMonths.
type CompareResult struct {
	PeriodA    string  `json:"period_a"`
	PeriodB    string  `json:"period_b"`
	ValueA     float64 `json:"value_a"`
	ValueB     float64 `json:"value_b"`
	Difference float64 `json:"difference"`
	ChangePct  float64 `json:"change_pct"`
}

// TrendResult is the payload of trendAnalysis.
type TrendResult struct {
	Category  string      `json:"category,omitempty"`
	Direction string      `json:"direction"` // rising, falling, stable
	ChangePct float64     `json:"change_pct"`
	First     PeriodValue `json:"first"`
	Last      PeriodValue `json:"last"`
}

// ShareResult is the payload of categoryShare.
type ShareResult struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Overall  float64 `json:"overall"`
	SharePct float64 `json:"share_pct"`
}

// RuleSplitResult is the payload of analyze503020.
type RuleSplitResult struct {
	Income     float64 `json:"income"`
	Needs      float64 `json:"needs"`
	Wants      float64 `json:"wants"`
	Savings    float64 `json:"savings"`
	NeedsPct   float64 `json:"needs_pct"`
	WantsPct   float64 `json:"wants_pct"`
	SavingsPct float64 `json:"savings_pct"`
}

// AnomaliesResult is the payload of getAnomalies.
type AnomaliesResult struct {
	Mean      float64       `json:"mean"`
	Threshold float64       `json:"threshold"`
	Anomalies []PeriodValue `json:"anomalies"`
}

// BalanceResult is the payload of totalBalance.
type BalanceResult struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// TopResult is the payload of topExpenses.
type TopResult struct {
	Category string       `json:"category,omitempty"` // set when ranking subcategories
	Items    []RankedItem `json:"items"`
}

// SourcesResult is the payload of incomeBySource.
type SourcesResult struct {
	Sources []RankedItem `json:"sources"`
	Total   float64      `json:"total"`
}

// SummaryResult is the payload of getSummary.
type SummaryResult struct {
	PeriodFrom    string       `json:"period_from,omitempty"`
	PeriodTo      string       `json:"period_to,omitempty"`
	TotalExpenses float64      `json:"total_expenses"`
	TotalIncome   float64      `json:"total_income"`
	Months        int          `json:"months"`
	TopCategories []RankedItem `json:"top_categories"`
}
