package compute

import (
	"fmt"
	"sort"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
)

const (
	defaultTopLimit         = 5
	defaultAnomalyThreshold = 0.5
	trendStableBandPct      = 5.0
)

// needsWantsSavings classifies categories for the 50/30/20 split.
var needsWantsSavings = map[string]string{
	"Jedzenie":         "needs",
	"Auto i transport": "needs",
	"Mieszkanie":       "needs",
	"Dzieci":           "needs",
	"Osobiste":         "wants",
	"Subskrypcje":      "wants",
	"Inne":             "wants",
	"Finanse":          "savings",
}

// notFound builds the non-error result for unknown taxonomy lookups. Callers
// must check the flag before treating numeric fields as meaningful.
func notFound(op taxonomy.Operation, what string) Result {
	return Result{
		Operation: op.Function,
		Success:   true,
		NotFound:  true,
		Message:   fmt.Sprintf("no data recorded for %s", what),
	}
}

func ok(op taxonomy.Operation, data interface{}) Result {
	return Result{Operation: op.Function, Success: true, Data: data}
}

// entryTotals sums an entry's period map within the operation's bounds. The
// count covers the same in-range rows as the total.
func entryTotals(e *cache.Entry, from, to string) (total float64, count int, periods []PeriodValue) {
	keys := make([]string, 0, len(e.Periods))
	for p := range e.Periods {
		if cache.InRange(p, from, to) {
			keys = append(keys, p)
		}
	}
	sort.Strings(keys)
	for _, p := range keys {
		total += e.Periods[p]
		count += e.PeriodCounts[p]
		periods = append(periods, PeriodValue{Period: p, Value: e.Periods[p]})
	}
	return total, count, periods
}

// monthlySeries returns the expense series for a category/subcategory pair,
// or the overall monthly expenses when category is empty.
func monthlySeries(c *cache.Cache, category, subcategory, from, to string) ([]PeriodValue, bool) {
	if category == "" {
		var out []PeriodValue
		for _, p := range c.PeriodKeys() {
			if cache.InRange(p, from, to) {
				out = append(out, PeriodValue{Period: p, Value: c.Months[p].Expenses})
			}
		}
		return out, true
	}
	e, found := c.Entry(category, subcategory)
	if !found {
		return nil, false
	}
	_, _, series := entryTotals(e, from, to)
	return series, true
}

func sumByCategory(op taxonomy.Operation, c *cache.Cache) Result {
	if op.Category == "" && op.Subcategory == "" {
		var total float64
		months := 0
		for _, p := range c.PeriodKeys() {
			if cache.InRange(p, op.PeriodFrom, op.PeriodTo) {
				total += c.Months[p].Expenses
				months++
			}
		}
		return ok(op, &SumResult{PeriodFrom: op.PeriodFrom, PeriodTo: op.PeriodTo, Total: total, Months: months})
	}

	e, found := c.Entry(op.Category, op.Subcategory)
	if !found {
		return notFound(op, lookupName(op))
	}
	total, count, periods := entryTotals(e, op.PeriodFrom, op.PeriodTo)
	return ok(op, &SumResult{
		Category:    op.Category,
		Subcategory: op.Subcategory,
		PeriodFrom:  op.PeriodFrom,
		PeriodTo:    op.PeriodTo,
		Total:       total,
		Count:       count,
		Months:      len(periods),
	})
}

func averageExpense(op taxonomy.Operation, c *cache.Cache) Result {
	series, found := monthlySeries(c, op.Category, op.Subcategory, op.PeriodFrom, op.PeriodTo)
	if !found {
		return notFound(op, lookupName(op))
	}
	var total float64
	for _, pv := range series {
		total += pv.Value
	}
	avg := 0.0
	if len(series) > 0 {
		avg = total / float64(len(series))
	}
	return ok(op, &SumResult{
		Category:    op.Category,
		Subcategory: op.Subcategory,
		Total:       total,
		Average:     avg,
		Months:      len(series),
	})
}

// DeriveBreakdownStats folds a breakdown series into its total, average and
// max/min periods. Exposed so the facts builder can re-derive answers from a
// breakdown payload.
func DeriveBreakdownStats(series []PeriodValue) BreakdownStats {
	stats := BreakdownStats{}
	if len(series) == 0 {
		return stats
	}
	stats.Max = series[0]
	stats.Min = series[0]
	for _, pv := range series {
		stats.Total += pv.Value
		if pv.Value > stats.Max.Value {
			stats.Max = pv
		}
		if pv.Value < stats.Min.Value {
			stats.Min = pv
		}
	}
	stats.Average = stats.Total / float64(len(series))
	return stats
}

func monthlyBreakdown(op taxonomy.Operation, c *cache.Cache) Result {
	series, found := monthlySeries(c, op.Category, op.Subcategory, op.PeriodFrom, op.PeriodTo)
	if !found {
		return notFound(op, lookupName(op))
	}
	return ok(op, &BreakdownResult{
		Category:    op.Category,
		Subcategory: op.Subcategory,
		Breakdown:   series,
		Stats:       DeriveBreakdownStats(series),
	})
}

func compareMonths(op taxonomy.Operation, c *cache.Cache) Result {
	periodA, periodB := op.PeriodA, op.PeriodB
	// When the model put the two periods in the range fields, use those.
	if periodA == "" && periodB == "" {
		periodA, periodB = op.PeriodFrom, op.PeriodTo
	}
	if periodA == "" || periodB == "" {
		return Result{Operation: op.Function, Success: false, Error: "compareMonths: two periods required"}
	}

	valueFor := func(period string) (float64, bool) {
		if op.Category == "" {
			m, found := c.Months[period]
			if !found {
				return 0, false
			}
			return m.Expenses, true
		}
		e, found := c.Entry(op.Category, op.Subcategory)
		if !found {
			return 0, false
		}
		return e.Periods[period], true
	}

	valueA, foundA := valueFor(periodA)
	valueB, foundB := valueFor(periodB)
	if !foundA && !foundB {
		return notFound(op, fmt.Sprintf("periods %s and %s", periodA, periodB))
	}

	diff := valueB - valueA
	pct := 0.0
	if valueA != 0 {
		pct = diff / valueA * 100
	}
	return ok(op, &CompareResult{
		PeriodA:    periodA,
		PeriodB:    periodB,
		ValueA:     valueA,
		ValueB:     valueB,
		Difference: diff,
		ChangePct:  pct,
	})
}

func trendAnalysis(op taxonomy.Operation, c *cache.Cache) Result {
	series, found := monthlySeries(c, op.Category, op.Subcategory, op.PeriodFrom, op.PeriodTo)
	if !found {
		return notFound(op, lookupName(op))
	}
	if len(series) == 0 {
		return notFound(op, "the requested period")
	}

	first := series[0]
	last := series[len(series)-1]
	pct := 0.0
	if first.Value != 0 {
		pct = (last.Value - first.Value) / first.Value * 100
	}
	direction := "stable"
	switch {
	case pct > trendStableBandPct:
		direction = "rising"
	case pct < -trendStableBandPct:
		direction = "falling"
	}
	return ok(op, &TrendResult{
		Category:  op.Category,
		Direction: direction,
		ChangePct: pct,
		First:     first,
		Last:      last,
	})
}

func categoryShare(op taxonomy.Operation, c *cache.Cache) Result {
	if op.Category == "" {
		return Result{Operation: op.Function, Success: false, Error: "categoryShare: category required"}
	}
	e, found := c.Entry(op.Category, op.Subcategory)
	if !found {
		return notFound(op, lookupName(op))
	}
	total, _, _ := entryTotals(e, op.PeriodFrom, op.PeriodTo)

	var overall float64
	for _, p := range c.PeriodKeys() {
		if cache.InRange(p, op.PeriodFrom, op.PeriodTo) {
			overall += c.Months[p].Expenses
		}
	}
	share := 0.0
	if overall != 0 {
		share = total / overall * 100
	}
	return ok(op, &ShareResult{Category: op.Category, Total: total, Overall: overall, SharePct: share})
}

func topExpenses(op taxonomy.Operation, c *cache.Cache) Result {
	limit := op.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}

	var items []RankedItem
	if op.Category != "" {
		// Rank the category's subcategories.
		for _, sub := range taxonomy.Subcategories(op.Category) {
			e, found := c.Entry(op.Category, sub)
			if !found {
				continue
			}
			total, count, _ := entryTotals(e, op.PeriodFrom, op.PeriodTo)
			if total > 0 {
				items = append(items, RankedItem{Name: sub, Total: total, Count: count})
			}
		}
	} else {
		for _, cat := range taxonomy.CategoryNames() {
			e, found := c.Entry(cat, "")
			if !found {
				continue
			}
			total, count, _ := entryTotals(e, op.PeriodFrom, op.PeriodTo)
			if total > 0 {
				items = append(items, RankedItem{Name: cat, Total: total, Count: count})
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Total != items[j].Total {
			return items[i].Total > items[j].Total
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return ok(op, &TopResult{Category: op.Category, Items: items})
}

func analyze503020(op taxonomy.Operation, c *cache.Cache) Result {
	var income float64
	for p, m := range c.Months {
		if cache.InRange(p, op.PeriodFrom, op.PeriodTo) {
			income += m.Income
		}
	}

	split := &RuleSplitResult{Income: income}
	for cat, class := range needsWantsSavings {
		e, found := c.Entry(cat, "")
		if !found {
			continue
		}
		total, _, _ := entryTotals(e, op.PeriodFrom, op.PeriodTo)
		switch class {
		case "needs":
			split.Needs += total
		case "wants":
			split.Wants += total
		case "savings":
			split.Savings += total
		}
	}
	if income != 0 {
		split.NeedsPct = split.Needs / income * 100
		split.WantsPct = split.Wants / income * 100
		split.SavingsPct = split.Savings / income * 100
	}
	return ok(op, split)
}

func getAnomalies(op taxonomy.Operation, c *cache.Cache) Result {
	series, found := monthlySeries(c, op.Category, op.Subcategory, op.PeriodFrom, op.PeriodTo)
	if !found {
		return notFound(op, lookupName(op))
	}
	if len(series) == 0 {
		return notFound(op, "the requested period")
	}

	threshold := op.Threshold
	if threshold <= 0 {
		threshold = defaultAnomalyThreshold
	}

	var sum float64
	for _, pv := range series {
		sum += pv.Value
	}
	mean := sum / float64(len(series))

	result := &AnomaliesResult{Mean: mean, Threshold: threshold}
	for _, pv := range series {
		if mean == 0 {
			continue
		}
		deviation := (pv.Value - mean) / mean
		if deviation > threshold || deviation < -threshold {
			result.Anomalies = append(result.Anomalies, pv)
		}
	}
	return ok(op, result)
}

func totalBalance(op taxonomy.Operation, c *cache.Cache) Result {
	out := &BalanceResult{}
	for p, m := range c.Months {
		if cache.InRange(p, op.PeriodFrom, op.PeriodTo) {
			out.Income += m.Income
			out.Expenses += m.Expenses
		}
	}
	out.Balance = out.Income - out.Expenses
	return ok(op, out)
}

func incomeBySource(op taxonomy.Operation, c *cache.Cache) Result {
	out := &SourcesResult{}
	names := make([]string, 0, len(c.IncomeSources))
	for name := range c.IncomeSources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e := c.IncomeSources[name]
		total, count, _ := entryTotals(e, op.PeriodFrom, op.PeriodTo)
		if total > 0 {
			out.Sources = append(out.Sources, RankedItem{Name: name, Total: total, Count: count})
			out.Total += total
		}
	}
	sort.Slice(out.Sources, func(i, j int) bool {
		if out.Sources[i].Total != out.Sources[j].Total {
			return out.Sources[i].Total > out.Sources[j].Total
		}
		return out.Sources[i].Name < out.Sources[j].Name
	})
	return ok(op, out)
}

func getSummary(op taxonomy.Operation, c *cache.Cache) Result {
	out := &SummaryResult{PeriodFrom: op.PeriodFrom, PeriodTo: op.PeriodTo}
	for _, p := range c.PeriodKeys() {
		if cache.InRange(p, op.PeriodFrom, op.PeriodTo) {
			out.TotalExpenses += c.Months[p].Expenses
			out.TotalIncome += c.Months[p].Income
			out.Months++
		}
	}

	topOp := op
	topOp.Category = ""
	topOp.Subcategory = ""
	topOp.Limit = 3
	if top := topExpenses(topOp, c); top.Success && !top.NotFound {
		if data, isTop := top.Data.(*TopResult); isTop {
			out.TopCategories = data.Items
		}
	}
	return ok(op, out)
}

func lookupName(op taxonomy.Operation) string {
	if op.Subcategory != "" {
		return fmt.Sprintf("%s / %s", op.Category, op.Subcategory)
	}
	if op.Category != "" {
		return op.Category
	}
	return "the requested data"
}
