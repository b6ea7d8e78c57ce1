package compute

import (
	"math"
	"testing"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

func expense(year, month int, category, subcategory string, amount float64) domain.Transaction {
	return domain.Transaction{
		Year:        year,
		Month:       month,
		Category:    category,
		Subcategory: subcategory,
		AmountBase:  amount,
	}
}

func income(year, month int, source string, amount float64) domain.Transaction {
	return domain.Transaction{Year: year, Month: month, Source: source, AmountBase: amount, Income: true}
}

// threeMonthCache covers 2024-01..03 with fixed fuel spending per month.
func threeMonthCache() *cache.Cache {
	return cache.Build([]domain.Transaction{
		expense(2024, 1, "Auto i transport", "Paliwo", 1000),
		expense(2024, 2, "Auto i transport", "Paliwo", 1500),
		expense(2024, 3, "Auto i transport", "Paliwo", 800),
		income(2024, 1, "Wynagrodzenie", 9000),
		income(2024, 2, "Wynagrodzenie", 9000),
	})
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestMonthlyBreakdownStats(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:    taxonomy.FuncMonthlyBreakdown,
		Category:    "Auto i transport",
		Subcategory: "Paliwo",
	}

	res := monthlyBreakdown(op, c)
	if !res.Success || res.NotFound {
		t.Fatalf("result = %+v", res)
	}
	data := res.Data.(*BreakdownResult)

	if len(data.Breakdown) != 3 {
		t.Fatalf("breakdown has %d periods, want 3", len(data.Breakdown))
	}
	if data.Stats.Max.Period != "2024-02" || !approx(data.Stats.Max.Value, 1500) {
		t.Errorf("max = %+v, want 2024-02/1500", data.Stats.Max)
	}
	if data.Stats.Min.Period != "2024-03" || !approx(data.Stats.Min.Value, 800) {
		t.Errorf("min = %+v, want 2024-03/800", data.Stats.Min)
	}
	if !approx(data.Stats.Total, 3300) {
		t.Errorf("total = %v, want 3300", data.Stats.Total)
	}
	if !approx(data.Stats.Average, 1100) {
		t.Errorf("average = %v, want 1100", data.Stats.Average)
	}
}

func TestSumByCategoryWithoutFiltersSumsEverything(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{Function: taxonomy.FuncSumByCategory}

	res := sumByCategory(op, c)
	if !res.Success || res.NotFound {
		t.Fatalf("result = %+v", res)
	}
	data := res.Data.(*SumResult)

	// No category, subcategory or period filters: the total must equal the
	// sum of all monthly expenses.
	var want float64
	for _, m := range c.Months {
		want += m.Expenses
	}
	if !approx(data.Total, want) {
		t.Errorf("total = %v, want %v", data.Total, want)
	}
	if data.Months != 3 {
		t.Errorf("months = %d, want 3", data.Months)
	}
}

func TestSumByCategoryPeriodFilter(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:    taxonomy.FuncSumByCategory,
		Category:    "Auto i transport",
		Subcategory: "Paliwo",
		PeriodFrom:  "2024-01",
		PeriodTo:    "2024-01",
	}

	res := sumByCategory(op, c)
	data := res.Data.(*SumResult)
	if !approx(data.Total, 1000) {
		t.Errorf("total = %v, want 1000", data.Total)
	}
	// The count follows the filter: one fuel row in January, not all three.
	if data.Count != 1 {
		t.Errorf("count = %d, want 1", data.Count)
	}
}

func TestTopExpensesFilteredCounts(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:   taxonomy.FuncTopExpenses,
		PeriodFrom: "2024-01",
		PeriodTo:   "2024-02",
	}

	res := topExpenses(op, c)
	data := res.Data.(*TopResult)
	if len(data.Items) != 1 {
		t.Fatalf("items = %+v", data.Items)
	}
	if data.Items[0].Count != 2 {
		t.Errorf("count = %d, want the two in-range rows", data.Items[0].Count)
	}
}

func TestSumByCategoryUnknownTaxonomyIsNotFoundNotError(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{Function: taxonomy.FuncSumByCategory, Category: "Jedzenie"}

	res := sumByCategory(op, c)
	if !res.Success {
		t.Fatalf("unknown data must not be an error: %+v", res)
	}
	if !res.NotFound {
		t.Fatalf("expected NotFound, got %+v", res)
	}
}

func TestCompareMonths(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:    taxonomy.FuncCompareMonths,
		Category:    "Auto i transport",
		Subcategory: "Paliwo",
		PeriodA:     "2024-01",
		PeriodB:     "2024-02",
	}

	res := compareMonths(op, c)
	data := res.Data.(*CompareResult)
	if !approx(data.Difference, 500) {
		t.Errorf("difference = %v, want 500", data.Difference)
	}
	if !approx(data.ChangePct, 50) {
		t.Errorf("change = %v%%, want 50%%", data.ChangePct)
	}
}

func TestCompareMonthsFallsBackToRangeFields(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:   taxonomy.FuncCompareMonths,
		PeriodFrom: "2024-01",
		PeriodTo:   "2024-03",
	}

	res := compareMonths(op, c)
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	data := res.Data.(*CompareResult)
	if data.PeriodA != "2024-01" || data.PeriodB != "2024-03" {
		t.Errorf("periods = %s/%s", data.PeriodA, data.PeriodB)
	}
}

func TestCompareMonthsMissingPeriodsFails(t *testing.T) {
	res := compareMonths(taxonomy.Operation{Function: taxonomy.FuncCompareMonths}, threeMonthCache())
	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
}

func TestTrendAnalysis(t *testing.T) {
	c := threeMonthCache()
	op := taxonomy.Operation{
		Function:    taxonomy.FuncTrendAnalysis,
		Category:    "Auto i transport",
		Subcategory: "Paliwo",
	}

	res := trendAnalysis(op, c)
	data := res.Data.(*TrendResult)
	// 1000 -> 800 is a 20% drop.
	if data.Direction != "falling" {
		t.Errorf("direction = %q, want falling", data.Direction)
	}
	if !approx(data.ChangePct, -20) {
		t.Errorf("change = %v%%, want -20%%", data.ChangePct)
	}
}

func TestCategoryShare(t *testing.T) {
	c := cache.Build([]domain.Transaction{
		expense(2024, 1, "Jedzenie", "", 300),
		expense(2024, 1, "Mieszkanie", "", 700),
	})
	op := taxonomy.Operation{Function: taxonomy.FuncCategoryShare, Category: "Jedzenie"}

	res := categoryShare(op, c)
	data := res.Data.(*ShareResult)
	if !approx(data.SharePct, 30) {
		t.Errorf("share = %v%%, want 30%%", data.SharePct)
	}
}

func TestTopExpensesRanksCategories(t *testing.T) {
	c := cache.Build([]domain.Transaction{
		expense(2024, 1, "Jedzenie", "", 300),
		expense(2024, 1, "Mieszkanie", "", 700),
		expense(2024, 1, "Osobiste", "", 100),
	})
	op := taxonomy.Operation{Function: taxonomy.FuncTopExpenses, Limit: 2}

	res := topExpenses(op, c)
	data := res.Data.(*TopResult)
	if len(data.Items) != 2 {
		t.Fatalf("items = %+v, want 2", data.Items)
	}
	if data.Items[0].Name != "Mieszkanie" || data.Items[1].Name != "Jedzenie" {
		t.Errorf("ranking = %+v", data.Items)
	}
}

func TestGetAnomalies(t *testing.T) {
	c := cache.Build([]domain.Transaction{
		expense(2024, 1, "Jedzenie", "", 1000),
		expense(2024, 2, "Jedzenie", "", 1000),
		expense(2024, 3, "Jedzenie", "", 1000),
		expense(2024, 4, "Jedzenie", "", 5000),
	})
	op := taxonomy.Operation{Function: taxonomy.FuncGetAnomalies}

	res := getAnomalies(op, c)
	data := res.Data.(*AnomaliesResult)
	if len(data.Anomalies) != 1 || data.Anomalies[0].Period != "2024-04" {
		t.Errorf("anomalies = %+v, want only 2024-04", data.Anomalies)
	}
}

func TestTotalBalance(t *testing.T) {
	c := threeMonthCache()
	res := totalBalance(taxonomy.Operation{Function: taxonomy.FuncTotalBalance}, c)
	data := res.Data.(*BalanceResult)
	if !approx(data.Income, 18000) || !approx(data.Expenses, 3300) || !approx(data.Balance, 14700) {
		t.Errorf("balance = %+v", data)
	}
}

func TestIncomeBySource(t *testing.T) {
	c := cache.Build([]domain.Transaction{
		income(2024, 1, "Wynagrodzenie", 8000),
		income(2024, 1, "Premia", 2000),
	})
	res := incomeBySource(taxonomy.Operation{Function: taxonomy.FuncIncomeBySource}, c)
	data := res.Data.(*SourcesResult)
	if len(data.Sources) != 2 || data.Sources[0].Name != "Wynagrodzenie" {
		t.Errorf("sources = %+v", data.Sources)
	}
	if !approx(data.Total, 10000) {
		t.Errorf("total = %v, want 10000", data.Total)
	}
}

func TestAnalyze503020(t *testing.T) {
	c := cache.Build([]domain.Transaction{
		income(2024, 1, "Wynagrodzenie", 10000),
		expense(2024, 1, "Jedzenie", "", 3000),       // needs
		expense(2024, 1, "Osobiste", "", 2000),       // wants
		expense(2024, 1, "Finanse", "Inwestycje", 1500), // savings
	})
	res := analyze503020(taxonomy.Operation{Function: taxonomy.FuncAnalyze503020}, c)
	data := res.Data.(*RuleSplitResult)
	if !approx(data.NeedsPct, 30) || !approx(data.WantsPct, 20) || !approx(data.SavingsPct, 15) {
		t.Errorf("split = %+v", data)
	}
}

func TestGetSummary(t *testing.T) {
	c := threeMonthCache()
	res := getSummary(taxonomy.Operation{Function: taxonomy.FuncGetSummary}, c)
	data := res.Data.(*SummaryResult)
	if !approx(data.TotalExpenses, 3300) || !approx(data.TotalIncome, 18000) || data.Months != 3 {
		t.Errorf("summary = %+v", data)
	}
	if len(data.TopCategories) == 0 {
		t.Error("summary has no top categories")
	}
}
