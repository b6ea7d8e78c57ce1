package cache

import (
	"testing"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

func expense(year, month int, category, subcategory string, amount float64) domain.Transaction {
	return domain.Transaction{
		Year:        year,
		Month:       month,
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount,
		Currency:    "PLN",
		AmountBase:  amount,
	}
}

func income(year, month int, source string, amount float64) domain.Transaction {
	return domain.Transaction{
		Year:       year,
		Month:      month,
		Source:     source,
		Amount:     amount,
		Currency:   "PLN",
		AmountBase: amount,
		Income:     true,
	}
}

func TestBuildAggregates(t *testing.T) {
	txs := []domain.Transaction{
		expense(2024, 1, "Auto i transport", "Paliwo", 200),
		expense(2024, 1, "Auto i transport", "Paliwo", 100),
		expense(2024, 2, "Auto i transport", "Paliwo", 250),
		expense(2024, 1, "Jedzenie", "Spożywcze", 400),
		income(2024, 1, "Wynagrodzenie", 8000),
	}

	c := Build(txs)

	fuel, ok := c.Entry("Auto i transport", "Paliwo")
	if !ok {
		t.Fatal("no entry for Auto i transport/Paliwo")
	}
	if fuel.Total != 550 || fuel.Count != 3 {
		t.Errorf("fuel total/count = %v/%d, want 550/3", fuel.Total, fuel.Count)
	}
	if got := fuel.PeriodCounts["2024-01"]; got != 2 {
		t.Errorf("january fuel rows = %d, want 2", got)
	}
	if fuel.Periods["2024-01"] != 300 || fuel.Periods["2024-02"] != 250 {
		t.Errorf("fuel periods = %+v", fuel.Periods)
	}

	auto, ok := c.Entry("Auto i transport", "")
	if !ok || auto.Total != 550 {
		t.Errorf("category entry total = %v, want 550", auto.Total)
	}

	jan := c.Months["2024-01"]
	if jan == nil || jan.Expenses != 700 || jan.Income != 8000 {
		t.Errorf("january rollup = %+v, want 700 expenses / 8000 income", jan)
	}

	salary, ok := c.IncomeSources["Wynagrodzenie"]
	if !ok || salary.Total != 8000 {
		t.Errorf("income source total = %+v", salary)
	}

	if c.From != "2024-01" || c.To != "2024-02" {
		t.Errorf("range = %s..%s, want 2024-01..2024-02", c.From, c.To)
	}
}

func TestBuildSkipsInternalTransfers(t *testing.T) {
	transfer := expense(2024, 1, "Finanse", "Oszczędności", 1000)
	transfer.InternalTransfer = true

	c := Build([]domain.Transaction{transfer})

	if len(c.Categories) != 0 || len(c.Months) != 0 {
		t.Errorf("internal transfer leaked into aggregates: %+v", c)
	}
}

func TestBuildDefaultsMissingIncomeSource(t *testing.T) {
	c := Build([]domain.Transaction{income(2024, 3, "", 500)})

	if _, ok := c.IncomeSources["Inne przychody"]; !ok {
		t.Errorf("sources = %+v, want Inne przychody fallback", c.IncomeSources)
	}
}

func TestBuildEmpty(t *testing.T) {
	c := Build(nil)

	if c.From != "" || c.To != "" || len(c.Months) != 0 {
		t.Errorf("empty build = %+v", c)
	}
	if _, ok := c.Entry("Jedzenie", ""); ok {
		t.Error("Entry on empty cache reported data")
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		period, from, to string
		want             bool
	}{
		{"2024-02", "2024-01", "2024-03", true},
		{"2024-01", "2024-01", "2024-01", true},
		{"2023-12", "2024-01", "", false},
		{"2024-04", "", "2024-03", false},
		{"2019-07", "", "", true},
	}

	for _, tt := range tests {
		if got := InRange(tt.period, tt.from, tt.to); got != tt.want {
			t.Errorf("InRange(%q, %q, %q) = %v, want %v", tt.period, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPeriodKeysSorted(t *testing.T) {
	c := Build([]domain.Transaction{
		expense(2024, 3, "Jedzenie", "", 1),
		expense(2023, 11, "Jedzenie", "", 1),
		expense(2024, 1, "Jedzenie", "", 1),
	})

	keys := c.PeriodKeys()
	want := []string{"2023-11", "2024-01", "2024-03"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
