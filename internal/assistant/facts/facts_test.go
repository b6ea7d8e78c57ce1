package facts

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/compute"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

func fuelCache() *cache.Cache {
	return cache.Build([]domain.Transaction{
		{Year: 2024, Month: 1, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 1000},
		{Year: 2024, Month: 2, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 1500},
		{Year: 2024, Month: 3, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 800},
	})
}

func TestBuildDerivesMaxAnswer(t *testing.T) {
	c := fuelCache()
	plan := &taxonomy.Plan{
		Shape:       taxonomy.ShapeMaxInTime,
		Route:       taxonomy.RouteTrend,
		Category:    "Auto i transport",
		Subcategory: "Paliwo",
		Operations: []taxonomy.Operation{
			{Function: taxonomy.FuncMonthlyBreakdown, Category: "Auto i transport", Subcategory: "Paliwo"},
		},
	}
	results := compute.Execute(plan.Operations, c, zerolog.Nop())

	capsule := Build(plan, results, c)

	if capsule.Derived.MaxPeriod == nil || capsule.Derived.MaxPeriod.Period != "2024-02" {
		t.Fatalf("max period = %+v, want 2024-02", capsule.Derived.MaxPeriod)
	}
	if capsule.Derived.MinPeriod == nil || capsule.Derived.MinPeriod.Period != "2024-03" {
		t.Fatalf("min period = %+v, want 2024-03", capsule.Derived.MinPeriod)
	}
	if !strings.Contains(capsule.Derived.Answer, "2024-02") || !strings.Contains(capsule.Derived.Answer, "Paliwo") {
		t.Errorf("answer = %q, want the max period and subject named", capsule.Derived.Answer)
	}
}

func TestBuildDerivesMinAnswer(t *testing.T) {
	c := fuelCache()
	plan := &taxonomy.Plan{
		Shape:    taxonomy.ShapeMinInTime,
		Route:    taxonomy.RouteTrend,
		Category: "Auto i transport",
		Operations: []taxonomy.Operation{
			{Function: taxonomy.FuncMonthlyBreakdown, Category: "Auto i transport"},
		},
	}
	results := compute.Execute(plan.Operations, c, zerolog.Nop())

	capsule := Build(plan, results, c)

	if !strings.Contains(capsule.Derived.Answer, "2024-03") {
		t.Errorf("answer = %q, want the min period 2024-03", capsule.Derived.Answer)
	}
}

func TestBuildSkipsDerivationForOtherShapes(t *testing.T) {
	c := fuelCache()
	plan := &taxonomy.Plan{
		Shape:      taxonomy.ShapeSum,
		Route:      taxonomy.RouteSum,
		Operations: []taxonomy.Operation{{Function: taxonomy.FuncSumByCategory}},
	}
	results := compute.Execute(plan.Operations, c, zerolog.Nop())

	capsule := Build(plan, results, c)

	if capsule.Derived.Answer != "" || capsule.Derived.MaxPeriod != nil {
		t.Errorf("derived = %+v, want empty for SUM", capsule.Derived)
	}
}

func TestBuildContextCoversCacheRange(t *testing.T) {
	c := fuelCache()
	plan := &taxonomy.Plan{Shape: taxonomy.ShapeGeneral, Route: taxonomy.RouteGeneral}

	capsule := Build(plan, nil, c)

	if capsule.Context.PeriodFrom != "2024-01" || capsule.Context.PeriodTo != "2024-03" {
		t.Errorf("context range = %s..%s", capsule.Context.PeriodFrom, capsule.Context.PeriodTo)
	}
	if capsule.Context.Months != 3 {
		t.Errorf("months = %d, want 3", capsule.Context.Months)
	}
	// 1000 -> 800 overall is falling.
	if capsule.Context.OverallTrend != "falling" {
		t.Errorf("trend = %q, want falling", capsule.Context.OverallTrend)
	}
}

func TestBuildNilCache(t *testing.T) {
	plan := &taxonomy.Plan{Shape: taxonomy.ShapeGeneral, Route: taxonomy.RouteGeneral}
	capsule := Build(plan, nil, nil)
	if capsule.Context.Months != 0 {
		t.Errorf("context = %+v, want zero value", capsule.Context)
	}
}
