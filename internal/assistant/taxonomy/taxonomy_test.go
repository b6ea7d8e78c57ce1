package taxonomy

import "testing"

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Jedzenie", "Jedzenie", true},
		{"jedzenie", "Jedzenie", true},
		{"AUTO I TRANSPORT", "Auto i transport", true},
		{"Oszczędności", "", false}, // subcategory, not category
		{"nope", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CanonicalCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CanonicalCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFindSubcategoryParent(t *testing.T) {
	tests := []struct {
		in         string
		wantParent string
		wantSub    string
		wantOK     bool
	}{
		{"Paliwo", "Auto i transport", "Paliwo", true},
		{"paliwo", "Auto i transport", "Paliwo", true},
		{"zdrowie i uroda", "Osobiste", "Zdrowie i uroda", true},
		{"Spożywcze", "Jedzenie", "Spożywcze", true},
		{"spozywcze", "Jedzenie", "Spożywcze", true},
		{"Jedzenie", "", "", false}, // category, not subcategory
		{"unknown", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			parent, sub, ok := FindSubcategoryParent(tt.in)
			if parent != tt.wantParent || sub != tt.wantSub || ok != tt.wantOK {
				t.Errorf("FindSubcategoryParent(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, parent, sub, ok, tt.wantParent, tt.wantSub, tt.wantOK)
			}
		})
	}
}

func TestKnownFunctionIsCaseInsensitive(t *testing.T) {
	fn, ok := KnownFunction("SUMBYCATEGORY")
	if !ok || fn != FuncSumByCategory {
		t.Errorf("KnownFunction(SUMBYCATEGORY) = (%q, %v), want (%q, true)", fn, ok, FuncSumByCategory)
	}
	if _, ok := KnownFunction("deleteEverything"); ok {
		t.Error("KnownFunction accepted a non-whitelisted name")
	}
	if _, ok := KnownFunction(FunctionSentinel); ok {
		t.Error("KnownFunction accepted the sentinel")
	}
}

func TestRouteMappings(t *testing.T) {
	// Every whitelisted function must belong to a route family, every shape
	// must have both a default route and a default function.
	for _, fn := range Functions {
		if _, ok := RouteForFunction(fn); !ok {
			t.Errorf("RouteForFunction(%q) has no mapping", fn)
		}
	}
	for _, shape := range Shapes {
		if _, ok := RouteForShape(shape); !ok {
			t.Errorf("RouteForShape(%q) has no mapping", shape)
		}
		if _, ok := FunctionForShape(shape); !ok {
			t.Errorf("FunctionForShape(%q) has no mapping", shape)
		}
	}
	for _, route := range Routes {
		if _, ok := FunctionForRoute(route); !ok {
			t.Errorf("FunctionForRoute(%q) has no mapping", route)
		}
	}

	// Time-anchored questions need the full monthly series even though their
	// route family is trend.
	if r, _ := RouteForShape(ShapeMaxInTime); r != RouteTrend {
		t.Errorf("RouteForShape(MAX_IN_TIME) = %q, want %q", r, RouteTrend)
	}
	if fn, _ := FunctionForShape(ShapeMaxInTime); fn != FuncMonthlyBreakdown {
		t.Errorf("FunctionForShape(MAX_IN_TIME) = %q, want %q", fn, FuncMonthlyBreakdown)
	}
	if fn, _ := FunctionForShape(ShapeMinInTime); fn != FuncMonthlyBreakdown {
		t.Errorf("FunctionForShape(MIN_IN_TIME) = %q, want %q", fn, FuncMonthlyBreakdown)
	}
}
