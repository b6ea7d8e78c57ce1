package synonyms

import (
	"testing"
)

func TestResolveFuelQuery(t *testing.T) {
	r := NewResolver(DefaultTable())

	result := r.Resolve("ile wydałem na paliwo w styczniu 2024")

	if len(result.Subcategories) == 0 {
		t.Fatal("expected at least one subcategory match")
	}
	best := result.Subcategories[0]
	if best.OfficialName != "Paliwo" || best.Category != "Auto i transport" {
		t.Errorf("best match = %q under %q, want Paliwo under Auto i transport", best.OfficialName, best.Category)
	}
	if best.Confidence <= 0 || best.Confidence > 1 {
		t.Errorf("confidence %v out of (0, 1]", best.Confidence)
	}

	if result.Period == nil {
		t.Fatal("expected a period hint")
	}
	if result.Period.From != "2024-01" || result.Period.To != "2024-01" {
		t.Errorf("period = %s..%s, want 2024-01..2024-01", result.Period.From, result.Period.To)
	}

	if !HasIntent(result.Intents, IntentSum) {
		t.Errorf("intents = %v, want sum present", result.Intents)
	}
}

func TestResolveDiacriticsInsensitive(t *testing.T) {
	r := NewResolver(DefaultTable())

	withDiacritics := r.Resolve("wydatki na paliwo")
	folded := r.Resolve("wydatki na PALIWO")

	if len(withDiacritics.Subcategories) == 0 || len(folded.Subcategories) == 0 {
		t.Fatal("both spellings must match")
	}
	if withDiacritics.Subcategories[0].OfficialName != folded.Subcategories[0].OfficialName {
		t.Error("case must not affect the match")
	}
}

func TestResolveDedupsPerCanonicalName(t *testing.T) {
	r := NewResolver(DefaultTable())

	// "benzyna" and "paliwo" both map to Paliwo; only one match may survive.
	result := r.Resolve("benzyna i paliwo")

	seen := 0
	for _, m := range result.Subcategories {
		if m.OfficialName == "Paliwo" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("Paliwo appears %d times, want 1", seen)
	}
}

func TestResolveCategoryMatch(t *testing.T) {
	r := NewResolver(DefaultTable())

	result := r.Resolve("ile kosztuje mnie samochód")

	found := false
	for _, m := range result.Categories {
		if m.OfficialName == "Auto i transport" {
			found = true
		}
	}
	if !found {
		t.Errorf("categories = %+v, want Auto i transport", result.Categories)
	}
}

func TestResolveNoMatches(t *testing.T) {
	r := NewResolver(DefaultTable())

	result := r.Resolve("xyzzy")

	if len(result.Subcategories) != 0 || len(result.Categories) != 0 {
		t.Errorf("unexpected matches: %+v", result)
	}
}

func TestResolveEmptyQuery(t *testing.T) {
	r := NewResolver(DefaultTable())

	result := r.Resolve("   ")

	if len(result.Subcategories) != 0 || len(result.Categories) != 0 || len(result.Intents) != 0 {
		t.Errorf("empty query produced matches: %+v", result)
	}
}

func TestTokenMatchBeatsSubstringMatch(t *testing.T) {
	clean := "wydatki na gaz w zimie"

	tokenConf, ok := matchConfidence(clean, "gaz")
	if !ok {
		t.Fatal("token term did not match")
	}
	substrConf, ok := matchConfidence("wydatki na gazete", "gaz")
	if !ok {
		t.Fatal("substring term did not match")
	}
	if tokenConf <= substrConf {
		t.Errorf("token confidence %v should exceed substring confidence %v", tokenConf, substrConf)
	}
}

func TestDetectIntents(t *testing.T) {
	tests := []struct {
		clean string
		want  Intent
	}{
		{"ile wydalem na jedzenie", IntentSum},
		{"jaki jest trend wydatkow", IntentTrend},
		{"porownaj styczen i luty", IntentCompare},
		{"top 5 najwiekszych wydatkow", IntentTop},
		{"ile wydaje srednio", IntentAverage},
		{"jaki procent budzetu to auto", IntentShare},
		{"pokaz nietypowe wydatki", IntentAnomaly},
	}

	for _, tt := range tests {
		t.Run(tt.clean, func(t *testing.T) {
			intents := DetectIntents(tt.clean)
			if !HasIntent(intents, tt.want) {
				t.Errorf("DetectIntents(%q) = %v, want %q present", tt.clean, intents, tt.want)
			}
		})
	}
}
