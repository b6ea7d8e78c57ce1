// Package taxonomy holds the closed set of budget categories, subcategories,
// routes and compute functions, and the technical validation pass that repairs
// routing plans produced by a model.
package taxonomy

import (
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/textnorm"
)

// categoryOrder fixes the enumeration order for prompts and reports.
var categoryOrder = []string{
	"Jedzenie",
	"Auto i transport",
	"Mieszkanie",
	"Osobiste",
	"Dzieci",
	"Finanse",
	"Subskrypcje",
	"Inne",
}

// categories maps each category to its fixed subcategory list. A transaction's
// subcategory, if present, must belong to its parent's list.
var categories = map[string][]string{
	"Jedzenie":         {"Spożywcze", "Restauracje", "Jedzenie na mieście", "Kawa"},
	"Auto i transport": {"Paliwo", "Serwis i naprawy", "Ubezpieczenie auta", "Parkingi", "Transport publiczny"},
	"Mieszkanie":       {"Czynsz", "Prąd", "Gaz", "Woda", "Internet", "Wyposażenie"},
	"Osobiste":         {"Zdrowie i uroda", "Odzież", "Rozrywka", "Sport", "Edukacja", "Prezenty"},
	"Dzieci":           {"Przedszkole", "Zabawki", "Ubrania dziecięce"},
	"Finanse":          {"Oszczędności", "Inwestycje", "Prowizje i opłaty", "Raty kredytu"},
	"Subskrypcje":      {"Streaming", "Oprogramowanie", "Telefon"},
	"Inne":             {},
}

// IncomeSources is the closed list of income source categories.
var IncomeSources = []string{
	"Wynagrodzenie",
	"Premia",
	"Działalność",
	"Odsetki",
	"Inne przychody",
}

// CategoryNames returns the categories in their fixed enumeration order.
func CategoryNames() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Subcategories returns the fixed subcategory list for a canonical category.
func Subcategories(category string) []string {
	subs := categories[category]
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// CanonicalCategory resolves name to a canonical category, matching with
// lowercased, diacritic-stripped comparison.
func CanonicalCategory(name string) (string, bool) {
	folded := textnorm.Clean(name)
	if folded == "" {
		return "", false
	}
	for _, cat := range categoryOrder {
		if textnorm.Clean(cat) == folded {
			return cat, true
		}
	}
	return "", false
}

// CanonicalSubcategory resolves name to a canonical subcategory of category.
func CanonicalSubcategory(category, name string) (string, bool) {
	folded := textnorm.Clean(name)
	if folded == "" {
		return "", false
	}
	for _, sub := range categories[category] {
		if textnorm.Clean(sub) == folded {
			return sub, true
		}
	}
	return "", false
}

// FindSubcategoryParent searches every category for a subcategory matching
// name, returning the parent and the canonical subcategory.
func FindSubcategoryParent(name string) (parent, sub string, ok bool) {
	for _, cat := range categoryOrder {
		if canonical, found := CanonicalSubcategory(cat, name); found {
			return cat, canonical, true
		}
	}
	return "", "", false
}
