package synonyms

import (
	"sort"
	"strings"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/textnorm"
)

// exactTermBonus is added to a match's confidence when the synonym appears as
// a standalone token, not just a substring.
const exactTermBonus = 0.25

// SubcategoryMatch is one candidate subcategory hit in a query.
type SubcategoryMatch struct {
	Term         string  // originating synonym
	OfficialName string  // canonical subcategory
	Category     string  // canonical parent category
	Confidence   float64
}

// CategoryMatch is one candidate category hit in a query.
type CategoryMatch struct {
	Term         string
	OfficialName string
	Confidence   float64
}

// Result is everything the resolver extracted from a query. Empty lists are a
// valid outcome, not an error.
type Result struct {
	Subcategories []SubcategoryMatch
	Categories    []CategoryMatch
	Period        *PeriodHint
	Intents       []Intent
}

// Resolver matches normalized queries against a synonym table. It is a pure
// function over static tables; resolving has no side effects.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver over the given table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve normalizes the query and collects subcategory candidates, category
// candidates, a best-effort period hint, and detected intent keywords.
// Subcategory entries are checked before category entries: more specific wins.
// When multiple synonyms map to the same canonical subcategory only the
// highest-confidence hit survives.
func (r *Resolver) Resolve(query string) Result {
	clean := textnorm.Clean(query)
	result := Result{
		Period:  DetectPeriod(query),
		Intents: DetectIntents(clean),
	}
	if clean == "" {
		return result
	}

	bestSub := make(map[string]SubcategoryMatch)
	for term, sub := range r.table.subSyn {
		conf, ok := matchConfidence(clean, term)
		if !ok {
			continue
		}
		parent, canonical, found := taxonomy.FindSubcategoryParent(sub)
		if !found {
			// Override entries may point outside the taxonomy; skip them.
			continue
		}
		m := SubcategoryMatch{Term: term, OfficialName: canonical, Category: parent, Confidence: conf}
		if prev, seen := bestSub[canonical]; !seen || m.Confidence > prev.Confidence {
			bestSub[canonical] = m
		}
	}
	for _, m := range bestSub {
		result.Subcategories = append(result.Subcategories, m)
	}
	sort.Slice(result.Subcategories, func(i, j int) bool {
		if result.Subcategories[i].Confidence != result.Subcategories[j].Confidence {
			return result.Subcategories[i].Confidence > result.Subcategories[j].Confidence
		}
		return result.Subcategories[i].OfficialName < result.Subcategories[j].OfficialName
	})

	bestCat := make(map[string]CategoryMatch)
	for term, cat := range r.table.catSyn {
		conf, ok := matchConfidence(clean, term)
		if !ok {
			continue
		}
		canonical, found := taxonomy.CanonicalCategory(cat)
		if !found {
			continue
		}
		m := CategoryMatch{Term: term, OfficialName: canonical, Confidence: conf}
		if prev, seen := bestCat[canonical]; !seen || m.Confidence > prev.Confidence {
			bestCat[canonical] = m
		}
	}
	for _, m := range bestCat {
		result.Categories = append(result.Categories, m)
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		if result.Categories[i].Confidence != result.Categories[j].Confidence {
			return result.Categories[i].Confidence > result.Categories[j].Confidence
		}
		return result.Categories[i].OfficialName < result.Categories[j].OfficialName
	})

	return result
}

// matchConfidence accepts term if it is a substring of the cleaned query.
// Confidence is the relative length of the match within the query, plus a
// fixed bonus when the term matches on token boundaries.
func matchConfidence(clean, term string) (float64, bool) {
	idx := strings.Index(clean, term)
	if idx < 0 {
		return 0, false
	}
	conf := float64(len(term)) / float64(len(clean))
	if isTokenMatch(clean, term, idx) {
		conf += exactTermBonus
	}
	if conf > 1 {
		conf = 1
	}
	return conf, true
}

func isTokenMatch(clean, term string, idx int) bool {
	if idx > 0 && clean[idx-1] != ' ' {
		return false
	}
	end := idx + len(term)
	if end < len(clean) && clean[end] != ' ' {
		return false
	}
	return true
}
