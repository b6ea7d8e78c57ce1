package router

import (
	"regexp"
	"time"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/textnorm"
)

// Hints is everything collected locally before any model call: question
// shape, synonym matches, period, and two coarse heuristics.
type Hints struct {
	Shape          taxonomy.Shape
	Synonyms       synonyms.Result
	LooksGeneral   bool
	MultipleTopics bool
}

var (
	whenPattern    = regexp.MustCompile(`(w ktorym miesiacu|w jakim miesiacu|kiedy)`)
	maxPattern     = regexp.MustCompile(`(najwiecej|najwyzsz|rekord)`)
	minPattern     = regexp.MustCompile(`(najmniej|najnizsz)`)
	analysisWords  = regexp.MustCompile(`(przeanalizuj|analiza|50 30 20|ocen moj budzet)`)
	generalPattern = regexp.MustCompile(`^(jak|dlaczego|czy|co to|po co)\b`)
)

// collectHints runs the full local heuristic pass. It is pure: regex shape
// matching, period parsing, synonym resolution, and two lightweight flags.
func (r *Router) collectHints(query string, now time.Time) Hints {
	clean := textnorm.Clean(query)
	resolved := r.resolver.Resolve(query)
	resolved.Period = synonyms.DetectPeriodAt(query, now)

	hints := Hints{
		Shape:    detectShape(clean, resolved.Intents),
		Synonyms: resolved,
	}

	topics := make(map[string]bool)
	for _, m := range resolved.Subcategories {
		topics[m.Category] = true
	}
	for _, m := range resolved.Categories {
		topics[m.OfficialName] = true
	}
	hints.MultipleTopics = len(topics) > 1
	hints.LooksGeneral = len(topics) == 0 && len(resolved.Intents) == 0 && generalPattern.MatchString(clean)

	return hints
}

// detectShape picks the question shape from one authoritative pattern table.
// Time-anchored max/min questions are checked before plain rankings because
// both mention superlatives.
func detectShape(clean string, intents []synonyms.Intent) taxonomy.Shape {
	timeAnchored := whenPattern.MatchString(clean)
	switch {
	case timeAnchored && maxPattern.MatchString(clean):
		return taxonomy.ShapeMaxInTime
	case timeAnchored && minPattern.MatchString(clean):
		return taxonomy.ShapeMinInTime
	case synonyms.HasIntent(intents, synonyms.IntentTop) || maxPattern.MatchString(clean):
		return taxonomy.ShapeRanking
	case synonyms.HasIntent(intents, synonyms.IntentCompare):
		return taxonomy.ShapeComparison
	case synonyms.HasIntent(intents, synonyms.IntentTrend):
		return taxonomy.ShapeTrend
	case synonyms.HasIntent(intents, synonyms.IntentMonthly):
		return taxonomy.ShapeBreakdown
	case analysisWords.MatchString(clean):
		return taxonomy.ShapeAnalysis
	case synonyms.HasIntent(intents, synonyms.IntentSum) ||
		synonyms.HasIntent(intents, synonyms.IntentAverage) ||
		synonyms.HasIntent(intents, synonyms.IntentShare) ||
		synonyms.HasIntent(intents, synonyms.IntentAnomaly):
		return taxonomy.ShapeSum
	default:
		return taxonomy.ShapeGeneral
	}
}
