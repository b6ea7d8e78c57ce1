package synonyms

import (
	"regexp"
	"strconv"
	"time"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/textnorm"
	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

// PeriodHint is a detected time constraint, both bounds inclusive "YYYY-MM"
// keys. A nil hint means "no constraint".
type PeriodHint struct {
	From string
	To   string
}

// monthStems map folded Polish month-name stems to month numbers. Stems cover
// the inflected forms ("styczen", "stycznia", "styczniu").
var monthStems = []struct {
	stem  string
	month int
}{
	{"styczn", 1},
	{"stycze", 1},
	{"luty", 2},
	{"lutego", 2},
	{"lutym", 2},
	{"marzec", 3},
	{"marc", 3},
	{"kwiet", 4},
	{"maj", 5},
	{"czerw", 6},
	{"lipc", 7},
	{"lipiec", 7},
	{"sierp", 8},
	{"wrzes", 9},
	{"pazdzier", 10},
	{"listopad", 11},
	{"grud", 12},
}

var (
	yearPattern       = regexp.MustCompile(`\b(20\d{2})\b`)
	lastNPattern      = regexp.MustCompile(`ostatni(?:e|ch)? (\d{1,2}) miesi`)
	lastMonthPattern  = regexp.MustCompile(`(ostatni|zeszly|poprzedni)m? miesi`)
	thisYearPattern   = regexp.MustCompile(`(tym roku|ten rok|biezacy rok|biezacym roku)`)
	monthWordBoundary = regexp.MustCompile(`[a-z]+`)
)

// DetectPeriod parses the query's explicit time expressions relative to now.
func DetectPeriod(query string) *PeriodHint {
	return DetectPeriodAt(query, time.Now())
}

// DetectPeriodAt is DetectPeriod with an injectable clock. Recognized forms:
// explicit year, explicit month name (with optional year), "last N months",
// "last month", "this year". Returns nil when nothing matches.
func DetectPeriodAt(query string, now time.Time) *PeriodHint {
	clean := textnorm.Clean(query)
	if clean == "" {
		return nil
	}

	if m := lastNPattern.FindStringSubmatch(clean); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			from := now.AddDate(0, -(n - 1), 0)
			return &PeriodHint{From: domain.PeriodOf(from), To: domain.PeriodOf(now)}
		}
	}

	if lastMonthPattern.MatchString(clean) {
		prev := now.AddDate(0, -1, 0)
		p := domain.PeriodOf(prev)
		return &PeriodHint{From: p, To: p}
	}

	if thisYearPattern.MatchString(clean) {
		return &PeriodHint{
			From: domain.Period(now.Year(), 1),
			To:   domain.PeriodOf(now),
		}
	}

	year := 0
	if m := yearPattern.FindStringSubmatch(clean); m != nil {
		year, _ = strconv.Atoi(m[1])
	}

	if month := detectMonth(clean); month > 0 {
		y := year
		if y == 0 {
			y = now.Year()
		}
		p := domain.Period(y, month)
		return &PeriodHint{From: p, To: p}
	}

	if year > 0 {
		return &PeriodHint{From: domain.Period(year, 1), To: domain.Period(year, 12)}
	}

	return nil
}

// detectMonth scans the query's words for a month-name stem. "maj" is a full
// word only, everything else matches as a prefix.
func detectMonth(clean string) int {
	for _, word := range monthWordBoundary.FindAllString(clean, -1) {
		for _, entry := range monthStems {
			if entry.stem == "maj" {
				if word == "maj" || word == "maja" || word == "maju" {
					return entry.month
				}
				continue
			}
			if len(word) >= len(entry.stem) && word[:len(entry.stem)] == entry.stem {
				return entry.month
			}
		}
	}
	return 0
}
