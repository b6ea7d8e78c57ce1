package synonyms

import "strings"

// Intent is a keyword-detected hint about what the user wants computed.
type Intent string

const (
	IntentSum     Intent = "sum"
	IntentTrend   Intent = "trend"
	IntentCompare Intent = "compare"
	IntentTop     Intent = "top"
	IntentMonthly Intent = "monthly"
	IntentAverage Intent = "average"
	IntentShare   Intent = "share"
	IntentAnomaly Intent = "anomaly"
)

// intentKeywords maps folded keyword fragments to intents. One authoritative
// table; the router builds its shape heuristics on top of these.
var intentKeywords = map[Intent][]string{
	IntentSum:     {"ile", "suma", "lacznie", "wydalem", "wydalam", "wydalismy", "koszt"},
	IntentTrend:   {"trend", "zmienia", "rosnie", "spada", "dynamika"},
	IntentCompare: {"porownaj", "porownanie", "roznica", "wiecej niz", "mniej niz"},
	IntentTop:     {"najwiecej", "najwieksze", "top", "ranking", "najdrozsze"},
	IntentMonthly: {"miesiecznie", "co miesiac", "miesieczny", "po miesiacach"},
	IntentAverage: {"srednio", "srednia", "przecietnie"},
	IntentShare:   {"udzial", "procent", "odsetek"},
	IntentAnomaly: {"anomalia", "anomalie", "nietypowe", "dziwne"},
}

// intentOrder keeps detection output deterministic.
var intentOrder = []Intent{
	IntentSum, IntentTrend, IntentCompare, IntentTop,
	IntentMonthly, IntentAverage, IntentShare, IntentAnomaly,
}

// DetectIntents returns the intents whose keywords appear in the cleaned query.
func DetectIntents(clean string) []Intent {
	var out []Intent
	for _, intent := range intentOrder {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(clean, kw) {
				out = append(out, intent)
				break
			}
		}
	}
	return out
}

// HasIntent reports whether intent is present in the detected list.
func HasIntent(intents []Intent, intent Intent) bool {
	for _, i := range intents {
		if i == intent {
			return true
		}
	}
	return false
}
