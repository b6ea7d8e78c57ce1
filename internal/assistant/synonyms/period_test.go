package synonyms

import (
	"testing"
	"time"
)

func TestDetectPeriodAt(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    string
		wantFrom string
		wantTo   string
		wantNil  bool
	}{
		{"month with year", "wydatki w styczniu 2024", "2024-01", "2024-01", false},
		{"month without year uses current year", "ile wydałem we wrześniu", "2024-09", "2024-09", false},
		{"inflected month", "paliwo w lutym 2023", "2023-02", "2023-02", false},
		{"bare year is whole year", "podsumuj 2023", "2023-01", "2023-12", false},
		{"last n months", "ostatnie 3 miesiące", "2024-04", "2024-06", false},
		{"last month", "w zeszłym miesiącu", "2024-05", "2024-05", false},
		{"this year", "w tym roku", "2024-01", "2024-06", false},
		{"maj as full word", "wydatki w maju", "2024-05", "2024-05", false},
		{"maj not matched as prefix", "kupiłem majonez", "", "", true},
		{"no time expression", "ile wydałem na paliwo", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := DetectPeriodAt(tt.query, now)
			if tt.wantNil {
				if hint != nil {
					t.Fatalf("DetectPeriodAt(%q) = %+v, want nil", tt.query, hint)
				}
				return
			}
			if hint == nil {
				t.Fatalf("DetectPeriodAt(%q) = nil, want %s..%s", tt.query, tt.wantFrom, tt.wantTo)
			}
			if hint.From != tt.wantFrom || hint.To != tt.wantTo {
				t.Errorf("DetectPeriodAt(%q) = %s..%s, want %s..%s", tt.query, hint.From, hint.To, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
