package textnorm

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Zdrowie i uroda", "zdrowie i uroda"},
		{"wrzesień", "wrzesien"},
		{"PAŹDZIERNIK", "pazdziernik"},
		{"Wydałem", "wydalem"},
		{"łóżko", "lozko"},
		{"", ""},
		{"abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ile wydałem na paliwo?", "ile wydalem na paliwo"},
		{"  styczeń,  2024!!  ", "styczen 2024"},
		{"porównaj: styczeń vs luty", "porownaj styczen vs luty"},
		{"...", ""},
		{"a-b-c", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
