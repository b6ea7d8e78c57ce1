package domain

import (
	"fmt"
	"time"
)

// Period formats a year and month as the canonical "YYYY-MM" key used by the
// aggregate cache and all period filters.
func Period(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// PeriodOf returns the period key for a point in time.
func PeriodOf(t time.Time) string {
	return Period(t.Year(), int(t.Month()))
}

// ParsePeriod splits a "YYYY-MM" key back into year and month.
func ParsePeriod(p string) (year, month int, err error) {
	if _, err := fmt.Sscanf(p, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("ParsePeriod: invalid period %q: %w", p, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("ParsePeriod: month out of range in %q", p)
	}
	return year, month, nil
}

// AddMonths shifts a period key by n months (n may be negative).
func AddMonths(p string, n int) (string, error) {
	year, month, err := ParsePeriod(p)
	if err != nil {
		return "", err
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return PeriodOf(t), nil
}
