// Package cache holds the precomputed per-category/per-month aggregates the
// compute functions read. A cache is rebuilt wholesale from transaction
// records on demand; there is no incremental invalidation and its lifetime is
// a single analysis session.
package cache

import (
	"sort"
	"time"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

// Entry is the derived, read-only aggregate for one category or one
// category|subcategory pair.
type Entry struct {
	Total        float64            `json:"total"`
	Count        int                `json:"count"`
	Periods      map[string]float64 `json:"periods"`       // "YYYY-MM" -> period total
	PeriodCounts map[string]int     `json:"period_counts"` // "YYYY-MM" -> row count
}

// Monthly is the per-period expense/income rollup.
type Monthly struct {
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

// Cache is the full aggregate view over one set of transaction records.
// All amounts are base-currency.
type Cache struct {
	Categories    map[string]*Entry  // keyed by category
	Subcategories map[string]*Entry  // keyed by "category|subcategory"
	IncomeSources map[string]*Entry  // keyed by income source
	Months        map[string]*Monthly

	From    string // earliest period present, "" when empty
	To      string // latest period present
	BuiltAt time.Time
}

// SubKey builds the composite subcategory key.
func SubKey(category, subcategory string) string {
	return category + "|" + subcategory
}

// Build derives a fresh cache from transaction records. Internal transfers
// are excluded entirely; income rows feed the monthly income totals and the
// per-source aggregates, expense rows feed everything else.
func Build(txs []domain.Transaction) *Cache {
	c := &Cache{
		Categories:    make(map[string]*Entry),
		Subcategories: make(map[string]*Entry),
		IncomeSources: make(map[string]*Entry),
		Months:        make(map[string]*Monthly),
		BuiltAt:       time.Now(),
	}

	for _, tx := range txs {
		if tx.InternalTransfer {
			continue
		}
		period := tx.Period()
		month := c.month(period)

		if tx.Income {
			month.Income += tx.AmountBase
			source := tx.Source
			if source == "" {
				source = "Inne przychody"
			}
			addTo(c.IncomeSources, source, period, tx.AmountBase)
			continue
		}

		month.Expenses += tx.AmountBase
		addTo(c.Categories, tx.Category, period, tx.AmountBase)
		if tx.Subcategory != "" {
			addTo(c.Subcategories, SubKey(tx.Category, tx.Subcategory), period, tx.AmountBase)
		}
	}

	c.From, c.To = periodRange(c.Months)
	return c
}

func (c *Cache) month(period string) *Monthly {
	m, ok := c.Months[period]
	if !ok {
		m = &Monthly{}
		c.Months[period] = m
	}
	return m
}

func addTo(entries map[string]*Entry, key, period string, amount float64) {
	e, ok := entries[key]
	if !ok {
		e = &Entry{Periods: make(map[string]float64), PeriodCounts: make(map[string]int)}
		entries[key] = e
	}
	e.Total += amount
	e.Count++
	e.Periods[period] += amount
	e.PeriodCounts[period]++
}

func periodRange(months map[string]*Monthly) (from, to string) {
	for p := range months {
		if from == "" || p < from {
			from = p
		}
		if to == "" || p > to {
			to = p
		}
	}
	return from, to
}

// Entry looks up the aggregate for a category or category/subcategory pair.
// The second return is false when the taxonomy key has no recorded spending.
func (c *Cache) Entry(category, subcategory string) (*Entry, bool) {
	if subcategory != "" {
		e, ok := c.Subcategories[SubKey(category, subcategory)]
		return e, ok
	}
	e, ok := c.Categories[category]
	return e, ok
}

// PeriodKeys returns every period present, sorted ascending.
func (c *Cache) PeriodKeys() []string {
	keys := make([]string, 0, len(c.Months))
	for p := range c.Months {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	return keys
}

// InRange reports whether period falls inside the inclusive bounds; an empty
// bound means unconstrained, so two empty bounds mean "all time".
func InRange(period, from, to string) bool {
	if from != "" && period < from {
		return false
	}
	if to != "" && period > to {
		return false
	}
	return true
}
