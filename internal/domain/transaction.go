package domain

import "time"

// Transaction is one expense or income line item as stored in the spreadsheet
// backend. A month is "closed" by convention only; nothing here enforces it.
type Transaction struct {
	ID    string
	Year  int
	Month int // 1-12

	Category    string
	Subcategory string

	// Amount is in the original currency; AmountBase is the amount converted
	// into the base currency at insert time. AmountBase is frozen: it is never
	// recomputed if exchange rates change later.
	Amount     float64
	Currency   string
	AmountBase float64

	Fixed            bool // recurring fixed cost
	InternalTransfer bool // excluded from spending analytics

	Note      string
	CreatedAt time.Time

	// Income marks income rows; Source is only meaningful for those.
	Income bool
	Source string
}

// Period returns the transaction's year-month key, e.g. "2024-03".
func (t *Transaction) Period() string {
	return Period(t.Year, t.Month)
}
