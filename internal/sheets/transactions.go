package sheets

import (
	"context"
	"fmt"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

// Expense sheet columns (A..L):
// ID, Rok, Miesiac, Kategoria, Podkategoria, Kwota, Waluta, KwotaPLN,
// Staly, Transfer, Notatka, Utworzono.
//
// Income sheet columns (A..I):
// ID, Rok, Miesiac, Zrodlo, Kwota, Waluta, KwotaPLN, Notatka, Utworzono.

func expenseFromRow(row []interface{}) (domain.Transaction, bool) {
	id := cellString(row, 0)
	if id == "" {
		// Cleared (deleted) row.
		return domain.Transaction{}, false
	}
	return domain.Transaction{
		ID:               id,
		Year:             cellInt(row, 1),
		Month:            cellInt(row, 2),
		Category:         cellString(row, 3),
		Subcategory:      cellString(row, 4),
		Amount:           cellFloat(row, 5),
		Currency:         cellString(row, 6),
		AmountBase:       cellFloat(row, 7),
		Fixed:            cellBool(row, 8),
		InternalTransfer: cellBool(row, 9),
		Note:             cellString(row, 10),
		CreatedAt:        cellTime(row, 11),
	}, true
}

func expenseToRow(tx domain.Transaction) []interface{} {
	return []interface{}{
		tx.ID,
		tx.Year,
		tx.Month,
		tx.Category,
		tx.Subcategory,
		tx.Amount,
		tx.Currency,
		tx.AmountBase,
		boolCell(tx.Fixed),
		boolCell(tx.InternalTransfer),
		tx.Note,
		tx.CreatedAt.Format(timestampLayout),
	}
}

func incomeFromRow(row []interface{}) (domain.Transaction, bool) {
	id := cellString(row, 0)
	if id == "" {
		return domain.Transaction{}, false
	}
	return domain.Transaction{
		ID:         id,
		Year:       cellInt(row, 1),
		Month:      cellInt(row, 2),
		Source:     cellString(row, 3),
		Amount:     cellFloat(row, 4),
		Currency:   cellString(row, 5),
		AmountBase: cellFloat(row, 6),
		Note:       cellString(row, 7),
		CreatedAt:  cellTime(row, 8),
		Income:     true,
	}, true
}

func incomeToRow(tx domain.Transaction) []interface{} {
	return []interface{}{
		tx.ID,
		tx.Year,
		tx.Month,
		tx.Source,
		tx.Amount,
		tx.Currency,
		tx.AmountBase,
		tx.Note,
		tx.CreatedAt.Format(timestampLayout),
	}
}

// ListTransactions reads both the expense and income sheets and filters by
// period range client-side; the Sheets API has no row-level query.
func (c *Client) ListTransactions(ctx context.Context, fromPeriod, toPeriod string) ([]domain.Transaction, error) {
	var out []domain.Transaction

	expenseRows, err := c.readRange(ctx, expensesRange)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	for _, row := range expenseRows {
		tx, ok := expenseFromRow(row)
		if ok && inPeriodRange(tx, fromPeriod, toPeriod) {
			out = append(out, tx)
		}
	}

	incomeRows, err := c.readRange(ctx, incomeRange)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	for _, row := range incomeRows {
		tx, ok := incomeFromRow(row)
		if ok && inPeriodRange(tx, fromPeriod, toPeriod) {
			out = append(out, tx)
		}
	}

	return out, nil
}

func inPeriodRange(tx domain.Transaction, fromPeriod, toPeriod string) bool {
	p := tx.Period()
	if fromPeriod != "" && p < fromPeriod {
		return false
	}
	if toPeriod != "" && p > toPeriod {
		return false
	}
	return true
}

// AppendTransactions writes rows to the matching sheet. Base amounts must
// already be set; this layer does not convert currencies.
func (c *Client) AppendTransactions(ctx context.Context, txs []domain.Transaction) error {
	var expenseRows, incomeRows [][]interface{}
	for _, tx := range txs {
		if tx.Income {
			incomeRows = append(incomeRows, incomeToRow(tx))
		} else {
			expenseRows = append(expenseRows, expenseToRow(tx))
		}
	}
	if len(expenseRows) > 0 {
		if err := c.appendRows(ctx, expensesRange, expenseRows); err != nil {
			return fmt.Errorf("AppendTransactions: %w", err)
		}
	}
	if len(incomeRows) > 0 {
		if err := c.appendRows(ctx, incomeRange, incomeRows); err != nil {
			return fmt.Errorf("AppendTransactions: %w", err)
		}
	}
	return nil
}

// DeleteTransactionsByMonth clears every expense row of one month.
func (c *Client) DeleteTransactionsByMonth(ctx context.Context, year, month int) error {
	rows, err := c.readRange(ctx, expensesRange)
	if err != nil {
		return fmt.Errorf("DeleteTransactionsByMonth: %w", err)
	}
	for i, row := range rows {
		tx, ok := expenseFromRow(row)
		if !ok {
			continue
		}
		if tx.Year == year && tx.Month == month {
			// Data rows start at sheet row 2.
			if err := c.clearRow(ctx, "Wydatki", i+2, 12); err != nil {
				return fmt.Errorf("DeleteTransactionsByMonth: %w", err)
			}
		}
	}
	return nil
}

// DeleteTransactionByID clears the expense row with the given identifier.
func (c *Client) DeleteTransactionByID(ctx context.Context, id string) error {
	rows, err := c.readRange(ctx, expensesRange)
	if err != nil {
		return fmt.Errorf("DeleteTransactionByID: %w", err)
	}
	for i, row := range rows {
		if cellString(row, 0) == id {
			if err := c.clearRow(ctx, "Wydatki", i+2, 12); err != nil {
				return fmt.Errorf("DeleteTransactionByID: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("DeleteTransactionByID: transaction %q not found", id)
}
