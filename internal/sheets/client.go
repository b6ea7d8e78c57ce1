// Package sheets is the spreadsheet backend: every table is a fixed-column
// sheet with a header row, addressed by sheet name and A1-style range.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"
)

// Sheet names and data ranges (row 1 is always the header).
const (
	expensesRange      = "Wydatki!A2:L"
	incomeRange        = "Przychody!A2:I"
	snapshotsRange     = "Snapshoty!A2:D"
	milestonesRange    = "Cele!A2:F"
	subscriptionsRange = "Subskrypcje!A2:G"
)

const timestampLayout = time.RFC3339

// Client wraps the Sheets API for one spreadsheet. Credentials come from
// application default credentials or GOOGLE_APPLICATION_CREDENTIALS.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient creates a client bound to the given spreadsheet.
func NewClient(ctx context.Context, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets.NewClient: spreadsheet ID is required")
	}
	svc, err := sheets.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets.NewClient: create service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// readRange fetches all data rows of one table.
func (c *Client) readRange(ctx context.Context, a1 string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", a1, err)
	}
	return resp.Values, nil
}

// appendRows appends rows at the bottom of a table.
func (c *Client) appendRows(ctx context.Context, a1 string, rows [][]interface{}) error {
	body := &sheets.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append to %s: %w", a1, err)
	}
	return nil
}

// clearRow blanks one data row. Reads skip blank rows, so a cleared row is
// equivalent to a deleted one without renumbering the sheet.
func (c *Client) clearRow(ctx context.Context, sheetName string, rowIndex, lastCol int) error {
	a1 := fmt.Sprintf("%s!A%d:%s%d", sheetName, rowIndex, columnLetter(lastCol), rowIndex)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, a1, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", a1, err)
	}
	return nil
}

func columnLetter(n int) string {
	// Tables here never exceed 26 columns.
	return string(rune('A' + n - 1))
}

// Cell accessors. Sheets return everything as strings or numbers depending on
// cell formatting; these normalize both.

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	if s, ok := row[idx].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}

func cellFloat(row []interface{}, idx int) float64 {
	if idx >= len(row) || row[idx] == nil {
		return 0
	}
	switch v := row[idx].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		normalized := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		f, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func cellInt(row []interface{}, idx int) int {
	return int(cellFloat(row, idx))
}

func cellBool(row []interface{}, idx int) bool {
	s := strings.ToLower(cellString(row, idx))
	return s == "true" || s == "tak" || s == "1"
}

func cellTime(row []interface{}, idx int) time.Time {
	s := cellString(row, idx)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
