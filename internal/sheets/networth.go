package sheets

import (
	"context"
	"fmt"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

// Snapshot sheet columns (A..D): ID, Kategoria, Wartosc, Data.
// Milestone sheet columns (A..F): ID, Kategoria, Cel, Osiagniety,
// DataOsiagniecia, Utworzono.

// ListSnapshots returns all snapshot rows, unordered.
func (c *Client) ListSnapshots(ctx context.Context) ([]domain.Snapshot, error) {
	rows, err := c.readRange(ctx, snapshotsRange)
	if err != nil {
		return nil, fmt.Errorf("ListSnapshots: %w", err)
	}
	var out []domain.Snapshot
	for _, row := range rows {
		id := cellString(row, 0)
		if id == "" {
			continue
		}
		out = append(out, domain.Snapshot{
			ID:       id,
			Category: cellString(row, 1),
			Value:    cellFloat(row, 2),
			TakenAt:  cellTime(row, 3),
		})
	}
	return out, nil
}

// AppendSnapshot appends one snapshot row. Snapshots are never mutated.
func (c *Client) AppendSnapshot(ctx context.Context, s domain.Snapshot) error {
	row := []interface{}{s.ID, s.Category, s.Value, s.TakenAt.Format(timestampLayout)}
	if err := c.appendRows(ctx, snapshotsRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("AppendSnapshot: %w", err)
	}
	return nil
}

// ListMilestones returns all milestone rows.
func (c *Client) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := c.readRange(ctx, milestonesRange)
	if err != nil {
		return nil, fmt.Errorf("ListMilestones: %w", err)
	}
	var out []domain.Milestone
	for _, row := range rows {
		id := cellString(row, 0)
		if id == "" {
			continue
		}
		m := domain.Milestone{
			ID:        id,
			Category:  cellString(row, 1),
			Target:    cellFloat(row, 2),
			Achieved:  cellBool(row, 3),
			CreatedAt: cellTime(row, 5),
		}
		if t := cellTime(row, 4); !t.IsZero() {
			m.AchievedAt = &t
		}
		out = append(out, m)
	}
	return out, nil
}

// AppendMilestone appends one milestone row.
func (c *Client) AppendMilestone(ctx context.Context, m domain.Milestone) error {
	achievedAt := ""
	if m.AchievedAt != nil {
		achievedAt = m.AchievedAt.Format(timestampLayout)
	}
	row := []interface{}{
		m.ID,
		m.Category,
		m.Target,
		boolCell(m.Achieved),
		achievedAt,
		m.CreatedAt.Format(timestampLayout),
	}
	if err := c.appendRows(ctx, milestonesRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("AppendMilestone: %w", err)
	}
	return nil
}

// DeleteMilestoneByID clears one milestone row.
func (c *Client) DeleteMilestoneByID(ctx context.Context, id string) error {
	rows, err := c.readRange(ctx, milestonesRange)
	if err != nil {
		return fmt.Errorf("DeleteMilestoneByID: %w", err)
	}
	for i, row := range rows {
		if cellString(row, 0) == id {
			if err := c.clearRow(ctx, "Cele", i+2, 6); err != nil {
				return fmt.Errorf("DeleteMilestoneByID: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("DeleteMilestoneByID: milestone %q not found", id)
}

// Subscription sheet columns (A..G): ID, Nazwa, KosztMiesieczny, Waluta,
// DzienOdnowienia, Aktywna, Notatka.

// ListSubscriptions returns all subscription rows.
func (c *Client) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	rows, err := c.readRange(ctx, subscriptionsRange)
	if err != nil {
		return nil, fmt.Errorf("ListSubscriptions: %w", err)
	}
	var out []domain.Subscription
	for _, row := range rows {
		id := cellString(row, 0)
		if id == "" {
			continue
		}
		out = append(out, domain.Subscription{
			ID:          id,
			Name:        cellString(row, 1),
			MonthlyCost: cellFloat(row, 2),
			Currency:    cellString(row, 3),
			RenewsDay:   cellInt(row, 4),
			Active:      cellBool(row, 5),
			Note:        cellString(row, 6),
		})
	}
	return out, nil
}
