// Package networth computes milestone status and growth analytics over the
// append-only snapshot series.
package networth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
	"github.com/marcinkowskimikolaj/assetly/internal/sheets"
)

// ErrAlreadyCaptured is returned when a category already has a snapshot today.
var ErrAlreadyCaptured = errors.New("networth: snapshot already captured today")

// Service reads snapshots and milestones from the spreadsheet backend.
type Service struct {
	repo sheets.NetWorthRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewService creates a net-worth service.
func NewService(repo sheets.NetWorthRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// CaptureSnapshot appends a snapshot for one category, enforcing the
// at-most-one-per-day policy.
func (s *Service) CaptureSnapshot(ctx context.Context, category string, value float64) (*domain.Snapshot, error) {
	existing, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("CaptureSnapshot: %w", err)
	}

	// Same calendar day in the clock's zone, not the same UTC epoch day.
	now := s.now()
	todayYear, todayMonth, todayDay := now.Date()
	for _, snap := range existing {
		if snap.Category != category {
			continue
		}
		y, m, d := snap.TakenAt.In(now.Location()).Date()
		if y == todayYear && m == todayMonth && d == todayDay {
			return nil, ErrAlreadyCaptured
		}
	}

	snapshot := domain.Snapshot{
		ID:       uuid.NewString(),
		Category: category,
		Value:    value,
		TakenAt:  now,
	}
	if err := s.repo.AppendSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("CaptureSnapshot: %w", err)
	}
	return &snapshot, nil
}

// Milestones returns all milestones with achieved status recomputed from the
// latest snapshot per category. Achieved is a derived fact: the stored flag
// is ignored in favor of the snapshot series.
func (s *Service) Milestones(ctx context.Context) ([]domain.Milestone, error) {
	milestones, err := s.repo.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("Milestones: %w", err)
	}
	snapshots, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("Milestones: %w", err)
	}

	for i := range milestones {
		m := &milestones[i]
		m.Achieved = false
		m.AchievedAt = nil
		// First snapshot at or above the target decides the achieved date.
		series := categorySeries(snapshots, m.Category)
		for _, snap := range series {
			if snap.Value >= m.Target {
				m.Achieved = true
				t := snap.TakenAt
				m.AchievedAt = &t
				break
			}
		}
	}
	return milestones, nil
}

// CreateMilestone appends a new milestone for a category.
func (s *Service) CreateMilestone(ctx context.Context, category string, target float64) (*domain.Milestone, error) {
	if target <= 0 {
		return nil, fmt.Errorf("CreateMilestone: target must be positive")
	}
	m := domain.Milestone{
		ID:        uuid.NewString(),
		Category:  category,
		Target:    target,
		CreatedAt: s.now(),
	}
	if err := s.repo.AppendMilestone(ctx, m); err != nil {
		return nil, fmt.Errorf("CreateMilestone: %w", err)
	}
	return &m, nil
}

// DeleteMilestone removes a milestone by ID.
func (s *Service) DeleteMilestone(ctx context.Context, id string) error {
	if err := s.repo.DeleteMilestoneByID(ctx, id); err != nil {
		return fmt.Errorf("DeleteMilestone: %w", err)
	}
	return nil
}

// CategoryGrowth is one category's growth over the report window.
type CategoryGrowth struct {
	Category  string  `json:"category"`
	Latest    float64 `json:"latest"`
	Earlier   float64 `json:"earlier"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// Report is the full growth report.
type Report struct {
	MonthsBack int              `json:"months_back"`
	Total      float64          `json:"total"`
	Change     float64          `json:"change"`
	Categories []CategoryGrowth `json:"categories"`
}

// GrowthReport compares the latest snapshot per category against the closest
// snapshot at or before the cutoff monthsBack months ago.
func (s *Service) GrowthReport(ctx context.Context, monthsBack int) (*Report, error) {
	if monthsBack <= 0 {
		monthsBack = 6
	}
	snapshots, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("GrowthReport: %w", err)
	}

	cutoff := s.now().AddDate(0, -monthsBack, 0)
	byCategory := make(map[string][]domain.Snapshot)
	for _, snap := range snapshots {
		byCategory[snap.Category] = append(byCategory[snap.Category], snap)
	}

	report := &Report{MonthsBack: monthsBack}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		series := byCategory[name]
		sort.Slice(series, func(i, j int) bool { return series[i].TakenAt.Before(series[j].TakenAt) })

		latest := series[len(series)-1]
		earlier := series[0]
		for _, snap := range series {
			if !snap.TakenAt.After(cutoff) {
				earlier = snap
			}
		}

		growth := CategoryGrowth{
			Category: name,
			Latest:   latest.Value,
			Earlier:  earlier.Value,
			Change:   latest.Value - earlier.Value,
		}
		if earlier.Value != 0 {
			growth.ChangePct = growth.Change / earlier.Value * 100
		}
		report.Categories = append(report.Categories, growth)
		report.Total += latest.Value
		report.Change += growth.Change
	}
	return report, nil
}

// categorySeries returns a category's snapshots sorted by time.
func categorySeries(snapshots []domain.Snapshot, category string) []domain.Snapshot {
	var series []domain.Snapshot
	for _, snap := range snapshots {
		if snap.Category == category {
			series = append(series, snap)
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].TakenAt.Before(series[j].TakenAt) })
	return series
}
