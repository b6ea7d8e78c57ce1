package domain

import "time"

// Snapshot is a periodic capture of total asset value per category. Snapshots
// are appended, never mutated; at most one per category per day.
type Snapshot struct {
	ID       string
	Category string
	Value    float64
	TakenAt  time.Time
}

// Milestone is a target net-worth value for a category. Achieved status is
// recomputed from snapshots, not stored as an independent fact.
type Milestone struct {
	ID         string
	Category   string
	Target     float64
	Achieved   bool
	AchievedAt *time.Time
	CreatedAt  time.Time
}

// Subscription is a life-admin record of a recurring paid service.
type Subscription struct {
	ID          string
	Name        string
	MonthlyCost float64
	Currency    string
	RenewsDay   int // day of month
	Active      bool
	Note        string
}
