// Package jobs defines the background work the service schedules: rebuilding
// the aggregate cache after writes and capturing daily net-worth snapshots.
package jobs

import (
	"context"
	"time"
)

// Kind identifies what a refresh job does.
type Kind string

const (
	// KindRebuildCache rebuilds the aggregate cache from the spreadsheet.
	KindRebuildCache Kind = "rebuild_cache"
	// KindCaptureSnapshot records today's net-worth snapshots.
	KindCaptureSnapshot Kind = "capture_snapshot"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRetrying  Status = "retrying"
)

// RefreshJob is a unit of background work. For KindCaptureSnapshot, Category
// and Value describe the snapshot to record; KindRebuildCache needs neither.
type RefreshJob struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value,omitempty"`

	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count"`
	MaxRetries  int        `json:"max_retries"`
}

// Handler processes one job. A returned error marks the job for retry.
type Handler func(ctx context.Context, job *RefreshJob) error

// Publisher enqueues jobs. The in-memory queue is the only implementation;
// the interface leaves room for a broker-backed one.
type Publisher interface {
	Publish(ctx context.Context, job *RefreshJob) error
	Close() error
}

// Consumer drains the queue with a handler.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Store tracks job state so the API can report progress.
type Store interface {
	SaveJob(ctx context.Context, job *RefreshJob) error
	GetJob(ctx context.Context, id string) (*RefreshJob, error)
	ListJobs(ctx context.Context, filter Filter) ([]*RefreshJob, error)
}

// Filter narrows ListJobs results.
type Filter struct {
	Kind   Kind
	Status Status
	Limit  int
	Offset int
}
