package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcinkowskimikolaj/assetly/internal/jobs"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestQueueProcessesJob(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)
	defer q.Close()

	var processed atomic.Int32
	handler := func(ctx context.Context, job *jobs.RefreshJob) error {
		processed.Add(1)
		return nil
	}
	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.RefreshJob{Kind: jobs.KindRebuildCache}
	if err := q.Publish(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	if job.ID == "" {
		t.Fatal("Publish must assign an ID")
	}

	waitFor(t, func() bool {
		saved, err := store.GetJob(context.Background(), job.ID)
		return err == nil && saved.Status == jobs.StatusCompleted
	})
	if processed.Load() != 1 {
		t.Errorf("handler ran %d times, want 1", processed.Load())
	}
}

func TestQueueRetriesFailedJob(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)
	defer q.Close()

	var attempts atomic.Int32
	handler := func(ctx context.Context, job *jobs.RefreshJob) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}
	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.RefreshJob{Kind: jobs.KindRebuildCache, MaxRetries: 2}
	if err := q.Publish(context.Background(), job); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		saved, err := store.GetJob(context.Background(), job.ID)
		return err == nil && saved.Status == jobs.StatusCompleted
	})
	if attempts.Load() != 2 {
		t.Errorf("handler ran %d times, want 2 (one retry)", attempts.Load())
	}
}

func TestQueueExhaustsRetries(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)
	defer q.Close()

	handler := func(ctx context.Context, job *jobs.RefreshJob) error {
		return errors.New("permanent")
	}
	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.RefreshJob{Kind: jobs.KindCaptureSnapshot, Category: "Gotówka", MaxRetries: 1}
	if err := q.Publish(context.Background(), job); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		saved, err := store.GetJob(context.Background(), job.ID)
		return err == nil && saved.Status == jobs.StatusFailed
	})
}

func TestQueueRejectsPublishAfterClose(t *testing.T) {
	q := NewQueue(1, nil)
	if err := q.Close(); err != nil {
		t.Fatal(err)
	}
	if err := q.Publish(context.Background(), &jobs.RefreshJob{Kind: jobs.KindRebuildCache}); err == nil {
		t.Fatal("Publish on a closed queue must fail")
	}
}

func TestStoreFiltersAndCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	jobsIn := []*jobs.RefreshJob{
		{ID: "a", Kind: jobs.KindRebuildCache, Status: jobs.StatusCompleted, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: "b", Kind: jobs.KindCaptureSnapshot, Status: jobs.StatusFailed, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "c", Kind: jobs.KindRebuildCache, Status: jobs.StatusPending, CreatedAt: time.Now()},
	}
	for _, j := range jobsIn {
		if err := store.SaveJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	rebuilds, err := store.ListJobs(ctx, jobs.Filter{Kind: jobs.KindRebuildCache})
	if err != nil {
		t.Fatal(err)
	}
	if len(rebuilds) != 2 {
		t.Fatalf("rebuild jobs = %d, want 2", len(rebuilds))
	}
	// Newest first.
	if rebuilds[0].ID != "c" {
		t.Errorf("first job = %s, want c", rebuilds[0].ID)
	}

	// Mutating a returned copy must not affect the stored job.
	rebuilds[0].Status = jobs.StatusFailed
	stored, err := store.GetJob(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != jobs.StatusPending {
		t.Error("ListJobs leaked a reference to the stored job")
	}

	if _, err := store.GetJob(ctx, "nope"); err == nil {
		t.Fatal("GetJob must fail for unknown IDs")
	}
}
