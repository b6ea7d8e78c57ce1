package sheets

import (
	"context"

	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

// TransactionRepository is the backend surface the assistant pipeline needs:
// all transaction rows for a period range, plus the write operations the
// budget module exposes.
type TransactionRepository interface {
	// ListTransactions returns expense and income rows whose period falls in
	// [fromPeriod, toPeriod]; empty bounds mean unconstrained.
	ListTransactions(ctx context.Context, fromPeriod, toPeriod string) ([]domain.Transaction, error)

	// AppendTransactions inserts rows (bulk or single).
	AppendTransactions(ctx context.Context, txs []domain.Transaction) error

	// DeleteTransactionsByMonth removes every expense row of one month.
	DeleteTransactionsByMonth(ctx context.Context, year, month int) error

	// DeleteTransactionByID removes one expense row.
	DeleteTransactionByID(ctx context.Context, id string) error
}

// NetWorthRepository covers the analytics module's milestone and snapshot rows.
type NetWorthRepository interface {
	ListSnapshots(ctx context.Context) ([]domain.Snapshot, error)
	AppendSnapshot(ctx context.Context, s domain.Snapshot) error

	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
	AppendMilestone(ctx context.Context, m domain.Milestone) error
	DeleteMilestoneByID(ctx context.Context, id string) error
}

// RecordsRepository covers the life-admin tables.
type RecordsRepository interface {
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

var (
	_ TransactionRepository = (*Client)(nil)
	_ NetWorthRepository    = (*Client)(nil)
	_ RecordsRepository     = (*Client)(nil)
)
