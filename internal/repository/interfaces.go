package repository

import (
	"context"

	"github.com/vytor/statsboard/internal/models"
)

// QueryExecutor runs parameterized statements against the stat store.
// Implementations must be safe for concurrent use.
type QueryExecutor interface {
	Query(ctx context.Context, query string, args ...any) (*ResultSet, error)
	Exec(ctx context.Context, statement string, args ...any) error
}

// StatEventRepository handles stat event writes
type StatEventRepository interface {
	InsertBatch(ctx context.Context, events []models.StatEvent) (int64, error)
}
