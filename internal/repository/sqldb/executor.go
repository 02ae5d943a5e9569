package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/metrics"
	"github.com/vytor/statsboard/internal/repository"
)

type executor struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewExecutor returns a QueryExecutor that materializes every result before
// returning, so no connection is held once Query comes back.
func NewExecutor(db *sql.DB, m *metrics.Metrics) repository.QueryExecutor {
	return &executor{db: db, metrics: m}
}

func (e *executor) Query(ctx context.Context, query string, args ...any) (*repository.ResultSet, error) {
	log := logger.FromContext(ctx).WithPrefix("executor")
	start := time.Now()

	rs, err := e.query(ctx, query, args)
	e.metrics.ObserveQuery(time.Since(start), err)
	if err != nil {
		log.Error("query failed after %v: %v", time.Since(start), err)
		return nil, err
	}
	log.Debug("query returned %d rows in %v", len(rs.Rows), time.Since(start))
	return rs, nil
}

func (e *executor) query(ctx context.Context, query string, args []any) (*repository.ResultSet, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &repository.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, repository.NewRow(columns, values))
	}
	return rs, rows.Err()
}

func (e *executor) Exec(ctx context.Context, statement string, args ...any) error {
	log := logger.FromContext(ctx).WithPrefix("executor")
	start := time.Now()

	_, err := e.db.ExecContext(ctx, statement, args...)
	e.metrics.ObserveQuery(time.Since(start), err)
	if err != nil {
		log.Error("exec failed: %v", err)
		return err
	}
	return nil
}
