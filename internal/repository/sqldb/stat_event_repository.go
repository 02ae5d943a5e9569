package sqldb

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
)

// rows per INSERT statement; keeps well under sqlite's bound-parameter limit
const insertChunkSize = 200

type statEventRepository struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
}

// NewStatEventRepository creates a new StatEventRepository implementation
func NewStatEventRepository(db *sql.DB, placeholder squirrel.PlaceholderFormat) repository.StatEventRepository {
	return &statEventRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (r *statEventRepository) InsertBatch(ctx context.Context, events []models.StatEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("stat_event_repo")
	log.Debug("batch inserting %d stat events", len(events))

	if len(events) == 0 {
		return 0, nil
	}

	var inserted int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for start := 0; start < len(events); start += insertChunkSize {
			end := min(start+insertChunkSize, len(events))

			insert := r.builder.Insert("stat_events").Columns("player", "stat", "value", "occurred_at")
			for _, ev := range events[start:end] {
				insert = insert.Values(ev.Player.String(), ev.Kind.ID(), ev.Value, ev.Timestamp)
			}
			query, args, err := insert.ToSql()
			if err != nil {
				log.Error("failed to build insert: %v", err)
				return err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				log.Error("failed to insert stat events: %v", err)
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug("inserted %d stat events", inserted)
	return inserted, nil
}
