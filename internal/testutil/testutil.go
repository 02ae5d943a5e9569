package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vytor/statsboard/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied
// and the stat definitions seeded.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	return database
}

// InsertEvent writes one raw stat event row.
func InsertEvent(t *testing.T, database *db.DB, player uuid.UUID, stat string, value, occurredAt int64) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		`INSERT INTO stat_events (player, stat, value, occurred_at) VALUES (?, ?, ?, ?)`,
		player.String(), stat, value, occurredAt)
	require.NoError(t, err, "failed to insert %s event for %s", stat, player)
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
