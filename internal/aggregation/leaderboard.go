package aggregation

import (
	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
	"github.com/vytor/statsboard/internal/stattype"
)

// BuildLeaderboard ranks rows in arrival order. Totals are truncated toward
// zero and a NULL total counts as 0. Rows past models.LeaderboardSize are
// ignored and a repeated player keeps only its first row.
func BuildLeaderboard(rs *repository.ResultSet, window models.Window, metric stattype.Kind) (*models.LeaderboardSnapshot, error) {
	snapshot := &models.LeaderboardSnapshot{
		Window:  window,
		Metric:  metric,
		Entries: []models.LeaderboardEntry{},
	}
	if rs.Empty() {
		return snapshot, nil
	}

	rows := rs.Rows
	if len(rows) > models.LeaderboardSize {
		rows = rows[:models.LeaderboardSize]
	}

	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		player, err := decodePlayer(row)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[player]; dup {
			continue
		}
		seen[player] = struct{}{}

		var total int64
		if d, ok := row.Decimal(colTotal); ok {
			total = d.IntPart()
		}
		snapshot.Entries = append(snapshot.Entries, models.LeaderboardEntry{
			Player: player,
			Rank:   len(snapshot.Entries) + 1,
			Total:  total,
		})
	}
	return snapshot, nil
}
