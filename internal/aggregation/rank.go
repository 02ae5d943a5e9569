package aggregation

import (
	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
)

// ExtractRank reads the rank query result. No rows means the player has no
// ranking-metric events in the window and yields models.Unranked.
func ExtractRank(rs *repository.ResultSet) (int64, error) {
	if rs.Empty() {
		return models.Unranked, nil
	}
	rank, ok := rs.Rows[0].Int64(colRank)
	if !ok {
		return 0, apperrors.NewMalformedRowError(colRank, "is absent or not an integer")
	}
	return rank, nil
}
