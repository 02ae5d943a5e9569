package aggregation

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
	"github.com/vytor/statsboard/internal/stattype"
)

// Column names shared by the queries and the row decoders.
const (
	colPlayer     = "player"
	colStat       = "stat"
	colValue      = "value"
	colOccurredAt = "occurred_at"
	colDisplayKey = "display_key"
	colRank       = "player_rank"
	colTotal      = "total_value"
)

// Aggregates accumulates per-kind totals for one player and one request.
// It is not safe for concurrent use.
type Aggregates struct {
	totals map[stattype.Kind]*models.StatAggregate
}

func NewAggregates() *Aggregates {
	return &Aggregates{totals: make(map[stattype.Kind]*models.StatAggregate)}
}

// Fold adds ev to the running total of its kind. The first event of a kind
// decides the display key.
func (a *Aggregates) Fold(ev models.StatEvent) {
	agg, ok := a.totals[ev.Kind]
	if !ok {
		key := strings.TrimSpace(ev.DisplayKey)
		if key == "" {
			key = models.FallbackDisplayKey
		}
		agg = &models.StatAggregate{Kind: ev.Kind, DisplayKey: key}
		a.totals[ev.Kind] = agg
	}
	agg.Value += ev.Value
}

func (a *Aggregates) Len() int {
	return len(a.totals)
}

// Freeze returns one copy per kind, ordered by kind.
func (a *Aggregates) Freeze() []models.StatAggregate {
	out := make([]models.StatAggregate, 0, len(a.totals))
	for _, agg := range a.totals {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// decodeEvent turns one player-events row into a StatEvent. skip is true
// when the row names a stat kind this build does not know.
func decodeEvent(ctx context.Context, row repository.Row) (ev models.StatEvent, skip bool, err error) {
	player, err := decodePlayer(row)
	if err != nil {
		return models.StatEvent{}, false, err
	}

	id, _ := row.String(colStat)
	kind, err := stattype.Resolve(id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("aggregation").Warn("skipping event row for player %s: %v", player, err)
		return models.StatEvent{}, true, nil
	}

	value, _ := row.Int64(colValue)
	ts, _ := row.Int64(colOccurredAt)
	key, _ := row.String(colDisplayKey)

	return models.StatEvent{
		Player:     player,
		Kind:       kind,
		Value:      value,
		Timestamp:  ts,
		DisplayKey: key,
	}, false, nil
}

func decodePlayer(row repository.Row) (uuid.UUID, error) {
	raw, ok := row.String(colPlayer)
	if !ok {
		return uuid.Nil, apperrors.NewMalformedRowError(colPlayer, "is absent")
	}
	player, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperrors.NewMalformedRowError(colPlayer, "is not a valid id")
	}
	return player, nil
}

// FoldEvents decodes and folds every row of rs.
func FoldEvents(ctx context.Context, rs *repository.ResultSet) ([]models.StatAggregate, error) {
	aggs := NewAggregates()
	if rs != nil {
		for _, row := range rs.Rows {
			ev, skip, err := decodeEvent(ctx, row)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			aggs.Fold(ev)
		}
	}
	return aggs.Freeze(), nil
}
