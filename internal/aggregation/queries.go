package aggregation

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

type queries struct {
	builder squirrel.StatementBuilderType
	metric  stattype.Kind
}

func newQueries(placeholder squirrel.PlaceholderFormat, metric stattype.Kind) queries {
	return queries{
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		metric:  metric,
	}
}

// inWindow matches start < column <= now.
func inWindow(column string, now, start int64) squirrel.And {
	return squirrel.And{
		squirrel.LtOrEq{column: now},
		squirrel.Gt{column: start},
	}
}

func (q queries) playerEvents(player uuid.UUID, now, start int64) (string, []any, error) {
	return q.builder.
		Select(
			"e.player AS "+colPlayer,
			"e.stat AS "+colStat,
			"e.value AS "+colValue,
			"e.occurred_at AS "+colOccurredAt,
			"d.display_key AS "+colDisplayKey,
		).
		From("stat_events e").
		LeftJoin("stat_definitions d ON d.id = e.stat").
		Where(squirrel.Eq{"e.player": player.String()}).
		Where(inWindow("e.occurred_at", now, start)).
		OrderBy("e.occurred_at ASC", "e.id ASC").
		ToSql()
}

// playerRank counts players whose windowed metric sum is strictly greater
// than the player's own. A player with no metric events has a NULL own
// total and the query returns no rows.
func (q queries) playerRank(player uuid.UUID, now, start int64) (string, []any, error) {
	// Nested selects stay in ? form; the outer builder rewrites placeholders once.
	own := squirrel.
		Select("SUM(value) AS total").
		From("stat_events").
		Where(squirrel.Eq{"player": player.String(), "stat": q.metric.ID()}).
		Where(inWindow("occurred_at", now, start))

	ranked, rankedArgs, err := squirrel.
		Select("player", "SUM(value) AS total").
		From("stat_events").
		Where(squirrel.Eq{"stat": q.metric.ID()}).
		Where(inWindow("occurred_at", now, start)).
		GroupBy("player").
		ToSql()
	if err != nil {
		return "", nil, err
	}

	return q.builder.
		Select("COUNT(ranked.player) + 1 AS "+colRank).
		FromSelect(own, "own").
		LeftJoin("("+ranked+") ranked ON ranked.total > own.total", rankedArgs...).
		Where("own.total IS NOT NULL").
		GroupBy("own.total").
		ToSql()
}

func (q queries) leaderboard(now, start int64) (string, []any, error) {
	return q.builder.
		Select(colPlayer, "SUM(value) AS "+colTotal).
		From("stat_events").
		Where(squirrel.Eq{"stat": q.metric.ID()}).
		Where(inWindow("occurred_at", now, start)).
		GroupBy(colPlayer).
		OrderBy(colTotal+" DESC", colPlayer+" ASC").
		Limit(uint64(models.LeaderboardSize)).
		ToSql()
}
