package aggregation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/statsboard/internal/aggregation"
	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
	"github.com/vytor/statsboard/internal/stattype"
	"github.com/vytor/statsboard/internal/testutil/mocks"
)

var (
	fixedNow = time.UnixMilli(10 * models.MillisPerDay)
	player   = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
)

func isRankQuery(q string) bool   { return strings.Contains(q, "player_rank") }
func isEventsQuery(q string) bool { return strings.Contains(q, "stat_definitions") }

func newMockEngine(t *testing.T) (*aggregation.Engine, *mocks.MockQueryExecutor) {
	exec := new(mocks.MockQueryExecutor)
	engine, err := aggregation.NewEngine(exec, stattype.Kills, aggregation.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return engine, exec
}

func TestNewEngine_RejectsBadInput(t *testing.T) {
	_, err := aggregation.NewEngine(new(mocks.MockQueryExecutor), stattype.Kind(0))
	assert.ErrorIs(t, err, apperrors.ErrUnknownStatKind)

	_, err = aggregation.NewEngine(nil, stattype.Kills)
	assert.Error(t, err)
}

func TestPlayerSnapshot_FoldsEventsAndRank(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()

	events := &repository.ResultSet{Rows: []repository.Row{
		{"player": player.String(), "stat": "KILLS", "value": int64(5), "occurred_at": int64(100), "display_key": "stats.kills"},
		{"player": player.String(), "stat": "DEATHS", "value": int64(1), "occurred_at": int64(150), "display_key": "stats.deaths"},
		{"player": player.String(), "stat": "KILLS", "value": int64(3), "occurred_at": int64(200), "display_key": "stats.kills"},
	}}
	rank := &repository.ResultSet{Rows: []repository.Row{{"player_rank": int64(2)}}}

	exec.On("Query", ctx, mock.MatchedBy(isEventsQuery), mock.Anything).Return(events, nil).Once()
	exec.On("Query", ctx, mock.MatchedBy(isRankQuery), mock.Anything).Return(rank, nil).Once()

	snap, err := engine.PlayerSnapshot(ctx, player, models.AllTime)
	require.NoError(t, err)
	exec.AssertExpectations(t)

	assert.Equal(t, player, snap.Player)
	assert.Equal(t, models.AllTime, snap.Window)
	assert.Equal(t, int64(2), snap.Rank)
	kills, ok := snap.Stat(stattype.Kills)
	require.True(t, ok)
	assert.Equal(t, int64(8), kills.Value)
	deaths, ok := snap.Stat(stattype.Deaths)
	require.True(t, ok)
	assert.Equal(t, int64(1), deaths.Value)
}

func TestPlayerSnapshot_WindowBoundsAreBound(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()
	now := fixedNow.UnixMilli()

	exec.On("Query", ctx, mock.MatchedBy(isEventsQuery), []any{player.String(), now, now - 7*models.MillisPerDay}).
		Return(&repository.ResultSet{}, nil).Once()
	exec.On("Query", ctx, mock.MatchedBy(isRankQuery), mock.Anything).
		Return(&repository.ResultSet{}, nil).Once()

	snap, err := engine.PlayerSnapshot(ctx, player, models.Window(7))
	require.NoError(t, err)
	exec.AssertExpectations(t)
	assert.Empty(t, snap.Stats)
}

func TestPlayerSnapshot_NoRankRowsIsUnranked(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()

	exec.On("Query", ctx, mock.MatchedBy(isEventsQuery), mock.Anything).Return(&repository.ResultSet{Rows: []repository.Row{
		{"player": player.String(), "stat": "DEATHS", "value": int64(4), "occurred_at": int64(1), "display_key": "stats.deaths"},
	}}, nil)
	exec.On("Query", ctx, mock.MatchedBy(isRankQuery), mock.Anything).Return(&repository.ResultSet{}, nil)

	snap, err := engine.PlayerSnapshot(ctx, player, models.Window(30))
	require.NoError(t, err)
	assert.Equal(t, models.Unranked, snap.Rank)
	assert.False(t, snap.Ranked())
	assert.Len(t, snap.Stats, 1)
}

func TestPlayerSnapshot_EitherQueryFailingFailsRequest(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name      string
		eventsErr error
		rankErr   error
	}{
		{"events fail", cause, nil},
		{"rank fails", nil, cause},
		{"both fail", cause, cause},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, exec := newMockEngine(t)
			ctx := context.Background()

			var eventsRS, rankRS *repository.ResultSet
			if tt.eventsErr == nil {
				eventsRS = &repository.ResultSet{}
			}
			if tt.rankErr == nil {
				rankRS = &repository.ResultSet{Rows: []repository.Row{{"player_rank": int64(1)}}}
			}
			exec.On("Query", ctx, mock.MatchedBy(isEventsQuery), mock.Anything).Return(eventsRS, tt.eventsErr).Once()
			exec.On("Query", ctx, mock.MatchedBy(isRankQuery), mock.Anything).Return(rankRS, tt.rankErr).Once()

			snap, err := engine.PlayerSnapshot(ctx, player, models.AllTime)
			assert.Nil(t, snap)
			assert.ErrorIs(t, err, apperrors.ErrQueryFailed)
			assert.ErrorIs(t, err, cause)
			exec.AssertExpectations(t)
		})
	}
}

func TestPlayerSnapshot_MalformedRowFailsRequest(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()

	exec.On("Query", ctx, mock.MatchedBy(isEventsQuery), mock.Anything).Return(&repository.ResultSet{Rows: []repository.Row{
		{"stat": "KILLS", "value": int64(1)},
	}}, nil)
	exec.On("Query", ctx, mock.MatchedBy(isRankQuery), mock.Anything).Return(&repository.ResultSet{}, nil)

	_, err := engine.PlayerSnapshot(ctx, player, models.AllTime)
	assert.ErrorIs(t, err, apperrors.ErrMalformedRow)
}

func TestPlayerSnapshot_InvalidWindow(t *testing.T) {
	engine, exec := newMockEngine(t)

	_, err := engine.PlayerSnapshot(context.Background(), player, models.Window(0))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	exec.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeaderboard_BuildsFromRows(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()
	other := uuid.New()

	exec.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(&repository.ResultSet{Rows: []repository.Row{
		{"player": player.String(), "total_value": int64(12)},
		{"player": other.String(), "total_value": "42.9"},
	}}, nil)

	board, err := engine.Leaderboard(ctx, models.Window(1))
	require.NoError(t, err)
	assert.Equal(t, stattype.Kills, board.Metric)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, models.LeaderboardEntry{Player: other, Rank: 2, Total: 42}, board.Entries[1])
}

func TestLeaderboard_QueryFailure(t *testing.T) {
	engine, exec := newMockEngine(t)
	ctx := context.Background()
	cause := errors.New("timeout")

	exec.On("Query", ctx, mock.Anything, mock.Anything).Return(nil, cause)

	board, err := engine.Leaderboard(ctx, models.AllTime)
	assert.Nil(t, board)
	assert.ErrorIs(t, err, apperrors.ErrQueryFailed)
	assert.ErrorIs(t, err, cause)
}
