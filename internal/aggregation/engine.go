// Package aggregation builds windowed player stat snapshots and the top-ten
// leaderboard from the stat event table.
package aggregation

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
	"github.com/vytor/statsboard/internal/stattype"
	"golang.org/x/sync/errgroup"
)

// Engine answers snapshot and leaderboard requests. It keeps no per-request
// state and is safe for concurrent use.
type Engine struct {
	exec    repository.QueryExecutor
	metric  stattype.Kind
	queries queries
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	placeholder squirrel.PlaceholderFormat
	now         func() time.Time
}

// WithPlaceholder sets the bind parameter style of the target database.
func WithPlaceholder(p squirrel.PlaceholderFormat) Option {
	return func(c *engineConfig) {
		c.placeholder = p
	}
}

// WithClock replaces time.Now as the source of the window end.
func WithClock(now func() time.Time) Option {
	return func(c *engineConfig) {
		c.now = now
	}
}

// NewEngine returns an engine ranking players by metric.
func NewEngine(exec repository.QueryExecutor, metric stattype.Kind, opts ...Option) (*Engine, error) {
	if exec == nil {
		return nil, fmt.Errorf("aggregation: nil query executor")
	}
	if !metric.Valid() {
		return nil, apperrors.NewUnknownStatKindError(metric.String())
	}

	cfg := engineConfig{placeholder: squirrel.Question, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		exec:    exec,
		metric:  metric,
		queries: newQueries(cfg.placeholder, metric),
		now:     cfg.now,
	}, nil
}

// Metric returns the ranking stat.
func (e *Engine) Metric() stattype.Kind {
	return e.metric
}

func (e *Engine) bounds(window models.Window) (now, start int64) {
	now = e.now().UnixMilli()
	return now, window.Start(now)
}

// PlayerSnapshot returns the player's windowed totals and rank. The events
// and rank queries run concurrently and both must finish before either
// result is used; one failing does not cancel the other.
func (e *Engine) PlayerSnapshot(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("engine").WithFields(map[string]any{
		"player": player,
		"window": window,
	})
	if !window.Valid() {
		return nil, apperrors.NewValidationError("window", "must be a positive number of days or all-time")
	}

	now, start := e.bounds(window)
	log.Debug("dispatching snapshot queries: now=%d start=%d", now, start)

	eventsSQL, eventsArgs, err := e.queries.playerEvents(player, now, start)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	rankSQL, rankArgs, err := e.queries.playerRank(player, now, start)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	var (
		g        errgroup.Group
		eventsRS *repository.ResultSet
		rankRS   *repository.ResultSet
	)
	g.Go(func() error {
		rs, err := e.exec.Query(ctx, eventsSQL, eventsArgs...)
		if err != nil {
			return apperrors.NewQueryFailedError("player events", err)
		}
		eventsRS = rs
		return nil
	})
	g.Go(func() error {
		rs, err := e.exec.Query(ctx, rankSQL, rankArgs...)
		if err != nil {
			return apperrors.NewQueryFailedError("player rank", err)
		}
		rankRS = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("snapshot failed: %v", err)
		return nil, err
	}

	stats, err := FoldEvents(ctx, eventsRS)
	if err != nil {
		log.Error("failed to fold events: %v", err)
		return nil, err
	}
	rank, err := ExtractRank(rankRS)
	if err != nil {
		log.Error("failed to read rank: %v", err)
		return nil, err
	}

	log.Debug("snapshot ready: %d stats, rank %d", len(stats), rank)
	return &models.PlayerStatsSnapshot{
		Player: player,
		Window: window,
		Rank:   rank,
		Stats:  stats,
	}, nil
}

// Leaderboard returns the top players by the ranking metric in the window.
func (e *Engine) Leaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("engine").WithField("window", window)
	if !window.Valid() {
		return nil, apperrors.NewValidationError("window", "must be a positive number of days or all-time")
	}

	now, start := e.bounds(window)
	query, args, err := e.queries.leaderboard(now, start)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	rs, err := e.exec.Query(ctx, query, args...)
	if err != nil {
		log.Error("leaderboard query failed: %v", err)
		return nil, apperrors.NewQueryFailedError("leaderboard", err)
	}

	snapshot, err := BuildLeaderboard(rs, window, e.metric)
	if err != nil {
		log.Error("failed to build leaderboard: %v", err)
		return nil, err
	}
	log.Debug("leaderboard ready: %d entries", len(snapshot.Entries))
	return snapshot, nil
}
