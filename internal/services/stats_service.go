package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/cache"
	"github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/metrics"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

// StatsEngine computes snapshots and leaderboards from the event store.
type StatsEngine interface {
	PlayerSnapshot(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error)
	Leaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error)
	Metric() stattype.Kind
}

// StatsService handles statistics-related business logic
type StatsService interface {
	GetPlayerStats(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error)
	GetLeaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error)
	RankingMetric() stattype.Kind
}

type statsService struct {
	engine  StatsEngine
	cache   cache.LeaderboardCache
	metrics *metrics.Metrics
}

// NewStatsService creates a new StatsService. A nil cache disables caching.
func NewStatsService(engine StatsEngine, lc cache.LeaderboardCache, m *metrics.Metrics) StatsService {
	if lc == nil {
		lc = cache.NewNoop()
	}
	return &statsService{engine: engine, cache: lc, metrics: m}
}

func (s *statsService) RankingMetric() stattype.Kind {
	return s.engine.Metric()
}

func validateWindow(window models.Window) error {
	if !window.Valid() {
		return errors.NewValidationError("days", "must be a positive integer")
	}
	return nil
}

func (s *statsService) GetPlayerStats(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting player stats: player=%s, window=%d", player, window)

	if player == uuid.Nil {
		return nil, errors.NewValidationError("player", "cannot be empty")
	}
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	start := time.Now()
	snapshot, err := s.engine.PlayerSnapshot(ctx, player, window)
	if err != nil {
		appErr := toAppError(err)
		s.metrics.ObserveOperation("player_snapshot", time.Since(start), appErr.Code)
		log.Error("failed to get player stats: %v", err)
		return nil, appErr
	}
	s.metrics.ObserveOperation("player_snapshot", time.Since(start), "")

	return snapshot, nil
}

func (s *statsService) GetLeaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting leaderboard: window=%d", window)

	if err := validateWindow(window); err != nil {
		return nil, err
	}

	metric := s.engine.Metric()
	cached, ok, err := s.cache.Get(ctx, window, metric)
	if err != nil {
		log.Warn("leaderboard cache read failed, querying store: %v", err)
	}
	s.metrics.CacheLookup(ok)
	if ok {
		return cached, nil
	}

	start := time.Now()
	board, err := s.engine.Leaderboard(ctx, window)
	if err != nil {
		appErr := toAppError(err)
		s.metrics.ObserveOperation("leaderboard", time.Since(start), appErr.Code)
		log.Error("failed to get leaderboard: %v", err)
		return nil, appErr
	}
	s.metrics.ObserveOperation("leaderboard", time.Since(start), "")

	if err := s.cache.Set(ctx, board); err != nil {
		log.Warn("failed to cache leaderboard: %v", err)
	}
	return board, nil
}

// toAppError keeps typed errors and hides everything else behind INTERNAL_ERROR.
func toAppError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return errors.NewInternalError(err)
}
