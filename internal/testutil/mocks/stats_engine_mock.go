package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

// MockStatsEngine is a mock implementation of services.StatsEngine
type MockStatsEngine struct {
	mock.Mock
}

func (m *MockStatsEngine) PlayerSnapshot(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error) {
	args := m.Called(ctx, player, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStatsSnapshot), args.Error(1)
}

func (m *MockStatsEngine) Leaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardSnapshot), args.Error(1)
}

func (m *MockStatsEngine) Metric() stattype.Kind {
	args := m.Called()
	return args.Get(0).(stattype.Kind)
}
