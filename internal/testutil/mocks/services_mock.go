package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetPlayerStats(ctx context.Context, player uuid.UUID, window models.Window) (*models.PlayerStatsSnapshot, error) {
	args := m.Called(ctx, player, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerStatsSnapshot), args.Error(1)
}

func (m *MockStatsService) GetLeaderboard(ctx context.Context, window models.Window) (*models.LeaderboardSnapshot, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardSnapshot), args.Error(1)
}

func (m *MockStatsService) RankingMetric() stattype.Kind {
	args := m.Called()
	return args.Get(0).(stattype.Kind)
}

// MockEventService is a mock implementation of services.EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) SubmitEvents(ctx context.Context, events []models.StatEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventService) RecordEvents(ctx context.Context, events []models.StatEvent) (int64, error) {
	args := m.Called(ctx, events)
	return args.Get(0).(int64), args.Error(1)
}
