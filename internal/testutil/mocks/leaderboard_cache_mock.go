package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

// MockLeaderboardCache is a mock implementation of cache.LeaderboardCache
type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, window models.Window, metric stattype.Kind) (*models.LeaderboardSnapshot, bool, error) {
	args := m.Called(ctx, window, metric)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.LeaderboardSnapshot), args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, snapshot *models.LeaderboardSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
