package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/models"
)

// MockStatEventRepository is a mock implementation of repository.StatEventRepository
type MockStatEventRepository struct {
	mock.Mock
}

func (m *MockStatEventRepository) InsertBatch(ctx context.Context, events []models.StatEvent) (int64, error) {
	args := m.Called(ctx, events)
	return args.Get(0).(int64), args.Error(1)
}
