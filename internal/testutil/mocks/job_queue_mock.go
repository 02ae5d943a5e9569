package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueEvents(events []models.StatEvent) error {
	args := m.Called(events)
	return args.Error(0)
}
