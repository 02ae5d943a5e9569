package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/statsboard/internal/repository"
)

// MockQueryExecutor is a mock implementation of repository.QueryExecutor
type MockQueryExecutor struct {
	mock.Mock
}

func (m *MockQueryExecutor) Query(ctx context.Context, query string, args ...any) (*repository.ResultSet, error) {
	ret := m.Called(ctx, query, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*repository.ResultSet), ret.Error(1)
}

func (m *MockQueryExecutor) Exec(ctx context.Context, statement string, args ...any) error {
	ret := m.Called(ctx, statement, args)
	return ret.Error(0)
}
