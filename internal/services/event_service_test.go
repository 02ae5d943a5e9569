package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/services"
	"github.com/vytor/statsboard/internal/stattype"
	"github.com/vytor/statsboard/internal/testutil/mocks"
)

type EventServiceSuite struct {
	suite.Suite
	repo    *mocks.MockStatEventRepository
	queue   *mocks.MockJobQueue
	cache   *mocks.MockLeaderboardCache
	service services.EventService
	ctx     context.Context
}

func (s *EventServiceSuite) SetupTest() {
	s.repo = new(mocks.MockStatEventRepository)
	s.queue = new(mocks.MockJobQueue)
	s.cache = new(mocks.MockLeaderboardCache)
	s.service = services.NewEventService(s.repo, s.queue, s.cache, nil)
	s.ctx = context.Background()
}

func (s *EventServiceSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.queue.AssertExpectations(s.T())
	s.cache.AssertExpectations(s.T())
}

func (s *EventServiceSuite) TestSubmitEvents_DefaultsTimestamp() {
	player := uuid.New()
	var queued []models.StatEvent
	s.queue.On("EnqueueEvents", mock.Anything).Run(func(args mock.Arguments) {
		queued = args.Get(0).([]models.StatEvent)
	}).Return(nil)

	err := s.service.SubmitEvents(s.ctx, []models.StatEvent{
		{Player: player, Kind: stattype.Kills, Value: 2},
		{Player: player, Kind: stattype.Wins, Value: 1, Timestamp: 42, DisplayKey: "ignored"},
	})
	s.Require().NoError(err)
	s.Require().Len(queued, 2)
	s.Positive(queued[0].Timestamp)
	s.Equal(int64(42), queued[1].Timestamp)
	s.Empty(queued[1].DisplayKey)
}

func (s *EventServiceSuite) TestSubmitEvents_Validation() {
	tests := []struct {
		name   string
		events []models.StatEvent
		want   error
	}{
		{"empty batch", nil, apperrors.ErrValidation},
		{"oversized batch", make([]models.StatEvent, services.MaxEventBatch+1), apperrors.ErrValidation},
		{"nil player", []models.StatEvent{{Kind: stattype.Kills}}, apperrors.ErrValidation},
		{"invalid kind", []models.StatEvent{{Player: uuid.New()}}, apperrors.ErrUnknownStatKind},
		{"negative timestamp", []models.StatEvent{{Player: uuid.New(), Kind: stattype.Kills, Timestamp: -1}}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.ErrorIs(s.service.SubmitEvents(s.ctx, tt.events), tt.want)
		})
	}
	s.queue.AssertNotCalled(s.T(), "EnqueueEvents", mock.Anything)
}

func (s *EventServiceSuite) TestSubmitEvents_QueueFull() {
	s.queue.On("EnqueueEvents", mock.Anything).Return(apperrors.NewUnavailableError("ingest queue is full, retry later", nil))

	err := s.service.SubmitEvents(s.ctx, []models.StatEvent{{Player: uuid.New(), Kind: stattype.Kills, Value: 1}})
	s.ErrorIs(err, apperrors.ErrUnavailable)
}

func (s *EventServiceSuite) TestRecordEvents_InvalidatesCache() {
	events := []models.StatEvent{{Player: uuid.New(), Kind: stattype.Kills, Value: 1, Timestamp: 1}}
	s.repo.On("InsertBatch", s.ctx, events).Return(int64(1), nil)
	s.cache.On("Invalidate", s.ctx).Return(errors.New("redis down"))

	n, err := s.service.RecordEvents(s.ctx, events)
	s.Require().NoError(err, "cache failures do not fail the write")
	s.Equal(int64(1), n)
}

func (s *EventServiceSuite) TestRecordEvents_InsertFailure() {
	events := []models.StatEvent{{Player: uuid.New(), Kind: stattype.Kills, Value: 1, Timestamp: 1}}
	s.repo.On("InsertBatch", s.ctx, events).Return(int64(0), errors.New("constraint"))

	_, err := s.service.RecordEvents(s.ctx, events)
	appErr, ok := apperrors.As(err)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeInternal, appErr.Code)
	s.cache.AssertNotCalled(s.T(), "Invalidate", mock.Anything)
}

func TestEventServiceSuite(t *testing.T) {
	suite.Run(t, new(EventServiceSuite))
}
