package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/cache"
	"github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/jobs"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/metrics"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
)

// MaxEventBatch bounds a single ingest request.
const MaxEventBatch = 1000

// EventService handles stat event ingestion
type EventService interface {
	// SubmitEvents validates a batch and queues it for recording.
	SubmitEvents(ctx context.Context, events []models.StatEvent) error
	// RecordEvents writes a batch and invalidates cached leaderboards.
	RecordEvents(ctx context.Context, events []models.StatEvent) (int64, error)
}

type eventService struct {
	eventRepo repository.StatEventRepository
	queue     jobs.JobQueue
	cache     cache.LeaderboardCache
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.StatEventRepository, queue jobs.JobQueue, lc cache.LeaderboardCache, m *metrics.Metrics) EventService {
	if lc == nil {
		lc = cache.NewNoop()
	}
	return &eventService{
		eventRepo: eventRepo,
		queue:     queue,
		cache:     lc,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *eventService) SubmitEvents(ctx context.Context, events []models.StatEvent) error {
	log := logger.FromContext(ctx)
	log.Debug("submitting %d stat events", len(events))

	if len(events) == 0 {
		return errors.NewValidationError("events", "cannot be empty")
	}
	if len(events) > MaxEventBatch {
		return errors.NewValidationError("events", "batch exceeds 1000 events")
	}

	now := s.now().UnixMilli()
	batch := make([]models.StatEvent, len(events))
	for i, ev := range events {
		if ev.Player == uuid.Nil {
			return errors.NewValidationError("player", "cannot be empty")
		}
		if !ev.Kind.Valid() {
			return errors.NewUnknownStatKindError(ev.Kind.String())
		}
		if ev.Timestamp == 0 {
			ev.Timestamp = now
		}
		if ev.Timestamp < 0 {
			return errors.NewValidationError("timestamp", "cannot be negative")
		}
		ev.DisplayKey = ""
		batch[i] = ev
	}

	if err := s.queue.EnqueueEvents(batch); err != nil {
		log.Error("failed to enqueue stat events: %v", err)
		return toAppError(err)
	}
	return nil
}

func (s *eventService) RecordEvents(ctx context.Context, events []models.StatEvent) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording %d stat events", len(events))

	n, err := s.eventRepo.InsertBatch(ctx, events)
	if err != nil {
		log.Error("failed to record stat events: %v", err)
		return 0, errors.NewInternalError(err)
	}
	s.metrics.EventsRecorded(n)

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate leaderboard cache: %v", err)
	}
	log.Info("recorded %d stat events", n)
	return n, nil
}
