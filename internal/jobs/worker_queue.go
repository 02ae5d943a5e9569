package jobs

import (
	"errors"

	apperrors "github.com/vytor/statsboard/internal/errors"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	ingestPool *worker.Pool
	recorder   worker.EventRecorder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(ingestPool *worker.Pool, recorder worker.EventRecorder) *WorkerQueue {
	return &WorkerQueue{
		ingestPool: ingestPool,
		recorder:   recorder,
	}
}

// SetRecorder wires the recorder after construction, for services that
// need the queue themselves.
func (q *WorkerQueue) SetRecorder(recorder worker.EventRecorder) {
	q.recorder = recorder
}

func (q *WorkerQueue) EnqueueEvents(events []models.StatEvent) error {
	err := q.ingestPool.Submit(&worker.RecordEventsJob{
		Recorder: q.recorder,
		Events:   events,
	})
	switch {
	case errors.Is(err, worker.ErrQueueFull):
		return apperrors.NewUnavailableError("ingest queue is full, retry later", err)
	case errors.Is(err, worker.ErrStopped):
		return apperrors.NewUnavailableError("ingest is shutting down", err)
	}
	return err
}
