package worker

import (
	"context"

	"github.com/vytor/statsboard/internal/models"
)

// EventRecorder persists a batch of stat events.
// Defined here so the services package can depend on worker without a cycle.
type EventRecorder interface {
	RecordEvents(ctx context.Context, events []models.StatEvent) (int64, error)
}

// RecordEventsJob writes one accepted ingest batch.
type RecordEventsJob struct {
	Recorder EventRecorder
	Events   []models.StatEvent
}

func (j *RecordEventsJob) Name() string { return "record_events" }

func (j *RecordEventsJob) Run(ctx context.Context) error {
	_, err := j.Recorder.RecordEvents(ctx, j.Events)
	return err
}
