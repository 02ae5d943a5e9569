package jobs

import "github.com/vytor/statsboard/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueEvents(events []models.StatEvent) error
}
