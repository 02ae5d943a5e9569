package api

import (
	"context"
	"time"

	"github.com/vytor/statsboard/internal/metrics"
	"github.com/vytor/statsboard/internal/services"
)

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

type Server struct {
	StatsService   services.StatsService
	EventService   services.EventService
	Metrics        *metrics.Metrics
	ReadyChecks    map[string]ReadyCheck
	RequestTimeout time.Duration
}
