// Package cache keeps recently built leaderboards so repeated reads skip the
// grouped query. Cache failures never fail a request; callers fall back to
// the store.
package cache

import (
	"context"

	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/stattype"
)

// LeaderboardCache stores leaderboard snapshots by window and metric.
type LeaderboardCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, window models.Window, metric stattype.Kind) (*models.LeaderboardSnapshot, bool, error)
	Set(ctx context.Context, snapshot *models.LeaderboardSnapshot) error
	// Invalidate drops every cached leaderboard.
	Invalidate(ctx context.Context) error
}

type noop struct{}

// NewNoop returns a cache that never hits.
func NewNoop() LeaderboardCache {
	return noop{}
}

func (noop) Get(context.Context, models.Window, stattype.Kind) (*models.LeaderboardSnapshot, bool, error) {
	return nil, false, nil
}

func (noop) Set(context.Context, *models.LeaderboardSnapshot) error { return nil }

func (noop) Invalidate(context.Context) error { return nil }
