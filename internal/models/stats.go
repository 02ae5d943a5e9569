package models

import (
	"math"

	"github.com/google/uuid"
	"github.com/vytor/statsboard/internal/stattype"
)

const (
	// MillisPerDay is the length of one window day in event timestamp units.
	MillisPerDay int64 = 86_400_000

	// Unranked marks a player with no qualifying ranking-metric events in the window.
	Unranked int64 = -1

	// FallbackDisplayKey replaces a missing display key on an event row.
	FallbackDisplayKey = "N/A"

	// LeaderboardSize is the number of entries in a top list.
	LeaderboardSize = 10
)

// Window is a trailing interval in whole days ending at "now".
type Window int

// AllTime covers every timestamp that can be stored.
const AllTime Window = -1

// maxWindowDays keeps days*MillisPerDay far from int64 overflow.
const maxWindowDays = math.MaxInt64 / MillisPerDay / 2

// IsAllTime reports whether w is unbounded.
func (w Window) IsAllTime() bool {
	return w == AllTime || int64(w) > maxWindowDays
}

// Valid reports whether w is AllTime or at least one day long.
func (w Window) Valid() bool {
	return w == AllTime || w > 0
}

// Start returns the exclusive lower timestamp bound for a window ending at now.
// AllTime returns math.MinInt64, which no stored timestamp can be at or below.
func (w Window) Start(now int64) int64 {
	if w.IsAllTime() {
		return math.MinInt64
	}
	return now - int64(w)*MillisPerDay
}

// Contains reports whether ts falls in (Start(now), now].
func (w Window) Contains(ts, now int64) bool {
	return ts <= now && ts > w.Start(now)
}

// StatEvent is one row of the event log.
type StatEvent struct {
	Player     uuid.UUID     `json:"player"`
	Kind       stattype.Kind `json:"stat"`
	Value      int64         `json:"value"`
	Timestamp  int64         `json:"timestamp"`
	DisplayKey string        `json:"display_key,omitempty"`
}

// StatAggregate is the windowed total of one stat kind for one player.
// Aggregates handed to callers are copies and never change afterwards.
type StatAggregate struct {
	Kind       stattype.Kind `json:"stat"`
	DisplayKey string        `json:"display_key"`
	Value      int64         `json:"value"`
}

// PlayerStatsSnapshot is a player's full stat set and rank for a window.
type PlayerStatsSnapshot struct {
	Player uuid.UUID       `json:"player"`
	Window Window          `json:"window_days"`
	Rank   int64           `json:"rank"`
	Stats  []StatAggregate `json:"stats"`
}

// Ranked reports whether the snapshot carries a real rank.
func (s *PlayerStatsSnapshot) Ranked() bool {
	return s.Rank != Unranked
}

// Stat returns the aggregate for kind, if the player has one in the window.
func (s *PlayerStatsSnapshot) Stat(kind stattype.Kind) (StatAggregate, bool) {
	for _, a := range s.Stats {
		if a.Kind == kind {
			return a, true
		}
	}
	return StatAggregate{}, false
}

type LeaderboardEntry struct {
	Player uuid.UUID `json:"player"`
	Rank   int       `json:"rank"`
	Total  int64     `json:"total"`
}

// LeaderboardSnapshot lists entries in rank order.
type LeaderboardSnapshot struct {
	Window  Window             `json:"window_days"`
	Metric  stattype.Kind      `json:"metric"`
	Entries []LeaderboardEntry `json:"entries"`
}
