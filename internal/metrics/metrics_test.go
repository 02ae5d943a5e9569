package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery(time.Millisecond, errors.New("x"))
		m.ObserveOperation("leaderboard", time.Millisecond, "QUERY_FAILED")
		m.CacheLookup(true)
		m.EventsRecorded(3)
		m.ObserveHTTP("/api/leaderboard", http.MethodGet, 200, time.Millisecond)
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveQuery(time.Millisecond, nil)
	m.ObserveQuery(time.Millisecond, errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queryErrors))

	m.ObserveOperation("player_snapshot", time.Millisecond, "")
	m.ObserveOperation("player_snapshot", time.Millisecond, "QUERY_FAILED")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationFailures.WithLabelValues("player_snapshot", "QUERY_FAILED")))

	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))

	m.EventsRecorded(5)
	m.EventsRecorded(0)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.eventsRecorded))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.EventsRecorded(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statsboard_ingest_events_recorded_total 2")
}
