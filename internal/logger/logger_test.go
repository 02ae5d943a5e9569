package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/statsboard/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
}

func newTestLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithCaller(false),
		logger.WithClock(fixedClock),
	)
}

func TestLogger_FormatsPrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.DEBUG).
		WithPrefix("engine").
		WithFields(map[string]any{"window": 7, "player": "p1"})

	log.Info("snapshot built: %d stats", 3)

	assert.Equal(t, "2026-01-02 03:04:05.006 INFO  [engine] snapshot built: 3 stats player=p1 window=7\n", buf.String())
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.WARN)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown too")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  shown")
	assert.Contains(t, out, "ERROR shown too")
}

func TestLogger_DerivedLoggersDoNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, logger.INFO)
	_ = base.WithError(errors.New("boom"))

	base.Info("plain")
	assert.Equal(t, "2026-01-02 03:04:05.006 INFO  plain\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("verbose"))
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.INFO).WithField("request_id", "abc")

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
