package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/statsboard/internal/models"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool(3, 10)
	p.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(funcJob{"count", func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	p.Stop()

	assert.Equal(t, int32(10), ran.Load(), "Stop drains queued jobs")
}

func TestPool_SubmitDoesNotBlockWhenFull(t *testing.T) {
	p := NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	p.Start(context.Background())

	require.NoError(t, p.Submit(funcJob{"block", func(context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started
	require.NoError(t, p.Submit(funcJob{"queued", func(context.Context) error { return nil }}))

	err := p.Submit(funcJob{"rejected", func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	p.Stop()
	assert.ErrorIs(t, p.Submit(funcJob{"late", func(context.Context) error { return nil }}), ErrStopped)
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	p := NewPool(1, 4)
	p.Start(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, p.Submit(funcJob{"fail", func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, p.Submit(funcJob{"panic", func(context.Context) error { panic("oops") }}))
	require.NoError(t, p.Submit(funcJob{"after", func(context.Context) error {
		wg.Done()
		return nil
	}}))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive earlier jobs")
	}
	p.Stop()
}

func TestPool_StopIsIdempotent(t *testing.T) {
	p := NewPool(0, 0)
	p.Start(context.Background())
	assert.Equal(t, 64, p.Capacity())
	p.Stop()
	assert.NotPanics(t, p.Stop)
}

type recorderFunc func(context.Context, []models.StatEvent) (int64, error)

func (f recorderFunc) RecordEvents(ctx context.Context, events []models.StatEvent) (int64, error) {
	return f(ctx, events)
}

func TestRecordEventsJob(t *testing.T) {
	events := []models.StatEvent{{Value: 1}, {Value: 2}}
	var got []models.StatEvent
	job := &RecordEventsJob{
		Recorder: recorderFunc(func(_ context.Context, evs []models.StatEvent) (int64, error) {
			got = evs
			return int64(len(evs)), nil
		}),
		Events: events,
	}

	assert.Equal(t, "record_events", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, events, got)
}
