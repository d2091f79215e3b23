package reviews

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsSubmittedJobs(t *testing.T) {
	d := NewDispatcher(2, 8)
	d.Start()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := d.Submit(func(ctx context.Context) {
			assert.NotNil(t, ctx)
			ran.Add(1)
		})
		require.NoError(t, err)
	}

	d.Stop()
	assert.Equal(t, int32(5), ran.Load())
}

func TestDispatcherQueueFull(t *testing.T) {
	// never started, so the buffer fills up
	d := NewDispatcher(1, 1)

	require.NoError(t, d.Submit(func(context.Context) {}))
	err := d.Submit(func(context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestDispatcherJobContextDetached(t *testing.T) {
	d := NewDispatcher(1, 1)
	d.Start()

	done := make(chan error, 1)
	require.NoError(t, d.Submit(func(ctx context.Context) {
		done <- ctx.Err()
	}))
	d.Stop()

	assert.NoError(t, <-done)
}

func TestDispatcherStopIsIdempotent(t *testing.T) {
	d := NewDispatcher(1, 1)
	d.Start()
	d.Stop()
	assert.NotPanics(t, func() { d.Stop() })
}
