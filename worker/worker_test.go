package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickSkipsOverlap(t *testing.T) {
	w := &TickWorker{Name: "test"}
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan bool)

	go func() {
		done <- w.Tick(ctx, func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, w.IsRunning())

	var calls int32
	ran := w.Tick(ctx, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.False(t, ran)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	close(release)
	assert.True(t, <-done)
	assert.False(t, w.IsRunning())

	assert.True(t, w.Tick(ctx, func(ctx context.Context) error {
		return errors.New("failed")
	}))
	assert.False(t, w.IsRunning())
}

func TestTickCancelled(t *testing.T) {
	w := &TickWorker{Name: "test"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, w.Tick(ctx, func(ctx context.Context) error {
		t.Fatal("must not run")
		return nil
	}))
}

func TestStartTickStopsOnCancel(t *testing.T) {
	w := &TickWorker{Name: "test", Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	errC := make(chan error)
	go func() {
		errC <- w.StartTick(ctx, func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			cancel()
			return nil
		})
	}()

	select {
	case err := <-errC:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("StartTick did not return after cancel")
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
