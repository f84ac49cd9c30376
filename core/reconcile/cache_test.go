package reconcile_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lakecircle/core/lifecycle"
	"lakecircle/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLoad(s lifecycle.State, warnings ...reconcile.Warning) reconcile.LoadFunc {
	return func(context.Context) (*reconcile.Snapshot, error) {
		return &reconcile.Snapshot{State: s, Warnings: warnings}, nil
	}
}

func failingLoad(err error) reconcile.LoadFunc {
	return func(context.Context) (*reconcile.Snapshot, error) {
		return nil, err
	}
}

func TestLoadBoth(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		desired := state(lifecycle.NewRuleCollection("b1", expireAfter("a", 1)))
		loaded, err := reconcile.LoadBoth(ctx, staticLoad(desired), staticLoad(nil))
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Desired.State.RuleCount())
		assert.NotNil(t, loaded.Actual.State)
		assert.False(t, loaded.Built.IsZero())
	})

	t.Run("DesiredErrorWins", func(t *testing.T) {
		errDesired := errors.New("desired")
		errActual := errors.New("actual")
		_, err := reconcile.LoadBoth(ctx, failingLoad(errDesired), failingLoad(errActual))
		assert.ErrorIs(t, err, errDesired)
	})

	t.Run("ActualError", func(t *testing.T) {
		errActual := errors.New("actual")
		_, err := reconcile.LoadBoth(ctx, staticLoad(nil), failingLoad(errActual))
		assert.ErrorIs(t, err, errActual)
	})
}

func TestSnapshotCache(t *testing.T) {
	ctx := context.Background()

	countingLoad := func(n *int32) func(context.Context) (*reconcile.Loaded, error) {
		return func(context.Context) (*reconcile.Loaded, error) {
			atomic.AddInt32(n, 1)
			return &reconcile.Loaded{Built: time.Now()}, nil
		}
	}

	t.Run("ServesFreshEntries", func(t *testing.T) {
		var n int32
		c := reconcile.NewSnapshotCache(time.Minute)

		first, err := c.GetOrLoad(ctx, "k", countingLoad(&n))
		require.NoError(t, err)
		second, err := c.GetOrLoad(ctx, "k", countingLoad(&n))
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&n))
	})

	t.Run("Invalidate", func(t *testing.T) {
		var n int32
		c := reconcile.NewSnapshotCache(time.Minute)

		_, _ = c.GetOrLoad(ctx, "k", countingLoad(&n))
		c.Invalidate("k")
		_, _ = c.GetOrLoad(ctx, "k", countingLoad(&n))

		assert.Equal(t, int32(2), atomic.LoadInt32(&n))
	})

	t.Run("ZeroTTLDisablesCaching", func(t *testing.T) {
		var n int32
		c := reconcile.NewSnapshotCache(0)

		_, _ = c.GetOrLoad(ctx, "k", countingLoad(&n))
		_, _ = c.GetOrLoad(ctx, "k", countingLoad(&n))

		assert.Equal(t, int32(2), atomic.LoadInt32(&n))
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		c := reconcile.NewSnapshotCache(time.Minute)
		_, err := c.GetOrLoad(ctx, "k", func(context.Context) (*reconcile.Loaded, error) {
			return nil, errors.New("boom")
		})
		assert.Error(t, err)

		var n int32
		_, err = c.GetOrLoad(ctx, "k", countingLoad(&n))
		assert.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&n))
	})

	t.Run("ConcurrentMissesShareOneLoad", func(t *testing.T) {
		var n int32
		release := make(chan struct{})
		c := reconcile.NewSnapshotCache(time.Minute)
		load := func(context.Context) (*reconcile.Loaded, error) {
			atomic.AddInt32(&n, 1)
			<-release
			return &reconcile.Loaded{Built: time.Now()}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = c.GetOrLoad(ctx, "k", load)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&n))
	})
	t.Run("LoadOutlivesCallerCancellation", func(t *testing.T) {
		c := reconcile.NewSnapshotCache(time.Minute)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		loaded, err := c.GetOrLoad(cancelled, "k", func(ctx context.Context) (*reconcile.Loaded, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &reconcile.Loaded{Built: time.Now()}, nil
		})
		require.NoError(t, err)
		assert.NotNil(t, loaded)
	})
}
