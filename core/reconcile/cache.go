package reconcile

import (
	"context"
	"sync"
	"time"

	"lakecircle/core/lifecycle"

	"golang.org/x/sync/singleflight"
)

// Loaded holds both sides of a reconciliation.
type Loaded struct {
	// Desired is the state declared by definition files.
	Desired *Snapshot

	// Actual is the live state read from the account.
	Actual *Snapshot

	// Built is the timestamp when both sides finished loading.
	Built time.Time
}

// LoadBoth runs both loaders concurrently and waits for them. The first
// error, desired side first, is returned.
func LoadBoth(ctx context.Context, desired, actual LoadFunc) (*Loaded, error) {
	var (
		d, a       *Snapshot
		dErr, aErr error
		wg         sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		d, dErr = desired(ctx)
	}()

	go func() {
		defer wg.Done()
		a, aErr = actual(ctx)
	}()

	wg.Wait()

	if dErr != nil {
		return nil, dErr
	}
	if aErr != nil {
		return nil, aErr
	}

	return &Loaded{Desired: orEmpty(d), Actual: orEmpty(a), Built: time.Now()}, nil
}

func orEmpty(s *Snapshot) *Snapshot {
	if s == nil {
		return &Snapshot{State: lifecycle.State{}}
	}
	if s.State == nil {
		s.State = lifecycle.State{}
	}
	return s
}

// SnapshotCache keeps loaded states for dry runs served repeatedly.
// Concurrent misses for the same key share one load.
type SnapshotCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*Loaded
	sf      singleflight.Group
}

// NewSnapshotCache creates a cache. A zero ttl disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:     ttl,
		entries: make(map[string]*Loaded),
	}
}

func (c *SnapshotCache) fresh(l *Loaded) bool {
	return c.ttl > 0 && time.Since(l.Built) <= c.ttl
}

// GetOrLoad returns the cached state for key or loads it.
func (c *SnapshotCache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (*Loaded, error)) (*Loaded, error) {
	c.mu.RLock()
	l, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.fresh(l) {
		return l, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		l, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && c.fresh(l) {
			return l, nil
		}

		// The load is shared by every waiter, so one caller's cancellation
		// must not fail the others.
		loaded, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = loaded
			c.mu.Unlock()
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Loaded), nil
}

// Invalidate drops the state cached for key.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
