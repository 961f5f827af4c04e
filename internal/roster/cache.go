package roster

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/bbpmp-jabar/nyurat-keun/internal/logger"
)

// Fetcher is the slice of the API client the cache needs.
type Fetcher interface {
	FetchPegawai(ctx context.Context, token string) ([]directory.Person, error)
}

// Cache holds the last successfully fetched roster for the schedule-monitor
// view, refreshed in the background. Refreshes carry a monotonically
// increasing sequence number; a refresh only publishes its result while it is
// still the latest issued, so a slow response never overwrites a newer one.
type Cache struct {
	fetcher Fetcher
	nudge   *Debouncer

	mu     sync.RWMutex
	people []directory.Person

	seq atomic.Uint64
}

// nudgeDelay coalesces refresh requests from concurrent page loads.
const nudgeDelay = time.Second

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		nudge:   NewDebouncer(NewTimerScheduler(), nudgeDelay),
	}
}

// Nudge schedules a refresh shortly. Bursts of nudges (several page loads
// hitting an empty cache) collapse into a single fetch.
func (c *Cache) Nudge() {
	c.nudge.Tap(func() {
		if _, err := c.Refresh(context.Background()); err != nil {
			logger.Log.Warn("roster cache refresh failed", "error", err)
		}
	})
}

// People returns the cached roster (possibly empty before the first refresh).
func (c *Cache) People() []directory.Person {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.people
}

// Refresh fetches the roster and publishes it if no newer refresh was issued
// in the meantime. Returns false when the result was discarded as stale.
func (c *Cache) Refresh(ctx context.Context) (bool, error) {
	seq := c.seq.Add(1)

	people, err := c.fetcher.FetchPegawai(ctx, "")
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq.Load() != seq {
		return false, nil
	}
	c.people = people
	return true, nil
}

// StartBackgroundUpdate refreshes the cache immediately and then on every
// tick until ctx is cancelled.
func (c *Cache) StartBackgroundUpdate(ctx context.Context, interval time.Duration) {
	refresh := func() {
		if _, err := c.Refresh(ctx); err != nil {
			logger.Log.Warn("roster cache refresh failed", "error", err)
		}
	}

	go func() {
		refresh()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}
