package roster

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bbpmp-jabar/nyurat-keun/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler lets tests fire or drop scheduled calls explicitly.
type manualScheduler struct {
	pending []*manualTimer
}

type manualTimer struct {
	fn        func()
	cancelled bool
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) func() {
	t := &manualTimer{fn: fn}
	s.pending = append(s.pending, t)
	return func() { t.cancelled = true }
}

func (s *manualScheduler) fireAll() {
	for _, t := range s.pending {
		if !t.cancelled {
			t.fn()
		}
	}
	s.pending = nil
}

func TestDebouncerReplacesPendingCall(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 500*time.Millisecond)

	var got []string
	d.Tap(func() { got = append(got, "first") })
	d.Tap(func() { got = append(got, "second") })

	sched.fireAll()

	assert.Equal(t, []string{"second"}, got, "an earlier pending call must be cancelled by a later keystroke")
}

func TestDebouncerFlushRunsImmediately(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 500*time.Millisecond)

	var got []string
	d.Tap(func() { got = append(got, "debounced") })
	d.Flush(func() { got = append(got, "explicit") })

	assert.Equal(t, []string{"explicit"}, got, "explicit search bypasses the timer")

	sched.fireAll()
	assert.Equal(t, []string{"explicit"}, got, "the cancelled timer must not fire")
}

func TestDebouncerCancel(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 500*time.Millisecond)

	ran := false
	d.Tap(func() { ran = true })
	d.Cancel()
	sched.fireAll()

	assert.False(t, ran)
}

func TestDebouncerRealTimer(t *testing.T) {
	d := NewDebouncer(NewTimerScheduler(), 10*time.Millisecond)

	var mu sync.Mutex
	fired := 0
	d.Tap(func() { mu.Lock(); fired++; mu.Unlock() })
	d.Tap(func() { mu.Lock(); fired++; mu.Unlock() })

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired)
}

// stubFetcher serves canned rosters, blocking until released when asked.
type stubFetcher struct {
	mu      sync.Mutex
	results [][]directory.Person
	release chan struct{}
}

func (f *stubFetcher) FetchPegawai(ctx context.Context, _ string) ([]directory.Person, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	people := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return people, nil
}

func TestCacheRefreshPublishes(t *testing.T) {
	fetcher := &stubFetcher{results: [][]directory.Person{{{NIP: "1"}}}}
	cache := NewCache(fetcher)

	published, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, published)
	assert.Len(t, cache.People(), 1)
}

func TestCacheStaleRefreshIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	fetcher := &stubFetcher{
		results: [][]directory.Person{{{NIP: "old"}}, {{NIP: "new"}}},
		release: release,
	}
	cache := NewCache(fetcher)

	slow := make(chan bool, 1)
	go func() {
		published, _ := cache.Refresh(context.Background())
		slow <- published
	}()

	// Let the slow refresh claim its sequence number before issuing a newer one.
	time.Sleep(20 * time.Millisecond)

	fast := make(chan bool, 1)
	go func() {
		published, _ := cache.Refresh(context.Background())
		fast <- published
	}()
	time.Sleep(20 * time.Millisecond)

	release <- struct{}{}
	release <- struct{}{}

	// Only the latest-issued refresh may publish, regardless of which fetch
	// returns first.
	assert.False(t, <-slow, "an outdated refresh must discard its result")
	assert.True(t, <-fast)
	assert.NotEmpty(t, cache.People())
}
