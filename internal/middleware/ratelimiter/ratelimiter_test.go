package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	t.Run("allows up to the burst, then denies", func(t *testing.T) {
		l := New(0, 2, time.Hour)
		defer l.Stop()

		assert.True(t, l.Allow("budi@bbpmpjabar.id"))
		assert.True(t, l.Allow("budi@bbpmpjabar.id"))
		assert.False(t, l.Allow("budi@bbpmpjabar.id"))
	})

	t.Run("tracks identities independently", func(t *testing.T) {
		l := New(0, 1, time.Hour)
		defer l.Stop()

		assert.True(t, l.Allow("budi@bbpmpjabar.id"))
		assert.False(t, l.Allow("budi@bbpmpjabar.id"))
		assert.True(t, l.Allow("081234567890"))
		assert.True(t, l.Allow("10.12.192.7"))
	})

	t.Run("refills over time", func(t *testing.T) {
		l := New(100, 1, time.Hour)
		defer l.Stop()

		assert.True(t, l.Allow("siti@bbpmpjabar.id"))
		assert.False(t, l.Allow("siti@bbpmpjabar.id"))

		time.Sleep(50 * time.Millisecond) // 100 tokens/s restores several
		assert.True(t, l.Allow("siti@bbpmpjabar.id"))
	})

	t.Run("refill never exceeds the burst", func(t *testing.T) {
		l := New(30, 1, time.Hour)
		defer l.Stop()

		l.Allow("x")
		time.Sleep(100 * time.Millisecond) // enough for 3 tokens, capped at 1

		assert.True(t, l.Allow("x"))
		assert.False(t, l.Allow("x"), "a full bucket holds exactly one burst")
	})
}

func TestIdleIdentitiesAreSwept(t *testing.T) {
	l := New(0, 1, 20*time.Millisecond)
	defer l.Stop()

	l.Allow("081234567890")
	assert.Equal(t, 1, l.Size())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, l.Size())
}

func TestConcurrentSharedIdentity(t *testing.T) {
	l := New(0, 5, time.Hour)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}
