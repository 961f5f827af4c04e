// Package ratelimiter throttles repeated attempts against the credential
// endpoints. Each identity (an account email, a WhatsApp number or a client
// IP) gets its own token bucket; buckets left idle are swept periodically so
// the map does not grow with every address that ever tried to log in.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// IdentityLimiter is a token-bucket limiter keyed by identity. Refill happens
// lazily on access; lastSeen doubles as the refill timestamp, so failed
// attempts also keep a bucket alive.
type IdentityLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate       float64       // tokens added per second
	burst      float64       // bucket capacity, the allowed burst size
	idleExpiry time.Duration // idle buckets older than this are swept

	stop     chan struct{}
	stopOnce sync.Once
}

func New(rate, burst float64, idleExpiry time.Duration) *IdentityLimiter {
	l := &IdentityLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		burst:      burst,
		idleExpiry: idleExpiry,
		stop:       make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether the identity may make another attempt now, consuming
// one token if so.
func (l *IdentityLimiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[identity] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
		b.lastSeen = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Size reports the number of tracked identities.
func (l *IdentityLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop terminates the sweeper goroutine.
func (l *IdentityLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *IdentityLimiter) sweep() {
	interval := l.idleExpiry
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.idleExpiry)
			l.mu.Lock()
			for identity, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, identity)
				}
			}
			l.mu.Unlock()
		}
	}
}
