package ratelimiter

import (
	"sync"
	"time"
)

// limiter is a token bucket for a single identity.
type limiter struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	identity   string
	parent     *PerIdentityLimiter
}

// PerIdentityLimiter keeps one token bucket per identity (email, IP or a
// fixed global key). Idle buckets expire to keep the map bounded.
type PerIdentityLimiter struct {
	limiters       map[string]*limiter
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

// New creates a limiter pool refilling at rate tokens per second up to
// capacity, dropping buckets idle longer than expirationTime.
func New(rate float64, capacity float64, expirationTime time.Duration) *PerIdentityLimiter {
	return &PerIdentityLimiter{
		limiters:       make(map[string]*limiter),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

// Presets used by the router.

func Rps10() *PerIdentityLimiter  { return New(10, 10, time.Hour) }
func Rps100() *PerIdentityLimiter { return New(100, 100, time.Hour) }

func OnceInSecond() *PerIdentityLimiter { return New(1, 1, time.Hour) }

func (p *PerIdentityLimiter) cleanup(identity string) {
	p.mu.Lock()
	delete(p.limiters, identity)
	p.mu.Unlock()
}

func (l *limiter) resetTimer() {
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.parent.expirationTime, func() {
		l.parent.cleanup(l.identity)
	})
}

func (p *PerIdentityLimiter) getLimiter(identity string) *limiter {
	p.mu.RLock()
	l, exists := p.limiters[identity]
	p.mu.RUnlock()

	if exists {
		l.resetTimer()
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	l, exists = p.limiters[identity]
	if exists {
		l.resetTimer()
		return l
	}

	l = &limiter{
		tokens:     p.capacity,
		capacity:   p.capacity,
		rate:       p.rate,
		lastRefill: time.Now(),
		identity:   identity,
		parent:     p,
	}
	p.limiters[identity] = l
	l.resetTimer()

	return l
}

func (l *limiter) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()

	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.lastRefill = now

	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// Allow reports whether a request for the identity may proceed now.
func (p *PerIdentityLimiter) Allow(identity string) bool {
	return p.getLimiter(identity).allow()
}
