// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"sync"
	"time"
)

// bucket refills at a steady rate up to its capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) take() (allowed bool, remaining int, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	wait := time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second))
	return false, 0, wait
}

// Class distinguishes cheap state reads from model-backed work.
type Class int

const (
	// ClassDefault covers session reads and transitions.
	ClassDefault Class = iota
	// ClassGenerate covers endpoints that call the model.
	ClassGenerate
)

// Config sets per-class budgets. A zero limit disables the class.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	GenerateLimit   int
	GenerateWindow  time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig allows generous reads and a handful of generations per
// minute per client.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    120,
		DefaultWindow:   time.Minute,
		GenerateLimit:   10,
		GenerateWindow:  time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Info reports the outcome of one admission check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits requests per client and class.
type Limiter struct {
	mu         sync.Mutex
	config     *Config
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewLimiter builds a limiter and starts its idle-bucket reaper.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		stop:       make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.reap(config.CleanupInterval)
	}
	return l
}

// Allow checks whether one request from clientID in the given class may
// proceed.
func (l *Limiter) Allow(clientID string, class Class) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}

	limit, window := l.config.DefaultLimit, l.config.DefaultWindow
	key := clientID + ":default"
	if class == ClassGenerate {
		limit, window = l.config.GenerateLimit, l.config.GenerateWindow
		key = clientID + ":generate"
	}
	if limit <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(limit, float64(limit)/window.Seconds())
		l.buckets[key] = b
	}
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, retryAfter := b.take()
	return Info{Allowed: allowed, Limit: limit, Remaining: remaining, RetryAfter: retryAfter}
}

func (l *Limiter) reap(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-time.Hour)
			l.mu.Lock()
			for key, last := range l.lastAccess {
				if last.Before(cutoff) {
					delete(l.buckets, key)
					delete(l.lastAccess, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop terminates the reaper goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
