package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterEnforcesGenerateBudget(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:        true,
		DefaultLimit:   100,
		DefaultWindow:  time.Minute,
		GenerateLimit:  2,
		GenerateWindow: time.Hour,
	})
	defer l.Stop()

	info := l.Allow("1.2.3.4", ClassGenerate)
	require.True(t, info.Allowed)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	require.True(t, l.Allow("1.2.3.4", ClassGenerate).Allowed)

	info = l.Allow("1.2.3.4", ClassGenerate)
	assert.False(t, info.Allowed)
	assert.Positive(t, info.RetryAfter)

	// Other clients and the default class are unaffected.
	assert.True(t, l.Allow("5.6.7.8", ClassGenerate).Allowed)
	assert.True(t, l.Allow("1.2.3.4", ClassDefault).Allowed)
}

func TestLimiterRefillsOverTime(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:        true,
		DefaultLimit:   1,
		DefaultWindow:  10 * time.Millisecond,
		GenerateLimit:  1,
		GenerateWindow: time.Minute,
	})
	defer l.Stop()

	require.True(t, l.Allow("c", ClassDefault).Allowed)
	require.False(t, l.Allow("c", ClassDefault).Allowed)

	time.Sleep(25 * time.Millisecond)
	assert.True(t, l.Allow("c", ClassDefault).Allowed)
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("c", ClassGenerate).Allowed)
	}
}

func TestZeroLimitDisablesClass(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 0, DefaultWindow: time.Minute, GenerateLimit: 1, GenerateWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("c", ClassDefault).Allowed)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Positive(t, cfg.DefaultLimit)
	assert.Positive(t, cfg.GenerateLimit)
	assert.Less(t, cfg.GenerateLimit, cfg.DefaultLimit)
}
