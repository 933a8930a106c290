package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestRateLimiter_Allow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(60, 2, clock.now)

	ok, _ := rl.allow("1.1.1.1")
	assert.True(t, ok)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok)

	ok, retry := rl.allow("1.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, retry)

	ok, _ = rl.allow("2.2.2.2")
	assert.True(t, ok, "buckets are per IP")

	clock.t = clock.t.Add(time.Second)
	ok, _ = rl.allow("1.1.1.1")
	assert.True(t, ok, "one token refilled after a second at 60/min")
}

func TestRateLimiter_BurstCap(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(60, 3, clock.now)

	rl.allow("ip")
	clock.t = clock.t.Add(time.Hour)

	allowed := 0
	for i := 0; i < 10; i++ {
		if ok, _ := rl.allow("ip"); ok {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)
}

func TestRateLimiter_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(30, 10, clock.now)

	rl.allow("old")
	clock.t = clock.t.Add(20 * time.Minute)
	rl.allow("fresh")

	rl.sweep(clock.t.Add(-cleanupIdleDuration))

	assert.NotContains(t, rl.buckets, "old")
	assert.Contains(t, rl.buckets, "fresh")
}
