package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock hands out a controllable time to the throttle.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestThrottle() (*ViewThrottle, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)}
	throttle := &ViewThrottle{
		Markers: NewMemoryViewMarkers(),
		Window:  PostViewWindow,
		Now:     clock.Now,
	}
	return throttle, clock
}

func TestViewThrottleSameSession(t *testing.T) {
	throttle, clock := newTestThrottle()

	assert.True(t, throttle.ShouldCount("session-a", 1))
	assert.False(t, throttle.ShouldCount("session-a", 1))

	clock.Advance(29 * time.Minute)
	assert.False(t, throttle.ShouldCount("session-a", 1))

	clock.Advance(time.Minute)
	assert.True(t, throttle.ShouldCount("session-a", 1))
}

func TestViewThrottleDistinctSessions(t *testing.T) {
	throttle, _ := newTestThrottle()

	assert.True(t, throttle.ShouldCount("session-a", 1))
	assert.True(t, throttle.ShouldCount("session-b", 1))
	assert.False(t, throttle.ShouldCount("session-a", 1))
	assert.False(t, throttle.ShouldCount("session-b", 1))
}

func TestViewThrottleDistinctPosts(t *testing.T) {
	throttle, _ := newTestThrottle()

	assert.True(t, throttle.ShouldCount("session-a", 1))
	assert.True(t, throttle.ShouldCount("session-a", 2))
	assert.False(t, throttle.ShouldCount("session-a", 1))
	assert.False(t, throttle.ShouldCount("session-a", 2))
}

func TestViewThrottleRefreshesMarker(t *testing.T) {
	throttle, clock := newTestThrottle()

	assert.True(t, throttle.ShouldCount("session-a", 1))

	// Counting again resets the window; reads inside the new window stay
	// suppressed relative to the most recent counted view.
	clock.Advance(31 * time.Minute)
	assert.True(t, throttle.ShouldCount("session-a", 1))

	clock.Advance(29 * time.Minute)
	assert.False(t, throttle.ShouldCount("session-a", 1))
}
