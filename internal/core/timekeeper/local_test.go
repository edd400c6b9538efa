package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalTimer() (*localTimer, *fakeClock, <-chan Event) {
	clock := newFakeClock()
	hub := &broadcaster{}
	events := hub.subscribe(256)
	return newLocalTimer(clock, time.Second, hub), clock, events
}

func TestLocalTimerCompletesAfterTotalTicks(t *testing.T) {
	for _, total := range []int{1, 2, 3, 7, 12} {
		timer, clock, events := newTestLocalTimer()
		timer.start(total)
		assert.Zero(t, nextEvent(t, events, EventProgress).Percent)

		previous := 0.0
		for n := 1; n <= total; n++ {
			clock.Advance(time.Second)
			event := nextEvent(t, events, EventProgress)
			assert.InDelta(t, float64(n)/float64(total)*100, event.Percent, 1e-9, "total %d tick %d", total, n)
			assert.Greater(t, event.Percent, previous)
			previous = event.Percent
		}

		completed := nextEvent(t, events, EventCompleted)
		assert.Equal(t, 100.0, completed.Percent)

		running, percent := timer.snapshot()
		assert.False(t, running)
		assert.Equal(t, 100.0, percent)

		clock.Advance(time.Second)
		requireNoEvent(t, events, EventProgress)
		assert.Zero(t, clock.liveTickers())
	}
}

func TestLocalTimerFirstTickIsOneStep(t *testing.T) {
	timer, clock, events := newTestLocalTimer()
	timer.start(90)
	nextEvent(t, events, EventProgress)

	clock.Advance(time.Second)
	assert.InDelta(t, 100.0/90.0, nextEvent(t, events, EventProgress).Percent, 1e-9)

	running, _ := timer.snapshot()
	assert.True(t, running)
}

func TestLocalTimerRestartCancelsPreviousRun(t *testing.T) {
	timer, clock, events := newTestLocalTimer()

	timer.start(10)
	timer.start(4)
	assert.Equal(t, 1, clock.liveTickers())

	// Drain the two zero-progress resets.
	assert.Zero(t, nextEvent(t, events, EventProgress).Percent)
	assert.Zero(t, nextEvent(t, events, EventProgress).Percent)

	for _, want := range []float64{25, 50, 75, 100} {
		clock.Advance(time.Second)
		assert.InDelta(t, want, nextEvent(t, events, EventProgress).Percent, 1e-9)
	}
	nextEvent(t, events, EventCompleted)

	clock.Advance(time.Second)
	requireNoEvent(t, events, EventProgress)
}

func TestLocalTimerRestartMidRun(t *testing.T) {
	timer, clock, events := newTestLocalTimer()

	timer.start(10)
	nextEvent(t, events, EventProgress)
	for n := 1; n <= 3; n++ {
		clock.Advance(time.Second)
		nextEvent(t, events, EventProgress)
	}

	timer.start(2)
	assert.Zero(t, nextEvent(t, events, EventProgress).Percent)

	clock.Advance(time.Second)
	assert.InDelta(t, 50.0, nextEvent(t, events, EventProgress).Percent, 1e-9)
	clock.Advance(time.Second)
	assert.InDelta(t, 100.0, nextEvent(t, events, EventProgress).Percent, 1e-9)
	nextEvent(t, events, EventCompleted)
}

func TestLocalTimerReset(t *testing.T) {
	timer, clock, events := newTestLocalTimer()

	timer.reset()
	timer.reset()
	running, percent := timer.snapshot()
	assert.False(t, running)
	assert.Zero(t, percent)

	timer.start(5)
	nextEvent(t, events, EventProgress)
	nextEvent(t, events, EventProgress)
	nextEvent(t, events, EventProgress)
	clock.Advance(time.Second)
	nextEvent(t, events, EventProgress)

	timer.reset()
	assert.Zero(t, nextEvent(t, events, EventProgress).Percent)
	running, percent = timer.snapshot()
	assert.False(t, running)
	assert.Zero(t, percent)

	clock.Advance(time.Second)
	requireNoEvent(t, events, EventProgress)
}

func TestLocalTimerNonPositiveTotalCompletesImmediately(t *testing.T) {
	for _, total := range []int{0, -5} {
		timer, clock, events := newTestLocalTimer()
		timer.start(total)

		assert.Zero(t, nextEvent(t, events, EventProgress).Percent)
		assert.Equal(t, 100.0, nextEvent(t, events, EventProgress).Percent)
		require.Equal(t, 100.0, nextEvent(t, events, EventCompleted).Percent)

		running, percent := timer.snapshot()
		assert.False(t, running)
		assert.Equal(t, 100.0, percent)
		assert.Zero(t, clock.liveTickers())
	}
}
