package timekeeper

import (
	"sync"
	"time"
)

// localTimer is the restartable percentage countdown.
type localTimer struct {
	mu           sync.Mutex
	clock        Clock
	interval     time.Duration
	hub          *broadcaster
	running      bool
	percent      float64
	totalSeconds int
	ticks        int
	generation   uint64
	stopCh       chan struct{}
	ticker       Ticker
}

func newLocalTimer(clock Clock, interval time.Duration, hub *broadcaster) *localTimer {
	return &localTimer{
		clock:    clock,
		interval: interval,
		hub:      hub,
	}
}

// start cancels any current run and counts down totalSeconds ticks.
// A non-positive total completes immediately.
func (timer *localTimer) start(totalSeconds int) {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	timer.resetLocked()

	if totalSeconds <= 0 {
		timer.percent = 100
		now := timer.clock.Now()
		timer.hub.emit(Event{Type: EventProgress, Percent: 100, At: now})
		timer.hub.emit(Event{Type: EventCompleted, Percent: 100, At: now})
		return
	}

	timer.totalSeconds = totalSeconds
	timer.running = true
	timer.stopCh = make(chan struct{})
	timer.ticker = timer.clock.NewTicker(timer.interval)

	go timer.run(timer.generation, timer.stopCh, timer.ticker)
}

// reset stops the countdown and publishes zero progress.
func (timer *localTimer) reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.resetLocked()
}

func (timer *localTimer) snapshot() (running bool, percent float64) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running, timer.percent
}

func (timer *localTimer) resetLocked() {
	timer.cancelLocked()
	timer.running = false
	timer.percent = 0
	timer.ticks = 0
	timer.totalSeconds = 0
	timer.hub.emit(Event{Type: EventProgress, Percent: 0, At: timer.clock.Now()})
}

// cancelLocked retires the current run. Ticks already in flight for it are
// dropped by the generation check in tick.
func (timer *localTimer) cancelLocked() {
	timer.generation++
	if timer.stopCh != nil {
		close(timer.stopCh)
		timer.stopCh = nil
	}
	if timer.ticker != nil {
		timer.ticker.Stop()
		timer.ticker = nil
	}
}

func (timer *localTimer) run(generation uint64, stopCh <-chan struct{}, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			if !timer.tick(generation, tickTime) {
				return
			}
		}
	}
}

// tick reports whether the run should keep ticking.
func (timer *localTimer) tick(generation uint64, tickTime time.Time) bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if generation != timer.generation || !timer.running {
		return false
	}

	timer.ticks++
	timer.percent = float64(timer.ticks) / float64(timer.totalSeconds) * 100
	timer.hub.emit(Event{Type: EventProgress, Percent: timer.percent, At: tickTime})

	if timer.ticks < timer.totalSeconds {
		return true
	}

	timer.running = false
	timer.cancelLocked()
	timer.hub.emit(Event{Type: EventCompleted, Percent: timer.percent, At: tickTime})
	return false
}
