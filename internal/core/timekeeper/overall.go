package timekeeper

import (
	"log/slog"
	"sync"
	"time"
)

// WakeLock keeps the device display on while the overall timer runs.
type WakeLock interface {
	KeepAwake() error
	AllowSleepAgain() error
}

// overallTimer is the start-once stopwatch spanning many countdowns.
// Elapsed time is always now minus startedAt, so missed ticks cannot drift it.
type overallTimer struct {
	mu        sync.Mutex
	clock     Clock
	interval  time.Duration
	hub       *broadcaster
	logger    *slog.Logger
	wakeLock  WakeLock
	running   bool
	startedAt time.Time
	elapsed   Elapsed
	stopCh    chan struct{}
	ticker    Ticker
}

func newOverallTimer(clock Clock, interval time.Duration, hub *broadcaster, wakeLock WakeLock, logger *slog.Logger) *overallTimer {
	return &overallTimer{
		clock:    clock,
		interval: interval,
		hub:      hub,
		logger:   logger,
		wakeLock: wakeLock,
		elapsed:  ZeroElapsed,
	}
}

// startIfNotRunning reports whether this call started the stopwatch.
func (timer *overallTimer) startIfNotRunning() bool {
	timer.mu.Lock()
	if timer.running {
		timer.mu.Unlock()
		return false
	}
	timer.running = true
	timer.startedAt = timer.clock.Now()
	timer.stopCh = make(chan struct{})
	timer.ticker = timer.clock.NewTicker(timer.interval)
	startedAt := timer.startedAt
	go timer.run(timer.stopCh, timer.ticker)
	timer.mu.Unlock()

	timer.logger.Debug("overall timer started", slog.Time("started_at", startedAt))
	timer.acquireWakeLock()
	return true
}

// reset stops the stopwatch and publishes a zero display.
func (timer *overallTimer) reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.stopCh != nil {
		close(timer.stopCh)
		timer.stopCh = nil
	}
	if timer.ticker != nil {
		timer.ticker.Stop()
		timer.ticker = nil
	}
	timer.running = false
	timer.startedAt = time.Time{}
	timer.elapsed = ZeroElapsed
	timer.hub.emit(Event{Type: EventElapsed, Elapsed: ZeroElapsed, At: timer.clock.Now()})
}

func (timer *overallTimer) snapshot() (running bool, elapsed Elapsed) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.running, timer.elapsed
}

func (timer *overallTimer) run(stopCh <-chan struct{}, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			timer.tick(stopCh, tickTime)
		}
	}
}

func (timer *overallTimer) tick(stopCh <-chan struct{}, tickTime time.Time) {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	// A reset closes stopCh under the same lock, so a stale run sees it here.
	select {
	case <-stopCh:
		return
	default:
	}

	timer.elapsed = ElapsedFrom(tickTime.Sub(timer.startedAt))
	timer.hub.emit(Event{Type: EventElapsed, Elapsed: timer.elapsed, At: tickTime})
}

func (timer *overallTimer) acquireWakeLock() {
	if timer.wakeLock == nil {
		return
	}
	if err := timer.wakeLock.KeepAwake(); err != nil {
		timer.logger.Warn("keep awake failed", slog.Any("error", err))
		timer.hub.emit(Event{Type: EventWakeLockError, Message: err.Error(), At: timer.clock.Now()})
	}
}
