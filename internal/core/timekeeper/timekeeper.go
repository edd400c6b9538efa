package timekeeper

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pacetimer/internal/core/duration"
	"pacetimer/internal/core/model"
)

// Options contains the collaborators of a TimeKeeper.
type Options struct {
	Clock    Clock
	WakeLock WakeLock
	Logger   *slog.Logger
}

// Snapshot is a point-in-time view of both timers.
type Snapshot struct {
	LocalRunning   bool
	Percent        float64
	OverallRunning bool
	Elapsed        Elapsed
	Duration       duration.Spec
}

// TimeKeeper coordinates the local countdown and the overall stopwatch.
type TimeKeeper struct {
	mu       sync.Mutex
	config   model.TimerConfig
	clock    Clock
	logger   *slog.Logger
	hub      *broadcaster
	local    *localTimer
	overall  *overallTimer
	wakeLock WakeLock
	duration duration.Spec
	closed   bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimerConfig, options Options) *TimeKeeper {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.DefaultDuration == "" {
		config.DefaultDuration = duration.Default
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	wakeLock := options.WakeLock
	if !config.KeepAwake {
		wakeLock = nil
	}

	initial, err := duration.Parse(config.DefaultDuration)
	if err != nil {
		options.Logger.Warn("default duration rejected",
			slog.String("duration", config.DefaultDuration),
			slog.Any("error", err))
		initial = duration.MustParse(duration.Default)
	}

	hub := &broadcaster{}
	return &TimeKeeper{
		config:   config,
		clock:    options.Clock,
		logger:   options.Logger,
		hub:      hub,
		local:    newLocalTimer(options.Clock, config.TickInterval, hub),
		overall:  newOverallTimer(options.Clock, config.TickInterval, hub, wakeLock, options.Logger),
		wakeLock: wakeLock,
		duration: initial,
	}
}

// Subscribe registers a new observer channel.
// Events are dropped for an observer whose buffer is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	return keeper.hub.subscribe(buffer)
}

// OnDurationChange parses raw and restarts the countdown with it.
// Invalid input leaves both timers untouched.
func (keeper *TimeKeeper) OnDurationChange(raw string) error {
	spec, err := duration.Parse(raw)
	if err != nil {
		keeper.logger.Warn("duration rejected", slog.String("input", raw), slog.Any("error", err))
		keeper.hub.emit(Event{Type: EventInvalidDuration, Message: err.Error(), At: keeper.clock.Now()})
		return fmt.Errorf("duration change: %w", err)
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return nil
	}

	keeper.duration = spec
	keeper.local.start(spec.TotalSeconds())
	keeper.logger.Debug("local timer started",
		slog.String("duration", spec.String()),
		slog.Int("total_seconds", spec.TotalSeconds()))
	keeper.overall.startIfNotRunning()
	return nil
}

// Restart runs the countdown again with the current duration.
func (keeper *TimeKeeper) Restart() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.local.start(keeper.duration.TotalSeconds())
	keeper.overall.startIfNotRunning()
}

// ResetLocal stops the countdown and clears its progress.
func (keeper *TimeKeeper) ResetLocal() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.local.reset()
	keeper.logger.Debug("local timer reset")
}

// ResetOverall stops the stopwatch and clears its display.
// The wake lock stays held until FullReset.
func (keeper *TimeKeeper) ResetOverall() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.overall.reset()
	keeper.logger.Debug("overall timer reset")
}

// FullReset clears both timers and lets the device sleep again.
func (keeper *TimeKeeper) FullReset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.local.reset()
	keeper.overall.reset()
	keeper.releaseWakeLockLocked()
	keeper.logger.Debug("timers reset")
}

// Close stops both timers, releases the wake lock and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.local.reset()
	keeper.overall.reset()
	keeper.releaseWakeLockLocked()
	keeper.mu.Unlock()

	keeper.hub.close()
}

// Duration returns the last accepted duration.
func (keeper *TimeKeeper) Duration() duration.Spec {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.duration
}

// Snapshot returns the current state of both timers.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	localRunning, percent := keeper.local.snapshot()
	overallRunning, elapsed := keeper.overall.snapshot()
	return Snapshot{
		LocalRunning:   localRunning,
		Percent:        percent,
		OverallRunning: overallRunning,
		Elapsed:        elapsed,
		Duration:       keeper.Duration(),
	}
}

func (keeper *TimeKeeper) releaseWakeLockLocked() {
	if keeper.wakeLock == nil {
		return
	}
	if err := keeper.wakeLock.AllowSleepAgain(); err != nil {
		keeper.logger.Warn("allow sleep failed", slog.Any("error", err))
		keeper.hub.emit(Event{Type: EventWakeLockError, Message: err.Error(), At: keeper.clock.Now()})
	}
}
