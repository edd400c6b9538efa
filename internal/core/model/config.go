package model

import "time"

// TimerConfig contains runtime settings for the timer controller.
type TimerConfig struct {
	// TickInterval is the period of both timers. One second unless overridden.
	TickInterval time.Duration

	// DefaultDuration is the HH:MM:SS value the input starts with.
	DefaultDuration string

	// KeepAwake requests the wake lock while the overall timer runs.
	KeepAwake bool
}
