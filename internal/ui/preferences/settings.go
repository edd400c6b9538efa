package preferences

import (
	"time"

	"pacetimer/internal/core/duration"
	"pacetimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	DefaultDuration string
	KeepAwake       bool
}

// DefaultSettings returns default settings for PaceTimer.
func DefaultSettings() Settings {
	return Settings{
		DefaultDuration: duration.Default,
		KeepAwake:       true,
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		TickInterval:    time.Second,
		DefaultDuration: settings.DefaultDuration,
		KeepAwake:       settings.KeepAwake,
	}
}
