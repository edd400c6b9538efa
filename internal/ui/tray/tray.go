package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pacetimer/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnRestart     func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
	percent    float64
	elapsed    timekeeper.Elapsed
	counting   bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		elapsed:   timekeeper.ZeroElapsed,
	}

	manager.statusItem = fyne.NewMenuItem(manager.statusText(), nil)
	manager.statusItem.Disabled = true

	manager.resetItem = fyne.NewMenuItem("Reset timers", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.menu = manager.buildMenu()
	if app != nil {
		app.SetSystemTrayMenu(manager.menu)
	}
	return manager
}

// Apply updates the status line from a timer event.
// Must run on the UI goroutine.
func (manager *Manager) Apply(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventProgress:
		manager.percent = event.Percent
		manager.counting = event.Percent < 100
	case timekeeper.EventCompleted:
		manager.percent = event.Percent
		manager.counting = false
	case timekeeper.EventElapsed:
		manager.elapsed = event.Elapsed
	default:
		return
	}
	label := manager.statusText()
	if label == manager.statusItem.Label {
		return
	}
	manager.statusItem.Label = label
	if manager.app != nil {
		manager.menu.Refresh()
	}
}

func (manager *Manager) statusText() string {
	return formatStatus(manager.elapsed, manager.percent, manager.counting)
}

func formatStatus(elapsed timekeeper.Elapsed, percent float64, counting bool) string {
	if elapsed == timekeeper.ZeroElapsed && percent == 0 {
		return "Status: idle"
	}
	if counting {
		return fmt.Sprintf("Status: %s overall, countdown %.0f%%", elapsed, percent)
	}
	return fmt.Sprintf("Status: %s overall", elapsed)
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("PaceTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("Restart countdown", func() {
			if manager.callbacks.OnRestart != nil {
				manager.callbacks.OnRestart()
			}
		}),
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}
