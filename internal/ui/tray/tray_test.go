package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacetimer/internal/core/timekeeper"
)

type fakeDesktop struct {
	menu    *fyne.Menu
	setMenu int
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menu = menu
	app.setMenu++
}

func (app *fakeDesktop) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func TestFormatStatus(t *testing.T) {
	elapsed := timekeeper.Elapsed{Hours: "00", Minutes: "02", Seconds: "05"}

	assert.Equal(t, "Status: idle", formatStatus(timekeeper.ZeroElapsed, 0, false))
	assert.Equal(t, "Status: 00:02:05 overall, countdown 42%", formatStatus(elapsed, 42.4, true))
	assert.Equal(t, "Status: 00:02:05 overall", formatStatus(elapsed, 100, false))
}

func TestManagerTracksEvents(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	desktopApp := &fakeDesktop{}
	resets := 0
	manager := New(desktopApp, Callbacks{OnReset: func() { resets++ }})
	require.NotNil(t, desktopApp.menu)
	assert.Equal(t, "Status: idle", desktopApp.menu.Items[0].Label)

	manager.Apply(timekeeper.Event{Type: timekeeper.EventProgress, Percent: 25})
	manager.Apply(timekeeper.Event{Type: timekeeper.EventElapsed, Elapsed: timekeeper.Elapsed{Hours: "00", Minutes: "00", Seconds: "09"}})
	assert.Equal(t, "Status: 00:00:09 overall, countdown 25%", desktopApp.menu.Items[0].Label)

	manager.Apply(timekeeper.Event{Type: timekeeper.EventCompleted, Percent: 100})
	assert.Equal(t, "Status: 00:00:09 overall", desktopApp.menu.Items[0].Label)

	manager.resetItem.Action()
	assert.Equal(t, 1, resets)
}

func TestManagerKeepsSingleMenu(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	desktopApp := &fakeDesktop{}
	manager := New(desktopApp, Callbacks{})
	menu := desktopApp.menu
	require.NotNil(t, menu)

	elapsed := timekeeper.Elapsed{Hours: "00", Minutes: "00", Seconds: "03"}
	for i := 0; i < 5; i++ {
		manager.Apply(timekeeper.Event{Type: timekeeper.EventElapsed, Elapsed: elapsed})
	}
	manager.Apply(timekeeper.Event{Type: timekeeper.EventInvalidDuration, Message: "ignored"})

	assert.Equal(t, 1, desktopApp.setMenu)
	assert.Same(t, menu, desktopApp.menu)
	assert.Same(t, manager.statusItem, menu.Items[0])
	assert.Equal(t, "Status: 00:00:03 overall", menu.Items[0].Label)
}
