package timerview

import (
	"errors"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pacetimer/internal/core/duration"
	"pacetimer/internal/core/timekeeper"
)

// Callbacks defines the actions the view forwards to the timers.
type Callbacks struct {
	OnDurationChange func(raw string) error
	OnRestart        func()
	OnReset          func()
}

// Window is the single timer screen.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	entry         *widget.Entry
	hint          *widget.Label
	progress      *widget.ProgressBar
	elapsedLabel  *canvas.Text
	statusLabel   *canvas.Text
	restartButton *widget.Button
	resetButton   *widget.Button
}

var (
	elapsedColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	statusColor  = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

// New creates the timer window. initial is shown in the entry but does not
// start a countdown until the user edits it.
func New(app fyne.App, initial string, callbacks Callbacks) *Window {
	window := app.NewWindow("PaceTimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("HH:MM:SS")
	entry.SetText(initial)
	entry.Validator = func(value string) error {
		_, err := duration.Parse(value)
		return err
	}

	hint := widget.NewLabel("")
	hint.Wrapping = fyne.TextWrapWord

	progress := widget.NewProgressBar()
	progress.Min = 0
	progress.Max = 100
	progress.TextFormatter = func() string {
		return fmt.Sprintf("%.0f%%", progress.Value)
	}

	elapsedLabel := canvas.NewText(timekeeper.ZeroElapsed.String(), elapsedColor)
	elapsedLabel.Alignment = fyne.TextAlignCenter
	elapsedLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	elapsedLabel.TextSize = 42

	statusLabel := canvas.NewText("Idle", statusColor)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextSize = 14

	restartButton := widget.NewButtonWithIcon("Restart", theme.MediaReplayIcon(), nil)
	resetButton := widget.NewButtonWithIcon("Reset", theme.CancelIcon(), nil)

	content := container.NewVBox(
		widget.NewLabelWithStyle("Duration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		entry,
		hint,
		progress,
		layout.NewSpacer(),
		widget.NewLabelWithStyle("Overall", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		elapsedLabel,
		statusLabel,
		layout.NewSpacer(),
		container.NewGridWithColumns(2, restartButton, resetButton),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 420))

	view := &Window{
		window:        window,
		callbacks:     callbacks,
		entry:         entry,
		hint:          hint,
		progress:      progress,
		elapsedLabel:  elapsedLabel,
		statusLabel:   statusLabel,
		restartButton: restartButton,
		resetButton:   resetButton,
	}

	entry.OnChanged = view.handleChanged
	restartButton.OnTapped = func() {
		if view.callbacks.OnRestart != nil {
			view.callbacks.OnRestart()
		}
	}
	resetButton.OnTapped = func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	}

	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the timer window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Apply renders a timer event. Safe to call from any goroutine.
func (view *Window) Apply(event timekeeper.Event) {
	fyne.Do(func() {
		view.applyUnsafe(event)
	})
}

func (view *Window) applyUnsafe(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventProgress:
		view.progress.SetValue(event.Percent)
		if event.Percent > 0 && event.Percent < 100 {
			view.setStatusUnsafe("Counting down")
		}
	case timekeeper.EventCompleted:
		view.progress.SetValue(event.Percent)
		view.setStatusUnsafe("Done")
	case timekeeper.EventElapsed:
		view.elapsedLabel.Text = event.Elapsed.String()
		view.elapsedLabel.Refresh()
		if event.Elapsed == timekeeper.ZeroElapsed {
			view.setStatusUnsafe("Idle")
		}
	case timekeeper.EventInvalidDuration:
		// handleChanged already shows the hint for the rejected edit.
	case timekeeper.EventWakeLockError:
		view.setStatusUnsafe("Screen may sleep: " + event.Message)
	}
}

func (view *Window) handleChanged(raw string) {
	if view.callbacks.OnDurationChange == nil {
		return
	}
	if err := view.callbacks.OnDurationChange(raw); err != nil {
		view.hint.SetText(hintFor(err))
		return
	}
	view.hint.SetText("")
}

func (view *Window) setStatusUnsafe(status string) {
	view.statusLabel.Text = status
	view.statusLabel.Refresh()
}

func hintFor(err error) string {
	if errors.Is(err, duration.ErrInvalidDuration) {
		return "Enter a duration as HH:MM:SS, longer than zero"
	}
	return err.Error()
}
