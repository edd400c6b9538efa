package preferences

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pacetimer/internal/core/duration"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	duration  *widget.Entry
	keepAwake *widget.Check
	status    *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("PaceTimer Settings")

	durationEntry := widget.NewEntry()
	durationEntry.SetPlaceHolder("HH:MM:SS")
	durationEntry.SetText(settings.DefaultDuration)
	durationEntry.Validator = func(value string) error {
		_, err := duration.Parse(value)
		return err
	}

	keepAwake := widget.NewCheck("Keep the screen on while timing", nil)
	keepAwake.SetChecked(settings.KeepAwake)

	status := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Start duration"), nil, durationEntry),
		keepAwake,
		widget.NewLabel("Changes apply the next time PaceTimer starts."),
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 200))

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		duration:  durationEntry,
		keepAwake: keepAwake,
		status:    status,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.duration.SetText(settings.DefaultDuration)
	prefs.keepAwake.SetChecked(settings.KeepAwake)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings, err := applyForm(prefs.settings, prefs.duration.Text, prefs.keepAwake.Checked)
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.status.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// applyForm returns current unchanged when the duration is not valid.
func applyForm(current Settings, rawDuration string, keepAwake bool) (Settings, error) {
	spec, err := duration.Parse(strings.TrimSpace(rawDuration))
	if err != nil {
		return current, err
	}
	current.DefaultDuration = spec.String()
	current.KeepAwake = keepAwake
	return current, nil
}
