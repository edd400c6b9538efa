package main

import (
	"errors"
	"log/slog"
	"os"

	"pacetimer/internal/core/timekeeper"
	"pacetimer/internal/platform"
	"pacetimer/internal/storage"
	"pacetimer/internal/ui/preferences"
	"pacetimer/internal/ui/timerview"
	"pacetimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "PaceTimer"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running", slog.Any("error", err))
		} else {
			logger.Error("single instance", slog.Any("error", err))
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings", slog.Any("error", err))
	}

	fyneApp := app.NewWithID("com.pacetimer.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	wakeLock := platform.NewWakeLock(platform.DriverBlanker(fyneApp), logger)
	keeper := timekeeper.New(settings.TimerConfig(), timekeeper.Options{
		WakeLock: wakeLock,
		Logger:   logger,
	})

	timerWindow := timerview.New(fyneApp, keeper.Duration().String(), timerview.Callbacks{
		OnDurationChange: keeper.OnDurationChange,
		OnRestart:        keeper.Restart,
		OnReset:          keeper.FullReset,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			logger.Warn("save settings", slog.Any("error", err))
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        timerWindow.Show,
			OnRestart:     keeper.Restart,
			OnReset:       keeper.FullReset,
			OnPreferences: prefsWindow.Show,
			OnQuit: func() {
				keeper.Close()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		timerWindow.Window().SetCloseIntercept(func() {
			timerWindow.Window().Hide()
		})
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			timerWindow.Apply(event)
			if trayManager != nil {
				fyne.Do(func() {
					trayManager.Apply(event)
				})
			}
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		keeper.Close()
	})

	logger.Info("starting",
		slog.String("duration", keeper.Duration().String()),
		slog.Bool("keep_awake", settings.KeepAwake))

	timerWindow.Window().SetMaster()
	timerWindow.Show()
	fyneApp.Run()
}
