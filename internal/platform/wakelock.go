package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
)

// ErrWakeLockUnsupported indicates no OS sleep inhibitor is available on this system.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

// ScreenBlanker toggles display blanking. fyne.Driver satisfies it.
type ScreenBlanker interface {
	SetDisableScreenBlanking(disable bool)
}

type sleepInhibitor interface {
	acquire() error
	release() error
}

// WakeLock keeps the device awake while a timer runs.
// KeepAwake and AllowSleepAgain are idempotent.
type WakeLock struct {
	mu        sync.Mutex
	blanker   ScreenBlanker
	inhibitor sleepInhibitor
	logger    *slog.Logger
	held      bool
}

// NewWakeLock combines display blanking control with the platform sleep inhibitor.
// blanker may be nil.
func NewWakeLock(blanker ScreenBlanker, logger *slog.Logger) *WakeLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &WakeLock{
		blanker:   blanker,
		inhibitor: newSleepInhibitor(),
		logger:    logger,
	}
}

// KeepAwake prevents the display and system from sleeping.
func (lock *WakeLock) KeepAwake() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held {
		return nil
	}

	if lock.blanker != nil {
		lock.blanker.SetDisableScreenBlanking(true)
	}
	err := lock.inhibitor.acquire()
	if errors.Is(err, ErrWakeLockUnsupported) && lock.blanker != nil {
		lock.logger.Debug("no sleep inhibitor, relying on screen blanking only")
		err = nil
	}
	if err != nil {
		// Not held, so the next KeepAwake tries again.
		if lock.blanker != nil {
			lock.blanker.SetDisableScreenBlanking(false)
		}
		return fmt.Errorf("keep awake: %w", err)
	}
	lock.held = true
	lock.logger.Info("wake lock acquired")
	return nil
}

// AllowSleepAgain releases what KeepAwake acquired.
func (lock *WakeLock) AllowSleepAgain() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held {
		return nil
	}
	lock.held = false

	if lock.blanker != nil {
		lock.blanker.SetDisableScreenBlanking(false)
	}
	if err := lock.inhibitor.release(); err != nil {
		return fmt.Errorf("allow sleep: %w", err)
	}
	lock.logger.Info("wake lock released")
	return nil
}

// Held reports whether the lock is currently requested.
func (lock *WakeLock) Held() bool {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.held
}

// DriverBlanker adapts the app driver, hopping to the UI goroutine for each call.
func DriverBlanker(app fyne.App) ScreenBlanker {
	return driverBlanker{app: app}
}

type driverBlanker struct {
	app fyne.App
}

func (blanker driverBlanker) SetDisableScreenBlanking(disable bool) {
	fyne.Do(func() {
		blanker.app.Driver().SetDisableScreenBlanking(disable)
	})
}

// commandInhibitor holds the inhibition for as long as a helper process lives.
type commandInhibitor struct {
	path string
	args []string
	cmd  *exec.Cmd
}

func (inhibitor *commandInhibitor) acquire() error {
	if inhibitor.cmd != nil {
		return nil
	}
	cmd := exec.Command(inhibitor.path, inhibitor.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", filepath.Base(inhibitor.path), err)
	}
	inhibitor.cmd = cmd
	return nil
}

func (inhibitor *commandInhibitor) release() error {
	if inhibitor.cmd == nil {
		return nil
	}
	cmd := inhibitor.cmd
	inhibitor.cmd = nil
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop %s: %w", filepath.Base(inhibitor.path), err)
	}
	_ = cmd.Wait()
	return nil
}

type unsupportedInhibitor struct{}

func (unsupportedInhibitor) acquire() error {
	return ErrWakeLockUnsupported
}

func (unsupportedInhibitor) release() error {
	return nil
}
