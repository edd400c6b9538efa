package platform

import (
	"fmt"
	"runtime"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// executionStateInhibitor pins one OS thread for the lifetime of the lock,
// since SetThreadExecutionState applies to the calling thread.
type executionStateInhibitor struct {
	releaseCh chan struct{}
	done      chan struct{}
}

func newSleepInhibitor() sleepInhibitor {
	return &executionStateInhibitor{}
}

func (inhibitor *executionStateInhibitor) acquire() error {
	if inhibitor.releaseCh != nil {
		return nil
	}

	result := make(chan error, 1)
	releaseCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		if err := setThreadExecutionState(esContinuous | esSystemRequired | esDisplayRequired); err != nil {
			result <- err
			return
		}
		result <- nil
		<-releaseCh
		_ = setThreadExecutionState(esContinuous)
	}()

	if err := <-result; err != nil {
		return err
	}
	inhibitor.releaseCh = releaseCh
	inhibitor.done = done
	return nil
}

func (inhibitor *executionStateInhibitor) release() error {
	if inhibitor.releaseCh == nil {
		return nil
	}
	close(inhibitor.releaseCh)
	<-inhibitor.done
	inhibitor.releaseCh = nil
	inhibitor.done = nil
	return nil
}

func setThreadExecutionState(flags uint32) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	setState := kernel32.NewProc("SetThreadExecutionState")
	result, _, err := setState.Call(uintptr(flags))
	if result == 0 {
		if err != nil {
			return fmt.Errorf("set thread execution state: %w", err)
		}
		return fmt.Errorf("set thread execution state: unknown error")
	}
	return nil
}
