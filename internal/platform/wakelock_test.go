package platform

import (
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBlanker struct {
	calls []bool
}

func (blanker *recordingBlanker) SetDisableScreenBlanking(disable bool) {
	blanker.calls = append(blanker.calls, disable)
}

type countingInhibitor struct {
	acquired   int
	released   int
	acquireErr error
}

func (inhibitor *countingInhibitor) acquire() error {
	inhibitor.acquired++
	return inhibitor.acquireErr
}

func (inhibitor *countingInhibitor) release() error {
	inhibitor.released++
	return nil
}

func newTestWakeLock(blanker ScreenBlanker, inhibitor sleepInhibitor) *WakeLock {
	return &WakeLock{
		blanker:   blanker,
		inhibitor: inhibitor,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestWakeLockIsIdempotent(t *testing.T) {
	blanker := &recordingBlanker{}
	inhibitor := &countingInhibitor{}
	lock := newTestWakeLock(blanker, inhibitor)

	require.NoError(t, lock.AllowSleepAgain())
	assert.Zero(t, inhibitor.released)

	require.NoError(t, lock.KeepAwake())
	require.NoError(t, lock.KeepAwake())
	assert.True(t, lock.Held())
	assert.Equal(t, 1, inhibitor.acquired)

	require.NoError(t, lock.AllowSleepAgain())
	require.NoError(t, lock.AllowSleepAgain())
	assert.False(t, lock.Held())
	assert.Equal(t, 1, inhibitor.released)

	assert.Equal(t, []bool{true, false}, blanker.calls)
}

func TestWakeLockToleratesMissingInhibitorWithBlanker(t *testing.T) {
	blanker := &recordingBlanker{}
	lock := newTestWakeLock(blanker, unsupportedInhibitor{})

	require.NoError(t, lock.KeepAwake())
	assert.Equal(t, []bool{true}, blanker.calls)
}

func TestWakeLockReportsMissingInhibitorWithoutBlanker(t *testing.T) {
	lock := newTestWakeLock(nil, unsupportedInhibitor{})

	err := lock.KeepAwake()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWakeLockUnsupported))
	require.NoError(t, lock.AllowSleepAgain())
}

func TestWakeLockWrapsInhibitorFailure(t *testing.T) {
	failure := errors.New("bus unavailable")
	lock := newTestWakeLock(&recordingBlanker{}, &countingInhibitor{acquireErr: failure})

	err := lock.KeepAwake()
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure))
}

func TestWakeLockRetriesAfterFailedAcquire(t *testing.T) {
	failure := errors.New("bus unavailable")
	blanker := &recordingBlanker{}
	inhibitor := &countingInhibitor{acquireErr: failure}
	lock := newTestWakeLock(blanker, inhibitor)

	require.Error(t, lock.KeepAwake())
	assert.False(t, lock.Held())
	assert.Equal(t, []bool{true, false}, blanker.calls)

	inhibitor.acquireErr = nil
	require.NoError(t, lock.KeepAwake())
	assert.True(t, lock.Held())
	assert.Equal(t, 2, inhibitor.acquired)
	assert.Equal(t, 0, inhibitor.released)
}

func TestCommandInhibitorLifecycle(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep binary not available")
	}
	inhibitor := &commandInhibitor{path: path, args: []string{"60"}}

	require.NoError(t, inhibitor.acquire())
	require.NotNil(t, inhibitor.cmd)
	process := inhibitor.cmd.Process
	require.NoError(t, inhibitor.acquire())
	assert.Same(t, process, inhibitor.cmd.Process)

	require.NoError(t, inhibitor.release())
	assert.Nil(t, inhibitor.cmd)
	require.NoError(t, inhibitor.release())
}

func TestCommandInhibitorStartFailure(t *testing.T) {
	inhibitor := &commandInhibitor{path: "/nonexistent/inhibitor"}
	require.Error(t, inhibitor.acquire())
	assert.Nil(t, inhibitor.cmd)
}

func TestNewWakeLockDefaults(t *testing.T) {
	lock := NewWakeLock(nil, nil)
	assert.NotNil(t, lock.logger)
	assert.NotNil(t, lock.inhibitor)
	assert.False(t, lock.Held())
}
