//go:build !linux && !darwin && !windows

package platform

func newSleepInhibitor() sleepInhibitor {
	return unsupportedInhibitor{}
}
