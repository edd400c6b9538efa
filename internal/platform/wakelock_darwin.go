package platform

import "os/exec"

func newSleepInhibitor() sleepInhibitor {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return unsupportedInhibitor{}
	}
	return &commandInhibitor{path: path, args: []string{"-d", "-i"}}
}
