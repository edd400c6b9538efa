package platform

import "os/exec"

// systemd-inhibit holds an idle and sleep block until its child exits.
func newSleepInhibitor() sleepInhibitor {
	path, err := exec.LookPath("systemd-inhibit")
	if err != nil {
		return unsupportedInhibitor{}
	}
	return &commandInhibitor{
		path: path,
		args: []string{
			"--what=idle:sleep",
			"--who=PaceTimer",
			"--why=Timer running",
			"--mode=block",
			"sleep", "infinity",
		},
	}
}
