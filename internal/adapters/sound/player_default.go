//go:build !darwin

package sound

import "os/exec"

// playForEvent tries paplay with the freedesktop theme, then the terminal bell
func playForEvent(eventType string) error {
	name := "complete"
	if eventType == EventLogin {
		name = "dialog-information"
	}
	cmd := exec.Command("paplay", "/usr/share/sounds/freedesktop/stereo/"+name+".oga")
	if err := cmd.Start(); err == nil {
		return nil
	}
	return terminalBell()
}
