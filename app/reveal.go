package app

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// RevealDir opens the given directory in the platform file manager so the
// finished video is one click away. Best-effort; failures are only logged.
func RevealDir(logger *slog.Logger, dir string) {
	if dir == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		if logger != nil {
			logger.Warn("could not open output folder", "dir", dir, "error", err)
		}
	}
}
