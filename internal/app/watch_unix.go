//go:build !windows

package app

import (
	"fmt"
	"os"
	"syscall"
)

// shutdownSignals end the foreground watch loop gracefully.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// stopDaemon terminates a background `repolens watch --daemon` process via
// SIGTERM, using the PID file as the handle.
func stopDaemon() error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no watch daemon running (could not read PID file: %v)", err)
	}

	if !processExists(pid) {
		// Stale PID file from an unclean exit.
		os.Remove(pidFilePath())
		return fmt.Errorf("no watch daemon running (PID %d is not active, removed stale PID file)", pid)
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to stop watch daemon (PID %d): %w", pid, err)
	}

	os.Remove(pidFilePath())
	fmt.Printf("Stopped repolens watch daemon (PID %d)\n", pid)
	return nil
}

// processExists reports whether pid names a live process. Signal 0 probes
// existence without delivering anything.
func processExists(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
