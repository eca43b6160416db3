//go:build !windows

package app

import (
	"os"
	"strings"
	"testing"
)

func TestProcessExists(t *testing.T) {
	if !processExists(os.Getpid()) {
		t.Error("expected the current process to exist")
	}
	// PID 1 is reserved, so anything near the PID ceiling is free.
	if processExists(1 << 22) {
		t.Error("expected an out-of-range PID to not exist")
	}
}

func TestStopDaemon_NoPIDFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := stopDaemon()
	if err == nil {
		t.Fatal("expected an error without a PID file")
	}
	if !strings.Contains(err.Error(), "no watch daemon running") {
		t.Errorf("err = %v, want a no-daemon message", err)
	}
}
