package watcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Notify sends a desktop notification for the given event. On macOS it uses
// osascript, on Linux it tries notify-send. If neither is available, it falls
// back to printing to stderr.
func Notify(ev Event) error {
	switch runtime.GOOS {
	case "darwin":
		return notifyMacOS(ev)
	case "linux":
		return notifyLinux(ev)
	default:
		return notifyFallback(ev)
	}
}

func notifyTitle(ev Event) string {
	return fmt.Sprintf("%s re-classified", filepath.Base(ev.Root))
}

func notifyMessage(ev Event) string {
	return fmt.Sprintf("%s changed; project is now %s (%s)",
		filepath.Base(ev.File), ev.Result.Type, ev.Result.Language)
}

// notifyMacOS sends a notification via osascript on macOS.
func notifyMacOS(ev Event) error {
	script := fmt.Sprintf(
		`display notification %q with title "repolens" subtitle %q`,
		notifyMessage(ev), notifyTitle(ev),
	)
	cmd := exec.Command("osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		// Fall back to stderr if osascript fails.
		return notifyFallback(ev)
	}
	return nil
}

// notifyLinux sends a notification via notify-send on Linux.
func notifyLinux(ev Event) error {
	_, err := exec.LookPath("notify-send")
	if err != nil {
		return notifyFallback(ev)
	}

	title := fmt.Sprintf("repolens: %s", notifyTitle(ev))
	cmd := exec.Command("notify-send", title, notifyMessage(ev))
	if err := cmd.Run(); err != nil {
		return notifyFallback(ev)
	}
	return nil
}

// notifyFallback prints the event to stderr when no desktop notification
// system is available.
func notifyFallback(ev Event) error {
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", ev.Op, notifyTitle(ev), notifyMessage(ev))
	return err
}
