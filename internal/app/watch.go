package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/watcher"
)

var (
	watchDaemon   bool
	watchDebounce string
	watchStop     bool
	watchQuiet    bool
	watchNotify   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Re-classify projects when manifests change",
	Long: `Watch one or more project roots for changes to trigger files
(package.json, go.mod, Cargo.toml and friends). Changes within the
debounce window collapse into a single fresh classification per root.

Examples:
  repolens watch                      # watch configured scan paths (ctrl-c to stop)
  repolens watch ~/src/app            # watch one project
  repolens watch --debounce 5s        # coalesce changes for 5 seconds
  repolens watch --daemon             # run in background, write PID file
  repolens watch --stop               # stop the background daemon`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().StringVar(&watchDebounce, "debounce", "2s", "Debounce window as duration string (e.g. 2s, 30s)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Suppress terminal output, only send notifications")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "Send desktop notifications on re-classification")
	rootCmd.AddCommand(watchCmd)
}

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	debounce, err := time.ParseDuration(watchDebounce)
	if err != nil {
		return fmt.Errorf("invalid debounce %q: %w", watchDebounce, err)
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.ScanPaths
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	if watchDaemon {
		return runDaemon(cfg, roots, debounce)
	}
	return runForeground(cfg, roots, debounce)
}

// runForeground runs the watcher in the foreground with live terminal output.
func runForeground(cfg *config.Config, roots []string, debounce time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	if !watchQuiet {
		fmt.Printf("repolens watching %d root(s)... (debounce %s)\n", len(roots), debounce)
	}

	onEvent := func(ev watcher.Event) {
		if watchNotify {
			_ = watcher.Notify(ev)
		}
		if !watchQuiet {
			printEvent(ev)
		}
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}
	w := watcher.New(det, roots, watcherOptions(cfg, debounce), onEvent)

	err = w.Run(ctx)
	if err == context.Canceled {
		if !watchQuiet {
			fmt.Println("\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watcher. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(cfg *config.Config, roots []string, debounce time.Duration) error {
	// Ensure config directory exists.
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	// Check for existing daemon.
	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file, remove it.
		_ = os.Remove(pidFilePath())
	}

	// Write PID file.
	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	// Open log file for output.
	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	go func() {
		<-sigCh
		cancel()
	}()

	writeLog(logFile, "repolens daemon started (PID %d, %d roots, debounce %s)", pid, len(roots), debounce)

	onEvent := func(ev watcher.Event) {
		if watchNotify {
			_ = watcher.Notify(ev)
		}
		writeLog(logFile, "[%s] %s -> %s (%s)", ev.Op, filepath.Base(ev.File), ev.Result.Type, ev.Result.Language)
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}
	w := watcher.New(det, roots, watcherOptions(cfg, debounce), onEvent)

	err = w.Run(ctx)
	if err == context.Canceled {
		writeLog(logFile, "daemon stopped")
		return nil
	}
	return err
}

func watcherOptions(cfg *config.Config, debounce time.Duration) watcher.Options {
	return watcher.Options{
		TriggerFiles:      cfg.TriggerFiles,
		TriggerExtensions: cfg.TriggerExtensions,
		Debounce:          debounce,
	}
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(data))
}

// writeLog writes a timestamped line to the log file.
func writeLog(f *os.File, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(f, "[%s] %s\n", timestamp, msg)
}

// printEvent formats and prints a re-classification event to the terminal.
func printEvent(ev watcher.Event) {
	timestamp := ev.Time.Format("15:04:05")
	fmt.Printf("[%s] %s changed\n", timestamp, filepath.Base(ev.File))
	fmt.Printf("         %s is now %s (%s, %s)\n",
		filepath.Base(ev.Root), ev.Result.Type, ev.Result.Language, ev.Result.Framework)
}
