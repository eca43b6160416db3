// Package watcher monitors project roots for manifest changes and re-runs
// classification when a trigger file is touched.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/repolens/repolens/internal/detector"
)

// Event is one debounced re-classification triggered by a file change.
type Event struct {
	Root   string
	File   string
	Op     string
	Time   time.Time
	Result detector.DetectionResult
}

// Options configures which files count as triggers and how long changes
// are coalesced before re-classifying.
type Options struct {
	TriggerFiles      []string
	TriggerExtensions []string
	Debounce          time.Duration
}

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 2 * time.Second

// Watcher watches a set of project roots. Trigger-file events within the
// debounce window collapse into one re-classification per root.
type Watcher struct {
	roots        []string
	triggerNames map[string]bool
	triggerExts  map[string]bool
	debounce     time.Duration
	det          *detector.Detector
	onEvent      func(Event)

	// pending maps a root to the last event seen for it inside the current
	// debounce window.
	pending map[string]Event
}

// New creates a Watcher over the given roots. Events are delivered through
// the callback on the watch goroutine.
func New(det *detector.Detector, roots []string, opts Options, onEvent func(Event)) *Watcher {
	names := make(map[string]bool, len(opts.TriggerFiles))
	for _, f := range opts.TriggerFiles {
		names[f] = true
	}
	exts := make(map[string]bool, len(opts.TriggerExtensions))
	for _, e := range opts.TriggerExtensions {
		exts[strings.ToLower(e)] = true
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		roots:        roots,
		triggerNames: names,
		triggerExts:  exts,
		debounce:     debounce,
		det:          det,
		onEvent:      onEvent,
		pending:      make(map[string]Event),
	}
}

// Run starts the watch loop and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, root := range w.roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		if err := fw.Add(abs); err != nil {
			return fmt.Errorf("watching %s: %w", abs, err)
		}
	}

	// The timer stays stopped until the first trigger event arrives.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.isTrigger(ev.Name) {
				continue
			}
			root := w.rootFor(ev.Name)
			if root == "" {
				continue
			}
			w.pending[root] = Event{
				Root: root,
				File: ev.Name,
				Op:   ev.Op.String(),
				Time: time.Now(),
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			_ = err // transient watch errors are not fatal

		case <-timer.C:
			w.flush()
		}
	}
}

// flush re-classifies every pending root, bypassing the detection cache,
// and delivers one event per root.
func (w *Watcher) flush() {
	for root, ev := range w.pending {
		ev.Result = w.det.Detect(root, true)
		if w.onEvent != nil {
			w.onEvent(ev)
		}
		delete(w.pending, root)
	}
}

// isTrigger reports whether the changed file is a manifest that should
// cause re-classification.
func (w *Watcher) isTrigger(path string) bool {
	base := filepath.Base(path)
	if w.triggerNames[base] {
		return true
	}
	return w.triggerExts[strings.ToLower(filepath.Ext(base))]
}

// rootFor maps an event path back to the watched root containing it.
func (w *Watcher) rootFor(path string) string {
	for _, root := range w.roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		if path == abs || strings.HasPrefix(path, abs+string(filepath.Separator)) {
			return abs
		}
	}
	return ""
}
