package watcher

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repolens/repolens/internal/detector"
)

func newTestWatcher(roots []string, opts Options) *Watcher {
	return New(detector.New(nil, nil), roots, opts, nil)
}

func TestNew_Defaults(t *testing.T) {
	w := newTestWatcher([]string{"."}, Options{})
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}

	w = newTestWatcher([]string{"."}, Options{Debounce: 500 * time.Millisecond})
	if w.debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms", w.debounce)
	}
}

func TestIsTrigger(t *testing.T) {
	w := newTestWatcher([]string{"."}, Options{
		TriggerFiles:      []string{"package.json", "go.mod"},
		TriggerExtensions: []string{".toml"},
	})

	cases := []struct {
		path string
		want bool
	}{
		{"/p/package.json", true},
		{"/p/sub/go.mod", true},
		{"/p/Cargo.toml", true},
		{"/p/Cargo.TOML", true},
		{"/p/main.go", false},
		{"/p/notes.txt", false},
	}
	for _, c := range cases {
		if got := w.isTrigger(c.path); got != c.want {
			t.Errorf("isTrigger(%s) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestRootFor(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	w := newTestWatcher([]string{a, b}, Options{})

	if got := w.rootFor(filepath.Join(a, "go.mod")); got != a {
		t.Errorf("rootFor = %q, want %q", got, a)
	}
	if got := w.rootFor(b); got != b {
		t.Errorf("rootFor = %q, want %q", got, b)
	}
	// Sibling directories sharing a prefix must not match.
	if got := w.rootFor(a + "x/go.mod"); got != "" {
		t.Errorf("rootFor = %q, want empty", got)
	}
	if got := w.rootFor("/elsewhere/go.mod"); got != "" {
		t.Errorf("rootFor = %q, want empty", got)
	}
}

func TestNotifyText(t *testing.T) {
	ev := Event{
		Root: "/home/dev/shop",
		File: "/home/dev/shop/package.json",
		Result: detector.DetectionResult{
			Type:     "react",
			Language: "javascript",
		},
	}

	if got := notifyTitle(ev); got != "shop re-classified" {
		t.Errorf("notifyTitle = %q", got)
	}
	want := "package.json changed; project is now react (javascript)"
	if got := notifyMessage(ev); got != want {
		t.Errorf("notifyMessage = %q, want %q", got, want)
	}
}
