package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
	if cfg.CacheTTLSeconds != DefaultCacheTTLSeconds {
		t.Errorf("CacheTTLSeconds = %d, want %d", cfg.CacheTTLSeconds, DefaultCacheTTLSeconds)
	}
	if cfg.ScoreAlpha != DefaultScoreAlpha {
		t.Errorf("ScoreAlpha = %v, want %v", cfg.ScoreAlpha, DefaultScoreAlpha)
	}
	if cfg.FileLength.Limit != 300 || cfg.FileLength.Severe != 2.0 {
		t.Errorf("FileLength = %+v, want limit 300 severe 2.0", cfg.FileLength)
	}
	if !slices.Contains(cfg.IgnoredDirs, "node_modules") {
		t.Errorf("IgnoredDirs = %v, want node_modules present", cfg.IgnoredDirs)
	}
	if !slices.Contains(cfg.TriggerFiles, "go.mod") {
		t.Errorf("TriggerFiles = %v, want go.mod present", cfg.TriggerFiles)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color = false, want true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "max_depth: 5\nscore_alpha: 0.5\noutput:\n  color: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", cfg.MaxDepth)
	}
	if cfg.ScoreAlpha != 0.5 {
		t.Errorf("ScoreAlpha = %v, want 0.5", cfg.ScoreAlpha)
	}
	if cfg.Output.Color {
		t.Error("Output.Color = true, want false")
	}

	// Keys absent from the file keep their defaults.
	if cfg.CacheTTLSeconds != DefaultCacheTTLSeconds {
		t.Errorf("CacheTTLSeconds = %d, want default %d", cfg.CacheTTLSeconds, DefaultCacheTTLSeconds)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	if got := expandPath("~/projects"); got != filepath.Join(home, "projects") {
		t.Errorf("expandPath(~/projects) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %q", got)
	}
	if got := expandPath("relative"); got != "relative" {
		t.Errorf("expandPath(relative) = %q", got)
	}
}

func TestDBPath(t *testing.T) {
	got := DBPath()
	if !strings.HasSuffix(got, DefaultDBName) {
		t.Errorf("DBPath = %q, want suffix %q", got, DefaultDBName)
	}
	if strings.HasPrefix(got, "~") {
		t.Errorf("DBPath = %q, want expanded home", got)
	}
}
