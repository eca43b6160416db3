package detector

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDetect_GoProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module github.com/acme/api\n\ngo 1.26\n")
	writeFile(t, dir, "main.go", "package main\n")

	res := New(nil, nil).Detect(dir, false)

	if res.Type != "go" {
		t.Errorf("Type = %q, want go", res.Type)
	}
	if res.Description != "Go Project" {
		t.Errorf("Description = %q, want Go Project", res.Description)
	}
	if res.Language != "go" {
		t.Errorf("Language = %q, want go", res.Language)
	}
}

func TestDetect_ReactBeatsJavaScript(t *testing.T) {
	dir := t.TempDir()
	// package.json matches both the react and javascript rules; react wins
	// on priority (15 over 10) because of the dependency probe.
	writeFile(t, dir, "package.json", `{"name":"web","dependencies":{"react":"^18.2.0"}}`)
	writeFile(t, dir, "src/index.jsx", "import React from 'react'\n")

	res := New(nil, nil).Detect(dir, false)

	if res.Type != "react" {
		t.Errorf("Type = %q, want react", res.Type)
	}
	if res.Language != "javascript" {
		t.Errorf("Language = %q, want javascript", res.Language)
	}
	if res.Framework != "react" {
		t.Errorf("Framework = %q, want react", res.Framework)
	}
}

func TestDetect_PlainPackageJSONIsJavaScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"tool","dependencies":{"lodash":"^4.0.0"}}`)

	res := New(nil, nil).Detect(dir, false)

	if res.Type != "javascript" {
		t.Errorf("Type = %q, want javascript", res.Type)
	}
}

func TestDetect_DualManifest(t *testing.T) {
	dir := t.TempDir()
	// Both manifests match rules of equal priority (10). The tie keeps the
	// first registered rule, so python wins over javascript.
	writeFile(t, dir, "package.json", `{"name":"mixed","dependencies":{"express":"^4.0.0"}}`)
	writeFile(t, dir, "requirements.txt", "flask==3.0.0\n")

	res := New(nil, nil).Detect(dir, false)

	if res.Type != "python" {
		t.Errorf("Type = %q, want python", res.Type)
	}
	if res.Language != "python" {
		t.Errorf("Language = %q, want python", res.Language)
	}

	// A strictly higher priority overrides registration order: go.mod (12)
	// beats requirements.txt (10).
	goDir := t.TempDir()
	writeFile(t, goDir, "go.mod", "module example.com/mixed\n")
	writeFile(t, goDir, "requirements.txt", "requests==2.32.0\n")

	if res := New(nil, nil).Detect(goDir, false); res.Type != "go" {
		t.Errorf("Type = %q, want go", res.Type)
	}
}

func TestDetect_CheckDisqualifiesRule(t *testing.T) {
	dir := t.TempDir()
	// A Makefile alone matches the C indicators, but the rule requires at
	// least one .c file.
	writeFile(t, dir, "Makefile", "all:\n\ttrue\n")

	res := New(nil, nil).Detect(dir, false)

	if res.Type != "generic" {
		t.Errorf("Type = %q, want generic", res.Type)
	}
}

func TestDetect_GenericFallbacks(t *testing.T) {
	empty := t.TempDir()
	res := New(nil, nil).Detect(empty, false)
	if res.Type != "generic" {
		t.Errorf("empty dir Type = %q, want generic", res.Type)
	}
	if res.Language != "unknown" || res.Framework != "none" {
		t.Errorf("Language=%q Framework=%q, want unknown and none", res.Language, res.Framework)
	}

	dev := t.TempDir()
	writeFile(t, dev, "README.md", "# notes\n")
	writeFile(t, dev, ".gitignore", "dist/\n")

	res = New(nil, nil).Detect(dev, false)
	if res.Type != "generic_dev" {
		t.Errorf("Type = %q, want generic_dev", res.Type)
	}
}

func TestDetect_CacheServesStaleUntilExpiry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tmp\n")

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache, err := NewCache(time.Minute, func() time.Time { return clock })
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	det := New(nil, cache)

	if res := det.Detect(dir, false); res.Type != "go" {
		t.Fatalf("Type = %q, want go", res.Type)
	}

	if err := os.Remove(filepath.Join(dir, "go.mod")); err != nil {
		t.Fatal(err)
	}

	// Still inside the TTL: the stale classification is returned without
	// re-reading the directory.
	if res := det.Detect(dir, false); res.Type != "go" {
		t.Errorf("cached Type = %q, want go", res.Type)
	}

	if res := det.Detect(dir, true); res.Type != "generic" {
		t.Errorf("bypassed Type = %q, want generic", res.Type)
	}

	clock = clock.Add(2 * time.Minute)
	if res := det.Detect(dir, false); res.Type != "generic" {
		t.Errorf("post-expiry Type = %q, want generic", res.Type)
	}
}

func TestCache_ExpiredEntryRemovedOnGet(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache, err := NewCache(30*time.Second, func() time.Time { return clock })
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	cache.Put("/p", DetectionResult{Type: "go"})
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}

	clock = clock.Add(31 * time.Second)
	if _, ok := cache.Get("/p"); ok {
		t.Error("expected expired entry to miss")
	}
	if cache.Len() != 0 {
		t.Errorf("Len = %d, want 0 after expired access", cache.Len())
	}
}

func TestScanForProjects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# workspace\n")
	writeFile(t, root, "api/go.mod", "module github.com/acme/api\n")
	writeFile(t, root, "api/nested/go.mod", "module github.com/acme/nested\n")
	writeFile(t, root, "web/package.json", `{"name":"webapp","dependencies":{"react":"^18.0.0"}}`)
	writeFile(t, root, "node_modules/left-pad/package.json", `{"name":"left-pad"}`)

	det := New([]string{"node_modules"}, nil)
	found := det.ScanForProjects(root, 3)

	byName := make(map[string]ScannedProject, len(found))
	for _, p := range found {
		byName[p.Name] = p
	}

	if len(found) != 2 {
		t.Fatalf("found %d projects (%v), want 2", len(found), byName)
	}
	if p, ok := byName["api"]; !ok || p.Type != "go" {
		t.Errorf("api = %+v, want go project named api", p)
	}
	if p, ok := byName["webapp"]; !ok || p.Type != "react" {
		t.Errorf("webapp = %+v, want react project named webapp", p)
	}
	// Projects inside a detected project are not reported separately.
	if _, ok := byName["nested"]; ok {
		t.Error("nested project should not be reported")
	}
}

func TestProjectName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"crateling\"\nversion = \"0.1.0\"\n")
	if got := projectName(dir, "rust"); got != "crateling" {
		t.Errorf("rust name = %q, want crateling", got)
	}

	// No manifest for the type falls back to the directory base name.
	if got := projectName(dir, "python"); got != filepath.Base(dir) {
		t.Errorf("fallback name = %q, want %q", got, filepath.Base(dir))
	}
}
