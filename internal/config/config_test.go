package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "journal", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.Keys.NewEntry != "ctrl+n" || cfg.Keys.Save != "ctrl+s" {
		t.Fatalf("default keys = %#v", cfg.Keys)
	}
	if cfg.DashboardLimit != 20 || cfg.Reveal.Threshold != 0.1 {
		t.Fatalf("defaults = %#v", cfg)
	}
	for _, p := range []string{cfg.DBPath, cfg.DraftsDir, cfg.PrefsPath, cfg.LogFile} {
		if !filepath.IsAbs(p) || strings.Contains(p, "~") {
			t.Fatalf("path %q not expanded", p)
		}
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("reload = %#v, want %#v", again, cfg)
	}
}

func TestLoadOrCreate_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	data := `db_path = "entries.db"

[timing]
search_debounce = "250ms"
autosave_delay = "soon"

[keys]
dark_mode = "ctrl+d"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "entries.db") {
		t.Fatalf("DBPath = %q, want relative to config dir", cfg.DBPath)
	}
	if cfg.Keys.DarkMode != "ctrl+d" || cfg.Keys.NewEntry != "ctrl+n" {
		t.Fatalf("keys = %#v", cfg.Keys)
	}
	if got := cfg.Timing.Search(); got != 250*time.Millisecond {
		t.Fatalf("Search() = %v", got)
	}
	if got := cfg.Timing.Autosave(); got != 30*time.Second {
		t.Fatalf("Autosave() = %v, want fallback", got)
	}
	if got := cfg.Timing.Notification(); got != 5*time.Second {
		t.Fatalf("Notification() = %v", got)
	}
	if cfg.Editor.MinRows != 5 || cfg.Editor.MaxRows != 15 {
		t.Fatalf("Editor = %#v", cfg.Editor)
	}
}

func TestLoadOrCreate_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("db_path = ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatalf("LoadOrCreate accepted invalid TOML")
	}
}

func TestResolveConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv(EnvConfigPath, "")
	want := filepath.Join(home, ".config", "journal", DefaultConfigFileName)
	if got := ResolveConfigPath(); got != want {
		t.Fatalf("ResolveConfigPath() = %q, want %q", got, want)
	}

	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	if got := ResolveConfigPath(); got != "/tmp/custom.toml" {
		t.Fatalf("ResolveConfigPath() with env = %q", got)
	}
}

func TestParseDurationOr(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", time.Minute},
		{"2s", 2 * time.Second},
		{" 90ms ", 90 * time.Millisecond},
		{"-1s", time.Minute},
		{"0s", time.Minute},
		{"later", time.Minute},
	}
	for _, tt := range tests {
		if got := parseDurationOr(tt.in, time.Minute); got != tt.want {
			t.Fatalf("parseDurationOr(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/notes/x.db")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "notes", "x.db") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if _, err := ExpandPath("  "); err == nil {
		t.Fatalf("ExpandPath(blank) returned nil error")
	}
}
