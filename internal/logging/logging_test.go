package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"loud":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journal.log")
	logger, closer, err := Setup(path, "warn")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("draft save failed", "key", "new-entry")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "draft save failed") || !strings.Contains(out, "key=new-entry") {
		t.Fatalf("log = %q", out)
	}
}

func TestSetup_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := Setup("", "debug")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
