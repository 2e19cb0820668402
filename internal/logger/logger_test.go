package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/investigator-tracker/internal/config"
)

func TestSetup_Production(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithComponent(log, "roster").Info("Investigators saved", "count", 2)
	log.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("production logs should be JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "Investigators saved" || entry["component"] != "roster" {
		t.Errorf("unexpected entry %v", entry)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestSetup_Development(t *testing.T) {
	var buf bytes.Buffer
	Setup(&config.Config{Environment: "development", LogLevel: slog.LevelDebug}, &buf)

	slog.Debug("visible", "key", "value")

	if !strings.Contains(buf.String(), "msg=visible") || !strings.Contains(buf.String(), "key=value") {
		t.Errorf("expected text output through the default logger, got %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.log")
	w, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "line\n" {
		t.Errorf("log file = %q", data)
	}

	discard, err := OpenFile("")
	if err != nil || discard.Close() != nil {
		t.Errorf("empty path should discard, got %v", err)
	}

	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}
