package log_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/vfsh/log"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger("vfsh", log.Warn, log.WithWriter(&buf))

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("denied '%s'", "/home")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN  [vfsh] denied '/home'") {
		t.Errorf("Unexpected warn line: %q", out)
	}
}

func TestLogger_NamedJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger("vfsh", log.Debug, log.WithWriter(&buf), log.WithJSON())

	logger.Named("store").Info("loaded %d entries", 3)

	var entry map[string]string
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Invalid json line %q: %v", buf.String(), err)
	}
	if entry["service"] != "vfsh/store" || entry["message"] != "loaded 3 entries" || entry["level"] != "INFO" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestLogger_FatalCallsExit(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	logger := log.NewLogger("vfsh", log.Info, log.WithWriter(&buf), log.WithExit(func(c int) { code = c }))

	logger.Named("store").Fatal("persist failed")

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestParse(t *testing.T) {
	tests := map[string]log.LogLevel{
		"debug":   log.Debug,
		"INFO":    log.Info,
		"warning": log.Warn,
		"Error":   log.Error,
		"":        log.Info,
	}

	for value, want := range tests {
		got, err := log.Parse(value)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", value, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %s, want %s", value, got, want)
		}
	}

	if _, err := log.Parse("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	root := log.NewLogger("vfsh", log.Info, log.WithWriter(&buf))
	session := root.Named("session").With("session", "0192").With("user", "alice")

	session.Info("navigated to '%s'", "/home")
	root.Info("closed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "[vfsh/session] navigated to '/home' session=0192 user=alice") {
		t.Errorf("Unexpected session line: %q", lines[0])
	}
	if strings.Contains(lines[1], "user=") {
		t.Errorf("Fields leaked into the parent logger: %q", lines[1])
	}
}

func TestLogger_FileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vfsh.log")
	logger := log.NewLogger("vfsh", log.Info, log.WithFile(file), log.WithoutTerminal(), log.WithJSON())

	logger.With("entries", 3).Info("loaded")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry struct {
		Message string         `json:"message"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(content, &entry); err != nil {
		t.Fatalf("Invalid json line %q: %v", content, err)
	}
	if entry.Message != "loaded" || entry.Fields["entries"] != float64(3) {
		t.Errorf("Unexpected entry: %+v", entry)
	}
}
