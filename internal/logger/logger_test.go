package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevels(t *testing.T) {
	ResetRegistry()
	defer ResetRegistry()

	var buf bytes.Buffer
	l := NewWithWriter("test", &buf, INFO)

	l.Error("boom %d", 1)
	l.Info("hello %s", "world")
	l.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "ERROR: boom 1") || !strings.Contains(out, "INFO: hello world") {
		t.Errorf("missing messages in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message printed at INFO level: %q", out)
	}
}

func TestRegistry(t *testing.T) {
	ResetRegistry()
	defer ResetRegistry()

	if Get("missing") != nil {
		t.Fatalf("expected nil for unregistered logger")
	}

	var buf bytes.Buffer
	first := NewWithWriter("parser", &buf, DEBUG)
	second := NewWithWriter("parser", &bytes.Buffer{}, ERROR)
	if first != second || Get("parser") != first {
		t.Errorf("expected the registered logger to be reused")
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	l.Error("nothing")
	l.Info("nothing")
	l.Debug("nothing")
}

func TestFileLogger(t *testing.T) {
	ResetRegistry()
	defer ResetRegistry()

	dir := t.TempDir()
	l, err := New("file", dir, ERROR)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Error("written to disk")

	name := filepath.Join(dir, "Kaleidoscope-"+time.Now().Format("2006-01-02")+".log")
	content, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "ERROR: written to disk") {
		t.Errorf("unexpected log content %q", content)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{"": ERROR, "error": ERROR, "INFO": INFO, " debug ": DEBUG}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
