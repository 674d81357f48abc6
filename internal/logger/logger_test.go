package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"nonsense", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for input %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("expected %v, got %v for input %q", tt.expected, got, tt.input)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below level should be filtered, got: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn message") {
		t.Errorf("expected warn message in output, got: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error message") {
		t.Errorf("expected error message in output, got: %q", out)
	}
}

func TestConfigureOpensLogFile(t *testing.T) {
	t.Setenv("DEVCOACH_LOG_LEVEL", "")
	t.Setenv("DEVCOACH_LOG_FILE", "")

	path := filepath.Join(t.TempDir(), "devcoach.log")
	l := New()
	if err := l.Configure("debug", path); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	defer l.Close()

	l.Debug("wrote to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "wrote to file") {
		t.Errorf("expected log line in file, got: %q", string(data))
	}
}

func TestConfigureRejectsBadLevel(t *testing.T) {
	t.Setenv("DEVCOACH_LOG_LEVEL", "")

	l := New()
	if err := l.Configure("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
}
