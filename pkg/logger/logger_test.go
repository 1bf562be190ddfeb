package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func capture(t *testing.T, config Config) *bytes.Buffer {
	t.Helper()
	Initialize(config)
	var buf bytes.Buffer
	SetOutput(&buf)
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, Config{Level: WarnLevel})

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error output, got: %q", out)
	}
}

func TestPrettyFormatWithFields(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel})

	Info("fetch complete", String("vendor", "acme"), Int("items", 42))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("missing level marker: %q", out)
	}
	if !strings.Contains(out, "fetch complete") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "vendor=acme") || !strings.Contains(out, "items=42") {
		t.Errorf("missing fields: %q", out)
	}
}

func TestDryRunMarker(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel, DryRun: true})
	Info("would update tags")
	if !strings.Contains(buf.String(), "[DRY-RUN]") {
		t.Errorf("missing dry-run marker: %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	buf := capture(t, Config{Level: InfoLevel, JSON: true})
	Error("apply failed", Err(errors.New("api unavailable")), Bool("retried", true))

	var entry Entry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "apply failed" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["error"] != "api unavailable" {
		t.Errorf("Fields[error] = %v", entry.Fields["error"])
	}
	if entry.Fields["retried"] != true {
		t.Errorf("Fields[retried] = %v", entry.Fields["retried"])
	}
}
