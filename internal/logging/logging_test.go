package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer) *Logger {
	t.Helper()
	logger := New()
	logger.SetOutput(buf)
	if err := logger.SetFormat(FormatJSON); err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	return logger
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log entry %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(t, &buf)
	logger.SetLevel(LevelInfo)

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("debug message should be filtered at INFO level")
	}

	logger.Info("info message")
	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["level"] != "INFO" {
		t.Errorf("expected level INFO, got %v", entries[0]["level"])
	}
	if entries[0]["msg"] != "info message" {
		t.Errorf("expected message 'info message', got %v", entries[0]["msg"])
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(t, &buf).WithComponent("tools")

	logger.Info("test message", map[string]interface{}{"tool": "calculator"})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["component"] != "tools" {
		t.Errorf("expected component 'tools', got %v", entries[0]["component"])
	}
	if entries[0]["tool"] != "calculator" {
		t.Errorf("expected field tool=calculator, got %v", entries[0]["tool"])
	}
}

func TestLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := newJSONLogger(t, &buf)
	child := parent.WithComponent("server")

	parent.SetLevel(LevelError)
	child.Warn("hidden")
	if buf.Len() > 0 {
		t.Error("child should follow the parent's level")
	}
}

func TestLogger_ToolResult(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(t, &buf)

	logger.ToolCall("calculator", "call-1")
	logger.ToolResult("calculator", "call-1", 5*time.Millisecond, errors.New("boom"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["msg"] != "tool_call" || entries[0]["call_id"] != "call-1" {
		t.Errorf("unexpected call entry: %v", entries[0])
	}
	if entries[1]["msg"] != "tool_error" || entries[1]["level"] != "ERROR" {
		t.Errorf("unexpected result entry: %v", entries[1])
	}
	if entries[1]["error"] != "boom" {
		t.Errorf("expected error field, got %v", entries[1]["error"])
	}
}

func TestLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithComponent("cli")
	logger.SetOutput(&buf)

	logger.Warn("careful", map[string]interface{}{"path": "notes.md"})

	out := buf.String()
	for _, want := range []string{"WARN", "careful", "notes.md", "cli"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogger_SetFormatRejectsUnknown(t *testing.T) {
	if err := New().SetFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
