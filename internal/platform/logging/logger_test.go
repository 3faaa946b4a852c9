package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSON(&buf, LevelInfo).Named("usecase.match")

	logger.Info("goal recorded", "match_id", "m-1", "minute", 42, "error", errors.New("boom"))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "goal recorded" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["component"] != "usecase.match" {
		t.Fatalf("unexpected component: %v", entry["component"])
	}
	if entry["match_id"] != "m-1" {
		t.Fatalf("unexpected match_id: %v", entry["match_id"])
	}
	if got, _ := entry["minute"].(float64); got != 42 {
		t.Fatalf("unexpected minute: %v", entry["minute"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSON(&buf, LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("info line should be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line missing: %s", buf.String())
	}
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var l *Logger
	l.Info("no panic")
	if l.Zap() == nil {
		t.Fatalf("expected nop zap logger")
	}
}
