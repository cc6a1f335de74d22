package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lorenzquack/agora-rest/internal/config"
)

func TestInitWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := InitWriter(&config.Config{AppName: "agora-rest", Env: "test", LogLevel: "info"}, &buf)
	if err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	defer func() { S = nil }()

	log.InfoObj("request done", "request", map[string]any{"status_code": 200})
	log.DebugObj("hidden", "request", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "request done" || entry["app"] != "agora-rest" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts field: %v", entry)
	}
}

func TestPackageHelpersNoopBeforeInit(t *testing.T) {
	S = nil
	InfoObj("ignored", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("warning").String() != "warn" {
		t.Fatalf("warning should map to warn")
	}
	if parseLevel("bogus").String() != "info" {
		t.Fatalf("unknown levels default to info")
	}
}

func TestPackageHelpersWriteAfterInit(t *testing.T) {
	var buf bytes.Buffer
	if _, err := InitWriter(&config.Config{LogLevel: "debug"}, &buf); err != nil {
		t.Fatalf("InitWriter: %v", err)
	}
	defer func() { S = nil }()

	DebugObj("starting", "config", map[string]string{"base_url": "http://localhost:8080/api/"})
	WarnObj("slow", "elapsed_ms", 1200)
	ErrorObj("failed", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	cfg, ok := entry["config"].(map[string]any)
	if entry["level"] != "debug" || !ok || cfg["base_url"] != "http://localhost:8080/api/" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "error" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry %v", entry)
	}
}
