package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{Service: "homestead-api"}).Info("hello", "listing_id", "l1")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["service"] != "homestead-api" || rec["listing_id"] != "l1" {
		t.Errorf("unexpected record %v", rec)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("INFO record should not carry a stacktrace")
	}
}

func TestNew_ErrorAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{}).Error("boom")

	if !strings.Contains(buf.String(), `"stacktrace"`) {
		t.Errorf("expected stacktrace, got %s", buf.String())
	}
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Format: "text", Level: "WARN"})
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("INFO record should be filtered at WARN")
	}
	if !strings.Contains(out, "msg=kept") {
		t.Errorf("expected text output, got %q", out)
	}
}
