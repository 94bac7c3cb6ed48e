package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferedConsoleLogger(level string) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(&buf, levelVar)), &buf
}

func TestConsoleHandlerFormatsLine(t *testing.T) {
	logger, buf := newBufferedConsoleLogger("info")
	logger.Info("job started", String(FieldJobID, "abc-123"), Int("events", 4))

	line := buf.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "job started") {
		t.Fatalf("line = %q", line)
	}
	if !strings.Contains(line, "job_id=abc-123") || !strings.Contains(line, "events=4") {
		t.Fatalf("attrs missing: %q", line)
	}
}

func TestConsoleHandlerExtractsComponentPrefix(t *testing.T) {
	logger, buf := newBufferedConsoleLogger("info")
	NewComponentLogger(logger, "planner").Info("plan created")

	line := buf.String()
	if !strings.Contains(line, "planner: plan created") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if strings.Contains(line, FieldComponent+"=") {
		t.Fatalf("component leaked as attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newBufferedConsoleLogger("info")
	logger.Warn("oops", Error(errors.New("page crashed hard")))

	if !strings.Contains(buf.String(), `error="page crashed hard"`) {
		t.Fatalf("line = %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	logger, buf := newBufferedConsoleLogger("warn")
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn suppressed: %q", out)
	}
}

func TestJSONHandlerRemapsKeys(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, levelVar))
	logger.Info("hello", String("k", "v"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["msg"] != "hello" || payload["level"] != "info" {
		t.Fatalf("payload = %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("ts missing: %v", payload)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bananas": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	if attrs := ContextFields(ctx); len(attrs) != 0 {
		t.Fatalf("empty context yielded %v", attrs)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
