package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Info("work experience replaced", "user_id", "u1", "entries", 2, "error", errors.New("boom"))

	var line map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "work experience replaced" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["user_id"] != "u1" {
		t.Fatalf("unexpected user_id: %v", line["user_id"])
	}
	if line["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", line["error"])
	}
	if caller, _ := line["caller"].(string); !strings.HasPrefix(caller, "logging/logger_test.go") {
		t.Fatalf("expected caller to point at test file, got %q", caller)
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn, &buf)

	logger.Info("skipped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestLogger_AddsTraceFieldsFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "with trace")

	if !strings.Contains(buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) {
		t.Fatalf("expected trace_id in %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"span_id":"00f067aa0ba902b7"`) {
		t.Fatalf("expected span_id in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		" error ": LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("must not panic")
	logger.With("k", "v").Warn("still fine")
}
