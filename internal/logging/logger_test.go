package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("shown", "lines", 3)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry logged at info level: %s", out)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, out)
	}
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", entry["msg"])
	}
}

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if RunID(ctx) != "" {
		t.Error("RunID on empty context should be empty")
	}

	ctx = WithRunID(ctx, "run-123")
	if got := RunID(ctx); got != "run-123" {
		t.Errorf("RunID() = %q, want %q", got, "run-123")
	}
}

func TestFromContext_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(New(&buf, "info", "text"))
	defer slog.SetDefault(prev)

	ctx := WithRunID(context.Background(), "abc")
	WithFields(ctx, "file", "x.csv").Info("parsed")

	out := buf.String()
	if !strings.Contains(out, "run_id=abc") {
		t.Errorf("log entry missing run_id: %s", out)
	}
	if !strings.Contains(out, "file=x.csv") {
		t.Errorf("log entry missing field: %s", out)
	}
}

func TestRunID_SharedWithChiRequestID(t *testing.T) {
	var got string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RunID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "req-7" {
		t.Errorf("RunID() behind RequestID middleware = %q, want req-7", got)
	}

	ctx := WithRunID(context.Background(), "run-9")
	if id := middleware.GetReqID(ctx); id != "run-9" {
		t.Errorf("GetReqID() = %q, want run-9", id)
	}
}
