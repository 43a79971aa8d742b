// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	var jsonBuf bytes.Buffer
	New(Config{Format: "json", Output: &jsonBuf}).Warn().Str("city", "Jakarta").Msg("json entry")
	entry := decodeLine(t, &jsonBuf)
	if entry["city"] != "Jakarta" {
		t.Errorf("city = %v, want Jakarta", entry["city"])
	}

	var consoleBuf bytes.Buffer
	New(Config{Format: "console", Output: &consoleBuf}).Warn().Msg("console entry")
	if strings.HasPrefix(consoleBuf.String(), "{") {
		t.Errorf("console output looks like JSON: %q", consoleBuf.String())
	}
	if !strings.Contains(consoleBuf.String(), "console entry") {
		t.Errorf("console output missing message: %q", consoleBuf.String())
	}
}

func TestNew_Caller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(Config{Caller: true, Output: &buf}).Warn().Msg("with caller")
	if !strings.Contains(buf.String(), "logger_test.go") {
		t.Errorf("caller missing: %q", buf.String())
	}
}

func TestCtx_AddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-123")

	Ctx(ctx).Warn().Msg("handled")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("GenerateRequestID() = %q, want UUID", id)
	}
}

func TestCtxErr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	CtxErr(ctx, errors.New("table not loaded")).Msg("failed")

	entry := decodeLine(t, &buf)
	if entry["error"] != "table not loaded" {
		t.Errorf("error = %v, want table not loaded", entry["error"])
	}
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.WithGroup("svc").With("name", "dataset-refresh").Warn("restarting",
		slog.Int("attempt", 2),
		slog.Group("backoff", slog.Duration("wait", 0)),
	)

	entry := decodeLine(t, &buf)
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["svc.name"] != "dataset-refresh" {
		t.Errorf("svc.name = %v, want dataset-refresh", entry["svc.name"])
	}
	if entry["svc.attempt"] != float64(2) {
		t.Errorf("svc.attempt = %v, want 2", entry["svc.attempt"])
	}
	if _, ok := entry["svc.backoff.wait"]; !ok {
		t.Errorf("nested group key missing: %v", entry)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"short", "***"},
		{"exactlytwelv", "***"},
		{"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", "eyJh...VCJ9"},
	}

	for _, tt := range tests {
		if got := SanitizeToken(tt.input); got != tt.expected {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError("invalid Bearer header"); got != "authentication error" {
		t.Errorf("SanitizeError() = %q, want masked", got)
	}
	if got := SanitizeError("token is expired"); got != "token is expired" {
		t.Errorf("SanitizeError() = %q, want unchanged", got)
	}
	if got := SanitizeError(strings.Repeat("x", 300)); len(got) != 203 {
		t.Errorf("len(SanitizeError()) = %d, want 203", len(got))
	}
}

func TestSecurityLogger_LogTokenRejected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sl := NewSecurityLoggerWithLogger(NewTestLogger(&buf))
	sl.LogTokenRejected("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", "10.0.0.1", "/api/v1/recommendations", "token is expired")

	entry := decodeLine(t, &buf)
	checks := map[string]string{
		"event":     "token_rejected",
		"status":    "failed",
		"component": "auth",
		"token":     "eyJh...VCJ9",
		"level":     "warn",
		"error":     "token is expired",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s = %v, want %s", k, entry[k], want)
		}
	}
}
