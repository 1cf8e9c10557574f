package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "importer")

	logger.WarnContext(context.Background(), "fetch throttled", "match_id", "NA1_1", "error", errors.New("429"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "importer" {
		t.Fatalf("missing component field: %+v", fields)
	}
	if fields["match_id"] != "NA1_1" {
		t.Fatalf("missing match_id field: %+v", fields)
	}
	if fields["error"] != "429" {
		t.Fatalf("unexpected error field: %+v", fields)
	}
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", "region", "euw1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "kept" || entry["region"] != "euw1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestSnippetTruncatesLongPayloads(t *testing.T) {
	raw := bytes.Repeat([]byte("a"), MaxSnippetBytes+10)
	got := Snippet(raw)
	if len(got) != MaxSnippetBytes+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected snippet length %d", len(got))
	}
	if Snippet([]byte("short")) != "short" {
		t.Fatalf("short payload must be kept as-is")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
