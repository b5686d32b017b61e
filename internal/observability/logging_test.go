package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestWithRunIDAndStage(t *testing.T) {
	ctx := WithStage(WithRunID(context.Background(), "run-1"), "resolve")
	lc := GetContext(ctx)
	if lc.RunID != "run-1" || lc.Stage != "resolve" {
		t.Fatalf("unexpected log context: %+v", lc)
	}

	ctx = WithStage(ctx, "emit")
	if got := GetContext(ctx); got.RunID != "run-1" || got.Stage != "emit" {
		t.Fatalf("stage override lost run id: %+v", got)
	}
}

func TestInfoContextIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, slog.LevelDebug, "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithRunID(context.Background(), "run-42"), "emit")
	InfoContext(ctx, "Sitemap written", slog.Int("count", 3))

	out := buf.String()
	for _, want := range []string{"run_id=run-42", "stage=emit", "count=3", "Sitemap written"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("shown", slog.String("page", "/about"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["page"] != "/about" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
