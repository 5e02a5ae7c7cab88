package console_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/internal/logging/console"
)

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := console.NewProvider(console.Options{
		Writer:   buf,
		TimeFunc: func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})

	logger := provider.GetLogger("test")
	logger.Info("hello", "zeta", 2, "alpha", 1)

	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "2025-03-01T12:00:00Z INFO hello") {
		t.Fatalf("unexpected prefix: %q", out)
	}
	if strings.Index(out, "alpha=1") > strings.Index(out, "zeta=2") {
		t.Fatalf("fields not sorted: %q", out)
	}
}

func TestConsoleLoggerHonoursMinLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	min := console.LevelWarn
	provider := console.NewProvider(console.Options{Writer: buf, MinLevel: &min})

	logger := provider.GetLogger("test")
	logger.Debug("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("debug entry should have been filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestConsoleLoggerMergesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := console.NewProvider(console.Options{Writer: buf})

	ctx := logging.ContextWithFields(t.Context(), map[string]any{"request_id": "r-9"})
	logger := provider.GetLogger("test").WithContext(ctx)
	logger.Info("with.context")

	if !strings.Contains(buf.String(), "request_id=r-9") {
		t.Fatalf("context fields missing: %q", buf.String())
	}
}

func TestConsoleLoggerPromotesDanglingArg(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := console.NewProvider(console.Options{Writer: buf})

	provider.GetLogger("test").Info("odd", "only")

	if !strings.Contains(buf.String(), "field_0=only") {
		t.Fatalf("dangling arg not promoted: %q", buf.String())
	}
}
