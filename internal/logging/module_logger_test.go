package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/internal/logging/console"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

func TestModuleLoggerDefaultsToNoOp(t *testing.T) {
	logger := logging.ModuleLogger(nil, "")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	// Must not panic when no provider is configured.
	logger.Info("ignored")
	logger.Error("ignored", "key", "value")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := console.NewProvider(console.Options{
		Writer:   buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0).UTC() },
	})

	logger := logging.GatewayLogger(provider)
	logger.Info("gateway.ready")

	out := buf.String()
	if !strings.Contains(out, "module=backoffice.gateway") {
		t.Fatalf("expected module field in output, got %q", out)
	}
	if !strings.Contains(out, "gateway.ready") {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestWithResourceContext(t *testing.T) {
	buf := &bytes.Buffer{}
	provider := console.NewProvider(console.Options{Writer: buf})

	logger := logging.WithResourceContext(logging.ListViewLogger(provider), "jobs", "rec-1")
	logger.Info("listview.save")

	out := buf.String()
	if !strings.Contains(out, "resource=jobs") || !strings.Contains(out, "record_id=rec-1") {
		t.Fatalf("expected resource fields in output, got %q", out)
	}
}

func TestWithFieldsSkipsUnsupportedLoggers(t *testing.T) {
	base := plainLogger{}
	if got := logging.WithFields(base, map[string]any{"a": 1}); got != base {
		t.Fatalf("expected original logger back, got %#v", got)
	}
	if got := logging.WithFields(nil, map[string]any{"a": 1}); got != nil {
		t.Fatalf("expected nil passthrough, got %#v", got)
	}
}

type plainLogger struct{}

var _ interfaces.Logger = plainLogger{}

func (plainLogger) Trace(string, ...any) {}
func (plainLogger) Debug(string, ...any) {}
func (plainLogger) Info(string, ...any)  {}
func (plainLogger) Warn(string, ...any)  {}
func (plainLogger) Error(string, ...any) {}
func (plainLogger) Fatal(string, ...any) {}

func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }
