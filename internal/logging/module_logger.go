package logging

import (
	"context"

	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

const (
	rootModule     = "backoffice"
	gatewayModule  = "backoffice.gateway"
	listviewModule = "backoffice.listview"
	settingsModule = "backoffice.settings"
	journalModule  = "backoffice.journal"
	uploaderModule = "backoffice.uploader"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// GatewayLogger returns the logger namespace reserved for the resource gateway.
func GatewayLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, gatewayModule)
}

// ListViewLogger returns the logger namespace reserved for list controllers.
func ListViewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, listviewModule)
}

// SettingsLogger returns the logger namespace reserved for the settings cache.
func SettingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, settingsModule)
}

// JournalLogger returns the logger namespace reserved for the mutation journal.
func JournalLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, journalModule)
}

// UploaderLogger returns the logger namespace reserved for asset uploads.
func UploaderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, uploaderModule)
}

// WithResourceContext enriches the provided logger with the resource name and
// target record id. Empty values are ignored.
func WithResourceContext(logger interfaces.Logger, resource, recordID string) interfaces.Logger {
	fields := map[string]any{}
	if resource != "" {
		fields["resource"] = resource
	}
	if recordID != "" {
		fields["record_id"] = recordID
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
