package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-backoffice/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Gateway.BaseURL = "https://api.consult.test"
	return cfg
}

func TestConfigValidate_AcceptsDefaultsWithBaseURL(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_DisabledModuleSkipsChecks(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Enabled = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresGatewayBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Gateway.BaseURL = "  "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrGatewayBaseURLRequired) {
		t.Fatalf("expected ErrGatewayBaseURLRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresUploadKeyWhenUploadsEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Features.Uploads = true
	cfg.Upload.APIKey = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrUploadAPIKeyRequired) {
		t.Fatalf("expected ErrUploadAPIKeyRequired, got %v", err)
	}
}

func TestConfigValidate_AdvancedCacheRequiresCache(t *testing.T) {
	cfg := validConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestConfigValidate_JournalDriverChecks(t *testing.T) {
	cfg := validConfig()
	cfg.Features.Journal = true
	cfg.Journal.Driver = "oracle"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrJournalDriverUnknown) {
		t.Fatalf("expected ErrJournalDriverUnknown, got %v", err)
	}

	cfg.Journal.Driver = "sqlite3"
	cfg.Journal.DSN = " "
	err = cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrJournalDSNRequired) {
		t.Fatalf("expected ErrJournalDSNRequired, got %v", err)
	}

	cfg.Journal.DSN = "file:journal.db"
	cfg.Journal.Retention = -1
	err = cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrJournalRetentionInvalid) {
		t.Fatalf("expected ErrJournalRetentionInvalid, got %v", err)
	}
}

func TestConfigValidate_PageSizeOverrides(t *testing.T) {
	cfg := validConfig()
	cfg.PageSizes = map[string]int{"jobs": 0}

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPageSizeInvalid) {
		t.Fatalf("expected ErrPageSizeInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
