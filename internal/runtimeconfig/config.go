package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrGatewayBaseURLRequired indicates the module cannot reach a backend.
var ErrGatewayBaseURLRequired = errors.New("backoffice config: gateway base URL is required")

// ErrUploadAPIKeyRequired ensures uploads only run with a configured provider key.
var ErrUploadAPIKeyRequired = errors.New("backoffice config: upload API key is required when uploads are enabled")

// ErrAdvancedCacheRequiresEnabledCache ensures advanced cache builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("backoffice config: advanced cache feature requires cache to be enabled")

// ErrJournalDriverUnknown rejects storage drivers the journal cannot open.
var ErrJournalDriverUnknown = errors.New("backoffice config: journal driver is invalid")
var ErrJournalDSNRequired = errors.New("backoffice config: journal DSN is required when journal is enabled")
var ErrJournalRetentionInvalid = errors.New("backoffice config: journal retention must be zero or positive")
var ErrLoggingProviderRequired = errors.New("backoffice config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("backoffice config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("backoffice config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("backoffice config: logging format is invalid")
var ErrPageSizeInvalid = errors.New("backoffice config: page size overrides must be positive")

// Config aggregates feature flags and adapter bindings for the back-office module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Gateway    GatewayConfig
	Upload     UploadConfig
	Newsletter NewsletterConfig
	Settings   SettingsConfig
	Journal    JournalConfig
	Cache      CacheConfig
	Commands   CommandsConfig
	Features   Features
	Logging    LoggingConfig
	PageSizes  map[string]int
}

// GatewayConfig wires the REST client to the backend.
type GatewayConfig struct {
	BaseURL        string
	SessionCookie  string
	RequestTimeout time.Duration
}

// UploadConfig captures the image hosting provider credentials.
type UploadConfig struct {
	APIKey   string
	Endpoint string
}

// NewsletterConfig carries the bearer token the newsletter backend expects
// instead of the shared session cookie.
type NewsletterConfig struct {
	BearerToken string
}

// SettingsConfig captures the site settings endpoint behaviour.
type SettingsConfig struct {
	Path           string
	RefreshOnStart bool
}

// JournalConfig captures local mutation journal storage.
type JournalConfig struct {
	Driver    string
	DSN       string
	Actor     string
	Retention time.Duration
}

// CacheConfig captures cache behaviour toggles for journal reads.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
	Timeout                time.Duration
}

// Features toggles module functionality.
type Features struct {
	Journal       bool
	Uploads       bool
	Settings      bool
	Commands      bool
	AdvancedCache bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a single-operator setup.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Gateway: GatewayConfig{},
		Settings: SettingsConfig{
			Path:           "settings",
			RefreshOnStart: true,
		},
		Journal: JournalConfig{
			Driver:    "sqlite3",
			DSN:       "file:backoffice_journal.db?_fk=1",
			Retention: 90 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Commands:  CommandsConfig{},
		Features:  Features{Settings: true},
		PageSizes: map[string]int{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Gateway.BaseURL) == "" {
		return ErrGatewayBaseURLRequired
	}
	if cfg.Features.Uploads && strings.TrimSpace(cfg.Upload.APIKey) == "" {
		return ErrUploadAPIKeyRequired
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Features.Journal {
		if !isSupportedJournalDriver(cfg.Journal.Driver) {
			return fmt.Errorf("%w: %s", ErrJournalDriverUnknown, cfg.Journal.Driver)
		}
		if strings.TrimSpace(cfg.Journal.DSN) == "" {
			return ErrJournalDSNRequired
		}
		if cfg.Journal.Retention < 0 {
			return ErrJournalRetentionInvalid
		}
	}
	for resource, size := range cfg.PageSizes {
		if size < 1 {
			return fmt.Errorf("%w: %s", ErrPageSizeInvalid, resource)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isSupportedJournalDriver(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite3", "postgres", "memory":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
