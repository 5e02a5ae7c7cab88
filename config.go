package backoffice

import "github.com/goliatone/go-backoffice/internal/runtimeconfig"

var (
	ErrGatewayBaseURLRequired            = runtimeconfig.ErrGatewayBaseURLRequired
	ErrUploadAPIKeyRequired              = runtimeconfig.ErrUploadAPIKeyRequired
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrJournalDriverUnknown              = runtimeconfig.ErrJournalDriverUnknown
	ErrJournalDSNRequired                = runtimeconfig.ErrJournalDSNRequired
	ErrJournalRetentionInvalid           = runtimeconfig.ErrJournalRetentionInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrPageSizeInvalid                   = runtimeconfig.ErrPageSizeInvalid
)

type (
	Config           = runtimeconfig.Config
	GatewayConfig    = runtimeconfig.GatewayConfig
	UploadConfig     = runtimeconfig.UploadConfig
	NewsletterConfig = runtimeconfig.NewsletterConfig
	SettingsConfig   = runtimeconfig.SettingsConfig
	JournalConfig    = runtimeconfig.JournalConfig
	CacheConfig      = runtimeconfig.CacheConfig
	CommandsConfig   = runtimeconfig.CommandsConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
