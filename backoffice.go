package backoffice

import (
	"context"

	"github.com/goliatone/go-backoffice/internal/commands"
	"github.com/goliatone/go-backoffice/internal/di"
	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/journal"
	"github.com/goliatone/go-backoffice/internal/listview"
	"github.com/goliatone/go-backoffice/internal/resources"
	"github.com/goliatone/go-backoffice/internal/settings"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

// Record exports the canonical resource record consumed by every screen.
type Record = gateway.Record

// Gateway exports the REST client for hosts that talk to the backend directly.
type Gateway = gateway.Client

// Controller exports the per-resource list controller.
type Controller = listview.Controller

// Toast exports the single-slot notification surfaced by controllers.
type Toast = listview.Toast

// Descriptor exports the per-resource tuning block.
type Descriptor = resources.Descriptor

// Registry exports the resource descriptor registry.
type Registry = resources.Registry

// SettingsCache exports the site settings read-through cache.
type SettingsCache = settings.Cache

// JournalService exports the local mutation journal.
type JournalService = journal.Service

// JournalEntry exports the persisted journal row.
type JournalEntry = journal.Entry

// ResourceMutator exports the command layer's mutation contract.
type ResourceMutator = commands.ResourceMutator

// CreateResourceCommand and friends export the dispatchable messages.
type (
	CreateResourceCommand = commands.CreateResourceCommand
	UpdateResourceCommand = commands.UpdateResourceCommand
	ToggleResourceCommand = commands.ToggleResourceCommand
	RemoveResourceCommand = commands.RemoveResourceCommand
)

// Uploader exports the asset upload contract.
type Uploader = interfaces.Uploader

// Module is the top level back-office runtime façade.
type Module struct {
	container  *di.Container
	commandReg *commands.Registration
}

// New constructs a back-office module using the provided configuration and
// optional DI overrides. When the commands feature requests it, the resource
// handlers are subscribed to the global dispatcher immediately.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	m := &Module{container: container}
	if cfg.Features.Commands && cfg.Commands.AutoRegisterDispatcher {
		m.commandReg = commands.RegisterResourceHandlers(container.Mutator(), commands.RegisterConfig{
			Timeout: cfg.Commands.Timeout,
			Logger:  commands.CommandLogger(container.LoggerProvider(), "resources"),
		})
	}
	return m, nil
}

// Start performs the configured warm-up work: an initial settings refresh and
// a journal retention sweep. Both are best-effort; a cold settings cache still
// answers with safe defaults and the journal prunes again on the next start.
func (m *Module) Start(ctx context.Context) error {
	cfg := m.container.Config()

	if cache := m.container.Settings(); cache != nil && cfg.Settings.RefreshOnStart {
		if err := cache.Refresh(ctx); err != nil {
			return err
		}
	}
	if svc := m.container.Journal(); svc != nil && cfg.Journal.Retention > 0 {
		if _, err := svc.PruneOlderThan(ctx, cfg.Journal.Retention); err != nil {
			return err
		}
	}
	return nil
}

// Close unsubscribes command handlers and unmounts every built controller.
func (m *Module) Close() {
	if m == nil {
		return
	}
	m.commandReg.Unsubscribe()
	m.container.CloseControllers()
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the configuration the module was built from.
func (m *Module) Config() Config {
	return m.container.Config()
}

// Gateway returns the shared REST client.
func (m *Module) Gateway() *Gateway {
	return m.container.Gateway()
}

// Registry returns the resource descriptor registry.
func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

// Controller returns the shared list controller for a resource.
func (m *Module) Controller(resource string) (*Controller, error) {
	return m.container.Controller(resource)
}

// Settings returns the site settings cache, nil when the feature is off.
func (m *Module) Settings() *SettingsCache {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Settings()
}

// Journal returns the mutation journal, nil when the feature is off.
func (m *Module) Journal() *JournalService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Journal()
}

// Uploads returns the asset uploader, nil when uploads are disabled.
func (m *Module) Uploads() Uploader {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Uploader()
}

// Mutator returns the resource mutation surface used by the command layer.
func (m *Module) Mutator() ResourceMutator {
	return m.container.Mutator()
}
