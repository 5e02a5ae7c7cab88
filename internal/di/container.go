package di

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-backoffice/internal/commands"
	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/journal"
	"github.com/goliatone/go-backoffice/internal/listview"
	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/internal/logging/console"
	"github.com/goliatone/go-backoffice/internal/logging/gologger"
	"github.com/goliatone/go-backoffice/internal/resources"
	"github.com/goliatone/go-backoffice/internal/runtimeconfig"
	"github.com/goliatone/go-backoffice/internal/settings"
	"github.com/goliatone/go-backoffice/internal/uploader"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

// Container wires module dependencies from a validated configuration. One
// container owns one gateway client, one settings cache, one journal, and a
// lazily built controller per registered resource.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpDoer       interfaces.HTTPDoer

	registry   *resources.Registry
	gw         *gateway.Client
	settings   *settings.Cache
	uploads    interfaces.Uploader
	journalDB  *bun.DB
	journalSvc *journal.Service

	mu          sync.Mutex
	controllers map[string]*listview.Controller
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithHTTPDoer injects the transport shared by the gateway and uploader.
func WithHTTPDoer(doer interfaces.HTTPDoer) Option {
	return func(c *Container) {
		if doer != nil {
			c.httpDoer = doer
		}
	}
}

// WithRegistry replaces the default resource registry, letting hosts add or
// re-tune descriptors before any controller is built.
func WithRegistry(registry *resources.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithJournalDB injects an already-open database for the journal instead of
// letting the container open one from config.
func WithJournalDB(db *bun.DB) Option {
	return func(c *Container) {
		c.journalDB = db
	}
}

// NewContainer validates the configuration and builds the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config:      cfg,
		controllers: map[string]*listview.Controller{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.registry == nil {
		registry, err := resources.DefaultRegistry(cfg.Newsletter.BearerToken)
		if err != nil {
			return nil, err
		}
		c.registry = registry
	}

	if err := c.buildGateway(); err != nil {
		return nil, err
	}
	if err := c.buildSettings(); err != nil {
		return nil, err
	}
	if err := c.buildUploader(); err != nil {
		return nil, err
	}
	if err := c.buildJournal(); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider exposes the provider for host integrations.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Registry returns the resource registry.
func (c *Container) Registry() *resources.Registry {
	return c.registry
}

// Gateway returns the shared REST client.
func (c *Container) Gateway() *gateway.Client {
	return c.gw
}

// Settings returns the site settings cache, nil when the feature is off.
func (c *Container) Settings() *settings.Cache {
	return c.settings
}

// Uploader returns the asset uploader, nil when uploads are disabled.
func (c *Container) Uploader() interfaces.Uploader {
	return c.uploads
}

// Journal returns the mutation journal service, nil when the feature is off.
func (c *Container) Journal() *journal.Service {
	return c.journalSvc
}

// Controller returns the list controller for a resource, building it on first
// use. Controllers are cached so every caller shares one list state per
// resource, matching the one-screen-one-controller model.
func (c *Container) Controller(resource string) (*listview.Controller, error) {
	name := strings.ToLower(strings.TrimSpace(resource))

	c.mu.Lock()
	defer c.mu.Unlock()
	if controller, ok := c.controllers[name]; ok {
		return controller, nil
	}

	descriptor, err := c.registry.Get(name)
	if err != nil {
		return nil, err
	}

	opts := []listview.Option{
		listview.WithLogger(logging.ListViewLogger(c.loggerProvider)),
	}
	if c.journalSvc != nil {
		opts = append(opts, listview.WithRecorder(c.journalSvc))
	}
	if size, ok := c.config.PageSizes[name]; ok {
		opts = append(opts, listview.WithPageSize(size))
	}

	controller := listview.New(descriptor, c.gw, opts...)
	c.controllers[name] = controller
	return controller, nil
}

// CloseControllers unmounts every built controller. Late completions after
// this call are discarded by the controllers themselves.
func (c *Container) CloseControllers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, controller := range c.controllers {
		controller.Close()
	}
	c.controllers = map[string]*listview.Controller{}
}

// Mutator adapts the container's per-resource controllers to the command
// layer's resource-addressed contract.
func (c *Container) Mutator() commands.ResourceMutator {
	return &containerMutator{container: c}
}

type containerMutator struct {
	container *Container
}

func (m *containerMutator) Create(ctx context.Context, resource string, payload map[string]any) (*gateway.Record, error) {
	controller, err := m.container.Controller(resource)
	if err != nil {
		return nil, err
	}
	return controller.Create(ctx, payload)
}

func (m *containerMutator) Update(ctx context.Context, resource, id string, patch map[string]any) (*gateway.Record, error) {
	controller, err := m.container.Controller(resource)
	if err != nil {
		return nil, err
	}
	return controller.Update(ctx, id, patch)
}

func (m *containerMutator) Toggle(ctx context.Context, resource, id string) (*gateway.Record, error) {
	controller, err := m.container.Controller(resource)
	if err != nil {
		return nil, err
	}
	return controller.Toggle(ctx, id)
}

func (m *containerMutator) Remove(ctx context.Context, resource, id string) error {
	controller, err := m.container.Controller(resource)
	if err != nil {
		return err
	}
	return controller.Remove(ctx, id)
}

func (c *Container) buildGateway() error {
	opts := []gateway.Option{
		gateway.WithLogger(logging.GatewayLogger(c.loggerProvider)),
	}
	if c.httpDoer != nil {
		opts = append(opts, gateway.WithHTTPDoer(c.httpDoer))
	}
	gw, err := gateway.New(gateway.Config{
		BaseURL:        c.config.Gateway.BaseURL,
		SessionCookie:  c.config.Gateway.SessionCookie,
		RequestTimeout: c.config.Gateway.RequestTimeout,
	}, opts...)
	if err != nil {
		return err
	}
	c.gw = gw
	return nil
}

func (c *Container) buildSettings() error {
	if !c.config.Features.Settings {
		return nil
	}
	opts := []settings.Option{
		settings.WithLogger(logging.SettingsLogger(c.loggerProvider)),
	}
	if path := strings.TrimSpace(c.config.Settings.Path); path != "" {
		opts = append(opts, settings.WithRoute(gateway.Route{Path: path}))
	}
	cache, err := settings.New(c.gw, opts...)
	if err != nil {
		return err
	}
	c.settings = cache
	return nil
}

func (c *Container) buildUploader() error {
	if !c.config.Features.Uploads {
		return nil
	}
	opts := []uploader.Option{
		uploader.WithLogger(logging.UploaderLogger(c.loggerProvider)),
	}
	if c.httpDoer != nil {
		opts = append(opts, uploader.WithHTTPDoer(c.httpDoer))
	}
	client, err := uploader.New(uploader.Config{
		APIKey:   c.config.Upload.APIKey,
		Endpoint: c.config.Upload.Endpoint,
	}, opts...)
	if err != nil {
		return err
	}
	c.uploads = client
	return nil
}

func (c *Container) buildJournal() error {
	if !c.config.Features.Journal {
		return nil
	}

	var store journal.Store
	switch strings.ToLower(strings.TrimSpace(c.config.Journal.Driver)) {
	case "memory":
		store = journal.NewMemoryStore()
	default:
		db := c.journalDB
		if db == nil {
			opened, err := journal.OpenDB(c.config.Journal.Driver, c.config.Journal.DSN)
			if err != nil {
				return err
			}
			db = opened
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := journal.EnsureSchema(ctx, db); err != nil {
			return err
		}
		c.journalDB = db

		if c.config.Features.AdvancedCache && c.config.Cache.Enabled {
			cacheCfg := repocache.DefaultConfig()
			if c.config.Cache.DefaultTTL > 0 {
				cacheCfg.TTL = c.config.Cache.DefaultTTL
			}
			cacheService, err := repocache.NewCacheService(cacheCfg)
			if err != nil {
				return fmt.Errorf("di: build journal cache: %w", err)
			}
			store = journal.NewBunStoreWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
		} else {
			store = journal.NewBunStore(db)
		}
	}

	c.journalSvc = journal.NewService(store,
		journal.WithLogger(logging.JournalLogger(c.loggerProvider)),
		journal.WithActor(c.config.Journal.Actor),
	)
	return nil
}

func buildLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		level := consoleLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
