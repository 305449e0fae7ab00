package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/config"
	"github.com/specialistvlad/enginecore/internal/ctxlog"
	"github.com/specialistvlad/enginecore/internal/event"
	"github.com/specialistvlad/enginecore/internal/events"
	"github.com/specialistvlad/enginecore/internal/plugin"
	"github.com/specialistvlad/enginecore/internal/registry"
)

// App encapsulates the host's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	ctx    context.Context
	logger *slog.Logger

	config  *Config
	model   *config.Model
	api     *plugin.API
	loader  *plugin.Loader
	modules []plugin.Module
	loaded  bool

	httpServer *http.Server
}

// NewApp builds a host from cfg: it loads the configuration file, applies
// CLI overrides, selects the payload codec, and creates empty registries.
// Modules default to the compiled-in core modules.
func NewApp(outW io.Writer, cfg *Config, modules ...plugin.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := config.LoadFile(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(model, cfg)
	if err := model.Normalize(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration ready.",
		"handler_policy", model.Engine.HandlerPolicy,
		"cancellation", model.Engine.Cancellation,
		"codec", model.Engine.Codec,
		"workers", model.Engine.Workers,
	)

	c, err := codec.ByName(model.Engine.Codec)
	if err != nil {
		return nil, err
	}

	policy, err := registry.ParsePolicy(model.Engine.HandlerPolicy)
	if err != nil {
		return nil, err
	}
	cancellation, err := event.ParseCancellationPolicy(model.Engine.Cancellation)
	if err != nil {
		return nil, err
	}

	api := plugin.NewAPI(logger, c, policy, cancellation)
	if err := events.RegisterBuiltins(ctx, api.EventBus); err != nil {
		return nil, err
	}

	if len(modules) == 0 {
		modules = coreModules
	}

	return &App{
		outW:    outW,
		ctx:     ctx,
		logger:  logger,
		config:  cfg,
		model:   model,
		api:     api,
		loader:  plugin.NewLoader(),
		modules: modules,
	}, nil
}

// applyOverrides copies non-empty CLI settings over the file model.
func applyOverrides(m *config.Model, cfg *Config) {
	if cfg.HandlerPolicy != "" {
		m.Engine.HandlerPolicy = cfg.HandlerPolicy
	}
	if cfg.Cancellation != "" {
		m.Engine.Cancellation = cfg.Cancellation
	}
	if cfg.Codec != "" {
		m.Engine.Codec = cfg.Codec
	}
	if cfg.Workers > 0 {
		m.Engine.Workers = cfg.Workers
	}
}

// API returns the host handle. This is primarily for testing.
func (a *App) API() *plugin.API {
	return a.api
}

// Model returns the effective configuration.
func (a *App) Model() *config.Model {
	return a.model
}

// LoadModules runs the entry-point protocol for every module. Calling it
// again after a successful load is a no-op.
func (a *App) LoadModules(ctx context.Context) error {
	if a.loaded {
		a.logger.Debug("Modules already loaded.")
		return nil
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := a.loader.Load(ctx, a.api, a.modules...); err != nil {
		return err
	}
	a.loaded = true

	a.logger.Info("Task templates registered:", "count", len(a.api.TaskRegistry.IDs()), "keys", idStrings(a.api.TaskRegistry.IDs()))
	a.logger.Info("Event handlers registered:", "count", len(a.api.EventBus.HandlerIDs()), "keys", idStrings(a.api.EventBus.HandlerIDs()))
	return nil
}

// Loaded returns metadata of the modules loaded so far.
func (a *App) Loaded() []plugin.LibraryMetadata {
	return a.loader.Loaded()
}
