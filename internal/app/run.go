package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/ctxlog"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/registry"
)

// Run executes the configuration document: either the single application
// selected on the command line, or every entry of the "applications" list in
// document order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var err error
	if a.config.Application != "" {
		cfg := a.withWorkers(a.doc)
		err = RunOne(ctx, a.registry, a.config.Application, cfg, a.logger)
	} else {
		err = a.runMany(ctx)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// RunOne constructs the named diagnostic from cfg, loads its data
// collections, and executes it.
func RunOne(ctx context.Context, reg *registry.Registry, name string, cfg *config.Config, logger *slog.Logger) error {
	diag, err := reg.NewDiagnostic(name, cfg, logger)
	if err != nil {
		return err
	}
	collections, err := data.FromConfig(cfg)
	if err != nil {
		return err
	}
	return diag.Execute(ctx, collections)
}

// runMany iterates the "applications" list, running each entry in document
// order. The first failure stops the run.
func (a *App) runMany(ctx context.Context) error {
	apps, ok := a.doc.GetList("applications")
	if !ok {
		return &config.StructureError{Key: "applications", Msg: "configuration must provide an applications list"}
	}

	for i, raw := range apps {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, ok := raw.(*config.Config)
		if !ok {
			return &config.StructureError{Key: "applications", Msg: fmt.Sprintf("entry %d is not a mapping", i)}
		}
		name := entry.GetString("application name", "")
		if name == "" {
			return &config.StructureError{Key: "applications", Msg: fmt.Sprintf("entry %d has no application name", i)}
		}

		a.logger.Info("Running application.", "name", name)
		if err := RunOne(ctx, a.registry, name, a.withWorkers(entry), a.logger); err != nil {
			return fmt.Errorf("application %q failed: %w", name, err)
		}
	}
	return nil
}

// withWorkers injects the CLI worker count into an application configuration
// that does not choose its own.
func (a *App) withWorkers(cfg *config.Config) *config.Config {
	if a.config.Workers > 0 && !cfg.Has("workers") {
		return cfg.With("workers", a.config.Workers)
	}
	return cfg
}
