// Package figure_driver runs the batch figure pipeline: every entry of the
// graphics list is resolved against its schema, expanded over its batch
// variables and channels, and rendered to a file.
package figure_driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sync/errgroup"

	"github.com/vk/eva/internal/batch"
	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/figure"
	"github.com/vk/eva/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the diagnostic with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDiagnostic("FigureDriver", func(name string, cfg *config.Config, logger *slog.Logger) (registry.Diagnostic, error) {
		return New(name, cfg, logger, r), nil
	})
}

// FigureDriver renders every figure described by a configuration's graphics
// list.
type FigureDriver struct {
	name     string
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
	fs       billy.Filesystem
	workers  int
}

// New creates a FigureDriver writing to the host filesystem.
func New(name string, cfg *config.Config, logger *slog.Logger, r *registry.Registry) *FigureDriver {
	return &FigureDriver{
		name:     name,
		cfg:      cfg,
		logger:   logger,
		registry: r,
		fs:       osfs.New("/"),
		workers:  cfg.GetInt("workers", 4),
	}
}

// SetFilesystem redirects figure output, primarily for testing.
func (d *FigureDriver) SetFilesystem(fs billy.Filesystem) {
	d.fs = fs
}

// Execute renders every graphics entry. Figures within one entry are
// assembled concurrently; entries themselves run in document order, and the
// first failure stops the run.
func (d *FigureDriver) Execute(ctx context.Context, collections *data.Collections) error {
	if d.workers < 1 {
		// errgroup.SetLimit(0) would block the first Go call forever.
		return &config.StructureError{Key: "workers", Msg: fmt.Sprintf("must be at least 1, got %d", d.workers)}
	}
	graphics, ok := d.cfg.GetList("graphics")
	if !ok {
		return &config.StructureError{Key: "graphics", Msg: "figure driver configuration must provide a graphics list"}
	}

	asm := figure.New(d.registry, d.fs, d.logger)
	for i, raw := range graphics {
		graphic, ok := raw.(*config.Config)
		if !ok {
			return &config.StructureError{Key: "graphics", Msg: fmt.Sprintf("entry %d is not a mapping", i)}
		}
		if err := d.runGraphic(ctx, asm, graphic, collections); err != nil {
			return fmt.Errorf("graphics entry %d: %w", i, err)
		}
	}
	return nil
}

// runGraphic resolves one graphics entry's schema, expands its batch
// specification, and assembles every resulting figure.
func (d *FigureDriver) runGraphic(ctx context.Context, asm *figure.Assembler, graphic *config.Config, collections *data.Collections) error {
	figureConf, ok := graphic.GetSection("figure")
	if !ok {
		return &config.StructureError{Key: "figure", Msg: "graphics entry must provide a figure section"}
	}
	plots, ok := graphic.GetList("plots")
	if !ok {
		return &config.StructureError{Key: "plots", Msg: "graphics entry must provide a plots list"}
	}
	batchConf, _ := graphic.GetSection("batch figure")

	// Schema resolution runs on the template, once, before expansion: a typo
	// in the overrides fails here instead of once per batch iteration.
	resolved, err := figure.ResolveSchema(figureConf)
	if err != nil {
		return err
	}

	pairs, err := batch.Expand(resolved, plots, batchConf)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for pair := range pairs {
		g.Go(func() error {
			path, err := asm.Assemble(gctx, pair.Figure, pair.Plots, collections)
			if err != nil {
				return err
			}
			d.logger.Info("Figure saved.", "path", path)
			return nil
		})
	}
	return g.Wait()
}
