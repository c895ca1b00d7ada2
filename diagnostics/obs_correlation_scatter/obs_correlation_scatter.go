// Package obs_correlation_scatter plots a reference variable against an
// experiment variable and reports their Pearson correlation.
package obs_correlation_scatter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"gonum.org/v1/gonum/stat"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/plotkit"
	"github.com/vk/eva/internal/registry"
	"github.com/vk/eva/layers/scatter"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the diagnostic with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDiagnostic("ObsCorrelationScatter", func(name string, cfg *config.Config, logger *slog.Logger) (registry.Diagnostic, error) {
		return New(name, cfg, logger), nil
	})
}

// Diagnostic renders a reference-vs-experiment scatter with the correlation
// coefficient in the title.
type Diagnostic struct {
	name   string
	cfg    *config.Config
	logger *slog.Logger
	fs     billy.Filesystem
}

// New creates the diagnostic writing to the host filesystem.
func New(name string, cfg *config.Config, logger *slog.Logger) *Diagnostic {
	return &Diagnostic{name: name, cfg: cfg, logger: logger, fs: osfs.New("/")}
}

// SetFilesystem redirects figure output, primarily for testing.
func (d *Diagnostic) SetFilesystem(fs billy.Filesystem) {
	d.fs = fs
}

// Execute computes the correlation and saves the scatter figure.
func (d *Diagnostic) Execute(ctx context.Context, collections *data.Collections) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ref, err := seriesOf(d.cfg, "reference", collections)
	if err != nil {
		return err
	}
	exp, err := seriesOf(d.cfg, "experiment", collections)
	if err != nil {
		return err
	}
	if len(ref.values) != len(exp.values) {
		return fmt.Errorf("reference and experiment have different lengths (%d and %d)",
			len(ref.values), len(exp.values))
	}

	r := stat.Correlation(ref.values, exp.values, nil)
	d.logger.Info("Correlation computed.", "reference", ref.variable, "experiment", exp.variable, "r", r)

	// The two sides may share a variable name across collections, so the
	// scatter layer reads from a synthetic comparison collection instead.
	comparison := data.New()
	comparison.Add("comparison", map[string][]float64{
		"reference":  ref.values,
		"experiment": exp.values,
	})
	layer, err := scatter.New(config.FromMap(map[string]any{
		"data": map[string]any{
			"collection": "comparison",
			"x variable": "reference",
			"y variable": "experiment",
		},
		"color": d.cfg.GetString("color", "blue"),
	}), d.logger, comparison)
	if err != nil {
		return err
	}

	p := plotkit.NewPlot([]plotkit.Layer{layer}, "", "")
	if err := p.ApplyOption("add_title", fmt.Sprintf("%s vs %s (r = %.3f)", ref.variable, exp.variable, r)); err != nil {
		return err
	}
	if err := p.ApplyOption("add_xlabel", ref.variable); err != nil {
		return err
	}
	if err := p.ApplyOption("add_ylabel", exp.variable); err != nil {
		return err
	}
	if err := p.ApplyOption("add_grid", nil); err != nil {
		return err
	}

	fig, err := plotkit.NewFigure(1, 1, d.cfg.GetFloat("figure width", 8), d.cfg.GetFloat("figure height", 6))
	if err != nil {
		return err
	}
	defer fig.Close()
	fig.SetPlots([]*plotkit.Plot{p})
	if err := fig.BuildLayout(); err != nil {
		return err
	}

	fileType := d.cfg.GetString("figure file type", "png")
	outPath := filepath.Join(
		d.cfg.GetString("output path", "./"),
		d.cfg.GetString("output name", d.name)+"."+fileType,
	)
	if !filepath.IsAbs(outPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
		outPath = filepath.Join(wd, outPath)
	}

	opts := plotkit.SaveOptions{Format: fileType, DPI: d.cfg.GetInt("dpi", 96)}
	if err := fig.Save(d.fs, outPath, opts); err != nil {
		return err
	}
	d.logger.Info("Figure saved.", "path", outPath)
	return nil
}

type series struct {
	collection string
	variable   string
	values     []float64
}

// seriesOf loads the {collection, variable} pair named by one side of the
// comparison.
func seriesOf(cfg *config.Config, key string, collections *data.Collections) (series, error) {
	section, ok := cfg.GetSection(key)
	if !ok {
		return series{}, &config.StructureError{Key: key, Msg: "must provide a " + key + " section"}
	}
	collection := section.GetString("collection", "")
	variable := section.GetString("variable", "")
	if collection == "" || variable == "" {
		return series{}, &config.StructureError{Key: key, Msg: "must provide collection and variable"}
	}
	values, err := collections.Variable(collection, variable)
	if err != nil {
		return series{}, err
	}
	return series{collection: collection, variable: variable, values: values}, nil
}
