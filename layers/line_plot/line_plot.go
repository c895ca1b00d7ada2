// Package line_plot draws one variable against another as a connected line.
package line_plot

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/plotkit"
	"github.com/vk/eva/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the layer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterLayer("LinePlot", New)
}

// Layer is a line plot of one variable against another.
type Layer struct {
	xs, ys    []float64
	color     string
	lineWidth float64
	label     string
}

// New builds a line layer from its descriptor.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	dataCfg, ok := cfg.GetSection("data")
	if !ok {
		return nil, &config.StructureError{Key: "data", Msg: "line plot layer must provide a data section"}
	}
	collection := dataCfg.GetString("collection", "")
	xVar := dataCfg.GetString("x variable", "")
	yVar := dataCfg.GetString("y variable", "")

	xs, err := collections.Variable(collection, xVar)
	if err != nil {
		return nil, err
	}
	ys, err := collections.Variable(collection, yVar)
	if err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("line plot: %q and %q have different lengths (%d and %d)", xVar, yVar, len(xs), len(ys))
	}

	logger.Debug("Line plot layer built.", "collection", collection, "x", xVar, "y", yVar, "points", len(xs))
	return &Layer{
		xs:        xs,
		ys:        ys,
		color:     cfg.GetString("color", ""),
		lineWidth: cfg.GetFloat("linewidth", 1),
		label:     cfg.GetString("label", ""),
	}, nil
}

// AddTo renders the layer onto the plot.
func (l *Layer) AddTo(p *plot.Plot) error {
	pts := make(plotter.XYs, len(l.xs))
	for i := range l.xs {
		pts[i].X, pts[i].Y = l.xs[i], l.ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(l.lineWidth)
	if l.color != "" {
		c, err := plotkit.ParseColor(l.color)
		if err != nil {
			return err
		}
		line.LineStyle.Color = c
	}
	p.Add(line)
	if l.label != "" {
		p.Legend.Add(l.label, line)
	}
	return nil
}
