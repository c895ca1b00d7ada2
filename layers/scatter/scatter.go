// Package scatter draws one variable against another as a point cloud.
package scatter

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
	r.RegisterLayer("Scatter", New)
}

// Layer is a scatter plot of one variable against another.
type Layer struct {
	xs, ys     []float64
	color      string
	markerSize float64
	label      string
}

// New builds a scatter layer from its descriptor. The data section names the
// collection and the x/y variables; color, markersize and label are optional
// styling keys.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	dataCfg, ok := cfg.GetSection("data")
	if !ok {
		return nil, &config.StructureError{Key: "data", Msg: "scatter layer must provide a data section"}
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
		return nil, fmt.Errorf("scatter: %q and %q have different lengths (%d and %d)", xVar, yVar, len(xs), len(ys))
	}

	logger.Debug("Scatter layer built.", "collection", collection, "x", xVar, "y", yVar, "points", len(xs))
	return &Layer{
		xs:         xs,
		ys:         ys,
		color:      cfg.GetString("color", ""),
		markerSize: cfg.GetFloat("markersize", 2),
		label:      cfg.GetString("label", ""),
	}, nil
}

// AddTo renders the layer onto the plot.
func (l *Layer) AddTo(p *plot.Plot) error {
	pts := make(plotter.XYs, len(l.xs))
	for i := range l.xs {
		pts[i].X, pts[i].Y = l.xs[i], l.ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(l.markerSize)
	if l.color != "" {
		c, err := plotkit.ParseColor(l.color)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = c
	}
	p.Add(s)
	if l.label != "" {
		p.Legend.Add(l.label, s)
	}
	return nil
}
