// Package vertical_line draws a reference line across the full height of a
// subplot.
package vertical_line

import (
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
	r.RegisterLayer("VerticalLine", New)
}

// Layer is a vertical reference line at a fixed X value.
type Layer struct {
	x         float64
	color     string
	lineWidth float64
	label     string
}

// New builds a vertical line layer from its descriptor. The x key is
// required.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	raw, ok := cfg.Get("x")
	if !ok {
		return nil, &config.StructureError{Key: "x", Msg: "vertical line layer must provide an x value"}
	}
	x, ok := floatValue(raw)
	if !ok {
		return nil, &config.StructureError{Key: "x", Msg: "must be a number"}
	}

	logger.Debug("Vertical line layer built.", "x", x)
	return &Layer{
		x:         x,
		color:     cfg.GetString("color", ""),
		lineWidth: cfg.GetFloat("linewidth", 1),
		label:     cfg.GetString("label", ""),
	}, nil
}

// AddTo renders the layer onto the plot.
func (l *Layer) AddTo(p *plot.Plot) error {
	style := plotter.DefaultLineStyle
	style.Width = vg.Points(l.lineWidth)
	if l.color != "" {
		c, err := plotkit.ParseColor(l.color)
		if err != nil {
			return err
		}
		style.Color = c
	}
	rule := &plotkit.VRule{X: l.x, LineStyle: style}
	p.Add(rule)
	if l.label != "" {
		p.Legend.Add(l.label, &plotter.Line{LineStyle: style})
	}
	return nil
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
