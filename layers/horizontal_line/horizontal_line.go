// Package horizontal_line draws a reference line across the full width of a
// subplot.
package horizontal_line

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
	r.RegisterLayer("HorizontalLine", New)
}

// Layer is a horizontal reference line at a fixed Y value.
type Layer struct {
	y         float64
	color     string
	lineWidth float64
	label     string
}

// New builds a horizontal line layer from its descriptor. The y key is
// required.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	raw, ok := cfg.Get("y")
	if !ok {
		return nil, &config.StructureError{Key: "y", Msg: "horizontal line layer must provide a y value"}
	}
	y, ok := floatValue(raw)
	if !ok {
		return nil, &config.StructureError{Key: "y", Msg: "must be a number"}
	}

	logger.Debug("Horizontal line layer built.", "y", y)
	return &Layer{
		y:         y,
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
	rule := &plotkit.HRule{Y: l.y, LineStyle: style}
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
