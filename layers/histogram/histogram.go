// Package histogram bins a single variable into a frequency plot.
package histogram

import (
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/plotkit"
	"github.com/vk/eva/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the layer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterLayer("Histogram", New)
}

// Layer is a histogram of a single variable.
type Layer struct {
	values []float64
	bins   int
	color  string
	label  string
}

// New builds a histogram layer from its descriptor. The data section names
// the collection and the variable; bins defaults to 10.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	dataCfg, ok := cfg.GetSection("data")
	if !ok {
		return nil, &config.StructureError{Key: "data", Msg: "histogram layer must provide a data section"}
	}
	collection := dataCfg.GetString("collection", "")
	variable := dataCfg.GetString("variable", "")

	values, err := collections.Variable(collection, variable)
	if err != nil {
		return nil, err
	}

	logger.Debug("Histogram layer built.", "collection", collection, "variable", variable, "points", len(values))
	return &Layer{
		values: values,
		bins:   cfg.GetInt("bins", 10),
		color:  cfg.GetString("color", ""),
		label:  cfg.GetString("label", ""),
	}, nil
}

// AddTo renders the layer onto the plot.
func (l *Layer) AddTo(p *plot.Plot) error {
	h, err := plotter.NewHist(plotter.Values(l.values), l.bins)
	if err != nil {
		return err
	}
	if l.color != "" {
		c, err := plotkit.ParseColor(l.color)
		if err != nil {
			return err
		}
		h.FillColor = c
	}
	p.Add(h)
	if l.label != "" {
		p.Legend.Add(l.label, h)
	}
	return nil
}
