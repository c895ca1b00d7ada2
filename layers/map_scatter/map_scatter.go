// Package map_scatter draws a variable at its longitude/latitude positions on
// a mapped subplot.
package map_scatter

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
	r.RegisterLayer("MapScatter", New)
}

// Layer is a geographic scatter of observation positions.
type Layer struct {
	lons, lats []float64
	color      string
	markerSize float64
	label      string
}

// New builds a map scatter layer from its descriptor. The data section names
// the collection and its longitude/latitude variables.
func New(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	dataCfg, ok := cfg.GetSection("data")
	if !ok {
		return nil, &config.StructureError{Key: "data", Msg: "map scatter layer must provide a data section"}
	}
	collection := dataCfg.GetString("collection", "")
	lonVar := dataCfg.GetString("longitude variable", "longitude")
	latVar := dataCfg.GetString("latitude variable", "latitude")

	lons, err := collections.Variable(collection, lonVar)
	if err != nil {
		return nil, err
	}
	lats, err := collections.Variable(collection, latVar)
	if err != nil {
		return nil, err
	}
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("map scatter: %q and %q have different lengths (%d and %d)", lonVar, latVar, len(lons), len(lats))
	}

	logger.Debug("Map scatter layer built.", "collection", collection, "points", len(lons))
	return &Layer{
		lons:       lons,
		lats:       lats,
		color:      cfg.GetString("color", ""),
		markerSize: cfg.GetFloat("markersize", 2),
		label:      cfg.GetString("label", ""),
	}, nil
}

// AddTo renders the layer onto the plot.
func (l *Layer) AddTo(p *plot.Plot) error {
	pts := make(plotter.XYs, len(l.lons))
	for i := range l.lons {
		pts[i].X, pts[i].Y = l.lons[i], l.lats[i]
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
