package plotkit

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/vk/eva/internal/config"
)

// Plot is one subplot: an ordered stack of layers plus the styling applied
// from configuration through ApplyOption.
type Plot struct {
	layers     []Layer
	projection string
	domain     string

	title  string
	xlabel string
	ylabel string
	xscale string
	yscale string
	grid   bool

	legend    bool
	legendLoc string
}

// NewPlot creates a subplot over the given layers. projection and domain may
// be empty when the plot has no map context.
func NewPlot(layers []Layer, projection, domain string) *Plot {
	return &Plot{layers: layers, projection: projection, domain: domain}
}

// Projection returns the map projection configured for this subplot, if any.
func (p *Plot) Projection() string { return p.projection }

// Domain returns the map domain configured for this subplot, if any.
func (p *Plot) Domain() string { return p.domain }

// optionFunc applies one configuration value to a subplot. The value follows
// the generic protocol: a mapping is the named-argument form, nil is a bare
// call, any other scalar is a single positional argument.
type optionFunc func(p *Plot, v any) error

var options = map[string]optionFunc{
	"add_title":  func(p *Plot, v any) error { return stringArg(&p.title, "label", v) },
	"add_xlabel": func(p *Plot, v any) error { return stringArg(&p.xlabel, "xlabel", v) },
	"add_ylabel": func(p *Plot, v any) error { return stringArg(&p.ylabel, "ylabel", v) },
	"add_grid": func(p *Plot, v any) error {
		p.grid = true
		return nil
	},
	"add_legend": func(p *Plot, v any) error {
		p.legend = true
		if m, ok := v.(*config.Config); ok {
			p.legendLoc = m.GetString("loc", "")
		}
		return nil
	},
	"set_xscale": func(p *Plot, v any) error { return scaleArg(&p.xscale, v) },
	"set_yscale": func(p *Plot, v any) error { return scaleArg(&p.yscale, v) },
}

// ApplyOption applies one named configuration option to the subplot. Unknown
// option names fail with an UnsupportedOptionError.
func (p *Plot) ApplyOption(name string, value any) error {
	fn, ok := options[name]
	if !ok {
		return &UnsupportedOptionError{Option: name}
	}
	if err := fn(p, value); err != nil {
		return fmt.Errorf("option %q: %w", name, err)
	}
	return nil
}

// stringArg extracts the single string argument of an option, accepting both
// the positional scalar form and the named-map form under key.
func stringArg(dst *string, key string, v any) error {
	switch t := v.(type) {
	case string:
		*dst = t
		return nil
	case *config.Config:
		if s, ok := t.Get(key); ok {
			if str, ok := s.(string); ok {
				*dst = str
				return nil
			}
		}
		return fmt.Errorf("named form requires a string %q argument", key)
	case nil:
		return nil
	default:
		return fmt.Errorf("expected a string argument, got %T", v)
	}
}

func scaleArg(dst *string, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string argument, got %T", v)
	}
	switch s {
	case "linear", "log":
		*dst = s
		return nil
	default:
		return fmt.Errorf("scale must be \"linear\" or \"log\", got %q", s)
	}
}

// build renders the subplot into a gonum plot. Each call produces a fresh
// plot owned by the caller.
func (p *Plot) build() (*plot.Plot, error) {
	gp := plot.New()
	gp.Title.Text = p.title
	gp.X.Label.Text = p.xlabel
	gp.Y.Label.Text = p.ylabel

	// A mapped subplot defaults its axes to geographic labels.
	if p.projection != "" {
		if gp.X.Label.Text == "" {
			gp.X.Label.Text = "Longitude"
		}
		if gp.Y.Label.Text == "" {
			gp.Y.Label.Text = "Latitude"
		}
	}

	if p.xscale == "log" {
		gp.X.Scale = plot.LogScale{}
		gp.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if p.yscale == "log" {
		gp.Y.Scale = plot.LogScale{}
		gp.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if p.grid {
		gp.Add(plotter.NewGrid())
	}

	for _, layer := range p.layers {
		if err := layer.AddTo(gp); err != nil {
			return nil, fmt.Errorf("adding plot layer: %w", err)
		}
	}

	if !p.legend {
		// Layers register legend entries as they are added; discard them when
		// the configuration never asked for a legend. The replacement must be
		// an initialized legend: a zero value carries a nil text handler and
		// Plot.Draw renders the legend unconditionally.
		gp.Legend = plot.NewLegend()
	} else {
		switch p.legendLoc {
		case "upper left":
			gp.Legend.Top, gp.Legend.Left = true, true
		case "upper right":
			gp.Legend.Top = true
		case "lower left":
			gp.Legend.Left = true
		}
	}

	return gp, nil
}
