package app

import (
	"github.com/vk/eva/diagnostics/figure_driver"
	"github.com/vk/eva/diagnostics/obs_correlation_scatter"
	"github.com/vk/eva/internal/registry"
	"github.com/vk/eva/layers/histogram"
	"github.com/vk/eva/layers/horizontal_line"
	"github.com/vk/eva/layers/line_plot"
	"github.com/vk/eva/layers/map_scatter"
	"github.com/vk/eva/layers/scatter"
	"github.com/vk/eva/layers/vertical_line"
)

// coreModules is the definitive list of all modules that are compiled into
// the eva binary.
var coreModules = []registry.Module{
	&figure_driver.Module{},
	&obs_correlation_scatter.Module{},
	&scatter.Module{},
	&line_plot.Module{},
	&histogram.Module{},
	&horizontal_line.Module{},
	&vertical_line.Module{},
	&map_scatter.Module{},
}
