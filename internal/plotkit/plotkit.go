// Package plotkit provides the renderable plotting primitives the figure
// assembler composes: subplots built from layers, an option dispatch driven
// by configuration, and multi-panel figures rendered through gonum/plot and
// saved through a billy filesystem.
package plotkit

import (
	"fmt"

	"gonum.org/v1/plot"
)

// Layer is one visual element of a subplot. A layer adds its renderable
// plotters (and any legend entries) to a gonum plot.
type Layer interface {
	AddTo(p *plot.Plot) error
}

// UnsupportedOptionError reports a configuration option the target object
// does not support.
type UnsupportedOptionError struct {
	Option string
}

// Error implements the error interface for UnsupportedOptionError.
func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("unsupported option %q", e.Option)
}
