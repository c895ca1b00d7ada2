package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/naming"
	"github.com/vk/eva/internal/plotkit"
)

// Diagnostic is the contract every diagnostic implementation satisfies: one
// unit of work, constructed from configuration, executed once.
type Diagnostic interface {
	Execute(ctx context.Context, collections *data.Collections) error
}

// DiagnosticFactory constructs a diagnostic from its class name, its
// configuration, and a logger.
type DiagnosticFactory func(name string, cfg *config.Config, logger *slog.Logger) (Diagnostic, error)

// LayerFactory constructs a plot layer from its descriptor, a logger, and
// the data collections.
type LayerFactory func(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error)

// Module is the interface all diagnostic and layer packages implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps normalized module names to the class types they provide.
type Registry struct {
	diagnostics map[string]map[string]DiagnosticFactory
	layers      map[string]map[string]LayerFactory
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		diagnostics: make(map[string]map[string]DiagnosticFactory),
		layers:      make(map[string]map[string]LayerFactory),
	}
}

// ModuleResolutionError reports a class name whose module has no registered
// implementation.
type ModuleResolutionError struct {
	Class  string
	Module string
}

// Error implements the error interface for ModuleResolutionError.
func (e *ModuleResolutionError) Error() string {
	return fmt.Sprintf("no module %q registered for class %q", e.Module, e.Class)
}

// TypeResolutionError reports a module that is registered but does not
// provide the requested type.
type TypeResolutionError struct {
	Class  string
	Module string
}

// Error implements the error interface for TypeResolutionError.
func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("module %q does not provide type %q", e.Module, e.Class)
}

// RegisterDiagnostic registers a diagnostic factory under its class name.
// Invalid names and duplicate registrations are programmer errors and panic.
func (r *Registry) RegisterDiagnostic(className string, factory DiagnosticFactory) {
	module := mustModuleName(className)
	if _, exists := r.diagnostics[module][className]; exists {
		panic(fmt.Sprintf("diagnostic %q already registered", className))
	}
	slog.Debug("Registering diagnostic.", "class", className, "module", module)
	if r.diagnostics[module] == nil {
		r.diagnostics[module] = make(map[string]DiagnosticFactory)
	}
	r.diagnostics[module][className] = factory
}

// RegisterLayer registers a plot-layer factory under its class name.
// Invalid names and duplicate registrations are programmer errors and panic.
func (r *Registry) RegisterLayer(className string, factory LayerFactory) {
	module := mustModuleName(className)
	if _, exists := r.layers[module][className]; exists {
		panic(fmt.Sprintf("plot layer %q already registered", className))
	}
	slog.Debug("Registering plot layer.", "class", className, "module", module)
	if r.layers[module] == nil {
		r.layers[module] = make(map[string]LayerFactory)
	}
	r.layers[module][className] = factory
}

// NewDiagnostic resolves className and constructs the diagnostic with the
// three-argument construction contract (name, configuration, logger).
func (r *Registry) NewDiagnostic(className string, cfg *config.Config, logger *slog.Logger) (Diagnostic, error) {
	factory, err := lookup(r.diagnostics, className)
	if err != nil {
		return nil, err
	}
	return factory(className, cfg, logger)
}

// NewLayer resolves className and constructs the plot layer with the layer
// construction contract (descriptor, logger, data collections).
func (r *Registry) NewLayer(className string, cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	factory, err := lookup(r.layers, className)
	if err != nil {
		return nil, err
	}
	return factory(cfg, logger, collections)
}

func lookup[F any](table map[string]map[string]F, className string) (F, error) {
	var zero F
	module, err := naming.ToModuleName(className)
	if err != nil {
		return zero, err
	}
	types, ok := table[module]
	if !ok {
		return zero, &ModuleResolutionError{Class: className, Module: module}
	}
	factory, ok := types[className]
	if !ok {
		return zero, &TypeResolutionError{Class: className, Module: module}
	}
	return factory, nil
}

func mustModuleName(className string) string {
	module, err := naming.ToModuleName(className)
	if err != nil {
		panic(err)
	}
	return module
}
