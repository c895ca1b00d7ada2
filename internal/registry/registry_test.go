package registry

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/naming"
	"github.com/vk/eva/internal/plotkit"
)

type noopDiagnostic struct{}

func (noopDiagnostic) Execute(ctx context.Context, collections *data.Collections) error {
	return nil
}

func noopDiagnosticFactory(name string, cfg *config.Config, logger *slog.Logger) (Diagnostic, error) {
	return noopDiagnostic{}, nil
}

func noopLayerFactory(cfg *config.Config, logger *slog.Logger, collections *data.Collections) (plotkit.Layer, error) {
	return nil, nil
}

func TestNewDiagnostic_ResolvesRegisteredClass(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterDiagnostic("FigureDriver", noopDiagnosticFactory)

	// --- Act ---
	diag, err := r.NewDiagnostic("FigureDriver", config.FromPairs(nil), slog.Default())

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, diag)
}

func TestNewDiagnostic_UnregisteredModule(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()

	// --- Act ---
	_, err := r.NewDiagnostic("FigureDriver", config.FromPairs(nil), slog.Default())

	// --- Assert ---
	var modErr *ModuleResolutionError
	require.ErrorAs(t, err, &modErr)
	require.Equal(t, "figure_driver", modErr.Module)
}

func TestNewLayer_ModuleWithoutType(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// "linePlot" and "LinePlot" normalize to the same module name, so the
	// module resolves but the requested type does not.
	r := New()
	r.RegisterLayer("linePlot", noopLayerFactory)

	// --- Act ---
	_, err := r.NewLayer("LinePlot", config.FromPairs(nil), slog.Default(), data.New())

	// --- Assert ---
	var typeErr *TypeResolutionError
	require.ErrorAs(t, err, &typeErr)
}

func TestNewDiagnostic_InvalidClassName(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()

	// --- Act ---
	_, err := r.NewDiagnostic("Figure123", config.FromPairs(nil), slog.Default())

	// --- Assert ---
	var nameErr *naming.InvalidNameError
	require.ErrorAs(t, err, &nameErr)
}

func TestRegisterDiagnostic_DuplicatePanics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	r.RegisterDiagnostic("FigureDriver", noopDiagnosticFactory)

	// --- Act / Assert ---
	require.PanicsWithValue(t, `diagnostic "FigureDriver" already registered`, func() {
		r.RegisterDiagnostic("FigureDriver", noopDiagnosticFactory)
	})
}

func TestRegisterLayer_InvalidNamePanics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()

	// --- Act / Assert ---
	require.Panics(t, func() {
		r.RegisterLayer("bad name", noopLayerFactory)
	})
}
