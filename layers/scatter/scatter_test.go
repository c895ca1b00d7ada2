package scatter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
)

func collectionsFixture() *data.Collections {
	c := data.New()
	c.Add("observations", map[string][]float64{
		"temperature": {270.5, 271.2, 269.8},
		"pressure":    {1013.0, 1008.4, 1011.1},
		"short":       {1.0},
	})
	return c
}

func layerConfig(xVar, yVar string) *config.Config {
	return config.FromMap(map[string]any{
		"data": map[string]any{
			"collection": "observations",
			"x variable": xVar,
			"y variable": yVar,
		},
		"color":      "red",
		"markersize": 3,
		"label":      "obs",
	})
}

func TestNew_BuildsLayerFromCollections(t *testing.T) {
	t.Parallel()

	// --- Act ---
	layer, err := New(layerConfig("temperature", "pressure"), slog.Default(), collectionsFixture())

	// --- Assert ---
	require.NoError(t, err)

	p := plot.New()
	require.NoError(t, layer.AddTo(p))
}

func TestNew_MissingDataSection(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.FromMap(map[string]any{"color": "red"})

	// --- Act ---
	_, err := New(cfg, slog.Default(), collectionsFixture())

	// --- Assert ---
	var structErr *config.StructureError
	require.ErrorAs(t, err, &structErr)
}

func TestNew_UnknownVariable(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := New(layerConfig("temperature", "humidity"), slog.Default(), collectionsFixture())

	// --- Assert ---
	require.ErrorContains(t, err, `has no variable "humidity"`)
}

func TestNew_MismatchedLengths(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := New(layerConfig("temperature", "short"), slog.Default(), collectionsFixture())

	// --- Assert ---
	require.ErrorContains(t, err, "different lengths")
}

func TestAddTo_InvalidColor(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.FromMap(map[string]any{
		"data": map[string]any{
			"collection": "observations",
			"x variable": "temperature",
			"y variable": "pressure",
		},
		"color": "not-a-color",
	})
	layer, err := New(cfg, slog.Default(), collectionsFixture())
	require.NoError(t, err)

	// --- Act ---
	addErr := layer.AddTo(plot.New())

	// --- Assert ---
	require.ErrorContains(t, addErr, "unknown color")
}
