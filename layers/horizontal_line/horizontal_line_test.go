package horizontal_line

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
)

func TestNew_RequiresY(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := New(config.FromPairs(nil), slog.Default(), data.New())

	// --- Assert ---
	var structErr *config.StructureError
	require.ErrorAs(t, err, &structErr)
	require.Contains(t, err.Error(), "must provide a y value")
}

func TestNew_AcceptsIntAndFloat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value any
	}{
		{name: "float", value: 1.5},
		{name: "int", value: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			cfg := config.FromPairs([]config.Pair{{Key: "y", Value: tc.value}})

			// --- Act ---
			layer, err := New(cfg, slog.Default(), data.New())

			// --- Assert ---
			require.NoError(t, err)
			require.NoError(t, layer.AddTo(plot.New()))
		})
	}
}

func TestNew_RejectsNonNumericY(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.FromPairs([]config.Pair{{Key: "y", Value: "zero"}})

	// --- Act ---
	_, err := New(cfg, slog.Default(), data.New())

	// --- Assert ---
	require.ErrorContains(t, err, "must be a number")
}
