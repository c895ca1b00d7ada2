package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToModuleName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		className string
		expected  string
	}{
		{name: "single word", className: "Scatter", expected: "scatter"},
		{name: "two words", className: "FigureDriver", expected: "figure_driver"},
		{name: "three words", className: "ObsCorrelationScatter", expected: "obs_correlation_scatter"},
		{name: "already lowercase", className: "scatter", expected: "scatter"},
		{name: "consecutive capitals", className: "ABTest", expected: "a_b_test"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got, err := ToModuleName(tc.className)

			// --- Assert ---
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestToModuleName_EmptyName(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := ToModuleName("")

	// --- Assert ---
	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	require.Contains(t, err.Error(), "must be a non-empty string")
}

func TestToModuleName_NonAlphabetic(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		className string
	}{
		{name: "digits", className: "abc123"},
		{name: "underscore", className: "Figure_Driver"},
		{name: "space", className: "Figure Driver"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			_, err := ToModuleName(tc.className)

			// --- Assert ---
			var nameErr *InvalidNameError
			require.ErrorAs(t, err, &nameErr)
			require.Contains(t, err.Error(), "only a-z A-Z characters allowed")
		})
	}
}
