package plotkit

import (
	"image/color"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/vk/eva/internal/config"
)

func TestApplyOption_Dispatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		option   string
		value    any
		validate func(t *testing.T, p *Plot)
	}{
		{
			name:   "title from positional scalar",
			option: "add_title",
			value:  "Vertical Velocity",
			validate: func(t *testing.T, p *Plot) {
				require.Equal(t, "Vertical Velocity", p.title)
			},
		},
		{
			name:   "title from named mapping",
			option: "add_title",
			value:  config.FromPairs([]config.Pair{{Key: "label", Value: "Wind Speed"}}),
			validate: func(t *testing.T, p *Plot) {
				require.Equal(t, "Wind Speed", p.title)
			},
		},
		{
			name:   "grid from bare call",
			option: "add_grid",
			value:  nil,
			validate: func(t *testing.T, p *Plot) {
				require.True(t, p.grid)
			},
		},
		{
			name:   "axis labels",
			option: "add_xlabel",
			value:  "Longitude",
			validate: func(t *testing.T, p *Plot) {
				require.Equal(t, "Longitude", p.xlabel)
			},
		},
		{
			name:   "log scale",
			option: "set_yscale",
			value:  "log",
			validate: func(t *testing.T, p *Plot) {
				require.Equal(t, "log", p.yscale)
			},
		},
		{
			name:   "legend with location",
			option: "add_legend",
			value:  config.FromPairs([]config.Pair{{Key: "loc", Value: "upper left"}}),
			validate: func(t *testing.T, p *Plot) {
				require.True(t, p.legend)
				require.Equal(t, "upper left", p.legendLoc)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			p := NewPlot(nil, "", "")

			// --- Act ---
			err := p.ApplyOption(tc.option, tc.value)

			// --- Assert ---
			require.NoError(t, err)
			tc.validate(t, p)
		})
	}
}

func TestApplyOption_UnknownOption(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := NewPlot(nil, "", "")

	// --- Act ---
	err := p.ApplyOption("add_sparkles", nil)

	// --- Assert ---
	var optErr *UnsupportedOptionError
	require.ErrorAs(t, err, &optErr)
}

func TestApplyOption_InvalidScale(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := NewPlot(nil, "", "")

	// --- Act ---
	err := p.ApplyOption("set_xscale", "cubic")

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), `option "set_xscale"`)
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	// --- Act / Assert ---
	c, err := ParseColor("Red")
	require.NoError(t, err)
	require.Equal(t, namedColors["red"], c)

	c, err = ParseColor("#102030")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	c, err = ParseColor("#10203080")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, c)

	_, err = ParseColor("vermilion-ish")
	require.Error(t, err)
}

func TestParseSaveOptions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.FromPairs([]config.Pair{
		{Key: "format", Value: "svg"},
		{Key: "dpi", Value: 300},
		{Key: "transparent", Value: true},
	})

	// --- Act ---
	opts, err := ParseSaveOptions(cfg)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, SaveOptions{Format: "svg", DPI: 300, Transparent: true}, opts)
}

func TestParseSaveOptions_Defaults(t *testing.T) {
	t.Parallel()

	// --- Act ---
	opts, err := ParseSaveOptions(config.FromPairs(nil))

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, SaveOptions{Format: "png", DPI: 96}, opts)
}

func TestParseSaveOptions_UnknownKey(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := config.FromPairs([]config.Pair{{Key: "quality", Value: 80}})

	// --- Act ---
	_, err := ParseSaveOptions(cfg)

	// --- Assert ---
	var optErr *UnsupportedOptionError
	require.ErrorAs(t, err, &optErr)
	require.Equal(t, "quality", optErr.Option)
}

func TestNewFigure_Validation(t *testing.T) {
	t.Parallel()

	// --- Act / Assert ---
	_, err := NewFigure(0, 1, 8, 6)
	require.ErrorContains(t, err, "layout must be positive")

	_, err = NewFigure(1, 1, 8, -6)
	require.ErrorContains(t, err, "size must be positive")
}

func TestBuildLayout_TooManyPlots(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fig, err := NewFigure(1, 1, 8, 6)
	require.NoError(t, err)
	fig.SetPlots([]*Plot{NewPlot(nil, "", ""), NewPlot(nil, "", "")})

	// --- Act ---
	buildErr := fig.BuildLayout()

	// --- Assert ---
	require.ErrorContains(t, buildErr, "has 1 panels but 2 plots were attached")
}

func TestSave_RequiresBuiltLayout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fig, err := NewFigure(1, 1, 8, 6)
	require.NoError(t, err)

	// --- Act ---
	saveErr := fig.Save(nil, "/out/figure.png", SaveOptions{Format: "png", DPI: 96})

	// --- Assert ---
	require.ErrorContains(t, saveErr, "layout has not been built")
}

// ruleLayer stands in for a data layer so rendering can run without
// observation data.
type ruleLayer struct{}

func (ruleLayer) AddTo(p *plot.Plot) error {
	p.Add(&HRule{Y: 1, LineStyle: plotter.DefaultLineStyle})
	return nil
}

func TestSave_PlotWithoutLegendRenders(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// No add_legend option is applied, the common case for batch figures.
	p := NewPlot([]Layer{ruleLayer{}}, "", "")
	fig, err := NewFigure(1, 1, 4, 3)
	require.NoError(t, err)
	fig.SetPlots([]*Plot{p})
	require.NoError(t, fig.BuildLayout())

	fs := memfs.New()

	// --- Act ---
	saveErr := fig.Save(fs, "/out/no_legend.png", SaveOptions{Format: "png", DPI: 96})

	// --- Assert ---
	require.NoError(t, saveErr)
	info, statErr := fs.Stat("/out/no_legend.png")
	require.NoError(t, statErr)
	require.Positive(t, info.Size())
}

func TestSave_ClosedFigure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	fig, err := NewFigure(1, 1, 8, 6)
	require.NoError(t, err)
	require.NoError(t, fig.BuildLayout())
	fig.Close()
	fig.Close() // idempotent

	// --- Act ---
	saveErr := fig.Save(nil, "/out/figure.png", SaveOptions{Format: "png", DPI: 96})

	// --- Assert ---
	require.ErrorContains(t, saveErr, "figure is closed")
}
