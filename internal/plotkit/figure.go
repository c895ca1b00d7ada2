package plotkit

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure is the multi-panel composite assembled from subplots. A figure owns
// its renderable state from BuildLayout until Close; Close is idempotent and
// must run even when saving fails.
type Figure struct {
	rows, cols    int
	width, height vg.Length
	title         string

	plots  []*Plot
	built  [][]*plot.Plot
	closed bool
}

// NewFigure creates a figure with a rows x cols panel grid and an overall
// size given in inches.
func NewFigure(rows, cols int, width, height float64) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("figure layout must be positive, got [%d, %d]", rows, cols)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("figure size must be positive, got [%g, %g]", width, height)
	}
	return &Figure{
		rows:   rows,
		cols:   cols,
		width:  vg.Length(width) * vg.Inch,
		height: vg.Length(height) * vg.Inch,
	}, nil
}

// SetPlots attaches the subplot list, in row-major panel order.
func (f *Figure) SetPlots(plots []*Plot) {
	f.plots = plots
}

// AddTitle sets the overall figure title.
func (f *Figure) AddTitle(title string) {
	f.title = title
}

// BuildLayout arranges the attached subplots into the panel grid, rendering
// each subplot's layers. Layer errors surface here, before any file is
// touched.
func (f *Figure) BuildLayout() error {
	if len(f.plots) > f.rows*f.cols {
		return fmt.Errorf("layout [%d, %d] has %d panels but %d plots were attached",
			f.rows, f.cols, f.rows*f.cols, len(f.plots))
	}

	f.built = make([][]*plot.Plot, f.rows)
	for r := range f.built {
		f.built[r] = make([]*plot.Plot, f.cols)
	}
	for i, p := range f.plots {
		gp, err := p.build()
		if err != nil {
			return err
		}
		f.built[i/f.cols][i%f.cols] = gp
	}
	return nil
}

// Close releases the figure's renderable state. Safe to call more than once.
func (f *Figure) Close() {
	f.built = nil
	f.plots = nil
	f.closed = true
}

// Save renders the figure and writes it to path on the given filesystem,
// creating parent directories as needed.
func (f *Figure) Save(fsys billy.Filesystem, path string, opts SaveOptions) error {
	if f.closed {
		return errors.New("figure is closed")
	}
	if f.built == nil {
		return errors.New("figure layout has not been built")
	}

	if opts.Transparent {
		for _, row := range f.built {
			for _, gp := range row {
				if gp != nil {
					gp.BackgroundColor = color.Transparent
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.render(&buf, opts); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	out, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, &buf); err != nil {
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	return nil
}

func (f *Figure) render(w io.Writer, opts SaveOptions) error {
	switch opts.Format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(f.width, f.height), vgimg.UseDPI(opts.DPI))
		f.draw(draw.New(c))
		var err error
		switch opts.Format {
		case "png":
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		case "jpg", "jpeg":
			_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
		default:
			_, err = vgimg.TiffCanvas{Canvas: c}.WriteTo(w)
		}
		return err
	case "svg":
		c := vgsvg.New(f.width, f.height)
		f.draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	case "pdf":
		c := vgpdf.New(f.width, f.height)
		f.draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		return &UnsupportedOptionError{Option: "figure file type: " + opts.Format}
	}
}

func (f *Figure) draw(dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows: f.rows,
		Cols: f.cols,
		PadX: vg.Points(8),
		PadY: vg.Points(8),
	}
	if f.title != "" {
		tiles.PadTop = vg.Points(26)
		sty := draw.TextStyle{
			Color:   color.Black,
			Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(15)},
			XAlign:  text.XCenter,
			YAlign:  text.YTop,
			Handler: text.Plain{Fonts: font.DefaultCache},
		}
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(2)}, f.title)
	}

	canvases := plot.Align(f.built, tiles, dc)
	for r := range f.built {
		for c := range f.built[r] {
			if f.built[r][c] != nil {
				f.built[r][c].Draw(canvases[r][c])
			}
		}
	}
}
