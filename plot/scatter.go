package plot

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smallnest/scalargrad/dataset"
)

// Options controls chart geometry. The zero value is replaced by
// DefaultOptions.
type Options struct {
	Width  int
	Height int

	XMin, XMax float64
	YMin, YMax float64

	Title string
}

// DefaultOptions covers the [-2, 2] x [-2, 2] window the moons dataset
// lives in.
func DefaultOptions() Options {
	return Options{
		Width:  64,
		Height: 24,
		XMin:   -2, XMax: 2,
		YMin: -2, YMax: 2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.XMin == o.XMax {
		o.XMin, o.XMax = d.XMin, d.XMax
	}
	if o.YMin == o.YMax {
		o.YMin, o.YMax = d.YMin, d.YMax
	}
	return o
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Faint(true)
	class0Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))  // blue
	class1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	regionNeg   = lipgloss.NewStyle().Foreground(lipgloss.Color("24"))
	regionPos   = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
)

const (
	pointGlyph  = "●"
	regionGlyph = "·"
)

// Scatter renders the datapoints colored by label (0 or 1).
func Scatter(xs []dataset.Point, ys []float64, opts Options) string {
	opts = opts.withDefaults()
	grid := newGrid(opts)
	grid.plotPoints(xs, ys)
	return grid.render(opts.Title)
}

// DecisionRegions renders the sign of predict over the window as shaded
// background, with the labeled datapoints on top. predict is typically a
// trained model's raw score for the point.
func DecisionRegions(predict func(x, y float64) float64, xs []dataset.Point, ys []float64, opts Options) string {
	opts = opts.withDefaults()
	grid := newGrid(opts)

	for row := 0; row < opts.Height; row++ {
		for col := 0; col < opts.Width; col++ {
			x, y := grid.dataCoords(col, row)
			if predict(x, y) > 0 {
				grid.cells[row][col] = regionPos.Render(regionGlyph)
			} else {
				grid.cells[row][col] = regionNeg.Render(regionGlyph)
			}
		}
	}
	grid.plotPoints(xs, ys)
	return grid.render(opts.Title)
}

// grid is a character raster over the data window. Row 0 is the top of the
// chart, so the y axis is flipped when mapping.
type grid struct {
	opts  Options
	cells [][]string
}

func newGrid(opts Options) *grid {
	cells := make([][]string, opts.Height)
	for i := range cells {
		row := make([]string, opts.Width)
		for j := range row {
			row[j] = " "
		}
		cells[i] = row
	}
	return &grid{opts: opts, cells: cells}
}

// cellCoords maps a datapoint to a cell, reporting false when it falls
// outside the window.
func (g *grid) cellCoords(p dataset.Point) (col, row int, ok bool) {
	o := g.opts
	col = int((p.X - o.XMin) / (o.XMax - o.XMin) * float64(o.Width))
	row = int((o.YMax - p.Y) / (o.YMax - o.YMin) * float64(o.Height))
	if col < 0 || col >= o.Width || row < 0 || row >= o.Height {
		return 0, 0, false
	}
	return col, row, true
}

// dataCoords maps a cell center back into data space.
func (g *grid) dataCoords(col, row int) (x, y float64) {
	o := g.opts
	x = o.XMin + (float64(col)+0.5)/float64(o.Width)*(o.XMax-o.XMin)
	y = o.YMax - (float64(row)+0.5)/float64(o.Height)*(o.YMax-o.YMin)
	return x, y
}

func (g *grid) plotPoints(xs []dataset.Point, ys []float64) {
	for i, p := range xs {
		col, row, ok := g.cellCoords(p)
		if !ok {
			continue
		}
		style := class0Style
		if ys[i] > 0.5 {
			style = class1Style
		}
		g.cells[row][col] = style.Render(pointGlyph)
	}
}

func (g *grid) render(title string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
	}
	hr := borderStyle.Render("+" + strings.Repeat("-", g.opts.Width) + "+")
	sb.WriteString(hr)
	sb.WriteString("\n")
	wall := borderStyle.Render("|")
	for _, row := range g.cells {
		sb.WriteString(wall)
		sb.WriteString(strings.Join(row, ""))
		sb.WriteString(wall)
		sb.WriteString("\n")
	}
	sb.WriteString(hr)
	return sb.String()
}
