// Package plot renders terminal scatter plots of a catalog with the fitted
// Hubble line overlaid, and text histograms for the inspect command.
package plot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

type Theme struct {
	Point lipgloss.Style
	Line  lipgloss.Style
	Axis  lipgloss.Style
	Label lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Point: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Line:  lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Axis:  lipgloss.NewStyle().Faint(true),
		Label: lipgloss.NewStyle().Bold(true),
	}
}

// PlainTheme renders without escape codes, for tests and non-TTY output.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{Point: s, Line: s, Axis: s, Label: s}
}

type Renderer struct {
	Width  int
	Height int
	Theme  Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 64, Height: 20, Theme: DefaultTheme()}
}

// Scatter draws the catalog's (distance, velocity) points as 'o' and the fit
// curve, given as parallel (curveD, curveV) samples, as '·'. An empty curve
// plots the data alone.
func (r *Renderer) Scatter(cat domain.Catalog, curveD, curveV []float64) string {
	if cat.Len() == 0 || len(curveD) != len(curveV) {
		return ""
	}

	w, h := r.Width, r.Height
	if w < 16 {
		w = 16
	}
	if h < 8 {
		h = 8
	}

	maxD := cat.MaxDistance()
	maxV := cat.VelocitiesKms[0]
	for _, v := range cat.VelocitiesKms[1:] {
		if v > maxV {
			maxV = v
		}
	}
	for i := range curveD {
		if curveD[i] > maxD {
			maxD = curveD[i]
		}
		if curveV[i] > maxV {
			maxV = curveV[i]
		}
	}
	if maxD <= 0 || maxV <= 0 {
		return ""
	}

	// grid[row][col], row 0 at the top
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	set := func(d, v float64, mark rune) {
		col := int(d / maxD * float64(w-1))
		row := h - 1 - int(v/maxV*float64(h-1))
		if col < 0 || col >= w || row < 0 || row >= h {
			return
		}
		// data points win over the fit line
		if grid[row][col] == 'o' && mark != 'o' {
			return
		}
		grid[row][col] = mark
	}

	for i := range curveD {
		set(curveD[i], curveV[i], '·')
	}
	for i := 0; i < cat.Len(); i++ {
		set(cat.DistancesMpc[i], cat.VelocitiesKms[i], 'o')
	}

	var b strings.Builder
	b.WriteString(r.Theme.Label.Render("velocity [km/s]"))
	b.WriteByte('\n')
	for _, row := range grid {
		b.WriteString(r.Theme.Axis.Render("│"))
		b.WriteString(r.styleRow(string(row)))
		b.WriteByte('\n')
	}
	b.WriteString(r.Theme.Axis.Render("└" + strings.Repeat("─", w)))
	b.WriteByte('\n')
	b.WriteString(r.Theme.Label.Render(fmt.Sprintf("0 … %.0f Mpc", maxD)))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) styleRow(row string) string {
	var b strings.Builder
	for _, c := range row {
		switch c {
		case 'o':
			b.WriteString(r.Theme.Point.Render("o"))
		case '·':
			b.WriteString(r.Theme.Line.Render("·"))
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Histogram renders horizontal bars, one per bin, scaled to barWidth.
func (r *Renderer) Histogram(bins []HistogramBin, barWidth int) string {
	if len(bins) == 0 {
		return ""
	}
	if barWidth <= 0 {
		barWidth = 40
	}

	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		return ""
	}

	var b strings.Builder
	for _, bin := range bins {
		n := bin.Count * barWidth / maxCount
		bar := strings.Repeat("█", n)
		b.WriteString(fmt.Sprintf("%10.1f – %-10.1f ", bin.Lo, bin.Hi))
		b.WriteString(r.Theme.Point.Render(bar))
		b.WriteString(fmt.Sprintf(" %d\n", bin.Count))
	}
	return b.String()
}

// HistogramBin mirrors the usecase bucket shape without importing it, keeping
// the renderer dependency-free from the pipeline packages.
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}
