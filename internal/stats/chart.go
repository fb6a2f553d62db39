package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelHigh       = "max"
	axisLabelLow        = "min"
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

var seriesColors = []lipgloss.Color{"6", "5", "3", "2", "4"}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	axis := runewidth.StringWidth(axisLabelHigh) + runewidth.StringWidth(axisSeparator)
	return max(totalWidth-axis, minPlotWidth)
}

// TerminalWidth reports the width of stdout, or a fallback when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// PlotSeries renders each series scaled to its own range as braille dots.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, useColor bool) error {
	var plotted []Series
	for _, s := range series {
		if len(s.Values) > 0 {
			plotted = append(plotted, s)
		}
	}
	if len(plotted) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth())
	}
	width = max(width, minPlotWidth)

	renderer := lipgloss.NewRenderer(w)
	grids := make([][][]uint8, len(plotted))
	var header []string
	for i, s := range plotted {
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		if math.Abs(hi-lo) < 1e-9 {
			lo, hi = lo-1, hi+1
		}
		grids[i] = plotDots(values, lo, hi, width, height)
		header = append(header, fmt.Sprintf("%s: min=%.2f max=%.2f", s.Name, lo, hi))
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	for _, line := range header {
		b.WriteString(line + "\n")
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisLabelHigh
		case height - 1:
			label = axisLabelLow
		}
		b.WriteString(fmt.Sprintf("%*s%s", runewidth.StringWidth(axisLabelHigh), label, axisSeparator))
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, grid := range grids {
				if grid[y][x] != 0 {
					mask |= grid[y][x]
					if owner < 0 {
						owner = i
					}
				}
			}
			cell := string(rune(0x2800 + int(mask)))
			if useColor && owner >= 0 {
				cell = renderer.NewStyle().Foreground(seriesColors[owner%len(seriesColors)]).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	legend := make([]string, len(plotted))
	for i, s := range plotted {
		legend[i] = "⠉ " + s.Name
		if useColor {
			legend[i] = renderer.NewStyle().Foreground(seriesColors[i%len(seriesColors)]).Render(legend[i])
		}
	}
	b.WriteString("Legend: " + strings.Join(legend, "  ") + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := min(int(pos), n-2)
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

// braille dot bits indexed by [dy][dx] within a 2x4 cell.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func plotDots(values []float64, lo, hi float64, width, height int) [][]uint8 {
	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	dotRows := height * 4
	rowOf := func(v float64) int {
		pos := (v - lo) / (hi - lo)
		return max(0, min(int(math.Round((1-pos)*float64(dotRows-1))), dotRows-1))
	}
	set := func(x, y int) {
		grid[y/4][x/2] |= brailleBits[y%4][x%2]
	}
	prev := -1
	for x, v := range values {
		row := rowOf(v)
		px := x * 2
		set(px, row)
		if prev >= 0 {
			// Fill the vertical gap so steep changes stay connected.
			for y := min(prev, row); y <= max(prev, row); y++ {
				set(px, y)
			}
		}
		set(px+1, row)
		prev = row
	}
	return grid
}
