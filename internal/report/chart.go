// Package report renders analysis results for the console.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// BarSeries represents values drawn as vertical bars.
type BarSeries struct {
	Name   string
	Values []float64
}

// OverlaySeries represents values drawn as point markers over the bars.
type OverlaySeries struct {
	Name   string
	Values []float64
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultChartHeight  = 12
	minChartWidth       = 18
	maxValueHeadroom    = 1.25
	axisLabelBottom     = "0%"
	axisSeparator       = " │ "
	markerRune          = '◆'
	barRune             = '█'
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

const (
	cellEmpty = iota
	cellBar
	cellMarker
	cellLabel
)

var eighthBlocks = []rune("▁▂▃▄▅▆▇█")

var (
	barColor    = ansiColor{name: "cyan", code: "\x1b[36m"}
	markerColor = ansiColor{name: "magenta", code: "\x1b[35m"}
)

// PlotBars renders a labeled vertical bar chart with an overlay series.
func PlotBars(w io.Writer, title string, bars BarSeries, overlay OverlaySeries, labels []string, width, height int) error {
	return plotBars(w, title, bars, overlay, labels, width, height, false)
}

// PlotBarsWithColor renders a bar chart with optional forced color output.
func PlotBarsWithColor(w io.Writer, title string, bars BarSeries, overlay OverlaySeries, labels []string, width, height int, forceColor bool) error {
	return plotBars(w, title, bars, overlay, labels, width, height, forceColor)
}

func plotBars(w io.Writer, title string, bars BarSeries, overlay OverlaySeries, labels []string, width, height int, forceColor bool) error {
	n := len(bars.Values)
	if n == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if width <= 0 {
		width = terminalWidth()
	}

	maxVal := seriesMax(bars.Values, overlay.Values) * maxValueHeadroom
	if maxVal <= 0 {
		maxVal = 1
	}
	axisLabels, leftAxisWidth := makeAxisLabels(height, maxVal)

	chartWidth := ChartWidthFor(width, leftAxisWidth)
	slotWidth := chartWidth / n
	if slotWidth < 2 {
		slotWidth = 2
	}
	barWidth := slotWidth - 1
	chartWidth = slotWidth * n

	cells := make([][]rune, height)
	kinds := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]rune, chartWidth)
		kinds[y] = make([]uint8, chartWidth)
		for x := 0; x < chartWidth; x++ {
			cells[y][x] = ' '
		}
	}

	for i, v := range bars.Values {
		x0 := i * slotWidth
		topRow := drawBar(cells, kinds, x0, barWidth, v, maxVal, height)
		drawBarLabel(cells, kinds, x0, barWidth, topRow, v)
	}
	for i := 0; i < n && i < len(overlay.Values); i++ {
		x := i*slotWidth + barWidth/2
		row := valueToRow(overlay.Values[i], maxVal, height)
		cells[row][x] = markerRune
		kinds[row][x] = cellMarker
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		prefix := fmt.Sprintf("%*s%s", leftAxisWidth, axisLabels[y], axisSeparator)
		var row strings.Builder
		row.WriteString(prefix)
		for x := 0; x < chartWidth; x++ {
			writeCell(&row, cells[y][x], kinds[y][x], useColor)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, renderDigitAxis(labels, n, slotWidth, leftAxisWidth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, renderBarLegend(bars.Name, overlay.Name, useColor)); err != nil {
		return err
	}
	return nil
}

func drawBar(cells [][]rune, kinds [][]uint8, x0, barWidth int, v, maxVal float64, height int) int {
	levels := int(math.Round(v / maxVal * float64(height*8)))
	if levels < 0 {
		levels = 0
	}
	if levels > height*8 {
		levels = height * 8
	}
	full := levels / 8
	rem := levels % 8
	for y := height - full; y < height; y++ {
		fillBarRow(cells, kinds, y, x0, barWidth, barRune)
	}
	topRow := height - full
	if rem > 0 {
		topRow--
		fillBarRow(cells, kinds, topRow, x0, barWidth, eighthBlocks[rem-1])
	}
	return topRow
}

func fillBarRow(cells [][]rune, kinds [][]uint8, y, x0, barWidth int, ch rune) {
	if y < 0 || y >= len(cells) {
		return
	}
	for x := x0; x < x0+barWidth && x < len(cells[y]); x++ {
		cells[y][x] = ch
		kinds[y][x] = cellBar
	}
}

func drawBarLabel(cells [][]rune, kinds [][]uint8, x0, barWidth, topRow int, v float64) {
	label := fmt.Sprintf("%.1f", v)
	row := topRow - 1
	if row < 0 || row >= len(cells) || len(label) > barWidth {
		return
	}
	start := x0 + (barWidth-len(label))/2
	for i, ch := range label {
		x := start + i
		if x < 0 || x >= len(cells[row]) {
			continue
		}
		cells[row][x] = ch
		kinds[row][x] = cellLabel
	}
}

func writeCell(b *strings.Builder, ch rune, kind uint8, useColor bool) {
	if useColor {
		switch kind {
		case cellBar:
			b.WriteString(barColor.code)
			b.WriteRune(ch)
			b.WriteString(colorReset)
			return
		case cellMarker:
			b.WriteString(markerColor.code)
			b.WriteRune(ch)
			b.WriteString(colorReset)
			return
		}
	}
	b.WriteRune(ch)
}

func renderDigitAxis(labels []string, n, slotWidth, leftAxisWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", leftAxisWidth+utf8.RuneCountInString(axisSeparator)))
	for i := 0; i < n; i++ {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(padCell(centerCell(label, slotWidth-1), slotWidth, false))
	}
	return strings.TrimRight(b.String(), " ")
}

func centerCell(value string, width int) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	left := (width - valueWidth) / 2
	return strings.Repeat(" ", left) + value
}

func renderBarLegend(barName, overlayName string, useColor bool) string {
	barLabel := fmt.Sprintf("%c %s", barRune, barName)
	overlayLabel := fmt.Sprintf("%c %s", markerRune, overlayName)
	if useColor {
		barLabel = barColor.code + barLabel + colorReset
		overlayLabel = markerColor.code + overlayLabel + colorReset
	}
	return "Legend: " + barLabel + "  " + overlayLabel
}

func makeAxisLabels(height int, maxVal float64) ([]string, int) {
	labels := make([]string, height)
	if height <= 0 {
		return labels, 0
	}
	labels[0] = fmt.Sprintf("%.0f%%", maxVal)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f%%", maxVal/2)
	}
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	width := 0
	for _, label := range labels {
		if w := utf8.RuneCountInString(label); w > width {
			width = w
		}
	}
	return labels, width
}

// ChartWidthFor computes a chart width that fits within the total available width.
func ChartWidthFor(totalWidth, leftAxisWidth int) int {
	if totalWidth <= 0 {
		return minChartWidth
	}
	axisWidth := leftAxisWidth + utf8.RuneCountInString(axisSeparator)
	chartWidth := totalWidth - axisWidth
	if chartWidth < minChartWidth {
		chartWidth = minChartWidth
	}
	return chartWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func seriesMax(groups ...[]float64) float64 {
	maxVal := 0.0
	for _, values := range groups {
		for _, v := range values {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

func valueToRow(v, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := v / maxVal
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}
