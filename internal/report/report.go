// Package report renders analysis results for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rlvaugh/benford/internal/benford"
	"github.com/rlvaugh/benford/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	mismatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

// RenderAnalysis prints counts, per-digit probabilities, the chi-square
// statistic, and the verdict for an analysis.
func RenderAnalysis(w io.Writer, analysis model.Analysis) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Benford's Law Conformance")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "observed counts = %s\n", formatCounts(analysis.ObservedCounts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "expected counts = %s\n", formatCounts(analysis.ExpectedCounts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "First Digit Probabilities:"); err != nil {
		return err
	}
	headers := []string{"Digit", "Observed", "Expected"}
	rows := make([][]string, 0, benford.Digits)
	for i := 0; i < benford.Digits; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.3f", analysis.ObservedPct[i]/100),
			fmt.Sprintf("%.3f", benford.Table[i]/100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	critical, _ := benford.CriticalValue(benford.DefaultDF)
	if _, err := fmt.Fprintf(w, "Chi-squared Test Statistic = %.3f\n", analysis.ChiSquare); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Critical value at a P-value of 0.05 is %.2f.\n", critical); err != nil {
		return err
	}
	verdict := "Observed distribution matches expected distribution."
	style := matchStyle
	if !analysis.Match {
		verdict = "Observed distribution does not match expected."
		style = mismatchStyle
	}
	if _, err := fmt.Fprintln(w, style.Render(verdict)); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints a table of stored runs and a chi-square trend.
func RenderHistory(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	headers := []string{"ID", "Date", "Source", "Samples", "Chi-Square", "Verdict"}
	rows := make([][]string, 0, len(runs))
	stats := make([]float64, 0, len(runs))
	for _, run := range runs {
		verdict := "match"
		if !run.Match {
			verdict = "mismatch"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.RunID),
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.Source,
			fmt.Sprintf("%d", run.Total),
			fmt.Sprintf("%.3f", run.ChiSquare),
			verdict,
		})
		stats = append(stats, run.ChiSquare)
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(stats) > 1 {
		if _, err := fmt.Fprintf(w, "\nChi-square trend: %s\n", Sparkline(stats)); err != nil {
			return err
		}
	}
	return nil
}

// RenderRunDigits prints per-digit counts for a stored run.
func RenderRunDigits(w io.Writer, runID int64, digits []model.RunDigit) error {
	if len(digits) == 0 {
		_, err := fmt.Fprintf(w, "No digits found for run %d.\n", runID)
		return err
	}
	if _, err := fmt.Fprintf(w, "Run %d\n", runID); err != nil {
		return err
	}
	headers := []string{"Digit", "Observed", "Expected"}
	rows := make([][]string, 0, len(digits))
	for _, d := range digits {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Digit),
			fmt.Sprintf("%d", d.Observed),
			fmt.Sprintf("%d", d.Expected),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderAnalysisChart plots observed percentages as bars with the Benford
// values overlaid as markers, labeled by digit 1-9.
func RenderAnalysisChart(w io.Writer, analysis model.Analysis, width, height int, forceColor bool) error {
	labels := make([]string, benford.Digits)
	expected := make([]float64, benford.Digits)
	for i := 0; i < benford.Digits; i++ {
		labels[i] = fmt.Sprintf("%d", i+1)
		expected[i] = benford.Table[i]
	}
	return PlotBarsWithColor(w, "Data vs. Benford Values",
		BarSeries{Name: "Data", Values: analysis.ObservedPct},
		OverlaySeries{Name: "Benford", Values: expected},
		labels, width, height, forceColor)
}

func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
