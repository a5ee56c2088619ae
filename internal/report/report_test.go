package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rlvaugh/benford/internal/model"
)

func sampleAnalysis() model.Analysis {
	return model.Analysis{
		ObservedCounts: []int{30, 18, 12, 10, 8, 7, 6, 5, 4},
		ObservedPct:    []float64{30, 18, 12, 10, 8, 7, 6, 5, 4},
		ExpectedCounts: []int{30, 17, 12, 9, 7, 6, 5, 5, 4},
		Total:          100,
		ChiSquare:      0.679,
		Match:          true,
	}
}

func TestRenderAnalysis(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderAnalysis(&buf, sampleAnalysis()); err != nil {
		t.Fatalf("render analysis: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"observed counts = [30 18 12 10 8 7 6 5 4]",
		"expected counts = [30 17 12 9 7 6 5 5 4]",
		"First Digit Probabilities:",
		"0.300",
		"0.301",
		"Chi-squared Test Statistic = 0.679",
		"Critical value at a P-value of 0.05 is 15.51.",
		"matches expected distribution",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderAnalysisMismatch(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.ChiSquare = 42.5
	analysis.Match = false
	var buf bytes.Buffer
	if err := RenderAnalysis(&buf, analysis); err != nil {
		t.Fatalf("render analysis: %v", err)
	}
	if !strings.Contains(buf.String(), "does not match") {
		t.Fatalf("expected mismatch verdict, got:\n%s", buf.String())
	}
}

func TestRenderHistory(t *testing.T) {
	runs := []model.RunRecord{
		{RunID: 1, CreatedAt: time.Unix(0, 0).UTC(), Source: "a.txt", Total: 100, ChiSquare: 0.679, Match: true},
		{RunID: 2, CreatedAt: time.Unix(0, 0).UTC().Add(time.Hour), Source: "b.txt", Total: 50, ChiSquare: 21.4, Match: false},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, runs); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"a.txt", "b.txt", "0.679", "21.400", "mismatch", "Chi-square trend:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("expected empty message, got: %q", buf.String())
	}
}

func TestRenderRunDigits(t *testing.T) {
	digits := []model.RunDigit{
		{Digit: 1, Observed: 30, Expected: 30},
		{Digit: 2, Observed: 18, Expected: 17},
	}
	var buf bytes.Buffer
	if err := RenderRunDigits(&buf, 7, digits); err != nil {
		t.Fatalf("render run digits: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Run 7", "Digit", "30", "17"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
