package benford

import (
	"errors"
	"math"
	"testing"
)

func TestCountFirstDigits(t *testing.T) {
	samples := []string{"12", "19", "25", "31", "900", "1"}
	counts, pct, total, err := CountFirstDigits(samples)
	if err != nil {
		t.Fatalf("count first digits: %v", err)
	}
	if total != len(samples) {
		t.Fatalf("expected total %d, got %d", len(samples), total)
	}
	wantCounts := []int{3, 1, 1, 0, 0, 0, 0, 0, 1}
	sum := 0
	for i, c := range counts {
		if c != wantCounts[i] {
			t.Fatalf("unexpected counts: %v", counts)
		}
		sum += c
	}
	if sum != total {
		t.Fatalf("counts sum to %d, want %d", sum, total)
	}
	var pctSum float64
	for _, p := range pct {
		pctSum += p
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", pctSum)
	}
}

func TestCountFirstDigitsRejectsBatch(t *testing.T) {
	cases := []struct {
		name    string
		samples []string
		reason  string
	}{
		{"leading zero", []string{"12", "034", "7"}, "leading zero"},
		{"zero", []string{"0"}, "leading zero"},
		{"decimal", []string{"3.14"}, "decimal point"},
		{"negative", []string{"-42"}, "non-digit character"},
		{"letters", []string{"12a"}, "non-digit character"},
		{"empty", []string{""}, "empty sample"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := CountFirstDigits(tc.samples)
			var invalid *InvalidSampleError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidSampleError, got %v", err)
			}
			if invalid.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, invalid.Reason)
			}
		})
	}
}

func TestCountFirstDigitsEmptyBatch(t *testing.T) {
	_, _, _, err := CountFirstDigits(nil)
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestExpectedCountsTruncates(t *testing.T) {
	expected, err := ExpectedCounts(100)
	if err != nil {
		t.Fatalf("expected counts: %v", err)
	}
	want := []int{30, 17, 12, 9, 7, 6, 5, 5, 4}
	sum := 0
	for i, e := range expected {
		if e != want[i] {
			t.Fatalf("unexpected counts: %v, want %v", expected, want)
		}
		sum += e
	}
	if sum > 100 {
		t.Fatalf("expected counts sum %d exceeds total", sum)
	}
}

func TestExpectedCountsDegenerate(t *testing.T) {
	_, err := ExpectedCounts(1)
	var degenerate *DegenerateExpectationError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateExpectationError, got %v", err)
	}
	if degenerate.Total != 1 {
		t.Fatalf("unexpected total in error: %+v", degenerate)
	}
}

func TestChiSquare(t *testing.T) {
	observed := []int{30, 18, 12, 10, 8, 7, 6, 5, 4}
	expected := []int{30, 17, 12, 9, 7, 6, 5, 5, 4}
	stat, err := ChiSquare(observed, expected)
	if err != nil {
		t.Fatalf("chi-square: %v", err)
	}
	want := 1.0/17 + 1.0/9 + 1.0/7 + 1.0/6 + 1.0/5
	if math.Abs(stat-want) > 1e-9 {
		t.Fatalf("expected statistic %v, got %v", want, stat)
	}
	if stat >= 15.51 {
		t.Fatalf("expected passing statistic, got %v", stat)
	}
}

func TestChiSquareZeroExpected(t *testing.T) {
	observed := []int{1, 0, 0, 0, 0, 0, 0, 0, 0}
	expected := []int{1, 1, 1, 1, 1, 1, 1, 1, 0}
	_, err := ChiSquare(observed, expected)
	var degenerate *DegenerateExpectationError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateExpectationError, got %v", err)
	}
	if degenerate.Digit != 9 {
		t.Fatalf("expected digit 9, got %d", degenerate.Digit)
	}
}

func TestCriticalValue(t *testing.T) {
	v, ok := CriticalValue(DefaultDF)
	if !ok || v != 15.51 {
		t.Fatalf("expected 15.51 for df=8, got %v (ok=%v)", v, ok)
	}
	if _, ok := CriticalValue(42); ok {
		t.Fatalf("expected no critical value for df=42")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	samples := make([]string, 0, 100)
	digits := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	weights := []int{30, 18, 12, 10, 8, 7, 6, 5, 4}
	for i, d := range digits {
		for j := 0; j < weights[i]; j++ {
			samples = append(samples, d+"0")
		}
	}
	first, err := Analyze(samples)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := Analyze(samples)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if first.ChiSquare != second.ChiSquare || first.Total != second.Total {
		t.Fatalf("analysis not deterministic: %+v vs %+v", first, second)
	}
	if !first.Match {
		t.Fatalf("expected matching verdict, got %+v", first)
	}
	if first.Total != 100 {
		t.Fatalf("expected total 100, got %d", first.Total)
	}
}

func TestAnalyzeRejectsInvalid(t *testing.T) {
	_, err := Analyze([]string{"12", "034", "7"})
	var invalid *InvalidSampleError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidSampleError, got %v", err)
	}
	if invalid.Sample != "034" {
		t.Fatalf("expected offending sample %q, got %q", "034", invalid.Sample)
	}
}
