// Package benford checks leading-digit distributions against Benford's Law.
package benford

import (
	"github.com/rlvaugh/benford/internal/model"
)

// Digits is the number of leading-digit categories (1 through 9).
const Digits = 9

// DefaultDF is the degrees of freedom for the nine-category test.
const DefaultDF = Digits - 1

// Table holds the Benford's Law percentages for leading digits 1-9.
var Table = [Digits]float64{30.1, 17.6, 12.5, 9.7, 7.9, 6.7, 5.8, 5.1, 4.6}

// criticalValues maps degrees of freedom to the chi-square critical value
// at a P-value of 0.05.
var criticalValues = map[int]float64{
	1:  3.84,
	2:  5.99,
	3:  7.81,
	4:  9.49,
	5:  11.07,
	6:  12.59,
	7:  14.07,
	8:  15.51,
	9:  16.92,
	10: 18.31,
}

// CriticalValue returns the chi-square critical value at a P-value of 0.05
// for the given degrees of freedom.
func CriticalValue(df int) (float64, bool) {
	v, ok := criticalValues[df]
	return v, ok
}

// CountFirstDigits tabulates leading digits for a batch of count samples.
// It returns per-digit counts and percentages ordered by digit 1 through 9
// and the total sample count. The first invalid sample rejects the whole
// batch; an empty batch is ErrEmptyBatch.
func CountFirstDigits(samples []string) (counts []int, pct []float64, total int, err error) {
	counts = make([]int, Digits)
	for _, sample := range samples {
		if err := validateSample(sample); err != nil {
			return nil, nil, 0, err
		}
		counts[sample[0]-'1']++
		total++
	}
	if total == 0 {
		return nil, nil, 0, ErrEmptyBatch
	}
	pct = make([]float64, Digits)
	for i, c := range counts {
		pct[i] = float64(c) / float64(total) * 100
	}
	return counts, pct, total, nil
}

// validateSample enforces the integer-count rule: non-empty, decimal digits
// only, no leading zero. Decimals, signs, and zero itself all fail.
func validateSample(sample string) error {
	if sample == "" {
		return &InvalidSampleError{Sample: sample, Reason: "empty sample"}
	}
	if sample[0] == '0' {
		return &InvalidSampleError{Sample: sample, Reason: "leading zero"}
	}
	for i := 0; i < len(sample); i++ {
		ch := sample[i]
		if ch == '.' {
			return &InvalidSampleError{Sample: sample, Reason: "decimal point"}
		}
		if ch < '0' || ch > '9' {
			return &InvalidSampleError{Sample: sample, Reason: "non-digit character"}
		}
	}
	return nil
}

// ExpectedCounts computes theoretical Benford counts for a total sample
// count. Each count is truncated toward zero, matching the reference
// behavior. A zero expected bucket is a DegenerateExpectationError.
func ExpectedCounts(total int) ([]int, error) {
	if total <= 0 {
		return nil, ErrEmptyBatch
	}
	expected := make([]int, Digits)
	for i, p := range Table {
		expected[i] = int(p / 100 * float64(total))
		if expected[i] == 0 {
			return nil, &DegenerateExpectationError{Digit: i + 1, Total: total}
		}
	}
	return expected, nil
}

// ChiSquare computes the chi-square goodness-of-fit statistic for observed
// vs. expected counts aligned by digit.
func ChiSquare(observed, expected []int) (float64, error) {
	var stat float64
	for i := 0; i < Digits; i++ {
		if expected[i] == 0 {
			return 0, &DegenerateExpectationError{Digit: i + 1}
		}
		diff := float64(observed[i] - expected[i])
		stat += diff * diff / float64(expected[i])
	}
	return stat, nil
}

// Analyze runs the full pipeline: digit extraction, expected counts, and the
// chi-square test against the critical value for eight degrees of freedom.
func Analyze(samples []string) (model.Analysis, error) {
	counts, pct, total, err := CountFirstDigits(samples)
	if err != nil {
		return model.Analysis{}, err
	}
	expected, err := ExpectedCounts(total)
	if err != nil {
		return model.Analysis{}, err
	}
	stat, err := ChiSquare(counts, expected)
	if err != nil {
		return model.Analysis{}, err
	}
	critical, _ := CriticalValue(DefaultDF)
	return model.Analysis{
		ObservedCounts: counts,
		ObservedPct:    pct,
		ExpectedCounts: expected,
		Total:          total,
		ChiSquare:      stat,
		Match:          stat < critical,
	}, nil
}
