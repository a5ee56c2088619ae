package benford

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch reports a batch with zero valid samples.
var ErrEmptyBatch = errors.New("no samples to analyze")

// InvalidSampleError reports the first sample that failed validation.
// The whole batch is rejected; no partial results are produced.
type InvalidSampleError struct {
	Sample string
	Reason string
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("bad sample %q: %s (data should be integer counts only)", e.Sample, e.Reason)
}

// DegenerateExpectationError reports an expected bucket of zero, which makes
// the chi-square statistic undefined. Occurs for very small sample counts.
type DegenerateExpectationError struct {
	Digit int
	Total int
}

func (e *DegenerateExpectationError) Error() string {
	return fmt.Sprintf("expected count for digit %d is zero at %d samples; sample too small for chi-square test", e.Digit, e.Total)
}
