// Package model defines shared data structures.
package model

import "time"

// Config defines analysis and presentation settings.
type Config struct {
	File    string
	Height  int
	Width   int
	NoChart bool
	Color   bool
	NoSave  bool
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Source string
	Since  *time.Time
	Last   int
}

// Analysis is the result of checking a batch against Benford's Law.
// Counts and percentages are ordered by leading digit 1 through 9.
type Analysis struct {
	ObservedCounts []int
	ObservedPct    []float64
	ExpectedCounts []int
	Total          int
	ChiSquare      float64
	Match          bool
}

// RunRecord summarizes a stored analysis run.
type RunRecord struct {
	RunID     int64
	CreatedAt time.Time
	Source    string
	Total     int
	ChiSquare float64
	Match     bool
}

// RunDigit stores per-digit counts for a stored run.
type RunDigit struct {
	Digit    int
	Observed int
	Expected int
}
