package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rlvaugh/benford/internal/model"
)

func testAnalysis() model.Analysis {
	return model.Analysis{
		ObservedCounts: []int{30, 18, 12, 10, 8, 7, 6, 5, 4},
		ObservedPct:    []float64{30, 18, 12, 10, 8, 7, 6, 5, 4},
		ExpectedCounts: []int{30, 17, 12, 9, 7, 6, 5, 5, 4},
		Total:          100,
		ChiSquare:      0.679,
		Match:          true,
	}
}

func TestInsertAndListRuns(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "benford.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(0, 0).UTC()
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := st.InsertRun(ctx, base.Add(time.Duration(i)*time.Minute), "counts.txt", testAnalysis())
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{Source: "counts.txt", Last: 2})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != ids[1] || runs[1].RunID != ids[2] {
		t.Fatalf("unexpected run ids: %+v", runs)
	}
	if runs[0].Total != 100 || !runs[0].Match {
		t.Fatalf("unexpected run record: %+v", runs[0])
	}

	since := base.Add(90 * time.Second)
	runs, err = st.ListRuns(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list runs since: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != ids[2] {
		t.Fatalf("unexpected since-filtered runs: %+v", runs)
	}

	runs, err = st.ListRuns(ctx, model.HistoryConfig{Source: "other.txt"})
	if err != nil {
		t.Fatalf("list runs other source: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs for other source, got %d", len(runs))
	}
}

func TestListRunDigits(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "benford.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	id, err := st.InsertRun(ctx, time.Unix(0, 0).UTC(), "counts.txt", testAnalysis())
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	digits, err := st.ListRunDigits(ctx, id)
	if err != nil {
		t.Fatalf("list run digits: %v", err)
	}
	if len(digits) != 9 {
		t.Fatalf("expected 9 digits, got %d", len(digits))
	}
	if digits[0].Digit != 1 || digits[0].Observed != 30 || digits[0].Expected != 30 {
		t.Fatalf("unexpected first digit record: %+v", digits[0])
	}
	if digits[8].Digit != 9 || digits[8].Observed != 4 {
		t.Fatalf("unexpected last digit record: %+v", digits[8])
	}
}
