package repairimpact

import (
	"strings"
	"testing"

	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
)

func TestSummarizeSingleEntry(t *testing.T) {
	improvements := []results.RepairEntry{{Iteration: 1, Before: 0.5, After: 0.9, CSTDelta: 0.4}}
	summary, ok := Summarize(improvements, nil)
	if !ok {
		t.Fatalf("expected repair data")
	}
	if summary.AvgBefore != 0.5 || summary.AvgAfter != 0.9 {
		t.Fatalf("unexpected averages: %+v", summary)
	}
	if display := summary.Display(); display.AvgDelta != 0.4 {
		t.Fatalf("unexpected rounded delta: %+v", display)
	}
	if len(summary.Series) != 1 || summary.Series[0] != (Point{Iteration: 1, Before: 0.5, After: 0.9}) {
		t.Fatalf("unexpected series: %+v", summary.Series)
	}
}

func TestSummarizeConcatenatesImprovementsThenFailures(t *testing.T) {
	improvements := []results.RepairEntry{
		{Iteration: 1, Before: 0.2, After: 0.8},
		{Iteration: 2, Before: 0.4, After: 0.6},
	}
	failures := []results.RepairEntry{
		{Iteration: 3, Before: 0.9, After: 0.1},
	}
	summary, ok := Summarize(improvements, failures)
	if !ok {
		t.Fatalf("expected repair data")
	}
	if summary.Count != 3 {
		t.Fatalf("expected 3 entries, got %d", summary.Count)
	}
	if got := summary.Display().AvgBefore; got != 0.5 {
		t.Fatalf("unexpected avg before: %v", got)
	}
	if got := summary.Display().AvgAfter; got != 0.5 {
		t.Fatalf("unexpected avg after: %v", got)
	}
	if got := summary.Display().AvgDelta; got != 0.0 {
		t.Fatalf("unexpected avg delta: %v", got)
	}
}

func TestSummarizeEmptyIsNoData(t *testing.T) {
	if _, ok := Summarize(nil, nil); ok {
		t.Fatalf("empty input must report no repair data")
	}
	if _, ok := Summarize([]results.RepairEntry{}, []results.RepairEntry{}); ok {
		t.Fatalf("empty slices must report no repair data")
	}
}

func TestSummarizeCollisionLaterWinsWithWarning(t *testing.T) {
	improvements := []results.RepairEntry{{Iteration: 5, Before: 0.3, After: 0.9}}
	failures := []results.RepairEntry{{Iteration: 5, Before: 0.7, After: 0.2}}
	summary, ok := Summarize(improvements, failures)
	if !ok {
		t.Fatalf("expected repair data")
	}
	// Both entries still count toward the means.
	if summary.Count != 2 {
		t.Fatalf("expected both entries counted, got %d", summary.Count)
	}
	if len(summary.Series) != 1 {
		t.Fatalf("expected one series point, got %v", summary.Series)
	}
	if summary.Series[0].Before != 0.7 || summary.Series[0].After != 0.2 {
		t.Fatalf("failures entry must win the series slot: %+v", summary.Series[0])
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "iteration 5") {
		t.Fatalf("expected a collision warning, got %v", summary.Warnings)
	}
}

func TestDisplayRoundsToThreeDecimals(t *testing.T) {
	improvements := []results.RepairEntry{
		{Iteration: 1, Before: 0.1, After: 0.2},
		{Iteration: 2, Before: 0.2, After: 0.2},
		{Iteration: 3, Before: 0.2, After: 0.2},
	}
	summary, ok := Summarize(improvements, nil)
	if !ok {
		t.Fatalf("expected repair data")
	}
	if got := summary.Display().AvgBefore; got != 0.167 {
		t.Fatalf("expected 0.167, got %v", got)
	}
	// Full precision is retained on the summary itself.
	if summary.AvgBefore == 0.167 {
		t.Fatalf("summary must keep full precision, got %v", summary.AvgBefore)
	}
}
