package cst

import (
	"math"

	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
)

// RatePair is one index-aligned (before, after) violation-rate sample from
// the dashboard's parallel rate series.
type RatePair struct {
	Index  int     `json:"index"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// Summary is the run-level Monte-Carlo violation-rate view. Averages keep
// full precision; Display() rounds them for presentation.
type Summary struct {
	AvgBefore float64    `json:"avg_before"`
	AvgAfter  float64    `json:"avg_after"`
	AvgDelta  float64    `json:"avg_delta"`
	Series    []RatePair `json:"series"`
}

type Display struct {
	AvgBefore float64 `json:"avg_before"`
	AvgAfter  float64 `json:"avg_after"`
	AvgDelta  float64 `json:"avg_delta"`
}

func (s Summary) Display() Display {
	return Display{
		AvgBefore: round3(s.AvgBefore),
		AvgAfter:  round3(s.AvgAfter),
		AvgDelta:  round3(s.AvgDelta),
	}
}

// Summarize exposes the dashboard-level CST summary. The second return is
// false when the summary is absent or avg_before is null; a summary is never
// synthesized from per-iteration records.
func Summarize(summary *results.CSTSummary) (Summary, bool) {
	if summary == nil || summary.AvgBefore == nil {
		return Summary{}, false
	}

	// The two rate series are parallel sequences zipped strictly by index,
	// not by iteration id. Equal length is enforced at load.
	series := make([]RatePair, 0, len(summary.BeforeRates))
	for i := range summary.BeforeRates {
		series = append(series, RatePair{
			Index:  i,
			Before: summary.BeforeRates[i],
			After:  summary.AfterRates[i],
		})
	}

	return Summary{
		AvgBefore: *summary.AvgBefore,
		AvgAfter:  summary.AvgAfter,
		AvgDelta:  summary.AvgDelta,
		Series:    series,
	}, true
}

// View is one iteration's CST result triple, consumed as given.
type View struct {
	BeforeRate float64 `json:"before_rate"`
	AfterRate  float64 `json:"after_rate"`
	Reduction  float64 `json:"reduction"`
}

func (v View) Display() View {
	return View{
		BeforeRate: round3(v.BeforeRate),
		AfterRate:  round3(v.AfterRate),
		Reduction:  round3(v.Reduction),
	}
}

// IterationView exposes a single iteration's CST results. The second return
// is false when the iteration has none; absence never renders as zeros.
func IterationView(cst *results.CSTResults) (View, bool) {
	if cst == nil {
		return View{}, false
	}
	return View{
		BeforeRate: cst.Before.ViolationRate,
		AfterRate:  cst.After.ViolationRate,
		Reduction:  cst.ViolationReduction,
	}, true
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}
