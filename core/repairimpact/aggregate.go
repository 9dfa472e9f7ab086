package repairimpact

import (
	"fmt"
	"math"
	"sort"

	"github.com/marven22/IAM-Dashboard/core/schema/v1/results"
)

// Point is one iteration's (before, after) proof-score pair for charting.
type Point struct {
	Iteration int     `json:"iteration"`
	Before    float64 `json:"before"`
	After     float64 `json:"after"`
}

// Summary aggregates repair measurements across a run. Averages are kept at
// full precision; Display() rounds them for presentation.
type Summary struct {
	Count     int      `json:"count"`
	AvgBefore float64  `json:"avg_before"`
	AvgAfter  float64  `json:"avg_after"`
	AvgDelta  float64  `json:"avg_delta"`
	Series    []Point  `json:"series"`
	Warnings  []string `json:"warnings,omitempty"`
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

// Summarize concatenates improvements then failures, derives the per-entry
// proof-score delta, and averages before/after/delta over the whole
// concatenation. The second return is false when there is no repair data;
// callers render an explicit no-data state instead of a zeroed mean.
func Summarize(improvements, failures []results.RepairEntry) (Summary, bool) {
	entries := make([]results.RepairEntry, 0, len(improvements)+len(failures))
	entries = append(entries, improvements...)
	entries = append(entries, failures...)
	if len(entries) == 0 {
		return Summary{}, false
	}

	var sumBefore, sumAfter, sumDelta float64
	seen := map[int]int{}
	series := map[int]Point{}
	var warnings []string
	for _, entry := range entries {
		sumBefore += entry.Before
		sumAfter += entry.After
		sumDelta += entry.After - entry.Before

		// Later entries win the series slot; concatenation order makes
		// that the failures list. Surface the collision instead of
		// dropping it silently.
		if _, exists := seen[entry.Iteration]; exists {
			warnings = append(warnings, fmt.Sprintf("iteration %d has multiple repair entries; keeping the later one", entry.Iteration))
		}
		seen[entry.Iteration]++
		series[entry.Iteration] = Point{Iteration: entry.Iteration, Before: entry.Before, After: entry.After}
	}

	points := make([]Point, 0, len(series))
	for _, point := range series {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Iteration < points[j].Iteration
	})

	count := float64(len(entries))
	return Summary{
		Count:     len(entries),
		AvgBefore: sumBefore / count,
		AvgAfter:  sumAfter / count,
		AvgDelta:  sumDelta / count,
		Series:    points,
		Warnings:  warnings,
	}, true
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}
