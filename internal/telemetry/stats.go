// Package telemetry aggregates per-tick observations of a running
// simulation into summary statistics and exportable records.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AvalancheStats summarizes a window of avalanche sizes.
type AvalancheStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Max    int
	P50    float64
	P90    float64
}

// Avalanches computes summary statistics over a size history. An empty
// history yields the zero value.
func Avalanches(history []int) AvalancheStats {
	if len(history) == 0 {
		return AvalancheStats{}
	}

	sizes := make([]float64, len(history))
	max := 0
	for i, s := range history {
		sizes[i] = float64(s)
		if s > max {
			max = s
		}
	}
	sort.Float64s(sizes)

	st := AvalancheStats{
		Count: len(history),
		Mean:  stat.Mean(sizes, nil),
		Max:   max,
		P50:   stat.Quantile(0.5, stat.Empirical, sizes, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, sizes, nil),
	}
	if len(sizes) > 1 {
		st.StdDev = stat.StdDev(sizes, nil)
	}
	return st
}
