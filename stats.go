package main

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"qtermlab/sim"
)

// statRow is one line of a demo's statistics table.
type statRow struct {
	Label string
	Value string
}

// commonRows covers the metrics every demo reports.
func commonRows(counts sim.Counts) []statRow {
	return []statRow{
		{"Total Measurements", fmt.Sprintf("%d", counts.Total())},
		{"Unique States", fmt.Sprintf("%d", len(counts))},
		{"Uniformity p-value", fmt.Sprintf("%.3f", uniformityPValue(counts))},
	}
}

func bellRows(counts sim.Counts) []statRow {
	return append(commonRows(counts),
		statRow{"Fidelity", fmt.Sprintf("%.3f", bellFidelity(counts))})
}

func teleportRows(counts sim.Counts) []statRow {
	return append(commonRows(counts),
		statRow{"Max State Probability", fmt.Sprintf("%.3f", maxProbability(counts))})
}

// bellFidelity is the fraction of shots landing in the ideal bell support.
func bellFidelity(counts sim.Counts) float64 {
	total := counts.Total()
	if total == 0 {
		return 0
	}
	return float64(counts["00"]+counts["11"]) / float64(total)
}

// maxProbability is the empirical probability of the most frequent outcome.
func maxProbability(counts sim.Counts) float64 {
	total := counts.Total()
	if total == 0 {
		return 0
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	return float64(best) / float64(total)
}

// uniformityPValue runs a chi-square test of the observed outcomes against a
// uniform distribution over their own support. Values near 1 mean the
// observed frequencies are consistent with uniform; near 0 means they are
// not. A single-outcome table is trivially uniform.
func uniformityPValue(counts sim.Counts) float64 {
	keys := counts.Keys()
	if len(keys) < 2 {
		return 1
	}
	total := float64(counts.Total())
	observed := make([]float64, len(keys))
	expected := make([]float64, len(keys))
	for i, k := range keys {
		observed[i] = float64(counts[k])
		expected[i] = total / float64(len(keys))
	}
	x2 := stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(len(keys) - 1)}
	return dist.Survival(x2)
}
