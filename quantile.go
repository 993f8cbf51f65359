package main

import (
	"math"
	"sort"

	"github.com/amlstats/alert_analyzer/domain/models"
)

// calculateQuantile returns the p-quantile of an ascending-sorted slice
// using linear interpolation between the two nearest ranks.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

// summarizeNumbers computes the describe-style summary of a sample. ok is
// false for an empty sample.
func summarizeNumbers(values []float64) (models.NumberSummary, bool) {
	if len(values) == 0 {
		return models.NumberSummary{}, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return models.NumberSummary{
		Count:  len(values),
		Mean:   sum / float64(len(values)),
		Min:    sorted[0],
		Q1:     calculateQuantile(sorted, 0.25),
		Median: calculateQuantile(sorted, 0.5),
		Q3:     calculateQuantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

// percentOf is the shared zero-denominator guard: 100*part/total, 0 when
// total is 0.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

// ratioOf is percentOf's fraction twin, used for rates in [0,1].
func ratioOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
