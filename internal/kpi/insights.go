package kpi

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"projectpulse/domain/kpi"
)

// ComputeInsights summarizes the distribution of per-category completion.
// The weighted completion weighs each category by its design quantity and
// falls back to the unweighted mean when every design sum is zero. Empty
// input yields the zero Insights, never an error.
func ComputeInsights(summaries []kpi.Summary) kpi.Insights {
	if len(summaries) == 0 {
		return kpi.Insights{}
	}

	completions := make([]float64, len(summaries))
	weights := make([]float64, len(summaries))
	totalWeight := 0.0
	for i, s := range summaries {
		completions[i] = s.Completion
		weights[i] = s.Design
		totalWeight += s.Design
	}

	// montanaflynn/stats only errors on empty input, which is handled above.
	mean, _ := stats.Mean(completions)
	median, _ := stats.Median(completions)
	stdDev, _ := stats.StandardDeviation(completions)
	min, _ := stats.Min(completions)
	max, _ := stats.Max(completions)
	q1, _ := stats.Percentile(completions, 25)
	q3, _ := stats.Percentile(completions, 75)

	weighted := mean
	if totalWeight > 0 {
		weighted = stat.Mean(completions, weights)
	}

	return kpi.Insights{
		MeanCompletion:     mean,
		MedianCompletion:   median,
		StdDevCompletion:   stdDev,
		MinCompletion:      min,
		MaxCompletion:      max,
		Q1Completion:       q1,
		Q3Completion:       q3,
		WeightedCompletion: weighted,
	}
}
