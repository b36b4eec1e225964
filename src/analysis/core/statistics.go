package core

import (
	"math"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/models"
)

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and population standard deviation (divisor
// N) of one column. Aggregate calls it once per perfdata column over the
// rows where that column is present, then truncates both results.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	// Calculate mean
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(len(data))

	if len(data) == 1 {
		return mean, 0
	}

	// Calculate standard deviation with N denominator (population std)
	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	std := math.Sqrt(varianceSum / float64(len(data)))
	return mean, std
}

// -----------------------------------------------------------------------------

// Aggregate computes the column-wise mean and population standard deviation
// of samples, both truncated to integers. Optional warn/crit columns use
// only the rows where they are present.
func Aggregate(samples []models.MNormalizedSample) (models.MSummaryStatistics, error) {
	var stats models.MSummaryStatistics
	if len(samples) == 0 {
		return stats, helpers.NewEmptySampleSetError()
	}
	stats.Samples = len(samples)

	column := make([]float64, 0, len(samples))
	for col := 0; col < models.NumColumns; col++ {
		column = column[:0]
		for _, s := range samples {
			if s.Present[col] {
				column = append(column, float64(s.Values[col]))
			}
		}

		mean, std := CalculateMeanStd(column)
		stats.Means[col] = int64(mean)
		stats.StdDevs[col] = int64(std)
		stats.Counts[col] = len(column)
	}

	return stats, nil
}

// -----------------------------------------------------------------------------

// SuggestThreshold returns mean + sigma*std, truncated.
func SuggestThreshold(mean, std int64, sigma float64) int64 {
	return int64(float64(mean) + sigma*float64(std))
}
