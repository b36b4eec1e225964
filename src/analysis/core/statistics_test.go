package core

import (
	"errors"
	"testing"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/models"
)

func row(values ...int64) models.MNormalizedSample {
	var n models.MNormalizedSample
	for i, v := range values {
		n.Values[i] = v
		n.Present[i] = true
	}
	return n
}

func TestCalculateMeanStdPopulation(t *testing.T) {
	mean, std := CalculateMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 || std != 2 {
		t.Fatalf("expected mean 5 std 2, got %v %v", mean, std)
	}

	mean, std = CalculateMeanStd(nil)
	if mean != 0 || std != 0 {
		t.Fatalf("expected zeros for empty input")
	}
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil)
	var empty *helpers.EmptySampleSetError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptySampleSetError, got %v", err)
	}
}

func TestAggregateSingleRow(t *testing.T) {
	stats, err := Aggregate([]models.MNormalizedSample{row(603098786, 800, 950, 23863445, 15, 25)})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := [models.NumColumns]int64{603098786, 800, 950, 23863445, 15, 25}
	if stats.Means != want {
		t.Fatalf("expected means %v, got %v", want, stats.Means)
	}
	if stats.StdDevs != ([models.NumColumns]int64{}) {
		t.Fatalf("expected zero deviations, got %v", stats.StdDevs)
	}
	if stats.Samples != 1 {
		t.Fatalf("expected 1 sample, got %d", stats.Samples)
	}
}

func TestAggregateColumnsAndTruncation(t *testing.T) {
	samples := []models.MNormalizedSample{
		row(2, 1, 10, 100, 0, 0),
		row(4, 2, 10, 100, 0, 0),
		row(4, 2, 10, 101, 0, 0),
		row(4, 2, 10, 100, 0, 0),
		row(5, 2, 10, 100, 0, 0),
		row(5, 2, 10, 100, 0, 0),
		row(7, 2, 10, 100, 0, 0),
		row(9, 2, 10, 100, 0, 0),
	}

	stats, err := Aggregate(samples)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if stats.Means[models.ColInBits] != 5 || stats.StdDevs[models.ColInBits] != 2 {
		t.Fatalf("in_bits: expected 5/2, got %d/%d", stats.Means[models.ColInBits], stats.StdDevs[models.ColInBits])
	}
	// mean 1.875 and std ~0.33 truncate to 1 and 0
	if stats.Means[models.ColInWarn] != 1 || stats.StdDevs[models.ColInWarn] != 0 {
		t.Fatalf("in_warn: expected 1/0, got %d/%d", stats.Means[models.ColInWarn], stats.StdDevs[models.ColInWarn])
	}
	// mean 100.125 truncates to 100
	if stats.Means[models.ColOutBits] != 100 {
		t.Fatalf("out_bits: expected 100, got %d", stats.Means[models.ColOutBits])
	}
}

func TestAggregateOrderInsensitive(t *testing.T) {
	samples := []models.MNormalizedSample{
		row(10, 1, 2, 30, 4, 5),
		row(17, 3, 9, 1, 4, 8),
		row(1000, 6, 2, 75, 1, 1),
		row(3, 3, 3, 3, 3, 3),
	}
	reversed := make([]models.MNormalizedSample, len(samples))
	for i, s := range samples {
		reversed[len(samples)-1-i] = s
	}

	a, err := Aggregate(samples)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	b, err := Aggregate(reversed)
	if err != nil {
		t.Fatalf("aggregate reversed: %v", err)
	}
	if a != b {
		t.Fatalf("expected permutation to give identical stats: %+v vs %+v", a, b)
	}
}

func TestAggregateSkipsAbsentThresholds(t *testing.T) {
	withWarn := row(10, 100, 0, 10, 0, 0)
	withoutWarn := row(20, 0, 0, 20, 0, 0)
	withoutWarn.Present[models.ColInWarn] = false

	stats, err := Aggregate([]models.MNormalizedSample{withWarn, withoutWarn})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if stats.Counts[models.ColInWarn] != 1 || stats.Means[models.ColInWarn] != 100 {
		t.Fatalf("expected in_warn from one row = 100, got count %d mean %d",
			stats.Counts[models.ColInWarn], stats.Means[models.ColInWarn])
	}
	if stats.Counts[models.ColInBits] != 2 || stats.Means[models.ColInBits] != 15 {
		t.Fatalf("expected in_bits mean 15 over 2 rows, got %d over %d",
			stats.Means[models.ColInBits], stats.Counts[models.ColInBits])
	}
}

func TestSuggestThreshold(t *testing.T) {
	if got := SuggestThreshold(100, 10, 2.5); got != 125 {
		t.Fatalf("expected 125, got %d", got)
	}
}
