package models

import "time"

// MRawSample is one historical check result as read from the store.
type MRawSample struct {
	StartTime time.Time `json:"start_time"`
	PerfData  string    `json:"perfdata"`
}

// MParsedSample holds the fields of one bandwidth perfdata string.
// Warn/Crit are nil when the plugin left the threshold empty.
type MParsedSample struct {
	InMagnitude  float64
	InPrefix     string
	InWarn       *int64
	InCrit       *int64
	OutMagnitude float64
	OutPrefix    string
	OutWarn      *int64
	OutCrit      *int64
}

// Column positions inside MNormalizedSample and MSummaryStatistics.
const (
	ColInBits = iota
	ColInWarn
	ColInCrit
	ColOutBits
	ColOutWarn
	ColOutCrit
	NumColumns
)

// ColumnNames is indexed by the Col* constants.
var ColumnNames = [NumColumns]string{"in_bits", "in_warn", "in_crit", "out_bits", "out_warn", "out_crit"}

// MNormalizedSample is a parsed sample in base units.
type MNormalizedSample struct {
	Values  [NumColumns]int64
	Present [NumColumns]bool
}

// MSummaryStatistics is the column-wise result of one run.
type MSummaryStatistics struct {
	Samples int               `json:"samples"`
	Means   [NumColumns]int64 `json:"means"`
	StdDevs [NumColumns]int64 `json:"std_devs"`
	Counts  [NumColumns]int   `json:"counts"`
}
