package models

// MProcessingMetrics represents the timings and volumes of one analysis run.
type MProcessingMetrics struct {
	FetchTimeSeconds       float64 `json:"fetch_time_seconds"`
	AggregationTimeSeconds float64 `json:"aggregation_time_seconds"`
	RowsRead               int     `json:"rows_read"`
}
