package models

import "time"

// MSuggestedThreshold is a warn/crit pair derived from mean and deviation.
type MSuggestedThreshold struct {
	Warning  int64 `json:"warning"`
	Critical int64 `json:"critical"`
}

// MThresholdReport is the outcome of one analysis run.
type MThresholdReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Query       string             `json:"query"`
	Occurrences int                `json:"occurrences"`
	Stats       MSummaryStatistics `json:"stats"`

	FormattedMeans   [NumColumns]string `json:"formatted_means"`
	FormattedStdDevs [NumColumns]string `json:"formatted_std_devs"`

	Inbound  MSuggestedThreshold `json:"inbound"`
	Outbound MSuggestedThreshold `json:"outbound"`

	SkippedMalformed int `json:"skipped_malformed"`
	SkippedHolidays  int `json:"skipped_holidays"`

	Processing MProcessingMetrics `json:"processing_metrics"`
}
