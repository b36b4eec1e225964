package interfaces

import (
	"context"
	"iter"
	"time"

	"nagios-autothreshold/src/models"
)

// -----------------------------------------------------------------------------
// ISampleRepository is the read-only view of historical check results.
// -----------------------------------------------------------------------------

type ISampleRepository interface {

	// -----------------------------------------------------------------------------

	// FetchSamples returns the matching samples in ascending start time.
	// The query runs when the sequence is ranged over and again on every
	// range; a failure is yielded once as a RepositoryUnavailableError.
	FetchSamples(ctx context.Context, q models.MSampleQuery) iter.Seq2[models.MRawSample, error]
}

// -----------------------------------------------------------------------------
// IDatabase defines the lifecycle of a storage backend.
// -----------------------------------------------------------------------------

type IDatabase interface {
	ISampleRepository

	// -----------------------------------------------------------------------------

	// Initialize opens and verifies the connection.
	Initialize() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}

// -----------------------------------------------------------------------------
// IThresholdAnalyzer produces one report per call.
// -----------------------------------------------------------------------------

type IThresholdAnalyzer interface {
	Run(ctx context.Context, now time.Time) (*models.MThresholdReport, error)
}
