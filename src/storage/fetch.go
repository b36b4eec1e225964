package storage

import (
	"context"
	"database/sql"
	"errors"
	"iter"
	"time"

	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/models"
)

// scanFunc reads one row into a sample.
type scanFunc func(rows *sql.Rows) (models.MRawSample, error)

// -----------------------------------------------------------------------------

// fetchSamples executes query lazily under timeout and streams the rows.
func fetchSamples(
	ctx context.Context,
	db *sql.DB,
	timeout time.Duration,
	log *logger.Logger,
	query string,
	args []any,
	scan scanFunc,
) iter.Seq2[models.MRawSample, error] {
	return func(yield func(models.MRawSample, error) bool) {
		if db == nil {
			yield(models.MRawSample{}, helpers.NewRepositoryUnavailableError("query", sql.ErrConnDone))
			return
		}

		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		log.Debug("Executing sample query with %d parameters", len(args))
		rows, err := db.QueryContext(runCtx, query, args...)
		if err != nil {
			yield(models.MRawSample{}, helpers.NewRepositoryUnavailableError("query", withDeadline(runCtx, err)))
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			sample, err := scan(rows)
			if err != nil {
				yield(models.MRawSample{}, helpers.NewRepositoryUnavailableError("scan", err))
				return
			}
			count++
			if !yield(sample, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.MRawSample{}, helpers.NewRepositoryUnavailableError("read rows", withDeadline(runCtx, err)))
			return
		}
		log.Debug("Sample query returned %d rows", count)
	}
}

// withDeadline attaches the context error to err when the context ended
// first. Drivers report cancellation with their own error values.
func withDeadline(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return errors.Join(ctxErr, err)
	}
	return err
}
