package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nagios-autothreshold/src/analysis/core"
	"nagios-autothreshold/src/helpers"
	"nagios-autothreshold/src/interfaces"
	"nagios-autothreshold/src/logger"
	"nagios-autothreshold/src/metrics"
	"nagios-autothreshold/src/models"
	"nagios-autothreshold/src/utils"
)

// ThresholdAnalyzer runs one fetch, parse, normalise and aggregate pass
// over the configured service's history.
type ThresholdAnalyzer struct {
	Config     *models.MConfig
	Repository interfaces.ISampleRepository
	Holidays   *utils.HolidayCalendar
	Logger     *logger.Logger

	location *time.Location
}

// -----------------------------------------------------------------------------

func NewThresholdAnalyzer(cfg *models.MConfig, repo interfaces.ISampleRepository, log *logger.Logger) (*ThresholdAnalyzer, error) {
	loc, err := cfg.Query.Location()
	if err != nil {
		return nil, helpers.NewConfigurationError("invalid timezone %q: %v", cfg.Query.Timezone, err)
	}

	a := &ThresholdAnalyzer{
		Config:     cfg,
		Repository: repo,
		Logger:     log,
		location:   loc,
	}

	if cfg.Analysis.HolidayCalendar != "" {
		hc, err := utils.GetHolidayCalendar(cfg.Analysis.HolidayCalendar)
		if err != nil {
			return nil, helpers.NewConfigurationError("holiday calendar: %v", err)
		}
		a.Holidays = hc
	}

	return a, nil
}

// -----------------------------------------------------------------------------

// Query returns the sample query a run at now would issue.
func (a *ThresholdAnalyzer) Query(now time.Time) models.MSampleQuery {
	q := a.Config.Query
	return models.NewRecurringQuery(
		now,
		a.location,
		q.LookbackWeeks,
		q.Window(),
		q.HostName,
		q.ServiceName,
		q.ServicePattern,
	)
}

// -----------------------------------------------------------------------------

// Run computes statistics for the slot anchored at now. Repository, unit
// and empty-set errors abort the run; malformed samples abort unless the
// skip policy is configured.
func (a *ThresholdAnalyzer) Run(ctx context.Context, now time.Time) (*models.MThresholdReport, error) {
	q := a.Query(now)
	report := &models.MThresholdReport{
		GeneratedAt: now,
		Query:       q.Describe(),
		Occurrences: len(q.Occurrences()),
	}
	a.Logger.Info("Analyzing %s (%d occurrences)", report.Query, report.Occurrences)

	// 1. Fetch, parse and normalise
	fetchStart := time.Now()
	set, err := a.collect(ctx, q, report)
	report.Processing.FetchTimeSeconds = time.Since(fetchStart).Seconds()
	metrics.ObserveFetch(time.Since(fetchStart))
	metrics.ObserveSkipped(metrics.SkipMalformed, report.SkippedMalformed)
	metrics.ObserveSkipped(metrics.SkipHoliday, report.SkippedHolidays)
	if err != nil {
		metrics.ObserveRun(metrics.OutcomeError, 0)
		return nil, err
	}

	// 2. Aggregate
	aggStart := time.Now()
	stats, err := core.Aggregate(set)
	if err != nil {
		metrics.ObserveRun(metrics.OutcomeError, 0)
		return nil, err
	}
	report.Processing.AggregationTimeSeconds = time.Since(aggStart).Seconds()
	report.Stats = stats

	// 3. Present
	for col := 0; col < models.NumColumns; col++ {
		report.FormattedMeans[col] = core.FormatBits(stats.Means[col])
		report.FormattedStdDevs[col] = core.FormatBits(stats.StdDevs[col])
		metrics.SetColumn(models.ColumnNames[col], stats.Means[col], stats.StdDevs[col])
	}
	report.Inbound = a.suggest(stats, models.ColInBits)
	report.Outbound = a.suggest(stats, models.ColOutBits)

	metrics.ObserveRun(metrics.OutcomeSuccess, stats.Samples)
	a.Logger.Info("Computed statistics from %d samples (%d rows read, %d malformed, %d holidays skipped)",
		stats.Samples, report.Processing.RowsRead, report.SkippedMalformed, report.SkippedHolidays)
	return report, nil
}

// -----------------------------------------------------------------------------

func (a *ThresholdAnalyzer) collect(ctx context.Context, q models.MSampleQuery, report *models.MThresholdReport) ([]models.MNormalizedSample, error) {
	skipMalformed := a.Config.Analysis.OnMalformed == models.MalformedSkip
	var set []models.MNormalizedSample

	for raw, err := range a.Repository.FetchSamples(ctx, q) {
		if err != nil {
			return nil, err
		}
		report.Processing.RowsRead++

		if a.Holidays != nil && a.Holidays.IsHoliday(raw.StartTime) {
			a.Logger.Debug("Skipping sample at %s: %s holiday", raw.StartTime.Format(time.DateTime), a.Holidays.MIC)
			report.SkippedHolidays++
			continue
		}

		sample, err := core.ParseAndNormalize(raw.PerfData)
		if err != nil {
			var malformed *helpers.MalformedSampleError
			if skipMalformed && errors.As(err, &malformed) {
				a.Logger.Warning("Skipping sample at %s: %v", raw.StartTime.Format(time.DateTime), err)
				report.SkippedMalformed++
				continue
			}
			return nil, fmt.Errorf("sample at %s: %w", raw.StartTime.Format(time.DateTime), err)
		}
		set = append(set, sample)
	}

	return set, nil
}

// -----------------------------------------------------------------------------

func (a *ThresholdAnalyzer) suggest(stats models.MSummaryStatistics, col int) models.MSuggestedThreshold {
	mean, std := stats.Means[col], stats.StdDevs[col]
	return models.MSuggestedThreshold{
		Warning:  core.SuggestThreshold(mean, std, a.Config.Analysis.WarnSigma),
		Critical: core.SuggestThreshold(mean, std, a.Config.Analysis.CritSigma),
	}
}
