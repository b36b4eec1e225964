package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels runs that produced statistics.
	OutcomeSuccess = "success"
	// OutcomeError labels runs that aborted.
	OutcomeError = "error"

	// SkipMalformed labels samples dropped by the skip policy.
	SkipMalformed = "malformed"
	// SkipHoliday labels samples dropped by the holiday calendar.
	SkipHoliday = "holiday"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autothreshold",
			Name:      "runs_total",
			Help:      "Total number of analysis runs, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	samplesAnalyzedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "autothreshold",
			Name:      "samples_analyzed_total",
			Help:      "Samples that contributed to computed statistics.",
		},
	)

	samplesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "autothreshold",
			Name:      "samples_skipped_total",
			Help:      "Samples read but excluded from statistics, by reason.",
		},
		[]string{"reason"},
	)

	fetchDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "autothreshold",
			Name:      "fetch_seconds",
			Help:      "Time spent reading samples from the repository.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	lastMeanBits = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "autothreshold",
			Name:      "last_mean",
			Help:      "Mean of the last successful run per column, in base units.",
		},
		[]string{"column"},
	)

	lastStdDevBits = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "autothreshold",
			Name:      "last_stddev",
			Help:      "Population standard deviation of the last successful run per column.",
		},
		[]string{"column"},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		runsTotal,
		samplesAnalyzedTotal,
		samplesSkippedTotal,
		fetchDurationSeconds,
		lastMeanBits,
		lastStdDevBits,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRun records a run outcome and its sample count.
func ObserveRun(outcome string, analyzed int) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	runsTotal.WithLabelValues(label).Inc()
	if analyzed > 0 {
		samplesAnalyzedTotal.Add(float64(analyzed))
	}
}

// ObserveSkipped counts excluded samples by reason.
func ObserveSkipped(reason string, n int) {
	if n <= 0 {
		return
	}
	samplesSkippedTotal.WithLabelValues(reason).Add(float64(n))
}

// ObserveFetch records repository latency.
func ObserveFetch(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	fetchDurationSeconds.Observe(duration.Seconds())
}

// SetColumn publishes the latest mean and deviation of one column.
func SetColumn(column string, mean, stddev int64) {
	lastMeanBits.WithLabelValues(column).Set(float64(mean))
	lastStdDevBits.WithLabelValues(column).Set(float64(stddev))
}

// WriteTextfile dumps the gatherer in node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
