package metrics

import (
	"context"
	"time"
)

var (
	// MetricTransactionsProcessed counts records by kind and outcome.
	MetricTransactionsProcessed = Metric{
		Name:        "transactions_processed",
		Unit:        "1",
		Description: "Measures the number of transaction records processed, by kind and outcome.",
	}

	// MetricAccountsCreated counts accounts opened during a run.
	MetricAccountsCreated = Metric{
		Name:        "accounts_created",
		Unit:        "1",
		Description: "Measures the number of accounts created by the engine.",
	}

	// MetricAccountsLocked reports the number of locked accounts at the end of a run.
	MetricAccountsLocked = Metric{
		Name:        "accounts_locked",
		Unit:        "1",
		Description: "Number of accounts frozen by a chargeback at the end of the run.",
	}

	// MetricRunDuration records how long a full run took.
	MetricRunDuration = Metric{
		Name:        "run_duration",
		Unit:        "ms",
		Description: "Duration of a full ledger run in milliseconds.",
		Buckets:     DefaultDurationBuckets,
	}
)

// RecordTransaction increments transactions_processed for one record.
func (f *MetricsFactory) RecordTransaction(ctx context.Context, kind, outcome string) error {
	b, err := f.Counter(MetricTransactionsProcessed)
	if err != nil {
		return err
	}

	return b.WithLabels(map[string]string{"kind": kind, "outcome": outcome}).AddOne(ctx)
}

// RecordAccountsCreated adds n to accounts_created.
func (f *MetricsFactory) RecordAccountsCreated(ctx context.Context, n int) error {
	b, err := f.Counter(MetricAccountsCreated)
	if err != nil {
		return err
	}

	return b.Add(ctx, int64(n))
}

// RecordAccountsLocked sets the accounts_locked gauge.
func (f *MetricsFactory) RecordAccountsLocked(ctx context.Context, n int) error {
	b, err := f.Gauge(MetricAccountsLocked)
	if err != nil {
		return err
	}

	return b.Set(ctx, int64(n))
}

// RecordRunDuration records a run duration labeled by strategy.
func (f *MetricsFactory) RecordRunDuration(ctx context.Context, strategy string, elapsed time.Duration) error {
	b, err := f.Histogram(MetricRunDuration)
	if err != nil {
		return err
	}

	return b.WithLabels(map[string]string{"strategy": strategy}).Record(ctx, elapsed.Milliseconds())
}

// MetricSystemMemUsage reports host memory usage sampled after a run.
var MetricSystemMemUsage = Metric{
	Name:        "system.memory.usage",
	Unit:        "percentage",
	Description: "Current memory usage percentage of the host running the engine.",
}

// RecordSystemMemUsage sets the system memory gauge.
func (f *MetricsFactory) RecordSystemMemUsage(ctx context.Context, percentage int64) error {
	b, err := f.Gauge(MetricSystemMemUsage)
	if err != nil {
		return err
	}

	return b.Set(ctx, percentage)
}
