package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/LerianStudio/payment-engine/payments"
	"github.com/LerianStudio/payment-engine/payments/assert"
	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/csvio"
	"github.com/LerianStudio/payment-engine/payments/ledger"
	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
	"github.com/LerianStudio/payment-engine/payments/processor"
	"github.com/LerianStudio/payment-engine/payments/transaction"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Strategy names how input is decoded.
type Strategy string

const (
	// StrategyBatch decodes the whole input before processing.
	StrategyBatch Strategy = "batch"
	// StrategyStream decodes on a separate goroutine while records are applied.
	StrategyStream Strategy = "stream"
)

func (s Strategy) String() string {
	return string(s)
}

// Renderer receives the final ledger snapshot.
type Renderer interface {
	Render(accounts []ledger.Account) error
}

// Result is the outcome of a successful run.
type Result struct {
	RunID    string
	Strategy Strategy
	Accounts []ledger.Account
	Stats    processor.Stats
}

// RenderTo hands the account snapshot to r.
func (r Result) RenderTo(renderer Renderer) error {
	return renderer.Render(r.Accounts)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracer sets the tracer used for run spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMetricsFactory sets the metrics factory.
func WithMetricsFactory(factory *metrics.MetricsFactory) Option {
	return func(e *Engine) {
		e.metrics = factory
	}
}

// Engine runs transaction files through a processor.
type Engine struct {
	cfg     Config
	logger  log.Logger
	tracer  trace.Tracer
	metrics *metrics.MetricsFactory
}

// New validates cfg and returns an Engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = log.OrNop(e.logger)

	if e.tracer == nil {
		e.tracer = otel.Tracer(cfg.LibraryName)
	}

	if e.metrics == nil {
		e.metrics = metrics.NewNopFactory()
	}

	return e, nil
}

// SelectStrategy returns the strategy for an input of size bytes. Only inputs
// strictly larger than StreamThresholdBytes stream; a file exactly at the
// threshold is still decoded in one batch.
func (e *Engine) SelectStrategy(size int64) Strategy {
	if size > e.cfg.StreamThresholdBytes {
		return StrategyStream
	}

	return StrategyBatch
}

// Run processes the transaction file at path.
func (e *Engine) Run(ctx context.Context, path string) (Result, error) {
	ctx = e.track(ctx)
	logger, tracer, runID, factory := payments.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "engine.run")
	defer span.End()

	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		opentelemetry.HandleSpanError(span, "stat input", err)
		return Result{}, fmt.Errorf("stat input: %w", err)
	}

	strategy := e.SelectStrategy(info.Size())
	span.SetAttributes(attribute.String(constant.AttrRunStrategy, string(strategy)))

	logger.Log(ctx, log.LevelInfo, "run started",
		log.String("path", path),
		log.Any("size_bytes", info.Size()),
		log.Stringer("strategy", strategy),
	)

	f, err := os.Open(path)
	if err != nil {
		opentelemetry.HandleSpanError(span, "open input", err)
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var result Result

	switch strategy {
	case StrategyStream:
		result, err = e.stream(ctx, f)
	default:
		result, err = e.batch(ctx, f)
	}

	if err != nil {
		opentelemetry.HandleSpanError(span, "run failed", err)
		logger.Log(ctx, log.LevelError, "run failed", log.Err(err))

		return Result{}, err
	}

	result.RunID = runID
	result.Strategy = strategy

	elapsed := time.Since(start)

	if err := factory.RecordRunDuration(ctx, string(strategy), elapsed); err != nil {
		logger.Log(ctx, log.LevelWarn, "failed to record run duration", log.Err(err))
	}

	payments.GetMemUsage(ctx, factory)

	logger.Log(ctx, log.LevelInfo, "run finished",
		log.Int("accounts", len(result.Accounts)),
		log.Int("records", result.Stats.Total().Total()),
		log.Duration("elapsed", elapsed),
	)

	return result, nil
}

func (e *Engine) batch(ctx context.Context, r io.Reader) (Result, error) {
	records, err := csvio.ReadAll(r)
	if err != nil {
		return Result{}, err
	}

	return e.Process(ctx, transaction.NewSliceSource(records))
}

// Process applies every record from source in order and returns the final
// snapshot, or the first fatal error. Context cancellation is checked
// between records.
func (e *Engine) Process(ctx context.Context, source transaction.Source) (Result, error) {
	ctx = e.track(ctx)
	logger, _, runID, factory := payments.NewTrackingFromContext(ctx)

	p := processor.New(e.processorOptions(ctx, logger)...)
	span := trace.SpanFromContext(ctx)
	debug := logger.Enabled(log.LevelDebug)

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Result{}, err
		}

		outcome := p.Apply(ctx, rec)

		if err := factory.RecordTransaction(ctx, string(rec.Kind), outcome.Kind.String()); err != nil && debug {
			logger.Log(ctx, log.LevelDebug, "failed to record transaction metric", log.Err(err))
		}

		switch outcome.Kind {
		case processor.Applied:
			if debug {
				logger.Log(ctx, log.LevelDebug, "record applied", recordFields(rec)...)
			}
		case processor.Ignored:
			if debug {
				logger.Log(ctx, log.LevelDebug, "record ignored", append(recordFields(rec), log.Outcome(outcome.Kind.String()), log.Err(outcome.Reason))...)
			}
		case processor.Rejected:
			logger.Log(ctx, log.LevelError, "record rejected", append(recordFields(rec), log.Int("record", n), log.Err(outcome.Reason))...)
			opentelemetry.HandleSpanEvent(span, "record.rejected",
				attribute.String(constant.AttrRecordKind, string(rec.Kind)),
				attribute.Int64(constant.AttrRecordTxID, int64(rec.TxID)),
				attribute.Int(constant.AttrAccountID, int(rec.AccountID)),
			)

			return Result{}, fmt.Errorf("record %d (%s tx %d client %d): %w", n, rec.Kind, rec.TxID, rec.AccountID, outcome.Err())
		}
	}

	l := p.Ledger()
	stats := p.Stats()

	span.SetAttributes(attribute.Int(constant.AttrRecordsTotal, stats.Total().Total()))

	if err := factory.RecordAccountsCreated(ctx, l.Len()); err != nil {
		logger.Log(ctx, log.LevelWarn, "failed to record accounts metric", log.Err(err))
	}

	if err := factory.RecordAccountsLocked(ctx, l.LockedCount()); err != nil {
		logger.Log(ctx, log.LevelWarn, "failed to record locked accounts metric", log.Err(err))
	}

	return Result{RunID: runID, Accounts: l.Snapshot(), Stats: stats}, nil
}

func (e *Engine) processorOptions(ctx context.Context, logger log.Logger) []processor.Option {
	var opts []processor.Option

	if e.cfg.StrictOwnership {
		opts = append(opts, processor.WithStrictOwnership())
	}

	if e.cfg.CheckInvariants {
		opts = append(opts, processor.WithInvariantChecks(assert.New(ctx, logger, "processor", "apply")))
	}

	return opts
}

// track attaches the engine's logger, tracer, metrics factory and a fresh run
// id to ctx unless ctx already carries a run.
func (e *Engine) track(ctx context.Context) context.Context {
	if payments.RunIDFromContext(ctx) != "" {
		return ctx
	}

	runID := "unknown"
	if id, err := payments.GenerateUUIDv7(); err == nil {
		runID = id.String()
	}

	ctx = payments.ContextWithRunID(ctx, runID)
	ctx = payments.ContextWithLogger(ctx, e.logger.With(log.RunID(runID)))
	ctx = payments.ContextWithTracer(ctx, e.tracer)

	return payments.ContextWithMetricFactory(ctx, e.metrics)
}

func recordFields(rec transaction.Record) []log.Field {
	fields := []log.Field{log.Kind(string(rec.Kind)), log.Client(rec.AccountID), log.Tx(rec.TxID)}

	if rec.Amount != nil {
		fields = append(fields, log.Amount(*rec.Amount))
	}

	return fields
}
