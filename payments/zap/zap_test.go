//go:build unit

package zap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	logpkg "github.com/LerianStudio/payment-engine/payments/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)

	return NewWithCore(core), observed
}

// newBufferedLogger writes JSON to a buffer for output inspection.
func newBufferedLogger(level zapcore.Level) (*Logger, *strings.Builder) {
	buf := &strings.Builder{}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(buf), level)

	return NewWithCore(core), buf
}

func TestLoggerNilReceiverFallsBackToNop(t *testing.T) {
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Log(context.Background(), logpkg.LevelError, "message")
		_ = nilLogger.With(logpkg.String("k", "v"))
	})
}

func TestLogDispatchesLevels(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	ctx := context.Background()

	logger.Log(ctx, logpkg.LevelDebug, "debug message")
	logger.Log(ctx, logpkg.LevelInfo, "info message", logpkg.Uint64("client", 1))
	logger.Log(ctx, logpkg.LevelWarn, "warn message")
	logger.Log(ctx, logpkg.LevelError, "error message", logpkg.Err(errors.New("boom")))

	entries := observed.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, uint64(1), entries[1].ContextMap()["client"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestLogAppendsTraceCorrelation(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.Log(ctx, logpkg.LevelInfo, "correlated")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, traceID.String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, spanID.String(), entries[0].ContextMap()["span_id"])
}

func TestWithAddsFieldsWithoutMutatingParent(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	child := logger.With(logpkg.String("run_id", "r-1"))

	logger.Log(context.Background(), logpkg.LevelInfo, "parent")
	child.Log(context.Background(), logpkg.LevelInfo, "child")

	entries := observed.All()
	require.Len(t, entries, 2)

	_, parentHasRun := entries[0].ContextMap()["run_id"]
	assert.False(t, parentHasRun)
	assert.Equal(t, "r-1", entries[1].ContextMap()["run_id"])
}

func TestEnabledRespectsCoreLevel(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.InfoLevel)

	assert.True(t, logger.Enabled(logpkg.LevelError))
	assert.True(t, logger.Enabled(logpkg.LevelInfo))
	assert.False(t, logger.Enabled(logpkg.LevelDebug))
}

func TestSyncHonorsCanceledContext(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, logger.Sync(ctx), context.Canceled)
	assert.NoError(t, logger.Sync(context.Background()))
}

func TestLogMessageNewlinesAreEscaped(t *testing.T) {
	logger, buf := newBufferedLogger(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "record\n{\"msg\":\"forged\"}")
	_ = logger.Sync(context.Background())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, buf.String(), `record\\n`)
}

func TestNewValidatesConfig(t *testing.T) {
	_, _, err := New(Config{Environment: EnvironmentProduction})
	require.ErrorIs(t, err, ErrMissingLibraryName)

	_, _, err = New(Config{Environment: "moon", OTelLibraryName: "payments"})
	require.Error(t, err)

	_, _, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "payments", Level: "loud"})
	require.Error(t, err)
}

func TestNewResolvesLevelByEnvironment(t *testing.T) {
	logger, level, err := New(Config{Environment: EnvironmentLocal, OTelLibraryName: "payments"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Equal(t, zapcore.DebugLevel, logger.Level().Level())

	_, level, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "payments"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	_, level, err = New(Config{Environment: EnvironmentProduction, OTelLibraryName: "payments", Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	_, level, err = New(Config{Environment: EnvironmentStaging, OTelLibraryName: "payments", Level: " WARNING "})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	_, level, err = New(Config{Environment: EnvironmentDevelopment, OTelLibraryName: "payments", Level: "error"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
}

func TestDomainFieldsAreTyped(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "record applied",
		logpkg.Kind("deposit"),
		logpkg.Client(7),
		logpkg.Tx(42),
		logpkg.Amount(decimal.RequireFromString("1.5")),
		logpkg.Duration("elapsed", 2*time.Second),
		logpkg.Any("cause", errors.New("boom")),
	)

	entries := observed.All()
	require.Len(t, entries, 1)

	fields := map[string]zapcore.Field{}
	for _, f := range entries[0].Context {
		fields[f.Key] = f
	}

	assert.Equal(t, zapcore.StringType, fields["kind"].Type)
	assert.Equal(t, zapcore.Uint64Type, fields["client"].Type)
	assert.Equal(t, zapcore.Uint64Type, fields["tx"].Type)
	assert.Equal(t, zapcore.StringerType, fields["amount"].Type)
	assert.Equal(t, zapcore.DurationType, fields["elapsed"].Type)
	assert.Equal(t, zapcore.ErrorType, fields["cause"].Type)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "1.5", ctx["amount"])
	assert.Equal(t, uint64(42), ctx["tx"])
}
