//go:build unit

package runtime

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicPolicyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "KeepRunning", KeepRunning.String())
	assert.Equal(t, "CrashProcess", CrashProcess.String())
	assert.Equal(t, "Unknown", PanicPolicy(42).String())
}

func TestRecoverWithPolicyAndContext_KeepRunning(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}

	func() {
		defer RecoverWithPolicyAndContext(context.Background(), logger, "engine", "worker", KeepRunning)

		panic("boom")
	}()

	require.Len(t, logger.messages, 1)
	assert.Equal(t, "panic recovered", logger.messages[0])

	component, ok := logger.field("component")
	require.True(t, ok)
	assert.Equal(t, "engine", component)
}

func TestRecoverWithPolicyAndContext_CrashProcess(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}

	assert.PanicsWithValue(t, "fatal", func() {
		defer RecoverWithPolicyAndContext(context.Background(), logger, "engine", "main", CrashProcess)

		panic("fatal")
	})

	assert.Len(t, logger.messages, 1)
}

func TestRecoverWithPolicyAndContext_NoPanic(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}

	func() {
		defer RecoverWithPolicyAndContext(context.Background(), logger, "engine", "worker", KeepRunning)
	}()

	assert.Empty(t, logger.messages)
}

func TestHandlePanicValue_NilValueAndNilLogger(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}

	HandlePanicValue(context.Background(), logger, nil, "engine", "worker")
	assert.Empty(t, logger.messages)

	assert.NotPanics(t, func() {
		//nolint:staticcheck // nil context is tolerated
		HandlePanicValue(nil, nil, "value", "engine", "worker")
	})
}

// Tests below mutate package globals and do not run in parallel.

func TestHandlePanicValue_ReportsToErrorService(t *testing.T) {
	reporter := &captureReporter{}
	SetErrorReporter(reporter)
	t.Cleanup(func() { SetErrorReporter(nil) })

	cause := errors.New("decoder exploded")
	HandlePanicValue(context.Background(), &testLogger{}, cause, "engine", "stream_decoder")

	require.Len(t, reporter.reports, 1)
	report := reporter.reports[0]
	assert.ErrorIs(t, report.Err, cause)
	assert.Equal(t, "engine", report.Component)
	assert.Equal(t, "stream_decoder", report.Source)
	assert.Contains(t, report.Stack, "goroutine")
}

func TestHandlePanicValue_ProductionModeRedacts(t *testing.T) {
	reporter := &captureReporter{}
	SetErrorReporter(reporter)
	SetProductionMode(true)
	t.Cleanup(func() {
		SetErrorReporter(nil)
		SetProductionMode(false)
	})

	logger := &testLogger{}
	HandlePanicValue(context.Background(), logger, "account 7 secret", "engine", "worker")

	value, ok := logger.field("panic_value")
	require.True(t, ok)
	assert.Equal(t, redactedPanicMsg, value)

	_, hasStack := logger.field("stack_trace")
	assert.False(t, hasStack)

	require.Len(t, reporter.reports, 1)
	assert.Equal(t, redactedPanicMsg, reporter.reports[0].Err.Error())
	assert.Empty(t, reporter.reports[0].Stack)
}

func TestSetErrorReporterNilDisables(t *testing.T) {
	reporter := &captureReporter{}
	SetErrorReporter(reporter)
	assert.Same(t, reporter, GetErrorReporter())

	SetErrorReporter(nil)
	assert.Nil(t, GetErrorReporter())

	HandlePanicValue(context.Background(), &testLogger{}, "boom", "engine", "worker")
	assert.Empty(t, reporter.reports)
}

func TestTruncateStack(t *testing.T) {
	long := make([]byte, maxStackLen+10)
	for i := range long {
		long[i] = 'x'
	}

	truncated := truncateStack(long)
	assert.True(t, strings.HasSuffix(truncated, "...[truncated]"))
	assert.Len(t, truncated, maxStackLen+len("\n...[truncated]"))
	assert.Equal(t, "short", truncateStack([]byte("short")))
}

func TestProductionModeToggle(t *testing.T) {
	SetProductionMode(true)
	assert.True(t, IsProductionMode())

	SetProductionMode(false)
	assert.False(t, IsProductionMode())
}
