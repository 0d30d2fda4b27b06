package runtime

import (
	"context"
	"fmt"
	"sync/atomic"
)

// PanicReport describes one recovered panic. Stack is empty in production mode.
type PanicReport struct {
	Component string
	Source    string
	Err       error
	Stack     string
}

// ErrorReporter receives recovered panics in addition to the process log.
// Implementations must be safe for concurrent use and must not panic.
type ErrorReporter interface {
	ReportPanic(ctx context.Context, report PanicReport)
}

type reporterBox struct {
	reporter ErrorReporter
}

var (
	currentReporter atomic.Pointer[reporterBox]
	productionMode  atomic.Bool
)

const redactedPanicMsg = "panic recovered (details redacted)"

// maxStackLen bounds the stack trace handed to an ErrorReporter.
const maxStackLen = 4096

// SetErrorReporter installs reporter. Pass nil to disable reporting.
func SetErrorReporter(reporter ErrorReporter) {
	if reporter == nil {
		currentReporter.Store(nil)
		return
	}

	currentReporter.Store(&reporterBox{reporter: reporter})
}

// GetErrorReporter returns the installed reporter, or nil.
func GetErrorReporter() ErrorReporter {
	if box := currentReporter.Load(); box != nil {
		return box.reporter
	}

	return nil
}

// SetProductionMode enables or disables redaction of panic details.
func SetProductionMode(enabled bool) {
	productionMode.Store(enabled)
}

// IsProductionMode returns whether production mode is enabled.
func IsProductionMode() bool {
	return productionMode.Load()
}

func reportPanic(ctx context.Context, panicValue any, stack []byte, component, source string) {
	reporter := GetErrorReporter()
	if reporter == nil {
		return
	}

	production := IsProductionMode()

	report := PanicReport{
		Component: component,
		Source:    source,
		Err:       toPanicError(panicValue, production),
	}

	if !production {
		report.Stack = truncateStack(stack)
	}

	reporter.ReportPanic(ctx, report)
}

func truncateStack(stack []byte) string {
	if len(stack) <= maxStackLen {
		return string(stack)
	}

	return string(stack[:maxStackLen]) + "\n...[truncated]"
}

type panicError struct {
	message string
}

func (e *panicError) Error() string {
	return e.message
}

func toPanicError(panicValue any, production bool) error {
	if production {
		return &panicError{message: redactedPanicMsg}
	}

	if err, ok := panicValue.(error); ok {
		return err
	}

	return &panicError{message: "panic: " + formatPanicValue(panicValue)}
}

func formatPanicValue(value any) string {
	switch val := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case error:
		return val.Error()
	default:
		return fmt.Sprintf("%v", value)
	}
}
