package runtime

import (
	"context"
	"runtime/debug"

	"github.com/LerianStudio/payment-engine/payments/log"
)

// Logger defines the minimal logging interface required by runtime.
// It is satisfied by payments/log.Logger.
type Logger interface {
	Log(ctx context.Context, level log.Level, msg string, fields ...log.Field)
}

// RecoverWithPolicyAndContext recovers from a panic, records it and then
// applies policy. Use it in a defer at the top of a goroutine or main.
//
//	defer runtime.RecoverWithPolicyAndContext(ctx, logger, "engine", "stream_decoder", runtime.KeepRunning)
func RecoverWithPolicyAndContext(ctx context.Context, logger Logger, component, name string, policy PanicPolicy) {
	if recovered := recover(); recovered != nil {
		HandlePanicValue(ctx, logger, recovered, component, name)

		if policy == CrashProcess {
			panic(recovered)
		}
	}
}

// HandlePanicValue processes a panic value that was already recovered by the
// caller. It logs and records observability data without calling recover itself.
func HandlePanicValue(ctx context.Context, logger Logger, panicValue any, component, name string) {
	if panicValue == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	stack := debug.Stack()
	logPanicWithStack(ctx, logger, component, name, panicValue, stack)
	recordPanicMetric(ctx, component, name)
	RecordPanicToSpanWithComponent(ctx, panicValue, stack, component, name)
	reportPanic(ctx, panicValue, stack, component, name)
}

func logPanicWithStack(ctx context.Context, logger Logger, component, name string, panicValue any, stack []byte) {
	if logger == nil {
		return
	}

	fields := []log.Field{
		log.String("component", component),
		log.String("source", name),
	}

	if IsProductionMode() {
		fields = append(fields, log.String("panic_value", redactedPanicMsg))
	} else {
		fields = append(fields,
			log.String("panic_value", formatPanicValue(panicValue)),
			log.String("stack_trace", string(stack)),
		)
	}

	logger.Log(ctx, log.LevelError, "panic recovered", fields...)
}
