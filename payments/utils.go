package payments

import (
	"context"
	"math"

	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/mem"
)

// GenerateUUIDv7 returns a new time-ordered UUID.
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}

// SafeInt64ToInt converts val to int, clamping on overflow.
func SafeInt64ToInt(val int64) int {
	if val > math.MaxInt {
		return math.MaxInt
	}

	if val < math.MinInt {
		return math.MinInt
	}

	return int(val)
}

// GetMemUsage reads host memory usage and records it on the system memory gauge.
func GetMemUsage(ctx context.Context, factory *metrics.MetricsFactory) {
	if factory == nil {
		return
	}

	logger := NewLoggerFromContext(ctx)

	var percentageMem int64

	out, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		logger.Log(ctx, log.LevelWarn, "error getting memory info", log.Err(err))
	} else {
		percentageMem = int64(out.UsedPercent)
	}

	if err := factory.RecordSystemMemUsage(ctx, percentageMem); err != nil {
		logger.Log(ctx, log.LevelWarn, "error recording memory gauge", log.Err(err))
	}
}
