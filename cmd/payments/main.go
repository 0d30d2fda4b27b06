// Command payments applies a CSV file of client transactions to an in-memory
// ledger and writes the resulting account balances to stdout.
//
//	payments transactions.csv > accounts.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LerianStudio/payment-engine/payments"
	"github.com/LerianStudio/payment-engine/payments/assert"
	"github.com/LerianStudio/payment-engine/payments/csvio"
	"github.com/LerianStudio/payment-engine/payments/engine"
	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry"
	"github.com/LerianStudio/payment-engine/payments/runtime"
	"github.com/LerianStudio/payment-engine/payments/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		os.Exit(1)
	}
}

func run(path string) (err error) {
	payments.InitLocalEnvConfig()

	cfg, err := engine.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	logger, _, err := zap.New(zap.Config{
		Environment:     zap.Environment(cfg.EnvName),
		Level:           cfg.LogLevel,
		OTelLibraryName: cfg.LibraryName,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		_ = logger.Sync(context.Background())
	}()

	defer runtime.RecoverWithPolicyAndContext(ctx, logger, "cmd", "main", runtime.CrashProcess)

	runtime.SetProductionMode(cfg.EnvName == string(zap.EnvironmentProduction))

	telemetry, err := opentelemetry.InitializeTelemetry(ctx, &opentelemetry.TelemetryConfig{
		LibraryName:               cfg.LibraryName,
		ServiceName:               cfg.LibraryName,
		ServiceVersion:            cfg.Version,
		DeploymentEnv:             cfg.EnvName,
		CollectorExporterEndpoint: cfg.CollectorEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		log.SafeError(logger, ctx, "failed to initialize telemetry", err, runtime.IsProductionMode())
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := telemetry.ShutdownTelemetry(shutdownCtx); shutdownErr != nil {
			logger.Log(shutdownCtx, log.LevelWarn, "telemetry shutdown failed", log.Err(shutdownErr))
		}
	}()

	runtime.SetErrorReporter(telemetry.PanicReporter())
	runtime.InitPanicMetrics(telemetry.MetricsFactory)
	assert.InitAssertionMetrics(telemetry.MetricsFactory)

	eng, err := engine.New(cfg,
		engine.WithLogger(logger),
		engine.WithTracer(telemetry.Tracer()),
		engine.WithMetricsFactory(telemetry.MetricsFactory),
	)
	if err != nil {
		logger.Log(ctx, log.LevelError, "failed to build engine", log.Err(err))
		return err
	}

	result, err := eng.Run(ctx, path)
	if err != nil {
		report(ctx, logger, err)
		return err
	}

	if err := result.RenderTo(csvio.NewWriter(os.Stdout)); err != nil {
		logger.Log(ctx, log.LevelError, "failed to write ledger", log.Err(err))
		return err
	}

	return nil
}

func report(ctx context.Context, logger log.Logger, err error) {
	var response payments.Response
	if errors.As(payments.ValidateBusinessError(err, "transaction"), &response) {
		logger.Log(ctx, log.LevelError, response.Title,
			log.String("code", response.Code),
			log.String("message", response.Message),
			log.Err(err),
		)

		return
	}

	log.SafeError(logger, ctx, "run aborted", err, runtime.IsProductionMode())
}
