package zap

import (
	"errors"
	"fmt"
	"strings"

	logpkg "github.com/LerianStudio/payment-engine/payments/log"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const callerSkipFrames = 1

// Environment selects a logger profile.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentUAT         Environment = "uat"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
)

// ErrMissingLibraryName is returned when Config.OTelLibraryName is empty.
var ErrMissingLibraryName = errors.New("OTelLibraryName is required")

// profile is the per-environment baseline. Verbose profiles default to debug
// and report the caller of every entry.
type profile struct {
	verbose bool
}

var profiles = map[Environment]profile{
	EnvironmentProduction:  {},
	EnvironmentStaging:     {},
	EnvironmentUAT:         {},
	EnvironmentDevelopment: {verbose: true},
	EnvironmentLocal:       {verbose: true},
}

// Config holds the logger inputs. Level accepts the same names as the
// LOG_LEVEL variable; empty picks the profile default.
type Config struct {
	Environment     Environment
	Level           string
	OTelLibraryName string
	// OutputPaths overrides the sinks. Stdout is reserved for the ledger,
	// so the default is stderr.
	OutputPaths []string
}

// New builds a JSON logger teed into the OpenTelemetry log bridge and returns
// it with its runtime-adjustable level.
func New(cfg Config) (*Logger, zap.AtomicLevel, error) {
	if cfg.OTelLibraryName == "" {
		return nil, zap.AtomicLevel{}, fmt.Errorf("invalid zap config: %w", ErrMissingLibraryName)
	}

	p, ok := profiles[cfg.Environment]
	if !ok {
		return nil, zap.AtomicLevel{}, fmt.Errorf("invalid zap config: unknown environment %q", cfg.Environment)
	}

	level, err := p.level(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zc := p.baseConfig()
	zc.Level = level
	zc.OutputPaths = outputs
	zc.ErrorOutputPaths = []string{"stderr"}

	built, err := zc.Build(
		zap.AddCallerSkip(callerSkipFrames),
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelzap.NewCore(cfg.OTelLibraryName))
		}),
	)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{logger: built, atomicLevel: level}, level, nil
}

func (p profile) level(name string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(name) == "" {
		if p.verbose {
			return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
		}

		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}

	parsed, err := logpkg.ParseLevel(name)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid zap config: %w", err)
	}

	return zap.NewAtomicLevelAt(logLevelToZap(parsed)), nil
}

func (p profile) baseConfig() zap.Config {
	zc := zap.NewProductionConfig()
	if p.verbose {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Encoding = "json"
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zc.DisableStacktrace = true
	zc.DisableCaller = !p.verbose

	return zc
}
