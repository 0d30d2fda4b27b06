//go:build unit

package engine

import (
	"testing"

	"github.com/LerianStudio/payment-engine/payments"
	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(constant.DefaultStreamThresholdBytes), cfg.StreamThresholdBytes)
	assert.Equal(t, int64(constant.DefaultStreamBuffer), cfg.StreamBuffer)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.EnvName = "moon" },
			message: "'EnvName' must be one of",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			message: "'LogLevel' must be one of",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.StreamThresholdBytes = -1 },
			message: "'StreamThresholdBytes' must be at least 0",
		},
		{
			name:    "zero buffer",
			mutate:  func(c *Config) { c.StreamBuffer = 0 },
			message: "'StreamBuffer' must be at least 1",
		},
		{
			name:    "oversized buffer",
			mutate:  func(c *Config) { c.StreamBuffer = 1 << 30 },
			message: "'StreamBuffer' must be at most",
		},
		{
			name:    "telemetry without collector",
			mutate:  func(c *Config) { c.EnableTelemetry = true },
			message: "'CollectorEndpoint' is required when",
		},
		{
			name:    "missing library name",
			mutate:  func(c *Config) { c.LibraryName = "" },
			message: "'LibraryName' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestConfigTelemetryWithCollector(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.EnableTelemetry = true
	cfg.CollectorEndpoint = "localhost:4317"

	assert.NoError(t, cfg.Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.StreamBuffer = 0

	e, err := New(cfg)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// LoadConfig reads process environment, so these tests do not run in parallel.

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		constant.EnvName, constant.EnvLogLevel, constant.EnvVersion,
		constant.EnvStreamThresholdBytes, constant.EnvStreamBuffer,
		constant.EnvStrictOwnership, constant.EnvCheckInvariants,
		constant.EnvEnableTelemetry, constant.EnvCollectorEndpoint, constant.EnvLibraryName,
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv(constant.EnvName, "production")
	t.Setenv(constant.EnvLogLevel, "debug")
	t.Setenv(constant.EnvVersion, "1.2.3")
	t.Setenv(constant.EnvStreamThresholdBytes, "2048")
	t.Setenv(constant.EnvStreamBuffer, "16")
	t.Setenv(constant.EnvStrictOwnership, "true")
	t.Setenv(constant.EnvCheckInvariants, "true")
	t.Setenv(constant.EnvEnableTelemetry, "true")
	t.Setenv(constant.EnvCollectorEndpoint, "collector:4317")
	t.Setenv(constant.EnvLibraryName, "ledger")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Config{
		EnvName:              "production",
		LogLevel:             "debug",
		Version:              "1.2.3",
		StreamThresholdBytes: 2048,
		StreamBuffer:         16,
		StrictOwnership:      true,
		CheckInvariants:      true,
		EnableTelemetry:      true,
		CollectorEndpoint:    "collector:4317",
		LibraryName:          "ledger",
	}, cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv(constant.EnvName, "local")
	t.Setenv(constant.EnvStreamBuffer, "0")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigRejectsUnparsableNumbers(t *testing.T) {
	for _, key := range []string{constant.EnvStreamThresholdBytes, constant.EnvStreamBuffer} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(constant.EnvName, "local")
			t.Setenv(constant.EnvStreamThresholdBytes, "")
			t.Setenv(constant.EnvStreamBuffer, "")
			t.Setenv(key, "5e8")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorIs(t, err, payments.ErrInvalidEnvValue)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadConfigRejectsUnparsableBool(t *testing.T) {
	t.Setenv(constant.EnvName, "local")
	t.Setenv(constant.EnvStrictOwnership, "sometimes")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, payments.ErrInvalidEnvValue)
}
