package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/LerianStudio/payment-engine/payments"
	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// Config holds the engine settings read from the environment.
type Config struct {
	EnvName              string `env:"ENV_NAME" validate:"oneof=production staging uat development local"`
	LogLevel             string `env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Version              string `env:"VERSION"`
	StreamThresholdBytes int64  `env:"PAYMENTS_STREAM_THRESHOLD_BYTES" validate:"gte=0"`
	StreamBuffer         int64  `env:"PAYMENTS_STREAM_BUFFER" validate:"gte=1,lte=1048576"`
	StrictOwnership      bool   `env:"PAYMENTS_STRICT_OWNERSHIP"`
	CheckInvariants      bool   `env:"PAYMENTS_CHECK_INVARIANTS"`
	EnableTelemetry      bool   `env:"ENABLE_TELEMETRY"`
	CollectorEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"required_if=EnableTelemetry true"`
	LibraryName          string `env:"OTEL_LIBRARY_NAME" validate:"required"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		EnvName:              "local",
		LogLevel:             "info",
		Version:              "NO-VERSION",
		StreamThresholdBytes: constant.DefaultStreamThresholdBytes,
		StreamBuffer:         constant.DefaultStreamBuffer,
		LibraryName:          constant.DefaultLibraryName,
	}
}

// LoadConfig reads the configuration from the environment, applies defaults
// for unset variables and validates the result.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := payments.SetConfigFromEnvVars(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	defaults := DefaultConfig()

	cfg.EnvName = payments.GetenvOrDefault(constant.EnvName, defaults.EnvName)
	cfg.LogLevel = payments.GetenvOrDefault(constant.EnvLogLevel, defaults.LogLevel)
	cfg.Version = payments.GetenvOrDefault(constant.EnvVersion, defaults.Version)
	cfg.LibraryName = payments.GetenvOrDefault(constant.EnvLibraryName, defaults.LibraryName)

	var err error

	if cfg.StreamThresholdBytes, err = payments.LookupEnvInt(constant.EnvStreamThresholdBytes, defaults.StreamThresholdBytes); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.StreamBuffer, err = payments.LookupEnvInt(constant.EnvStreamBuffer, defaults.StreamBuffer); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Validate checks the configuration and reports the first invalid field.
func (c Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return formatValidationError(validationErrors[0])
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

var validationErrorFormatters = map[string]func(field, param string) error{
	"required": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' is required", ErrInvalidConfig, field)
	},
	"required_if": func(field, param string) error {
		return fmt.Errorf("%w: '%s' is required when %s", ErrInvalidConfig, field, param)
	},
	"gte": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must be at least %s", ErrInvalidConfig, field, param)
	},
	"lte": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must be at most %s", ErrInvalidConfig, field, param)
	},
	"oneof": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must be one of [%s]", ErrInvalidConfig, field, param)
	},
}

func formatValidationError(fe validator.FieldError) error {
	if format, ok := validationErrorFormatters[fe.Tag()]; ok {
		return format(fe.Field(), fe.Param())
	}

	return fmt.Errorf("%w: '%s' failed '%s' check", ErrInvalidConfig, fe.Field(), fe.Tag())
}
