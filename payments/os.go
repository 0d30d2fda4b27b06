package payments

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/joho/godotenv"
)

var (
	// ErrNotPointer is returned by SetConfigFromEnvVars when s is not a pointer to a struct.
	ErrNotPointer = errors.New("config target must be a pointer to a struct")
	// ErrInvalidEnvValue is returned when a variable is set but does not parse.
	ErrInvalidEnvValue = errors.New("invalid environment variable value")
)

// GetenvOrDefault returns the trimmed value of key, or defaultValue when it is unset or blank.
func GetenvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	return value
}

// LookupEnvInt parses key as a base-10 int64. An unset or blank variable
// yields defaultValue; a value that does not parse is an error.
func LookupEnvInt(key string, defaultValue int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidEnvValue, key, raw)
	}

	return value, nil
}

// LookupEnvBool is the bool counterpart of LookupEnvInt.
func LookupEnvBool(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a bool", ErrInvalidEnvValue, key, raw)
	}

	return value, nil
}

// SetConfigFromEnvVars fills the exported fields of the struct pointed to by s
// from the environment variables named in their `env` tags.
// Supported kinds are string, bool and signed or unsigned integers.
// Unset variables leave the zero value in place; a set value that does not
// parse is an error wrapping ErrInvalidEnvValue.
//
//	type Config struct {
//		LogLevel string `env:"LOG_LEVEL"`
//	}
func SetConfigFromEnvVars(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotPointer
	}

	elem := v.Elem()
	t := elem.Type()

	for i := range t.NumField() {
		tag, ok := t.Field(i).Tag.Lookup("env")
		if !ok || tag == "" {
			continue
		}

		field := elem.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(GetenvOrDefault(tag, ""))
		case reflect.Bool:
			b, err := LookupEnvBool(tag, false)
			if err != nil {
				return err
			}

			field.SetBool(b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := LookupEnvInt(tag, 0)
			if err != nil {
				return err
			}

			field.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := LookupEnvInt(tag, 0)
			if err != nil {
				return err
			}

			if n < 0 {
				return fmt.Errorf("env %s: negative value %d for unsigned field %s", tag, n, t.Field(i).Name)
			}

			field.SetUint(uint64(n))
		default:
			return fmt.Errorf("env %s: unsupported field kind %s", tag, field.Kind())
		}
	}

	return nil
}

// LocalEnvConfig reports whether a local .env file was loaded.
type LocalEnvConfig struct {
	Initialized bool
}

var (
	localEnvConfig     *LocalEnvConfig
	localEnvConfigOnce sync.Once
)

// InitLocalEnvConfig prints the version and environment name to stderr and,
// when ENV_NAME is local, loads variables from a .env file in the working
// directory. Stdout is left untouched because it carries the ledger output.
func InitLocalEnvConfig() *LocalEnvConfig {
	version := GetenvOrDefault(constant.EnvVersion, "NO-VERSION")
	envName := GetenvOrDefault(constant.EnvName, "local")

	fmt.Fprintf(os.Stderr, "VERSION: %s\n\n", version)
	fmt.Fprintf(os.Stderr, "ENVIRONMENT NAME: %s\n\n", envName)

	if envName != "local" {
		return localEnvConfig
	}

	localEnvConfigOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "Skipping .env file; using system environment variables")

			localEnvConfig = &LocalEnvConfig{Initialized: false}

			return
		}

		fmt.Fprintln(os.Stderr, "Variables loaded from .env file")

		localEnvConfig = &LocalEnvConfig{Initialized: true}
	})

	return localEnvConfig
}
