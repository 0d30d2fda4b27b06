//go:build unit

package payments

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetenvOrDefault(t *testing.T) {
	t.Setenv("PAYMENTS_TEST_STRING", "value")
	assert.Equal(t, "value", GetenvOrDefault("PAYMENTS_TEST_STRING", "default"))

	t.Setenv("PAYMENTS_TEST_STRING", "   ")
	assert.Equal(t, "default", GetenvOrDefault("PAYMENTS_TEST_STRING", "default"), "whitespace-only returns default")

	t.Setenv("PAYMENTS_TEST_STRING", "")
	os.Unsetenv("PAYMENTS_TEST_STRING")
	assert.Equal(t, "default", GetenvOrDefault("PAYMENTS_TEST_STRING", "default"))
}

func TestSetConfigFromEnvVars_Success(t *testing.T) {
	type Config struct {
		StringField string `env:"PAYMENTS_TEST_STRING_FIELD"`
		BoolField   bool   `env:"PAYMENTS_TEST_BOOL_FIELD"`
		IntField    int64  `env:"PAYMENTS_TEST_INT_FIELD"`
		UintField   uint32 `env:"PAYMENTS_TEST_UINT_FIELD"`
		Untagged    string
	}

	t.Setenv("PAYMENTS_TEST_STRING_FIELD", "test-value")
	t.Setenv("PAYMENTS_TEST_BOOL_FIELD", "true")
	t.Setenv("PAYMENTS_TEST_INT_FIELD", "123")
	t.Setenv("PAYMENTS_TEST_UINT_FIELD", "1024")

	config := &Config{Untagged: "kept"}
	require.NoError(t, SetConfigFromEnvVars(config))

	assert.Equal(t, "test-value", config.StringField)
	assert.True(t, config.BoolField)
	assert.Equal(t, int64(123), config.IntField)
	assert.Equal(t, uint32(1024), config.UintField)
	assert.Equal(t, "kept", config.Untagged)
}

func TestSetConfigFromEnvVars_NonPointer(t *testing.T) {
	type Config struct {
		Field string `env:"PAYMENTS_TEST_FIELD"`
	}

	assert.ErrorIs(t, SetConfigFromEnvVars(Config{}), ErrNotPointer)
	assert.ErrorIs(t, SetConfigFromEnvVars((*Config)(nil)), ErrNotPointer)
}

func TestSetConfigFromEnvVars_NegativeUnsigned(t *testing.T) {
	type Config struct {
		Buffer uint `env:"PAYMENTS_TEST_NEG_UINT"`
	}

	t.Setenv("PAYMENTS_TEST_NEG_UINT", "-1")

	assert.Error(t, SetConfigFromEnvVars(&Config{}))
}

func TestLookupEnvInt(t *testing.T) {
	t.Setenv("PAYMENTS_TEST_INT", " 2048 ")
	n, err := LookupEnvInt("PAYMENTS_TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), n)

	t.Setenv("PAYMENTS_TEST_INT", "")
	n, err = LookupEnvInt("PAYMENTS_TEST_INT", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	t.Setenv("PAYMENTS_TEST_INT", "5e8")
	_, err = LookupEnvInt("PAYMENTS_TEST_INT", 7)
	require.ErrorIs(t, err, ErrInvalidEnvValue)
	assert.Contains(t, err.Error(), `PAYMENTS_TEST_INT="5e8"`)
}

func TestLookupEnvBool(t *testing.T) {
	t.Setenv("PAYMENTS_TEST_BOOL", "")
	b, err := LookupEnvBool("PAYMENTS_TEST_BOOL", true)
	require.NoError(t, err)
	assert.True(t, b)

	t.Setenv("PAYMENTS_TEST_BOOL", "yes")
	_, err = LookupEnvBool("PAYMENTS_TEST_BOOL", true)
	assert.ErrorIs(t, err, ErrInvalidEnvValue)
}

func TestSetConfigFromEnvVars_Unparsable(t *testing.T) {
	type Config struct {
		Threshold int64 `env:"PAYMENTS_TEST_BAD_INT"`
		Strict    bool  `env:"PAYMENTS_TEST_BAD_BOOL"`
		Buffer    uint  `env:"PAYMENTS_TEST_BAD_UINT"`
	}

	t.Setenv("PAYMENTS_TEST_BAD_INT", "5e8")
	assert.ErrorIs(t, SetConfigFromEnvVars(&Config{}), ErrInvalidEnvValue)

	t.Setenv("PAYMENTS_TEST_BAD_INT", "")
	t.Setenv("PAYMENTS_TEST_BAD_BOOL", "maybe")
	assert.ErrorIs(t, SetConfigFromEnvVars(&Config{}), ErrInvalidEnvValue)

	t.Setenv("PAYMENTS_TEST_BAD_BOOL", "")
	t.Setenv("PAYMENTS_TEST_BAD_UINT", "1k")
	assert.ErrorIs(t, SetConfigFromEnvVars(&Config{}), ErrInvalidEnvValue)
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	stderr := os.Stderr

	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	os.Stderr = writer

	var output bytes.Buffer

	done := make(chan error, 1)

	go func() {
		_, copyErr := io.Copy(&output, reader)
		done <- copyErr
	}()

	fn()

	os.Stderr = stderr

	require.NoError(t, writer.Close())
	require.NoError(t, <-done)
	require.NoError(t, reader.Close())

	return output.String()
}

func TestInitLocalEnvConfigPrintsVersionAndEnvironment(t *testing.T) {
	t.Setenv("VERSION", "NO-VERSION")
	t.Setenv("ENV_NAME", "development")

	localEnvConfig = nil
	localEnvConfigOnce = sync.Once{}

	result := captureStderr(t, func() {
		assert.Nil(t, InitLocalEnvConfig())
	})

	want := "VERSION: NO-VERSION\n\nENVIRONMENT NAME: development\n\n"
	assert.True(t, strings.Contains(result, want), "unexpected output: %q", result)
}

func TestInitLocalEnvConfigLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAYMENTS_TEST_FROM_DOTENV=loaded\n"), 0o600))

	t.Chdir(dir)
	t.Setenv("ENV_NAME", "local")
	t.Setenv("PAYMENTS_TEST_FROM_DOTENV", "")
	os.Unsetenv("PAYMENTS_TEST_FROM_DOTENV")

	localEnvConfig = nil
	localEnvConfigOnce = sync.Once{}

	var cfg *LocalEnvConfig

	result := captureStderr(t, func() {
		cfg = InitLocalEnvConfig()
	})

	require.NotNil(t, cfg)
	assert.True(t, cfg.Initialized)
	assert.Equal(t, "loaded", os.Getenv("PAYMENTS_TEST_FROM_DOTENV"))
	assert.Contains(t, result, "Variables loaded from .env file")
}
