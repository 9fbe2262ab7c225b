// Package options provides configuration parsing and environment variable handling.
// This file contains edge case and validation tests for configuration parsing.
package options

import (
	"math"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvStringOrDefault_EdgeCases tests edge cases in string parsing
func TestEnvStringOrDefault_EdgeCases(t *testing.T) {
	t.Run("whitespace-only value is returned as-is", func(t *testing.T) {
		// Note: whitespace is treated as non-empty by current implementation
		cleanup := setEnvVar(t, "TEST_WHITESPACE", "   ")
		defer cleanup()

		result := envStringOrDefault("TEST_WHITESPACE", "default")
		// Current implementation returns whitespace since it's non-empty
		assert.Equal(t, "   ", result)
	})

	t.Run("very long string value", func(t *testing.T) {
		// Create a long string (10000 'x' characters)
		longValue := ""
		for range 1000 {
			longValue += "xxxxxxxxxx"
		}
		cleanup := setEnvVar(t, "TEST_LONG", longValue)
		defer cleanup()

		result := envStringOrDefault("TEST_LONG", "default")
		assert.Len(t, result, 10000)
	})

	t.Run("unicode characters", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_UNICODE", "日本語テスト")
		defer cleanup()

		result := envStringOrDefault("TEST_UNICODE", "default")
		assert.Equal(t, "日本語テスト", result)
	})

	t.Run("special characters", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_SPECIAL", "!@#$%^&*()_+-=[]{}|;':\",./<>?")
		defer cleanup()

		result := envStringOrDefault("TEST_SPECIAL", "default")
		assert.Equal(t, "!@#$%^&*()_+-=[]{}|;':\",./<>?", result)
	})

	t.Run("newline in value", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_NEWLINE", "line1\nline2")
		defer cleanup()

		result := envStringOrDefault("TEST_NEWLINE", "default")
		assert.Equal(t, "line1\nline2", result)
	})
}

// TestEnvDurationOrDefault_EdgeCases tests edge cases in duration parsing
func TestEnvDurationOrDefault_EdgeCases(t *testing.T) {
	t.Run("nanoseconds", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_NS", "100ns")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_NS", time.Second)
		require.NoError(t, err)
		assert.Equal(t, 100*time.Nanosecond, result)
	})

	t.Run("microseconds", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_US", "500us")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_US", time.Second)
		require.NoError(t, err)
		assert.Equal(t, 500*time.Microsecond, result)
	})

	t.Run("milliseconds", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_MS", "250ms")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_MS", time.Second)
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, result)
	})

	t.Run("hours", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_H", "24h")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_H", time.Second)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, result)
	})

	t.Run("combined duration", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_COMBINED", "1h30m45s")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_COMBINED", time.Second)
		require.NoError(t, err)
		expected := time.Hour + 30*time.Minute + 45*time.Second
		assert.Equal(t, expected, result)
	})

	t.Run("zero duration", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_ZERO", "0s")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_ZERO", time.Second)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), result)
	})

	t.Run("negative duration", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_NEG", "-5m")
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_NEG", time.Second)
		require.NoError(t, err)
		assert.Equal(t, -5*time.Minute, result)
	})

	t.Run("very large duration", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_DURATION_LARGE", "8760h") // 1 year
		defer cleanup()

		result, err := envDurationOrDefault("TEST_DURATION_LARGE", time.Second)
		require.NoError(t, err)
		assert.Equal(t, 8760*time.Hour, result)
	})
}

// TestEnvIntOrDefault_EdgeCases tests edge cases in int parsing
func TestEnvIntOrDefault_EdgeCases(t *testing.T) {
	t.Run("max int", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_INT_MAX", strconv.Itoa(math.MaxInt))
		defer cleanup()

		result, err := envIntOrDefault("TEST_INT_MAX", 0)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, result)
	})

	t.Run("min int", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_INT_MIN", strconv.Itoa(math.MinInt))
		defer cleanup()

		result, err := envIntOrDefault("TEST_INT_MIN", 0)
		require.NoError(t, err)
		assert.Equal(t, math.MinInt, result)
	})

	t.Run("zero value", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_INT_ZERO", "0")
		defer cleanup()

		result, err := envIntOrDefault("TEST_INT_ZERO", 999)
		require.NoError(t, err)
		assert.Equal(t, 0, result)
	})

	t.Run("positive with plus sign", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_INT_PLUS", "+42")
		defer cleanup()

		result, err := envIntOrDefault("TEST_INT_PLUS", 0)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})
}

// TestEnvBoolOrDefault_EdgeCases tests edge cases in bool parsing
func TestEnvBoolOrDefault_EdgeCases(t *testing.T) {
	t.Run("TRUE uppercase", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_BOOL", "TRUE")
		defer cleanup()

		result, err := envBoolOrDefault("TEST_BOOL", false)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("FALSE uppercase", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_BOOL", "FALSE")
		defer cleanup()

		result, err := envBoolOrDefault("TEST_BOOL", true)
		require.NoError(t, err)
		assert.False(t, result)
	})

	t.Run("True mixed case", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_BOOL", "True")
		defer cleanup()

		result, err := envBoolOrDefault("TEST_BOOL", false)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("False mixed case", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_BOOL", "False")
		defer cleanup()

		result, err := envBoolOrDefault("TEST_BOOL", true)
		require.NoError(t, err)
		assert.False(t, result)
	})
}

// TestEnvLogLevelOrDefault_EdgeCases tests edge cases in log level parsing
func TestEnvLogLevelOrDefault_EdgeCases(t *testing.T) {
	logLevels := []struct {
		input    string
		expected string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"disabled", "disabled"},
	}

	for _, tc := range logLevels {
		t.Run(tc.input, func(t *testing.T) {
			cleanup := setEnvVar(t, "TEST_LOG_LEVEL", tc.input)
			defer cleanup()

			result, err := envLogLevelOrDefault("TEST_LOG_LEVEL", zerolog.InfoLevel)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

// TestOptsPoolConfiguration tests connection pool configuration defaults and ranges
func TestOptsPoolConfiguration(t *testing.T) {
	t.Run("default pool values are sensible", func(t *testing.T) {
		opts := &Opts{
			MaxConnections: 10,
			DialTimeout:    10 * time.Second,
		}

		assert.Greater(t, opts.MaxConnections, 0, "Max connections should be positive")
		assert.Greater(t, opts.DialTimeout, time.Duration(0), "Dial timeout should be positive")
	})

	t.Run("edge case: single connection", func(t *testing.T) {
		opts := &Opts{MaxConnections: 1}

		assert.Equal(t, 1, opts.MaxConnections)
	})

	t.Run("edge case: very short dial timeout", func(t *testing.T) {
		opts := &Opts{DialTimeout: 1 * time.Millisecond}

		assert.Equal(t, time.Millisecond, opts.DialTimeout)
	})

	t.Run("edge case: very long dial timeout", func(t *testing.T) {
		opts := &Opts{DialTimeout: 24 * time.Hour}

		assert.Equal(t, 24*time.Hour, opts.DialTimeout)
	})
}

// TestOptsRetryConfiguration tests retry configuration edge cases
func TestOptsRetryConfiguration(t *testing.T) {
	t.Run("retry disabled via single attempt", func(t *testing.T) {
		opts := &Opts{RetryMaxAttempts: 1}

		assert.Equal(t, 1, opts.RetryMaxAttempts)
	})

	t.Run("backoff base delay less than max delay", func(t *testing.T) {
		opts := &Opts{
			RetryBaseDelay: 100 * time.Millisecond,
			RetryMaxDelay:  2 * time.Second,
		}

		assert.Less(t, opts.RetryBaseDelay, opts.RetryMaxDelay)
	})
}

// TestOptsDirectoryConfiguration tests directory connection configuration edge cases
func TestOptsDirectoryConfiguration(t *testing.T) {
	t.Run("complete configuration", func(t *testing.T) {
		opts := &Opts{
			DSBindDN:       "cn=bridge,ou=services,dc=example,dc=com",
			DSBindPassword: "secretpassword123",
		}

		assert.Contains(t, opts.DSBindDN, "cn=")
		assert.NotEmpty(t, opts.DSBindPassword)
	})

	t.Run("DN with special characters", func(t *testing.T) {
		opts := &Opts{
			DSBindDN: "cn=bridge+serialNumber=123,ou=services,dc=example,dc=com",
		}

		assert.Contains(t, opts.DSBindDN, "+serialNumber")
	})

	t.Run("DN with escaped characters", func(t *testing.T) {
		opts := &Opts{
			DSBindDN: "cn=bri\\,dge,ou=services,dc=example,dc=com",
		}

		assert.Contains(t, opts.DSBindDN, "\\,")
	})
}

// TestEnvironmentVariablePrecedence tests that env vars override defaults
func TestEnvironmentVariablePrecedence(t *testing.T) {
	t.Run("env overrides default for string", func(t *testing.T) {
		cleanup := setEnvVar(t, "TEST_PRECEDENCE", "from_env")
		defer cleanup()

		result := envStringOrDefault("TEST_PRECEDENCE", "from_default")
		assert.Equal(t, "from_env", result)
	})

	t.Run("unset env uses default", func(t *testing.T) {
		unsetEnvVar(t, "TEST_PRECEDENCE_UNSET")

		result := envStringOrDefault("TEST_PRECEDENCE_UNSET", "from_default")
		assert.Equal(t, "from_default", result)
	})
}

// TestConcurrentEnvironmentAccess tests concurrent env var access
func TestConcurrentEnvironmentAccess(t *testing.T) {
	const envKey = "TEST_CONCURRENT_ENV"
	cleanup := setEnvVar(t, envKey, "initial")
	defer cleanup()

	done := make(chan bool, 100)

	// Concurrent readers
	for range 50 {
		go func() {
			for range 100 {
				_ = envStringOrDefault(envKey, "default")
			}
			done <- true
		}()
	}

	// Concurrent writers
	for i := range 50 {
		go func(val int) {
			for range 100 {
				if err := os.Setenv(envKey, strconv.Itoa(val)); err != nil {
					t.Error(err)
				}
			}
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for range 100 {
		<-done
	}

	// Environment should still be accessible
	result := envStringOrDefault(envKey, "default")
	require.NotEmpty(t, result)
}
