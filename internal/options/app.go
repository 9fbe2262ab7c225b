// Package options provides configuration parsing and environment variable
// handling for the translation server.
package options

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Opts holds all configuration options for the translation server: directory
// connection settings, connection pool tuning, and logging configuration.
type Opts struct {
	LogLevel zerolog.Level

	DSHost          string
	DSPort          int
	DSBindDN        string
	DSBindPassword  string
	DSUseTLS        bool
	DSTLSSkipVerify bool
	BaseDN          string

	// Connection pool tuning.
	MaxConnections int
	DialTimeout    time.Duration

	// Retry tuning for transient directory failures, consumed by
	// internal/retry at pool-dial and borrow time.
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration

	// ListenAddress is the HTTP listener address. The process serves only a
	// liveness endpoint there; no SCIM resource routes are served.
	ListenAddress string
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// validateRequired checks if a required value is provided.
func validateRequired(name string, value *string) error {
	if *value == "" {
		return ValidationError{Field: name, Message: "this option is required"}
	}

	return nil
}

func envStringOrDefault(name, d string) string {
	if v, exists := os.LookupEnv(name); exists && v != "" {
		return v
	}

	return d
}

func envDurationOrDefault(name string, d time.Duration) (time.Duration, error) {
	raw := envStringOrDefault(name, d.String())

	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{
			Field:   name,
			Message: fmt.Sprintf("could not parse %q as duration: %v", raw, err),
		}
	}

	return v, nil
}

func envLogLevelOrDefault(name string, d zerolog.Level) (string, error) {
	raw := envStringOrDefault(name, d.String())

	if _, err := zerolog.ParseLevel(raw); err != nil {
		return "", ValidationError{
			Field:   name,
			Message: fmt.Sprintf("could not parse %q as log level: %v", raw, err),
		}
	}

	return raw, nil
}

func envBoolOrDefault(name string, d bool) (bool, error) {
	raw := envStringOrDefault(name, strconv.FormatBool(d))

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ValidationError{
			Field:   name,
			Message: fmt.Sprintf("could not parse %q as bool: %v", raw, err),
		}
	}

	return v, nil
}

func envIntOrDefault(name string, d int) (int, error) {
	raw := envStringOrDefault(name, strconv.Itoa(d))

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{
			Field:   name,
			Message: fmt.Sprintf("could not parse %q as int: %v", raw, err),
		}
	}

	return v, nil
}

// Parse parses command line flags and environment variables to build
// application configuration. It loads from .env files, parses flags, and
// validates required settings. Returns an error if any configuration is
// invalid or missing required values.
func Parse() (*Opts, error) {
	if err := godotenv.Load(".env.local", ".env"); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	logLevelStr, err := envLogLevelOrDefault("LOG_LEVEL", zerolog.InfoLevel)
	if err != nil {
		return nil, err
	}

	dsUseTLS, err := envBoolOrDefault("DS_USE_TLS", false)
	if err != nil {
		return nil, err
	}

	dsTLSSkipVerify, err := envBoolOrDefault("DS_TLS_SKIP_VERIFY", false)
	if err != nil {
		return nil, err
	}

	maxConnections, err := envIntOrDefault("DS_MAX_CONNECTIONS", 10)
	if err != nil {
		return nil, err
	}

	dialTimeout, err := envDurationOrDefault("DS_DIAL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	retryMaxAttempts, err := envIntOrDefault("DS_RETRY_MAX_ATTEMPTS", 3)
	if err != nil {
		return nil, err
	}

	retryBaseDelay, err := envDurationOrDefault("DS_RETRY_BASE_DELAY", 100*time.Millisecond)
	if err != nil {
		return nil, err
	}

	retryMaxDelay, err := envDurationOrDefault("DS_RETRY_MAX_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	var (
		fLogLevel = flag.String("log-level", logLevelStr,
			"Log level. Valid values are: trace, debug, info, warn, error, fatal, panic.")

		fDSHost = flag.String("ds-host", envStringOrDefault("DS_HOST", ""),
			"Directory server hostname or IP address.")
		fDSPortStr = flag.String("ds-port", envStringOrDefault("DS_PORT", "389"),
			"Directory server port.")
		fDSBindDN = flag.String("ds-bind-dn", envStringOrDefault("DS_BIND_DN", ""),
			"Distinguished name the translation server binds as.")
		fDSBindPassword = flag.String("ds-bind-password", envStringOrDefault("DS_BIND_PASSWORD", ""),
			"Password for ds-bind-dn.")
		fDSUseTLS = flag.Bool("ds-use-tls", dsUseTLS,
			"Connect to the directory server over LDAPS.")
		fDSTLSSkipVerify = flag.Bool("ds-tls-skip-verify", dsTLSSkipVerify,
			"Skip TLS certificate verification. Use only for development with self-signed certificates.")
		fBaseDN = flag.String("base-dn", envStringOrDefault("BASE_DN", ""),
			"Base DN under which new entries are created.")

		fMaxConnections = flag.Int("max-connections", maxConnections,
			"Maximum number of pooled connections to the directory server.")
		fDialTimeout = flag.Duration("dial-timeout", dialTimeout,
			"Timeout for establishing a new directory server connection.")

		fRetryMaxAttempts = flag.Int("retry-max-attempts", retryMaxAttempts,
			"Maximum attempts for dialing and binding a new directory server connection.")
		fRetryBaseDelay = flag.Duration("retry-base-delay", retryBaseDelay,
			"Base delay between retry attempts (grows exponentially).")
		fRetryMaxDelay = flag.Duration("retry-max-delay", retryMaxDelay,
			"Maximum delay between retry attempts.")

		fListenAddress = flag.String("listen-address", envStringOrDefault("LISTEN_ADDRESS", ":8080"),
			"Address the liveness HTTP endpoint listens on.")
	)

	if !flag.Parsed() {
		flag.Parse()
	}

	logLevel, err := zerolog.ParseLevel(*fLogLevel)
	if err != nil {
		return nil, ValidationError{Field: "log-level", Message: err.Error()}
	}

	if err := validateRequired("ds-host", fDSHost); err != nil {
		return nil, err
	}
	if err := validateRequired("ds-bind-dn", fDSBindDN); err != nil {
		return nil, err
	}
	if err := validateRequired("ds-bind-password", fDSBindPassword); err != nil {
		return nil, err
	}
	if err := validateRequired("base-dn", fBaseDN); err != nil {
		return nil, err
	}

	dsPort, err := strconv.Atoi(*fDSPortStr)
	if err != nil {
		return nil, ValidationError{Field: "ds-port", Message: fmt.Sprintf("could not parse %q as int: %v", *fDSPortStr, err)}
	}

	return &Opts{
		LogLevel: logLevel,

		DSHost:          *fDSHost,
		DSPort:          dsPort,
		DSBindDN:        *fDSBindDN,
		DSBindPassword:  *fDSBindPassword,
		DSUseTLS:        *fDSUseTLS,
		DSTLSSkipVerify: *fDSTLSSkipVerify,
		BaseDN:          *fBaseDN,

		MaxConnections: *fMaxConnections,
		DialTimeout:    *fDialTimeout,

		RetryMaxAttempts: *fRetryMaxAttempts,
		RetryBaseDelay:   *fRetryBaseDelay,
		RetryMaxDelay:    *fRetryMaxDelay,

		ListenAddress: *fListenAddress,
	}, nil
}
