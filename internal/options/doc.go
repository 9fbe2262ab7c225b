// Package options provides comprehensive configuration management for the
// translation server, supporting multiple configuration sources with
// priority-based resolution.
//
// # Overview
//
// This package handles all application configuration parsing from
// environment variables, command-line flags, and .env files. It provides
// type-safe configuration with validation, default values, and clear error
// messages for missing or invalid settings.
//
// Configuration sources are processed in priority order:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. .env files (.env.local, .env)
//  4. Default values (lowest priority)
//
// # Usage
//
// Basic usage in main.go:
//
//	import (
//	    "github.com/netresearch/scim-ldap-bridge/internal/options"
//	    "github.com/rs/zerolog"
//	    "github.com/rs/zerolog/log"
//	)
//
//	func main() {
//	    opts, err := options.Parse()
//	    if err != nil {
//	        log.Fatal().Err(err).Msg("invalid configuration")
//	    }
//	    zerolog.SetGlobalLevel(opts.LogLevel)
//	}
//
// # Configuration Options
//
// ## Required Settings
//
// The following settings MUST be provided (via flags, env vars, or .env):
//
//	DS_HOST            Directory server hostname
//	DS_BIND_DN          Distinguished name the server binds as
//	DS_BIND_PASSWORD    Password for DS_BIND_DN
//	BASE_DN             Base DN under which new entries are created
//
// Example .env file for required settings:
//
//	DS_HOST=dc1.example.com
//	DS_BIND_DN=cn=bridge,dc=example,dc=com
//	DS_BIND_PASSWORD=SecurePassword123
//	BASE_DN=ou=people,dc=example,dc=com
//
// ## Optional Directory Settings
//
//	DS_PORT=389                  # Directory server port (default: 389)
//	DS_USE_TLS=false              # Connect over LDAPS (default: false)
//	DS_TLS_SKIP_VERIFY=false      # Skip TLS certificate verification
//
// ## Connection Pool Settings
//
//	DS_MAX_CONNECTIONS=10         # Maximum pool size (default: 10)
//	DS_DIAL_TIMEOUT=10s           # Dial timeout for new connections
//
// ## Retry Settings
//
// Failed attempts to dial and bind a directory connection are retried with
// exponential backoff:
//
//	DS_RETRY_MAX_ATTEMPTS=3
//	DS_RETRY_BASE_DELAY=100ms
//	DS_RETRY_MAX_DELAY=2s
//
// ## Logging Configuration
//
//	LOG_LEVEL=info                # trace, debug, info, warn, error, fatal, panic
//
// # Validation
//
// The package performs comprehensive validation:
//
//   - Required fields: Parse returns a ValidationError if missing
//   - Type validation: duration, boolean, and integer values are validated
//     at parse time
//
// # Command-Line Flags
//
// All settings can be provided via command-line flags:
//
//	./scim-ldap-bridge \
//	  --ds-host dc1.example.com \
//	  --ds-bind-dn cn=bridge,dc=example,dc=com \
//	  --ds-bind-password SecurePassword123 \
//	  --base-dn ou=people,dc=example,dc=com \
//	  --log-level debug
//
// Run with --help to see all available flags and their descriptions.
package options
