// Package main provides the entry point for the SCIM-to-LDAP translation
// server. It wires configuration, the directory connection pool, the
// resource mapper registry, and the resource descriptor catalogue into a
// Backend, then serves a minimal liveness endpoint while the process runs.
//
// HTTP routing and request/response (de)serialization are out of this
// core's scope; the listener here exists only so the process has somewhere
// to report liveness, not as the SCIM wire protocol surface.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/netresearch/scim-ldap-bridge/internal/backend"
	"github.com/netresearch/scim-ldap-bridge/internal/directory"
	"github.com/netresearch/scim-ldap-bridge/internal/options"
	"github.com/netresearch/scim-ldap-bridge/internal/retry"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore/usermapper"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	opts, err := options.Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse configuration")
	}
	log.Logger = log.Logger.Level(opts.LogLevel)

	log.Info().Str("ds_host", opts.DSHost).Int("ds_port", opts.DSPort).Msg("scim-ldap-bridge starting")

	registry, catalogue := buildCore()

	manager := directory.NewManager(directory.Config{
		Host:           opts.DSHost,
		Port:           opts.DSPort,
		BindDN:         opts.DSBindDN,
		BindPassword:   opts.DSBindPassword,
		MaxConnections: opts.MaxConnections,
		BaseDN:         opts.BaseDN,
		DialTimeout:    opts.DialTimeout,
		UseTLS:         opts.DSUseTLS,
		TLSSkipVerify:  opts.DSTLSSkipVerify,
		Retry: retry.Config{
			MaxAttempts:    opts.RetryMaxAttempts,
			InitialDelay:   opts.RetryBaseDelay,
			MaxDelay:       opts.RetryMaxDelay,
			Multiplier:     2.0,
			JitterFraction: 0.1,
		},
	})
	defer func() {
		if err := manager.Close(); err != nil {
			log.Error().Err(err).Msg("error closing directory connection pool")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := manager.GetPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open directory connection pool")
	}

	bridge := backend.New(registry, directory.NewPoolInterface(pool), opts.BaseDN)

	srv := &http.Server{
		Addr:    opts.ListenAddress,
		Handler: livenessHandler(bridge, catalogue),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serverErr:
		log.Error().Err(err).Msg("listener error")
	}

	log.Info().Msg("initiating graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
		os.Exit(1)
	}

	log.Info().Msg("graceful shutdown complete")
}

// buildCore registers every resource mapper and resource descriptor the
// server knows about. A deployment adding a new SCIM resource kind adds a
// mapper package and one Register/Descriptor call here — the registry and
// catalogue themselves never need to change.
func buildCore() (*scimcore.Registry, *scimcore.Catalogue) {
	registry := scimcore.NewRegistry()
	for _, m := range []scimcore.Mapper{
		usermapper.CoreMapper{},
		usermapper.ContactMapper{},
		usermapper.AddressMapper{},
	} {
		if err := registry.Register(m); err != nil {
			log.Fatal().Err(err).Msg("could not register resource mapper")
		}
	}

	catalogue := scimcore.NewCatalogue()
	catalogue.Register(usermapper.Descriptor())

	return registry, catalogue
}

// livenessHandler reports the process is up and the resource catalogue is
// populated. It deliberately does not implement the SCIM HTTP surface
// (resource CRUD over JSON) — that wiring is a separate concern from the
// translation core this process hosts.
func livenessHandler(_ *backend.Backend, catalogue *scimcore.Catalogue) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		if _, err := catalogue.GetResourceDescriptor(usermapper.ResourceName); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
