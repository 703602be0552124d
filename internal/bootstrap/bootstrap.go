// Package bootstrap assembles the reconciliation engine from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/database"
	"cstore-prefill/internal/common/googlemaps"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/smarty"
	"cstore-prefill/internal/reconcile"
	"cstore-prefill/internal/registry"
)

const (
	registryPingAttempts = 5
	registryPingDelay    = 2 * time.Second
)

// Engine is a wired reconciliation service plus the resources it owns.
type Engine struct {
	Service  *reconcile.Service
	Matcher  *registry.Matcher
	Registry *database.PostgresClient
	Options  reconcile.Options
}

// NewEngine builds the provider clients, the registry matcher and the
// service. A missing maps key disables the places source; a missing or
// unreachable registry store leaves matching degraded, never fatal.
func NewEngine(ctx context.Context, cfg *config.Config, recorder reconcile.Recorder, log logger.Logger) (*Engine, error) {
	pg, err := database.NewPostgres(cfg.Database.Registry)
	if err != nil {
		return nil, fmt.Errorf("registry store: %w", err)
	}
	if pg == nil {
		log.Warn("registry store not configured, ownership will be unknown", nil)
	} else {
		err = RetryWithBackoff(ctx, func() error {
			return pg.Ping(ctx)
		}, registryPingAttempts, registryPingDelay, log, "registry store connection")
		if err != nil {
			log.Warn("registry store unreachable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	opts := reconcile.Options{
		MapsAPIKey:     cfg.Providers.GoogleMaps.APIKey,
		MinMatchLength: cfg.Ownership.MinMatchLength,
	}

	matcher := registry.NewMatcher(pg.GetDB(), log)
	sources := reconcile.Sources{
		Parcel:   smarty.NewClient(cfg.Providers.Smarty, log),
		Registry: matcher,
	}
	if cfg.Providers.GoogleMaps.APIKey != "" {
		sources.Places = googlemaps.NewClient(cfg.Providers.GoogleMaps, log)
	} else {
		log.Warn("google maps api key not set, business presence disabled", nil)
	}

	return &Engine{
		Service:  reconcile.NewService(sources, opts, recorder, log),
		Matcher:  matcher,
		Registry: pg,
		Options:  opts,
	}, nil
}

// Close releases the registry pool.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	return e.Registry.Close()
}

// RetryWithBackoff runs operation up to maxRetries times, doubling the delay
// after each failure. It stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", operationName, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
