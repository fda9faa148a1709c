// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"context"
	"net/http"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/OpportunityProxy/internal/infra/provider"
	"github.com/OpportunityProxy/internal/infra/queue"
	"github.com/OpportunityProxy/pkg/config"
	"go.uber.org/fx"
)

// NewHTTPClient creates the client shared by both upstreams. A zero timeout
// leaves outbound calls bounded only by the inbound request's context.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPClientTimeout}
}

func breakerSettings(cfg *config.Config) provider.BreakerSettings {
	threshold := cfg.BreakerFailureThreshold
	if threshold < 1 {
		threshold = 1
	}
	return provider.BreakerSettings{
		FailureThreshold: uint32(threshold),
		OpenTimeout:      cfg.BreakerOpenTimeout,
	}
}

// NewCountryDirectory creates the REST Countries client.
func NewCountryDirectory(cfg *config.Config, client *http.Client) domain.CountryDirectory {
	return provider.NewRestCountriesClient(cfg.CountriesURL, client, breakerSettings(cfg))
}

// NewSearchProvider creates the SerpApi client.
func NewSearchProvider(cfg *config.Config, client *http.Client) domain.SearchProvider {
	return provider.NewSerpAPIClient(cfg.SearchURL, client, breakerSettings(cfg))
}

// NewEventProducer creates the Kafka search-event producer, or a no-op one when
// no brokers are configured.
func NewEventProducer(cfg *config.Config, lc fx.Lifecycle) domain.EventProducer {
	if !cfg.EventsEnabled() {
		return queue.NoopProducer{}
	}

	producer := queue.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})
	return producer
}
