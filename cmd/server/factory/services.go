package factory

import (
	"errors"

	"github.com/OpportunityProxy/internal/app"
	"github.com/OpportunityProxy/internal/domain"
	transport "github.com/OpportunityProxy/internal/transport/http"
	"github.com/OpportunityProxy/pkg/config"
	"github.com/OpportunityProxy/pkg/logging"
)

// NewErrorSampler creates the sampler used to throttle repeated upstream failure logs.
func NewErrorSampler(cfg *config.Config) *logging.ErrorSampler {
	return logging.NewErrorSampler(cfg.LogSampleInterval)
}

// NewQueryService creates the query service with validation.
func NewQueryService(
	countries domain.CountryDirectory,
	search domain.SearchProvider,
	shapers map[domain.Intent]domain.Shaper,
	events domain.EventProducer,
	sampler *logging.ErrorSampler,
	cfg *config.Config,
) (*app.QueryService, error) {
	if countries == nil {
		return nil, errors.New("country directory is nil")
	}
	if search == nil {
		return nil, errors.New("search provider is nil")
	}
	if len(shapers) == 0 {
		return nil, errors.New("no shapers configured")
	}
	if events == nil {
		return nil, errors.New("event producer is nil")
	}
	// Missing keys are not fatal: the provider reports them per request.
	if cfg.SearchAPIKey == "" {
		sampler.Error("config", "API_KEY is not set, search routes will fail")
	}

	return app.NewQueryService(
		countries,
		search,
		shapers,
		events,
		app.Credentials{Search: cfg.SearchAPIKey, Scholarship: cfg.ScholarshipAPIKey},
		sampler,
	), nil
}

// NewHandler exposes the query service over HTTP.
func NewHandler(svc *app.QueryService) *transport.Handler {
	return transport.NewHandler(svc)
}
