package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/OpportunityProxy/internal/infra/metrics"
	"github.com/OpportunityProxy/pkg/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DateLayout renders dates as "05 March 2024".
const DateLayout = "02 January 2006"

const tracerName = "query-proxy"

// Credentials holds the search provider keys. Scholarships use their own key.
type Credentials struct {
	Search      string
	Scholarship string
}

type QueryService struct {
	countries domain.CountryDirectory
	search    domain.SearchProvider
	shapers   map[domain.Intent]domain.Shaper
	events    domain.EventProducer
	keys      Credentials
	sampler   *logging.ErrorSampler
	now       func() time.Time
}

func NewQueryService(
	countries domain.CountryDirectory,
	search domain.SearchProvider,
	shapers map[domain.Intent]domain.Shaper,
	events domain.EventProducer,
	keys Credentials,
	sampler *logging.ErrorSampler,
) *QueryService {
	return &QueryService{
		countries: countries,
		search:    search,
		shapers:   shapers,
		events:    events,
		keys:      keys,
		sampler:   sampler,
		now:       time.Now,
	}
}

// ListCountries returns every country sorted by name.
func (s *QueryService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ListCountries")
	defer span.End()

	countries, err := s.countries.ListCountries(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "country directory failed")
		s.sampler.Error("countries", "Country listing failed", "error", err)
		return nil, err
	}
	s.sampler.Reset("countries")

	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})
	span.SetAttributes(attribute.Int("countries", len(countries)))
	return countries, nil
}

func (s *QueryService) Scholarships(ctx context.Context, country, degree string, page int) (*domain.SearchResult, error) {
	return s.relay(ctx, domain.IntentScholarships, domain.SearchRequest{
		APIKey: s.keys.Scholarship,
		Engine: domain.EngineGoogle,
		Query:  fmt.Sprintf("%s degree scholarships in %s", degree, country),
		Offset: domain.OffsetForPage(page),
		Paged:  true,
	})
}

func (s *QueryService) Jobs(ctx context.Context, title, location string, page int) (*domain.SearchResult, error) {
	return s.relay(ctx, domain.IntentJobs, domain.SearchRequest{
		APIKey: s.keys.Search,
		Engine: domain.EngineGoogleJobs,
		Query:  fmt.Sprintf("%s in %s", title, location),
		Offset: domain.OffsetForPage(page),
		Paged:  true,
		Flags:  map[string]string{"google_domain": "google.com"},
	})
}

func (s *QueryService) News(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	return s.relay(ctx, domain.IntentNews, domain.SearchRequest{
		APIKey: s.keys.Search,
		Engine: domain.EngineGoogleNews,
		Query:  query,
		Offset: domain.OffsetForPage(page),
		Paged:  true,
	})
}

// Internships are not paginated.
func (s *QueryService) Internships(ctx context.Context, discipline, location, state string) (*domain.SearchResult, error) {
	return s.relay(ctx, domain.IntentInternships, domain.SearchRequest{
		APIKey: s.keys.Search,
		Engine: domain.EngineGoogleJobs,
		Query:  fmt.Sprintf("%s internship in %s %s", discipline, state, location),
		Flags: map[string]string{
			"google_domain": "google.com",
			"gl":            "us",
			"hl":            "en",
		},
	})
}

func (s *QueryService) ResearchGrants(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	return s.relay(ctx, domain.IntentResearchGrants, domain.SearchRequest{
		APIKey: s.keys.Search,
		Engine: domain.EngineGoogle,
		Query:  query,
		Offset: domain.OffsetForPage(page),
		Paged:  true,
	})
}

func (s *QueryService) relay(ctx context.Context, intent domain.Intent, req domain.SearchRequest) (*domain.SearchResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "relay")
	defer span.End()
	span.SetAttributes(
		attribute.String("intent", string(intent)),
		attribute.String("engine", req.Engine),
		attribute.Int("offset", req.Offset),
	)

	shaper, ok := s.shapers[intent]
	if !ok {
		return nil, fmt.Errorf("no shaper registered for %s", intent)
	}

	// One date per request: every result missing a date gets the same value.
	today := s.now().Format(DateLayout)

	payload, err := s.search.Search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.sampler.Error(string(intent), "Search relay failed", "intent", intent, "engine", req.Engine, "error", err)
		return nil, err
	}
	s.sampler.Reset(string(intent))

	result, err := shaper.Shape(payload, today)
	if err != nil {
		err = &domain.ProviderError{Engine: req.Engine, Message: "malformed response: " + err.Error(), Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, "shape failed")
		slog.Error("Failed to shape provider response", "intent", intent, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("results", len(result.Items)))
	metrics.ResultsReturned.WithLabelValues(string(intent)).Add(float64(len(result.Items)))
	s.publish(ctx, intent, req, len(result.Items))
	return result, nil
}

func (s *QueryService) publish(ctx context.Context, intent domain.Intent, req domain.SearchRequest, count int) {
	event := &domain.SearchEvent{
		ID:          uuid.NewString(),
		RequestID:   domain.RequestIDFrom(ctx),
		Intent:      intent,
		Engine:      req.Engine,
		Query:       req.Query,
		Offset:      req.Offset,
		ResultCount: count,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		// The response is already built; a lost event is not the client's problem.
		if !errors.Is(err, context.Canceled) {
			slog.Warn("Failed to publish search event", "intent", intent, "error", err)
		}
		metrics.EventsPublished.WithLabelValues(string(intent), "error").Inc()
		return
	}
	metrics.EventsPublished.WithLabelValues(string(intent), "success").Inc()
}
