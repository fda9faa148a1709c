package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/OpportunityProxy/internal/domain"
)

// QueryService is what the handlers need from the application layer.
type QueryService interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	Scholarships(ctx context.Context, country, degree string, page int) (*domain.SearchResult, error)
	Jobs(ctx context.Context, title, location string, page int) (*domain.SearchResult, error)
	News(ctx context.Context, query string, page int) (*domain.SearchResult, error)
	Internships(ctx context.Context, discipline, location, state string) (*domain.SearchResult, error)
	ResearchGrants(ctx context.Context, query string, page int) (*domain.SearchResult, error)
}

// Defaults applied when a query parameter is not supplied.
const (
	DefaultCountry     = "usa"
	DefaultDegree      = "master"
	DefaultJobTitle    = "software developer"
	DefaultLocation    = "nigeria"
	DefaultNewsQuery   = "latest news"
	DefaultDiscipline  = "software engineer"
	DefaultState       = "lagos"
	DefaultGrantsQuery = "current research grants for master and phd students"
	defaultPage        = 1
)

type Handler struct {
	svc QueryService
}

func NewHandler(svc QueryService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.svc.ListCountries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if countries == nil {
		countries = []domain.Country{}
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *Handler) Scholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := pageParam(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.Scholarships(r.Context(),
		param(q, "selectedCountry", DefaultCountry),
		param(q, "selectedDegree", DefaultDegree),
		page,
	))
}

func (h *Handler) Jobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := pageParam(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.Jobs(r.Context(),
		param(q, "title", DefaultJobTitle),
		param(q, "location", DefaultLocation),
		page,
	))
}

func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := pageParam(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.News(r.Context(), param(q, "query", DefaultNewsQuery), page))
}

func (h *Handler) Internships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.respond(w, r)(h.svc.Internships(r.Context(),
		param(q, "discipline", DefaultDiscipline),
		param(q, "location", DefaultLocation),
		param(q, "state", DefaultState),
	))
}

func (h *Handler) ResearchGrants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := pageParam(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.ResearchGrants(r.Context(), param(q, "query", DefaultGrantsQuery), page))
}

// respond writes a search result's envelope, or the error envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) func(*domain.SearchResult, error) {
	return func(result *domain.SearchResult, err error) {
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result.Envelope())
	}
}

// param returns the query value for key, or fallback when the key is absent.
// A key present with an empty value yields "".
func param(q url.Values, key, fallback string) string {
	if !q.Has(key) {
		return fallback
	}
	return q.Get(key)
}

// pageParam parses the 1-based page number. Zero and negative pages are accepted.
func pageParam(q url.Values) (int, error) {
	if !q.Has("page") {
		return defaultPage, nil
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		return 0, fmt.Errorf("invalid page %q: %w", q.Get("page"), err)
	}
	return page, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError is the single place errors become the {"error": ...} envelope.
// Every failure kind maps to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn("Request failed",
		"path", r.URL.Path,
		"request_id", domain.RequestIDFrom(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
