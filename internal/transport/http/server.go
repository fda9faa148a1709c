package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpportunityProxy/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHTTPServer(cfg *config.Config, h *Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter registers the API, health and metrics routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)
	api.Handle("/countries", instrument("countries", h.Countries)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/scholarships", instrument("scholarships", h.Scholarships)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/jobs", instrument("jobs", h.Jobs)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/news", instrument("news", h.News)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/internships", instrument("internships", h.Internships)).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/research-grants", instrument("research_grants", h.ResearchGrants)).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "OK"); err != nil {
			slog.Warn("Failed to write health response", "error", err)
		}
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
