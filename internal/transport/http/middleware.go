package http

import (
	"log/slog"
	"net/http"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/OpportunityProxy/internal/infra/metrics"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware propagates or assigns a request ID.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(domain.WithRequestID(r.Context(), id)))
	})
}

// accessLogMiddleware logs one line per matched request with its route template and outcome.
func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		slog.Info("Handled request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
			"request_id", domain.RequestIDFrom(r.Context()),
		)
	})
}

// corsMiddleware allows any origin and answers preflight requests with 204.
var corsMiddleware = handlers.CORS(
	handlers.AllowedOrigins([]string{"*"}),
	handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	handlers.OptionStatusCode(http.StatusNoContent),
	handlers.MaxAge(600),
)

// instrument records request counts and latency for a named route.
func instrument(route string, h http.HandlerFunc) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(
		metrics.HTTPRequestDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(metrics.HTTPRequests.MustCurryWith(labels), h),
	)
}
