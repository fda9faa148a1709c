package provider

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/OpportunityProxy/internal/infra/metrics"
	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker placed in front of an upstream.
type BreakerSettings struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func newCircuitBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	metrics.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Only transport failures and 5xx answers mean the upstream is unhealthy.
			var se *serverError
			return err == nil || !(errors.As(err, &se) || errors.Is(err, errTransport))
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

var errTransport = errors.New("transport failure")

type serverError struct {
	StatusCode int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// roundTrip executes req through cb. Transport failures and 5xx responses are
// reported as breaker failures; every other response is handed back open.
func roundTrip(cb *gobreaker.CircuitBreaker, client *http.Client, req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := cb.Execute(func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errTransport, err)
		}
		if resp.StatusCode >= 500 {
			closeBody(resp)
			return nil, &serverError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
	metrics.UpstreamDuration.WithLabelValues(cb.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		var se *serverError
		switch {
		case errors.As(err, &se):
			metrics.UpstreamRequests.WithLabelValues(cb.Name(), fmt.Sprintf("%d", se.StatusCode)).Inc()
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.UpstreamRequests.WithLabelValues(cb.Name(), "rejected").Inc()
		default:
			metrics.UpstreamRequests.WithLabelValues(cb.Name(), "error").Inc()
		}
		return nil, err
	}

	resp := res.(*http.Response)
	metrics.UpstreamRequests.WithLabelValues(cb.Name(), fmt.Sprintf("%d", resp.StatusCode)).Inc()
	return resp, nil
}

// statusOf extracts the HTTP status carried by a roundTrip error, or 0.
func statusOf(err error) int {
	var se *serverError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Warn("Failed to close response body", "error", err)
	}
}
