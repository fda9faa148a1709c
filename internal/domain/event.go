package domain

import (
	"context"
	"time"
)

// SearchEvent describes a completed relay for downstream analytics.
type SearchEvent struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Intent      Intent    `json:"intent"`
	Engine      string    `json:"engine"`
	Query       string    `json:"query"`
	Offset      int       `json:"offset"`
	ResultCount int       `json:"result_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventProducer publishes search events to a queue.
type EventProducer interface {
	Publish(ctx context.Context, event *SearchEvent) error
	Close() error
}

type requestIDKey struct{}

// WithRequestID stores the inbound request ID on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored on ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
