package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/sony/gobreaker"
)

// SerpAPIClient runs searches against SerpApi's JSON search endpoint.
type SerpAPIClient struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

// NewSerpAPIClient creates a search client for the endpoint at baseURL.
func NewSerpAPIClient(baseURL string, client *http.Client, breaker BreakerSettings) *SerpAPIClient {
	if client == nil {
		client = &http.Client{}
	}
	return &SerpAPIClient{
		client:  client,
		baseURL: baseURL,
		cb:      newCircuitBreaker("serpapi", breaker),
	}
}

// Search sends req and returns the decoded response. Numbers are kept as
// json.Number so pass-through results re-encode exactly.
func (c *SerpAPIClient) Search(ctx context.Context, sr domain.SearchRequest) (domain.Payload, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &domain.ProviderError{Engine: sr.Engine, Err: fmt.Errorf("invalid search url: %w", err)}
	}
	endpoint.RawQuery = buildParams(sr).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &domain.ProviderError{Engine: sr.Engine, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := roundTrip(c.cb, c.client, req)
	if err != nil {
		return nil, &domain.ProviderError{Engine: sr.Engine, StatusCode: statusOf(err), Err: err}
	}
	defer closeBody(resp)

	payload, decodeErr := decodePayload(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		pe := &domain.ProviderError{Engine: sr.Engine, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if msg, ok := payload.String("error"); ok {
			pe.Message = msg
		}
		return nil, pe
	}
	if decodeErr != nil {
		return nil, &domain.ProviderError{Engine: sr.Engine, Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}
	if msg, ok := payload.String("error"); ok {
		return nil, &domain.ProviderError{Engine: sr.Engine, Message: msg}
	}
	return payload, nil
}

func decodePayload(r io.Reader) (domain.Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload domain.Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return payload, nil
}

// buildParams maps a SearchRequest onto SerpApi query parameters.
func buildParams(sr domain.SearchRequest) url.Values {
	params := url.Values{}
	params.Set("api_key", sr.APIKey)
	params.Set("engine", sr.Engine)
	params.Set("q", sr.Query)
	if sr.Paged {
		params.Set("start", strconv.Itoa(sr.Offset))
	}
	for k, v := range sr.Flags {
		params.Set(k, v)
	}
	params.Set("output", "json")
	return params
}
