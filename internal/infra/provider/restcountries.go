package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/sony/gobreaker"
)

const countryDirectoryName = "country directory"

// RestCountriesClient lists countries from the REST Countries API.
type RestCountriesClient struct {
	client *http.Client
	url    string
	cb     *gobreaker.CircuitBreaker
}

// NewRestCountriesClient creates a client for the full country listing at url.
func NewRestCountriesClient(url string, client *http.Client, breaker BreakerSettings) *RestCountriesClient {
	if client == nil {
		client = &http.Client{}
	}
	return &RestCountriesClient{
		client: client,
		url:    url,
		cb:     newCircuitBreaker("restcountries", breaker),
	}
}

// ListCountries fetches every country, in directory order.
func (c *RestCountriesClient) ListCountries(ctx context.Context) ([]domain.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := roundTrip(c.cb, c.client, req)
	if err != nil {
		if status := statusOf(err); status != 0 {
			return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, StatusCode: status}
		}
		return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, Err: err}
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, StatusCode: resp.StatusCode}
	}

	var records []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	countries := make([]domain.Country, 0, len(records))
	for i, record := range records {
		country, err := mapToCountry(record)
		if err != nil {
			return nil, &domain.UpstreamHTTPError{Upstream: countryDirectoryName, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		countries = append(countries, country)
	}
	return countries, nil
}

// mapToCountry keeps only the common name of a directory record.
func mapToCountry(data map[string]interface{}) (domain.Country, error) {
	nameMap, ok := data["name"].(map[string]interface{})
	if !ok {
		return domain.Country{}, fmt.Errorf("invalid 'name' field in API response")
	}
	commonName, ok := nameMap["common"].(string)
	if !ok {
		return domain.Country{}, fmt.Errorf("invalid 'common' name in API response")
	}
	return domain.Country{Name: commonName}, nil
}
