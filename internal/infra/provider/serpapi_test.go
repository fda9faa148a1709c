package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPISearch_SendsParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "google_jobs", q.Get("engine"))
		assert.Equal(t, "software developer in nigeria", q.Get("q"))
		assert.Equal(t, "-10", q.Get("start"))
		assert.Equal(t, "google.com", q.Get("google_domain"))
		assert.Equal(t, "json", q.Get("output"))
		fmt.Fprintln(w, `{"jobs_results":[{"title":"Go Developer","extensions":["Full-time"]}]}`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	payload, err := client.Search(context.Background(), domain.SearchRequest{
		APIKey: "secret",
		Engine: domain.EngineGoogleJobs,
		Query:  "software developer in nigeria",
		Offset: -10,
		Paged:  true,
		Flags:  map[string]string{"google_domain": "google.com"},
	})

	require.NoError(t, err)
	jobs, err := payload.List("jobs_results")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestSerpAPISearch_UnpagedOmitsStart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasStart := r.URL.Query()["start"]
		assert.False(t, hasStart)
		fmt.Fprintln(w, `{}`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	_, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogleJobs, Query: "x"})

	require.NoError(t, err)
}

func TestSerpAPISearch_PreservesNumbers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"search_information":{"total_results":12345678901234567}}`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	payload, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogle})

	require.NoError(t, err)
	total := payload.Object("search_information").GetOr("total_results", 0)
	assert.Equal(t, json.Number("12345678901234567"), total)
}

func TestSerpAPISearch_ProviderReportedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"error":"Google hasn't returned any results for this query."}`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	_, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogleNews})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "Google hasn't returned any results for this query.", providerErr.Message)
}

func TestSerpAPISearch_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"error":"Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key"}`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	_, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogle})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSerpAPISearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	_, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogle})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusInternalServerError, providerErr.StatusCode)
}

func TestSerpAPISearch_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[1, 2, 3]`)
	}))
	defer server.Close()

	client := NewSerpAPIClient(server.URL, server.Client(), testBreaker())

	_, err := client.Search(context.Background(), domain.SearchRequest{Engine: domain.EngineGoogle})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestBuildParams(t *testing.T) {
	params := buildParams(domain.SearchRequest{
		APIKey: "k",
		Engine: domain.EngineGoogleJobs,
		Query:  "software engineer internship in lagos nigeria",
		Flags:  map[string]string{"gl": "us", "hl": "en"},
	})

	assert.Equal(t, "k", params.Get("api_key"))
	assert.Equal(t, "us", params.Get("gl"))
	assert.Equal(t, "en", params.Get("hl"))
	assert.Empty(t, params.Get("start"))
}
