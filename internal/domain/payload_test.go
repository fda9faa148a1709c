package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_GetTreatsNullAsAbsent(t *testing.T) {
	p := Payload{"date": nil, "link": "https://example.org"}

	_, ok := p.Get("date")
	assert.False(t, ok)
	assert.Equal(t, "today", p.GetOr("date", "today"))
	assert.Equal(t, "https://example.org", p.GetOr("link", "x"))
}

func TestPayload_List(t *testing.T) {
	p := Payload{"jobs_results": []any{"a"}, "news_results": "oops"}

	list, err := p.List("jobs_results")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = p.List("organic_results")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = p.List("news_results")
	assert.Error(t, err)
}

func TestPayload_Object(t *testing.T) {
	p := Payload{"search_information": map[string]any{"total_results": 42}, "name": "x"}

	assert.Equal(t, 42, p.Object("search_information").GetOr("total_results", 0))
	assert.Nil(t, p.Object("name"))
	assert.Nil(t, p.Object("missing"))
	// A nil Payload still answers lookups.
	assert.Equal(t, 0, p.Object("missing").GetOr("total_results", 0))
}

func TestOffsetForPage(t *testing.T) {
	assert.Equal(t, 0, OffsetForPage(1))
	assert.Equal(t, 20, OffsetForPage(3))
	assert.Equal(t, -10, OffsetForPage(0))
}

func TestSearchResult_Envelope(t *testing.T) {
	jobs := (&SearchResult{Intent: IntentJobs}).Envelope()
	assert.Equal(t, map[string]any{"jobs": []any{}}, jobs)

	scholarships := (&SearchResult{Intent: IntentScholarships, Items: []any{"x"}, Total: 0, HasTotal: true}).Envelope()
	assert.Equal(t, map[string]any{"scholarships": []any{"x"}, "totalResults": 0}, scholarships)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "country directory returned status 503",
		(&UpstreamHTTPError{Upstream: "country directory", StatusCode: 503}).Error())
	assert.Equal(t, "search provider (google): Invalid API key.",
		(&ProviderError{Engine: "google", Message: "Invalid API key."}).Error())
}
