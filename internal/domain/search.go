package domain

import "context"

// Intent identifies one of the search routes. Its value doubles as the
// key of the result list in the response envelope.
type Intent string

const (
	IntentScholarships   Intent = "scholarships"
	IntentJobs           Intent = "jobs"
	IntentNews           Intent = "news"
	IntentInternships    Intent = "internships"
	IntentResearchGrants Intent = "research_grants"
)

// Search engines understood by the provider.
const (
	EngineGoogle     = "google"
	EngineGoogleJobs = "google_jobs"
	EngineGoogleNews = "google_news"
)

// ResultsPerPage is the provider's page size used to turn a page number into an offset.
const ResultsPerPage = 10

// SearchRequest is a provider-agnostic description of one outbound search.
type SearchRequest struct {
	APIKey string
	Engine string
	Query  string
	// Offset is sent as the provider's start parameter when Paged is set.
	// Negative values are forwarded as-is.
	Offset int
	Paged  bool
	Flags  map[string]string
}

// OffsetForPage converts a 1-based page number into a result offset.
func OffsetForPage(page int) int {
	return (page - 1) * ResultsPerPage
}

// SearchProvider runs a search and returns the raw, schemaless response.
type SearchProvider interface {
	Search(ctx context.Context, req SearchRequest) (Payload, error)
}

// OrganicResult is the trimmed form of a web search result. Fields are
// left untyped so that absent provider values encode as null.
type OrganicResult struct {
	Source  any `json:"source"`
	Link    any `json:"link"`
	Favicon any `json:"favicon"`
	Snippet any `json:"snippet"`
	Date    any `json:"date"`
}

type (
	ScholarshipResult = OrganicResult
	GrantResult       = OrganicResult
)

// SearchResult is a shaped provider response ready to be enveloped.
type SearchResult struct {
	Intent   Intent
	Items    []any
	// Total is only reported for intents that expose a result count.
	Total    any
	HasTotal bool
}

// Envelope builds the JSON object returned to the client.
func (r *SearchResult) Envelope() map[string]any {
	items := r.Items
	if items == nil {
		items = []any{}
	}
	env := map[string]any{string(r.Intent): items}
	if r.HasTotal {
		env["totalResults"] = r.Total
	}
	return env
}

// Shaper turns a raw provider payload into a SearchResult for one intent.
// today is the request's formatted current date, used where a date must be defaulted.
type Shaper interface {
	Shape(payload Payload, today string) (*SearchResult, error)
}
