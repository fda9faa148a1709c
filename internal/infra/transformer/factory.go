package transformer

import (
	"fmt"

	"github.com/OpportunityProxy/internal/domain"
)

// Result list keys in provider responses.
const (
	OrganicResultsKey = "organic_results"
	JobsResultsKey    = "jobs_results"
	NewsResultsKey    = "news_results"
)

// GetShaper returns the shaper for an intent.
// This acts as a factory/registry.
func GetShaper(intent domain.Intent) (domain.Shaper, error) {
	switch intent {
	case domain.IntentScholarships:
		return NewOrganicShaper(intent, true, true), nil
	case domain.IntentResearchGrants:
		return NewOrganicShaper(intent, false, false), nil
	case domain.IntentJobs, domain.IntentInternships:
		return NewPassthroughShaper(intent, JobsResultsKey), nil
	case domain.IntentNews:
		return NewPassthroughShaper(intent, NewsResultsKey), nil
	default:
		return nil, fmt.Errorf("shaper not found: %s", intent)
	}
}
