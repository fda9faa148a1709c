package transformer

import (
	"fmt"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/OpportunityProxy/internal/infra/metrics"
)

// OrganicShaper trims web search results to source, link, favicon, snippet and date.
type OrganicShaper struct {
	intent      domain.Intent
	defaultDate bool
	reportTotal bool
}

// NewOrganicShaper creates a shaper for organic results. With defaultDate, results
// lacking a date get the request date; with reportTotal, the provider's total
// result count is included.
func NewOrganicShaper(intent domain.Intent, defaultDate, reportTotal bool) *OrganicShaper {
	return &OrganicShaper{
		intent:      intent,
		defaultDate: defaultDate,
		reportTotal: reportTotal,
	}
}

func (s *OrganicShaper) Shape(payload domain.Payload, today string) (*domain.SearchResult, error) {
	organic, err := payload.List(OrganicResultsKey)
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(organic))
	for i, raw := range organic {
		entry, ok := domain.AsPayload(raw)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is %T, not an object", OrganicResultsKey, i, raw)
		}
		items = append(items, s.normalize(entry, today))
	}

	result := &domain.SearchResult{Intent: s.intent, Items: items}
	if s.reportTotal {
		result.HasTotal = true
		result.Total = payload.Object("search_information").GetOr("total_results", 0)
	}
	return result, nil
}

func (s *OrganicShaper) normalize(entry domain.Payload, today string) domain.OrganicResult {
	date := entry["date"]
	if s.defaultDate && date == nil {
		date = today
		metrics.DatesDefaulted.Inc()
	}

	return domain.OrganicResult{
		Source:  entry["source"],
		Link:    entry["link"],
		Favicon: entry["favicon"],
		Snippet: entry["snippet"],
		Date:    date,
	}
}
