package factory

import (
	"log/slog"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/OpportunityProxy/internal/infra/transformer"
)

var searchIntents = []domain.Intent{
	domain.IntentScholarships,
	domain.IntentJobs,
	domain.IntentNews,
	domain.IntentInternships,
	domain.IntentResearchGrants,
}

// NewShapers registers a response shaper for every search intent.
func NewShapers() (map[domain.Intent]domain.Shaper, error) {
	shapers := make(map[domain.Intent]domain.Shaper, len(searchIntents))
	for _, intent := range searchIntents {
		s, err := transformer.GetShaper(intent)
		if err != nil {
			return nil, err
		}
		shapers[intent] = s
		slog.Debug("Registered shaper", "intent", intent)
	}
	return shapers, nil
}
