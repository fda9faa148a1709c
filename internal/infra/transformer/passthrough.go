package transformer

import "github.com/OpportunityProxy/internal/domain"

// PassthroughShaper returns one result list exactly as the provider sent it.
type PassthroughShaper struct {
	intent domain.Intent
	key    string
}

func NewPassthroughShaper(intent domain.Intent, key string) *PassthroughShaper {
	return &PassthroughShaper{intent: intent, key: key}
}

func (s *PassthroughShaper) Shape(payload domain.Payload, _ string) (*domain.SearchResult, error) {
	items, err := payload.List(s.key)
	if err != nil {
		return nil, err
	}
	return &domain.SearchResult{Intent: s.intent, Items: items}, nil
}
