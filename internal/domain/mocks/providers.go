package mocks

import (
	"context"

	"github.com/OpportunityProxy/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSearchProvider struct {
	mock.Mock
}

func (m *MockSearchProvider) Search(ctx context.Context, req domain.SearchRequest) (domain.Payload, error) {
	args := m.Called(ctx, req)

	// Handle nil payload
	var payload domain.Payload
	if args.Get(0) != nil {
		payload = args.Get(0).(domain.Payload)
	}
	return payload, args.Error(1)
}

type MockCountryDirectory struct {
	mock.Mock
}

func (m *MockCountryDirectory) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)

	var countries []domain.Country
	if args.Get(0) != nil {
		countries = args.Get(0).([]domain.Country)
	}
	return countries, args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, event *domain.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
