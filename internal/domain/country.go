package domain

import "context"

// Country is the name-only record returned to the frontend.
type Country struct {
	Name string `json:"name"`
}

// CountryDirectory fetches the full list of countries from an external directory.
// Records are returned in the directory's order.
type CountryDirectory interface {
	ListCountries(ctx context.Context) ([]Country, error)
}
