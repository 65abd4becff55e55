// Package repository holds the in-memory collection store that stands in for
// the admin backend's database during development.
package repository

import (
	"context"

	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/query"
	"github.com/okian/fog/internal/domain/types"
)

// CityFilter narrows a city list. Empty fields do not filter.
type CityFilter struct {
	// Keyword is a case-sensitive substring of Name.
	Keyword string
	// Country is a case-sensitive substring of EnglishName.
	Country string
}

// LocationFilter narrows a location list. Empty fields do not filter.
type LocationFilter struct {
	// Keyword is a case-sensitive substring of Name.
	Keyword string
	// CityID, when set, must equal the location's CityID.
	CityID *int64
}

// Store provides list and CRUD access to cities and locations.
type Store interface {
	ListCities(ctx context.Context, f CityFilter, p query.Paging) (types.Page[model.City], error)
	SimpleCities(ctx context.Context) ([]types.SimpleCity, error)
	CreateCity(ctx context.Context, f model.CityFields) (model.City, error)
	// UpdateCity replaces every mutable field. Returns ErrNotFound if id is unknown.
	UpdateCity(ctx context.Context, id int64, f model.CityFields) (model.City, error)
	// DeleteCity removes the city and reports whether it existed. Locations
	// referencing it are left alone.
	DeleteCity(ctx context.Context, id int64) (bool, error)

	ListLocations(ctx context.Context, f LocationFilter, p query.Paging) (types.Page[model.Location], error)
	CreateLocation(ctx context.Context, f model.LocationFields) (model.Location, error)
	// UpdateLocation replaces every mutable field and re-reads the city name.
	// Returns ErrNotFound if id is unknown.
	UpdateLocation(ctx context.Context, id int64, f model.LocationFields) (model.Location, error)
	DeleteLocation(ctx context.Context, id int64) (bool, error)

	// Counts returns the number of cities and locations.
	Counts(ctx context.Context) (cities, locations int)
}
