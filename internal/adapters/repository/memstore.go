package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/query"
	"github.com/okian/fog/internal/domain/types"
)

// MemStore keeps cities and locations in insertion order, each collection
// behind its own lock and with its own id counter.
//
// Lock order is cities then locations: location writes read the city name
// first and release the cities lock before taking the locations lock.
type MemStore struct {
	now func() time.Time
	loc *time.Location

	citiesMu   sync.RWMutex
	cities     []model.City
	nextCityID int64

	locationsMu    sync.RWMutex
	locations      []model.Location
	nextLocationID int64
}

var _ Store = (*MemStore)(nil)

// NewMemStore builds a store holding seed. Counters start above the highest
// seeded id. The seed is validated and deep-copied, and locations without
// images get an empty list.
func NewMemStore(seed Seed, opts ...Option) (*MemStore, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	s := &MemStore{
		now:            time.Now,
		loc:            time.Local,
		nextCityID:     1,
		nextLocationID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cities = make([]model.City, 0, len(seed.Cities))
	for _, c := range seed.Cities {
		s.cities = append(s.cities, c.Clone())
		if c.ID >= s.nextCityID {
			s.nextCityID = c.ID + 1
		}
	}
	s.locations = make([]model.Location, 0, len(seed.Locations))
	for _, l := range seed.Locations {
		l = l.Clone()
		if l.Images == nil {
			l.Images = []string{}
		}
		s.locations = append(s.locations, l)
		if l.ID >= s.nextLocationID {
			s.nextLocationID = l.ID + 1
		}
	}
	return s, nil
}

func (s *MemStore) timestamp() string {
	return model.FormatTime(s.now().In(s.loc))
}

// ListCities implements Store.
func (s *MemStore) ListCities(ctx context.Context, f CityFilter, p query.Paging) (types.Page[model.City], error) {
	if err := ctx.Err(); err != nil {
		return types.Page[model.City]{}, err
	}
	match := query.All(
		keywordFilter(f.Keyword, func(c model.City) string { return c.Name }),
		keywordFilter(f.Country, func(c model.City) string { return c.EnglishName }),
	)

	s.citiesMu.RLock()
	list, total := query.Apply(s.cities, match, p)
	s.citiesMu.RUnlock()

	for i := range list {
		list[i] = list[i].Clone()
	}
	return types.Page[model.City]{List: list, Total: total}, nil
}

// SimpleCities implements Store.
func (s *MemStore) SimpleCities(ctx context.Context) ([]types.SimpleCity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.citiesMu.RLock()
	defer s.citiesMu.RUnlock()

	out := make([]types.SimpleCity, len(s.cities))
	for i, c := range s.cities {
		out[i] = types.SimpleCity{ID: c.ID, Name: c.Name}
	}
	return out, nil
}

// CreateCity implements Store.
func (s *MemStore) CreateCity(ctx context.Context, f model.CityFields) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	if f.Bounds == "" {
		f.Bounds = model.EmptyBounds
	}
	ts := s.timestamp()

	s.citiesMu.Lock()
	defer s.citiesMu.Unlock()

	c := applyCityFields(model.City{ID: s.nextCityID, CreateTime: ts}, f, ts)
	s.nextCityID++
	s.cities = append(s.cities, c)
	return c.Clone(), nil
}

// UpdateCity implements Store.
func (s *MemStore) UpdateCity(ctx context.Context, id int64, f model.CityFields) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	ts := s.timestamp()

	s.citiesMu.Lock()
	defer s.citiesMu.Unlock()

	i := indexOf(s.cities, id, func(c model.City) int64 { return c.ID })
	if i < 0 {
		return model.City{}, ErrNotFound
	}
	s.cities[i] = applyCityFields(s.cities[i], f, ts)
	return s.cities[i].Clone(), nil
}

// DeleteCity implements Store.
func (s *MemStore) DeleteCity(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.citiesMu.Lock()
	defer s.citiesMu.Unlock()

	i := indexOf(s.cities, id, func(c model.City) int64 { return c.ID })
	if i < 0 {
		return false, nil
	}
	s.cities = append(s.cities[:i], s.cities[i+1:]...)
	return true, nil
}

// ListLocations implements Store.
func (s *MemStore) ListLocations(ctx context.Context, f LocationFilter, p query.Paging) (types.Page[model.Location], error) {
	if err := ctx.Err(); err != nil {
		return types.Page[model.Location]{}, err
	}
	var byCity query.Predicate[model.Location]
	if f.CityID != nil {
		cityID := *f.CityID
		byCity = func(l model.Location) bool { return l.CityID == cityID }
	}
	match := query.All(
		keywordFilter(f.Keyword, func(l model.Location) string { return l.Name }),
		byCity,
	)

	s.locationsMu.RLock()
	list, total := query.Apply(s.locations, match, p)
	s.locationsMu.RUnlock()

	for i := range list {
		list[i] = list[i].Clone()
	}
	return types.Page[model.Location]{List: list, Total: total}, nil
}

// CreateLocation implements Store. An unknown city id is accepted and leaves
// CityName empty.
func (s *MemStore) CreateLocation(ctx context.Context, f model.LocationFields) (model.Location, error) {
	if err := ctx.Err(); err != nil {
		return model.Location{}, err
	}
	cityName := s.cityName(f.CityID)
	ts := s.timestamp()

	s.locationsMu.Lock()
	defer s.locationsMu.Unlock()

	l := applyLocationFields(model.Location{ID: s.nextLocationID, CreateTime: ts}, f, cityName, ts)
	s.nextLocationID++
	s.locations = append(s.locations, l)
	return l.Clone(), nil
}

// UpdateLocation implements Store.
func (s *MemStore) UpdateLocation(ctx context.Context, id int64, f model.LocationFields) (model.Location, error) {
	if err := ctx.Err(); err != nil {
		return model.Location{}, err
	}
	cityName := s.cityName(f.CityID)
	ts := s.timestamp()

	s.locationsMu.Lock()
	defer s.locationsMu.Unlock()

	i := indexOf(s.locations, id, func(l model.Location) int64 { return l.ID })
	if i < 0 {
		return model.Location{}, ErrNotFound
	}
	s.locations[i] = applyLocationFields(s.locations[i], f, cityName, ts)
	return s.locations[i].Clone(), nil
}

// DeleteLocation implements Store.
func (s *MemStore) DeleteLocation(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.locationsMu.Lock()
	defer s.locationsMu.Unlock()

	i := indexOf(s.locations, id, func(l model.Location) int64 { return l.ID })
	if i < 0 {
		return false, nil
	}
	s.locations = append(s.locations[:i], s.locations[i+1:]...)
	return true, nil
}

// Counts implements Store.
func (s *MemStore) Counts(_ context.Context) (cities, locations int) {
	s.citiesMu.RLock()
	cities = len(s.cities)
	s.citiesMu.RUnlock()

	s.locationsMu.RLock()
	locations = len(s.locations)
	s.locationsMu.RUnlock()
	return cities, locations
}

// NextIDs returns the ids the next creates will receive.
func (s *MemStore) NextIDs() (city, location int64) {
	s.citiesMu.RLock()
	city = s.nextCityID
	s.citiesMu.RUnlock()

	s.locationsMu.RLock()
	location = s.nextLocationID
	s.locationsMu.RUnlock()
	return city, location
}

// cityName reads the current name of city id, or "" if there is none.
func (s *MemStore) cityName(id int64) string {
	s.citiesMu.RLock()
	defer s.citiesMu.RUnlock()

	if i := indexOf(s.cities, id, func(c model.City) int64 { return c.ID }); i >= 0 {
		return s.cities[i].Name
	}
	return ""
}

func applyCityFields(c model.City, f model.CityFields, ts string) model.City {
	c.Name = f.Name
	c.EnglishName = f.EnglishName
	c.FirstVisitDate = nil
	if f.FirstVisitDate != nil {
		v := *f.FirstVisitDate
		c.FirstVisitDate = &v
	}
	c.Desc = f.Desc
	c.Bounds = f.Bounds
	c.UpdateTime = ts
	return c
}

func applyLocationFields(l model.Location, f model.LocationFields, cityName, ts string) model.Location {
	l.Name = f.Name
	l.CityID = f.CityID
	l.CityName = cityName
	l.Latitude = f.Latitude
	l.Longitude = f.Longitude
	l.Description = f.Description
	l.Feeling = f.Feeling
	l.Images = make([]string, len(f.Images))
	copy(l.Images, f.Images)
	l.UpdateTime = ts
	return l
}

func keywordFilter[T any](keyword string, field func(T) string) query.Predicate[T] {
	if keyword == "" {
		return nil
	}
	return func(item T) bool { return strings.Contains(field(item), keyword) }
}

func indexOf[T any](items []T, id int64, idOf func(T) int64) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}
