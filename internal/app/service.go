// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/okian/fog/internal/adapters/repository"
	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/query"
	"github.com/okian/fog/internal/domain/types"
	"github.com/okian/fog/pkg/logger"
	"github.com/okian/fog/pkg/metrics"
)

// Service fronts the collection store with logging and metrics.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Store construction, used when no store is injected.
	seed  repository.Seed
	clock func() time.Time
	loc   *time.Location

	responseLatency time.Duration

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a ready store. Seed, clock and location options are
// ignored when a store is injected.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed sets the data the store starts with.
func WithSeed(seed repository.Seed) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithLocation sets the zone record timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithResponseLatency sets the artificial delay reported in stats and
// applied by the HTTP layer.
func WithResponseLatency(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.responseLatency = d
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:            repository.DefaultSeed(),
		clock:           time.Now,
		loc:             time.Local,
		responseLatency: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the store, unless one was injected, and publishes the
// initial record counts.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting fog service...")

	if s.store == nil {
		store, err := repository.NewMemStore(s.seed,
			repository.WithClock(s.clock),
			repository.WithLocation(s.loc),
		)
		if err != nil {
			return err
		}
		s.store = store
	}

	cities, locations := s.store.Counts(ctx)
	metrics.UpdateStoreRecords(metrics.CollectionCities, cities)
	metrics.UpdateStoreRecords(metrics.CollectionLocations, locations)

	s.started = true
	s.logger.Info(ctx, "fog service started",
		logger.Int("cities", cities),
		logger.Int("locations", locations),
		logger.Int64("responseLatencyMs", s.responseLatency.Milliseconds()),
	)
	return nil
}

// Stop marks the service stopped. The store content is kept so a restart
// serves the same records.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "fog service stopped")
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// ResponseLatency returns the configured artificial delay.
func (s *Service) ResponseLatency() time.Duration {
	return s.responseLatency
}

func (s *Service) getStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListCities returns one page of cities matching f.
func (s *Service) ListCities(ctx context.Context, f repository.CityFilter, p query.Paging) (types.Page[model.City], error) {
	store, err := s.getStore()
	if err != nil {
		return types.Page[model.City]{}, err
	}
	page, err := store.ListCities(ctx, f, p)
	if err != nil {
		return page, err
	}
	metrics.RecordStoreListMatches(metrics.CollectionCities, page.Total)
	s.logger.Debug(ctx, "listed cities",
		logger.String("keyword", f.Keyword),
		logger.String("country", f.Country),
		logger.Int("total", page.Total),
		logger.Int("returned", len(page.List)),
	)
	return page, nil
}

// SimpleCities returns the id/name projection of every city.
func (s *Service) SimpleCities(ctx context.Context) ([]types.SimpleCity, error) {
	store, err := s.getStore()
	if err != nil {
		return nil, err
	}
	return store.SimpleCities(ctx)
}

// CreateCity appends a new city.
func (s *Service) CreateCity(ctx context.Context, f model.CityFields) (model.City, error) {
	store, err := s.getStore()
	if err != nil {
		return model.City{}, err
	}
	c, err := store.CreateCity(ctx, f)
	if err != nil {
		return c, err
	}
	s.mutated(ctx, metrics.CollectionCities, "create")
	s.logger.Info(ctx, "city created", logger.Int64("id", c.ID), logger.String("name", c.Name))
	return c, nil
}

// UpdateCity replaces the mutable fields of city id.
func (s *Service) UpdateCity(ctx context.Context, id int64, f model.CityFields) (model.City, error) {
	store, err := s.getStore()
	if err != nil {
		return model.City{}, err
	}
	c, err := store.UpdateCity(ctx, id, f)
	if err != nil {
		s.failed(ctx, metrics.CollectionCities, "update", id, err)
		return c, err
	}
	s.mutated(ctx, metrics.CollectionCities, "update")
	s.logger.Info(ctx, "city updated", logger.Int64("id", id))
	return c, nil
}

// DeleteCity removes city id if present.
func (s *Service) DeleteCity(ctx context.Context, id int64) error {
	store, err := s.getStore()
	if err != nil {
		return err
	}
	removed, err := store.DeleteCity(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		metrics.RecordStoreNotFound(metrics.CollectionCities, "delete")
		s.logger.Debug(ctx, "city delete ignored, no such id", logger.Int64("id", id))
		return nil
	}
	s.mutated(ctx, metrics.CollectionCities, "delete")
	s.logger.Info(ctx, "city deleted", logger.Int64("id", id))
	return nil
}

// ListLocations returns one page of locations matching f.
func (s *Service) ListLocations(ctx context.Context, f repository.LocationFilter, p query.Paging) (types.Page[model.Location], error) {
	store, err := s.getStore()
	if err != nil {
		return types.Page[model.Location]{}, err
	}
	page, err := store.ListLocations(ctx, f, p)
	if err != nil {
		return page, err
	}
	metrics.RecordStoreListMatches(metrics.CollectionLocations, page.Total)
	s.logger.Debug(ctx, "listed locations",
		logger.String("keyword", f.Keyword),
		logger.Any("cityId", f.CityID),
		logger.Int("total", page.Total),
	)
	return page, nil
}

// CreateLocation appends a new location.
func (s *Service) CreateLocation(ctx context.Context, f model.LocationFields) (model.Location, error) {
	store, err := s.getStore()
	if err != nil {
		return model.Location{}, err
	}
	l, err := store.CreateLocation(ctx, f)
	if err != nil {
		return l, err
	}
	if l.CityName == "" {
		s.logger.Warn(ctx, "location references unknown city", logger.Int64("cityId", l.CityID))
	}
	s.mutated(ctx, metrics.CollectionLocations, "create")
	s.logger.Info(ctx, "location created", logger.Int64("id", l.ID), logger.String("name", l.Name))
	return l, nil
}

// UpdateLocation replaces the mutable fields of location id.
func (s *Service) UpdateLocation(ctx context.Context, id int64, f model.LocationFields) (model.Location, error) {
	store, err := s.getStore()
	if err != nil {
		return model.Location{}, err
	}
	l, err := store.UpdateLocation(ctx, id, f)
	if err != nil {
		s.failed(ctx, metrics.CollectionLocations, "update", id, err)
		return l, err
	}
	s.mutated(ctx, metrics.CollectionLocations, "update")
	s.logger.Info(ctx, "location updated", logger.Int64("id", id))
	return l, nil
}

// DeleteLocation removes location id if present.
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	store, err := s.getStore()
	if err != nil {
		return err
	}
	removed, err := store.DeleteLocation(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		metrics.RecordStoreNotFound(metrics.CollectionLocations, "delete")
		s.logger.Debug(ctx, "location delete ignored, no such id", logger.Int64("id", id))
		return nil
	}
	s.mutated(ctx, metrics.CollectionLocations, "delete")
	s.logger.Info(ctx, "location deleted", logger.Int64("id", id))
	return nil
}

// GetStats returns store statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) (types.Stats, error) {
	store, err := s.getStore()
	if err != nil {
		return types.Stats{}, err
	}
	cities, locations := store.Counts(ctx)
	stats := types.Stats{
		Cities:          cities,
		Locations:       locations,
		ResponseLatency: s.responseLatency.Milliseconds(),
	}
	if n, ok := store.(interface{ NextIDs() (int64, int64) }); ok {
		stats.NextCityID, stats.NextLocationID = n.NextIDs()
	}

	metrics.UpdateStoreRecords(metrics.CollectionCities, cities)
	metrics.UpdateStoreRecords(metrics.CollectionLocations, locations)
	return stats, nil
}

func (s *Service) mutated(ctx context.Context, collection, op string) {
	metrics.RecordStoreMutation(collection, op)
	cities, locations := s.store.Counts(ctx)
	switch collection {
	case metrics.CollectionCities:
		metrics.UpdateStoreRecords(collection, cities)
	case metrics.CollectionLocations:
		metrics.UpdateStoreRecords(collection, locations)
	}
}

func (s *Service) failed(ctx context.Context, collection, op string, id int64, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordStoreNotFound(collection, op)
		s.logger.Warn(ctx, collection+" "+op+" on unknown id", logger.Int64("id", id))
		return
	}
	s.logger.Error(ctx, collection+" "+op+" failed", logger.Int64("id", id), logger.Error(err))
}
