// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	repository "github.com/okian/fog/internal/adapters/repository"
	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/query"
	"github.com/okian/fog/internal/domain/types"
	"github.com/okian/fog/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CityDependencies
	LocationDependencies
	StatsProvider
}

// CityDependencies covers the city routes.
type CityDependencies interface {
	ListCities(ctx context.Context, f repository.CityFilter, p query.Paging) (types.Page[model.City], error)
	SimpleCities(ctx context.Context) ([]types.SimpleCity, error)
	CreateCity(ctx context.Context, f model.CityFields) (model.City, error)
	UpdateCity(ctx context.Context, id int64, f model.CityFields) (model.City, error)
	DeleteCity(ctx context.Context, id int64) error
}

// LocationDependencies covers the location routes.
type LocationDependencies interface {
	ListLocations(ctx context.Context, f repository.LocationFilter, p query.Paging) (types.Page[model.Location], error)
	CreateLocation(ctx context.Context, f model.LocationFields) (model.Location, error)
	UpdateLocation(ctx context.Context, id int64, f model.LocationFields) (model.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}

// Server wires HTTP routes for the mock admin API.
type Server struct {
	logger logger.Logger

	prefix      string
	latency     time.Duration
	rateLimit   int
	corsOrigins []string

	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	cityHandler     *CityHandler
	locationHandler *LocationHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		prefix:      "/mock/fog",
		latency:     time.Second,
		rateLimit:   100,
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.cityHandler = NewCityHandler(deps)
	s.locationHandler = NewLocationHandler(deps)
	return s
}

// Handler returns a fresh router with every route registered.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	s.Register(ctx, r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Use(RequestID)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	if s.rateLimit > 0 {
		r.Use(httprate.LimitByIP(s.rateLimit, time.Second))
	}

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)
	r.Get("/metrics", s.healthHandler.HandleMetrics)

	c, l := s.cityHandler, s.locationHandler
	r.Route(s.prefix, func(r chi.Router) {
		r.Use(Latency(s.latency))

		r.Get("/city/list", s.handle(Legacy, "api.list_cities", c.List))
		r.Get("/city/simple_list", s.handle(Legacy, "api.simple_cities", c.SimpleList))
		r.Get("/cities", s.handle(Modern, "api.list_cities_array", c.ListArray))
		r.Post("/cities", s.handle(Legacy, "api.create_city", c.Create))
		r.Put("/cities/{id}", s.handle(Legacy, "api.update_city", c.Update))
		r.Delete("/cities", s.handle(Legacy, "api.delete_city", c.DeleteByQuery))
		r.Delete("/cities/{id}", s.handle(Legacy, "api.delete_city", c.DeleteByPath))

		r.Get("/location/list", s.handle(Legacy, "api.list_locations", l.List))
		r.Post("/location/add", s.handle(Legacy, "api.create_location", l.Create))
		r.Post("/location/update", s.handle(Legacy, "api.update_location", l.UpdateFromBody))
		r.Post("/location/del", s.handle(Legacy, "api.delete_location", l.DeleteFromBody))

		r.Get("/positions", s.handle(Modern, "api.list_positions", l.List))
		r.Post("/positions", s.handle(Legacy, "api.create_location", l.Create))
		r.Put("/positions/{id}", s.handle(Legacy, "api.update_location", l.UpdateByPath))
		r.Delete("/positions/delete/{id}", s.handle(Legacy, "api.delete_location", l.DeleteByPath))
	})

	s.logger.Info(ctx, "routes registered",
		logger.String("prefix", s.prefix),
		logger.Int64("latencyMs", s.latency.Milliseconds()),
		logger.Int("rateLimit", s.rateLimit),
	)
}

// handlerFunc produces the payload of a successful response.
type handlerFunc func(r *http.Request, op string) (any, error)

// handle adapts h to net/http, rendering its result in env.
func (s *Server) handle(env Envelope, op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h(r, op)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				s.logger.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
			} else {
				s.logger.Debug(r.Context(), "request rejected",
					logger.String("op", op),
					logger.Int("status", status),
					logger.Error(err),
				)
			}
			writeJSON(w, status, env.failure(status, publicMessage(err)))
			return
		}
		writeJSON(w, http.StatusOK, env.success(data))
	}
}

// statusFor maps an error to the HTTP status returned to the caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
