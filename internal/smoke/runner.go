package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fog/pkg/fogapi"
	"github.com/okian/fog/pkg/logger"
)

// listAll is a page size large enough to hold every record of the mock.
const listAll = 10000

// step is one check of the run.
type step struct {
	name string
	fn   func(ctx context.Context) error
}

// runner carries state between steps.
type runner struct {
	cfg    *Config
	api    *fogapi.Client
	ops    *fogapi.Client
	runID  string
	stats  *Stats
	logger logger.Logger

	baseCities    int
	baseLocations int
	city          fogapi.City
	location      fogapi.Location
}

// Run executes the complete smoke test against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) error {
	hc := &http.Client{Timeout: cfg.Timeout}
	api, err := fogapi.New(cfg.BaseURL, fogapi.WithBasePath(cfg.BasePath), fogapi.WithHTTPClient(hc))
	if err != nil {
		return err
	}
	ops, err := fogapi.New(cfg.BaseURL, fogapi.WithHTTPClient(hc))
	if err != nil {
		return err
	}

	runID := uuid.NewString()[:8]
	r := &runner{
		cfg:    cfg,
		api:    api,
		ops:    ops,
		runID:  runID,
		stats:  &Stats{RunID: runID, StartTime: time.Now()},
		logger: logger.Get().With(logger.String("runId", runID)),
	}

	r.logger.Info(ctx, "starting fog smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("basePath", cfg.BasePath),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Bool("verbose", cfg.Verbose))

	steps := []step{
		{"check service health", r.checkHealth},
		{"record baseline totals", r.recordBaseline},
		{"create city", r.createCity},
		{"create location", r.createLocation},
		{"rename city", r.renameCity},
		{"update location", r.updateLocation},
		{"update missing city", r.updateMissing},
		{"delete location", r.deleteLocation},
		{"delete city", r.deleteCity},
		{"verify totals", r.verifyTotals},
	}

	var runErr error
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			r.stats.StepsFailed++
			r.logger.Error(ctx, "step failed", logger.String("step", s.name), logger.Error(err))
			runErr = fmt.Errorf("%s: %w", s.name, err)
			break
		}
		r.stats.StepsPassed++
		r.logger.Info(ctx, "step passed", logger.String("step", s.name))
	}

	r.stats.EndTime = time.Now()
	r.stats.Duration = r.stats.EndTime.Sub(r.stats.StartTime)
	displayFinalStats(ctx, r.logger, r.stats)

	if runErr != nil {
		return runErr
	}
	r.logger.Info(ctx, "smoke test completed successfully")
	return nil
}

// checkHealth verifies the service is running.
func (r *runner) checkHealth(ctx context.Context) error {
	req := &fogapi.Request{Method: http.MethodGet, Path: "/healthz"}
	if err := r.ops.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	return nil
}

func (r *runner) countCities(ctx context.Context) (int, error) {
	var cities []fogapi.City
	if err := r.api.Do(ctx, fogapi.ListCities(fogapi.CityListParams{Page: 1, PageSize: listAll}), &cities); err != nil {
		return 0, err
	}
	return len(cities), nil
}

func (r *runner) countLocations(ctx context.Context) (int, error) {
	var page fogapi.LocationPage
	if err := r.api.Do(ctx, fogapi.ListLocations(fogapi.LocationListParams{Page: 1, PageSize: 1}), &page); err != nil {
		return 0, err
	}
	return page.Total, nil
}

func (r *runner) recordBaseline(ctx context.Context) error {
	var err error
	if r.baseCities, err = r.countCities(ctx); err != nil {
		return err
	}
	if r.baseLocations, err = r.countLocations(ctx); err != nil {
		return err
	}
	r.logger.Debug(ctx, "baseline",
		logger.Int("cities", r.baseCities),
		logger.Int("locations", r.baseLocations))
	return nil
}

func (r *runner) createCity(ctx context.Context) error {
	form := fogapi.CityForm{
		Name:        "smoke-" + r.runID,
		EnglishName: "smoke",
		Bounds:      "[1,2,3,4]",
	}
	if err := r.api.Do(ctx, fogapi.SaveCity(form), &r.city); err != nil {
		return err
	}
	return checkCreated(r.city.ID, r.city.CreateTime, r.city.UpdateTime, form.Name, r.city.Name)
}

func (r *runner) createLocation(ctx context.Context) error {
	form := fogapi.LocationForm{
		Name:      "smoke-spot-" + r.runID,
		CityID:    r.city.ID,
		Latitude:  30.5,
		Longitude: 104.1,
	}
	if err := r.api.Do(ctx, fogapi.SaveLocation(form), &r.location); err != nil {
		return err
	}
	if err := checkCreated(r.location.ID, r.location.CreateTime, r.location.UpdateTime, form.Name, r.location.Name); err != nil {
		return err
	}
	return expectEqual("city_name", r.location.CityName, r.city.Name)
}

func (r *runner) renameCity(ctx context.Context) error {
	oldName := r.city.Name
	form := fogapi.CityForm{Name: oldName + "-renamed", EnglishName: "smoke", Bounds: r.city.Bounds}

	var updated fogapi.City
	if err := r.api.Do(ctx, fogapi.UpdateCity(r.city.ID, form), &updated); err != nil {
		return err
	}
	if err := expectEqual("city id", updated.ID, r.city.ID); err != nil {
		return err
	}
	if err := expectEqual("city create_time", updated.CreateTime, r.city.CreateTime); err != nil {
		return err
	}
	r.city = updated

	// The copy on the location is only refreshed when the location is written.
	var page fogapi.LocationPage
	cityID := r.city.ID
	if err := r.api.Do(ctx, fogapi.ListLocations(fogapi.LocationListParams{CityID: &cityID}), &page); err != nil {
		return err
	}
	if err := expectEqual("locations under city", page.Total, 1); err != nil {
		return err
	}
	return expectEqual("stale city_name", page.List[0].CityName, oldName)
}

func (r *runner) updateLocation(ctx context.Context) error {
	form := fogapi.LocationForm{
		ID:        r.location.ID,
		Name:      r.location.Name,
		CityID:    r.city.ID,
		Latitude:  r.location.Latitude,
		Longitude: r.location.Longitude,
		Feeling:   "checked by smoke " + r.runID,
	}
	var updated fogapi.Location
	if err := r.api.Do(ctx, fogapi.UpdateLocation(form), &updated); err != nil {
		return err
	}
	if err := expectEqual("refreshed city_name", updated.CityName, r.city.Name); err != nil {
		return err
	}
	if err := expectEqual("location create_time", updated.CreateTime, r.location.CreateTime); err != nil {
		return err
	}
	r.location = updated
	return nil
}

func (r *runner) updateMissing(ctx context.Context) error {
	err := r.api.Do(ctx, fogapi.UpdateCity(1<<40, fogapi.CityForm{Name: "ghost"}), nil)
	var apiErr *fogapi.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("expected a not-found APIError, got %v", err)
	}
	return expectEqual("missing update status", apiErr.Status, http.StatusNotFound)
}

func (r *runner) deleteLocation(ctx context.Context) error {
	if err := r.api.Do(ctx, fogapi.DeleteLocation(r.location.ID), nil); err != nil {
		return err
	}
	// A repeat is a silent no-op.
	return r.api.Do(ctx, fogapi.DeleteLocation(r.location.ID), nil)
}

func (r *runner) deleteCity(ctx context.Context) error {
	if err := r.api.Do(ctx, fogapi.DeleteCity(r.city.ID), nil); err != nil {
		return err
	}
	return r.api.Do(ctx, fogapi.DeleteCity(r.city.ID), nil)
}

func (r *runner) verifyTotals(ctx context.Context) error {
	cities, err := r.countCities(ctx)
	if err != nil {
		return err
	}
	locations, err := r.countLocations(ctx)
	if err != nil {
		return err
	}
	if err := expectEqual("city total", cities, r.baseCities); err != nil {
		return err
	}
	return expectEqual("location total", locations, r.baseLocations)
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("stepsPassed", stats.StepsPassed),
		logger.Int("stepsFailed", stats.StepsFailed),
		logger.String("duration", stats.Duration.String()))
}
