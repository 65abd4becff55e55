package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/query"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bounds", validateBounds)
	return v
}

// validateBounds accepts "", "[]" and a JSON array of four numbers.
func validateBounds(fl validator.FieldLevel) bool {
	_, err := model.ParseBounds(fl.Field().String())
	return err == nil
}

// cityRequest is the body of city create and update.
type cityRequest struct {
	Name           string  `json:"name" validate:"required"`
	EnglishName    string  `json:"english_name"`
	FirstVisitDate *string `json:"first_visit_date"`
	Desc           string  `json:"desc"`
	Bounds         string  `json:"bounds" validate:"bounds"`
}

func (c cityRequest) fields() model.CityFields {
	return model.CityFields{
		Name:           c.Name,
		EnglishName:    c.EnglishName,
		FirstVisitDate: c.FirstVisitDate,
		Desc:           c.Desc,
		Bounds:         c.Bounds,
	}
}

// locationRequest is the body of location create and update. ID is only
// read by the body-addressed update.
type locationRequest struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name" validate:"required"`
	CityID      int64    `json:"city_id"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Description string   `json:"description"`
	Feeling     string   `json:"feeling"`
	Images      []string `json:"images" validate:"dive,required"`
}

func (l locationRequest) fields() model.LocationFields {
	return model.LocationFields{
		Name:        l.Name,
		CityID:      l.CityID,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Description: l.Description,
		Feeling:     l.Feeling,
		Images:      l.Images,
	}
}

// idRequest is the body of the body-addressed delete.
type idRequest struct {
	ID int64 `json:"id"`
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return validationError(validate.Struct(dst))
}

// validationError flattens validator output into "field: tag" pairs.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(parts, ", "))
}

// pagingFromQuery reads page and page_size. Missing, malformed or
// non-positive values fall back to the defaults.
func pagingFromQuery(r *http.Request) query.Paging {
	q := r.URL.Query()
	p := query.Paging{}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil {
		p.PageSize = v
	}
	return p.Normalize()
}

// optionalInt parses an optional integer query parameter.
func optionalInt(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

// requiredInt parses a required integer query parameter.
func requiredInt(r *http.Request, name string) (int64, error) {
	v, err := optionalInt(r, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("missing %s", name)
	}
	return *v, nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer, got %q", raw)
	}
	return v, nil
}
