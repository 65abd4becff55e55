package api

import (
	"net/http"

	repository "github.com/okian/fog/internal/adapters/repository"
	"github.com/okian/fog/internal/domain/types"
)

// CityHandler handles the city routes.
type CityHandler struct {
	deps CityDependencies
}

// NewCityHandler creates a new city handler.
func NewCityHandler(deps CityDependencies) *CityHandler {
	return &CityHandler{deps: deps}
}

func cityFilter(r *http.Request) repository.CityFilter {
	q := r.URL.Query()
	return repository.CityFilter{
		Keyword: q.Get("keyword"),
		Country: q.Get("country"),
	}
}

// List handles GET /city/list.
func (h *CityHandler) List(r *http.Request, op string) (any, error) {
	page, err := h.deps.ListCities(r.Context(), cityFilter(r), pagingFromQuery(r))
	if err != nil {
		return nil, Wrap(op, err)
	}
	return page, nil
}

// ListArray handles GET /cities, which returns the page without a total.
func (h *CityHandler) ListArray(r *http.Request, op string) (any, error) {
	page, err := h.deps.ListCities(r.Context(), cityFilter(r), pagingFromQuery(r))
	if err != nil {
		return nil, Wrap(op, err)
	}
	return page.List, nil
}

// SimpleList handles GET /city/simple_list.
func (h *CityHandler) SimpleList(r *http.Request, op string) (any, error) {
	list, err := h.deps.SimpleCities(r.Context())
	if err != nil {
		return nil, Wrap(op, err)
	}
	return types.SimpleList{List: list}, nil
}

// Create handles POST /cities.
func (h *CityHandler) Create(r *http.Request, op string) (any, error) {
	var req cityRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	c, err := h.deps.CreateCity(r.Context(), req.fields())
	if err != nil {
		return nil, Wrap(op, err)
	}
	return c, nil
}

// Update handles PUT /cities/{id}.
func (h *CityHandler) Update(r *http.Request, op string) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	var req cityRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	c, err := h.deps.UpdateCity(r.Context(), id, req.fields())
	if err != nil {
		return nil, Wrap(op, err)
	}
	return c, nil
}

// DeleteByQuery handles DELETE /cities?id=n.
func (h *CityHandler) DeleteByQuery(r *http.Request, op string) (any, error) {
	id, err := requiredInt(r, "id")
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	return nil, Wrap(op, h.deps.DeleteCity(r.Context(), id))
}

// DeleteByPath handles DELETE /cities/{id}.
func (h *CityHandler) DeleteByPath(r *http.Request, op string) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	return nil, Wrap(op, h.deps.DeleteCity(r.Context(), id))
}
