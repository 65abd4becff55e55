package api

import (
	"fmt"
	"net/http"

	repository "github.com/okian/fog/internal/adapters/repository"
)

// LocationHandler handles the location routes and their /positions aliases.
type LocationHandler struct {
	deps LocationDependencies
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(deps LocationDependencies) *LocationHandler {
	return &LocationHandler{deps: deps}
}

// List handles GET /location/list and GET /positions.
func (h *LocationHandler) List(r *http.Request, op string) (any, error) {
	cityID, err := optionalInt(r, "city_id")
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	f := repository.LocationFilter{
		Keyword: r.URL.Query().Get("keyword"),
		CityID:  cityID,
	}
	page, err := h.deps.ListLocations(r.Context(), f, pagingFromQuery(r))
	if err != nil {
		return nil, Wrap(op, err)
	}
	return page, nil
}

// Create handles POST /location/add and POST /positions.
func (h *LocationHandler) Create(r *http.Request, op string) (any, error) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	l, err := h.deps.CreateLocation(r.Context(), req.fields())
	if err != nil {
		return nil, Wrap(op, err)
	}
	return l, nil
}

// UpdateFromBody handles POST /location/update, where the id travels in
// the body.
func (h *LocationHandler) UpdateFromBody(r *http.Request, op string) (any, error) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	if err := validate.Var(req.ID, "gt=0"); err != nil {
		return nil, WrapKind(op, ErrBadRequest, fmt.Errorf("id must be a positive integer, got %d", req.ID))
	}
	return h.update(r, op, req.ID, req)
}

// UpdateByPath handles PUT /positions/{id}. The path id wins over any id in
// the body.
func (h *LocationHandler) UpdateByPath(r *http.Request, op string) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	return h.update(r, op, id, req)
}

func (h *LocationHandler) update(r *http.Request, op string, id int64, req locationRequest) (any, error) {
	l, err := h.deps.UpdateLocation(r.Context(), id, req.fields())
	if err != nil {
		return nil, Wrap(op, err)
	}
	return l, nil
}

// DeleteFromBody handles POST /location/del with {"id":n}.
func (h *LocationHandler) DeleteFromBody(r *http.Request, op string) (any, error) {
	var req idRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	if err := validate.Var(req.ID, "gt=0"); err != nil {
		return nil, WrapKind(op, ErrBadRequest, fmt.Errorf("id must be a positive integer, got %d", req.ID))
	}
	return nil, Wrap(op, h.deps.DeleteLocation(r.Context(), req.ID))
}

// DeleteByPath handles DELETE /positions/delete/{id}.
func (h *LocationHandler) DeleteByPath(r *http.Request, op string) (any, error) {
	id, err := pathID(r)
	if err != nil {
		return nil, WrapKind(op, ErrBadRequest, err)
	}
	return nil, Wrap(op, h.deps.DeleteLocation(r.Context(), id))
}
