package fogapi

import (
	"fmt"
	"net/http"
)

// Location is a place inside a city.
type Location struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	CityID      int64    `json:"city_id"`
	CityName    string   `json:"city_name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description"`
	Feeling     string   `json:"feeling"`
	Images      []string `json:"images"`
	CreateTime  string   `json:"create_time"`
	UpdateTime  string   `json:"update_time"`
}

// LocationPage is a page of locations with the filtered total.
type LocationPage struct {
	List  []Location `json:"list"`
	Total int        `json:"total"`
}

// LocationListParams filters and pages a location list.
type LocationListParams struct {
	Page     int
	PageSize int
	Keyword  string
	CityID   *int64
}

// LocationForm is the body of location create and update. ID addresses the
// update.
type LocationForm struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	CityID      int64    `json:"city_id"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description"`
	Feeling     string   `json:"feeling"`
	Images      []string `json:"images"`
}

// ListLocations returns a LocationPage.
func ListLocations(p LocationListParams) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/positions",
		Query: params{}.
			int("page", p.Page).
			int("page_size", p.PageSize).
			str("keyword", p.Keyword).
			int64Ptr("city_id", p.CityID).
			values(),
	}
}

// DeleteLocation removes location id.
func DeleteLocation(id int64) *Request {
	return &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/fog/positions/delete/%d", id)}
}

// SaveLocation creates a location. The payload is the stored Location.
func SaveLocation(form LocationForm) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/positions", Body: form}
}

// UpdateLocation replaces the location form.ID.
func UpdateLocation(form LocationForm) *Request {
	return &Request{Method: http.MethodPut, Path: fmt.Sprintf("/fog/positions/%d", form.ID), Body: form}
}
