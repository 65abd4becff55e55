package fogapi

import (
	"fmt"
	"net/http"
)

// City is a visited city as returned by the admin API.
type City struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	EnglishName    string  `json:"english_name"`
	FirstVisitDate *string `json:"first_visit_date"`
	Desc           string  `json:"desc"`
	Bounds         string  `json:"bounds"`
	CreateTime     string  `json:"create_time"`
	UpdateTime     string  `json:"update_time"`
}

// CityListParams filters and pages a city list.
type CityListParams struct {
	Page     int
	PageSize int
	Keyword  string
	Country  string
}

// CityForm is the body of city create and update.
type CityForm struct {
	Name           string  `json:"name"`
	EnglishName    string  `json:"english_name"`
	FirstVisitDate *string `json:"first_visit_date"`
	Desc           string  `json:"desc"`
	Bounds         string  `json:"bounds"`
}

// ListCities returns a page of cities. The payload is a bare []City.
func ListCities(p CityListParams) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/cities",
		Query: params{}.
			int("page", p.Page).
			int("page_size", p.PageSize).
			str("keyword", p.Keyword).
			str("country", p.Country).
			values(),
	}
}

// DeleteCity removes city id.
func DeleteCity(id int64) *Request {
	return &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/fog/cities/%d", id)}
}

// SaveCity creates a city. The payload is the stored City.
func SaveCity(form CityForm) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/cities", Body: form}
}

// UpdateCity replaces city id. The payload is the stored City.
func UpdateCity(id int64, form CityForm) *Request {
	return &Request{Method: http.MethodPut, Path: fmt.Sprintf("/fog/cities/%d", id), Body: form}
}
