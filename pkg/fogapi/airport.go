package fogapi

import (
	"net/http"

	"github.com/goccy/go-json"
)

// AirportType tells airports from train stations.
type AirportType int

const (
	AirportTypeAny     AirportType = 0
	AirportTypeAirport AirportType = 1
	AirportTypeStation AirportType = 2
)

// Airport is an airport or a train station.
type Airport struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	City       string          `json:"city"`
	Lat        float64         `json:"lat"`
	Lon        float64         `json:"lon"`
	Type       AirportType     `json:"type"`
	Extra      json.RawMessage `json:"extra,omitempty"`
	CreateTime string          `json:"create_time"`
	ModifyTime string          `json:"modify_time"`
}

// AirportListParams filters and pages the airport list.
type AirportListParams struct {
	Page        int
	PageSize    int
	StartTime   string
	EndTime     string
	AirportType AirportType
}

// ListAirports returns a page of airports.
func ListAirports(p AirportListParams) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/airport/list",
		Query: params{}.
			int("page", p.Page).
			int("page_size", p.PageSize).
			str("start_time", p.StartTime).
			str("end_time", p.EndTime).
			int("airport_type", int(p.AirportType)).
			values(),
	}
}

// DeleteAirport removes airport id.
func DeleteAirport(id int64) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/airport/del", Body: idBody{ID: id}}
}

// SaveAirport creates an airport.
func SaveAirport(a Airport) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/airport/add", Body: a}
}

// UpdateAirport replaces the airport a.ID.
func UpdateAirport(a Airport) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/airport/update", Body: a}
}

type idBody struct {
	ID int64 `json:"id"`
}
