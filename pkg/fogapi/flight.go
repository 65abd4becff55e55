package fogapi

import (
	"net/http"

	"github.com/goccy/go-json"
)

// FlightType tells flights from train rides.
type FlightType int

const (
	FlightTypeAny   FlightType = 0
	FlightTypePlane FlightType = 1
	FlightTypeTrain FlightType = 2
)

// AirportInfo is the airport summary embedded in a Flight.
type AirportInfo struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	City       string          `json:"city"`
	Lat        float64         `json:"lat"`
	Lon        float64         `json:"lon"`
	Extra      json.RawMessage `json:"extra,omitempty"`
	CreateTime string          `json:"create_time"`
	ModifyTime string          `json:"modify_time"`
}

// Flight is one trip between two airports or stations.
type Flight struct {
	ID              int64           `json:"id"`
	FromAirportID   int64           `json:"from_airport_id"`
	ToAirportID     int64           `json:"to_airport_id"`
	DepartTime      string          `json:"depart_time"`
	ArrivalTime     string          `json:"arrival_time"`
	Type            FlightType      `json:"type"`
	Number          string          `json:"number"`
	SeatType        string          `json:"seat_type"`
	SeatNumber      string          `json:"seat_number"`
	Price           float64         `json:"price"`
	Extra           json.RawMessage `json:"extra,omitempty"`
	CreateTime      string          `json:"create_time,omitempty"`
	ModifyTime      string          `json:"modify_time,omitempty"`
	FromAirportInfo *AirportInfo    `json:"from_airport_info,omitempty"`
	ToAirportInfo   *AirportInfo    `json:"to_airport_info,omitempty"`
}

// FlightListParams filters and pages the flight list.
type FlightListParams struct {
	Page       int
	PageSize   int
	StartTime  string
	EndTime    string
	FlightType FlightType
}

// FlightExtra attaches a file to one extra field of a flight.
type FlightExtra struct {
	FlightID  int64  `json:"flight_id"`
	FieldName string `json:"field_name"`
	File      string `json:"file"`
}

// AirportOption is one entry of the airport picker.
type AirportOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ListFlights returns a page of flights.
func ListFlights(p FlightListParams) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/flight/list",
		Query: params{}.
			int("page", p.Page).
			int("page_size", p.PageSize).
			str("start_time", p.StartTime).
			str("end_time", p.EndTime).
			int("flight_type", int(p.FlightType)).
			values(),
	}
}

// DeleteFlight removes flight id.
func DeleteFlight(id int64) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/flight/del", Body: idBody{ID: id}}
}

// SaveFlight creates a flight.
func SaveFlight(f Flight) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/flight/add", Body: f}
}

// UpdateFlight replaces the flight f.ID.
func UpdateFlight(f Flight) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/flight/update", Body: f}
}

// AirportPicker lists every airport for the flight form. The payload is
// {"list":[AirportOption...]}.
func AirportPicker() *Request {
	return &Request{Method: http.MethodGet, Path: "/fog/airport/list"}
}

// UpdateFlightExtra stores one extra file of a flight.
func UpdateFlightExtra(e FlightExtra) *Request {
	return &Request{Method: http.MethodPost, Path: "/fog/flight/update_extra", Body: e}
}
