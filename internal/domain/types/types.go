// Package types contains read shapes shared by the store, the service and the API.
package types

// Page is one page of a filtered list plus the filtered total.
type Page[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
}

// SimpleCity is the id/name projection used by city pickers.
type SimpleCity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SimpleList wraps the picker projection.
type SimpleList struct {
	List []SimpleCity `json:"list"`
}

// Stats summarizes the store for /stats.
type Stats struct {
	Cities          int   `json:"cities"`
	Locations       int   `json:"locations"`
	NextCityID      int64 `json:"next_city_id"`
	NextLocationID  int64 `json:"next_location_id"`
	ResponseLatency int64 `json:"response_latency_ms"`
}
