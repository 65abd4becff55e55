package model

// Location is a place visited inside a city.
//
// CityName is a copy of the referenced city's name taken when the location
// was last written. Renaming the city does not rewrite it.
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

// LocationFields are the caller-supplied, mutable fields of a Location.
type LocationFields struct {
	Name        string
	CityID      int64
	Latitude    float64
	Longitude   float64
	Description string
	Feeling     string
	Images      []string
}

// Clone returns a deep copy of l.
func (l Location) Clone() Location {
	l.Images = cloneStrings(l.Images)
	return l
}

// Fields extracts the mutable part of l.
func (l Location) Fields() LocationFields {
	return LocationFields{
		Name:        l.Name,
		CityID:      l.CityID,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Description: l.Description,
		Feeling:     l.Feeling,
		Images:      cloneStrings(l.Images),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
