// Package model contains the records held by the collection store.
package model

// City is a visited city.
type City struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	EnglishName    string  `json:"english_name"`
	FirstVisitDate *string `json:"first_visit_date"`
	Desc           string  `json:"desc"`
	// Bounds is a [minLng,minLat,maxLng,maxLat]-style array serialized as text.
	Bounds     string `json:"bounds"`
	CreateTime string `json:"create_time"`
	UpdateTime string `json:"update_time"`
}

// CityFields are the caller-supplied, mutable fields of a City.
type CityFields struct {
	Name           string
	EnglishName    string
	FirstVisitDate *string
	Desc           string
	Bounds         string
}

// Clone returns a deep copy so callers never share the store's pointers.
func (c City) Clone() City {
	if c.FirstVisitDate != nil {
		v := *c.FirstVisitDate
		c.FirstVisitDate = &v
	}
	return c
}

// Fields extracts the mutable part of c.
func (c City) Fields() CityFields {
	c = c.Clone()
	return CityFields{
		Name:           c.Name,
		EnglishName:    c.EnglishName,
		FirstVisitDate: c.FirstVisitDate,
		Desc:           c.Desc,
		Bounds:         c.Bounds,
	}
}
