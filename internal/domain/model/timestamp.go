package model

import "time"

// TimeLayout is the fixed text form of create_time and update_time.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t with TimeLayout in t's own location.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(TimeLayout, s, loc)
}
