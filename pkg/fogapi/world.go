package fogapi

import (
	"net/http"
	"net/url"
	"strconv"
)

// FwssStatusAll lists world status entries of every status.
const FwssStatusAll = "ALL"

// ListFwss lists world status entries with status. An empty status means
// FwssStatusAll.
func ListFwss(status string) *Request {
	if status == "" {
		status = FwssStatusAll
	}
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/fwss/list",
		Query:  url.Values{"status": {status}},
	}
}

// ModifyFwss changes the description and status of entry id. All three
// travel in the query string, as the backend expects.
func ModifyFwss(id int64, description string, status int) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/fwss/modify",
		Query: url.Values{
			"id":          {strconv.FormatInt(id, 10)},
			"description": {description},
			"status":      {strconv.Itoa(status)},
		},
	}
}

// PullFwssForDate asks the backend to fetch world status for date.
func PullFwssForDate(date string) *Request {
	return &Request{
		Method: http.MethodGet,
		Path:   "/fog/fwss/pull_fwss_for_date",
		Query:  url.Values{"date": {date}},
	}
}
