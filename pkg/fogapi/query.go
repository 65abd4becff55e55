package fogapi

import (
	"net/url"
	"strconv"
)

// params collects query parameters, skipping zero values.
type params url.Values

func (p params) int(key string, v int) params {
	if v > 0 {
		url.Values(p).Set(key, strconv.Itoa(v))
	}
	return p
}

func (p params) int64Ptr(key string, v *int64) params {
	if v != nil {
		url.Values(p).Set(key, strconv.FormatInt(*v, 10))
	}
	return p
}

func (p params) str(key, v string) params {
	if v != "" {
		url.Values(p).Set(key, v)
	}
	return p
}

func (p params) values() url.Values {
	if len(p) == 0 {
		return nil
	}
	return url.Values(p)
}
