package service

import "errors"

// ErrNotStarted is returned by store operations called before Start.
var ErrNotStarted = errors.New("service not started")
