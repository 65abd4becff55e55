package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidSeed = errors.New("invalid seed data")
)
