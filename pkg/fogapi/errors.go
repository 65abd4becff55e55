package fogapi

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is matched by every APIError.
var ErrUnexpectedStatus = errors.New("unexpected response")

// APIError is a failed call: a non-2xx status or a non-zero envelope code.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fogapi: %s %s: status %d code %d: %s", e.Method, e.Path, e.Status, e.Code, e.Message)
}

// Is makes APIError match ErrUnexpectedStatus.
func (e *APIError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
