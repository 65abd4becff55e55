package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// EmptyBounds is the default bounds text of a new city.
const EmptyBounds = "[]"

// ErrInvalidBounds reports bounds text that is not a 4-number array.
var ErrInvalidBounds = errors.New("invalid bounds")

// Bounds is a geographic box as four numbers, in the order the admin UI
// stores them.
type Bounds [4]float64

// ParseBounds decodes bounds text. "" and "[]" decode to (nil, nil).
func ParseBounds(s string) (*Bounds, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == EmptyBounds {
		return nil, nil
	}
	var nums []float64
	if err := json.Unmarshal([]byte(s), &nums); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
	}
	if len(nums) != len(Bounds{}) {
		return nil, fmt.Errorf("%w: want 4 numbers, got %d", ErrInvalidBounds, len(nums))
	}
	var b Bounds
	copy(b[:], nums)
	return &b, nil
}

// String renders b in the stored text form.
func (b Bounds) String() string {
	raw, _ := json.Marshal(b[:])
	return string(raw)
}
