package smoke

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/fog/internal/domain/model"
)

// ErrMismatch is wrapped by every failed expectation.
var ErrMismatch = errors.New("unexpected value")

func expectEqual[T comparable](what string, got, want T) error {
	if got != want {
		return fmt.Errorf("%w: %s: got %v, want %v", ErrMismatch, what, got, want)
	}
	return nil
}

// checkCreated verifies what every create returns: a positive id, the
// submitted name and two equal, well-formed timestamps.
func checkCreated(id int64, createTime, updateTime, wantName, gotName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id %d is not positive", ErrMismatch, id)
	}
	if err := expectEqual("name", gotName, wantName); err != nil {
		return err
	}
	if _, err := model.ParseTime(createTime, time.Local); err != nil {
		return fmt.Errorf("%w: create_time %q: %v", ErrMismatch, createTime, err)
	}
	return expectEqual("update_time on create", updateTime, createTime)
}
