package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the page carries no entity content: an unknown id or a
	// page whose structure is missing altogether.
	ErrNotFound = errors.New("not found")

	// ErrLengthMismatch means parallel field lists disagree in length.
	ErrLengthMismatch = errors.New("field lists differ in length")
)

// LengthMismatchError reports the first column whose length differs from the
// first column passed to Zip.
type LengthMismatchError struct {
	Key  string
	Want int
	Got  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("field %q has %d values, want %d", e.Key, e.Got, e.Want)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}
