package concat

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInputMap is reported when a source map attached to a
	// fragment cannot be decoded.
	ErrMalformedInputMap = errors.New("malformed input source map")
	// ErrMapFileUnavailable is reported when an external map file of a
	// fragment cannot be read.
	ErrMapFileUnavailable = errors.New("source map file unavailable")
)

// MapError describes a failure to obtain the source map attached to a
// fragment. It matches both its Kind and the underlying error with errors.Is.
type MapError struct {
	Kind error
	// Source identifies the fragment.
	Source string
	// MapFile is the path of the external map file, empty for inline maps.
	MapFile string
	Err     error
}

func (e *MapError) Error() string {
	if e.MapFile != "" {
		return fmt.Sprintf("%s: %s %s: %s", e.Source, e.Kind, e.MapFile, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Err)
}

func (e *MapError) Unwrap() []error { return []error{e.Kind, e.Err} }
