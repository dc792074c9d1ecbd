package flags

import (
	"errors"
	"fmt"
)

// ErrMalformedSource is matched by every error returned when a manifest or
// flags file exists but cannot be read or decoded.
var ErrMalformedSource = errors.New("malformed flag source")

// SourceError describes a source that failed to load.
type SourceError struct {
	Source Source
	Path   string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load %s flags from %s: %v", e.Source, e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrMalformedSource, e.Err}
}
