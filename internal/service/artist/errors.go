package artist

import "errors"

// ErrNotFound is returned when no artist has the requested id.
var ErrNotFound = errors.New("artist not found")
