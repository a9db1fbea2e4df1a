package quota

import "errors"

// Sentinel errors for the quota service layer.
var (
	ErrNotFound = errors.New("quota record not found")
)
