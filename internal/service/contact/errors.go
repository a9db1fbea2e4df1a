package contact

import "errors"

// Sentinel errors for the contact service layer.
var (
	ErrNotFound         = errors.New("contact not found")
	ErrInvalidStatus    = errors.New("status is required")
	ErrDuplicateEmail   = errors.New("a contact with this email already exists")
	ErrInvalidContact   = errors.New("email and name are required")
	ErrImportInProgress = errors.New("an import of this source is already running")
	ErrUnsupportedFile  = errors.New("unsupported import source")
)
