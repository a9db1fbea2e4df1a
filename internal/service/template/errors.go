package template

import "errors"

// Sentinel errors for the template service layer.
var (
	ErrNotFound           = errors.New("template not found")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrUnknownPreviewType = errors.New("invalid template type. Use: artist_intro, sync_opportunity, follow_up")
)
