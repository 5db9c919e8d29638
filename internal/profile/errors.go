package profile

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidSlug        = errors.New("slug must not be empty")
	ErrImageNotOwned      = errors.New("image does not exist or belongs to another account")
	ErrInvalidAccentColor = errors.New("accent color must be a hex color like #6366f1")
	ErrDescriptionTooLong = errors.New("description is too long")
	ErrInvalidLink        = errors.New("link needs a title and an http(s) url")
	ErrLinkNotFound       = errors.New("link not found")
)
