package cssmodel

import "errors"

var (
	// ErrUnsupportedMedia is returned when a min-width media query does not
	// resolve to a configured breakpoint.
	ErrUnsupportedMedia = errors.New("unsupported media query")

	// ErrUnknownVariant is returned when the input uses a variant the
	// reference stylesheet has no classes for.
	ErrUnknownVariant = errors.New("unknown variant in Tailwind")
)
