package pixel

import "errors"

var (
	// ErrFormatMismatch is returned when an operation receives a buffer in a
	// format it does not accept.
	ErrFormatMismatch = errors.New("pixel format mismatch")

	// ErrUnsupportedFormat is returned for format values outside the
	// recognized encodings.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidStride     = errors.New("invalid stride")
)
