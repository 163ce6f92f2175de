package wire

import "errors"

var (
	// ErrMalformedInput is returned when a stream is truncated or holds bytes
	// that cannot be decoded as the requested primitive.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidString is returned when a string cannot be put on the wire,
	// either because it is too long or because it is not valid UTF-8.
	ErrInvalidString = errors.New("invalid string")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = errors.New("invalid protocol version")
)
