package searchctx

import (
	"errors"
	"fmt"

	"github.com/hupe1980/searchctx/wire"
)

var (
	// ErrInvariantViolation is returned when a ContextID would be built
	// without a session id.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrMalformedInput is returned when an encoded identity is truncated or
	// corrupt. It is the same value as wire.ErrMalformedInput.
	ErrMalformedInput = wire.ErrMalformedInput

	// ErrInvalidString is returned when a session or trace id cannot be
	// encoded. It is the same value as wire.ErrInvalidString.
	ErrInvalidString = wire.ErrInvalidString
)

// ErrUnsupportedVersion indicates a token written at a protocol version this
// build cannot decode.
type ErrUnsupportedVersion struct {
	Version wire.Version
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported protocol version: %s (minimum %s)", e.Version, MinTokenVersion)
}
