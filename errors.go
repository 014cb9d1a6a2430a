package bdelta

import "errors"

// Sentinel errors returned by this package, in the style of ulikunitz-lz's buffer.go/hash_matcher.go
// sentinel vars.
var (
	// ErrTokenSizeMismatch is returned by New when Options.TokenSize does
	// not match the engine's fixed, one-byte token width. The original C
	// library is compiled for a fixed token width and fails the same way
	// at init time; bdelta keeps the check for interface parity even
	// though the token width is no longer a compile-time parameter.
	ErrTokenSizeMismatch = errors.New("bdelta: token size mismatch")

	// ErrOffsetOutOfRange is returned by a Reader when an offset/length
	// pair falls outside the addressable range of its input.
	ErrOffsetOutOfRange = errors.New("bdelta: offset out of range")

	// ErrClosed is returned by Pass, SwapInputs, CleanMatches and GetMatch
	// when called after Close.
	ErrClosed = errors.New("bdelta: instance closed")
)
