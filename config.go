package bdelta

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// tokenSize is the fixed token width the engine operates on. The original
// library parameterized this at compile time (TOKEN_SIZE); this
// implementation treats it as a fixed byte-equivalent unit, per spec.
const tokenSize = 1

// Flags controls optional behavior of Pass and CleanMatches, mirroring the
// single bdelta_pass/bdelta_clean_matches flags word of the original API.
type Flags uint

const (
	// FlagGlobal runs one sub-pass over all gaps combined instead of one
	// sub-pass per paired (reference-gap, target-gap).
	FlagGlobal Flags = 1 << iota
	// FlagSidesOrdered restricts local-mode sub-passes to gap pairs
	// bounded by the same two matches on both the reference and target
	// side.
	FlagSidesOrdered
	// FlagRemoveOverlap tells CleanMatches to truncate the earlier match
	// of an overlapping pair instead of leaving the overlap in place.
	FlagRemoveOverlap
)

// Options configures a New Instance.
type Options struct {
	// TokenSize must equal the engine's fixed token width (1). Present
	// for API parity with the original init(..., tokenSize) signature.
	TokenSize int

	// Logger, if non-nil, receives structured debug/trace entries about
	// pass progress and discovered matches. Nil by default: the engine
	// is silent unless asked.
	Logger *logrus.Logger

	// DisableBloomFilter turns off the probabilistic pre-filter in front
	// of the checksum index's bucket walk (see checksumIndex). The
	// pre-filter is on by default; the zero value of this field (false)
	// keeps it on, so unlike a "UseBloomFilter bool" field, a caller
	// setting this explicitly to disable it can never be confused with
	// an unset zero value.
	DisableBloomFilter bool
}

// ApplyDefaults fills zero-valued fields of Options with their defaults.
func (o *Options) ApplyDefaults() {
	if o.TokenSize == 0 {
		o.TokenSize = tokenSize
	}
}

// Verify checks Options for correctness.
func (o *Options) Verify() error {
	if o.TokenSize != tokenSize {
		return ErrTokenSizeMismatch
	}
	return nil
}

// PassConfig configures a single call to Pass.
type PassConfig struct {
	// BlockSize is the checksum/window granularity for this pass.
	BlockSize int
	// MinMatchSize is the minimum accepted match length.
	MinMatchSize int
	// MaxHoleSize, if non-zero, skips local-mode gap pairs where either
	// side's length exceeds this cap.
	MaxHoleSize int
	// Flags selects GLOBAL/SIDES_ORDERED behavior (FlagRemoveOverlap is
	// ignored here; it only applies to CleanMatches).
	Flags Flags
}

// ApplyDefaults fills zero-valued fields of PassConfig with their defaults.
func (c *PassConfig) ApplyDefaults() {
	if c.BlockSize == 0 {
		c.BlockSize = 16
	}
	if c.MinMatchSize == 0 {
		c.MinMatchSize = c.BlockSize
	}
}

// Verify checks PassConfig for correctness.
func (c *PassConfig) Verify() error {
	if !(c.BlockSize > 0) {
		return fmt.Errorf("bdelta: BlockSize=%d; must be positive", c.BlockSize)
	}
	if !(c.MinMatchSize > 0) {
		return fmt.Errorf("bdelta: MinMatchSize=%d; must be positive", c.MinMatchSize)
	}
	if c.MaxHoleSize < 0 {
		return fmt.Errorf("bdelta: MaxHoleSize=%d; must be >= 0", c.MaxHoleSize)
	}
	return nil
}
