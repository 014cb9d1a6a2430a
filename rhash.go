package bdelta

import "math/bits"

// buzhashTable holds the per-byte random contribution used by the
// rolling hash. Generated deterministically at package init rather than
// hand-written as a literal table, following the technique in
// other_examples/chuckjaz-invariant-go__buzhash.go
// (table[i] = uint32(i) * constant; this table uses uint32(i+1), so byte 0
// does not map to 0); other_examples also contains a
// hand-written literal table of the same shape
// (other_examples/0xlemi-microprolly__buzhash.go) which this mirrors in
// spirit.
var buzhashTable [256]uint32

func init() {
	// An odd multiplier makes i -> i*mul a bijection on uint32, which is
	// enough to spread the low byte values across the full 32-bit range.
	const mul = 0x9e3779b1
	for i := range buzhashTable {
		buzhashTable[i] = uint32(i+1) * mul
	}
}

// rollingHash is the black-box rolling hash of spec §4.2: new(window, B)
// fixes the window size, advance(out, in) shifts it right by one token in
// O(1), and value() exposes the current hash for table bucketing and
// equality pre-filtering. It is a cyclic-polynomial (buzhash) rolling
// hash: removing the outgoing byte and adding the incoming byte is a
// single rotate-XOR, and — the required property of §4.2 — newRollingHash
// over a window produces the same value as repeatedly advancing into it.
type rollingHash struct {
	value uint32
	width uint32
}

// newRollingHash initializes a rollingHash over window, which must have
// exactly the intended block size.
func newRollingHash(window []byte) rollingHash {
	var h rollingHash
	h.width = uint32(len(window))
	n := len(window)
	for i, b := range window {
		h.value ^= bits.RotateLeft32(buzhashTable[b], n-1-i)
	}
	return h
}

// advance shifts the window right by one token: out leaves the window,
// in enters it.
func (h *rollingHash) advance(out, in byte) {
	h.value = bits.RotateLeft32(h.value, 1) ^
		bits.RotateLeft32(buzhashTable[out], int(h.width)) ^
		buzhashTable[in]
}

// Value returns the current hash.
func (h *rollingHash) Value() uint32 { return h.value }
