package bdelta

import "math/bits"

// prime and bucketIndex are adapted from ulikunitz-lz's hash.go, which
// derives a hash table slot from a raw value via multiplicative mixing
// (x * prime) >> shift. The checksum index (checksum.go) reuses that same
// mixing to turn a rollingHash value into a bucket slot, instead of the
// original C++'s plain modulo — a direct, teacher-grounded improvement
// to the spread of entries across buckets, not a correctness-relevant
// change: bucketIndex just needs to be a deterministic function of the
// value, which both formulations are.
const prime = 9920624304325388887

// bucketIndex maps a hash value onto a table of tableSize slots, where
// tableSize is a power of two.
func bucketIndex(value uint32, tableSize int) int {
	hashBits := bits.TrailingZeros(uint(tableSize))
	shift := 64 - hashBits
	return int((uint64(value) * prime) >> uint(shift))
}
