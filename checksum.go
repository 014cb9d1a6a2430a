package bdelta

import (
	"encoding/binary"
	"math"

	"github.com/bits-and-blooms/bloom/v3"
	"golang.org/x/exp/slices"
)

// maxIdenticalChecksums caps how many reference blocks may share an
// identical checksum before the whole run is discarded as too common to
// be informative (spec §4.4 step 5).
const maxIdenticalChecksums = 2

// bloomThreshold is the minimum block count before a probabilistic
// pre-filter is worth building; below it, walking the bucket chain
// directly is already cheap.
const bloomThreshold = 64

// checksumEntry is (hash value, reference offset) — spec §3.
type checksumEntry struct {
	value uint32
	loc   int
}

// checksumIndex is the block checksum index of spec §4.4: a power-of-two
// bucket table plus a contiguous, bucket-grouped, sorted array of
// checksumEntry, bounded by two sentinel entries.
type checksumIndex struct {
	blockSize int
	table     []int32 // bucket -> index of first entry in that bucket, or -1
	entries   []checksumEntry
	numReal   int // len(entries) excluding the two trailing sentinels
	bloom     *bloom.BloomFilter
}

func valueBytes(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// roundUpPowerOf2 returns the smallest power of two >= v, adapted from
// the original's bit-hack of the same name (spec §4.4 step 2).
func roundUpPowerOf2(v int) int {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v + 1
}

// buildChecksumIndex builds a checksum index over the given reference
// sub-ranges at block size blockSize (spec §4.4). ranges need not be
// contiguous or sorted; the index only depends on their union.
func buildChecksumIndex(r1 Reader, ranges []unusedRange, blockSize int, useBloom bool) (*checksumIndex, error) {
	numBlocks := 0
	for _, rg := range ranges {
		numBlocks += rg.num / blockSize
	}

	entries := make([]checksumEntry, 0, numBlocks)
	buf := make([]byte, blockSize)
	for _, rg := range ranges {
		first, last := rg.p, rg.p+rg.num
		for loc := first; loc+blockSize <= last; loc += blockSize {
			b, err := r1.read(buf, loc, blockSize)
			if err != nil {
				return nil, err
			}
			h := newRollingHash(b)
			entries = append(entries, checksumEntry{value: h.Value(), loc: loc})
		}
	}

	tableSize := roundUpPowerOf2(numBlocks)
	if tableSize < 2 {
		tableSize = 2
	}

	if len(entries) > 0 {
		slices.SortFunc(entries, func(a, b checksumEntry) int {
			ba, bb := bucketIndex(a.value, tableSize), bucketIndex(b.value, tableSize)
			if ba != bb {
				if ba < bb {
					return -1
				}
				return 1
			}
			if a.value != b.value {
				if a.value < b.value {
					return -1
				}
				return 1
			}
			if a.loc < b.loc {
				return -1
			}
			if a.loc > b.loc {
				return 1
			}
			return 0
		})

		writeLoc := 0
		for readLoc := 0; readLoc < len(entries); {
			testAhead := readLoc
			for testAhead < len(entries) && entries[testAhead].value == entries[readLoc].value {
				testAhead++
			}
			if testAhead-readLoc <= maxIdenticalChecksums {
				n := copy(entries[writeLoc:], entries[readLoc:testAhead])
				writeLoc += n
			}
			readLoc = testAhead
		}
		entries = entries[:writeLoc]
	}

	numReal := len(entries)
	entries = append(entries,
		checksumEntry{value: math.MaxUint32, loc: 0},
		checksumEntry{value: 0, loc: 0},
	)

	table := make([]int32, tableSize)
	for i := range table {
		table[i] = -1
	}
	for i := numReal - 1; i >= 0; i-- {
		b := bucketIndex(entries[i].value, tableSize)
		table[b] = int32(i)
	}

	idx := &checksumIndex{
		blockSize: blockSize,
		table:     table,
		entries:   entries,
		numReal:   numReal,
	}

	if useBloom && numReal >= bloomThreshold {
		f := bloom.NewWithEstimates(uint(numReal), 0.01)
		for i := 0; i < numReal; i++ {
			f.Add(valueBytes(entries[i].value))
		}
		idx.bloom = f
	}

	return idx, nil
}

// forEachCandidate calls f once per reference offset whose block hashes
// to value, after the bloom pre-filter (if any) rules out a definite
// miss. Multiple candidates can share a hash value (up to
// maxIdenticalChecksums of them survive dedup) — f is responsible for
// confirming equality byte-for-byte via the Extender.
func (idx *checksumIndex) forEachCandidate(value uint32, f func(loc int)) {
	if idx.numReal == 0 {
		return
	}
	if idx.bloom != nil && !idx.bloom.Test(valueBytes(value)) {
		return
	}
	b := bucketIndex(value, len(idx.table))
	i := idx.table[b]
	if i < 0 {
		return
	}
	for int(i) < len(idx.entries) && bucketIndex(idx.entries[i].value, len(idx.table)) == b {
		if idx.entries[i].value == value {
			f(idx.entries[i].loc)
		}
		i++
	}
}
