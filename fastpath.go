package bdelta

import "github.com/cespare/xxhash/v2"

// fastPathBufSize bounds each read batch used to digest an input for the
// identical-full-range fast path (SPEC_FULL.md §B).
const fastPathBufSize = 32 * kiB

// digestReader computes the xxhash/v2 digest of the first n bytes of r,
// reading in fastPathBufSize batches rather than pulling the whole input
// into memory at once.
func digestReader(r Reader, n int) (uint64, error) {
	h := xxhash.New()
	buf := make([]byte, fastPathBufSize)
	for off := 0; off < n; {
		chunk := min(fastPathBufSize, n-off)
		b, err := r.read(buf, off, chunk)
		if err != nil {
			return 0, err
		}
		if _, err := h.Write(b); err != nil {
			return 0, err
		}
		off += chunk
	}
	return h.Sum64(), nil
}

// tryIdenticalFullRange is a cheap pre-filter for the common case where
// reference and target are wholesale identical: rather than sliding a
// rolling hash across the whole input, it compares whole-input digests and,
// on a match, confirms the hit byte-for-byte via the extender before
// trusting it (invariant 3 never tolerates a false match, so the digest
// alone is never sufficient — only a cheap way to skip the common-case
// windowed scan). Returns ok=false whenever the sizes differ, the whole
// input is shorter than minMatch (invariant 4 — a match below the
// configured minimum must never be committed, fast path or not), the
// digests differ, or the confirmation byte-compare comes up short.
func tryIdenticalFullRange(r1, r2 Reader, ext *extender, minMatch int) (Match, bool, error) {
	if r1.size() == 0 || r1.size() != r2.size() {
		return Match{}, false, nil
	}
	n := r1.size()
	if n < minMatch {
		return Match{}, false, nil
	}
	d1, err := digestReader(r1, n)
	if err != nil {
		return Match{}, false, err
	}
	d2, err := digestReader(r2, n)
	if err != nil {
		return Match{}, false, err
	}
	if d1 != d2 {
		return Match{}, false, nil
	}
	fwd, err := ext.matchForward(r1, r2, 0, 0)
	if err != nil {
		return Match{}, false, err
	}
	if fwd != n {
		return Match{}, false, nil
	}
	return Match{P1: 0, P2: 0, Num: n}, true, nil
}
