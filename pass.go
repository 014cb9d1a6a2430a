package bdelta

import "golang.org/x/exp/slices"

// findMatches slides a rolling hash over target[start, end), probing idx
// for candidate reference offsets and extending each into a full match,
// committing the best-scoring candidate seen in each overlapping window
// before advancing past it (spec §4.5). initialPlace seeds the locality
// score's reference anchor — the caller passes in the paired reference
// gap's own start offset, not a constant zero, matching the original's
// per-call seeding.
func findMatches(r1, r2 Reader, idx *checksumIndex, ext *extender, ml *matchList, start, end, blockSize, minMatch, initialPlace int, insertPlace matchHandle) (int, error) {
	if end < start+blockSize {
		return 0, nil
	}

	winBuf := make([]byte, blockSize)
	win, err := r2.read(winBuf, start, blockSize)
	if err != nil {
		return 0, err
	}
	rh := newRollingHash(win)

	place := initialPlace
	j := start + blockSize

	haveCandidate := false
	var bestP1, bestP2, bestNum int
	var bestScore float64
	processMatchesPos := 0
	committed := 0

	outBuf := make([]byte, 1)
	inBuf := make([]byte, 1)

	for j <= end {
		var candErr error
		idx.forEachCandidate(rh.Value(), func(p1 int) {
			if candErr != nil {
				return
			}
			p2 := j - blockSize
			fwd, err := ext.matchForward(r1, r2, p1, p2)
			if err != nil {
				candErr = err
				return
			}
			if fwd < blockSize {
				return
			}
			bwd, err := ext.matchBackward(r1, r2, p1, p2, blockSize)
			if err != nil {
				candErr = err
				return
			}
			num := fwd + bwd
			if num < minMatch {
				return
			}
			p1c, p2c := p1-bwd, p2-bwd
			score := float64(num) / float64(iabs(p1c-place)+2*blockSize)
			if !haveCandidate {
				processMatchesPos = min(j+blockSize-1, end)
			}
			if !haveCandidate || score > bestScore {
				bestP1, bestP2, bestNum, bestScore = p1c, p2c, num, score
			}
			haveCandidate = true
		})
		if candErr != nil {
			return committed, candErr
		}

		if haveCandidate && j >= processMatchesPos {
			m := Match{P1: bestP1, P2: bestP2, Num: bestNum}
			ml.insertSorted(insertPlace, m)
			committed++
			place = bestP1 + bestNum
			matchEnd := bestP2 + bestNum
			haveCandidate = false
			if matchEnd >= end {
				return committed, nil
			}
			if matchEnd > j {
				j = matchEnd - blockSize
				win, err = r2.read(winBuf, j, blockSize)
				if err != nil {
					return committed, err
				}
				rh = newRollingHash(win)
				j += blockSize
				// The rebuilt window lies inside the committed match; it
				// is advanced by one token below before the next lookup.
			}
		}

		if j == end {
			break
		}
		o, err := r2.read(outBuf, j-blockSize, 1)
		if err != nil {
			return committed, err
		}
		n, err := r2.read(inBuf, j, 1)
		if err != nil {
			return committed, err
		}
		rh.advance(o[0], n[0])
		j++
	}

	return committed, nil
}

// runSubPass builds a checksum index over refGaps and scans every target
// gap in tgtGaps against it (spec §4.5's bdelta_pass_2). refGaps and
// tgtGaps are paired strictly by raw index — not by which match either
// entry actually bounds — matching the original exactly: the two arrays
// are independently sorted/processed upstream and only happen to share a
// length (see DESIGN.md's Open Question note on get_unused_blocks
// anchor bookkeeping). refGaps[i].p seeds findMatches's locality anchor
// for tgtGaps[i].
func runSubPass(r1, r2 Reader, ml *matchList, ext *extender, refGaps, tgtGaps []unusedRange, blockSize, minMatch int, useBloom bool) (int, error) {
	idx, err := buildChecksumIndex(r1, refGaps, blockSize, useBloom)
	if err != nil {
		return 0, err
	}
	total := 0
	for i, g := range tgtGaps {
		if g.num < blockSize {
			continue
		}
		placeSeed := 0
		if i < len(refGaps) {
			placeSeed = refGaps[i].p
		}
		n, err := findMatches(r1, r2, idx, ext, ml, g.p, g.p+g.num, blockSize, minMatch, placeSeed, g.mr)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// runLocalPasses runs one sub-pass per (refGaps[i], tgtGaps[i]) pair,
// i starting at 1 to skip the leading dummy sentinel gap, applying the
// optional maxHoleSize and SIDES_ORDERED filters (spec §4.8).
func (in *Instance) runLocalPasses(ext *extender, refGaps, tgtGaps []unusedRange, cfg PassConfig, useBloom bool) (int, error) {
	total := 0
	n := len(refGaps)
	if len(tgtGaps) < n {
		n = len(tgtGaps)
	}
	for i := 1; i < n; i++ {
		u1, u2 := refGaps[i], tgtGaps[i]
		if u1.num < cfg.BlockSize || u2.num < cfg.BlockSize {
			continue
		}
		if cfg.MaxHoleSize > 0 && (u1.num > cfg.MaxHoleSize || u2.num > cfg.MaxHoleSize) {
			continue
		}
		if cfg.Flags&FlagSidesOrdered != 0 {
			if next(u1.ml) != u1.mr || next(u2.ml) != u2.mr {
				continue
			}
		}
		c, err := runSubPass(in.r1, in.r2, in.matches, ext, []unusedRange{u1}, []unusedRange{u2}, cfg.BlockSize, cfg.MinMatchSize, useBloom)
		total += c
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Pass runs one pass of the engine at the given configuration, mutating
// the Instance's match list in place (spec §4.5, §4.8, external
// interface "pass").
func (in *Instance) Pass(cfg PassConfig) error {
	if in.closed {
		return ErrClosed
	}
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return err
	}

	front := in.matches.pushFront(Match{0, 0, 0})
	back := in.matches.pushBack(Match{in.size1, in.size2, 0})
	defer func() {
		in.matches.erase(front)
		in.matches.erase(back)
		in.cursorIdx = -1
	}()

	ext := newExtender()

	// Fast path (SPEC_FULL.md §B): on a truly empty match list, check
	// whether the whole reference and target are identical before paying
	// for a windowed scan. in.matches.Len() == 2 here counts only the two
	// sentinels just pushed above.
	if in.matches.Len() == 2 {
		if m, ok, err := tryIdenticalFullRange(in.r1, in.r2, ext, cfg.MinMatchSize); err != nil {
			return err
		} else if ok {
			in.matches.insertSorted(front, m)
			logSubPass(in.opts.Logger, cfg.BlockSize, cfg.MinMatchSize, cfg.Flags&FlagGlobal != 0, 0, 1)
			return nil
		}
	}

	refGaps, tgtGaps := gapsFromMatches(in.matches)
	useBloom := !in.opts.DisableBloomFilter
	global := cfg.Flags&FlagGlobal != 0

	var found int
	var runErr error
	if global {
		found, runErr = runSubPass(in.r1, in.r2, in.matches, ext, refGaps, tgtGaps, cfg.BlockSize, cfg.MinMatchSize, useBloom)
	} else {
		if len(refGaps) > 1 {
			slices.SortFunc(refGaps[1:], lessCmp(lessByRightAnchorP2))
		}
		found, runErr = in.runLocalPasses(ext, refGaps, tgtGaps, cfg, useBloom)
	}

	gapBytes := 0
	for _, g := range tgtGaps {
		gapBytes += g.num
	}
	logSubPass(in.opts.Logger, cfg.BlockSize, cfg.MinMatchSize, global, gapBytes, found)
	return runErr
}
