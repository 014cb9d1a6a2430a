package bdelta

import "golang.org/x/exp/slices"

// unusedRange is a gap between two matches: offset, length, and the
// iterators of the bounding matches so that matches discovered within
// the gap can be inserted without re-searching the list (spec §3).
type unusedRange struct {
	p, num int
	ml, mr matchHandle
}

// lessByP orders unusedRange by location ascending, then by length
// descending (spec §4.7's comparep).
func lessByP(a, b unusedRange) bool {
	if a.p != b.p {
		return a.p < b.p
	}
	return a.num > b.num
}

// lessByRightAnchorP2 orders unusedRange pairs by their right anchor's
// p2 ascending, then its num descending (spec §4.8's comparemrp2) — used
// to order local-mode gap pairs for sub-pass dispatch.
func lessByRightAnchorP2(a, b unusedRange) bool {
	ma, mb := valueAt(a.mr), valueAt(b.mr)
	if ma.P2 != mb.P2 {
		return ma.P2 < mb.P2
	}
	return ma.Num > mb.Num
}

// lessCmp adapts a strict-less-than predicate to the cmp-style
// comparator required by slices.SortFunc.
func lessCmp[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		if less(a, b) {
			return -1
		}
		if less(b, a) {
			return 1
		}
		return 0
	}
}

// getUnusedBlocks converts a slice of per-match placeholder ranges (one
// per match, carrying that match's own offset/length as anchors) into
// the actual gaps that precede each match, in place. unused[0] is left
// untouched: it corresponds to the sentinel match at the very start and
// already describes "nothing before the first match" correctly.
//
// The new left anchor of gap i is unused[i-1].mr, not unused[i].ml — the
// gap is bounded on its left by the *previous* match's right anchor, a
// detail the original couples SIDES_ORDERED correctness to (spec §9 Open
// Question; DESIGN.md).
func getUnusedBlocks(unused []unusedRange) {
	nextStartPos := 0
	for i := 1; i < len(unused); i++ {
		startPos := nextStartPos
		oldP, oldNum := unused[i].p, unused[i].num
		nextStartPos = max(startPos, oldP+oldNum)
		unused[i] = unusedRange{
			p:   startPos,
			num: doz(oldP, startPos),
			ml:  unused[i-1].mr,
			mr:  unused[i].mr,
		}
	}
}

// gapsFromMatches derives the reference-side and target-side unused
// ranges from the current match list (spec §4.7). The caller is
// expected to have already bracketed the list with the (0,0,0) /
// (data1_size, data2_size, 0) sentinel matches.
func gapsFromMatches(ml *matchList) (refGaps, tgtGaps []unusedRange) {
	refGaps = make([]unusedRange, 0, ml.Len())
	tgtGaps = make([]unusedRange, 0, ml.Len())
	ml.forEach(func(h matchHandle) {
		m := valueAt(h)
		refGaps = append(refGaps, unusedRange{p: m.P1, num: m.Num, ml: h, mr: h})
		tgtGaps = append(tgtGaps, unusedRange{p: m.P2, num: m.Num, ml: h, mr: h})
	})

	// Leave the prepended sentinel (index 0) in place; sort the rest by
	// location so get_unused_blocks can sweep left to right.
	if len(refGaps) > 1 {
		slices.SortFunc(refGaps[1:], lessCmp(lessByP))
	}

	getUnusedBlocks(refGaps)
	getUnusedBlocks(tgtGaps)
	return refGaps, tgtGaps
}
