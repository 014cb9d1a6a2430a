package bdelta

import (
	"container/list"

	"golang.org/x/exp/slices"
)

// Match is a single (p1, p2, num) triple: reference[p1:p1+num] equals
// target[p2:p2+num] (spec §3).
type Match struct {
	P1, P2, Num int
}

// matchHandle is a stable reference to a Match inside an Instance's
// match list: it stays valid across insertions and erasures elsewhere in
// the list, exactly as the "anchor iterators" of spec §3/§4.7 require.
//
// No third-party doubly-linked-list package appears anywhere in this
// corpus — every example repo here keeps its working set in slices or
// growable buffers (ulikunitz-lz's Buffer/seqBuffer family, kalbasit-
// fastcdc's ring buffer, WoozyMasta-lzo's sliding window pool) because
// none of them need insertion-while-holding-other-iterators the way a
// pass's gap bookkeeping does (spec Design Notes §9). container/list is
// the standard library's answer to exactly that structural requirement —
// a doubly-linked list whose *list.Element pointers are the stable
// handles — so it is used directly here instead of hand-rolling the same
// thing or reaching for a vector-plus-generational-index scheme the spec
// only raises as an alternative.
type matchHandle = *list.Element

// matchList is the Instance's owned, p2-ordered sequence of matches.
type matchList struct {
	l *list.List
}

func newMatchList() *matchList {
	return &matchList{l: list.New()}
}

func (ml *matchList) Len() int { return ml.l.Len() }

func (ml *matchList) Front() matchHandle { return ml.l.Front() }
func (ml *matchList) Back() matchHandle  { return ml.l.Back() }

func valueAt(h matchHandle) *Match { return h.Value.(*Match) }

func next(h matchHandle) matchHandle { return h.Next() }
func prev(h matchHandle) matchHandle { return h.Prev() }

// pushFront/pushBack install the sentinel matches spec §4.7 requires
// around the edges of the list before gap computation.
func (ml *matchList) pushFront(m Match) matchHandle { return ml.l.PushFront(&m) }
func (ml *matchList) pushBack(m Match) matchHandle  { return ml.l.PushBack(&m) }

func (ml *matchList) erase(h matchHandle) { ml.l.Remove(h) }

// lessP2 orders matches by p2 ascending, ties broken by num descending
// (spec §4.6, §3).
func lessP2(a, b Match) bool {
	if a.P2 != b.P2 {
		return a.P2 < b.P2
	}
	return a.Num > b.Num
}

// insertSorted inserts m into ml, searching outward from near (a nearby
// handle — typically a gap's right-bounding anchor) first backward while
// the element at the current position does not sort before m, then
// forward while the
// current element still sorts before m, per spec §4.6's addMatch. It
// returns the handle of the newly inserted match.
func (ml *matchList) insertSorted(near matchHandle, m Match) matchHandle {
	place := near
	for place != ml.l.Front() && !lessP2(*valueAt(place), m) {
		place = prev(place)
	}
	for place != nil && lessP2(*valueAt(place), m) {
		place = next(place)
	}
	if place == nil {
		return ml.l.PushBack(&m)
	}
	return ml.l.InsertBefore(&m, place)
}

// sortByP2 re-sorts the whole list by p2, used after SwapInputs exchanges
// p1 and p2 in every match (spec §4.10).
func (ml *matchList) sortByP2() {
	matches := make([]Match, 0, ml.l.Len())
	for e := ml.l.Front(); e != nil; e = e.Next() {
		matches = append(matches, *valueAt(e))
	}
	slices.SortFunc(matches, lessCmp(lessP2))

	ml.l.Init()
	for i := range matches {
		ml.l.PushBack(&matches[i])
	}
}

// forEach calls f for every match in p2 order.
func (ml *matchList) forEach(f func(h matchHandle)) {
	for e := ml.l.Front(); e != nil; e = e.Next() {
		f(e)
	}
}
