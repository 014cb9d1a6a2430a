package bdelta

// Instance owns a pair of inputs and the match list discovered between
// them so far (spec §3 "Instance"). It is not safe for concurrent use by
// multiple goroutines; distinct Instances are fully independent (spec
// §5).
type Instance struct {
	size1, size2 int
	r1, r2       Reader

	matches *matchList

	cursorIdx    int
	cursorHandle matchHandle

	opts   Options
	closed bool
}

// New allocates an Instance over the given readers (spec external
// interface "init"). opts.TokenSize is checked against the engine's
// fixed token width.
func New(opts Options, r1, r2 Reader) (*Instance, error) {
	opts.ApplyDefaults()
	if err := opts.Verify(); err != nil {
		return nil, err
	}
	return &Instance{
		size1:     r1.size(),
		size2:     r2.size(),
		r1:        r1,
		r2:        r2,
		matches:   newMatchList(),
		cursorIdx: -1,
		opts:      opts,
	}, nil
}

// Close releases the Instance (spec external interface "done"). Further
// calls to Pass, SwapInputs, CleanMatches or GetMatch return ErrClosed.
func (in *Instance) Close() error {
	in.closed = true
	return nil
}

// NumMatches returns the current match count (spec §4.11, invariant 5).
func (in *Instance) NumMatches() int {
	return in.matches.Len()
}

// GetMatch returns the n-th match in p2 order, walking a saved
// enumeration cursor one step at a time from its last position (spec
// §4.11): sequential access is O(1) amortized, random access is
// O(distance).
func (in *Instance) GetMatch(n int) (Match, error) {
	if in.closed {
		return Match{}, ErrClosed
	}
	if n < 0 || n >= in.matches.Len() {
		return Match{}, ErrOffsetOutOfRange
	}
	if in.cursorIdx < 0 {
		in.cursorIdx = 0
		in.cursorHandle = in.matches.Front()
	}
	for in.cursorIdx < n {
		in.cursorHandle = next(in.cursorHandle)
		in.cursorIdx++
	}
	for in.cursorIdx > n {
		in.cursorHandle = prev(in.cursorHandle)
		in.cursorIdx--
	}
	return *valueAt(in.cursorHandle), nil
}

// CleanMatches resolves target-range overlaps between adjacent matches
// (spec §4.9). Without FlagRemoveOverlap, overlaps that don't fully
// swallow the right-hand match are left in place.
func (in *Instance) CleanMatches(flags Flags) error {
	if in.closed {
		return ErrClosed
	}
	h := in.matches.Front()
	for h != nil {
		r := next(h)
		if r == nil {
			break
		}
		l, rv := valueAt(h), valueAt(r)
		overlap := l.P2 + l.Num - rv.P2
		if overlap <= 0 {
			h = r
			continue
		}
		if overlap >= rv.Num {
			in.matches.erase(r)
			continue
		}
		if flags&FlagRemoveOverlap != 0 {
			l.Num -= overlap
		}
		h = r
	}
	in.cursorIdx = -1
	return nil
}

// SwapInputs exchanges the two inputs, swaps p1 and p2 in every match,
// and re-sorts the list by the new p2 (spec §4.10). It invalidates the
// enumeration cursor and every previously returned matchHandle.
func (in *Instance) SwapInputs() error {
	if in.closed {
		return ErrClosed
	}
	in.r1, in.r2 = in.r2, in.r1
	in.size1, in.size2 = in.size2, in.size1
	in.matches.forEach(func(h matchHandle) {
		m := valueAt(h)
		m.P1, m.P2 = m.P2, m.P1
	})
	in.matches.sortByP2()
	in.cursorIdx = -1
	return nil
}

// DebugDump logs every current match at trace level, in the spirit of
// the original's bdelta_showMatches debug helper. A no-op if no Logger
// is configured.
func (in *Instance) DebugDump() {
	if in.opts.Logger == nil {
		return
	}
	in.matches.forEach(func(h matchHandle) {
		logMatch(in.opts.Logger, *valueAt(h))
	})
}
