package bdelta

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestInstance(t *testing.T, ref, tgt []byte) *Instance {
	t.Helper()
	opts := Options{TokenSize: tokenSize}
	in, err := New(opts, NewDirectSource(ref), NewDirectSource(tgt))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return in
}

func allMatches(t *testing.T, in *Instance) []Match {
	t.Helper()
	out := make([]Match, in.NumMatches())
	for i := range out {
		m, err := in.GetMatch(i)
		if err != nil {
			t.Fatalf("GetMatch(%d): %v", i, err)
		}
		out[i] = m
	}
	return out
}

func containsMatch(ms []Match, want Match) bool {
	for _, m := range ms {
		if m == want {
			return true
		}
	}
	return false
}

// Scenario 1 (spec §8): identical inputs yield one full-length match.
func TestPassScenario1Identical(t *testing.T) {
	in := newTestInstance(t, []byte("ABCDEFGH"), []byte("ABCDEFGH"))
	if err := in.Pass(PassConfig{BlockSize: 4, MinMatchSize: 4}); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	want := []Match{{P1: 0, P2: 0, Num: 8}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("matches = %v; want %v", got, want)
	}
}

// Scenario 2: a prefix inserted in the target shifts p2 but not p1.
func TestPassScenario2PrefixInsertion(t *testing.T) {
	in := newTestInstance(t, []byte("ABCDEFGH"), []byte("XYABCDEFGH"))
	if err := in.Pass(PassConfig{BlockSize: 4, MinMatchSize: 4}); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	want := Match{P1: 0, P2: 2, Num: 8}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("matches = %v; want [%v]", got, want)
	}
}

// Scenario 3: a substitution splits one match into two, p2-sorted.
func TestPassScenario3Substitution(t *testing.T) {
	in := newTestInstance(t, []byte("ABCDEFGH"), []byte("ABCDXXEFGH"))
	if err := in.Pass(PassConfig{BlockSize: 2, MinMatchSize: 2}); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	for i := 1; i < len(got); i++ {
		if got[i-1].P2 > got[i].P2 {
			t.Fatalf("matches not p2-sorted: %v", got)
		}
	}
	if !containsMatch(got, Match{P1: 0, P2: 0, Num: 4}) {
		t.Fatalf("matches %v do not include (0,0,4)", got)
	}
	if !containsMatch(got, Match{P1: 4, P2: 6, Num: 4}) {
		t.Fatalf("matches %v do not include (4,6,4)", got)
	}
	for _, m := range got {
		if !bytesEqualAt([]byte("ABCDEFGH"), []byte("ABCDXXEFGH"), m) {
			t.Fatalf("match %v does not hold byte-for-byte", m)
		}
	}
}

// Scenario 4: a rotation produces two matches, listed p2-sorted even
// though that's the reverse of their p1 order.
func TestPassScenario4Rotation(t *testing.T) {
	in := newTestInstance(t, []byte("ABCDEFGHIJKL"), []byte("IJKLABCDEFGH"))
	if err := in.Pass(PassConfig{BlockSize: 4, MinMatchSize: 4}); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	want := []Match{
		{P1: 8, P2: 0, Num: 4},
		{P1: 0, P2: 4, Num: 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 5: all-zero-ish (here all-'A') inputs must not blow up, and
// the union of matches must still cover the whole target.
func TestPassScenario5DegenerateRepeats(t *testing.T) {
	ref := []byte("AAAAAAAA")
	tgt := []byte("AAAAAAAA")
	in := newTestInstance(t, ref, tgt)
	if err := in.Pass(PassConfig{BlockSize: 2, MinMatchSize: 2}); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	recon := reconstruct(t, ref, tgt, got)
	if string(recon) != string(tgt) {
		t.Fatalf("reconstructed = %q; want %q", recon, tgt)
	}
	covered := make([]bool, len(tgt))
	for _, m := range got {
		for i := m.P2; i < m.P2+m.Num; i++ {
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Fatalf("target byte %d is not covered by any match in %v", i, got)
		}
	}
}

// Scenario 6: swap_inputs on scenario 2's result exchanges p1 and p2.
func TestPassScenario6SwapInputs(t *testing.T) {
	in := newTestInstance(t, []byte("ABCDEFGH"), []byte("XYABCDEFGH"))
	if err := in.Pass(PassConfig{BlockSize: 4, MinMatchSize: 4}); err != nil {
		t.Fatal(err)
	}
	if err := in.SwapInputs(); err != nil {
		t.Fatal(err)
	}
	got := allMatches(t, in)
	want := Match{P1: 2, P2: 0, Num: 8}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("matches after SwapInputs = %v; want [%v]", got, want)
	}
}

// TestPassIdenticalFastPathRespectsMinMatchSize guards invariant 4 against
// the identical-full-range fast path (fastpath.go): an identical input
// shorter than the configured MinMatchSize must still yield no match, the
// same as the normal windowed scan would.
func TestPassIdenticalFastPathRespectsMinMatchSize(t *testing.T) {
	in := newTestInstance(t, []byte("abc"), []byte("abc"))
	if err := in.Pass(PassConfig{}); err != nil { // defaults: BlockSize=MinMatchSize=16
		t.Fatal(err)
	}
	if n := in.NumMatches(); n != 0 {
		t.Fatalf("NumMatches = %d; want 0 (3-byte identical input is shorter than MinMatchSize=16)", n)
	}
}

// bytesEqualAt checks invariant 3 of spec §8: every reported match is
// byte-for-byte accurate.
func bytesEqualAt(ref, tgt []byte, m Match) bool {
	if m.P1+m.Num > len(ref) || m.P2+m.Num > len(tgt) {
		return false
	}
	for i := 0; i < m.Num; i++ {
		if ref[m.P1+i] != tgt[m.P2+i] {
			return false
		}
	}
	return true
}
