package bdelta

import "testing"

func TestMatchBufForward(t *testing.T) {
	tests := []struct {
		p, q []byte
		n    int
	}{
		{p: []byte("hello"), q: []byte("helloxxx"), n: 5},
		{p: []byte("hellofoo"), q: []byte("helloar"), n: 5},
		{p: nil, q: []byte("foo"), n: 0},
		{p: nil, q: nil, n: 0},
		{p: []byte("foobarfoobar12345"), q: []byte("foobarfoobarabc"), n: 12},
		{p: []byte("foobarfoobar"), q: []byte("foobarfoobar"), n: 12},
		{p: []byte("foo"), q: []byte("bar"), n: 0},
	}
	for _, tc := range tests {
		n := matchBufForward(tc.p, tc.q)
		if n != tc.n {
			t.Fatalf("matchBufForward(%q, %q) = %d; want %d", tc.p, tc.q, n, tc.n)
		}
	}
}

func TestMatchBufBackward(t *testing.T) {
	tests := []struct {
		p, q []byte
		n    int
	}{
		{p: []byte("hello"), q: []byte("xxxhello"), n: 5},
		{p: []byte("foohello"), q: []byte("arhello"), n: 5},
		{p: nil, q: []byte("foo"), n: 0},
		{p: []byte("foobarfoobar"), q: []byte("foobarfoobar"), n: 12},
		{p: []byte("foo"), q: []byte("bar"), n: 0},
	}
	for _, tc := range tests {
		n := matchBufBackward(tc.p, tc.q)
		if n != tc.n {
			t.Fatalf("matchBufBackward(%q, %q) = %d; want %d", tc.p, tc.q, n, tc.n)
		}
	}
}

func simpleForward(p, q []byte) int {
	n := 0
	for n < len(p) && n < len(q) && p[n] == q[n] {
		n++
	}
	return n
}

func FuzzMatchBufForward(f *testing.F) {
	f.Add([]byte("Hello, universe!"), []byte("Hello, world!"))
	f.Add([]byte(""), []byte("abc"))
	f.Add([]byte(""), []byte(""))
	f.Fuzz(func(t *testing.T, p, q []byte) {
		g := matchBufForward(p, q)
		w := simpleForward(p, q)
		if g != w {
			t.Fatalf("matchBufForward(%q, %q) = %d; want %d", p, q, g, w)
		}
	})
}

func TestExtenderForwardBackward(t *testing.T) {
	r1 := NewDirectSource([]byte("XXXXABCDEFGHYYYY"))
	r2 := NewDirectSource([]byte("ZZZABCDEFGHWWW"))
	ext := newExtender()

	// "ABCDEFGH" starts at offset 4 in r1, offset 3 in r2.
	fwd, err := ext.matchForward(r1, r2, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if fwd != 8 {
		t.Fatalf("matchForward = %d; want 8", fwd)
	}

	bwd, err := ext.matchBackward(r1, r2, 4, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if bwd != 0 {
		t.Fatalf("matchBackward = %d; want 0 (the bytes before the match differ: 'X' in r1, 'Z' in r2)", bwd)
	}
}

func TestExtenderMatchForwardStopsAtInputEnd(t *testing.T) {
	r1 := NewDirectSource([]byte("ABCDEFGH"))
	r2 := NewDirectSource([]byte("ABCDE"))
	ext := newExtender()

	fwd, err := ext.matchForward(r1, r2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if fwd != 5 {
		t.Fatalf("matchForward = %d; want 5 (bounded by r2's length)", fwd)
	}
}
