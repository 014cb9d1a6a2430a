package bdelta

import (
	"io"

	"github.com/pkg/errors"
)

// ReadFunc is the caller-supplied reader callback contract (spec §4.1,
// §6): it returns a slice of exactly num bytes of the input identified by
// handle, starting at offset. It may fill dst and return dst[:num], or
// return a slice into storage it owns — callers of a Reader must always
// use the returned slice, never assume it is dst.
type ReadFunc func(handle any, dst []byte, offset, num int) ([]byte, error)

// A Reader provides uniform random-access reads over one input, whether
// backed directly by an in-memory slice or by a caller-supplied callback.
type Reader interface {
	// read returns num bytes starting at offset. The returned slice is
	// valid until the next call to read with the same dst.
	read(dst []byte, offset, num int) ([]byte, error)
	// size returns the total addressable length of the input.
	size() int
}

// directReader implements Reader's "direct" mode (spec §4.1.1): the
// handle is a plain byte slice and reads are plain sub-slicing, no
// callback involved.
type directReader struct {
	data []byte
}

func (r *directReader) read(_ []byte, offset, num int) ([]byte, error) {
	if offset < 0 || num < 0 || offset+num > len(r.data) {
		return nil, ErrOffsetOutOfRange
	}
	return r.data[offset : offset+num], nil
}

func (r *directReader) size() int { return len(r.data) }

// callbackReader implements Reader's "callback" mode (spec §4.1.2): every
// read is delegated to a caller-supplied ReadFunc and an opaque handle.
type callbackReader struct {
	cb     ReadFunc
	handle any
	n      int
}

func (r *callbackReader) read(dst []byte, offset, num int) ([]byte, error) {
	if offset < 0 || num < 0 || offset+num > r.n {
		return nil, ErrOffsetOutOfRange
	}
	p, err := r.cb(r.handle, dst, offset, num)
	if err != nil {
		return nil, errors.Wrapf(err, "bdelta: reader callback failed at offset %d, num %d", offset, num)
	}
	return p, nil
}

func (r *callbackReader) size() int { return r.n }

// NewDirectSource returns a ReadFunc-free Reader backed directly by data.
// This is the "direct" mode of spec §4.1.
func NewDirectSource(data []byte) Reader {
	return &directReader{data: data}
}

// NewCallbackSource returns a Reader backed by a caller-supplied callback
// and opaque handle (spec §4.1.2). size is the total addressable length of
// the input.
func NewCallbackSource(cb ReadFunc, handle any, size int) Reader {
	return &callbackReader{cb: cb, handle: handle, n: size}
}

// pageCache is a single-window read-ahead cache over an io.ReaderAt,
// adapted from ulikunitz-lz's Buffer (buffer.go): that type grows a
// contiguous byte slice as a streaming parse cursor advances and prunes
// bytes that fall behind the cursor. bdelta's access pattern is random,
// not streaming — there is no cursor to prune behind — so this keeps only
// Buffer's "grow a window with headroom, track its origin offset" shape
// and repurposes it to start the window at whichever offset was last
// missed, instead of at a monotonically advancing write position.
type pageCache struct {
	r       io.ReaderAt
	size    int64
	off     int64
	data    []byte
	minRead int
}

func newPageCache(r io.ReaderAt, size int64, minRead int) *pageCache {
	if minRead <= 0 {
		minRead = 64 * 1024
	}
	return &pageCache{r: r, size: size, minRead: minRead}
}

func (c *pageCache) read(offset, num int64) ([]byte, error) {
	if offset < c.off || offset+num > c.off+int64(len(c.data)) {
		if err := c.fill(offset, num); err != nil {
			return nil, err
		}
	}
	start := offset - c.off
	return c.data[start : start+num], nil
}

func (c *pageCache) fill(offset, num int64) error {
	want := num
	if want < int64(c.minRead) {
		want = int64(c.minRead)
	}
	if offset+want > c.size {
		want = c.size - offset
	}
	if want < num {
		return errors.Wrapf(io.ErrUnexpectedEOF, "bdelta: short read at offset %d", offset)
	}
	buf := make([]byte, want)
	n, err := c.r.ReadAt(buf, offset)
	if err != nil && !(err == io.EOF && int64(n) == want) {
		return errors.Wrapf(err, "bdelta: ReadAt offset %d, len %d", offset, want)
	}
	c.data = buf[:n]
	c.off = offset
	if int64(n) < num {
		return errors.Wrapf(io.ErrUnexpectedEOF, "bdelta: short read at offset %d", offset)
	}
	return nil
}

// readerAtReader adapts an io.ReaderAt, fronted by a pageCache, to the
// Reader interface, so callers can hand bdelta a file (or anything else
// implementing io.ReaderAt) without writing their own ReadFunc.
type readerAtReader struct {
	cache *pageCache
}

func (r *readerAtReader) read(_ []byte, offset, num int) ([]byte, error) {
	p, err := r.cache.read(int64(offset), int64(num))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *readerAtReader) size() int { return int(r.cache.size) }

// NewReaderAtSource adapts r into a Reader. size is the total addressable
// length of the input; minReadAhead controls how many bytes are cached
// per miss (0 selects a 64 KiB default).
func NewReaderAtSource(r io.ReaderAt, size int64, minReadAhead int) Reader {
	return &readerAtReader{cache: newPageCache(r, size, minReadAhead)}
}
