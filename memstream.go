package binstream

import (
	"io"

	"github.com/pkg/errors"
)

const (
	// DefaultLimit is the default hard ceiling on a MemStream's size and
	// position, matching a 16-bit bounded size type. Use NewMemStreamLimit
	// for larger streams.
	DefaultLimit = 65535

	// minCapacity is the initial backing allocation.
	minCapacity = 256
)

// MemStream is an auto-growing in-memory random-access stream. Capacity
// doubles on growth and never shrinks; the logical size and the cursor are
// independent of capacity. A MemStream is single-writer/single-reader by
// convention and is not safe for concurrent use.
//
// MemStream implements RandomAccessStream as well as io.Reader, io.Writer,
// io.Seeker and io.Closer for interop with the standard library.
type MemStream struct {
	buf    []byte // len(buf) is the current capacity
	length int    // logical end of valid data
	pos    int    // read/write cursor
	limit  int    // hard ceiling on length and pos
	closed bool
}

var (
	_ RandomAccessStream = (*MemStream)(nil)
	_ io.ReadWriteSeeker = (*MemStream)(nil)
)

// NewMemStream creates an empty MemStream with the default hard limit.
func NewMemStream() *MemStream {
	return NewMemStreamLimit(DefaultLimit)
}

// NewMemStreamLimit creates an empty MemStream whose size and position may
// never exceed limit.
func NewMemStreamLimit(limit int) *MemStream {
	c := minCapacity
	if limit < c {
		c = limit
	}
	return &MemStream{buf: make([]byte, c), limit: limit}
}

func (s *MemStream) CanRead() bool  { return !s.closed }
func (s *MemStream) CanWrite() bool { return !s.closed }

// Position returns the current cursor.
func (s *MemStream) Position() int { return s.pos }

// Size returns the logical end of valid data.
func (s *MemStream) Size() int { return s.length }

// Capacity returns the current backing allocation, which is at least Size().
func (s *MemStream) Capacity() int { return len(s.buf) }

// Limit returns the hard ceiling on size and position.
func (s *MemStream) Limit() int { return s.limit }

// Bytes returns a view of the valid data. The view is invalidated by the
// next growth or Close.
func (s *MemStream) Bytes() []byte {
	if s.closed {
		return nil
	}
	return s.buf[:s.length]
}

// ensure grows the backing storage so that at least n bytes fit. The new
// capacity is the largest of minCapacity, n and double the old capacity,
// clamped to the hard limit. The valid prefix is preserved; the new tail
// stays uninitialized until zero-filled or written.
func (s *MemStream) ensure(n int) error {
	if n > s.limit {
		return errors.Wrapf(ErrOutOfRange, "need %d bytes with limit %d", n, s.limit)
	}
	if n <= len(s.buf) {
		return nil
	}
	c := len(s.buf) * 2
	if c < minCapacity {
		c = minCapacity
	}
	if c < n {
		c = n
	}
	if c > s.limit {
		c = s.limit
	}
	next := make([]byte, c)
	copy(next, s.buf[:s.length])
	s.buf = next
	return nil
}

// ReadBuffer pulls up to count bytes starting at the cursor into a fresh
// Buffer of capacity count. The Buffer's length is set to the bytes actually
// copied, which is min(count, Size()-Position()); the cursor advances by the
// same amount. Reading at or past end-of-data yields an empty Buffer.
func (s *MemStream) ReadBuffer(count int) (*Buffer, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if count < 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "read of %d bytes", count)
	}
	out := NewBuffer(count)
	n := s.length - s.pos
	if n > count {
		n = count
	}
	if n > 0 {
		copy(out.B, s.buf[s.pos:s.pos+n])
		s.pos += n
		out.N = n
	}
	return out, nil
}

// Read implements io.Reader with the same short-read semantics, reporting
// io.EOF once the cursor reaches the logical end.
func (s *MemStream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.pos >= s.length {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:s.length])
	s.pos += n
	return n, nil
}

// Write copies p into the stream at the cursor, growing capacity and
// extending the logical size as needed, then advances the cursor. Any gap
// between the old size and the cursor is zero-filled before the copy, so
// stale bytes are never included in the extended size. Write only fails at
// the hard limit.
func (s *MemStream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if p == nil {
		return 0, ErrNilBuffer
	}
	end := s.pos + len(p)
	if end > s.length {
		if err := s.ensure(end); err != nil {
			return 0, err
		}
		if s.pos > s.length {
			clear(s.buf[s.length:s.pos])
		}
		s.length = end
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

// SeekTo sets the cursor to an absolute position. The position is validated
// against the hard limit only; seeking past the logical end is legal.
func (s *MemStream) SeekTo(pos int) error {
	if s.closed {
		return ErrClosed
	}
	if pos < 0 || pos > s.limit {
		return errors.Wrapf(ErrOutOfRange, "seek to %d with limit %d", pos, s.limit)
	}
	s.pos = pos
	return nil
}

// Seek implements io.Seeker on top of SeekTo.
func (s *MemStream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.pos) + offset
	case io.SeekEnd:
		target = int64(s.length) + offset
	default:
		return int64(s.pos), errors.Wrapf(ErrInvalidWhence, "whence %d", whence)
	}
	if target < 0 || target > int64(s.limit) {
		return int64(s.pos), errors.Wrapf(ErrOutOfRange, "seek to %d with limit %d", target, s.limit)
	}
	s.pos = int(target)
	return target, nil
}

// SetSize adjusts the logical size. Growth zero-fills every byte newly
// included in the size, whether or not the backing storage was reallocated;
// shrinking clamps the cursor down to the new size.
func (s *MemStream) SetSize(n int) error {
	if s.closed {
		return ErrClosed
	}
	if n < 0 || n > s.limit {
		return errors.Wrapf(ErrOutOfRange, "size %d with limit %d", n, s.limit)
	}
	if n > s.length {
		if err := s.ensure(n); err != nil {
			return err
		}
		clear(s.buf[s.length:n])
	}
	s.length = n
	if s.pos > n {
		s.pos = n
	}
	return nil
}

// Flush reports trivial success: the stream is memory-only, there is no
// persistence target to push to.
func (s *MemStream) Flush() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Close invalidates the stream and releases its storage. Close is
// idempotent; every other operation fails with ErrClosed afterwards.
func (s *MemStream) Close() error {
	if !s.closed {
		s.closed, s.buf = true, nil
		s.length, s.pos = 0, 0
	}
	return nil
}
