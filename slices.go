package binstream

import "io"

// SliceInputStream is an InputStream over an existing byte slice. It lets a
// Reader decode straight out of memory without constructing a MemStream.
type SliceInputStream struct {
	B []byte // source slice
	N int    // current read position
}

var _ InputStream = (*SliceInputStream)(nil)

// NewSliceInputStream creates a SliceInputStream over b. The slice is
// adopted, not copied.
func NewSliceInputStream(b []byte) *SliceInputStream {
	return &SliceInputStream{B: b}
}

// ReadBuffer pulls up to count bytes into a fresh Buffer, short-reading at
// the end of the slice.
func (s *SliceInputStream) ReadBuffer(count int) (*Buffer, error) {
	out := NewBuffer(count)
	if s.N < len(s.B) {
		out.N = copy(out.B, s.B[s.N:])
		s.N += out.N
	}
	return out, nil
}

// Read implements the io.Reader interface.
func (s *SliceInputStream) Read(p []byte) (int, error) {
	if s.N >= len(s.B) {
		return 0, io.EOF
	}
	n := copy(p, s.B[s.N:])
	s.N += n
	return n, nil
}

// Close is a no-op; the slice has no resource to release.
func (s *SliceInputStream) Close() error { return nil }

// Reset rewinds to the start of the slice.
func (s *SliceInputStream) Reset() { s.N = 0 }

// Available returns the number of bytes left to read.
func (s *SliceInputStream) Available() int {
	if n := len(s.B) - s.N; n > 0 {
		return n
	}
	return 0
}

// SliceOutputStream is a fixed-capacity OutputStream over a pre-allocated
// byte slice. It never grows the slice: a write past the end transfers what
// fits and returns io.ErrShortWrite. It also implements the Storer
// capability, reporting the bytes committed since the previous Store.
type SliceOutputStream struct {
	B []byte // destination slice
	N int    // current write position

	stored int // position at the last Store
}

var (
	_ OutputStream = (*SliceOutputStream)(nil)
	_ Storer       = (*SliceOutputStream)(nil)
)

// NewSliceOutputStream creates a SliceOutputStream over the full capacity
// of p.
func NewSliceOutputStream(p []byte) *SliceOutputStream {
	return &SliceOutputStream{B: p[:cap(p)]}
}

// Write implements the io.Writer interface.
func (s *SliceOutputStream) Write(p []byte) (int, error) {
	if p == nil {
		return 0, ErrNilBuffer
	}
	if s.N >= len(s.B) {
		return 0, io.ErrShortWrite
	}
	n := copy(s.B[s.N:], p)
	s.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Flush is trivial; bytes land in the slice as they are written.
func (s *SliceOutputStream) Flush() error { return nil }

// Close is a no-op; the slice has no resource to release.
func (s *SliceOutputStream) Close() error { return nil }

// Store reports the bytes written since the previous Store.
func (s *SliceOutputStream) Store() (int, error) {
	n := s.N - s.stored
	s.stored = s.N
	return n, nil
}

// Reset rewinds to the start of the slice.
func (s *SliceOutputStream) Reset() { s.N, s.stored = 0, 0 }

// Bytes returns a view of the written data.
func (s *SliceOutputStream) Bytes() []byte { return s.B[:s.N] }

// Available returns the remaining writable capacity.
func (s *SliceOutputStream) Available() int { return len(s.B) - s.N }
