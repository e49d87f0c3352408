package binstream

import "io"

// InputStream is the capability set a Reader needs from its collaborator:
// a short-read-tolerant pull interface plus deterministic release.
type InputStream interface {
	// ReadBuffer pulls up to count bytes from the stream. The returned
	// Buffer has capacity count and its length set to the bytes actually
	// transferred, which may be less than count (a short read). Reading at
	// or past end-of-data yields an empty Buffer, not an error. Ownership
	// of the returned Buffer moves to the caller.
	ReadBuffer(count int) (*Buffer, error)

	io.Closer
}

// OutputStream is the capability set a Writer needs from its collaborator.
// Write must fail on a nil slice; both operations are synchronous.
type OutputStream interface {
	io.Writer

	// Flush asks the stream to push any internal state to its target.
	Flush() error

	io.Closer
}

// RandomAccessStream extends both stream capabilities with a cursor and a
// settable logical size.
type RandomAccessStream interface {
	InputStream
	OutputStream

	CanRead() bool
	CanWrite() bool

	// Position returns the read/write cursor. The cursor may sit past the
	// logical size; it only becomes meaningful when used.
	Position() int

	// SeekTo sets the cursor to an absolute position. Positions beyond the
	// stream's hard limit are rejected; positions beyond the current size
	// are legal and produce short reads or gap zero-fills on later writes.
	SeekTo(pos int) error

	// Size returns the logical end of valid data.
	Size() int

	// SetSize adjusts the logical size, zero-filling any newly included
	// bytes and clamping the cursor down on shrink.
	SetSize(n int) error
}

// Storer is the optional persist capability an OutputStream may support.
// Writer.Store probes for it with a type assertion; streams with no real
// persistence target simply do not implement it.
type Storer interface {
	// Store commits written bytes to the stream's backing target and
	// returns the number of bytes committed since the previous Store.
	Store() (int, error)
}
