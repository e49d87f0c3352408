package binstream

import "github.com/pkg/errors"

var (
	// ErrNilStream indicates that NewReader/NewWriter was called with a nil stream.
	ErrNilStream = errors.New("binstream: NewReader/NewWriter called with a nil stream")

	// ErrNilBuffer indicates a write was attempted with a nil byte slice or buffer.
	ErrNilBuffer = errors.New("binstream: nil buffer")

	// ErrClosed indicates an operation was attempted on a closed stream, reader or writer.
	ErrClosed = errors.New("binstream: closed")

	// ErrDetached indicates a Load was attempted after the input stream was detached.
	ErrDetached = errors.New("binstream: no stream attached")

	// ErrOutOfRange indicates a size or position beyond the stream's hard limit,
	// or an invalid range into a buffer.
	ErrOutOfRange = errors.New("binstream: size or position out of range")

	// ErrShortBuffer indicates a read would consume more bytes than remain
	// unconsumed in the staging buffer.
	ErrShortBuffer = errors.New("binstream: not enough bytes in the staging buffer")

	// ErrStagingFull indicates a Load request that would overflow the reader's
	// staging buffer. The staging buffer never grows; size it at construction.
	ErrStagingFull = errors.New("binstream: load exceeds staging buffer capacity")

	// ErrInvalidWhence indicates an unsupported 'whence' value passed to Seek.
	ErrInvalidWhence = errors.New("binstream: unsupported whence for seek")

	// ErrVariableSize indicates a value whose binary size cannot be computed,
	// such as a struct containing slices, maps or strings.
	ErrVariableSize = errors.New("binstream: type has no fixed binary size")
)
