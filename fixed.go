package binstream

import (
	"encoding"
	"encoding/binary"
	"io"
	"reflect"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v4"
)

// Sizer reports the binary-encoded size of a type, useful for sizing
// buffers and staging areas up front.
type Sizer interface {
	Size() int
}

// Codec is a complete, self-sizing binary encoder/decoder.
type Codec interface {
	Sizer
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	io.WriterTo
	io.ReaderFrom
}

// sizeCache memoizes reflection-computed binary sizes per type so the
// reflect cost is paid once per type, not per value.
var sizeCache = xsync.NewMap[reflect.Type, int]()

func binarySizeOf(v any) (int, error) {
	t := reflect.TypeOf(v)
	if n, ok := sizeCache.Load(t); ok {
		return n, nil
	}
	n := binary.Size(v)
	if n < 0 {
		return 0, errors.Wrapf(ErrVariableSize, "%T", v)
	}
	sizeCache.Store(t, n)
	return n, nil
}

func encodeValue(v any) ([]byte, error) {
	size, err := binarySizeOf(v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, Order, v); err != nil {
		return nil, io.ErrShortWrite
	}
	return buf, nil
}

func decodeValue(b []byte, v any) (int, error) {
	n, err := binary.Decode(b, Order, v)
	if err != nil {
		return n, errors.Wrapf(ErrShortBuffer, "decode %T", v)
	}
	return n, nil
}

// Fixed wraps any struct composed solely of fixed-size fields in a complete
// Codec, eliminating boilerplate for plain record types. The wrapped type
// must not contain slices, maps or strings.
type Fixed[T any] struct {
	Value T
}

var _ Codec = (*Fixed[struct{}])(nil)

// Size returns the encoded size in bytes. The result is cached per type.
func (c *Fixed[T]) Size() int {
	n, err := binarySizeOf(&c.Value)
	if err != nil {
		return -1
	}
	return n
}

// MarshalBinary allocates and returns the little-endian encoding of the
// wrapped value.
func (c *Fixed[T]) MarshalBinary() ([]byte, error) {
	return encodeValue(&c.Value)
}

// UnmarshalBinary decodes the wrapped value from data. Truncated input
// fails with ErrShortBuffer; trailing bytes are ignored.
func (c *Fixed[T]) UnmarshalBinary(data []byte) error {
	_, err := decodeValue(data, &c.Value)
	return err
}

// MarshalTo encodes into a pre-allocated buffer without allocating.
func (c *Fixed[T]) MarshalTo(p []byte) (int, error) {
	n, err := binary.Encode(p, Order, &c.Value)
	if err != nil {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// ReadFrom decodes the wrapped value directly from a stream.
func (c *Fixed[T]) ReadFrom(r io.Reader) (int64, error) {
	if err := binary.Read(r, Order, &c.Value); err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}

// WriteTo encodes the wrapped value directly to a stream.
func (c *Fixed[T]) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, Order, &c.Value); err != nil {
		return 0, err
	}
	return int64(c.Size()), nil
}
