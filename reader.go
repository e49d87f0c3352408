package binstream

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultStagingSize is the staging buffer capacity used by NewReader.
const DefaultStagingSize = 512

// Reader decodes typed binary values from an InputStream. Bytes are pulled
// from the stream into an internal staging buffer with Load, then consumed
// sequentially by the typed Read* operations. The staging buffer never
// grows; when a Load would overflow it the call fails and the caller must
// construct the Reader with a larger size.
//
// Every Read* confirms its bounds before touching the cursor, so a failed
// read leaves the Reader unchanged. When the cursor exactly drains the
// staging buffer, the buffer is swapped for a fresh default-capacity one,
// bounding the memory retained after a large Load.
type Reader struct {
	in   InputStream
	buf  *Buffer // staging area
	pos  int     // read cursor, 0 <= pos <= buf.N
	size int     // staging capacity, fixed at construction

	closed bool
}

// NewReader creates a Reader over in with the default staging capacity.
// Ownership of in transfers to the Reader until DetachStream or Close.
func NewReader(in InputStream) (*Reader, error) {
	return NewReaderSize(in, DefaultStagingSize)
}

// NewReaderSize creates a Reader with a staging buffer of the given
// capacity. Sizes below one fall back to the default.
func NewReaderSize(in InputStream, size int) (*Reader, error) {
	if in == nil {
		return nil, ErrNilStream
	}
	if size < 1 {
		size = DefaultStagingSize
	}
	return &Reader{in: in, buf: newStaging(size), size: size}, nil
}

// UnconsumedBufferLength returns the bytes loaded but not yet consumed.
func (r *Reader) UnconsumedBufferLength() int {
	if r.closed {
		return 0
	}
	return r.buf.N - r.pos
}

// Load pulls up to count bytes from the input stream into the staging
// buffer and returns the bytes actually received. Short reads from the
// stream propagate as a short count, not an error. A zero count is a no-op.
func (r *Reader) Load(count int) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if r.in == nil {
		return 0, ErrDetached
	}
	if count == 0 {
		return 0, nil
	}
	if count < 0 {
		return 0, errors.Wrapf(ErrOutOfRange, "load of %d bytes", count)
	}
	if count > r.buf.Available() {
		return 0, errors.Wrapf(ErrStagingFull, "load of %d bytes with %d free", count, r.buf.Available())
	}
	chunk, err := r.in.ReadBuffer(count)
	if err != nil {
		return 0, err
	}
	n := copy(r.buf.B[r.buf.N:], chunk.Bytes())
	r.buf.N += n
	return n, nil
}

// consume returns a view of the next n staged bytes and advances the
// cursor. The view aliases the staging buffer; callers decode from it
// before calling maybeReset.
func (r *Reader) consume(n int) ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if n < 0 || n > r.buf.N-r.pos {
		return nil, errors.Wrapf(ErrShortBuffer, "%d bytes requested, %d unconsumed", n, r.buf.N-r.pos)
	}
	b := r.buf.B[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// maybeReset swaps in a fresh staging buffer once the current one is fully
// drained. Called only after decoded values no longer alias the old storage.
func (r *Reader) maybeReset() {
	if r.pos > 0 && r.pos == r.buf.N {
		recycleStaging(r.buf)
		r.buf = newStaging(r.size)
		r.pos = 0
	}
}

// ReadBool consumes one byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.consume(1)
	if err != nil {
		return false, err
	}
	v := b[0] != 0
	r.maybeReset()
	return v, nil
}

// ReadByte consumes a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.consume(1)
	if err != nil {
		return 0, err
	}
	v := b[0]
	r.maybeReset()
	return v, nil
}

// ReadBytes consumes n bytes into a freshly allocated slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.consume(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	r.maybeReset()
	return out, nil
}

// ReadBytesTo consumes exactly len(dst) bytes into dst.
func (r *Reader) ReadBytesTo(dst []byte) error {
	b, err := r.consume(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	r.maybeReset()
	return nil
}

// ReadBuffer consumes n bytes into a fresh Buffer owned by the caller.
func (r *Reader) ReadBuffer(n int) (*Buffer, error) {
	b, err := r.consume(n)
	if err != nil {
		return nil, err
	}
	out := NewBuffer(n)
	out.N = copy(out.B, b)
	r.maybeReset()
	return out, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.consume(2)
	if err != nil {
		return 0, err
	}
	v := Order.Uint16(b)
	r.maybeReset()
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.consume(4)
	if err != nil {
		return 0, err
	}
	v := Order.Uint32(b)
	r.maybeReset()
	return v, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.consume(8)
	if err != nil {
		return 0, err
	}
	v := Order.Uint64(b)
	r.maybeReset()
	return v, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadByte()
	return int8(v), err
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadString consumes exactly byteLen encoded bytes and decodes them as
// UTF-8. The length is measured in encoded bytes, not characters. An
// incomplete trailing sequence decodes as many complete characters as are
// available; malformed input never fails the call.
func (r *Reader) ReadString(byteLen int) (string, error) {
	b, err := r.consume(byteLen)
	if err != nil {
		return "", err
	}
	s := decodeString(b)
	r.maybeReset()
	return s, nil
}

// ReadGUID consumes the fixed 16-byte mixed-endian GUID layout.
func (r *Reader) ReadGUID() (uuid.UUID, error) {
	b, err := r.consume(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	id := guidFrom(b)
	r.maybeReset()
	return id, nil
}

// ReadTime consumes a 64-bit tick count and reinterprets it as an instant.
func (r *Reader) ReadTime() (time.Time, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return ticksToTime(ticks), nil
}

// ReadDuration consumes a 64-bit tick count and reinterprets it as a span.
func (r *Reader) ReadDuration() (time.Duration, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	return ticksToDuration(ticks), nil
}

// ReadValue decodes a fixed-size value via encoding/binary. v must be a
// pointer to a type with a fixed binary size.
func (r *Reader) ReadValue(v any) error {
	size, err := binarySizeOf(v)
	if err != nil {
		return err
	}
	b, err := r.consume(size)
	if err != nil {
		return err
	}
	if _, err := decodeValue(b, v); err != nil {
		return err
	}
	r.maybeReset()
	return nil
}

// Align discards staged bytes until the cursor is a multiple of n.
func (r *Reader) Align(n int) error {
	if n <= 1 {
		return nil
	}
	_, err := r.consume(int(Roundup(int64(r.pos), int64(n))) - r.pos)
	if err != nil {
		return err
	}
	r.maybeReset()
	return nil
}

// DetachStream releases ownership of the input stream back to the caller
// without closing it. Further Loads fail with ErrDetached.
func (r *Reader) DetachStream() InputStream {
	in := r.in
	r.in = nil
	return in
}

// Close releases the staging buffer and closes an attached stream,
// swallowing any close error. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.in != nil {
		_ = r.in.Close()
		r.in = nil
	}
	recycleStaging(r.buf)
	r.buf, r.pos = nil, 0
	return nil
}
