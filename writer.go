package binstream

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Writer encodes typed values to their canonical little-endian (UTF-8 for
// text) representation and forwards the bytes to an OutputStream. There is
// no staging: every write reaches the stream immediately. Writer is not
// safe for concurrent use.
type Writer struct {
	out    OutputStream
	count  int64 // total bytes forwarded
	closed bool
}

// NewWriter creates a Writer over out. Ownership of out transfers to the
// Writer until Close.
func NewWriter(out OutputStream) (*Writer, error) {
	if out == nil {
		return nil, ErrNilStream
	}
	return &Writer{out: out}, nil
}

// ByteOrder reports the wire byte order. Fixed to little-endian; the getter
// exists for interface parity only.
func (w *Writer) ByteOrder() binary.ByteOrder { return Order }

// UnicodeEncoding reports the wire text encoding. Fixed to UTF-8.
func (w *Writer) UnicodeEncoding() string { return Encoding }

// Count returns the total bytes forwarded to the stream.
func (w *Writer) Count() int64 { return w.count }

// WriteBytes forwards p directly to the stream.
func (w *Writer) WriteBytes(p []byte) error {
	if w.closed {
		return ErrClosed
	}
	if p == nil {
		return ErrNilBuffer
	}
	n, err := w.out.Write(p)
	w.count += int64(n)
	return err
}

// WriteByte forwards a single byte.
func (w *Writer) WriteByte(v byte) error {
	return w.WriteBytes([]byte{v})
}

// WriteBool encodes true as 1 and false as 0.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

func (w *Writer) WriteUint8(v uint8) error {
	return w.WriteByte(v)
}

func (w *Writer) WriteUint16(v uint16) error {
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *Writer) WriteUint32(v uint32) error {
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *Writer) WriteUint64(v uint64) error {
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *Writer) WriteInt8(v int8) error   { return w.WriteByte(uint8(v)) }
func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) error { return w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) error { return w.WriteUint64(math.Float64bits(v)) }

// WriteString forwards the UTF-8 encoding of s and returns the number of
// bytes written, which may exceed the character count.
func (w *Writer) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if s == "" {
		return 0, nil
	}
	n, err := w.out.Write([]byte(s))
	w.count += int64(n)
	return n, err
}

// WriteRune forwards the UTF-8 encoding of a single rune and returns the
// number of bytes written.
func (w *Writer) WriteRune(r rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	buf := utf8.AppendRune(make([]byte, 0, utf8.UTFMax), r)
	n, err := w.out.Write(buf)
	w.count += int64(n)
	return n, err
}

// MeasureString returns the UTF-8 encoded byte length of s without writing.
func (w *Writer) MeasureString(s string) int { return len(s) }

// WriteBuffer forwards a Buffer's valid bytes. The Buffer itself is left
// untouched and stays owned by the caller.
func (w *Writer) WriteBuffer(b *Buffer) error {
	if b == nil {
		return ErrNilBuffer
	}
	return w.WriteBytes(b.Bytes())
}

// WriteBufferRange forwards count bytes of b starting at start. The range
// is validated against the Buffer's length before anything is written.
func (w *Writer) WriteBufferRange(b *Buffer, start, count int) error {
	if b == nil {
		return ErrNilBuffer
	}
	if start < 0 || count < 0 || start+count > b.N {
		return errors.Wrapf(ErrOutOfRange, "range [%d,%d) of %d valid bytes", start, start+count, b.N)
	}
	return w.WriteBytes(b.B[start : start+count])
}

// WriteGUID forwards the fixed 16-byte mixed-endian GUID layout.
func (w *Writer) WriteGUID(id uuid.UUID) error {
	var buf [16]byte
	putGUID(buf[:], id)
	return w.WriteBytes(buf[:])
}

// WriteTime forwards t as a 64-bit tick count.
func (w *Writer) WriteTime(t time.Time) error {
	return w.WriteInt64(timeToTicks(t))
}

// WriteDuration forwards d as a 64-bit tick count.
func (w *Writer) WriteDuration(d time.Duration) error {
	return w.WriteInt64(durationToTicks(d))
}

// WriteValue encodes a fixed-size value via encoding/binary and forwards it.
func (w *Writer) WriteValue(v any) error {
	if w.closed {
		return ErrClosed
	}
	buf, err := encodeValue(v)
	if err != nil {
		return err
	}
	return w.WriteBytes(buf)
}

// WriteZeros forwards n zero bytes, typically for padding.
func (w *Writer) WriteZeros(n int) error {
	if w.closed {
		return ErrClosed
	}
	for n > 0 {
		c := n
		if c > zeroChunk {
			c = zeroChunk
		}
		if err := w.WriteBytes(empty[:c]); err != nil {
			return err
		}
		n -= c
	}
	return nil
}

// Align forwards zero bytes until the byte count is a multiple of n.
func (w *Writer) Align(n int) error {
	if n <= 1 {
		return nil
	}
	return w.WriteZeros(int(Roundup(w.count, int64(n)) - w.count))
}

// Store commits written bytes when the stream supports persistence. The
// capability is probed with a type assertion; memory-only streams report a
// zero count.
func (w *Writer) Store() (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if s, ok := w.out.(Storer); ok {
		return s.Store()
	}
	return 0, nil
}

// Flush commits via Store and then flushes the stream.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if _, err := w.Store(); err != nil {
		return err
	}
	return w.out.Flush()
}

// Close flushes best-effort, swallowing any store or flush error, then
// closes the stream and releases the reference. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.out != nil {
		if s, ok := w.out.(Storer); ok {
			_, _ = s.Store()
		}
		_ = w.out.Flush()
		_ = w.out.Close()
		w.out = nil
	}
	return nil
}
