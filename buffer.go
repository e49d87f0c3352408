// Package binstream is a small in-memory binary stream library: a growable
// random-access byte stream paired with a structured Reader/Writer layer that
// encodes and decodes primitive values using a fixed little-endian, UTF-8
// convention.
package binstream

// Buffer is a raw storage/length pair: backing bytes allocated once at a
// fixed capacity, plus a mutable count of valid bytes. It is the unit of
// data exchange between streams and the Reader/Writer layer.
//
// Buffer performs no bounds checking. Indexing and length extension are the
// caller's responsibility; upper layers always ensure capacity before
// extending the length. A Buffer is exclusively owned by whichever component
// last received it.
type Buffer struct {
	B []byte // backing storage, len(B) is the capacity
	N int    // number of valid bytes, 0 <= N <= len(B)
}

// NewBuffer creates a Buffer with storage of exactly the given capacity and
// a length of zero.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{B: make([]byte, capacity)}
}

// NewBufferFrom adopts b as the Buffer's storage without copying. Capacity
// and length both equal len(b); ownership of b transfers to the Buffer.
func NewBufferFrom(b []byte) *Buffer {
	return &Buffer{B: b, N: len(b)}
}

// Capacity returns the fixed size of the backing storage.
func (b *Buffer) Capacity() int { return len(b.B) }

// Length returns the number of valid bytes.
func (b *Buffer) Length() int { return b.N }

// SetLength sets the number of valid bytes. Values beyond the capacity are
// undefined at this layer; callers guard n <= Capacity().
func (b *Buffer) SetLength(n int) { b.N = n }

// Bytes returns a view of the valid prefix.
func (b *Buffer) Bytes() []byte { return b.B[:b.N] }

// Available returns the unused tail capacity.
func (b *Buffer) Available() int { return len(b.B) - b.N }

// Reset marks the Buffer empty while retaining its storage.
func (b *Buffer) Reset() { b.N = 0 }
