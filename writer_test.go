package binstream

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// brokenStream fails Flush and Store so disposal paths can be exercised.
type brokenStream struct {
	wrote   int
	flushes int
	stores  int
	closed  bool
}

func (b *brokenStream) Write(p []byte) (int, error) {
	b.wrote += len(p)
	return len(p), nil
}
func (b *brokenStream) Flush() error { b.flushes++; return errors.New("flush target gone") }
func (b *brokenStream) Store() (int, error) {
	b.stores++
	return 0, errors.New("store target gone")
}
func (b *brokenStream) Close() error { b.closed = true; return nil }

type WriterTestSuite struct {
	suite.Suite
	ms *MemStream
	w  *Writer
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *WriterTestSuite) SetupTest() {
	s.ms = NewMemStream()
	s.w, _ = NewWriter(s.ms)
}

func (s *WriterTestSuite) TestConstructor() {
	_, err := NewWriter(nil)
	s.Assert().ErrorIs(err, ErrNilStream)
}

func (s *WriterTestSuite) TestFixedProperties() {
	s.Assert().Equal(Order, s.w.ByteOrder())
	s.Assert().Equal("utf-8", s.w.UnicodeEncoding())
}

func (s *WriterTestSuite) TestLittleEndianLayout() {
	s.Require().NoError(s.w.WriteBool(true))
	s.Require().NoError(s.w.WriteUint8(0xAA))
	s.Require().NoError(s.w.WriteUint16(0xBBCC))
	s.Require().NoError(s.w.WriteUint32(0xDDEEFF00))
	s.Require().NoError(s.w.WriteUint64(0x0102030405060708))
	s.Require().NoError(s.w.WriteBytes([]byte{5, 6, 7}))
	s.Require().NoError(s.w.WriteZeros(2))

	expected := []byte{
		1,    // WriteBool
		0xAA, // WriteUint8
		0xCC, 0xBB, // WriteUint16
		0x00, 0xFF, 0xEE, 0xDD, // WriteUint32
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // WriteUint64
		5, 6, 7, // WriteBytes
		0, 0, // WriteZeros
	}
	s.Assert().Equal(expected, s.ms.Bytes())
	s.Assert().EqualValues(len(expected), s.w.Count())
}

func (s *WriterTestSuite) TestStringAndMeasure() {
	n, err := s.w.WriteString("héllo")
	s.Require().NoError(err)
	s.Assert().Equal(6, n, "byte count, not character count")
	s.Assert().Equal(6, s.w.MeasureString("héllo"))
	s.Assert().Equal([]byte("héllo"), s.ms.Bytes())

	n, err = s.w.WriteString("")
	s.Require().NoError(err)
	s.Assert().Zero(n)
}

func (s *WriterTestSuite) TestWriteRune() {
	n, err := s.w.WriteRune('é')
	s.Require().NoError(err)
	s.Assert().Equal(2, n)
	s.Assert().Equal([]byte("é"), s.ms.Bytes())
}

func (s *WriterTestSuite) TestNilArguments() {
	s.Assert().ErrorIs(s.w.WriteBytes(nil), ErrNilBuffer)
	s.Assert().ErrorIs(s.w.WriteBuffer(nil), ErrNilBuffer)
	s.Assert().ErrorIs(s.w.WriteBufferRange(nil, 0, 0), ErrNilBuffer)
}

func (s *WriterTestSuite) TestWriteBufferRange() {
	src := NewBufferFrom([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	s.Require().NoError(s.w.WriteBufferRange(src, 2, 3))
	s.Assert().Equal([]byte{2, 3, 4}, s.ms.Bytes())
	s.Assert().Equal(10, src.Length(), "source buffer is untouched")

	s.Assert().ErrorIs(s.w.WriteBufferRange(src, 8, 3), ErrOutOfRange)
	s.Assert().ErrorIs(s.w.WriteBufferRange(src, -1, 2), ErrOutOfRange)
	s.Assert().Equal([]byte{2, 3, 4}, s.ms.Bytes(), "failed range writes nothing")
}

func (s *WriterTestSuite) TestWriteBuffer() {
	src := NewBuffer(8)
	src.N = copy(src.B, []byte{1, 2, 3})

	s.Require().NoError(s.w.WriteBuffer(src))
	s.Assert().Equal([]byte{1, 2, 3}, s.ms.Bytes(), "only the valid prefix is forwarded")
}

func (s *WriterTestSuite) TestStoreCapability() {
	s.T().Run("MemoryOnlyStreamStoresNothing", func(t *testing.T) {
		require.NoError(t, s.w.WriteUint32(1))
		n, err := s.w.Store()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	s.T().Run("StorerStreamReportsDeltas", func(t *testing.T) {
		out := NewSliceOutputStream(make([]byte, 16))
		w, err := NewWriter(out)
		require.NoError(t, err)

		require.NoError(t, w.WriteUint32(0x11223344))
		n, err := w.Store()
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		require.NoError(t, w.WriteUint16(0x5566))
		n, err = w.Store()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func (s *WriterTestSuite) TestShortWriteOnFixedOutput() {
	w, err := NewWriter(NewSliceOutputStream(make([]byte, 5)))
	s.Require().NoError(err)

	s.Require().NoError(w.WriteUint32(0x11223344))
	err = w.WriteUint32(0xAABBCCDD)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, io.ErrShortWrite)
	s.Assert().EqualValues(5, w.Count(), "count reflects the bytes actually transferred")
}

func (s *WriterTestSuite) TestAlign() {
	s.Require().NoError(s.w.WriteBytes([]byte{1, 2, 3}))
	s.Require().NoError(s.w.Align(4))
	s.Assert().EqualValues(4, s.w.Count())
	s.Assert().Equal([]byte{1, 2, 3, 0}, s.ms.Bytes())
}

func (s *WriterTestSuite) TestClosed() {
	s.Require().NoError(s.w.Close())

	s.Assert().ErrorIs(s.w.WriteBytes([]byte{1}), ErrClosed)
	s.Assert().ErrorIs(s.w.Flush(), ErrClosed)
	_, err := s.w.WriteString("x")
	s.Assert().ErrorIs(err, ErrClosed)
	_, err = s.w.Store()
	s.Assert().ErrorIs(err, ErrClosed)

	s.Assert().NoError(s.w.Close(), "Close is idempotent")
}

func (s *WriterTestSuite) TestCloseClosesStream() {
	s.Require().NoError(s.w.Close())
	s.Assert().False(s.ms.CanWrite())
}

func (s *WriterTestSuite) TestCloseSwallowsFlushErrors() {
	broken := &brokenStream{}
	w, err := NewWriter(broken)
	s.Require().NoError(err)
	s.Require().NoError(w.WriteUint32(7))

	s.Assert().NoError(w.Close(), "disposal must not propagate flush failures")
	s.Assert().Equal(1, broken.stores)
	s.Assert().Equal(1, broken.flushes)
	s.Assert().True(broken.closed)
}

func (s *WriterTestSuite) TestFlushPropagatesStoreErrors() {
	broken := &brokenStream{}
	w, err := NewWriter(broken)
	s.Require().NoError(err)

	s.Assert().Error(w.Flush(), "an explicit Flush surfaces the failure")
}

func TestWriter(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}
