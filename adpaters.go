package binstream

import "io"

// Adapters bridging the stream capability interfaces to plain io.Reader and
// io.Writer values, so a Reader or Writer can sit on top of anything the
// standard library produces.

type (
	readerStream struct{ r io.Reader }
	writerStream struct{ w io.Writer }
)

// InputStreamFor wraps r as an InputStream. If r already implements
// InputStream it is returned directly.
func InputStreamFor(r io.Reader) InputStream {
	if s, ok := r.(InputStream); ok {
		return s
	}
	return &readerStream{r: r}
}

// OutputStreamFor wraps w as an OutputStream. If w already implements
// OutputStream it is returned directly.
func OutputStreamFor(w io.Writer) OutputStream {
	if s, ok := w.(OutputStream); ok {
		return s
	}
	return &writerStream{w: w}
}

// ReadBuffer performs a single Read into a fresh Buffer. EOF surfaces as an
// empty Buffer, matching the short-read contract.
func (a *readerStream) ReadBuffer(count int) (*Buffer, error) {
	out := NewBuffer(count)
	n, err := a.r.Read(out.B)
	out.N = n
	if err == io.EOF {
		return out, nil
	}
	return out, err
}

func (a *readerStream) Close() error {
	if c, ok := a.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *writerStream) Write(p []byte) (int, error) {
	if p == nil {
		return 0, ErrNilBuffer
	}
	return a.w.Write(p)
}

// Flush forwards to the wrapped writer when it exposes one.
func (a *writerStream) Flush() error {
	if f, ok := a.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (a *writerStream) Close() error {
	if c, ok := a.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
