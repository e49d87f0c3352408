package binstream

import "sync"

// stagingPool recycles default-sized staging buffers. A Reader drains its
// staging buffer completely many times over its life; pooling the
// replacements keeps the steady state allocation-free. Only default-sized
// buffers are pooled, custom-sized ones are left to the GC.
var stagingPool = sync.Pool{
	New: func() any {
		return NewBuffer(DefaultStagingSize)
	},
}

func newStaging(size int) *Buffer {
	if size == DefaultStagingSize {
		b := stagingPool.Get().(*Buffer)
		b.Reset()
		return b
	}
	return NewBuffer(size)
}

func recycleStaging(b *Buffer) {
	if b != nil && len(b.B) == DefaultStagingSize {
		b.Reset()
		stagingPool.Put(b)
	}
}
