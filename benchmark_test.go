package binstream

import "testing"

func BenchmarkWriterUint64(b *testing.B) {
	ms := NewMemStreamLimit(1 << 30)
	w, _ := NewWriter(ms)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.WriteUint64(uint64(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMemStreamWrite(b *testing.B) {
	chunk := make([]byte, 64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ms := NewMemStreamLimit(1 << 20)
		for j := 0; j < 128; j++ {
			if _, err := ms.Write(chunk); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkReaderLoadDrain(b *testing.B) {
	data := make([]byte, DefaultStagingSize)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in := NewSliceInputStream(data)
		r, _ := NewReader(in)
		if _, err := r.Load(len(data)); err != nil {
			b.Fatal(err)
		}
		for j := 0; j < len(data)/8; j++ {
			if _, err := r.ReadUint64(); err != nil {
				b.Fatal(err)
			}
		}
	}
}
