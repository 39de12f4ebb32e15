package lzhuff

import (
	"bytes"
	"io"
	"io/ioutil"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func BenchmarkEncode(b *testing.B) {
	b.ReportAllocs()
	data := corpus(1<<16, 1)
	b.SetBytes(int64(len(data)))
	var c Compressor
	var buf []byte
	for i := 0; i < b.N; i++ {
		ct, err := c.Compress(data)
		if err != nil {
			b.Fatal(err)
		}
		buf, err = ct.AppendBinary(buf[:0])
		if err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(len(data))/float64(len(buf)), "ratio")
}

func BenchmarkDecode(b *testing.B) {
	b.ReportAllocs()
	data := corpus(1<<16, 1)
	encoded, err := Encode(nil, data)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := Decode(encoded); err != nil {
			b.Fatal(err)
		}
	}
}

// The benchmarks below give a reference point for the compression ratio,
// using the same input.

func benchmarkWriter(b *testing.B, newWriter func(io.Writer) io.WriteCloser) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus(1<<16, 1)
	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := newWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w := newWriter(ioutil.Discard)
		w.Write(data)
		w.Close()
	}
}

func BenchmarkEncodeBrotli(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return brotli.NewWriterLevel(w, 5)
	})
}

func BenchmarkEncodeLZ4(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return lz4.NewWriter(w)
	})
}

func BenchmarkEncodeGolangSnappy(b *testing.B) {
	benchmarkWriter(b, func(w io.Writer) io.WriteCloser {
		return snappy.NewBufferedWriter(w)
	})
}

func BenchmarkEncodeZstd(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus(1<<16, 1)
	b.SetBytes(int64(len(data)))
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		b.Fatal(err)
	}
	defer enc.Close()
	compressed := enc.EncodeAll(data, nil)
	b.ReportMetric(float64(len(data))/float64(len(compressed)), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		compressed = enc.EncodeAll(data, compressed[:0])
	}
}
