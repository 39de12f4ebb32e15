// Package bitbuf provides a bit-granular append buffer and a bounded reader
// for it. Bits are stored most significant bit first within each byte.
package bitbuf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

// ErrTruncated is returned when a read needs more bits than remain.
var ErrTruncated = errors.New("bitbuf: truncated bit stream")

// A Writer accumulates bits in memory and keeps an exact count of how many
// were written, so that the zero padding added by Bytes can be told apart
// from real data.
type Writer struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   uint64
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	bw := new(Writer)
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(b bool) error {
	if err := w.w.WriteBool(b); err != nil {
		return err
	}
	w.n++
	return nil
}

// WriteBits appends the low n bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if n > 64 {
		panic("bitbuf: WriteBits called with more than 64 bits")
	}
	if n == 0 {
		return nil
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	if err := w.w.WriteBits(v, n); err != nil {
		return err
	}
	w.n += uint64(n)
	return nil
}

// Len returns the number of bits written so far, not counting padding.
func (w *Writer) Len() uint64 { return w.n }

// Bytes zero-pads the buffer to a byte boundary and returns its contents
// along with the number of padding bits added (0-7). The Writer must not be
// written to afterwards.
func (w *Writer) Bytes() ([]byte, uint8, error) {
	pad, err := w.w.Align()
	if err != nil {
		return nil, 0, err
	}
	if uint64(w.buf.Len())*8 != w.n+uint64(pad) {
		return nil, 0, fmt.Errorf("bitbuf: wrote %d bits but buffered %d bytes", w.n, w.buf.Len())
	}
	return w.buf.Bytes(), pad, nil
}

// A Reader yields exactly nbits bits from a byte slice and treats any bits
// after that as absent.
type Reader struct {
	r         *bitio.Reader
	remaining uint64
}

// NewReader returns a Reader over the first nbits bits of b.
func NewReader(b []byte, nbits uint64) (*Reader, error) {
	if nbits > uint64(len(b))*8 {
		return nil, fmt.Errorf("%w: %d bits declared, %d available", ErrTruncated, nbits, uint64(len(b))*8)
	}
	return &Reader{
		r:         bitio.NewReader(bytes.NewReader(b)),
		remaining: nbits,
	}, nil
}

// Len returns the number of unread bits.
func (r *Reader) Len() uint64 { return r.remaining }

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.remaining == 0 {
		return false, ErrTruncated
	}
	b, err := r.r.ReadBool()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	r.remaining--
	return b, nil
}

// ReadBits reads n bits (at most 64) and returns them in the low bits of
// the result, first bit most significant.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if n > 64 {
		panic("bitbuf: ReadBits called with more than 64 bits")
	}
	if uint64(n) > r.remaining {
		return 0, fmt.Errorf("%w: need %d bits, have %d", ErrTruncated, n, r.remaining)
	}
	if n == 0 {
		return 0, nil
	}
	v, err := r.r.ReadBits(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	r.remaining -= uint64(n)
	return v, nil
}
