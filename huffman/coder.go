package huffman

import (
	"errors"
	"fmt"

	"github.com/lzhuff/lzhuff/bitbuf"
)

// ErrDecode is returned when a bit sequence does not resolve to a code in
// the table.
var ErrDecode = errors.New("huffman: invalid code in bit stream")

// Encode appends the code of each byte of src to w.
func Encode(w *bitbuf.Writer, src []byte, t *Table) error {
	for i, b := range src {
		c := t[b]
		if c.Len == 0 {
			return fmt.Errorf("huffman: no code for symbol %#x at offset %d", b, i)
		}
		if err := w.WriteBits(c.Bits, c.Len); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads codes from r until it is exhausted, appending the decoded
// symbols to dst. Every bit in r must belong to a complete code.
func Decode(dst []byte, r *bitbuf.Reader, t *Table) ([]byte, error) {
	maxLen := t.MaxLen()
	if maxLen == 0 {
		if r.Len() != 0 {
			return dst, fmt.Errorf("%w: %d bits with an empty table", ErrDecode, r.Len())
		}
		return dst, nil
	}
	inverse := make(map[Code]byte, 256)
	for s, c := range t {
		if c.Len > 0 {
			inverse[c] = byte(s)
		}
	}

	for r.Len() > 0 {
		var c Code
		for {
			if r.Len() == 0 {
				return dst, fmt.Errorf("%w: stream ends inside a %d-bit prefix", ErrDecode, c.Len)
			}
			bit, err := r.ReadBit()
			if err != nil {
				return dst, err
			}
			c.Bits <<= 1
			if bit {
				c.Bits |= 1
			}
			c.Len++
			if s, ok := inverse[c]; ok {
				dst = append(dst, s)
				break
			}
			if c.Len >= maxLen {
				return dst, fmt.Errorf("%w: prefix %v matches no code", ErrDecode, c)
			}
		}
	}
	return dst, nil
}
