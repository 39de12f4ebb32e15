package lzhuff

import (
	"fmt"

	"github.com/lzhuff/lzhuff/bitbuf"
)

// Packed token layout: a flag bit, then either an 8-bit literal (flag 0) or
// an 8-bit offset and an 8-bit length (flag 1).
const (
	literalBits = 1 + 8
	matchBits   = 1 + 8 + 8
)

// PackedLen returns the number of bits PackTokens writes for tokens.
func PackedLen(tokens []Token) uint64 {
	var n uint64
	for _, t := range tokens {
		if t.IsMatch() {
			n += matchBits
		} else {
			n += literalBits
		}
	}
	return n
}

// PackTokens appends the packed form of tokens to w.
func PackTokens(w *bitbuf.Writer, tokens []Token) error {
	for i, t := range tokens {
		if !t.IsMatch() {
			if err := w.WriteBits(uint64(t.Symbol), literalBits); err != nil {
				return err
			}
			continue
		}
		if t.Offset < 1 || t.Offset > MaxWindow || t.Length < 1 || t.Length > MaxWindow {
			return fmt.Errorf("lzhuff: token %d: match %v does not fit in 8-bit fields", i, t)
		}
		v := 1<<16 | uint64(t.Offset)<<8 | uint64(t.Length)
		if err := w.WriteBits(v, matchBits); err != nil {
			return err
		}
	}
	return nil
}

// UnpackTokens reads tokens from r until it is exhausted and appends them to
// dst.
func UnpackTokens(dst []Token, r *bitbuf.Reader) ([]Token, error) {
	for r.Len() > 0 {
		match, err := r.ReadBit()
		if err != nil {
			return dst, err
		}
		if !match {
			v, err := r.ReadBits(8)
			if err != nil {
				return dst, fmt.Errorf("literal %d: %w", len(dst), err)
			}
			dst = append(dst, LiteralToken(byte(v)))
			continue
		}
		v, err := r.ReadBits(16)
		if err != nil {
			return dst, fmt.Errorf("match %d: %w", len(dst), err)
		}
		t := MatchToken(int(v>>8), int(v&0xff))
		if t.Offset == 0 || t.Length == 0 {
			return dst, fmt.Errorf("%w: token %d is %v", ErrMalformed, len(dst), t)
		}
		dst = append(dst, t)
	}
	return dst, nil
}
