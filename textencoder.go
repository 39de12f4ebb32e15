package lzhuff

import "strconv"

// A TextEncoder produces a human-readable representation of a token stream.
// Literals are written as-is, and matches are replaced with <Length,Offset>
// symbols.
type TextEncoder struct{}

// Encode appends the text form of tokens to dst.
func (t TextEncoder) Encode(dst []byte, tokens []Token) []byte {
	for _, tok := range tokens {
		if !tok.IsMatch() {
			dst = append(dst, tok.Symbol)
			continue
		}
		dst = append(dst, '<')
		dst = strconv.AppendInt(dst, int64(tok.Length), 10)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(tok.Offset), 10)
		dst = append(dst, '>')
	}
	return dst
}
