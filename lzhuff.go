// Package lzhuff is a two-stage lossless compressor.
//
// The first stage is an LZ77 tokenizer: it replaces repeated runs of bytes
// with back-references into the previous 255 bytes, producing a stream of
// literal and match tokens. The tokens are packed into a bit stream with
// fixed-width fields, and the second stage Huffman-codes the bytes of that
// packed stream. The result is a self-describing container (see package
// container) that holds everything needed to reverse both stages.
//
// As in most LZ77 implementations, match finding is split into a Searcher,
// which finds candidate back-references at one position, and a parser, which
// decides which candidates to use.
package lzhuff

import "fmt"

const (
	// MaxWindow is the largest back-reference distance. Offsets and lengths
	// are stored in 8-bit fields.
	MaxWindow = 255

	// DefaultMinMatch is the shortest run emitted as a match.
	DefaultMinMatch = 3
)

// A Token is the basic unit of LZ77 compression. A Token with Length 0 is a
// literal carrying Symbol; otherwise it is a match that copies Length bytes
// starting Offset bytes back from the current end of the output.
type Token struct {
	Offset int
	Length int
	Symbol byte
}

// LiteralToken returns a literal token for b.
func LiteralToken(b byte) Token {
	return Token{Symbol: b}
}

// MatchToken returns a back-reference token.
func MatchToken(offset, length int) Token {
	return Token{Offset: offset, Length: length}
}

// IsMatch reports whether t is a back-reference.
func (t Token) IsMatch() bool {
	return t.Length != 0
}

func (t Token) String() string {
	if t.IsMatch() {
		return fmt.Sprintf("<%d,%d>", t.Length, t.Offset)
	}
	return fmt.Sprintf("%q", t.Symbol)
}

// A Tokenizer performs the LZ77 stage of compression.
type Tokenizer interface {
	// Tokenize converts src to tokens, appends them to dst, and returns dst.
	Tokenize(dst []Token, src []byte) []Token
}

func windowSize(w int) int {
	if w <= 0 || w > MaxWindow {
		return MaxWindow
	}
	return w
}
