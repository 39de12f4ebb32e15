package lzhuff

// BruteForce is an implementation of the Tokenizer interface that compares
// every position in the window. It is slow, but it is the reference that
// other tokenizers must agree with.
type BruteForce struct {
	// Window is how far back (in bytes) to look for a match.
	// The default, and the maximum, is 255.
	Window int

	Parser GreedyParser

	src    []byte
	window int
}

// Tokenize converts src to tokens, appends them to dst, and returns dst.
func (b *BruteForce) Tokenize(dst []Token, src []byte) []Token {
	b.src = src
	b.window = windowSize(b.Window)
	dst = b.Parser.Parse(dst, src, b)
	b.src = nil
	return dst
}

// Search returns one candidate for every start position in the window,
// scanning from the farthest to the nearest.
func (b *BruteForce) Search(dst []Candidate, pos int) []Candidate {
	start := pos - b.window
	if start < 0 {
		start = 0
	}
	for j := start; j < pos; j++ {
		if n := matchLen(b.src, j, pos); n > 0 {
			dst = append(dst, Candidate{Offset: pos - j, Length: n})
		}
	}
	return dst
}

// matchLen returns how many bytes starting at i match the bytes starting at
// j (j < i). The match stops at the end of src, and never runs past i: its
// length is at most i-j.
func matchLen(src []byte, j, i int) int {
	k := 0
	for i+k < len(src) && src[j+k] == src[i+k] {
		k++
		if j+k >= i {
			break
		}
	}
	return k
}
