package lzhuff

import "math/rand"

var words = []string{
	"the", "light", "of", "rays", "which", "are", "refracted", "reflected",
	"colours", "prism", "and", "in", "is", "by", "that", "experiment",
	"glass", "white", "red", "violet", "Sun", "Opticks", "bodies", "Book",
}

// corpus returns n bytes of deterministic English-like text.
func corpus(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, 0, n+16)
	for len(b) < n {
		b = append(b, words[rng.Intn(len(words))]...)
		switch rng.Intn(12) {
		case 0:
			b = append(b, ". "...)
		case 1:
			b = append(b, ",\n"...)
		default:
			b = append(b, ' ')
		}
	}
	return b[:n]
}

// smallAlphabet returns n random bytes drawn from k distinct values, which
// gives many overlapping matches of equal length.
func smallAlphabet(n, k int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(rng.Intn(k))
	}
	return b
}
