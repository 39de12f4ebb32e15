package lzhuff

import "fmt"

// Replay reconstructs the data that tokens were made from. A match copies
// one byte at a time, so it may overlap the bytes it is producing.
func Replay(tokens []Token) ([]byte, error) {
	n := 0
	for _, t := range tokens {
		if t.IsMatch() {
			n += t.Length
		} else {
			n++
		}
	}
	out := make([]byte, 0, n)

	for i, t := range tokens {
		if !t.IsMatch() {
			out = append(out, t.Symbol)
			continue
		}
		if t.Offset <= 0 || t.Offset > len(out) || t.Length < 0 {
			return nil, fmt.Errorf("%w: token %d: match %v with %d bytes of output", ErrMalformed, i, t, len(out))
		}
		start := len(out) - t.Offset
		for k := 0; k < t.Length; k++ {
			out = append(out, out[start+k])
		}
	}
	return out, nil
}
