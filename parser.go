package lzhuff

// A Candidate is a possible back-reference for one position.
type Candidate struct {
	Offset int
	Length int
}

// A Searcher is the source of candidates for a GreedyParser. It only looks
// for matches at one position at a time. A Tokenizer that uses a parser can
// implement Searcher as well, and pass itself to the parser.
type Searcher interface {
	// Search appends to dst the candidate matches for the data at pos.
	// Each candidate must satisfy 1 <= Length <= Offset, and must not
	// extend past the end of the data.
	Search(dst []Candidate, pos int) []Candidate
}

// A GreedyParser implements the greedy matching strategy: it goes from the
// start of the data to the end, choosing the longest match at each position.
// When two candidates have the same length, the one with the larger offset
// wins.
type GreedyParser struct {
	// MinMatch is the shortest match that will be used. The default is 3.
	MinMatch int

	cache []Candidate
}

func (p *GreedyParser) minMatch() int {
	if p.MinMatch <= 0 {
		return DefaultMinMatch
	}
	return p.MinMatch
}

// Parse tokenizes src, getting candidates from s, and appends the tokens to
// dst.
func (p *GreedyParser) Parse(dst []Token, src []byte, s Searcher) []Token {
	minMatch := p.minMatch()
	candidates := p.cache[:0]

	for i := 0; i < len(src); {
		candidates = s.Search(candidates[:0], i)
		m := longestCandidate(candidates)
		if m.Length >= minMatch {
			dst = append(dst, MatchToken(m.Offset, m.Length))
			i += m.Length
			continue
		}
		dst = append(dst, LiteralToken(src[i]))
		i++
	}

	p.cache = candidates[:0]
	return dst
}

func longestCandidate(candidates []Candidate) Candidate {
	var longest Candidate

	for _, c := range candidates {
		if c.Length > longest.Length || (c.Length == longest.Length && c.Offset > longest.Offset) {
			longest = c
		}
	}

	return longest
}
