package lzhuff

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// HashChain is an implementation of the Tokenizer interface that uses hash
// chaining to find candidates. It walks the whole chain inside the window,
// so it produces exactly the same tokens as BruteForce.
type HashChain struct {
	// Window is how far back (in bytes) to look for a match.
	// The default, and the maximum, is 255.
	Window int

	Parser GreedyParser

	table [chainTableSize]int32

	src    []byte
	window int
	// chain[i] is the previous position with the same hash as i, or -1.
	chain []int32
}

const (
	chainHashLen   = 3
	chainTableBits = 14
	chainTableSize = 1 << chainTableBits
	chainShift     = 32 - chainTableBits
	// chainTableMask is redundant, but helps the compiler eliminate bounds
	// checks.
	chainTableMask = chainTableSize - 1
)

const hashMul32 = 0x1e35a7bd

func hash3(b []byte) uint32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (u * hashMul32) >> chainShift
}

// Tokenize converts src to tokens, appends them to dst, and returns dst.
func (q *HashChain) Tokenize(dst []Token, src []byte) []Token {
	if q.Parser.minMatch() < chainHashLen {
		// Shorter matches don't share a full hash.
		bf := BruteForce{Window: q.Window, Parser: q.Parser}
		return bf.Tokenize(dst, src)
	}
	q.window = windowSize(q.Window)
	q.src = src

	// Pre-calculate hashes and chains.
	for i := range q.table {
		q.table[i] = -1
	}
	chain := q.chain[:0]
	for i := 0; i+chainHashLen <= len(src); i++ {
		h := hash3(src[i:]) & chainTableMask
		chain = append(chain, q.table[h])
		q.table[h] = int32(i)
	}
	q.chain = chain

	dst = q.Parser.Parse(dst, src, q)
	q.src = nil
	return dst
}

// Search walks the hash chain for pos, nearest candidate first, and appends
// every position whose first three bytes really match.
func (q *HashChain) Search(dst []Candidate, pos int) []Candidate {
	if pos >= len(q.chain) {
		return dst
	}
	src := q.src

	for candidate := int(q.chain[pos]); candidate >= 0 && pos-candidate <= q.window; candidate = int(q.chain[candidate]) {
		offset := pos - candidate
		if offset < chainHashLen {
			// The match can't be longer than its offset.
			continue
		}
		if src[candidate] != src[pos] || src[candidate+1] != src[pos+1] || src[candidate+2] != src[pos+2] {
			continue
		}
		limit := pos + offset
		if limit > len(src) {
			limit = len(src)
		}
		end := extendMatch(src[:limit], candidate+chainHashLen, pos+chainHashLen)
		dst = append(dst, Candidate{Offset: offset, Length: end - pos})
	}

	return dst
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// If those 8 bytes were not equal, XOR the two 8 byte values, and return
				// the index of the first byte that differs. The BSF instruction finds the
				// least significant 1 bit, the amd64 architecture is little-endian, and
				// the shift by 3 converts a bit index to a byte index.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}
