package huffman

import (
	"errors"
	"fmt"
)

// MaxCodeLen is the longest code a Table can hold. A tree deep enough to
// exceed it needs on the order of Fibonacci(65) input bytes.
const MaxCodeLen = 64

// ErrCodeTooLong is returned by DeriveCodes for trees deeper than MaxCodeLen.
var ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")

// A Code is a variable-length bit string. Bits holds the code in its low
// Len bits, first bit most significant.
type Code struct {
	Bits uint64
	Len  uint8
}

func (c Code) String() string {
	if c.Len == 0 {
		return "-"
	}
	b := make([]byte, c.Len)
	for i := range b {
		b[i] = '0' + byte(c.Bits>>(c.Len-1-uint8(i))&1)
	}
	return string(b)
}

// prefixOf reports whether c is a prefix of d (or equal to it).
func (c Code) prefixOf(d Code) bool {
	return c.Len <= d.Len && d.Bits>>(d.Len-c.Len) == c.Bits
}

// A Table maps each byte value to its code. Symbols that do not occur have a
// zero-length code.
type Table [256]Code

// Symbols returns the number of symbols that have a code.
func (t *Table) Symbols() int {
	n := 0
	for _, c := range t {
		if c.Len > 0 {
			n++
		}
	}
	return n
}

// MaxLen returns the length of the longest code.
func (t *Table) MaxLen() uint8 {
	var m uint8
	for _, c := range t {
		if c.Len > m {
			m = c.Len
		}
	}
	return m
}

// Validate checks that t is usable for decoding: it has at least one code,
// every code fits its length, and no code is a prefix of another.
func (t *Table) Validate() error {
	var present []int
	for s, c := range t {
		if c.Len == 0 {
			continue
		}
		if c.Len > MaxCodeLen {
			return fmt.Errorf("huffman: symbol %#x has %d-bit code", s, c.Len)
		}
		if c.Len < 64 && c.Bits>>c.Len != 0 {
			return fmt.Errorf("huffman: symbol %#x code %#x does not fit in %d bits", s, c.Bits, c.Len)
		}
		present = append(present, s)
	}
	if len(present) == 0 {
		return ErrEmptyInput
	}
	for i, a := range present {
		for _, b := range present[i+1:] {
			if t[a].prefixOf(t[b]) || t[b].prefixOf(t[a]) {
				return fmt.Errorf("huffman: codes for %#x (%v) and %#x (%v) are not prefix-free", a, t[a], b, t[b])
			}
		}
	}
	return nil
}

// DeriveCodes walks the tree depth first, appending 0 for each left edge and
// 1 for each right edge. A tree with a single leaf gets the 1-bit code 0, so
// that the number of occurrences is still recoverable from the bit count.
func DeriveCodes(tree *Tree) (Table, error) {
	var t Table
	if tree == nil || len(tree.nodes) == 0 {
		return t, ErrEmptyInput
	}
	root := &tree.nodes[tree.root]
	if root.leaf() {
		t[root.symbol] = Code{Bits: 0, Len: 1}
		return t, nil
	}

	type entry struct {
		n    int32
		code Code
	}
	// Right children are pushed first so that left subtrees are visited
	// first, as a recursive walk would.
	stack := []entry{{n: tree.root}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &tree.nodes[e.n]
		if n.leaf() {
			t[n.symbol] = e.code
			continue
		}
		if e.code.Len == MaxCodeLen {
			return t, ErrCodeTooLong
		}
		next := Code{Bits: e.code.Bits << 1, Len: e.code.Len + 1}
		stack = append(stack,
			entry{n: n.right, code: Code{Bits: next.Bits | 1, Len: next.Len}},
			entry{n: n.left, code: next},
		)
	}
	return t, nil
}

// EncodedLen returns the number of bits Encode would produce for data with
// the given symbol frequencies.
func (t *Table) EncodedLen(freqs [256]int) uint64 {
	var n uint64
	for s, c := range freqs {
		n += uint64(c) * uint64(t[s].Len)
	}
	return n
}
