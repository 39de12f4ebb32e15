// Package huffman implements the entropy-coding stage: a frequency-driven
// binary tree, the code table derived from it, and bit-level encoding and
// decoding of byte streams with that table.
package huffman

import (
	"container/heap"
	"errors"
)

// ErrEmptyInput is returned by BuildTree when no symbol has a nonzero count.
var ErrEmptyInput = errors.New("huffman: no symbols to code")

// A node of a Huffman tree. Leaves have left == -1 and carry a symbol;
// internal nodes always have two children.
type node struct {
	count  int
	left   int32
	right  int32
	symbol byte
}

func (n *node) leaf() bool { return n.left < 0 }

// A Tree is a Huffman tree stored as a pool of nodes. The leaves come first,
// in ascending symbol order, followed by the internal nodes in the order they
// were merged.
type Tree struct {
	nodes []node
	root  int32
}

// Leaves returns the number of distinct symbols in the tree.
func (t *Tree) Leaves() int {
	return (len(t.nodes) + 1) / 2
}

// CountSymbols returns the frequency of each byte value in src.
func CountSymbols(src []byte) [256]int {
	var freqs [256]int
	for _, b := range src {
		freqs[b]++
	}
	return freqs
}

// nodeQueue is a min-heap of node indexes, ordered by count and then by
// index, so equal counts come out in insertion order.
type nodeQueue struct {
	items []int32
	pool  []node
}

func (q *nodeQueue) Len() int { return len(q.items) }

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.pool[a].count != q.pool[b].count {
		return q.pool[a].count < q.pool[b].count
	}
	return a < b
}

func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *nodeQueue) Push(x interface{}) { q.items = append(q.items, x.(int32)) }

func (q *nodeQueue) Pop() interface{} {
	n := len(q.items)
	x := q.items[n-1]
	q.items = q.items[:n-1]
	return x
}

// BuildTree builds a Huffman tree with one leaf for every symbol whose
// frequency is nonzero, by repeatedly merging the two lowest-count nodes.
func BuildTree(freqs [256]int) (*Tree, error) {
	t := &Tree{nodes: make([]node, 0, 2*256-1)}
	for s, c := range freqs {
		if c > 0 {
			t.nodes = append(t.nodes, node{count: c, left: -1, right: -1, symbol: byte(s)})
		}
	}
	if len(t.nodes) == 0 {
		return nil, ErrEmptyInput
	}

	q := &nodeQueue{items: make([]int32, len(t.nodes))}
	for i := range q.items {
		q.items[i] = int32(i)
	}
	q.pool = t.nodes
	heap.Init(q)

	for q.Len() > 1 {
		left := heap.Pop(q).(int32)
		right := heap.Pop(q).(int32)
		t.nodes = append(t.nodes, node{
			count: t.nodes[left].count + t.nodes[right].count,
			left:  left,
			right: right,
		})
		q.pool = t.nodes
		heap.Push(q, int32(len(t.nodes)-1))
	}
	t.root = heap.Pop(q).(int32)
	return t, nil
}
