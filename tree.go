package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Node is a node of a Huffman code tree.  A Node is a leaf iff both children
// are nil.  Each Node exclusively owns its children.
type Node struct {
	// Weight is the total frequency of every leaf in this subtree.
	Weight uint64

	// Symbol is meaningful for leaves only.  Internal nodes built by
	// BuildTree carry 0, which is what they sort by on weight ties.
	Symbol Symbol

	Left  *Node
	Right *Node
}

// IsLeaf reports whether this Node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves in this subtree.
func (n *Node) Leaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// Dump writes a programmer-readable, indented preorder listing of this
// subtree to the given writer.
func (n *Node) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	n.dump(&buf, 0)
	return buf.WriteTo(w)
}

func (n *Node) dump(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat("\t", depth))
	if n.IsLeaf() {
		fmt.Fprintf(buf, "leaf %d %q\n", n.Weight, rune(n.Symbol))
		return
	}
	fmt.Fprintf(buf, "node %d\n", n.Weight)
	n.Left.dump(buf, depth+1)
	n.Right.dump(buf, depth+1)
}

// nodeLess orders Nodes by (Weight, Symbol) ascending.  The Symbol tie-break
// is what makes the tree shape, and so the output, deterministic.
func nodeLess(a, b *Node) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return a.Symbol < b.Symbol
}

// BuildTree constructs the Huffman code tree for the given frequencies by
// repeatedly merging the two lightest subtrees.  The first subtree popped
// becomes the left (0) branch and the second becomes the right (1) branch.
//
// If only one Symbol occurs, its leaf is returned as the root.
//
func BuildTree(freqs *Frequencies) (*Node, error) {
	pq := NewPQueue(nodeLess)
	freqs.Each(func(symbol Symbol, count uint64) {
		pq.Push(&Node{Weight: count, Symbol: symbol})
	})

	if pq.Size() == 0 {
		return nil, errors.Wrap(ErrEmptyInput, "no symbols to build a tree from")
	}

	for pq.Size() > 1 {
		a, err := pq.Pop()
		if err != nil {
			return nil, err
		}
		b, err := pq.Pop()
		if err != nil {
			return nil, err
		}
		pq.Push(&Node{Weight: a.Weight + b.Weight, Left: a, Right: b})
	}

	root, err := pq.Pop()
	if err != nil {
		return nil, err
	}
	assert.Assertf(root.Weight == freqs.Total(), "root weight %d != total frequency %d", root.Weight, freqs.Total())
	return root, nil
}
