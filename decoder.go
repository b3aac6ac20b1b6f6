package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ReadTree deserializes a code tree written by WriteTree.  It consumes
// exactly the bits WriteTree produced, leaving br positioned at the first bit
// after the tree.
//
// A tree that is deeper than MaxCodeSize or that names the same Symbol twice
// is rejected with ErrCorruptTree.
//
func ReadTree(br *BitReader) (*Node, error) {
	var seen [NumSymbols]bool
	root, err := readNode(br, 0, &seen)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read code tree")
	}
	return root, nil
}

func readNode(br *BitReader, depth int, seen *[NumSymbols]bool) (*Node, error) {
	bit, err := br.GetBit()
	if err != nil {
		return nil, err
	}

	if bit == 1 {
		symbol, err := br.GetChar()
		if err != nil {
			return nil, err
		}
		if seen[symbol] {
			return nil, errors.Wrapf(ErrCorruptTree, "symbol %d appears more than once", symbol)
		}
		seen[symbol] = true
		return &Node{Symbol: symbol}, nil
	}

	if depth >= MaxCodeSize {
		return nil, errors.Wrapf(ErrCorruptTree, "tree deeper than %d levels", MaxCodeSize)
	}
	left, err := readNode(br, depth+1, seen)
	if err != nil {
		return nil, err
	}
	right, err := readNode(br, depth+1, seen)
	if err != nil {
		return nil, err
	}
	return &Node{Left: left, Right: right}, nil
}

// Decoder turns codewords back into Symbols by walking a code tree.
type Decoder struct {
	root *Node
}

// Init initializes this Decoder to walk the tree rooted at root.  Every node
// must have either no children or both.
func (d *Decoder) Init(root *Node) error {
	if root == nil {
		return errors.Wrap(ErrCorruptTree, "decoder needs a non-empty tree")
	}
	if err := checkShape(root, 0); err != nil {
		return err
	}
	*d = Decoder{root: root}
	return nil
}

func checkShape(n *Node, depth int) error {
	if n.IsLeaf() {
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return errors.Wrapf(ErrCorruptTree, "internal node at depth %d has one child", depth)
	}
	if depth >= MaxCodeSize {
		return errors.Wrapf(ErrCorruptTree, "tree deeper than %d levels", MaxCodeSize)
	}
	if err := checkShape(n.Left, depth+1); err != nil {
		return err
	}
	return checkShape(n.Right, depth+1)
}

// Decode reads one codeword from br and returns its Symbol.  Starting at the
// root, each 0 bit descends left and each 1 bit descends right until a leaf
// is reached.  A single-leaf tree decodes without consuming any bits.
//
func (d *Decoder) Decode(br *BitReader) (Symbol, error) {
	n := d.root
	for !n.IsLeaf() {
		bit, err := br.GetBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Symbol, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.  Codewords are listed in tree preorder.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	if d.root != nil {
		dumpPaths(&buf, d.root, Code{})
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func dumpPaths(buf *bytes.Buffer, n *Node, prefix Code) {
	if n.IsLeaf() {
		fmt.Fprintf(buf, "\tDecode(%s) = %d\n", prefix, n.Symbol)
		return
	}
	dumpPaths(buf, n.Left, prefix.Append(0))
	dumpPaths(buf, n.Right, prefix.Append(1))
}
