package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// Encoder maps Symbols to the codewords of one Huffman code tree.
type Encoder struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	numSyms int
	minSize byte
	maxSize byte
}

// Init initializes this Encoder from a code tree.  Each Symbol's codeword is
// its root-to-leaf path, 0 for each left branch and 1 for each right branch.
// A tree consisting of a single leaf gives that leaf's Symbol the empty
// codeword.
//
func (e *Encoder) Init(root *Node) {
	*e = Encoder{}
	e.walk(root, Code{}, nil)
}

// WriteTree serializes the tree rooted at root to bw in preorder: a 1 bit
// followed by the 8-bit Symbol for each leaf, a 0 bit followed by the left
// and then the right subtree for each internal node.  The returned Encoder
// holds the code table derived during the same traversal.
//
func WriteTree(bw *BitWriter, root *Node) (*Encoder, error) {
	if root == nil {
		return nil, errors.Wrap(ErrEmptyInput, "cannot serialize an empty tree")
	}
	e := &Encoder{}
	e.walk(root, Code{}, bw)
	if err := bw.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to write code tree")
	}
	return e, nil
}

func (e *Encoder) walk(n *Node, prefix Code, bw *BitWriter) {
	if n.IsLeaf() {
		if bw != nil {
			bw.PutBit(1)
			bw.PutChar(n.Symbol)
		}
		e.add(n.Symbol, prefix)
		return
	}

	assert.Assertf(n.Left != nil && n.Right != nil, "internal node with weight %d is missing a child", n.Weight)
	if bw != nil {
		bw.PutBit(0)
	}
	e.walk(n.Left, prefix.Append(0), bw)
	e.walk(n.Right, prefix.Append(1), bw)
}

func (e *Encoder) add(symbol Symbol, hc Code) {
	assert.Assertf(!e.present[symbol], "symbol %d appears in the tree more than once", symbol)
	e.codes[symbol] = hc
	e.present[symbol] = true
	if e.numSyms == 0 {
		e.minSize = hc.Size
		e.maxSize = hc.Size
	} else if e.minSize > hc.Size {
		e.minSize = hc.Size
	} else if e.maxSize < hc.Size {
		e.maxSize = hc.Size
	}
	e.numSyms++
}

// Encode returns the codeword for symbol.  The second result is false if
// symbol is not a leaf of the tree.
func (e *Encoder) Encode(symbol Symbol) (Code, bool) {
	return e.codes[symbol], e.present[symbol]
}

// NumSymbols returns the number of Symbols with a codeword.
func (e *Encoder) NumSymbols() int {
	return e.numSyms
}

// MinSize is the bit length of the shortest codeword.
func (e *Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest codeword.
func (e *Encoder) MaxSize() byte {
	return e.maxSize
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if !e.present[symbol] {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, e.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
