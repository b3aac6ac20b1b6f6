package huffman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the bit length of the longest possible codeword.  A tree
// with NumSymbols leaves is at most NumSymbols-1 levels deep.
const MaxCodeSize = NumSymbols - 1

// Code represents a codeword: the branches taken on the path from the root of
// a code tree down to a leaf, 0 for left and 1 for right.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits, packed most significant bit
	// first.  Unused bits in the final byte are zero.
	Bits []byte
}

// ParseCode constructs a Code from a string of '0' and '1' characters.
func ParseCode(str string) (Code, bool) {
	if len(str) > MaxCodeSize {
		return Code{}, false
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, false
		}
	}
	return hc, true
}

// Bit returns the i'th bit of this Code, counting from the root.
func (hc Code) Bit(i int) uint8 {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit index %d out of range [0, %d)", i, hc.Size)
	return (hc.Bits[i>>3] >> (7 - uint(i&7))) & 1
}

// Append returns a new Code consisting of this Code followed by one more bit.
// The receiver is not modified, so sibling branches may share a prefix.
func (hc Code) Append(bit uint8) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code is already %d bits long", hc.Size)
	n := uint(hc.Size)
	bits := make([]byte, n/8+1)
	copy(bits, hc.Bits)
	if bit != 0 {
		bits[n>>3] |= 0x80 >> (n & 7)
	}
	return Code{Size: hc.Size + 1, Bits: bits}
}

// Equal reports whether two Codes hold the same bit sequence.
func (hc Code) Equal(other Code) bool {
	if hc.Size != other.Size {
		return false
	}
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) != other.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
