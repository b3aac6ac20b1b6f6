package huffman

// Symbol represents one octet of input.
type Symbol byte

// NumSymbols is the size of the largest supported alphabet.
const NumSymbols = 256

// MaxASCIISymbol is the largest Symbol accepted by the ASCII alphabet.
const MaxASCIISymbol = Symbol(0x7f)

// MaxSymbol is the largest Symbol accepted by the Octet alphabet.
const MaxSymbol = Symbol(0xff)

// Alphabet selects which Symbols a Compressor accepts.
type Alphabet byte

const (
	// ASCII accepts 7-bit symbols only.  This is the default.
	ASCII Alphabet = iota

	// Octet accepts every byte value.
	Octet
)

// Valid reports whether a is one of the defined Alphabets.
func (a Alphabet) Valid() bool {
	return a == ASCII || a == Octet
}

// Max returns the largest Symbol this Alphabet accepts.  An invalid Alphabet
// accepts nothing, and Max returns 0.
func (a Alphabet) Max() Symbol {
	switch a {
	case ASCII:
		return MaxASCIISymbol
	case Octet:
		return MaxSymbol
	default:
		return 0
	}
}

// Contains reports whether s is a member of this Alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	return a.Valid() && s <= a.Max()
}

// String returns the name of this Alphabet.
func (a Alphabet) String() string {
	switch a {
	case ASCII:
		return "ascii"
	case Octet:
		return "octet"
	default:
		return "unknown"
	}
}

// ParseAlphabet converts a name produced by Alphabet.String back into an
// Alphabet.
func ParseAlphabet(name string) (Alphabet, bool) {
	switch name {
	case "ascii", "":
		return ASCII, true
	case "octet", "binary":
		return Octet, true
	default:
		return ASCII, false
	}
}
