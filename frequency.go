package huffman

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Frequencies holds the number of occurrences of each Symbol in an input.
type Frequencies struct {
	counts [NumSymbols]uint64
	total  uint64
}

// Add records n more occurrences of symbol.
func (f *Frequencies) Add(symbol Symbol, n uint64) {
	f.counts[symbol] += n
	f.total += n
}

// Count returns the number of occurrences of symbol.
func (f *Frequencies) Count(symbol Symbol) uint64 {
	return f.counts[symbol]
}

// Total returns the sum of all counts.
func (f *Frequencies) Total() uint64 {
	return f.total
}

// Distinct returns the number of Symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	var n int
	for _, c := range f.counts {
		if c != 0 {
			n++
		}
	}
	return n
}

// Each calls fn for every Symbol with a non-zero count, in ascending Symbol
// order.
func (f *Frequencies) Each(fn func(symbol Symbol, count uint64)) {
	for i, c := range f.counts {
		if c != 0 {
			fn(Symbol(i), c)
		}
	}
}

// CountFrequencies reads r to the end and tallies every byte.  A byte outside
// alphabet fails with ErrUnsupportedSymbol; an undefined alphabet fails with
// ErrUnknownAlphabet before anything is read.
func CountFrequencies(r io.Reader, alphabet Alphabet) (*Frequencies, error) {
	if !alphabet.Valid() {
		return nil, errors.Wrapf(ErrUnknownAlphabet, "alphabet %d", alphabet)
	}
	br := bufio.NewReader(r)
	freqs := &Frequencies{}
	var offset int64
	for {
		ch, err := br.ReadByte()
		if err == io.EOF {
			return freqs, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "unable to read input")
		}
		symbol := Symbol(ch)
		if !alphabet.Contains(symbol) {
			return nil, errors.Wrapf(ErrUnsupportedSymbol, "byte 0x%02x at offset %d is outside the %s alphabet", ch, offset, alphabet)
		}
		freqs.Add(symbol, 1)
		offset++
	}
}
