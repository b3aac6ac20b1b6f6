package huffman

import (
	"github.com/pkg/errors"
)

var (
	// ErrUnderflow is returned by PQueue.Top and PQueue.Pop on an empty queue.
	ErrUnderflow = errors.New("huffman: priority queue underflow")

	// ErrEndOfStream is returned when a read asks for bits past the end of
	// the underlying source.
	ErrEndOfStream = errors.New("huffman: unexpected end of bit stream")

	// ErrTruncatedInput is returned by Decompress when the stream ends before
	// the declared number of symbols has been decoded.
	ErrTruncatedInput = errors.New("huffman: compressed input is truncated")

	// ErrUnsupportedSymbol is returned by Compress when the input holds a byte
	// outside the configured Alphabet.
	ErrUnsupportedSymbol = errors.New("huffman: unsupported symbol")

	// ErrUnknownAlphabet is returned by Compress and CountFrequencies when
	// given an Alphabet that is neither ASCII nor Octet.
	ErrUnknownAlphabet = errors.New("huffman: unknown alphabet")

	// ErrEmptyInput is returned by Compress and BuildTree when there is
	// nothing to encode.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrInputTooLarge is returned by Compress when the symbol count does not
	// fit in the 32-bit count field.
	ErrInputTooLarge = errors.New("huffman: input exceeds 32-bit symbol count")

	// ErrCorruptTree is returned by ReadTree when the serialized tree cannot
	// have been produced by WriteTree.
	ErrCorruptTree = errors.New("huffman: corrupt code tree")
)
