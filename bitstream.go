package huffman

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// BitWriter writes individual bits, most significant bit first, to a
// byte-oriented sink.
//
// Write errors are sticky: once one occurs, further Put calls are no-ops and
// the error is reported by Err and Close.
type BitWriter struct {
	w      *bitio.Writer
	err    error
	nbits  uint64
	closed bool
}

// NewBitWriter returns a BitWriter that writes to w.  Close must be called to
// flush the final partial byte; Close does not close w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(w)}
}

// PutBit appends one bit.  Any non-zero b is written as 1.
func (bw *BitWriter) PutBit(b uint8) {
	var v uint64
	if b != 0 {
		v = 1
	}
	bw.put(v, 1)
}

// PutChar appends the 8 bits of c.
func (bw *BitWriter) PutChar(c Symbol) {
	bw.put(uint64(c), 8)
}

// PutInt appends the 32 bits of n.
func (bw *BitWriter) PutInt(n uint32) {
	bw.put(uint64(n), 32)
}

// PutCode appends the bits of a codeword, in root-to-leaf order.
func (bw *BitWriter) PutCode(hc Code) {
	size := int(hc.Size)
	for i := 0; size-i >= 8; i += 8 {
		bw.put(uint64(hc.Bits[i>>3]), 8)
	}
	if rem := size & 7; rem != 0 {
		bw.put(uint64(hc.Bits[size>>3]>>(8-uint(rem))), uint8(rem))
	}
}

// BitsWritten returns the number of bits appended so far, not counting
// padding.
func (bw *BitWriter) BitsWritten() uint64 {
	return bw.nbits
}

// Err returns the first write error encountered, if any.
func (bw *BitWriter) Err() error {
	return bw.err
}

// Close pads the final partial byte with zero bits in its low-order positions
// and flushes it.  Calling Close more than once is harmless.
func (bw *BitWriter) Close() error {
	if bw.closed {
		return bw.err
	}
	bw.closed = true
	if err := bw.w.Close(); err != nil && bw.err == nil {
		bw.err = errors.Wrap(err, "unable to flush bit stream")
	}
	return bw.err
}

func (bw *BitWriter) put(value uint64, n uint8) {
	if bw.err != nil {
		return
	}
	if bw.closed {
		bw.err = errors.New("huffman: write to closed BitWriter")
		return
	}
	if err := bw.w.WriteBits(value, n); err != nil {
		bw.err = errors.Wrap(err, "unable to write bits")
		return
	}
	bw.nbits += uint64(n)
}

// BitReader reads individual bits, most significant bit first, from a
// byte-oriented source.
type BitReader struct {
	r     *bitio.Reader
	nbits uint64
}

// NewBitReader returns a BitReader that reads from r.  The BitReader may
// buffer bytes from r beyond those it has consumed.
func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{r: bitio.NewReader(r)}
}

// GetBit returns the next bit.
func (br *BitReader) GetBit() (uint8, error) {
	v, err := br.get(1)
	return uint8(v), err
}

// GetChar returns the next 8 bits as a Symbol.
func (br *BitReader) GetChar() (Symbol, error) {
	v, err := br.get(8)
	return Symbol(v), err
}

// GetInt returns the next 32 bits as an unsigned integer.
func (br *BitReader) GetInt() (uint32, error) {
	v, err := br.get(32)
	return uint32(v), err
}

// BitsRead returns the number of bits consumed so far.
func (br *BitReader) BitsRead() uint64 {
	return br.nbits
}

func (br *BitReader) get(n uint8) (uint64, error) {
	v, err := br.r.ReadBits(n)
	if err != nil {
		if isEOF(err) {
			return 0, errors.Wrapf(ErrEndOfStream, "reading %d bits at bit offset %d", n, br.nbits)
		}
		return 0, errors.Wrap(err, "unable to read bits")
	}
	br.nbits += uint64(n)
	return v, nil
}
