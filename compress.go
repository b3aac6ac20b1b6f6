package huffman

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Stats summarizes one Compress or Decompress call.
type Stats struct {
	// Symbols is the value of the count field: the number of symbols
	// encoded or decoded.
	Symbols uint32

	// Distinct is the number of leaves in the code tree.
	Distinct int

	// InputBytes and OutputBytes are the sizes of the consumed and
	// produced streams.
	InputBytes  int64
	OutputBytes int64
}

// Ratio returns OutputBytes / InputBytes, or 0 if nothing was read.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// Compressor encodes byte streams into the compressed format.  The zero value
// compresses ASCII input.
type Compressor struct {
	// Alphabet restricts the accepted input bytes.
	Alphabet Alphabet

	// Dump, if non-nil, receives Encoder.Dump output for each input.
	Dump io.Writer
}

// Compress reads src twice, once to count symbol frequencies and once to
// encode, and writes the compressed stream to dst.  src is rewound to its
// start before each pass.
//
// On error, dst may hold a partial stream and must be discarded.
//
func (c Compressor) Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stats{}, errors.Wrap(err, "unable to rewind input")
	}
	freqs, err := CountFrequencies(src, c.Alphabet)
	if err != nil {
		return Stats{}, err
	}
	total := freqs.Total()
	if total == 0 {
		return Stats{}, errors.Wrap(ErrEmptyInput, "nothing to compress")
	}
	if total > math.MaxUint32 {
		return Stats{}, errors.Wrapf(ErrInputTooLarge, "%d symbols", total)
	}

	root, err := BuildTree(freqs)
	if err != nil {
		return Stats{}, err
	}

	cw := &countingWriter{w: dst}
	bw := NewBitWriter(cw)
	defer bw.Close()

	enc, err := WriteTree(bw, root)
	if err != nil {
		return Stats{}, err
	}
	bw.PutInt(uint32(total))

	if c.Dump != nil {
		if _, err := enc.Dump(c.Dump); err != nil {
			return Stats{}, errors.Wrap(err, "unable to dump code table")
		}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stats{}, errors.Wrap(err, "unable to rewind input")
	}
	n, err := encodeAll(bw, enc, bufio.NewReader(src))
	if err != nil {
		return Stats{}, err
	}
	if n != total {
		return Stats{}, errors.Errorf("huffman: input changed between passes: counted %d symbols, encoded %d", total, n)
	}

	if err := bw.Close(); err != nil {
		return Stats{}, errors.Wrap(err, "unable to write compressed output")
	}

	return Stats{
		Symbols:     uint32(total),
		Distinct:    enc.NumSymbols(),
		InputBytes:  int64(total),
		OutputBytes: cw.n,
	}, nil
}

func encodeAll(bw *BitWriter, enc *Encoder, br *bufio.Reader) (uint64, error) {
	var n uint64
	for {
		ch, err := br.ReadByte()
		if err == io.EOF {
			return n, bw.Err()
		}
		if err != nil {
			return n, errors.Wrap(err, "unable to read input")
		}
		hc, ok := enc.Encode(Symbol(ch))
		if !ok {
			return n, errors.Errorf("huffman: input changed between passes: byte 0x%02x at offset %d was not counted", ch, n)
		}
		bw.PutCode(hc)
		if err := bw.Err(); err != nil {
			return n, errors.Wrap(err, "unable to write compressed output")
		}
		n++
	}
}

// Compress compresses ASCII input with a zero-value Compressor.
func Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	return Compressor{}.Compress(dst, src)
}

// Decompressor decodes the compressed format.
type Decompressor struct {
	// Dump, if non-nil, receives Decoder.Dump output for each input.
	Dump io.Writer
}

// Decompress reads a compressed stream from src and writes the original bytes
// to dst.  Exactly as many symbols as the count field declares are written;
// padding bits after the last codeword are never read.
//
// If src ends before the declared number of symbols has been decoded, the
// error matches ErrTruncatedInput.
//
func (x Decompressor) Decompress(dst io.Writer, src io.Reader) (Stats, error) {
	br := NewBitReader(src)

	root, err := ReadTree(br)
	if err != nil {
		return Stats{}, err
	}
	count, err := br.GetInt()
	if err != nil {
		return Stats{}, errors.Wrap(err, "unable to read symbol count")
	}

	var d Decoder
	if err := d.Init(root); err != nil {
		return Stats{}, err
	}
	if x.Dump != nil {
		if _, err := d.Dump(x.Dump); err != nil {
			return Stats{}, errors.Wrap(err, "unable to dump code tree")
		}
	}

	cw := &countingWriter{w: dst}
	out := bufio.NewWriter(cw)
	defer out.Flush()

	for i := uint32(0); i < count; i++ {
		symbol, err := d.Decode(br)
		if errors.Is(err, ErrEndOfStream) {
			return Stats{}, errors.Wrapf(ErrTruncatedInput, "decoded %d of %d symbols", i, count)
		}
		if err != nil {
			return Stats{}, err
		}
		if err := out.WriteByte(byte(symbol)); err != nil {
			return Stats{}, errors.Wrap(err, "unable to write output")
		}
	}

	if err := out.Flush(); err != nil {
		return Stats{}, errors.Wrap(err, "unable to write output")
	}

	return Stats{
		Symbols:     count,
		Distinct:    root.Leaves(),
		InputBytes:  int64((br.BitsRead() + 7) / 8),
		OutputBytes: cw.n,
	}, nil
}

// Decompress decompresses src into dst with a zero-value Decompressor.
func Decompress(dst io.Writer, src io.Reader) (Stats, error) {
	return Decompressor{}.Decompress(dst, src)
}
