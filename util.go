package huffman

import (
	"io"

	"github.com/pkg/errors"
)

// isEOF reports whether err means the byte source ran dry, as opposed to a
// genuine I/O failure.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// countingWriter counts the bytes that pass through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

var _ io.Writer = (*countingWriter)(nil)
