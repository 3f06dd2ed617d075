// Package binio provides the byte-level helpers shared by binary format
// adapters: a sticky-error writer that tracks its offset and writes Latin-1
// labels, and Latin-1 decoding for header fields.
package binio

import (
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Latin1 encodes s as ISO 8859-1. Runes outside Latin-1 become '?'.
func Latin1(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b = append(b, c)
	}
	return b
}

// DecodeLatin1 decodes ISO 8859-1 bytes.
func DecodeLatin1(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = charmap.ISO8859_1.DecodeByte(c)
	}
	return string(r)
}

// Writer writes binary fields to an io.Writer. After the first error all
// writes are no-ops and Err returns that error.
type Writer struct {
	w   io.Writer
	n   int
	err error
}

// NewWriter creates a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.n += n
	w.err = err
	return n, err
}

// Bytes writes p.
func (w *Writer) Bytes(p ...byte) {
	_, _ = w.Write(p)
}

// String writes s encoded as Latin-1.
func (w *Writer) String(s string) {
	_, _ = w.Write(Latin1(s))
}

// PadTo writes fill bytes until offset bytes have been written in total.
func (w *Writer) PadTo(offset int, fill byte) {
	for w.n < offset && w.err == nil {
		w.Bytes(fill)
	}
}

// Offset returns the number of bytes written.
func (w *Writer) Offset() int {
	return w.n
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}
