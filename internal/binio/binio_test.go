package binio

import (
	"bytes"
	"errors"
	"testing"
)

func TestLatin1(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "Rose", []byte("Rose")},
		{"latin1", "Café", []byte{'C', 'a', 'f', 0xE9}},
		{"unsupported", "a€b", []byte("a?b")},
		{"empty", "", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Latin1(tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Latin1(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeLatin1(t *testing.T) {
	if got := DecodeLatin1([]byte{'C', 'a', 'f', 0xE9}); got != "Café" {
		t.Errorf("DecodeLatin1 = %q, want %q", got, "Café")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.String("LA:")
	w.Bytes(0x1A)
	if w.Offset() != 4 {
		t.Errorf("Offset() = %d, want 4", w.Offset())
	}
	w.PadTo(12, ' ')
	if err := w.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := []byte{'L', 'A', ':', 0x1A, ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("wrote %v, want %v", buf.Bytes(), want)
	}
	if w.Offset() != 12 {
		t.Errorf("Offset() = %d, want 12", w.Offset())
	}
}

type failingWriter struct{}

var errBroken = errors.New("broken")

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(failingWriter{})
	w.Bytes(1)
	w.String("CO")
	w.PadTo(100, 0)
	if !errors.Is(w.Err(), errBroken) {
		t.Errorf("Err() = %v, want %v", w.Err(), errBroken)
	}
	if w.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", w.Offset())
	}
}
