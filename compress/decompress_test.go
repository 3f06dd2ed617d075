package compress

import (
	"bytes"
	"errors"
	"testing"
)

// fixedBlock writes a block header whose three tables are fixed: every
// token of the block decodes to literal and every distance to dist.
func fixedBlock(w *bitWriter, elements, literal, dist uint32) {
	w.write(elements, 16)
	w.write(0, 5) // length table: fixed
	w.write(0, 5)
	w.write(0, 9) // literal table: fixed
	w.write(literal, 9)
	w.write(0, 5) // distance table: fixed
	w.write(dist, 5)
}

func TestExpandFixedBlocks(t *testing.T) {
	var w bitWriter
	for _, c := range "ABCD" {
		fixedBlock(&w, 1, uint32(c), 0)
	}
	// Match of length 3, distance symbol 2 with one extra bit set:
	// distance 1<<1 + 1 = 3, so the copy starts 4 bytes back.
	fixedBlock(&w, 1, 256, 2)
	w.write(1, 1)

	got, err := Expand(w.data, 7)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if string(got) != "ABCDABC" {
		t.Errorf("Expand = %q, want %q", got, "ABCDABC")
	}
}

func TestExpandOverlappingMatch(t *testing.T) {
	var w bitWriter
	fixedBlock(&w, 1, 'z', 0)
	fixedBlock(&w, 2, 256+2, 0) // length 5, distance 1

	got, err := Expand(w.data, 11)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if want := bytes.Repeat([]byte("z"), 11); !bytes.Equal(got, want) {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandHintCaps(t *testing.T) {
	var w bitWriter
	fixedBlock(&w, 1, 'q', 0)
	fixedBlock(&w, 1, 256+7, 0) // length 10, distance 1

	got, err := Expand(w.data, 4)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if string(got) != "qqqq" {
		t.Errorf("Expand = %q, want %q", got, "qqqq")
	}
}

func TestExpandEndOfStream(t *testing.T) {
	var w bitWriter
	fixedBlock(&w, 1, 'A', 0)
	fixedBlock(&w, 1, endOfStream, 0)
	fixedBlock(&w, 1, 'B', 0)

	got, err := Expand(w.data, -1)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if string(got) != "A" {
		t.Errorf("Expand = %q, want %q", got, "A")
	}
}

func TestExpandHuffmanLiterals(t *testing.T) {
	var w bitWriter
	w.write(4, 16)

	// Code-length alphabet: symbol 3 "0", symbol 0 "10", symbol 2 "11".
	w.write(4, 5)
	w.write(2, 3) // symbol 0
	w.write(0, 3) // symbol 1
	w.write(2, 3) // symbol 2
	w.write(0, 2) // no skip before symbol 3
	w.write(1, 3) // symbol 3

	// Literal table of 67 entries: skip 65, then 'A' and 'B' with 1-bit codes.
	w.write(67, 9)
	w.write(0b11, 2)
	w.write(45, 9)
	w.write(0b0, 1)
	w.write(0b0, 1)

	w.write(0, 5) // distance table: fixed
	w.write(0, 5)

	w.write(0b0110, 4) // A B B A

	for _, size := range []int{4, -1} {
		got, err := Expand(w.data, size)
		if err != nil {
			t.Fatalf("Expand(size=%d) error = %v", size, err)
		}
		if string(got) != "ABBA" {
			t.Errorf("Expand(size=%d) = %q, want %q", size, got, "ABBA")
		}
	}
}

func TestExpandInvalidReference(t *testing.T) {
	var w bitWriter
	fixedBlock(&w, 1, 'x', 0)
	fixedBlock(&w, 1, 256, 3) // distance 1<<2 + 0 = 4, copy starts 5 back
	w.write(0, 2)

	got, err := Expand(w.data, -1)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("error = %v, want ErrInvalidReference", err)
	}
	if string(got) != "x" {
		t.Errorf("partial output = %q, want %q", got, "x")
	}
}

func TestExpandTableErrors(t *testing.T) {
	t.Run("missing distance code", func(t *testing.T) {
		var w bitWriter
		fixedBlock(&w, 1, 'x', 0)
		w.write(1, 16)
		w.write(0, 5)
		w.write(0, 5)
		w.write(0, 9)
		w.write(256, 9)
		w.write(1, 5) // one distance symbol with a 2-bit code "00"
		w.write(2, 3)
		w.write(0b11, 2)

		got, err := Expand(w.data, -1)
		var te *TableError
		if !errors.As(err, &te) {
			t.Fatalf("error = %v, want *TableError", err)
		}
		if te.Table != "distance" {
			t.Errorf("Table = %q, want distance", te.Table)
		}
		if string(got) != "x" {
			t.Errorf("partial output = %q", got)
		}
	})

	t.Run("literal table without codes", func(t *testing.T) {
		var w bitWriter
		w.write(1, 16)
		w.write(0, 5)
		w.write(0, 5) // code-length alphabet always yields 0
		w.write(3, 9) // three unused literals
		w.write(0xFF, 8)

		_, err := Expand(w.data, -1)
		var te *TableError
		if !errors.As(err, &te) {
			t.Fatalf("error = %v, want *TableError", err)
		}
		if te.Table != "literal" {
			t.Errorf("Table = %q, want literal", te.Table)
		}
	})
}

func TestExpandEmptyAndTruncated(t *testing.T) {
	got, err := Expand(nil, -1)
	if err != nil || len(got) != 0 {
		t.Errorf("Expand(nil) = %q, %v", got, err)
	}

	// A header that ends the input yields nothing.
	header := []byte{5, 0, 0x02, 0xA0, 0x01, 0xFE}
	got, err = Expand(header, -1)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expand = %q, want empty", got)
	}

	data := Compress([]byte("truncated payload"))
	got, err = Expand(data[:len(data)-5], -1)
	if err != nil {
		t.Fatalf("Expand error = %v", err)
	}
	if string(got) != "truncated pa" {
		t.Errorf("Expand of truncated input = %q", got)
	}
}

func TestDecompressorReuse(t *testing.T) {
	var d Decompressor
	for _, s := range []string{"first", "second payload"} {
		got, err := d.Decompress(Compress([]byte(s)), len(s))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != s {
			t.Errorf("Decompress = %q, want %q", got, s)
		}
	}
}
