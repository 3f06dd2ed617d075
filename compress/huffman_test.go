package compress

import (
	"errors"
	"testing"
)

func TestHuffmanTableLookup(t *testing.T) {
	// Symbol 3 has a 1-bit code, symbols 0 and 2 have 2-bit codes.
	h, err := NewHuffmanTable([]int{2, 0, 2, 1})
	if err != nil {
		t.Fatalf("NewHuffmanTable error = %v", err)
	}
	if h.Width() != 2 {
		t.Errorf("Width() = %d, want 2", h.Width())
	}
	tests := []struct {
		window uint32
		symbol int
		length int
	}{
		{0x0000, 3, 1},
		{0x7FFF, 3, 1},
		{0x8000, 0, 2},
		{0xBFFF, 0, 2},
		{0xC000, 2, 2},
		{0xFFFF, 2, 2},
	}
	for _, tt := range tests {
		symbol, length, ok := h.Lookup(tt.window)
		if !ok || symbol != tt.symbol || length != tt.length {
			t.Errorf("Lookup(%#04x) = %d, %d, %v; want %d, %d, true",
				tt.window, symbol, length, ok, tt.symbol, tt.length)
		}
	}
}

func TestHuffmanTableIncomplete(t *testing.T) {
	h, err := NewHuffmanTable([]int{2})
	if err != nil {
		t.Fatal(err)
	}
	if symbol, length, ok := h.Lookup(0x0000); !ok || symbol != 0 || length != 2 {
		t.Errorf("Lookup(0) = %d, %d, %v", symbol, length, ok)
	}
	if _, _, ok := h.Lookup(0x4000); ok {
		t.Error("Lookup past the assigned codes should miss")
	}
}

func TestHuffmanTableOversubscribed(t *testing.T) {
	h, err := NewHuffmanTable([]int{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if symbol, _, _ := h.Lookup(0x8000); symbol != 1 {
		t.Errorf("second slot = %d, want 1", symbol)
	}
	for window := uint32(0); window <= 0xFFFF; window += 0x1000 {
		if symbol, _, ok := h.Lookup(window); !ok || symbol == 2 {
			t.Errorf("Lookup(%#04x) = %d, %v; symbol 2 should be unreachable", window, symbol, ok)
		}
	}
}

func TestHuffmanTableDeterministic(t *testing.T) {
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	a, err := NewHuffmanTable(lengths)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewHuffmanTable(lengths)
	if err != nil {
		t.Fatal(err)
	}
	for window := uint32(0); window <= 0xFFFF; window += 0x100 {
		s1, l1, ok1 := a.Lookup(window)
		s2, l2, ok2 := b.Lookup(window)
		if s1 != s2 || l1 != l2 || ok1 != ok2 {
			t.Fatalf("tables differ at %#04x", window)
		}
	}
	// Shorter codes come first.
	if symbol, _, _ := a.Lookup(0); symbol != 5 {
		t.Errorf("first slot = %d, want the 2-bit symbol 5", symbol)
	}
}

// canonicalCodes assigns codes in order of increasing length, then symbol.
func canonicalCodes(lengths []int) []uint32 {
	codes := make([]uint32, len(lengths))
	width := 0
	for _, l := range lengths {
		width = max(width, l)
	}
	code := uint32(0)
	for bitLength := 1; bitLength <= width; bitLength++ {
		for symbol, l := range lengths {
			if l == bitLength {
				codes[symbol] = code
				code++
			}
		}
		code <<= 1
	}
	return codes
}

func TestHuffmanTableReencodes(t *testing.T) {
	tests := []struct {
		name     string
		lengths  []int
		complete bool
	}{
		{"complete", []int{3, 3, 3, 3, 3, 2, 4, 4}, true},
		{"single bit", []int{1, 1}, true},
		{"with unused symbols", []int{2, 0, 2, 1}, true},
		{"incomplete", []int{3, 0, 2, 4}, false},
		{"sixteen bits", append([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, 16, 16), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHuffmanTable(tt.lengths)
			if err != nil {
				t.Fatal(err)
			}
			codes := canonicalCodes(tt.lengths)
			misses := 0
			for window := uint32(0); window <= 0xFFFF; window++ {
				symbol, length, ok := h.Lookup(window)
				if !ok {
					misses++
					continue
				}
				if length != tt.lengths[symbol] {
					t.Fatalf("Lookup(%#04x) length %d, symbol %d has %d", window, length, symbol, tt.lengths[symbol])
				}
				if top := window >> (maxCodeLength - length); top != codes[symbol] {
					t.Fatalf("Lookup(%#04x) = symbol %d, whose code %0*b is not the window's top bits %0*b",
						window, symbol, length, codes[symbol], length, top)
				}
			}
			if tt.complete && misses != 0 {
				t.Errorf("%d windows missed a complete code", misses)
			}
			if !tt.complete && misses == 0 {
				t.Error("incomplete code decoded every window")
			}
		})
	}
}

func TestHuffmanTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
	}{
		{"empty", nil},
		{"all zero", []int{0, 0, 0}},
		{"too long", []int{17, 1}},
		{"negative", []int{1, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHuffmanTable(tt.lengths)
			var te *TableError
			if !errors.As(err, &te) {
				t.Fatalf("error = %v, want *TableError", err)
			}
			if te.Reason == "" {
				t.Error("TableError without a reason")
			}
		})
	}
}

func TestFixedHuffmanTable(t *testing.T) {
	h := NewFixedHuffmanTable(42)
	if h.Width() != 0 {
		t.Errorf("Width() = %d, want 0", h.Width())
	}
	for _, window := range []uint32{0, 0x1234, 0xFFFF} {
		if symbol, length, ok := h.Lookup(window); symbol != 42 || length != 0 || !ok {
			t.Errorf("Lookup(%#04x) = %d, %d, %v", window, symbol, length, ok)
		}
	}
}

func BenchmarkHuffmanLookup(b *testing.B) {
	lengths := make([]int, 256)
	for i := range lengths {
		lengths[i] = 8
	}
	h, err := NewHuffmanTable(lengths)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	var window uint32
	for b.Loop() {
		_, _, _ = h.Lookup(window)
		window += 0x0101
	}
}
