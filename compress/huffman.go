package compress

import "fmt"

// maxCodeLength is the width of the lookahead window.
const maxCodeLength = 16

// HuffmanTable is a flat decode table built from per-symbol code lengths.
// A fixed table decodes every window to one value and consumes no bits.
type HuffmanTable struct {
	lengths []int
	table   []uint16
	width   int
	fixed   int
}

// NewHuffmanTable builds a decode table from code lengths indexed by symbol.
// Every symbol of length L gets 2^(width-L) consecutive slots, where width
// is the longest length; slots are assigned in order of increasing length,
// then increasing symbol. Zero lengths are unused symbols.
func NewHuffmanTable(lengths []int) (*HuffmanTable, error) {
	width := 0
	for _, l := range lengths {
		if l < 0 {
			return nil, &TableError{Reason: fmt.Sprintf("negative code length %d", l)}
		}
		width = max(width, l)
	}
	if width == 0 {
		return nil, &TableError{Reason: "no symbol has a code"}
	}
	if width > maxCodeLength {
		return nil, &TableError{Reason: fmt.Sprintf("code length %d exceeds %d bits", width, maxCodeLength)}
	}
	if len(lengths) > 1<<16 {
		return nil, &TableError{Reason: fmt.Sprintf("%d symbols", len(lengths))}
	}

	size := 1 << width
	table := make([]uint16, 0, size)
fill:
	for bitLength := 1; bitLength <= width; bitLength++ {
		slots := 1 << (width - bitLength)
		for symbol, l := range lengths {
			if l != bitLength {
				continue
			}
			// Over-subscribed lengths: codes past the window are unreachable.
			for range min(slots, size-len(table)) {
				table = append(table, uint16(symbol))
			}
			if len(table) == size {
				break fill
			}
		}
	}
	return &HuffmanTable{lengths: lengths, table: table, width: width}, nil
}

// NewFixedHuffmanTable returns a table that always decodes to value.
func NewFixedHuffmanTable(value int) *HuffmanTable {
	return &HuffmanTable{fixed: value}
}

// Width returns the longest code length, or 0 for a fixed table.
func (h *HuffmanTable) Width() int {
	return h.width
}

// Lookup decodes the symbol at the top of a 16-bit window and returns it
// with its code length. ok is false when the window falls into a part of
// the code space no symbol covers.
func (h *HuffmanTable) Lookup(window uint32) (symbol, length int, ok bool) {
	if h.table == nil {
		return h.fixed, 0, true
	}
	i := int(window&0xFFFF) >> (maxCodeLength - h.width)
	if i >= len(h.table) {
		return 0, 0, false
	}
	symbol = int(h.table[i])
	return symbol, h.lengths[symbol], true
}
