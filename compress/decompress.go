package compress

import (
	"fmt"

	"github.com/gogpu/stitch"
)

const (
	lookahead = 16

	// Literal/length alphabet.
	maxLiteral  = 255
	endOfStream = 510
	lengthBias  = 253 // symbol 256 is a match of 3 bytes
)

// Expand decodes a compressed stream. A non-negative expectedSize is a hard
// cap: decoding stops once the output reaches it and longer output is
// truncated. A negative expectedSize means only the end marker or the end of
// the input stops decoding.
func Expand(data []byte, expectedSize int) ([]byte, error) {
	var d Decompressor
	return d.Decompress(data, expectedSize)
}

// Decompressor holds the per-block state of a decode. The zero value is
// ready to use; a Decompressor may be reused but not shared between
// goroutines.
type Decompressor struct {
	bits          *BitSource
	blockElements int
	blocks        int
	chars         *HuffmanTable
	dists         *HuffmanTable
}

// Decompress decodes data as Expand does.
func (d *Decompressor) Decompress(data []byte, expectedSize int) ([]byte, error) {
	d.bits = NewBitSource(data)
	d.blockElements = -1
	d.blocks = 0

	capacity := 2 * len(data)
	if expectedSize >= 0 {
		capacity = expectedSize
	}
	out := make([]byte, 0, capacity)

	for d.bits.Remaining() > 0 && (expectedSize < 0 || len(out) < expectedSize) {
		symbol, ok, err := d.token()
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		switch {
		case symbol <= maxLiteral:
			out = append(out, byte(symbol))
		case symbol == endOfStream:
			return d.finish(out, expectedSize), nil
		default:
			length := symbol - lengthBias
			distance, err := d.distance()
			if err != nil {
				return out, err
			}
			back := distance + 1
			pos := len(out) - back
			if pos < 0 {
				return out, fmt.Errorf("%w: distance %d at output offset %d", ErrInvalidReference, back, len(out))
			}
			if back > length {
				out = append(out, out[pos:pos+length]...)
			} else {
				// Overlapping copy reads bytes written by this same copy.
				for i := pos; i < pos+length; i++ {
					out = append(out, out[i])
				}
			}
		}
	}
	if d.bits.Position() > len(data)*8 {
		stitch.Logger().Warn("compress: input truncated",
			"bits", len(data)*8, "read", d.bits.Position(), "output", len(out))
	}
	return d.finish(out, expectedSize), nil
}

func (d *Decompressor) finish(out []byte, expectedSize int) []byte {
	if expectedSize >= 0 && len(out) > expectedSize {
		out = out[:expectedSize]
	}
	stitch.Logger().Debug("compress: expanded", "blocks", d.blocks, "output", len(out))
	return out
}

// token decodes the next literal/length symbol, loading a new block header
// when the current block is used up. ok is false when a block header ends
// exactly at the end of the input and so carries no symbols.
func (d *Decompressor) token() (symbol int, ok bool, err error) {
	if d.blockElements <= 0 {
		if err := d.loadBlock(); err != nil {
			return 0, false, err
		}
		if d.bits.Remaining() == 0 {
			return 0, false, nil
		}
	}
	d.blockElements--
	symbol, err = d.decode(d.chars, "literal")
	return symbol, err == nil, err
}

func (d *Decompressor) distance() (int, error) {
	v, err := d.decode(d.dists, "distance")
	if err != nil || v == 0 {
		return 0, err
	}
	v--
	return 1<<v + int(d.bits.Pop(v)), nil
}

func (d *Decompressor) decode(h *HuffmanTable, name string) (int, error) {
	symbol, length, ok := h.Lookup(d.bits.Peek(lookahead))
	if !ok {
		return 0, &TableError{Table: name, Reason: fmt.Sprintf("no code at bit %d", d.bits.Position())}
	}
	d.bits.Skip(length)
	return symbol, nil
}

func (d *Decompressor) loadBlock() error {
	start := d.bits.Position()
	d.blockElements = int(d.bits.Pop(16))
	lengths, err := d.readLengthTable()
	if err != nil {
		return err
	}
	if d.chars, err = d.readLiteralTable(lengths); err != nil {
		return err
	}
	if d.dists, err = d.readDistanceTable(); err != nil {
		return err
	}
	d.blocks++
	stitch.Logger().Debug("compress: block header",
		"block", d.blocks, "elements", d.blockElements, "bit", start)
	return nil
}

// readVariableLength reads a 3-bit value; 7 is extended by up to 13
// following 1 bits.
func (d *Decompressor) readVariableLength() int {
	m := int(d.bits.Pop(3))
	if m != 7 {
		return m
	}
	for range 13 {
		if d.bits.Pop(1) == 0 {
			break
		}
		m++
	}
	return m
}

func (d *Decompressor) readLengthTable() (*HuffmanTable, error) {
	count := int(d.bits.Pop(5))
	if count == 0 {
		return NewFixedHuffmanTable(int(d.bits.Pop(5))), nil
	}
	lengths := make([]int, count)
	for i := 0; i < count; i++ {
		if i == 3 {
			i += int(d.bits.Pop(2))
			if i >= count {
				break
			}
		}
		lengths[i] = d.readVariableLength()
	}
	return newTable(lengths, "length")
}

func (d *Decompressor) readLiteralTable(lengthTable *HuffmanTable) (*HuffmanTable, error) {
	count := int(d.bits.Pop(9))
	if count == 0 {
		return NewFixedHuffmanTable(int(d.bits.Pop(9))), nil
	}
	lengths := make([]int, count)
	for i := 0; i < count; {
		c, err := d.decode(lengthTable, "length")
		if err != nil {
			return nil, err
		}
		switch c {
		case 0:
			i++
		case 1:
			i += 3 + int(d.bits.Pop(4))
		case 2:
			i += 20 + int(d.bits.Pop(9))
		default:
			lengths[i] = c - 2
			i++
		}
	}
	return newTable(lengths, "literal")
}

func (d *Decompressor) readDistanceTable() (*HuffmanTable, error) {
	count := int(d.bits.Pop(5))
	if count == 0 {
		return NewFixedHuffmanTable(int(d.bits.Pop(5))), nil
	}
	lengths := make([]int, count)
	for i := range lengths {
		lengths[i] = d.readVariableLength()
	}
	return newTable(lengths, "distance")
}

func newTable(lengths []int, name string) (*HuffmanTable, error) {
	h, err := NewHuffmanTable(lengths)
	if err != nil {
		if te, ok := err.(*TableError); ok {
			te.Table = name
		}
		return nil, err
	}
	return h, nil
}
