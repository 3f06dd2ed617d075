package compress

// BitSource is a cursor over a byte buffer that reads unsigned values of up
// to 32 bits, MSB first, at any bit position. Bits past the end of the
// buffer read as zero.
type BitSource struct {
	data []byte
	pos  int // in bits
}

// NewBitSource creates a bit source positioned at the first bit of data.
func NewBitSource(data []byte) *BitSource {
	return &BitSource{data: data}
}

// Peek returns the next n bits without consuming them. n must be in [0, 32].
func (b *BitSource) Peek(n int) uint32 {
	if n <= 0 {
		return 0
	}
	end := b.pos + n - 1
	var v uint64
	for i := b.pos >> 3; i <= end>>3; i++ {
		v <<= 8
		if i < len(b.data) {
			v |= uint64(b.data[i])
		}
	}
	unused := (8 - (end+1)%8) % 8
	return uint32((v >> unused) & (1<<uint(n) - 1))
}

// Skip consumes n bits.
func (b *BitSource) Skip(n int) {
	b.pos += n
}

// Pop returns and consumes the next n bits.
func (b *BitSource) Pop(n int) uint32 {
	v := b.Peek(n)
	b.Skip(n)
	return v
}

// Position returns the number of bits consumed.
func (b *BitSource) Position() int {
	return b.pos
}

// Remaining returns the number of unread bits in the buffer. It is never
// negative, even after reading past the end.
func (b *BitSource) Remaining() int {
	return max(len(b.data)*8-b.pos, 0)
}
