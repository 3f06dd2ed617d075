package compress

// Every block Compress writes starts with the element count (little-endian,
// as stored by the formats) followed by fixed table bytes that decode as an
// identity literal table: 256 symbols of 8 bits each.
var blockShape = [4]byte{0x02, 0xA0, 0x01, 0xFE}

const headerSize = 6

// Compress wraps data in the loopback block form that Expand decodes back to
// data. It does not compress.
//
// The decoder reads the element count MSB first, so a size of n bytes is
// seen as n with its bytes swapped. When that covers n the output is a single
// header followed by data. Otherwise data is split into blocks whose swapped
// counts end exactly on a block boundary.
func Compress(data []byte) []byte {
	out := make([]byte, 0, len(data)+headerSize)
	rest := data
	for {
		length, field := nextBlock(len(rest))
		out = append(out, byte(field), byte(field>>8))
		out = append(out, blockShape[:]...)
		out = append(out, rest[:length]...)
		rest = rest[length:]
		if len(rest) == 0 {
			return out
		}
	}
}

// nextBlock returns the length of the next block for n remaining bytes and
// the size field to store for it.
func nextBlock(n int) (length, field int) {
	switch {
	case n <= 0xFFFF && n&0xFF >= n>>8:
		// Swapped count >= n: the block runs to the end of the input.
		return n, n
	case n >= 257:
		// Multiples of 257 read the same either way.
		k := min(n/257, 255)
		return 257 * k, 257 * k
	default:
		// n == 256. A zero count decodes exactly one symbol.
		return 1, 0
	}
}
