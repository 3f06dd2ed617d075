package dst

import (
	"errors"
	"fmt"
)

// MaxDelta is the largest displacement one record can encode on either axis.
const MaxDelta = 121

// ErrRange is returned when a displacement does not fit in one record.
var ErrRange = errors.New("dst: displacement exceeds record range")

type recordKind uint8

const (
	kindStitch recordKind = iota
	kindJump
	kindColorChange
	kindSequinMode
	kindEnd
)

func bit(b uint) byte { return 1 << b }

// ternary digits from the most significant, with the bits that set them
// positive and negative for x and y: (byte index, bit).
var digits = [...]struct {
	weight       int
	xPos, xNeg   [2]uint
	yPos, yNeg   [2]uint
}{
	{81, [2]uint{2, 2}, [2]uint{2, 3}, [2]uint{2, 5}, [2]uint{2, 4}},
	{27, [2]uint{1, 2}, [2]uint{1, 3}, [2]uint{1, 5}, [2]uint{1, 4}},
	{9, [2]uint{0, 2}, [2]uint{0, 3}, [2]uint{0, 5}, [2]uint{0, 4}},
	{3, [2]uint{1, 0}, [2]uint{1, 1}, [2]uint{1, 7}, [2]uint{1, 6}},
	{1, [2]uint{0, 0}, [2]uint{0, 1}, [2]uint{0, 7}, [2]uint{0, 6}},
}

// encodeRecord encodes a move of dx, dy in pattern coordinates (y down).
func encodeRecord(dx, dy int, kind recordKind) ([3]byte, error) {
	var b [3]byte
	switch kind {
	case kindColorChange:
		b[2] = 0b11000011
		return b, nil
	case kindSequinMode:
		b[2] = 0b01000011
		return b, nil
	case kindEnd:
		b[2] = 0b11110011
		return b, nil
	case kindJump:
		b[2] |= bit(7)
	}
	b[2] |= bit(0) | bit(1)

	if dx < -MaxDelta || dx > MaxDelta || dy < -MaxDelta || dy > MaxDelta {
		return b, fmt.Errorf("%w: (%d, %d)", ErrRange, dx, dy)
	}
	x, y := dx, -dy // DST y axis points up
	for _, d := range digits {
		half := d.weight / 2
		switch {
		case x > half:
			b[d.xPos[0]] |= bit(d.xPos[1])
			x -= d.weight
		case x < -half:
			b[d.xNeg[0]] |= bit(d.xNeg[1])
			x += d.weight
		}
		switch {
		case y > half:
			b[d.yPos[0]] |= bit(d.yPos[1])
			y -= d.weight
		case y < -half:
			b[d.yNeg[0]] |= bit(d.yNeg[1])
			y += d.weight
		}
	}
	return b, nil
}

// decodeRecord returns the displacement of a record in pattern coordinates.
func decodeRecord(b [3]byte) (dx, dy int) {
	var y int
	for _, d := range digits {
		if b[d.xPos[0]]&bit(d.xPos[1]) != 0 {
			dx += d.weight
		}
		if b[d.xNeg[0]]&bit(d.xNeg[1]) != 0 {
			dx -= d.weight
		}
		if b[d.yPos[0]]&bit(d.yPos[1]) != 0 {
			y += d.weight
		}
		if b[d.yNeg[0]]&bit(d.yNeg[1]) != 0 {
			y -= d.weight
		}
	}
	return dx, -y
}

// classify returns the kind of a record from its control bits.
func classify(b2 byte) recordKind {
	switch {
	case b2&0b11110011 == 0b11110011:
		return kindEnd
	case b2&0b11000011 == 0b11000011:
		return kindColorChange
	case b2&0b01000011 == 0b01000011:
		return kindSequinMode
	case b2&0b10000011 == 0b10000011:
		return kindJump
	}
	return kindStitch
}
