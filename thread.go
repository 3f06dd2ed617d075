package stitch

import (
	"fmt"
	"image/color"
)

// Thread describes one spool of embroidery thread.
// Threads are value types: two threads with identical fields are equal
// under ==, which the color block algorithms rely on.
type Thread struct {
	Color         uint32 // Packed 0xRRGGBB
	Description   string
	CatalogNumber string
	Details       string
	Brand         string
	Chart         string
	Weight        string
}

// NewThread creates a thread with the given packed 0xRRGGBB color.
func NewThread(rgb uint32) Thread {
	return Thread{Color: rgb & 0xFFFFFF}
}

// ParseThread creates a thread from a color string accepted by ParseColor.
func ParseThread(s string) (Thread, error) {
	c, err := ParseColor(s)
	if err != nil {
		return Thread{}, err
	}
	return NewThread(c), nil
}

// RandomThread returns a filler thread with a random color.
// It stands in for threads missing from a pattern's thread list.
func RandomThread() Thread {
	return Thread{Color: randomColor(), Description: "Random"}
}

// Red returns the red component of the thread color.
func (t Thread) Red() uint8 { return uint8(t.Color >> 16) }

// Green returns the green component of the thread color.
func (t Thread) Green() uint8 { return uint8(t.Color >> 8) }

// Blue returns the blue component of the thread color.
func (t Thread) Blue() uint8 { return uint8(t.Color) }

// Hex returns the color as "#rrggbb".
func (t Thread) Hex() string {
	return fmt.Sprintf("#%06x", t.Color&0xFFFFFF)
}

// NRGBA returns the thread color as an opaque color.NRGBA.
func (t Thread) NRGBA() color.NRGBA {
	return color.NRGBA{R: t.Red(), G: t.Green(), B: t.Blue(), A: 0xFF}
}

// String returns a short human readable description of the thread.
func (t Thread) String() string {
	if t.Description == "" {
		return t.Hex()
	}
	return t.Hex() + " " + t.Description
}
