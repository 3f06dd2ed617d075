package stitch

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a thread color into packed 0xRRGGBB form.
// Supports formats: "RGB", "RRGGBB" (with or without a leading '#'),
// SVG/CSS color names such as "navy", and "random".
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if lower == "random" {
		return randomColor(), nil
	}
	if c, ok := colornames.Map[lower]; ok {
		return packRGB(c.R, c.G, c.B), nil
	}

	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint32
	switch len(hex) {
	case 3: // RGB
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return r<<16 | g<<8 | b, nil
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func randomColor() uint32 {
	return rand.Uint32() & 0xFFFFFF // #nosec G404 -- filler colors need no cryptographic randomness
}

// ColorOf converts a standard color.Color to packed 0xRRGGBB, dropping alpha.
func ColorOf(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return packRGB(n.R, n.G, n.B)
}

// ColorDistanceRedMean returns the "red mean" weighted squared distance
// between two colors. It approximates perceptual difference cheaply.
func ColorDistanceRedMean(c1, c2 uint32) int {
	r1, g1, b1 := int(c1>>16&0xFF), int(c1>>8&0xFF), int(c1&0xFF)
	r2, g2, b2 := int(c2>>16&0xFF), int(c2>>8&0xFF), int(c2&0xFF)
	// Halves round to even.
	sum := r1 + r2
	redMean := sum / 2
	if sum%2 == 1 && redMean%2 == 1 {
		redMean++
	}
	r := r1 - r2
	g := g1 - g2
	b := b1 - b2
	return (((512 + redMean) * r * r) >> 8) + 4*g*g + (((767 - redMean) * b * b) >> 8)
}
