package stitch

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{"six digits", "ff8000", 0xFF8000, false},
		{"hash prefix", "#0a0b0c", 0x0A0B0C, false},
		{"uppercase", "#ABCDEF", 0xABCDEF, false},
		{"three digits", "f80", 0xFF8800, false},
		{"named", "navy", 0x000080, false},
		{"named mixed case", "  Gold ", 0xFFD700, false},
		{"bad length", "12345", 0, true},
		{"bad digit", "zz0000", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %06x, want %06x", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorRandom(t *testing.T) {
	c, err := ParseColor("random")
	if err != nil {
		t.Fatalf("ParseColor(random) error = %v", err)
	}
	if c > 0xFFFFFF {
		t.Errorf("random color %x has bits above 24", c)
	}
}

func TestColorOf(t *testing.T) {
	got := ColorOf(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF})
	if got != 0x123456 {
		t.Errorf("ColorOf = %06x, want 123456", got)
	}
}

func TestColorDistanceRedMean(t *testing.T) {
	if d := ColorDistanceRedMean(0x336699, 0x336699); d != 0 {
		t.Errorf("distance to self = %d, want 0", d)
	}
	black, white := uint32(0x000000), uint32(0xFFFFFF)
	if ColorDistanceRedMean(black, white) != ColorDistanceRedMean(white, black) {
		t.Error("distance is not symmetric")
	}
	// Green is weighted heavier than red and blue.
	if ColorDistanceRedMean(0, 0x001000) <= ColorDistanceRedMean(0, 0x000010) {
		t.Error("green difference should outweigh equal blue difference")
	}
}

func TestThread(t *testing.T) {
	th := NewThread(0x1FF8040)
	if th.Color != 0xFF8040 {
		t.Fatalf("NewThread masks to 24 bits: got %x", th.Color)
	}
	if th.Red() != 0xFF || th.Green() != 0x80 || th.Blue() != 0x40 {
		t.Errorf("components = %x %x %x", th.Red(), th.Green(), th.Blue())
	}
	if th.Hex() != "#ff8040" {
		t.Errorf("Hex() = %q", th.Hex())
	}
	if got := th.NRGBA(); got != (color.NRGBA{R: 0xFF, G: 0x80, B: 0x40, A: 0xFF}) {
		t.Errorf("NRGBA() = %v", got)
	}
	if got := ColorOf(th.NRGBA()); got != th.Color {
		t.Errorf("ColorOf(NRGBA()) = %06x, want %06x", got, th.Color)
	}

	th.Description = "Orange"
	if th.String() != "#ff8040 Orange" {
		t.Errorf("String() = %q", th.String())
	}
	if NewThread(0xFF8040) == th {
		t.Error("threads with different descriptions must not be equal")
	}
}

func TestParseThread(t *testing.T) {
	th, err := ParseThread("crimson")
	if err != nil {
		t.Fatalf("ParseThread error = %v", err)
	}
	if th.Color != 0xDC143C {
		t.Errorf("ParseThread(crimson) = %06x", th.Color)
	}
	if _, err := ParseThread("nope"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("ParseThread(nope) error = %v, want ErrInvalidColor", err)
	}
}

func TestRandomThread(t *testing.T) {
	th := RandomThread()
	if th.Description != "Random" || th.Color > 0xFFFFFF {
		t.Errorf("RandomThread() = %+v", th)
	}
}
