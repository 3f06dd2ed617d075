package dst

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/gogpu/stitch"
	"github.com/gogpu/stitch/internal/binio"
)

// Write writes p, which must already be normalized against Capabilities.
func (f Format) Write(w io.Writer, p *stitch.Pattern) error {
	bw := binio.NewWriter(w)
	f.writeHeader(bw, p)

	var xx, yy float64
	for i, s := range p.All() {
		dx := int(math.RoundToEven(s.X - xx))
		dy := int(math.RoundToEven(s.Y - yy))

		var kind recordKind
		switch s.Command.Type {
		case stitch.CmdStitch:
			kind = kindStitch
		case stitch.CmdJump, stitch.CmdSequinEject:
			kind = kindJump
		case stitch.CmdColorChange, stitch.CmdStop:
			kind = kindColorChange
		case stitch.CmdSequinMode:
			kind = kindSequinMode
		case stitch.CmdEnd:
			kind = kindEnd
		case stitch.CmdTrim:
			xx += float64(dx)
			yy += float64(dy)
			f.writeTrim(bw)
			continue
		default:
			stitch.Logger().Warn("dst: command not expressible, skipped", "index", i, "command", s.Command)
			continue
		}
		rec, err := encodeRecord(dx, dy, kind)
		if err != nil {
			return fmt.Errorf("dst: record %d: %w", i, err)
		}
		xx += float64(dx)
		yy += float64(dy)
		bw.Bytes(rec[:]...)
	}
	return bw.Err()
}

// writeTrim writes TrimAt jumps that return to the starting point.
func (f Format) writeTrim(bw *binio.Writer) {
	delta := -4
	write := func(d int) {
		rec, _ := encodeRecord(d, d, kindJump)
		bw.Bytes(rec[:]...)
	}
	write(-delta / 2)
	for i := 1; i < f.trimAt()-1; i++ {
		write(delta)
		delta = -delta
	}
	write(delta / 2)
}

func (f Format) writeHeader(bw *binio.Writer, p *stitch.Pattern) {
	name, ok := p.Metadata("name")
	if !ok {
		name = "Untitled"
	}
	minX, minY, maxX, maxY := p.Bounds()
	if p.Len() == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	colors := p.CountColorChanges() + p.CountCommands(stitch.CmdStop)

	bw.String(fmt.Sprintf("LA:%-16.16s\r", name))
	bw.String(fmt.Sprintf("ST:%7d\r", p.Len()))
	bw.String(fmt.Sprintf("CO:%3d\r", colors))
	bw.String(fmt.Sprintf("+X:%5d\r", int(math.Abs(maxX))))
	bw.String(fmt.Sprintf("-X:%5d\r", int(math.Abs(minX))))
	bw.String(fmt.Sprintf("+Y:%5d\r", int(math.Abs(maxY))))
	bw.String(fmt.Sprintf("-Y:%5d\r", int(math.Abs(minY))))

	var ax, ay int
	if n := p.Len(); n > 0 {
		last := p.At(n - 1)
		ax, ay = int(last.X), -int(last.Y)
	}
	bw.String(fmt.Sprintf("AX:%s\r", signed(ax)))
	bw.String(fmt.Sprintf("AY:%s\r", signed(ay)))
	bw.String(fmt.Sprintf("MX:+%5d\r", 0))
	bw.String(fmt.Sprintf("MY:+%5d\r", 0))
	bw.String(fmt.Sprintf("PD:%6s\r", "******"))

	if f.Extended {
		var lines []string
		if author, ok := p.Metadata("author"); ok {
			lines = append(lines, "AU:"+author)
		}
		if copyright, ok := p.Metadata("copyright"); ok {
			lines = append(lines, "CP:"+copyright)
		}
		for _, t := range p.Threads() {
			lines = append(lines, fmt.Sprintf("TC:%s,%s,%s", t.Hex(), t.Description, t.CatalogNumber))
		}
		for i, line := range lines {
			// Each line needs its CR, and the header keeps one byte for 0x1A.
			if bw.Offset()+utf8.RuneCountInString(line)+1 > headerSize-1 {
				stitch.Logger().Warn("dst: extended header full", "dropped", len(lines)-i)
				break
			}
			bw.String(line + "\r")
		}
	}
	bw.Bytes(0x1A)
	bw.PadTo(headerSize, ' ')
}

func signed(v int) string {
	if v >= 0 {
		return fmt.Sprintf("+%5d", v)
	}
	return fmt.Sprintf("-%5d", -v)
}
