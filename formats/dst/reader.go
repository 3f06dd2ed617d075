package dst

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/stitch"
	"github.com/gogpu/stitch/internal/binio"
)

const headerSize = 512

// Read decodes a DST file into p. A truncated file yields the records read
// so far.
func (f Format) Read(r io.Reader, p *stitch.Pattern) error {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	readHeader(header[:n], p)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			stitch.Logger().Warn("dst: truncated header", "bytes", n)
			p.End(0, 0)
			return nil
		}
		return err
	}
	if err := readStitches(r, p); err != nil {
		return err
	}
	p.InterpolateTrims(f.trimCriteria())
	return nil
}

func readHeader(header []byte, p *stitch.Pattern) {
	if i := bytes.IndexByte(header, 0x1A); i >= 0 {
		header = header[:i]
	}
	for _, raw := range bytes.FieldsFunc(header, func(r rune) bool { return r == '\r' || r == '\n' }) {
		var line string
		if utf8.Valid(raw) {
			line = string(raw)
		} else {
			line = binio.DecodeLatin1(raw)
		}
		line = strings.TrimSpace(line)
		if len(line) <= 3 {
			continue
		}
		prefix, value := strings.TrimSpace(line[:2]), strings.TrimSpace(line[3:])
		switch prefix {
		case "LA":
			p.SetMetadata("name", value)
		case "AU":
			p.SetMetadata("author", value)
		case "CP":
			p.SetMetadata("copyright", value)
		case "TC":
			readThread(value, p)
		default:
			p.SetMetadata(prefix, value)
		}
	}
}

// readThread parses an extended header thread line "#rrggbb,description,catalog".
func readThread(value string, p *stitch.Pattern) {
	fields := strings.Split(value, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	t, err := stitch.ParseThread(fields[0])
	if err != nil {
		stitch.Logger().Warn("dst: bad thread color", "value", value, "error", err)
		return
	}
	if len(fields) > 1 {
		t.Description = fields[1]
	}
	if len(fields) > 2 {
		t.CatalogNumber = fields[2]
	}
	p.AddThread(t)
}

func readStitches(r io.Reader, p *stitch.Pattern) error {
	sequinMode := false
	var rec [3]byte
	for {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				stitch.Logger().Warn("dst: truncated stitch record")
			} else if !errors.Is(err, io.EOF) {
				return err
			}
			break
		}
		dx, dy := decodeRecord(rec)
		kind := classify(rec[2])
		if kind == kindEnd {
			break
		}
		switch kind {
		case kindColorChange:
			p.ColorChange(float64(dx), float64(dy))
		case kindSequinMode:
			p.SequinMode(float64(dx), float64(dy))
			sequinMode = !sequinMode
		case kindJump:
			if sequinMode {
				p.SequinEject(float64(dx), float64(dy))
			} else {
				p.Move(float64(dx), float64(dy))
			}
		default:
			p.Stitch(float64(dx), float64(dy))
		}
	}
	p.End(0, 0)
	return nil
}
