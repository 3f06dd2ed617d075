// Package jsonfmt stores patterns as JSON, optionally inside a zstd frame.
//
// The document has three members: "threadlist" (thread objects),
// "stitches" ([x, y, "command"] triples, the command in the textual form
// of stitch.Command) and "extras" (metadata). Patterns are stored
// verbatim; writing does not normalize.
package jsonfmt

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/stitch"
)

func init() {
	stitch.RegisterFormat(stitch.Format{
		Name:       "json",
		Extensions: []string{".json"},
		Reader:     Format{},
		Writer:     Format{},
	})
	stitch.RegisterFormat(stitch.Format{
		Name:       "json.zst",
		Extensions: []string{".zst"},
		Reader:     Format{},
		Writer:     Format{Zstd: true},
	})
}

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Format is the JSON reader and writer. Reading detects a zstd frame by its
// magic number regardless of Zstd.
type Format struct {
	// Zstd wraps the written document in a zstd frame.
	Zstd bool
}

type document struct {
	Threads  []thread          `json:"threadlist"`
	Stitches []record          `json:"stitches"`
	Extras   map[string]string `json:"extras"`
}

type thread struct {
	Color         uint32 `json:"color"`
	Description   string `json:"description"`
	CatalogNumber string `json:"catalog_number"`
	Details       string `json:"details"`
	Brand         string `json:"brand"`
	Chart         string `json:"chart"`
	Weight        string `json:"weight"`
}

// record is a stitch encoded as a [x, y, "command"] array.
type record struct {
	X, Y    float64
	Command string
}

func (r record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.X, r.Y, r.Command})
}

func (r *record) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("jsonfmt: stitch has %d elements, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.X); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &r.Y); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &r.Command)
}

// Capabilities declares a verbatim text format.
func (f Format) Capabilities() stitch.Capabilities {
	return stitch.Capabilities{Settings: stitch.DefaultSettings(), Text: !f.Zstd}
}

// Read decodes a JSON document, plain or zstd framed, into p. A stitch
// whose command cannot be parsed ends the stitch list there.
func (f Format) Read(r io.Reader, p *stitch.Pattern) error {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, _ := br.Peek(len(zstdMagic)); bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("jsonfmt: zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	var doc document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return fmt.Errorf("jsonfmt: %w", err)
	}
	for _, t := range doc.Threads {
		p.AddThread(stitch.Thread{
			Color:         t.Color & 0xFFFFFF,
			Description:   t.Description,
			CatalogNumber: t.CatalogNumber,
			Details:       t.Details,
			Brand:         t.Brand,
			Chart:         t.Chart,
			Weight:        t.Weight,
		})
	}
	for i, s := range doc.Stitches {
		cmd, err := stitch.ParseCommand(s.Command)
		if err != nil {
			stitch.Logger().Warn("jsonfmt: stopped at unknown command", "index", i, "error", err)
			break
		}
		p.AddStitchAbsolute(cmd, s.X, s.Y)
	}
	for k, v := range doc.Extras {
		p.SetMetadata(k, v)
	}
	return nil
}

// Write encodes p as JSON, in a zstd frame when f.Zstd is set.
func (f Format) Write(w io.Writer, p *stitch.Pattern) error {
	doc := document{
		Threads:  make([]thread, 0, p.ThreadCount()),
		Stitches: make([]record, 0, p.Len()),
		Extras:   make(map[string]string),
	}
	for _, t := range p.Threads() {
		doc.Threads = append(doc.Threads, thread{
			Color:         t.Color,
			Description:   t.Description,
			CatalogNumber: t.CatalogNumber,
			Details:       t.Details,
			Brand:         t.Brand,
			Chart:         t.Chart,
			Weight:        t.Weight,
		})
	}
	for _, s := range p.All() {
		doc.Stitches = append(doc.Stitches, record{X: s.X, Y: s.Y, Command: s.Command.String()})
	}
	for _, k := range p.MetadataKeys() {
		doc.Extras[k], _ = p.Metadata(k)
	}

	if !f.Zstd {
		return json.NewEncoder(w).Encode(doc)
	}
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return fmt.Errorf("jsonfmt: zstd: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(doc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
