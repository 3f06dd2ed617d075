// Package col reads and writes COL thread lists: a line with the thread
// count followed by one "index,red,green,blue" line per thread, CRLF
// terminated. A COL file carries no stitches.
package col

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/stitch"
)

func init() {
	stitch.RegisterFormat(stitch.Format{
		Name:       "col",
		Extensions: []string{".col"},
		Reader:     Format{},
		Writer:     Format{},
	})
}

// Format is the COL reader and writer.
type Format struct{}

// Capabilities declares a text format that stores the thread list verbatim.
func (Format) Capabilities() stitch.Capabilities {
	return stitch.Capabilities{Settings: stitch.DefaultSettings(), Text: true}
}

// Read adds the threads listed in r to p. The index column becomes the
// thread's catalog number. Reading stops at the first malformed line.
func (Format) Read(r io.Reader, p *stitch.Pattern) error {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return sc.Err()
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return fmt.Errorf("col: bad thread count: %w", err)
	}
	for i := 0; i < count && sc.Scan(); i++ {
		t, err := parseLine(sc.Text())
		if err != nil {
			stitch.Logger().Warn("col: stopped at malformed line", "line", i+2, "error", err)
			return nil
		}
		p.AddThread(t)
	}
	return sc.Err()
}

func parseLine(line string) (stitch.Thread, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 4 {
		return stitch.Thread{}, fmt.Errorf("col: want 4 fields, got %d", len(fields))
	}
	var rgb [3]uint32
	for i := range rgb {
		v, err := strconv.ParseUint(strings.TrimSpace(fields[i+1]), 10, 8)
		if err != nil {
			return stitch.Thread{}, fmt.Errorf("col: %w", err)
		}
		rgb[i] = uint32(v)
	}
	t := stitch.NewThread(rgb[0]<<16 | rgb[1]<<8 | rgb[2])
	t.CatalogNumber = strings.TrimSpace(fields[0])
	return t, nil
}

// Write writes the thread list of p.
func (Format) Write(w io.Writer, p *stitch.Pattern) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\r\n", p.ThreadCount())
	for i, t := range p.Threads() {
		fmt.Fprintf(bw, "%d,%d,%d,%d\r\n", i, t.Red(), t.Green(), t.Blue())
	}
	return bw.Flush()
}
