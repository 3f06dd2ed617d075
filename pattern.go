package stitch

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"sort"
)

// Pattern is an embroidery design: an ordered sequence of stitch records,
// the threads used by its color blocks, and string metadata.
//
// A Pattern is exclusively owned by its caller and is not safe for
// concurrent mutation. Copy returns a fully independent duplicate.
type Pattern struct {
	stitches []Stitch
	threads  []Thread
	metadata map[string]string

	// Cursor for relative appends.
	prevX, prevY float64
}

// NewPattern creates an empty pattern.
func NewPattern() *Pattern {
	return &Pattern{metadata: make(map[string]string)}
}

// Copy returns a deep copy of the pattern. Mutating the copy never affects p.
func (p *Pattern) Copy() *Pattern {
	return &Pattern{
		stitches: slices.Clone(p.stitches),
		threads:  slices.Clone(p.threads),
		metadata: maps.Clone(p.ensureMetadata()),
		prevX:    p.prevX,
		prevY:    p.prevY,
	}
}

// Clear removes all stitches, threads and metadata and resets the cursor.
func (p *Pattern) Clear() {
	p.stitches = nil
	p.threads = nil
	p.metadata = make(map[string]string)
	p.prevX, p.prevY = 0, 0
}

// Equal reports whether two patterns have the same stitches, threads and
// metadata. The cursor is not compared.
func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil {
		return false
	}
	return slices.Equal(p.stitches, other.stitches) &&
		slices.Equal(p.threads, other.threads) &&
		maps.Equal(p.ensureMetadata(), other.ensureMetadata())
}

func (p *Pattern) String() string {
	if name, ok := p.Metadata("name"); ok {
		return fmt.Sprintf("Pattern %s (commands: %3d, threads: %3d)", name, len(p.stitches), len(p.threads))
	}
	return fmt.Sprintf("Pattern (commands: %3d, threads: %3d)", len(p.stitches), len(p.threads))
}

func (p *Pattern) ensureMetadata() map[string]string {
	if p.metadata == nil {
		p.metadata = make(map[string]string)
	}
	return p.metadata
}

// Len returns the number of stitch records.
func (p *Pattern) Len() int { return len(p.stitches) }

// At returns the record at index i.
func (p *Pattern) At(i int) Stitch { return p.stitches[i] }

// Set replaces the record at index i.
func (p *Pattern) Set(i int, s Stitch) { p.stitches[i] = s }

// Stitches returns a copy of the stitch records.
func (p *Pattern) Stitches() []Stitch { return slices.Clone(p.stitches) }

// All iterates over the records with their positions.
func (p *Pattern) All() iter.Seq2[int, Stitch] {
	return func(yield func(int, Stitch) bool) {
		for i, s := range p.stitches {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Position returns the cursor used by relative appends.
func (p *Pattern) Position() Point { return Point{X: p.prevX, Y: p.prevY} }

// AddStitchAbsolute appends a record at the absolute position x, y and
// moves the cursor there.
func (p *Pattern) AddStitchAbsolute(cmd Command, x, y float64) {
	p.stitches = append(p.stitches, Stitch{X: x, Y: y, Command: cmd})
	p.prevX = x
	p.prevY = y
}

// AddStitchRelative appends a record displaced dx, dy from the cursor and
// moves the cursor there.
func (p *Pattern) AddStitchRelative(cmd Command, dx, dy float64) {
	p.AddStitchAbsolute(cmd, p.prevX+dx, p.prevY+dy)
}

// AddCommand appends a record without treating x, y as a location:
// the cursor is not updated.
func (p *Pattern) AddCommand(cmd Command, x, y float64) {
	p.stitches = append(p.stitches, Stitch{X: x, Y: y, Command: cmd})
}

// PrependCommand inserts a record at the start without moving the cursor.
func (p *Pattern) PrependCommand(cmd Command, x, y float64) {
	p.Insert(0, cmd, x, y)
}

// Insert inserts a record at index i. Indices past the end append.
func (p *Pattern) Insert(i int, cmd Command, x, y float64) {
	i = min(max(i, 0), len(p.stitches))
	p.stitches = slices.Insert(p.stitches, i, Stitch{X: x, Y: y, Command: cmd})
}

// InsertStitchRelative inserts a record displaced dx, dy from the record
// before index i. At index 0 the displacement is from the origin; at the end
// it behaves as AddStitchRelative. Negative indices count from the end.
// Out of range indices are ignored.
func (p *Pattern) InsertStitchRelative(i int, cmd Command, dx, dy float64) {
	if i < 0 {
		i += len(p.stitches)
	}
	switch {
	case i == 0:
		p.Insert(0, cmd, dx, dy)
	case i == len(p.stitches):
		p.AddStitchRelative(cmd, dx, dy)
	case i > 0 && i < len(p.stitches):
		prev := p.stitches[i-1]
		p.Insert(i, cmd, prev.X+dx, prev.Y+dy)
	}
}

// Move appends a jump displaced dx, dy from the cursor.
func (p *Pattern) Move(dx, dy float64) { p.AddStitchRelative(Cmd(CmdJump), dx, dy) }

// MoveAbs appends a jump to the absolute position x, y.
func (p *Pattern) MoveAbs(x, y float64) { p.AddStitchAbsolute(Cmd(CmdJump), x, y) }

// Stitch appends a stitch displaced dx, dy from the cursor.
func (p *Pattern) Stitch(dx, dy float64) { p.AddStitchRelative(Cmd(CmdStitch), dx, dy) }

// StitchAbs appends a stitch at the absolute position x, y.
func (p *Pattern) StitchAbs(x, y float64) { p.AddStitchAbsolute(Cmd(CmdStitch), x, y) }

// Stop appends a stop displaced dx, dy from the cursor.
func (p *Pattern) Stop(dx, dy float64) { p.AddStitchRelative(Cmd(CmdStop), dx, dy) }

// Trim appends a trim displaced dx, dy from the cursor.
func (p *Pattern) Trim(dx, dy float64) { p.AddStitchRelative(Cmd(CmdTrim), dx, dy) }

// ColorChange appends a color change displaced dx, dy from the cursor.
func (p *Pattern) ColorChange(dx, dy float64) { p.AddStitchRelative(Cmd(CmdColorChange), dx, dy) }

// NeedleChange appends a needle set for the 0-based needle.
func (p *Pattern) NeedleChange(needle int, dx, dy float64) {
	p.AddStitchRelative(Cmd(CmdNeedleSet).WithNeedle(needle), dx, dy)
}

// SequinEject appends a sequin eject displaced dx, dy from the cursor.
func (p *Pattern) SequinEject(dx, dy float64) { p.AddStitchRelative(Cmd(CmdSequinEject), dx, dy) }

// SequinMode appends a sequin mode toggle displaced dx, dy from the cursor.
func (p *Pattern) SequinMode(dx, dy float64) { p.AddStitchRelative(Cmd(CmdSequinMode), dx, dy) }

// End appends the terminal end command.
func (p *Pattern) End(dx, dy float64) { p.AddStitchRelative(Cmd(CmdEnd), dx, dy) }

// AddThread appends a thread to the thread list. Threads have no effect on
// the stitch sequence and may be added at any point.
func (p *Pattern) AddThread(t Thread) { p.threads = append(p.threads, t) }

// Threads returns a copy of the thread list.
func (p *Pattern) Threads() []Thread { return slices.Clone(p.threads) }

// ThreadCount returns the length of the thread list.
func (p *Pattern) ThreadCount() int { return len(p.threads) }

// Thread returns the thread at index i. It panics if i is out of range.
func (p *Pattern) Thread(i int) Thread { return p.threads[i] }

// ThreadOrFiller returns the thread at index i, or a random filler thread
// when the thread list is exhausted.
func (p *Pattern) ThreadOrFiller(i int) Thread {
	if i < 0 || i >= len(p.threads) {
		return RandomThread()
	}
	return p.threads[i]
}

// UniqueThreads returns the distinct threads in first-seen order.
func (p *Pattern) UniqueThreads() []Thread {
	seen := make(map[Thread]bool, len(p.threads))
	var out []Thread
	for _, t := range p.threads {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// SingletonThreads returns the thread list with runs of consecutive equal
// threads collapsed to one entry.
func (p *Pattern) SingletonThreads() []Thread {
	return slices.Compact(slices.Clone(p.threads))
}

// SetMetadata stores a metadata value.
func (p *Pattern) SetMetadata(key, value string) { p.ensureMetadata()[key] = value }

// Metadata returns a metadata value.
func (p *Pattern) Metadata(key string) (string, bool) {
	v, ok := p.metadata[key]
	return v, ok
}

// MetadataKeys returns the metadata keys in sorted order.
func (p *Pattern) MetadataKeys() []string {
	keys := make([]string, 0, len(p.metadata))
	for k := range p.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bounds returns the extent of all records as min x, min y, max x, max y.
// An empty pattern returns (+Inf, +Inf, -Inf, -Inf); callers must treat that
// as "no bounds" before using it for scaling.
func (p *Pattern) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range p.stitches {
		minX = min(minX, s.X)
		minY = min(minY, s.Y)
		maxX = max(maxX, s.X)
		maxY = max(maxY, s.Y)
	}
	return minX, minY, maxX, maxY
}

// CountCommands returns the number of records of type t.
func (p *Pattern) CountCommands(t CommandType) int {
	n := 0
	for _, s := range p.stitches {
		if s.Command.Type == t {
			n++
		}
	}
	return n
}

// CountColorChanges returns the number of color change records.
func (p *Pattern) CountColorChanges() int { return p.CountCommands(CmdColorChange) }

// CountNeedleSets returns the number of needle set records.
func (p *Pattern) CountNeedleSets() int { return p.CountCommands(CmdNeedleSet) }

// MatchCommands iterates over the records of type t.
func (p *Pattern) MatchCommands(t CommandType) iter.Seq[Stitch] {
	return func(yield func(Stitch) bool) {
		for _, s := range p.stitches {
			if s.Command.Type == t && !yield(s) {
				return
			}
		}
	}
}

// Translate moves every record by dx, dy.
func (p *Pattern) Translate(dx, dy float64) {
	for i := range p.stitches {
		p.stitches[i].X += dx
		p.stitches[i].Y += dy
	}
}

// Transform applies m to every record position.
func (p *Pattern) Transform(m Matrix) {
	for i := range p.stitches {
		s := &p.stitches[i]
		s.X, s.Y = m.Apply(s.X, s.Y)
	}
}

// MoveCenterToOrigin translates the pattern so the center of its bounds,
// rounded to whole units, is at the origin. Empty patterns are unchanged.
func (p *Pattern) MoveCenterToOrigin() {
	if len(p.stitches) == 0 {
		return
	}
	minX, minY, maxX, maxY := p.Bounds()
	cx := math.RoundToEven((minX + maxX) / 2)
	cy := math.RoundToEven((minY + maxY) / 2)
	p.Translate(-cx, -cy)
}
