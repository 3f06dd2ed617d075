package stitch

import "iter"

// ColorBlock is a run of stitch records sewn with one thread.
// Stitches aliases the pattern's storage with its capacity clipped, so it
// must be treated as read-only and is invalidated by mutating the pattern.
type ColorBlock struct {
	Stitches []Stitch
	Thread   Thread
}

// ColorBlocks iterates over the color blocks of the pattern.
//
// A COLOR_BREAK ends a block without being included in it. A COLOR_CHANGE
// ends a block and is its last record. A NEEDLE_SET ends the current block
// and is the first record of the next one. Each yielded block takes the next
// thread from the thread list, or a filler thread once it is exhausted.
//
// The sequence is recomputed from the stitches every time it is ranged over.
func (p *Pattern) ColorBlocks() iter.Seq[ColorBlock] {
	return func(yield func(ColorBlock) bool) {
		threadIndex := 0
		start := 0
		emit := func(end int) bool {
			b := ColorBlock{
				Stitches: p.stitches[start:end:end],
				Thread:   p.ThreadOrFiller(threadIndex),
			}
			threadIndex++
			return yield(b)
		}

		for pos, s := range p.stitches {
			switch s.Command.Type {
			case CmdColorBreak:
				if start != pos && !emit(pos) {
					return
				}
				start = pos + 1
			case CmdColorChange:
				if !emit(pos + 1) {
					return
				}
				start = pos + 1
			case CmdNeedleSet:
				if start != pos {
					if !emit(pos) {
						return
					}
					start = pos
				}
			}
		}
		if start != len(p.stitches) {
			emit(len(p.stitches))
		}
	}
}

// StitchBlocks iterates over maximal runs of CmdStitch records together with
// the thread current at that point. The thread advances on every color
// change encountered between runs.
func (p *Pattern) StitchBlocks() iter.Seq[ColorBlock] {
	return func(yield func(ColorBlock) bool) {
		thread := p.ThreadOrFiller(0)
		threadIndex := 1
		start := -1
		for pos, s := range p.stitches {
			if s.Command.Type == CmdStitch {
				if start < 0 {
					start = pos
				}
				continue
			}
			if start >= 0 {
				if !yield(ColorBlock{Stitches: p.stitches[start:pos:pos], Thread: thread}) {
					return
				}
				start = -1
			}
			if s.Command.Type == CmdColorChange {
				thread = p.ThreadOrFiller(threadIndex)
				threadIndex++
			}
		}
		if start >= 0 {
			end := len(p.stitches)
			yield(ColorBlock{Stitches: p.stitches[start:end:end], Thread: thread})
		}
	}
}

// CommandBlocks iterates over maximal runs of records sharing one command type.
func (p *Pattern) CommandBlocks() iter.Seq[[]Stitch] {
	return func(yield func([]Stitch) bool) {
		if len(p.stitches) == 0 {
			return
		}
		start := 0
		for pos := 1; pos < len(p.stitches); pos++ {
			if p.stitches[pos].Command.Type != p.stitches[pos-1].Command.Type {
				if !yield(p.stitches[start:pos:pos]) {
					return
				}
				start = pos
			}
		}
		end := len(p.stitches)
		yield(p.stitches[start:end:end])
	}
}

// stitchingBlockCount returns the number of color blocks that contain at
// least one stitching record.
func (p *Pattern) stitchingBlockCount() int {
	n := 0
	open := true
	for _, s := range p.stitches {
		t := s.Command.Type
		switch {
		case t.IsStitching():
			if open {
				n++
				open = false
			}
		case t.IsColorDelimiter():
			open = true
		}
	}
	return n
}
