package stitch

import (
	"math"
	"slices"
)

// InterpolateDuplicateColorAsStop rewrites color boundaries between two
// blocks sewn with equal threads as STOP commands and removes the duplicate
// thread. Machines that pause on STOP and continue with the same needle
// express "same color again" this way.
func (p *Pattern) InterpolateDuplicateColorAsStop() {
	threadIndex := 0
	open := true
	lastChange := -1
	for pos, s := range p.stitches {
		t := s.Command.Type
		switch {
		case t.IsStitching():
			if !open {
				continue
			}
			open = false
			if threadIndex >= len(p.threads) {
				// Threads that do not exist cannot repeat.
				return
			}
			if lastChange >= 0 && threadIndex != 0 && p.threads[threadIndex-1] == p.threads[threadIndex] {
				p.threads = slices.Delete(p.threads, threadIndex, threadIndex+1)
				p.stitches[lastChange].Command = Cmd(CmdStop)
			} else {
				threadIndex++
			}
		case t.IsColorDelimiter():
			open = true
			lastChange = pos
		}
	}
}

// InterpolateStopAsDuplicateColor is the inverse of
// InterpolateDuplicateColorAsStop: every STOP becomes a thread change of
// type change (usually CmdColorChange) and the current thread is duplicated
// in the thread list, for writers that cannot express STOP.
func (p *Pattern) InterpolateStopAsDuplicateColor(change CommandType) {
	threadIndex := 0
	for pos, s := range p.stitches {
		t := s.Command.Type
		switch {
		case t.IsColorDelimiter():
			threadIndex++
		case t == CmdStop:
			if threadIndex >= len(p.threads) {
				// No color to duplicate.
				return
			}
			p.threads = slices.Insert(p.threads, threadIndex, p.threads[threadIndex])
			p.stitches[pos].Command = Cmd(change)
			threadIndex++
		}
	}
}

// InterpolateFrameEject collapses every "jumps, STOP, jumps" span into one
// FRAME_EJECT positioned at the STOP. A span also collapses when it reaches
// the end of the pattern (or its END command) after the STOP.
//
// The scan is a single pass with four states: 0 idle, 1 in the first jump
// run, 2 stop seen, 3 second jump run seen. A stitching or color delimiting
// command commits the collapse from state 3 and resets to 0.
func (p *Pattern) InterpolateFrameEject() {
	out := make([]Stitch, 0, len(p.stitches))
	var span []Stitch
	var stop Stitch
	mode := 0

	commit := func() {
		out = append(out, NewStitch(CmdFrameEject, stop.X, stop.Y))
		span = span[:0]
	}
	flush := func() {
		out = append(out, span...)
		span = span[:0]
	}

	for _, s := range p.stitches {
		t := s.Command.Type
		switch {
		case t.IsStitching() || t.IsColorDelimiter():
			if mode == 3 {
				commit()
			} else {
				flush()
			}
			mode = 0
			out = append(out, s)
			continue
		case t == CmdEnd:
			if mode >= 2 {
				commit()
			} else {
				flush()
			}
			mode = 0
			out = append(out, s)
			continue
		case t == CmdJump:
			switch mode {
			case 0:
				mode = 1
			case 2:
				mode = 3
			}
		case t == CmdStop:
			if mode == 1 {
				mode = 2
				stop = s
			}
		}
		if mode == 0 {
			out = append(out, s)
		} else {
			span = append(span, s)
		}
	}
	if mode >= 2 {
		commit()
	} else {
		flush()
	}
	p.stitches = out
}

// TrimCriteria configures InterpolateTrims.
type TrimCriteria struct {
	// Jumps is the jump run length that requires a trim. Zero disables it.
	Jumps int
	// Distance is the cumulative per-axis jump displacement that requires a
	// trim once exceeded. Zero disables it.
	Distance float64
	// Clipping deletes jump runs whose net displacement is exactly zero,
	// together with any trim inserted for them.
	Clipping bool
}

// InterpolateTrims inserts a TRIM before every untrimmed jump run that meets
// the criteria. The pattern counts as trimmed at its start and after a
// COLOR_CHANGE, NEEDLE_SET or TRIM, and as untrimmed after a STITCH or
// SEQUIN_EJECT. A jump run is a maximal sequence of consecutive JUMPs; the
// inserted TRIM sits at the position of the record before the run.
//
// Running it again with the same criteria on its own output changes nothing.
func (p *Pattern) InterpolateTrims(c TrimCriteria) {
	out := make([]Stitch, 0, len(p.stitches))
	var (
		run           []Stitch
		runDX, runDY  float64
		runNeedsTrim  bool
		trimmedBefore bool
		trimmed       = true
		x, y          float64
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		if c.Clipping && runDX == 0 && runDY == 0 {
			trimmed = trimmedBefore
		} else {
			if runNeedsTrim {
				var tx, ty float64
				if n := len(out); n > 0 {
					tx, ty = out[n-1].X, out[n-1].Y
				}
				out = append(out, NewStitch(CmdTrim, tx, ty))
			}
			out = append(out, run...)
		}
		run = run[:0]
		runDX, runDY = 0, 0
		runNeedsTrim = false
	}

	for _, s := range p.stitches {
		dx, dy := s.X-x, s.Y-y
		x, y = s.X, s.Y
		t := s.Command.Type
		if t != CmdJump {
			flush()
		}
		switch t {
		case CmdStitch, CmdSequinEject:
			trimmed = false
		case CmdColorChange, CmdNeedleSet, CmdTrim:
			trimmed = true
		case CmdJump:
			if len(run) == 0 {
				trimmedBefore = trimmed
			}
			run = append(run, s)
			runDX += dx
			runDY += dy
			if !trimmed && c.requiresTrim(len(run), runDX, runDY) {
				runNeedsTrim = true
				trimmed = true
			}
			continue
		}
		out = append(out, s)
	}
	flush()
	p.stitches = out
}

func (c TrimCriteria) requiresTrim(count int, dx, dy float64) bool {
	if c.Jumps > 0 && count >= c.Jumps {
		return true
	}
	return c.Distance > 0 && (math.Abs(dx) > c.Distance || math.Abs(dy) > c.Distance)
}

// MergedJumps returns a new pattern in which every jump run is replaced by
// a single STITCH_BREAK, leaving normalization to regenerate the travel.
func (p *Pattern) MergedJumps() *Pattern {
	out := NewPattern()
	inBreak := false
	for _, s := range p.stitches {
		if s.Command.Type == CmdJump {
			if !inBreak {
				out.AddCommand(Cmd(CmdStitchBreak), 0, 0)
				inBreak = true
			}
			continue
		}
		inBreak = false
		out.AddStitchAbsolute(s.Command, s.X, s.Y)
	}
	out.threads = slices.Clone(p.threads)
	out.metadata = p.copyMetadata()
	return out
}

// TrimInterpolated returns a new pattern in which every untrimmed jump run
// is reduced to its final jump, preceded by a TRIM when the run had at least
// jumps jumps. Trimmed runs are copied unchanged.
func (p *Pattern) TrimInterpolated(jumps int) *Pattern {
	out := NewPattern()
	trimmed := true
	for i := 0; i < len(p.stitches); i++ {
		s := p.stitches[i]
		switch s.Command.Type {
		case CmdStitch, CmdSequinEject:
			trimmed = false
		case CmdColorChange, CmdNeedleSet, CmdTrim:
			trimmed = true
		}
		if trimmed || s.Command.Type != CmdJump {
			out.AddStitchAbsolute(s.Command, s.X, s.Y)
			continue
		}
		end := i
		for end+1 < len(p.stitches) && p.stitches[end+1].Command.Type == CmdJump {
			end++
		}
		if end-i+1 >= jumps {
			out.Trim(0, 0)
		}
		last := p.stitches[end]
		out.AddStitchAbsolute(last.Command, last.X, last.Y)
		i = end
	}
	out.threads = slices.Clone(p.threads)
	out.metadata = p.copyMetadata()
	return out
}

func (p *Pattern) copyMetadata() map[string]string {
	m := make(map[string]string, len(p.metadata))
	for k, v := range p.metadata {
		m[k] = v
	}
	return m
}
