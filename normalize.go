package stitch

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// MetadataDropped is the metadata key under which normalization records the
// commands it removed because the target cannot express them, formatted as
// "fast=1,slow=2".
const MetadataDropped = "normalize.dropped"

// Normalized returns a copy of p normalized against DefaultSettings with
// opts applied. p is not modified.
func (p *Pattern) Normalized(opts ...Option) (*Pattern, error) {
	return Normalize(p, NewSettings(opts...))
}

// Normalize produces a new pattern that a writer declaring s can emit.
// The source pattern is never modified.
//
// The pipeline runs in a fixed order for every record: the settings
// transform (and any matrix marker commands seen so far) is applied, the
// result is rounded if requested, and moves longer than the limits are split
// into equal same-kind segments whose sum is exactly the original
// displacement. Thread changes are regenerated from the color blocks of p
// using s.ThreadChangeCommand, with a TRIM before each when s.ExplicitTrim
// is set. Sequins follow s.SequinContingency. STOP, FRAME_EJECT and speed
// commands the target cannot express are substituted or dropped; drops are
// counted under MetadataDropped. The output always ends with exactly one END.
//
// Trim interpolation is not part of normalization; run InterpolateTrims on
// the source first when jump runs should become trims.
//
// A record whose coordinates are not finite after transformation yields a
// *CoordinateError.
func Normalize(p *Pattern, s Settings) (*Pattern, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := &normalizer{
		s:        s,
		src:      p,
		out:      NewPattern(),
		m:        s.matrix(),
		approach: true,
		trimmed:  true,
		needles:  make(map[int]int),
		dropped:  make(map[CommandType]int),
	}
	n.stitchLimit, n.jumpLimit = s.MaxStitch, s.MaxJump
	if s.Round {
		n.stitchLimit, n.jumpLimit = math.Floor(s.MaxStitch), math.Floor(s.MaxJump)
	}

	block := 0
	blockEmpty := true
	for i, st := range p.stitches {
		switch st.Command.Type {
		case CmdColorBreak:
			if !blockEmpty {
				block++
			}
			blockEmpty = true
		case CmdNeedleSet:
			if !blockEmpty {
				block++
			}
			blockEmpty = false
			if needle, ok := st.Command.Needle(); ok {
				n.needles[block] = needle
			}
		default:
			blockEmpty = false
		}
		if err := n.record(i, st, block); err != nil {
			return nil, err
		}
		if st.Command.Type == CmdColorChange {
			block++
			blockEmpty = true
		}
	}
	n.add(Cmd(CmdEnd), n.x, n.y)

	n.out.metadata = p.copyMetadata()
	if len(n.dropped) > 0 {
		n.out.SetMetadata(MetadataDropped, n.droppedSummary())
	}
	Logger().Debug("stitch: normalized pattern",
		"in", len(p.stitches), "out", len(n.out.stitches),
		"threads", len(n.out.threads), "dropped", len(n.dropped))
	return n.out, nil
}

type normalizer struct {
	s   Settings
	src *Pattern
	out *Pattern
	m   Matrix

	stitchLimit, jumpLimit float64

	// Needle position in output coordinates.
	x, y float64

	started    bool
	block      int
	changes    int
	needles    map[int]int
	trimmed    bool
	approach   bool
	needTrim   bool
	sequinMode bool
	dropped    map[CommandType]int
}

func (n *normalizer) record(i int, st Stitch, block int) error {
	t := st.Command.Type
	if !isFinite(st.X) || !isFinite(st.Y) {
		return &CoordinateError{Index: i, Command: st.Command, X: st.X, Y: st.Y}
	}
	switch t {
	case CmdMatrixTranslate:
		n.m = n.m.PreTranslate(st.X, st.Y)
		return nil
	case CmdMatrixScale:
		n.m = n.m.PreScale(st.X, st.Y)
		return nil
	case CmdMatrixRotate:
		n.m = n.m.PreRotate(st.X)
		return nil
	}

	x, y := n.m.Apply(st.X, st.Y)
	if !isFinite(x) || !isFinite(y) {
		return &CoordinateError{Index: i, Command: st.Command, X: x, Y: y}
	}
	if n.s.Round {
		x, y = roundHalfUp(x), roundHalfUp(y)
	}

	switch t {
	case CmdStitch, CmdSewTo:
		n.stitch(x, y, false, block)
	case CmdNeedleAt:
		n.stitch(x, y, true, block)
	case CmdJump:
		n.split(x, y, n.jumpLimit, Cmd(CmdJump), Cmd(CmdJump))
		n.approach = false
	case CmdTrim:
		n.add(Cmd(CmdTrim), n.x, n.y)
		n.trimmed = true
	case CmdStop:
		n.stop()
	case CmdColorChange, CmdColorBreak, CmdNeedleSet, CmdStitchBreak:
		n.approach = true
	case CmdSequenceBreak:
		n.approach = true
		n.needTrim = true
	case CmdSequinMode:
		if n.s.SequinContingency == SequinUtilize {
			n.add(Cmd(CmdSequinMode), n.x, n.y)
			n.sequinMode = !n.sequinMode
		}
	case CmdSequinEject:
		n.sequin(x, y, block)
	case CmdSlow, CmdFast:
		if n.s.WritesSpeeds {
			n.add(Cmd(t), n.x, n.y)
		} else {
			n.dropped[t]++
		}
	case CmdFrameEject:
		n.split(x, y, n.jumpLimit, Cmd(CmdJump), Cmd(CmdJump))
		if n.s.FrameEject {
			n.out.stitches[len(n.out.stitches)-1].Command = Cmd(CmdFrameEject)
		} else {
			n.stop()
		}
	case CmdEnd, CmdNone:
	default:
		n.dropped[t]++
	}
	return nil
}

// stitch emits a stitching record, preceded by the thread change, trim and
// travel it requires. A needle move jumps over distances a stitch cannot
// cover instead of splitting them into stitches.
func (n *normalizer) stitch(x, y float64, needle bool, block int) {
	switch {
	case !n.started:
		n.started = true
		n.block = block
		n.out.AddThread(n.src.ThreadOrFiller(block))
		if n.s.ThreadChangeCommand == CmdNeedleSet {
			n.add(Cmd(CmdNeedleSet).WithNeedle(n.needleFor(block)), n.x, n.y)
		}
	case block != n.block:
		n.block = block
		n.threadChange(n.src.ThreadOrFiller(block), n.needleFor(block))
		n.approach = true
	}
	if n.needTrim {
		if !n.trimmed {
			n.add(Cmd(CmdTrim), n.x, n.y)
			n.trimmed = true
		}
		n.needTrim = false
	}
	if n.approach {
		n.travel(x, y)
		n.approach = false
	}
	if needle && max(math.Abs(x-n.x), math.Abs(y-n.y)) > n.stitchLimit {
		n.split(x, y, n.jumpLimit, Cmd(CmdJump), Cmd(CmdJump))
	}
	n.split(x, y, n.stitchLimit, Cmd(CmdStitch), Cmd(CmdStitch))
	n.trimmed = false
}

func (n *normalizer) sequin(x, y float64, block int) {
	switch n.s.SequinContingency {
	case SequinUtilize:
		n.split(x, y, n.stitchLimit, Cmd(CmdJump), Cmd(CmdSequinEject))
		n.trimmed = false
	case SequinJump:
		n.split(x, y, n.jumpLimit, Cmd(CmdJump), Cmd(CmdJump))
	case SequinStitch:
		n.stitch(x, y, false, block)
	case SequinRemove:
	}
}

// stop emits a STOP, or a thread change to a duplicate of the current thread
// when the target cannot express STOP.
func (n *normalizer) stop() {
	if n.s.Stop {
		n.add(Cmd(CmdStop), n.x, n.y)
		return
	}
	if len(n.out.threads) == 0 {
		n.dropped[CmdStop]++
		return
	}
	n.threadChange(n.out.threads[len(n.out.threads)-1], n.nextNeedle())
}

func (n *normalizer) threadChange(t Thread, needle int) {
	if n.s.ExplicitTrim && !n.trimmed {
		n.add(Cmd(CmdTrim), n.x, n.y)
	}
	cmd := Cmd(n.s.ThreadChangeCommand)
	if n.s.ThreadChangeCommand == CmdNeedleSet {
		cmd = cmd.WithNeedle(needle)
	}
	n.add(cmd, n.x, n.y)
	n.out.AddThread(t)
	n.trimmed = true
}

func (n *normalizer) needleFor(block int) int {
	if needle, ok := n.needles[block]; ok {
		n.changes++
		return needle
	}
	return n.nextNeedle()
}

func (n *normalizer) nextNeedle() int {
	needle := n.changes % max(n.s.NeedleCount, 1)
	n.changes++
	return needle
}

// travel moves the needle towards x, y with jumps. Unless FullJump is set,
// the last jump segment is left to the following stitch when that segment
// is within the stitch limit.
func (n *normalizer) travel(x, y float64) {
	d := max(math.Abs(x-n.x), math.Abs(y-n.y))
	if d == 0 {
		return
	}
	steps := splitSteps(d, n.jumpLimit)
	if !n.s.FullJump && d/float64(steps) <= n.stitchLimit {
		n.segments(x, y, steps, Cmd(CmdJump), Cmd(CmdJump), steps-1)
		return
	}
	n.segments(x, y, steps, Cmd(CmdJump), Cmd(CmdJump), steps)
}

// split moves the needle to x, y in equal segments no longer than limit on
// either axis. Intermediate records use mid, the final record uses last and
// lands exactly on x, y.
func (n *normalizer) split(x, y, limit float64, mid, last Command) {
	d := max(math.Abs(x-n.x), math.Abs(y-n.y))
	steps := splitSteps(d, limit)
	n.segments(x, y, steps, mid, last, steps)
}

func (n *normalizer) segments(x, y float64, steps int, mid, last Command, emit int) {
	fromX, fromY := n.x, n.y
	dx, dy := x-fromX, y-fromY
	for i := 1; i <= emit; i++ {
		if i == steps {
			n.add(last, x, y)
			return
		}
		px := fromX + dx*float64(i)/float64(steps)
		py := fromY + dy*float64(i)/float64(steps)
		if n.s.Round {
			px, py = roundHalfUp(px), roundHalfUp(py)
		}
		n.add(mid, px, py)
	}
}

func (n *normalizer) add(cmd Command, x, y float64) {
	n.out.AddStitchAbsolute(cmd, x, y)
	n.x, n.y = x, y
}

func (n *normalizer) droppedSummary() string {
	parts := make([]string, 0, len(n.dropped))
	for t, count := range n.dropped {
		parts = append(parts, fmt.Sprintf("%s=%d", t, count))
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

// splitSteps returns the number of equal segments needed to cover d with
// segments no longer than limit.
func splitSteps(d, limit float64) int {
	if d <= limit || math.IsInf(limit, 1) {
		return 1
	}
	return int(math.Ceil(d / limit))
}

// roundHalfUp rounds to the nearest integer, halves up. It commutes with
// integer shifts: equal segments no longer than an integer limit stay within
// it after rounding their endpoints.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
