package stitch

import "slices"

// MergeOption configures AddPattern.
// Use functional options to place the merged pattern.
//
// Example:
//
//	p.AddPattern(other, stitch.PlaceAt(100, 0), stitch.PlaceRotated(90))
type MergeOption func(*mergeOptions)

type mergeOptions struct {
	translate *Point
	scale     *Point
	rotate    *float64
}

// PlaceAt places the merged pattern displaced by dx, dy.
func PlaceAt(dx, dy float64) MergeOption {
	return func(o *mergeOptions) { o.translate = &Point{X: dx, Y: dy} }
}

// PlaceScaled scales the merged pattern by sx, sy.
func PlaceScaled(sx, sy float64) MergeOption {
	return func(o *mergeOptions) { o.scale = &Point{X: sx, Y: sy} }
}

// PlaceRotated rotates the merged pattern by the given degrees.
func PlaceRotated(degrees float64) MergeOption {
	return func(o *mergeOptions) { o.rotate = &degrees }
}

// FixColorCount pads the thread list with filler threads until there is a
// thread for every color block that contains stitching. It never removes
// threads or stitches.
func (p *Pattern) FixColorCount() {
	need := p.stitchingBlockCount()
	for len(p.threads) < need {
		p.AddThread(p.ThreadOrFiller(len(p.threads)))
	}
}

// AddPattern merges other onto the end of p.
//
// A trailing END on p is removed. Placement options are recorded as matrix
// marker commands at the merge point; they are applied by the consumer
// (normalization), not here. When other's first thread equals p's last
// thread the duplicate is elided so the merge continues the same color
// block; otherwise a color change is inserted at the join, unless p already
// ends with a color delimiter. In both cases a leading color delimiter in
// other's stitches is neutralized to CmdNone so the merge never introduces
// an empty color block.
func (p *Pattern) AddPattern(other *Pattern, opts ...MergeOption) {
	if other == nil {
		return
	}
	var o mergeOptions
	for _, opt := range opts {
		opt(&o)
	}

	// other may be p itself.
	stitches := slices.Clone(other.stitches)
	threads := slices.Clone(other.threads)
	metadata := other.ensureMetadata()

	if n := len(p.stitches); n > 0 && p.stitches[n-1].Command.Type == CmdEnd {
		p.stitches = p.stitches[:n-1]
	}
	// A trailing color delimiter already starts the block other joins.
	open := false
	if n := len(p.stitches); n > 0 {
		open = p.stitches[n-1].Command.Type.IsColorDelimiter()
	}
	if o.translate != nil {
		p.AddCommand(Cmd(CmdMatrixTranslate), o.translate.X, o.translate.Y)
	}
	if o.scale != nil {
		p.AddCommand(Cmd(CmdMatrixScale), o.scale.X, o.scale.Y)
	}
	if o.rotate != nil {
		p.AddCommand(Cmd(CmdMatrixRotate), *o.rotate, 0)
	}

	p.FixColorCount()

	switch {
	case len(threads) == 0:
	case !open && len(p.threads) > 0 && threads[0] == p.threads[len(p.threads)-1]:
		p.threads = append(p.threads, threads[1:]...)
	default:
		if !open && len(p.threads) > 0 {
			p.ColorChange(0, 0)
		}
		p.threads = append(p.threads, threads...)
	}

	join := len(p.stitches)
	p.stitches = append(p.stitches, stitches...)
	for i := join; i < len(p.stitches); i++ {
		t := p.stitches[i].Command.Type
		if t.IsStitching() {
			break
		}
		if t.IsColorDelimiter() {
			p.stitches[i].Command = Cmd(CmdNone)
		}
	}
	if n := len(p.stitches); n > join {
		p.prevX, p.prevY = p.stitches[n-1].X, p.stitches[n-1].Y
	}

	for k, v := range metadata {
		p.SetMetadata(k, v)
	}
}

// AddBlock appends points as stitches sewn with thread, closed by a
// color break.
func (p *Pattern) AddBlock(points []Point, thread Thread) {
	p.AddThread(thread)
	for _, pt := range points {
		p.StitchAbs(pt.X, pt.Y)
	}
	p.AddCommand(Cmd(CmdColorBreak), 0, 0)
}

// AddStitchBlock appends a block produced by StitchBlocks or ColorBlocks.
// The block's thread is added unless it equals the current last thread, in
// which case the block is separated by a sequence break instead of a color
// break.
func (p *Pattern) AddStitchBlock(b ColorBlock) {
	if len(p.threads) == 0 || b.Thread != p.threads[len(p.threads)-1] {
		p.AddThread(b.Thread)
		p.AddStitchRelative(Cmd(CmdColorBreak), 0, 0)
	} else {
		p.AddStitchRelative(Cmd(CmdSequenceBreak), 0, 0)
	}
	for _, s := range b.Stitches {
		p.AddStitchAbsolute(s.Command, s.X, s.Y)
	}
}

// StablePattern returns a new pattern rebuilt from the stitch blocks of p:
// only stitches survive, grouped by thread with explicit breaks. Middle-level
// commands are left for normalization to regenerate.
func (p *Pattern) StablePattern() *Pattern {
	out := NewPattern()
	for b := range p.StitchBlocks() {
		out.AddStitchBlock(b)
	}
	for k, v := range p.metadata {
		out.SetMetadata(k, v)
	}
	return out
}
