package stitch

import (
	"slices"
	"testing"
)

func blockCount(p *Pattern) int {
	return len(collectBlocks(p))
}

func TestAddPatternInsertsColorChange(t *testing.T) {
	red, blue := NewThread(0xFF0000), NewThread(0x0000FF)

	p := NewPattern()
	p.AddThread(red)
	p.StitchAbs(0, 0)
	p.End(0, 0)

	other := NewPattern()
	other.AddThread(blue)
	other.StitchAbs(5, 5)
	other.End(0, 0)
	other.SetMetadata("name", "badge")

	p.AddPattern(other, PlaceAt(100, 0))

	want := []CommandType{CmdStitch, CmdMatrixTranslate, CmdColorChange, CmdStitch, CmdEnd}
	if got := types(p); !slices.Equal(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if got := p.Threads(); !slices.Equal(got, []Thread{red, blue}) {
		t.Errorf("threads = %v", got)
	}
	if m := p.At(1); m.X != 100 || m.Y != 0 {
		t.Errorf("translate marker = %v", m)
	}
	if name, _ := p.Metadata("name"); name != "badge" {
		t.Errorf("metadata not merged: %q", name)
	}
	if p.ThreadCount() != blockCount(p) {
		t.Errorf("%d threads for %d color blocks", p.ThreadCount(), blockCount(p))
	}
}

func TestAddPatternSameThreadContinuesBlock(t *testing.T) {
	red := NewThread(0xFF0000)

	p := NewPattern()
	p.AddThread(red)
	p.StitchAbs(0, 0)

	other := NewPattern()
	other.AddThread(red)
	other.StitchAbs(1, 1)

	p.AddPattern(other)
	if p.CountColorChanges() != 0 {
		t.Error("equal join threads should not produce a color change")
	}
	if p.ThreadCount() != 1 || blockCount(p) != 1 {
		t.Errorf("threads = %d, blocks = %d; want 1 and 1", p.ThreadCount(), blockCount(p))
	}
}

func TestAddPatternAfterColorDelimiter(t *testing.T) {
	red, blue := NewThread(0xFF0000), NewThread(0x0000FF)

	p := NewPattern()
	p.AddBlock([]Point{{0, 0}, {10, 0}}, red)

	other := NewPattern()
	other.AddBlock([]Point{{0, 10}}, blue)

	p.AddPattern(other)
	if p.CountColorChanges() != 0 {
		t.Error("a pattern ending with a color break needs no join color change")
	}
	if p.ThreadCount() != 2 || blockCount(p) != 2 {
		t.Errorf("threads = %d, blocks = %d; want 2 and 2", p.ThreadCount(), blockCount(p))
	}
}

func TestAddPatternNeutralizesLeadingDelimiter(t *testing.T) {
	red, blue := NewThread(0xFF0000), NewThread(0x0000FF)

	p := NewPattern()
	p.AddThread(red)
	p.StitchAbs(0, 0)

	other := NewPattern()
	other.AddThread(blue)
	other.ColorChange(0, 0)
	other.StitchAbs(1, 1)

	p.AddPattern(other)
	if p.CountColorChanges() != 1 {
		t.Errorf("CountColorChanges() = %d, want 1", p.CountColorChanges())
	}
	if p.CountCommands(CmdNone) != 1 {
		t.Error("leading color change of the merged pattern should become CmdNone")
	}
	if p.ThreadCount() != blockCount(p) {
		t.Errorf("%d threads for %d color blocks", p.ThreadCount(), blockCount(p))
	}
}

func TestAddPatternPlacementMarkers(t *testing.T) {
	p := NewPattern()
	other := NewPattern()
	other.StitchAbs(1, 1)

	p.AddPattern(other, PlaceAt(1, 2), PlaceScaled(2, 3), PlaceRotated(45))
	want := []CommandType{CmdMatrixTranslate, CmdMatrixScale, CmdMatrixRotate, CmdStitch}
	if got := types(p); !slices.Equal(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if p.At(2).X != 45 {
		t.Errorf("rotate marker angle = %v", p.At(2).X)
	}
	if p.Position() != Pt(1, 1) {
		t.Errorf("cursor = %v, want (1, 1)", p.Position())
	}
}

func TestAddPatternSelf(t *testing.T) {
	p := NewPattern()
	p.AddThread(NewThread(0x112233))
	p.StitchAbs(1, 1)
	p.End(0, 0)

	p.AddPattern(p)
	if got := types(p); !slices.Equal(got, []CommandType{CmdStitch, CmdStitch, CmdEnd}) {
		t.Errorf("types = %v", got)
	}
}

func TestAddPatternNil(t *testing.T) {
	p := NewPattern()
	p.StitchAbs(1, 1)
	p.AddPattern(nil)
	if p.Len() != 1 {
		t.Error("nil merge should be a no-op")
	}
}

func TestFixColorCount(t *testing.T) {
	p := records(
		NewStitch(CmdStitch, 0, 0),
		NewStitch(CmdColorChange, 0, 0),
		NewStitch(CmdJump, 5, 5),
		NewStitch(CmdColorChange, 5, 5),
		NewStitch(CmdStitch, 6, 6),
	)
	p.FixColorCount()
	if p.ThreadCount() != 2 {
		t.Errorf("ThreadCount() = %d, want 2 for two stitching blocks", p.ThreadCount())
	}
	n := p.Len()
	p.FixColorCount()
	if p.ThreadCount() != 2 || p.Len() != n {
		t.Error("FixColorCount should be idempotent")
	}
}

func TestStablePattern(t *testing.T) {
	red, blue := NewThread(0xFF0000), NewThread(0x0000FF)
	p := records(
		NewStitch(CmdStitch, 0, 0),
		NewStitch(CmdJump, 5, 0),
		NewStitch(CmdStitch, 6, 0),
		NewStitch(CmdColorChange, 6, 0),
		NewStitch(CmdStitch, 7, 0),
	)
	p.AddThread(red)
	p.AddThread(blue)

	s := p.StablePattern()
	want := []CommandType{CmdColorBreak, CmdStitch, CmdSequenceBreak, CmdStitch, CmdColorBreak, CmdStitch}
	if got := types(s); !slices.Equal(got, want) {
		t.Errorf("types = %v, want %v", got, want)
	}
	if got := s.Threads(); !slices.Equal(got, []Thread{red, blue}) {
		t.Errorf("threads = %v", got)
	}
}
