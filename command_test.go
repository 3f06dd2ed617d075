package stitch

import (
	"errors"
	"testing"
)

func TestCommandPackUnpack(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want uint32
	}{
		{"plain stitch", Cmd(CmdStitch), 0x00000000},
		{"plain end", Cmd(CmdEnd), 0x00000004},
		{"needle set n0", Cmd(CmdNeedleSet).WithNeedle(0), 0x00010009},
		{"needle set n4", Cmd(CmdNeedleSet).WithNeedle(4), 0x00050009},
		{"thread and order", Cmd(CmdNeedleAt).WithThread(2).WithOrder(0), 0x010003B1},
		{"none", Cmd(CmdNone), 0x000000FF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Pack(); got != tt.want {
				t.Errorf("Pack() = %#08x, want %#08x", got, tt.want)
			}
			if got := Unpack(tt.want); got != tt.cmd {
				t.Errorf("Unpack(%#08x) = %v, want %v", tt.want, got, tt.cmd)
			}
		})
	}
}

func TestCommandAuxFields(t *testing.T) {
	c := Cmd(CmdNeedleSet)
	if _, ok := c.Needle(); ok {
		t.Error("plain command should have no needle")
	}
	c = c.WithNeedle(3)
	if n, ok := c.Needle(); !ok || n != 3 {
		t.Errorf("Needle() = %d, %v; want 3, true", n, ok)
	}
	c = c.WithNeedle(-1)
	if _, ok := c.Needle(); ok {
		t.Error("negative index should clear the needle")
	}
	if c != Cmd(CmdNeedleSet) {
		t.Errorf("cleared command %v differs from plain", c)
	}
}

func TestCommandAuxFieldsClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{MaxAuxIndex, MaxAuxIndex},
		{255, MaxAuxIndex},
		{256, MaxAuxIndex},
		{1 << 20, MaxAuxIndex},
	}
	for _, tt := range tests {
		c := Cmd(CmdNeedleAt).WithThread(tt.in).WithNeedle(tt.in).WithOrder(tt.in)
		c = Unpack(c.Pack())
		for name, get := range map[string]func() (int, bool){
			"thread": c.Thread, "needle": c.Needle, "order": c.Order,
		} {
			if got, ok := get(); !ok || got != tt.want {
				t.Errorf("%s(%d) = %d, %v; want %d, true", name, tt.in, got, ok, tt.want)
			}
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Cmd(CmdStitch), "stitch"},
		{Cmd(CmdColorChange), "color_change"},
		{Cmd(CmdNeedleSet).WithNeedle(2), "needle_set n2"},
		{Cmd(CmdNeedleAt).WithThread(1).WithNeedle(0).WithOrder(7), "needle_at t1 n0 o7"},
		{Cmd(CommandType(0x42)), "command(0x42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	for name, typ := range map[string]CommandType{
		"stitch": CmdStitch, "frame_eject": CmdFrameEject, "no_command": CmdNone,
	} {
		c, err := ParseCommand(name)
		if err != nil || c != Cmd(typ) {
			t.Errorf("ParseCommand(%q) = %v, %v", name, c, err)
		}
	}

	c, err := ParseCommand("needle_set n4 t1")
	if err != nil {
		t.Fatalf("ParseCommand error = %v", err)
	}
	if want := Cmd(CmdNeedleSet).WithNeedle(4).WithThread(1); c != want {
		t.Errorf("ParseCommand = %v, want %v", c, want)
	}

	for _, bad := range []string{"", "warp", "stitch x1", "stitch n", "stitch nq"} {
		if _, err := ParseCommand(bad); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("ParseCommand(%q) error = %v, want ErrUnknownCommand", bad, err)
		}
	}
}

func TestCommandTypeClassification(t *testing.T) {
	for _, typ := range []CommandType{CmdStitch, CmdSewTo, CmdNeedleAt} {
		if !typ.IsStitching() {
			t.Errorf("%s.IsStitching() = false", typ)
		}
	}
	for _, typ := range []CommandType{CmdJump, CmdTrim, CmdSequinEject, CmdNone} {
		if typ.IsStitching() {
			t.Errorf("%s.IsStitching() = true", typ)
		}
	}
	for _, typ := range []CommandType{CmdColorChange, CmdColorBreak, CmdNeedleSet} {
		if !typ.IsColorDelimiter() {
			t.Errorf("%s.IsColorDelimiter() = false", typ)
		}
	}
	if CmdStop.IsColorDelimiter() || CmdSequenceBreak.IsColorDelimiter() {
		t.Error("stop and sequence break are not color delimiters")
	}
}

func TestStitchString(t *testing.T) {
	s := NewStitch(CmdJump, 1.5, -2)
	if s.String() != "jump(1.5, -2)" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Type() != CmdJump || s.Point() != Pt(1.5, -2) {
		t.Errorf("accessors = %v %v", s.Type(), s.Point())
	}
}
