package stitch

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandType identifies the kind of a stitch record.
// The values match the low byte of the packed command integer used by
// format adapters, so they must not be renumbered.
type CommandType uint8

const (
	CmdStitch      CommandType = 0x00 // Needle penetration at the position
	CmdJump        CommandType = 0x01 // Frame move without penetration
	CmdTrim        CommandType = 0x02 // Cut the thread
	CmdStop        CommandType = 0x03 // Machine pause
	CmdEnd         CommandType = 0x04 // End of design
	CmdColorChange CommandType = 0x05 // Change to the next thread
	CmdSequinMode  CommandType = 0x06 // Toggle the sequin feeder
	CmdSequinEject CommandType = 0x07 // Drop a sequin at the position
	CmdNeedleSet   CommandType = 0x09 // Select a needle (carries aux fields)
	CmdSlow        CommandType = 0x0B // Slow stitching speed
	CmdFast        CommandType = 0x0C // Fast stitching speed

	// Middle-level commands, resolved by normalization.
	CmdSewTo    CommandType = 0xB0 // Stitch to the position, splitting as needed
	CmdNeedleAt CommandType = 0xB1 // Stitch to the position, jumping as needed

	// Matrix markers, applied by a downstream consumer.
	CmdMatrixTranslate CommandType = 0xC0
	CmdMatrixScale     CommandType = 0xC4
	CmdMatrixRotate    CommandType = 0xC5

	// Structural markers.
	CmdStitchBreak   CommandType = 0xE0
	CmdSequenceBreak CommandType = 0xE1
	CmdColorBreak    CommandType = 0xE2
	CmdFrameEject    CommandType = 0xE9

	// CmdNone is a placeholder that every consumer skips.
	CmdNone CommandType = 0xFF
)

// Packed command layout.
const (
	CommandMask = 0x000000FF
	ThreadMask  = 0x0000FF00
	NeedleMask  = 0x00FF0000
	OrderMask   = 0xFF000000

	threadShift = 8
	needleShift = 16
	orderShift  = 24
)

var commandTypeNames = map[CommandType]string{
	CmdStitch:          "stitch",
	CmdJump:            "jump",
	CmdTrim:            "trim",
	CmdStop:            "stop",
	CmdEnd:             "end",
	CmdColorChange:     "color_change",
	CmdSequinMode:      "sequin_mode",
	CmdSequinEject:     "sequin_eject",
	CmdNeedleSet:       "needle_set",
	CmdSlow:            "slow",
	CmdFast:            "fast",
	CmdSewTo:           "sew_to",
	CmdNeedleAt:        "needle_at",
	CmdMatrixTranslate: "translate",
	CmdMatrixScale:     "scale",
	CmdMatrixRotate:    "rotate",
	CmdStitchBreak:     "stitch_break",
	CmdSequenceBreak:   "sequence_break",
	CmdColorBreak:      "color_break",
	CmdFrameEject:      "frame_eject",
	CmdNone:            "no_command",
}

// String returns the lowercase name of the command type.
func (t CommandType) String() string {
	if name, ok := commandTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("command(0x%02X)", uint8(t))
}

// ParseCommandType returns the command type with the given name.
func ParseCommandType(name string) (CommandType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range commandTypeNames {
		if n == name {
			return t, nil
		}
	}
	return CmdNone, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// IsStitching reports whether the command type places thread in the fabric.
func (t CommandType) IsStitching() bool {
	return t == CmdStitch || t == CmdSewTo || t == CmdNeedleAt
}

// IsColorDelimiter reports whether the command type starts a new color block.
func (t CommandType) IsColorDelimiter() bool {
	return t == CmdColorChange || t == CmdColorBreak || t == CmdNeedleSet
}

// Command is a command type with optional thread, needle, and order indices.
// The indices are stored 1-based so that the zero value means "absent";
// they are only meaningful for CmdNeedleSet and CmdNeedleAt.
type Command struct {
	Type CommandType

	thread uint8
	needle uint8
	order  uint8
}

// Cmd returns a command of type t without auxiliary fields.
func Cmd(t CommandType) Command {
	return Command{Type: t}
}

// Thread returns the 0-based thread index, if present.
func (c Command) Thread() (int, bool) {
	return int(c.thread) - 1, c.thread != 0
}

// Needle returns the 0-based needle index, if present.
func (c Command) Needle() (int, bool) {
	return int(c.needle) - 1, c.needle != 0
}

// Order returns the 0-based draw order, if present.
func (c Command) Order() (int, bool) {
	return int(c.order) - 1, c.order != 0
}

// WithThread returns a copy of c with the thread index set.
// A negative index clears it; indices above MaxAuxIndex are clamped to it.
func (c Command) WithThread(i int) Command {
	c.thread = auxIndex(i)
	return c
}

// WithNeedle returns a copy of c with the needle index set.
// A negative index clears it; indices above MaxAuxIndex are clamped to it.
func (c Command) WithNeedle(i int) Command {
	c.needle = auxIndex(i)
	return c
}

// WithOrder returns a copy of c with the order index set.
// A negative index clears it; indices above MaxAuxIndex are clamped to it.
func (c Command) WithOrder(i int) Command {
	c.order = auxIndex(i)
	return c
}

// MaxAuxIndex is the largest thread, needle or order index a Command can
// carry. Indices are stored 1-based in 8 bits with zero meaning absent.
const MaxAuxIndex = 0xFE

func auxIndex(i int) uint8 {
	if i < 0 {
		return 0
	}
	return uint8(min(i, MaxAuxIndex) + 1) // #nosec G115 -- at most 0xFF
}

// Pack encodes the command into the packed integer layout used on the wire.
func (c Command) Pack() uint32 {
	return uint32(c.Type) |
		uint32(c.thread)<<threadShift |
		uint32(c.needle)<<needleShift |
		uint32(c.order)<<orderShift
}

// Unpack decodes a packed command integer.
func Unpack(v uint32) Command {
	return Command{
		Type:   CommandType(v & CommandMask),
		thread: uint8((v & ThreadMask) >> threadShift),
		needle: uint8((v & NeedleMask) >> needleShift),
		order:  uint8((v & OrderMask) >> orderShift),
	}
}

// String returns the textual form "name [tN] [nN] [oN]".
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(c.Type.String())
	if i, ok := c.Thread(); ok {
		sb.WriteString(" t")
		sb.WriteString(strconv.Itoa(i))
	}
	if i, ok := c.Needle(); ok {
		sb.WriteString(" n")
		sb.WriteString(strconv.Itoa(i))
	}
	if i, ok := c.Order(); ok {
		sb.WriteString(" o")
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// ParseCommand parses the textual form produced by Command.String.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Cmd(CmdNone), fmt.Errorf("%w: empty", ErrUnknownCommand)
	}
	t, err := ParseCommandType(fields[0])
	if err != nil {
		return Cmd(CmdNone), err
	}
	c := Cmd(t)
	for _, f := range fields[1:] {
		if len(f) < 2 {
			return c, fmt.Errorf("%w: bad field %q in %q", ErrUnknownCommand, f, s)
		}
		n, err := strconv.Atoi(f[1:])
		if err != nil {
			return c, fmt.Errorf("%w: bad field %q in %q", ErrUnknownCommand, f, s)
		}
		switch f[0] {
		case 't':
			c = c.WithThread(n)
		case 'n':
			c = c.WithNeedle(n)
		case 'o':
			c = c.WithOrder(n)
		default:
			return c, fmt.Errorf("%w: bad field %q in %q", ErrUnknownCommand, f, s)
		}
	}
	return c, nil
}
