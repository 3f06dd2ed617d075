package stitch

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// SequinContingency selects how normalization treats sequin commands.
type SequinContingency uint8

const (
	// SequinUtilize passes sequin commands through unchanged.
	SequinUtilize SequinContingency = iota
	// SequinJump turns sequin ejects into jumps.
	SequinJump
	// SequinStitch turns sequin ejects into stitches.
	SequinStitch
	// SequinRemove drops sequin commands.
	SequinRemove
)

var sequinContingencyNames = [...]string{"utilize", "jump", "stitch", "remove"}

func (c SequinContingency) String() string {
	if int(c) < len(sequinContingencyNames) {
		return sequinContingencyNames[c]
	}
	return fmt.Sprintf("SequinContingency(%d)", c)
}

// ParseSequinContingency parses a contingency name. The aliases
// "pass-through", "strip" and "convert-to-stitch" are accepted.
func ParseSequinContingency(s string) (SequinContingency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "utilize", "pass-through", "passthrough":
		return SequinUtilize, nil
	case "jump":
		return SequinJump, nil
	case "stitch", "convert-to-stitch":
		return SequinStitch, nil
	case "remove", "strip":
		return SequinRemove, nil
	}
	return 0, fmt.Errorf("%w: sequin_contingency %q", ErrInvalidSetting, s)
}

// Settings describes what a target writer can express. Normalization reads
// it to turn an arbitrary pattern into one the writer can emit.
type Settings struct {
	// MaxStitch and MaxJump bound the per-axis displacement of a single
	// stitch or jump. +Inf means unlimited.
	MaxStitch float64
	MaxJump   float64

	// FullJump makes travel jumps land exactly on the next stitch instead of
	// leaving the final segment to the stitch itself.
	FullJump bool

	// Round rounds every output coordinate to whole units.
	Round bool

	// WritesSpeeds keeps SLOW and FAST commands.
	WritesSpeeds bool

	SequinContingency SequinContingency

	// ThreadChangeCommand is emitted at every thread change. It is
	// CmdColorChange or CmdNeedleSet.
	ThreadChangeCommand CommandType

	// ExplicitTrim inserts a TRIM before every thread change that is not
	// already trimmed.
	ExplicitTrim bool

	// Translate, Scale and Rotate (degrees) are applied to every coordinate
	// before splitting, as scale, then rotate, then translate.
	Translate Point
	Scale     Point
	Rotate    float64

	// NeedleCount is the number of needles NEEDLE_SET thread changes cycle
	// through.
	NeedleCount int

	// Stop and FrameEject report whether the writer expresses STOP and
	// FRAME_EJECT natively.
	Stop       bool
	FrameEject bool
}

// DefaultSettings returns settings that constrain nothing: unlimited
// distances, no rounding and every command kept.
func DefaultSettings() Settings {
	return Settings{
		MaxStitch:           math.Inf(1),
		MaxJump:             math.Inf(1),
		WritesSpeeds:        true,
		SequinContingency:   SequinUtilize,
		ThreadChangeCommand: CmdColorChange,
		Scale:               Point{X: 1, Y: 1},
		NeedleCount:         5,
		Stop:                true,
		FrameEject:          true,
	}
}

// With returns a copy of s with opts applied.
func (s Settings) With(opts ...Option) Settings {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Validate checks that the settings can drive normalization.
func (s Settings) Validate() error {
	if !(s.MaxStitch > 0) || !(s.MaxJump > 0) {
		return fmt.Errorf("%w: distance limits must be positive (max_stitch=%v, max_jump=%v)",
			ErrInvalidSetting, s.MaxStitch, s.MaxJump)
	}
	if s.Round && (s.MaxStitch < 1 || s.MaxJump < 1) {
		return fmt.Errorf("%w: rounded output needs limits of at least 1", ErrInvalidSetting)
	}
	switch s.ThreadChangeCommand {
	case CmdColorChange, CmdNeedleSet:
	default:
		return fmt.Errorf("%w: thread_change_command %s", ErrInvalidSetting, s.ThreadChangeCommand)
	}
	if s.ThreadChangeCommand == CmdNeedleSet && s.NeedleCount < 1 {
		return fmt.Errorf("%w: needle_count %d", ErrInvalidSetting, s.NeedleCount)
	}
	if s.SequinContingency > SequinRemove {
		return fmt.Errorf("%w: %s", ErrInvalidSetting, s.SequinContingency)
	}
	return nil
}

func (s Settings) matrix() Matrix {
	return Identity().
		PostScale(s.Scale.X, s.Scale.Y).
		PostRotate(s.Rotate).
		PostTranslate(s.Translate.X, s.Translate.Y)
}

// ParseSettings layers a flat key/value mapping over base. Recognized keys
// are max_jump, max_stitch, full_jump, round, writes_speeds,
// sequin_contingency, thread_change_command, explicit_trim, translate,
// scale, rotate, needle_count, stop and frame_eject. Unknown keys are
// ignored; a known key with a value of the wrong type is an error.
func ParseSettings(m map[string]any, base Settings) (Settings, error) {
	s := base
	for key, v := range m {
		var err error
		switch key {
		case "max_jump":
			s.MaxJump, err = toFloat(v)
		case "max_stitch":
			s.MaxStitch, err = toFloat(v)
		case "full_jump":
			s.FullJump, err = toBool(v)
		case "round":
			s.Round, err = toBool(v)
		case "writes_speeds":
			s.WritesSpeeds, err = toBool(v)
		case "explicit_trim":
			s.ExplicitTrim, err = toBool(v)
		case "stop":
			s.Stop, err = toBool(v)
		case "frame_eject":
			s.FrameEject, err = toBool(v)
		case "rotate":
			s.Rotate, err = toFloat(v)
		case "translate":
			s.Translate, err = toPoint(v)
		case "scale":
			s.Scale, err = toPoint(v)
		case "needle_count":
			var f float64
			f, err = toFloat(v)
			s.NeedleCount = int(f)
		case "sequin_contingency":
			switch c := v.(type) {
			case SequinContingency:
				s.SequinContingency = c
			case string:
				s.SequinContingency, err = ParseSequinContingency(c)
			default:
				err = errWrongType(v)
			}
		case "thread_change_command":
			switch c := v.(type) {
			case CommandType:
				s.ThreadChangeCommand = c
			case string:
				s.ThreadChangeCommand, err = ParseCommandType(c)
			default:
				var f float64
				f, err = toFloat(v)
				s.ThreadChangeCommand = CommandType(uint32(f) & CommandMask)
			}
		default:
			continue
		}
		if err != nil {
			return base, fmt.Errorf("%w: %s: %w", ErrInvalidSetting, key, err)
		}
	}
	return s, nil
}

func errWrongType(v any) error {
	return fmt.Errorf("unexpected type %T", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	}
	return 0, errWrongType(v)
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, errWrongType(v)
}

func toPoint(v any) (Point, error) {
	switch p := v.(type) {
	case Point:
		return p, nil
	case [2]float64:
		return Point{X: p[0], Y: p[1]}, nil
	case []float64:
		if len(p) == 2 {
			return Point{X: p[0], Y: p[1]}, nil
		}
	case []any:
		if len(p) == 2 {
			x, err := toFloat(p[0])
			if err != nil {
				return Point{}, err
			}
			y, err := toFloat(p[1])
			if err != nil {
				return Point{}, err
			}
			return Point{X: x, Y: y}, nil
		}
	}
	return Point{}, fmt.Errorf("expected a pair, got %T", v)
}
