package stitch

import "fmt"

// Stitch is one record of a pattern: an absolute position in 0.1 mm units
// and the command executed there.
type Stitch struct {
	X, Y    float64
	Command Command
}

// NewStitch creates a record with a plain command of type t.
func NewStitch(t CommandType, x, y float64) Stitch {
	return Stitch{X: x, Y: y, Command: Cmd(t)}
}

// Type returns the command type of the record.
func (s Stitch) Type() CommandType { return s.Command.Type }

// Point returns the record position.
func (s Stitch) Point() Point { return Point{X: s.X, Y: s.Y} }

func (s Stitch) String() string {
	return fmt.Sprintf("%s(%g, %g)", s.Command, s.X, s.Y)
}
