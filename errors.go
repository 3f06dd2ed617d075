package stitch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stitch package.
var (
	// ErrUnknownCommand is returned when a command name cannot be parsed.
	ErrUnknownCommand = errors.New("stitch: unknown command")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("stitch: invalid color")

	// ErrInvalidSetting is returned when a known settings key has a value of the wrong type.
	ErrInvalidSetting = errors.New("stitch: invalid setting")

	// ErrUnknownFormat is returned when no format is registered for an extension.
	ErrUnknownFormat = errors.New("stitch: unknown format")

	// ErrNotSupported is returned when a format cannot read or cannot write.
	ErrNotSupported = errors.New("stitch: operation not supported by format")
)

// CoordinateError is returned by normalization when a stitch record cannot
// be represented, for example because a coordinate is NaN or infinite.
type CoordinateError struct {
	Index   int
	Command Command
	X, Y    float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("stitch: record %d (%s) has unrepresentable coordinate (%v, %v)",
		e.Index, e.Command, e.X, e.Y)
}
