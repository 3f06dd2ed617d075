package stitch

// Option configures Settings.
// Use functional options to override what a writer declares.
//
// Example:
//
//	// Writer defaults
//	err := stitch.WritePattern(w, p, dst.Format{})
//
//	// Rotated and with shorter stitches
//	err := stitch.WritePattern(w, p, dst.Format{},
//		stitch.WithRotate(90), stitch.WithMaxStitch(40))
type Option func(*Settings)

// NewSettings returns DefaultSettings with opts applied.
func NewSettings(opts ...Option) Settings {
	return DefaultSettings().With(opts...)
}

// WithMaxStitch limits the per-axis length of a single stitch.
func WithMaxStitch(d float64) Option {
	return func(s *Settings) {
		s.MaxStitch = d
	}
}

// WithMaxJump limits the per-axis length of a single jump.
func WithMaxJump(d float64) Option {
	return func(s *Settings) {
		s.MaxJump = d
	}
}

// WithFullJump makes travel jumps land exactly on the next stitch.
func WithFullJump(full bool) Option {
	return func(s *Settings) {
		s.FullJump = full
	}
}

// WithRound enables rounding of output coordinates to whole units.
func WithRound(round bool) Option {
	return func(s *Settings) {
		s.Round = round
	}
}

// WithWritesSpeeds keeps or drops SLOW and FAST commands.
func WithWritesSpeeds(keep bool) Option {
	return func(s *Settings) {
		s.WritesSpeeds = keep
	}
}

// WithSequinContingency selects how sequin commands are handled.
func WithSequinContingency(c SequinContingency) Option {
	return func(s *Settings) {
		s.SequinContingency = c
	}
}

// WithThreadChangeCommand selects the command emitted at thread changes.
func WithThreadChangeCommand(t CommandType) Option {
	return func(s *Settings) {
		s.ThreadChangeCommand = t
	}
}

// WithExplicitTrim requests a TRIM before every thread change.
func WithExplicitTrim(explicit bool) Option {
	return func(s *Settings) {
		s.ExplicitTrim = explicit
	}
}

// WithTranslate moves the pattern by dx, dy.
func WithTranslate(dx, dy float64) Option {
	return func(s *Settings) {
		s.Translate = Point{X: dx, Y: dy}
	}
}

// WithScale scales the pattern about the origin.
func WithScale(sx, sy float64) Option {
	return func(s *Settings) {
		s.Scale = Point{X: sx, Y: sy}
	}
}

// WithRotate rotates the pattern about the origin by the given degrees.
func WithRotate(degrees float64) Option {
	return func(s *Settings) {
		s.Rotate = degrees
	}
}

// WithNeedleCount sets the number of needles NEEDLE_SET changes cycle through.
func WithNeedleCount(n int) Option {
	return func(s *Settings) {
		s.NeedleCount = n
	}
}
