package dst

import "github.com/gogpu/stitch"

func init() {
	stitch.RegisterFormat(stitch.Format{
		Name:       "dst",
		Extensions: []string{".dst"},
		Reader:     Format{},
		Writer:     Format{},
	})
}

// Format is the DST reader and writer. The zero value uses the defaults of
// the common DST readers.
type Format struct {
	// TrimAt is the number of jumps written for a trim, and the jump run
	// length the reader turns into a trim. Zero means 3.
	TrimAt int

	// TrimDistance, in millimetres, also makes the reader insert a trim
	// before jump runs travelling further than this. Zero disables it.
	TrimDistance float64

	// Clipping makes the reader delete jump runs with zero net displacement
	// together with their trim.
	Clipping bool

	// Extended writes author, copyright and thread lines to the header.
	Extended bool
}

func (f Format) trimAt() int {
	if f.TrimAt > 0 {
		return f.TrimAt
	}
	return 3
}

func (f Format) trimCriteria() stitch.TrimCriteria {
	return stitch.TrimCriteria{
		Jumps:    f.trimAt(),
		Distance: f.TrimDistance * 10, // native units are 0.1 mm
		Clipping: f.Clipping,
	}
}

// Capabilities declares ternary records of at most 121 units, integer
// coordinates and sequin support.
func (f Format) Capabilities() stitch.Capabilities {
	s := stitch.DefaultSettings()
	s.MaxStitch = MaxDelta
	s.MaxJump = MaxDelta
	s.Round = true
	s.WritesSpeeds = false
	s.FrameEject = false
	s.SequinContingency = stitch.SequinUtilize
	return stitch.Capabilities{Settings: s, Normalize: true}
}
