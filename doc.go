// Package stitch provides an in-memory model of machine embroidery
// patterns, the pipeline that adapts a pattern to what a target machine
// format can express, and the registry through which format packages read
// and write files.
//
// # Overview
//
// A Pattern is an ordered list of stitch records, a thread list and string
// metadata. Each record is an absolute position in 0.1 mm units and a
// Command. Color-delimiting commands (COLOR_CHANGE, COLOR_BREAK,
// NEEDLE_SET) split the records into color blocks, one thread per block.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/stitch"
//	    _ "github.com/gogpu/stitch/formats/dst" // register .dst
//	)
//
//	p := stitch.NewPattern()
//	p.AddThread(stitch.NewThread(0x000080))
//	p.Stitch(0, 0)
//	p.Stitch(500, 0) // split into legal stitches when written
//	p.End(0, 0)
//
//	err := stitch.WriteFile("line.dst", p)
//
// # Normalization
//
// Writers declare their limits through Capabilities. WritePattern runs
// Normalize, which returns a new pattern with long moves split, coordinates
// rounded, thread changes regenerated and unsupported commands substituted.
// The source pattern is never modified. Structural transforms such as
// InterpolateTrims and InterpolateFrameEject operate in place and are run by
// readers or callers before normalization.
//
// # Coordinate System
//
//   - Units are 0.1 mm
//   - X increases right, Y increases down
//   - Rotations are in degrees
//
// # Concurrency
//
// A Pattern is owned by its caller and must not be mutated from several
// goroutines without external locking. Independent patterns may be
// processed in parallel. The format registry and the logger are safe for
// concurrent use.
package stitch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
