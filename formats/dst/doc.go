// Package dst reads and writes Tajima DST embroidery files.
//
// A DST file is a 512-byte text header followed by 3-byte stitch records in
// balanced ternary. Each record moves at most 121 units on either axis, so
// the writer declares that limit and lets normalization split longer moves.
// DST has no trim command: trims are written as a short sequence of jumps
// that return to the same spot, and the reader turns such jump runs back
// into trims.
//
// Importing the package registers the format for the ".dst" extension:
//
//	import _ "github.com/gogpu/stitch/formats/dst"
//
//	p, err := stitch.ReadFile("rose.dst")
package dst
