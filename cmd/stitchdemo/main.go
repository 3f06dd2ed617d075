// Command stitchdemo demonstrates the stitch embroidery library.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/stitch"
	_ "github.com/gogpu/stitch/formats/col"
	_ "github.com/gogpu/stitch/formats/dst"
	_ "github.com/gogpu/stitch/formats/jsonfmt"
)

func main() {
	var (
		output    = flag.String("output", "demo.dst", "output file; the extension selects the format")
		maxStitch = flag.Float64("max-stitch", 0, "override the writer's maximum stitch length (0.1 mm units)")
		rotate    = flag.Float64("rotate", 0, "rotation in degrees")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		stitch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	p := stitch.NewPattern()
	p.SetMetadata("name", "stitchdemo")

	// Two concentric rings in different colors
	ring(p, "navy", 200)
	ring(p, "gold", 120)

	// A copy of the small ring placed to the side
	badge := stitch.NewPattern()
	ring(badge, "crimson", 60)
	p.AddPattern(badge, stitch.PlaceAt(400, 0))
	p.End(0, 0)

	var opts []stitch.Option
	if *maxStitch > 0 {
		opts = append(opts, stitch.WithMaxStitch(*maxStitch))
	}
	if *rotate != 0 {
		opts = append(opts, stitch.WithRotate(*rotate))
	}

	if err := stitch.WriteFile(*output, p, opts...); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}

	minX, minY, maxX, maxY := p.Bounds()
	log.Printf("Demo saved to %s (%d records, %d threads, %.0fx%.0f)\n",
		*output, p.Len(), p.ThreadCount(), maxX-minX, maxY-minY)
}

// ring adds a circle of stitches of the given radius as its own color block.
func ring(p *stitch.Pattern, color string, radius float64) {
	t, err := stitch.ParseThread(color)
	if err != nil {
		log.Fatalf("Bad color %q: %v", color, err)
	}
	t.Description = color

	const steps = 72
	points := make([]stitch.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		points = append(points, stitch.Pt(radius*math.Cos(a), radius*math.Sin(a)))
	}
	p.AddBlock(points, t)
}
