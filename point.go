package stitch

// Point is a needle position, or the displacement between two, in 0.1 mm
// units with y pointing down.
type Point struct {
	X, Y float64
}

// Pt returns the Point x, y.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
