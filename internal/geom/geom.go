// Package geom holds the pure geometry used by the drawing tool: points,
// vertex rings, polygons and the affine transforms applied to them.
//
// Coordinates follow the scene convention: x grows to the right and y grows
// up, so a positive signed area means counter-clockwise winding and a
// positive rotation angle turns counter-clockwise.
package geom

import (
	"errors"
	"math"

	"github.com/fogleman/gg"
)

// ErrEmpty is returned when an operation needs at least one vertex.
var ErrEmpty = errors.New("geom: empty vertex list")

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Near reports whether p and q are within eps of each other on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Polygon is a simple polygon, optionally with holes. The outer ring and the
// holes are open rings: the closing edge back to the first vertex is implied.
type Polygon struct {
	Outer []Point
	Holes [][]Point
}

// Points returns the outer ring followed by every hole ring. Triangle indices
// produced for the polygon refer to positions in this slice.
func (p Polygon) Points() []Point {
	n := len(p.Outer)
	for _, h := range p.Holes {
		n += len(h)
	}
	out := make([]Point, 0, n)
	out = append(out, p.Outer...)
	for _, h := range p.Holes {
		out = append(out, h...)
	}
	return out
}

// Contains reports whether pt lies inside the outer ring and outside every hole.
func (p Polygon) Contains(pt Point) bool {
	if !PointInPolygon(pt, p.Outer) {
		return false
	}
	for _, h := range p.Holes {
		if PointInPolygon(pt, h) {
			return false
		}
	}
	return true
}

// Area returns the area of the outer ring minus the area of the holes.
func (p Polygon) Area() float64 {
	a := math.Abs(Area(p.Outer))
	for _, h := range p.Holes {
		a -= math.Abs(Area(h))
	}
	return a
}

// Transform applies fn to the outer ring and every hole.
func (p Polygon) Transform(fn func([]Point) []Point) Polygon {
	out := Polygon{Outer: fn(p.Outer)}
	if len(p.Holes) > 0 {
		out.Holes = make([][]Point, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = fn(h)
		}
	}
	return out
}

// Centroid returns the arithmetic mean of vs.
func Centroid(vs []Point) (Point, error) {
	if len(vs) == 0 {
		return Point{}, ErrEmpty
	}
	var cx, cy float64
	for _, v := range vs {
		cx += v.X
		cy += v.Y
	}
	n := float64(len(vs))
	return Point{X: cx / n, Y: cy / n}, nil
}

// OpenRing returns vs without its last vertex when that vertex repeats the
// first one. The input is not modified.
func OpenRing(vs []Point) []Point {
	if len(vs) > 1 && vs[0] == vs[len(vs)-1] {
		return vs[:len(vs)-1]
	}
	return vs
}

// Area returns the signed shoelace area of the ring vs.
func Area(vs []Point) float64 {
	var a float64
	for i := range vs {
		j := (i + 1) % len(vs)
		a += vs[i].X*vs[j].Y - vs[j].X*vs[i].Y
	}
	return a / 2
}

// Rotate rotates every vertex by theta radians about pivot.
func Rotate(vs []Point, theta float64, pivot Point) []Point {
	m := gg.Translate(-pivot.X, -pivot.Y).
		Multiply(gg.Rotate(theta)).
		Multiply(gg.Translate(pivot.X, pivot.Y))
	return apply(vs, m)
}

// Translate offsets every vertex by distance along heading (radians).
func Translate(vs []Point, heading, distance float64) []Point {
	return apply(vs, gg.Translate(math.Cos(heading)*distance, math.Sin(heading)*distance))
}

// Scale scales the offset of every vertex from pivot by factor. The factor is
// not validated here.
func Scale(vs []Point, factor float64, pivot Point) []Point {
	m := gg.Translate(-pivot.X, -pivot.Y).
		Multiply(gg.Scale(factor, factor)).
		Multiply(gg.Translate(pivot.X, pivot.Y))
	return apply(vs, m)
}

func apply(vs []Point, m gg.Matrix) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i].X, out[i].Y = m.TransformPoint(v.X, v.Y)
	}
	return out
}

// PointInPolygon reports whether p lies inside the ring vs using the even-odd
// rule. The ring does not need to be closed.
func PointInPolygon(p Point, vs []Point) bool {
	inside := false
	for i, j := 0, len(vs)-1; i < len(vs); j, i = i, i+1 {
		vi, vj := vs[i], vs[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees wraps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
