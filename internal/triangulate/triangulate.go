// Package triangulate computes fill triangles for simple polygons by ear
// clipping.
package triangulate

import (
	"errors"
	"fmt"
	"math"

	"github.com/rclancey/earcut"

	"turtlegfx/internal/geom"
)

// ErrDegenerate is returned for polygons with fewer than three vertices or
// no area.
var ErrDegenerate = errors.New("triangulate: degenerate polygon")

// Triangulate returns a flat list of index triples covering poly. Indices
// refer to positions in poly.Points(): the outer ring followed by each hole.
func Triangulate(poly geom.Polygon) ([]int, error) {
	if len(poly.Outer) < 3 || geom.Area(poly.Outer) == 0 {
		return nil, fmt.Errorf("%w (%d vertices)", ErrDegenerate, len(poly.Outer))
	}

	points := poly.Points()
	coords := make([]float64, len(points)*2)
	for i, p := range points {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	var holes []int
	start := len(poly.Outer)
	for _, h := range poly.Holes {
		holes = append(holes, start)
		start += len(h)
	}

	indices, err := earcut.Earcut(coords, holes, 2)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d-vertex polygon: %w", len(points), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("triangulate: index count %d is not a multiple of 3", len(indices))
	}
	for _, i := range indices {
		if i < 0 || i >= len(points) {
			return nil, fmt.Errorf("triangulate: index %d out of range [0,%d)", i, len(points))
		}
	}
	return indices, nil
}

// Area sums the areas of the triangles described by indices over points.
func Area(points []geom.Point, indices []int) float64 {
	var total float64
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := points[indices[i]], points[indices[i+1]], points[indices[i+2]]
		total += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	return total
}
