// Package resolve turns a closed, possibly self-intersecting stroke outline
// into simple polygons.
//
// The outline is snapped onto an integer grid and handed to canvas, which
// settles the path under the chosen fill rule: crossings are split, the
// filled regions are merged and their boundary comes back as rings. Outer
// rings are counter-clockwise, holes clockwise.
package resolve

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/tdewolff/canvas"

	"turtlegfx/internal/geom"
)

// DefaultScale is the number of grid units per scene unit. With pixel sized
// scene coordinates this resolves crossings to a thousandth of a pixel.
const DefaultScale = 1000

// MinScale is the coarsest grid accepted. Below it, snapping moves vertices
// far enough to merge distinct turns of a stroke.
const MinScale = 100

// maxCoord bounds grid coordinates so crossing arithmetic stays well inside
// float64 integer precision.
const maxCoord = 1 << 29

// collinearEps is the distance in grid units under which a vertex is taken
// to lie on the line through its neighbours.
const collinearEps = 1e-6

var (
	ErrScale      = errors.New("resolve: scale below minimum precision")
	ErrOutOfRange = errors.New("resolve: coordinate out of range")
)

// FillRule decides which regions of a self-intersecting outline are interior.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

func (r FillRule) canvasRule() canvas.FillRule {
	if r == EvenOdd {
		return canvas.EvenOdd
	}
	return canvas.NonZero
}

// ParseFillRule accepts "nonzero" or "evenodd" in any case, with or without
// a dash or underscore.
func ParseFillRule(s string) (FillRule, error) {
	s = strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch s {
	case "nonzero":
		return NonZero, nil
	case "evenodd":
		return EvenOdd, nil
	}
	return NonZero, fmt.Errorf("resolve: unknown fill rule %q", s)
}

// Resolver simplifies outlines on a grid of Scale units per scene unit.
type Resolver struct {
	Scale float64
	Rule  FillRule
}

// New returns a Resolver. A non-positive scale selects DefaultScale and a
// scale under MinScale is raised to it.
func New(scale float64, rule FillRule) *Resolver {
	switch {
	case scale <= 0 || math.IsNaN(scale):
		scale = DefaultScale
	case scale < MinScale:
		scale = MinScale
	}
	return &Resolver{Scale: scale, Rule: rule}
}

// Resolve simplifies ring into zero or more simple polygons. The ring may be
// closed (first point repeated as last) or open. Degenerate outlines resolve
// to no polygons and a nil error.
func (r *Resolver) Resolve(ring []geom.Point) ([]geom.Polygon, error) {
	if !(r.Scale >= MinScale) || math.IsInf(r.Scale, 0) {
		return nil, fmt.Errorf("%w: %g < %d", ErrScale, r.Scale, MinScale)
	}
	pts, err := quantize(ring, r.Scale)
	if err != nil {
		return nil, err
	}
	if distinct(pts) < 3 {
		return nil, nil
	}

	p := &canvas.Path{}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, q := range pts[1:] {
		p.LineTo(q.X, q.Y)
	}
	p.Close()

	var rings [][]geom.Point
	for _, sub := range p.Settle(r.Rule.canvasRule()).Split() {
		if sub.Empty() {
			continue
		}
		for _, rg := range splitPinches(ringOf(sub)) {
			if rg = dropCollinear(rg); len(rg) >= 3 && geom.Area(rg) != 0 {
				rings = append(rings, rg)
			}
		}
	}
	return assemble(rings, r.Scale), nil
}

// quantize snaps ring onto the grid and drops repeated points, including a
// closing point equal to the first.
func quantize(ring []geom.Point, scale float64) ([]geom.Point, error) {
	out := make([]geom.Point, 0, len(ring))
	for _, p := range ring {
		x, y := math.Round(p.X*scale), math.Round(p.Y*scale)
		if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > maxCoord || math.Abs(y) > maxCoord {
			return nil, fmt.Errorf("%w: (%g, %g)", ErrOutOfRange, p.X, p.Y)
		}
		q := geom.Pt(x, y)
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out, nil
}

func distinct(pts []geom.Point) int {
	seen := make(map[geom.Point]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// ringOf flattens one settled subpath into an open ring of grid points.
func ringOf(sub *canvas.Path) []geom.Point {
	coords := sub.Coords()
	ring := make([]geom.Point, 0, len(coords))
	for _, c := range coords {
		q := geom.Pt(c.X, c.Y)
		if len(ring) > 0 && ring[len(ring)-1].Near(q, collinearEps) {
			continue
		}
		ring = append(ring, q)
	}
	for len(ring) > 1 && ring[0].Near(ring[len(ring)-1], collinearEps) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// splitPinches cuts a ring that passes through the same point twice into
// separate rings, as where two lobes of a figure eight touch.
func splitPinches(ring []geom.Point) [][]geom.Point {
	for i := range ring {
		for j := i + 1; j < len(ring); j++ {
			if ring[i].Near(ring[j], collinearEps) {
				loop := slices.Clone(ring[i:j])
				rest := append(slices.Clone(ring[:i]), ring[j:]...)
				return append(splitPinches(loop), splitPinches(rest)...)
			}
		}
	}
	return [][]geom.Point{ring}
}

func dropCollinear(ring []geom.Point) []geom.Point {
	for changed := true; changed && len(ring) >= 3; {
		changed = false
		for i := 0; i < len(ring) && len(ring) >= 3; i++ {
			prev := ring[(i-1+len(ring))%len(ring)]
			next := ring[(i+1)%len(ring)]
			if offLine(prev, next, ring[i]) <= collinearEps {
				ring = slices.Delete(ring, i, i+1)
				changed = true
				i--
			}
		}
	}
	if len(ring) < 3 {
		return nil
	}
	return ring
}

// offLine returns the distance of p from the line through a and b.
func offLine(a, b, p geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return a.Distance(p)
	}
	return math.Abs(dx*(p.Y-a.Y)-dy*(p.X-a.X)) / l
}

func toScene(ring []geom.Point, scale float64) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, p := range ring {
		out[i] = geom.Point{X: p.X / scale, Y: p.Y / scale}
	}
	return out
}

// assemble sorts rings into outer rings and holes and attaches every hole
// to the smallest outer ring around it.
func assemble(rings [][]geom.Point, scale float64) []geom.Polygon {
	type outerRing struct {
		grid []geom.Point
		area float64
		poly geom.Polygon
	}
	var outers []*outerRing
	var holes [][]geom.Point
	for _, r := range rings {
		switch ar := geom.Area(r); {
		case ar > 0:
			outers = append(outers, &outerRing{
				grid: r,
				area: ar,
				poly: geom.Polygon{Outer: toScene(r, scale)},
			})
		case ar < 0:
			holes = append(holes, r)
		}
	}

	for _, h := range holes {
		at := leftOf(h[0], h[1])
		var best *outerRing
		for _, o := range outers {
			if geom.PointInPolygon(at, o.grid) && (best == nil || o.area < best.area) {
				best = o
			}
		}
		if best != nil {
			best.poly.Holes = append(best.poly.Holes, toScene(h, scale))
		}
	}

	out := make([]geom.Polygon, len(outers))
	for i, o := range outers {
		out[i] = o.poly
	}
	return out
}

// leftOf returns a point a quarter grid unit to the left of the midpoint of
// a->b. For a clockwise hole that point lies in the filled region around it.
func leftOf(a, b geom.Point) geom.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	return geom.Point{
		X: (a.X+b.X)/2 - dy/l*0.25,
		Y: (a.Y+b.Y)/2 + dx/l*0.25,
	}
}
