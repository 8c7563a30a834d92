// Package scene holds the ordered primitive list of a drawing.
//
// The list starts with the cursor. Every committed stroke adds a shape
// group: a Boundary followed immediately by its Fill primitives. Groups are
// addressed by shape index, which is assigned in creation order and does not
// change when groups are reordered. Draw order is list order; later
// primitives are painted over earlier ones.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"turtlegfx/internal/geom"
)

// ErrShapeIndex is returned for shape indices that do not name a group.
var ErrShapeIndex = errors.New("scene: shape index out of range")

// Scene is an ordered list of primitives. The zero value is not usable; use New.
type Scene struct {
	prims []Primitive
	index []int // shape index -> position of its Boundary
}

// New returns a scene containing only the cursor.
func New(c Cursor) *Scene {
	return &Scene{prims: []Primitive{&c}}
}

// Len returns the number of shape groups.
func (s *Scene) Len() int {
	return len(s.index)
}

// Cursor returns a copy of the cursor primitive.
func (s *Scene) Cursor() Cursor {
	return *s.prims[0].(*Cursor)
}

// SetCursor replaces the cursor primitive.
func (s *Scene) SetCursor(c Cursor) {
	s.prims[0] = &c
}

// AddGroup appends a boundary and its fills as a new shape and returns the
// shape index.
func (s *Scene) AddGroup(b Boundary, fills []Fill) int {
	shape := len(s.index)
	b.Shape = shape
	b.RelatedItems = len(fills)
	s.index = append(s.index, len(s.prims))
	s.prims = append(s.prims, &b)
	for _, f := range fills {
		f.Shape = shape
		s.prims = append(s.prims, &f)
	}
	return shape
}

// Position returns the list position of the boundary of shape.
func (s *Scene) Position(shape int) (int, error) {
	if shape < 0 || shape >= len(s.index) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrShapeIndex, shape, len(s.index))
	}
	return s.index[shape], nil
}

// span returns the list range [lo, hi] covered by shape.
func (s *Scene) span(shape int) (lo, hi int, err error) {
	lo, err = s.Position(shape)
	if err != nil {
		return 0, 0, err
	}
	return lo, lo + s.prims[lo].(*Boundary).RelatedItems, nil
}

// Group returns copies of the boundary and fills of shape.
func (s *Scene) Group(shape int) (Boundary, []Fill, error) {
	lo, hi, err := s.span(shape)
	if err != nil {
		return Boundary{}, nil, err
	}
	b := *s.prims[lo].(*Boundary)
	fills := make([]Fill, 0, hi-lo)
	for _, p := range s.prims[lo+1 : hi+1] {
		fills = append(fills, *p.(*Fill))
	}
	return b, fills, nil
}

// Pivot returns the centroid of the outline of shape, ignoring the repeated
// closing vertex.
func (s *Scene) Pivot(shape int) (geom.Point, error) {
	lo, err := s.Position(shape)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Centroid(geom.OpenRing(s.prims[lo].(*Boundary).Vertices))
}

func (s *Scene) transformRange(lo, hi int, fn func([]geom.Point) []geom.Point) {
	for _, p := range s.prims[lo : hi+1] {
		switch p := p.(type) {
		case *Boundary:
			p.Vertices = fn(p.Vertices)
		case *Fill:
			p.Polygon = p.Polygon.Transform(fn)
		case *Cursor:
			panic("scene: cursor inside a shape group")
		}
	}
}

func (s *Scene) transformShape(shape int, fn func([]geom.Point) []geom.Point) error {
	lo, hi, err := s.span(shape)
	if err != nil {
		return err
	}
	s.transformRange(lo, hi, fn)
	return nil
}

// RotateShape rotates every primitive of shape by theta radians about the
// shape's centroid.
func (s *Scene) RotateShape(shape int, theta float64) error {
	pivot, err := s.Pivot(shape)
	if err != nil {
		return err
	}
	return s.transformShape(shape, func(vs []geom.Point) []geom.Point {
		return geom.Rotate(vs, theta, pivot)
	})
}

// TranslateShape moves every primitive of shape by distance along heading
// (radians).
func (s *Scene) TranslateShape(shape int, heading, distance float64) error {
	return s.transformShape(shape, func(vs []geom.Point) []geom.Point {
		return geom.Translate(vs, heading, distance)
	})
}

// ScaleShape scales every primitive of shape by factor about the shape's
// centroid. The factor is expected to be positive.
func (s *Scene) ScaleShape(shape int, factor float64) error {
	pivot, err := s.Pivot(shape)
	if err != nil {
		return err
	}
	return s.transformShape(shape, func(vs []geom.Point) []geom.Point {
		return geom.Scale(vs, factor, pivot)
	})
}

// RecolorShape sets the colour of every fill of shape. A nil colour hides
// the fills with Ghost; any other colour is applied fully opaque. The
// boundary keeps its colour.
func (s *Scene) RecolorShape(shape int, c *Color) error {
	lo, hi, err := s.span(shape)
	if err != nil {
		return err
	}
	col := Ghost
	if c != nil {
		col = c.Opaque()
	}
	for _, p := range s.prims[lo+1 : hi+1] {
		p.(*Fill).Color = col
	}
	return nil
}

// BringToFront moves shape to the end of the list so it draws on top.
func (s *Scene) BringToFront(shape int) error {
	lo, hi, err := s.span(shape)
	if err != nil {
		return err
	}
	group := slices.Clone(s.prims[lo : hi+1])
	s.prims = append(slices.Delete(s.prims, lo, hi+1), group...)
	s.reindex()
	return nil
}

// BringToBack moves shape right behind the cursor so it draws below every
// other shape.
func (s *Scene) BringToBack(shape int) error {
	lo, hi, err := s.span(shape)
	if err != nil {
		return err
	}
	group := slices.Clone(s.prims[lo : hi+1])
	s.prims = slices.Insert(slices.Delete(s.prims, lo, hi+1), 1, group...)
	s.reindex()
	return nil
}

// RotateAll rotates every shape by theta radians about a shared pivot. The
// cursor is not moved.
func (s *Scene) RotateAll(theta float64, pivot geom.Point) {
	if len(s.prims) > 1 {
		s.transformRange(1, len(s.prims)-1, func(vs []geom.Point) []geom.Point {
			return geom.Rotate(vs, theta, pivot)
		})
	}
}

// TranslateAll moves every shape by distance along heading (radians). The
// cursor is not moved.
func (s *Scene) TranslateAll(heading, distance float64) {
	if len(s.prims) > 1 {
		s.transformRange(1, len(s.prims)-1, func(vs []geom.Point) []geom.Point {
			return geom.Translate(vs, heading, distance)
		})
	}
}

// Clear removes every shape, keeping the cursor.
func (s *Scene) Clear() {
	clear(s.prims[1:])
	s.prims = s.prims[:1]
	s.index = s.index[:0]
}

// ShapeAt returns the shape whose fill contains p, testing the topmost
// drawn fill first.
func (s *Scene) ShapeAt(p geom.Point) (int, bool) {
	for i := len(s.prims) - 1; i > 0; i-- {
		if f, ok := s.prims[i].(*Fill); ok && f.Polygon.Contains(p) {
			return f.Shape, true
		}
	}
	return 0, false
}

// Primitives returns a snapshot of the list in draw order. Changing the
// returned primitives does not affect the scene.
func (s *Scene) Primitives() []Primitive {
	out := make([]Primitive, len(s.prims))
	for i, p := range s.prims {
		out[i] = clone(p)
	}
	return out
}

func (s *Scene) reindex() {
	for i, p := range s.prims {
		if b, ok := p.(*Boundary); ok {
			s.index[b.Shape] = i
		}
	}
}

// Validate checks the grouping invariant: the cursor comes first, every
// boundary is followed by exactly its fills, and the shape index points at
// every boundary.
func (s *Scene) Validate() error {
	if len(s.prims) == 0 {
		return errors.New("scene: no cursor")
	}
	if _, ok := s.prims[0].(*Cursor); !ok {
		return fmt.Errorf("scene: first primitive is %v, want cursor", s.prims[0].Kind())
	}
	seen := make([]bool, len(s.index))
	for i := 1; i < len(s.prims); {
		b, ok := s.prims[i].(*Boundary)
		if !ok {
			return fmt.Errorf("scene: %v at %d outside a shape group", s.prims[i].Kind(), i)
		}
		if b.Shape < 0 || b.Shape >= len(s.index) || seen[b.Shape] {
			return fmt.Errorf("scene: bad shape index %d at %d", b.Shape, i)
		}
		seen[b.Shape] = true
		if s.index[b.Shape] != i {
			return fmt.Errorf("scene: shape %d indexed at %d, found at %d", b.Shape, s.index[b.Shape], i)
		}
		if i+b.RelatedItems >= len(s.prims) {
			return fmt.Errorf("scene: shape %d runs past the end", b.Shape)
		}
		for j := i + 1; j <= i+b.RelatedItems; j++ {
			f, ok := s.prims[j].(*Fill)
			if !ok || f.Shape != b.Shape {
				return fmt.Errorf("scene: position %d is not a fill of shape %d", j, b.Shape)
			}
		}
		i += b.RelatedItems + 1
	}
	for shape, ok := range seen {
		if !ok {
			return fmt.Errorf("scene: shape %d missing", shape)
		}
	}
	return nil
}
