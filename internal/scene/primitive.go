package scene

import (
	"fmt"

	"turtlegfx/internal/geom"
)

// Kind identifies a primitive variant.
type Kind int

const (
	KindCursor Kind = iota
	KindBoundary
	KindFill
)

func (k Kind) String() string {
	switch k {
	case KindCursor:
		return "cursor"
	case KindBoundary:
		return "boundary"
	case KindFill:
		return "fill"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Primitive is one renderable entry of a scene. The set of implementations
// is closed: *Cursor, *Boundary and *Fill.
type Primitive interface {
	Kind() Kind
	primitive()
}

// Cursor is the brush marker. It is always the first primitive.
type Cursor struct {
	Vertices []geom.Point
	Color    Color
	Heading  float64 // degrees
	Centroid geom.Point
}

// Boundary is the closed outline of a committed stroke. The RelatedItems
// primitives that follow it are its fills.
type Boundary struct {
	Shape        int
	Vertices     []geom.Point
	Color        Color
	RelatedItems int
}

// Fill is one simple polygon of a shape with its triangulation.
type Fill struct {
	Shape   int
	Polygon geom.Polygon
	Indices []int
	Color   Color
}

func (*Cursor) Kind() Kind   { return KindCursor }
func (*Boundary) Kind() Kind { return KindBoundary }
func (*Fill) Kind() Kind     { return KindFill }

func (*Cursor) primitive()   {}
func (*Boundary) primitive() {}
func (*Fill) primitive()     {}

// clone returns a shallow copy of p. Vertex slices are shared; they are
// never modified in place.
func clone(p Primitive) Primitive {
	switch p := p.(type) {
	case *Cursor:
		c := *p
		return &c
	case *Boundary:
		b := *p
		return &b
	case *Fill:
		f := *p
		return &f
	default:
		panic(fmt.Sprintf("scene: unknown primitive %T", p))
	}
}
