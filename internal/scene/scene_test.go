package scene

import (
	"errors"
	"math"
	"testing"

	"turtlegfx/internal/geom"
)

func newTestScene() *Scene {
	return New(Cursor{
		Vertices: []geom.Point{{X: 240, Y: 255}, {X: 240, Y: 245}, {X: 270, Y: 250}},
		Color:    CursorColor,
	})
}

// square returns a closed square outline and its single fill.
func square(x, y, size float64, c Color) (Boundary, []Fill) {
	ring := []geom.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
	b := Boundary{
		Vertices: append(append([]geom.Point(nil), ring...), ring[0]),
		Color:    BoundaryColor,
	}
	return b, []Fill{{
		Polygon: geom.Polygon{Outer: ring},
		Indices: []int{0, 1, 2, 0, 2, 3},
		Color:   c,
	}}
}

func mustValidate(t *testing.T, s *Scene) {
	t.Helper()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func shapeOrder(s *Scene) []int {
	var order []int
	for _, p := range s.Primitives() {
		if b, ok := p.(*Boundary); ok {
			order = append(order, b.Shape)
		}
	}
	return order
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddGroup(t *testing.T) {
	s := newTestScene()
	red := MustParseHex("ff0000")

	b, fills := square(0, 0, 10, red)
	if got := s.AddGroup(b, fills); got != 0 {
		t.Errorf("AddGroup() = %d, want 0", got)
	}
	b, fills = square(20, 0, 10, red)
	fills = append(fills, fills[0])
	if got := s.AddGroup(b, fills); got != 1 {
		t.Errorf("AddGroup() = %d, want 1", got)
	}
	mustValidate(t, s)

	prims := s.Primitives()
	if len(prims) != 6 {
		t.Fatalf("len(Primitives()) = %d, want 6", len(prims))
	}
	wantKinds := []Kind{KindCursor, KindBoundary, KindFill, KindBoundary, KindFill, KindFill}
	for i, p := range prims {
		if p.Kind() != wantKinds[i] {
			t.Errorf("Primitives()[%d].Kind() = %v, want %v", i, p.Kind(), wantKinds[i])
		}
	}
	if rel := prims[3].(*Boundary).RelatedItems; rel != 2 {
		t.Errorf("RelatedItems = %d, want 2", rel)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestTransformsKeepGroupCoincident(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("00ff00"))
	s.AddGroup(b, fills)

	if err := s.RotateShape(0, math.Pi/2); err != nil {
		t.Fatalf("RotateShape() error = %v", err)
	}
	if err := s.ScaleShape(0, 2); err != nil {
		t.Fatalf("ScaleShape() error = %v", err)
	}
	if err := s.TranslateShape(0, 0, 5); err != nil {
		t.Fatalf("TranslateShape() error = %v", err)
	}

	gb, gf, err := s.Group(0)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	// The pivot is (5,5): the closing vertex must not pull it toward (0,0).
	want := []geom.Point{{X: 20, Y: -5}, {X: 20, Y: 15}, {X: 0, Y: 15}, {X: 0, Y: -5}}
	for i, w := range want {
		if !gb.Vertices[i].Near(w, 1e-9) {
			t.Errorf("boundary[%d] = %v, want %v", i, gb.Vertices[i], w)
		}
		if !gf[0].Polygon.Outer[i].Near(gb.Vertices[i], 1e-9) {
			t.Errorf("fill[%d] = %v, boundary = %v: outline and fill diverged", i, gf[0].Polygon.Outer[i], gb.Vertices[i])
		}
	}
	mustValidate(t, s)
}

func TestRecolorGhostAndRestore(t *testing.T) {
	s := newTestScene()
	red := MustParseHex("ff0000")
	b, fills := square(0, 0, 10, red)
	s.AddGroup(b, fills)

	before, _, _ := s.Group(0)
	if err := s.RecolorShape(0, nil); err != nil {
		t.Fatalf("RecolorShape(nil) error = %v", err)
	}
	gb, gf, _ := s.Group(0)
	if gf[0].Color.A != 0 {
		t.Errorf("fill alpha = %v, want 0", gf[0].Color.A)
	}
	if gb.Color != before.Color {
		t.Errorf("boundary colour changed to %v", gb.Color)
	}
	if len(gf[0].Polygon.Outer) != 4 {
		t.Errorf("fill vertices changed: %v", gf[0].Polygon.Outer)
	}

	blue := MustParseHex("0000ff")
	blue.A = 0.3
	if err := s.RecolorShape(0, &blue); err != nil {
		t.Fatalf("RecolorShape(blue) error = %v", err)
	}
	_, gf, _ = s.Group(0)
	if gf[0].Color.A != 1 || gf[0].Color.B != 1 {
		t.Errorf("fill colour = %+v, want opaque blue", gf[0].Color)
	}
}

func TestReorder(t *testing.T) {
	s := newTestScene()
	for i := 0; i < 3; i++ {
		b, fills := square(float64(i*20), 0, 10, MustParseHex("ff0000"))
		s.AddGroup(b, fills)
	}

	if err := s.BringToFront(0); err != nil {
		t.Fatalf("BringToFront(0) error = %v", err)
	}
	mustValidate(t, s)
	if got := shapeOrder(s); !equalInts(got, []int{1, 2, 0}) {
		t.Errorf("order after BringToFront(0) = %v, want [1 2 0]", got)
	}

	if err := s.BringToBack(2); err != nil {
		t.Fatalf("BringToBack(2) error = %v", err)
	}
	mustValidate(t, s)
	if got := shapeOrder(s); !equalInts(got, []int{2, 1, 0}) {
		t.Errorf("order after BringToBack(2) = %v, want [2 1 0]", got)
	}

	// Shape indices survive reordering.
	pos, err := s.Position(0)
	if err != nil {
		t.Fatalf("Position(0) error = %v", err)
	}
	if got := s.Primitives()[pos].(*Boundary).Vertices[0]; !got.Near(geom.Pt(0, 0), 0) {
		t.Errorf("shape 0 starts at %v, want (0,0)", got)
	}
}

func TestBringToBackOnlyShape(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("ff0000"))
	s.AddGroup(b, fills)

	if err := s.BringToBack(0); err != nil {
		t.Fatalf("BringToBack(0) error = %v", err)
	}
	mustValidate(t, s)
	if pos, _ := s.Position(0); pos != 1 {
		t.Errorf("Position(0) = %d, want 1", pos)
	}
}

func TestOutOfRange(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("ff0000"))
	s.AddGroup(b, fills)
	snapshot := s.Primitives()

	ops := map[string]func() error{
		"rotate":    func() error { return s.RotateShape(1, 1) },
		"translate": func() error { return s.TranslateShape(-1, 0, 1) },
		"scale":     func() error { return s.ScaleShape(5, 2) },
		"recolor":   func() error { return s.RecolorShape(1, nil) },
		"front":     func() error { return s.BringToFront(1) },
		"back":      func() error { return s.BringToBack(-1) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrShapeIndex) {
			t.Errorf("%s: error = %v, want ErrShapeIndex", name, err)
		}
	}
	mustValidate(t, s)
	after := s.Primitives()
	if len(after) != len(snapshot) {
		t.Fatalf("primitive count changed from %d to %d", len(snapshot), len(after))
	}
	if after[2].(*Fill).Color != snapshot[2].(*Fill).Color {
		t.Error("refused recolour changed the fill")
	}
}

func TestSceneWideTransformsSkipCursor(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("ff0000"))
	s.AddGroup(b, fills)
	cursor := s.Cursor()

	s.RotateAll(math.Pi, geom.Pt(250, 250))
	s.TranslateAll(0, 10)

	if got := s.Cursor(); !got.Vertices[0].Near(cursor.Vertices[0], 0) {
		t.Errorf("cursor moved to %v", got.Vertices)
	}
	gb, gf, _ := s.Group(0)
	if !gb.Vertices[0].Near(geom.Pt(510, 500), 1e-9) {
		t.Errorf("boundary[0] = %v, want (510,500)", gb.Vertices[0])
	}
	if !gf[0].Polygon.Outer[0].Near(gb.Vertices[0], 1e-9) {
		t.Errorf("fill[0] = %v, want %v", gf[0].Polygon.Outer[0], gb.Vertices[0])
	}
}

func TestShapeAtTopmostFirst(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 20, MustParseHex("ff0000"))
	s.AddGroup(b, fills)
	b, fills = square(10, 10, 20, MustParseHex("00ff00"))
	s.AddGroup(b, fills)

	tests := []struct {
		p      geom.Point
		want   int
		wantOK bool
	}{
		{geom.Pt(5, 5), 0, true},
		{geom.Pt(15, 15), 1, true},
		{geom.Pt(25, 25), 1, true},
		{geom.Pt(100, 100), 0, false},
	}
	for _, tt := range tests {
		got, ok := s.ShapeAt(tt.p)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ShapeAt(%v) = %d, %v; want %d, %v", tt.p, got, ok, tt.want, tt.wantOK)
		}
	}

	if err := s.BringToFront(0); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.ShapeAt(geom.Pt(15, 15)); got != 0 {
		t.Errorf("ShapeAt(15,15) after BringToFront(0) = %d, want 0", got)
	}
}

func TestClear(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("ff0000"))
	s.AddGroup(b, fills)
	s.Clear()
	mustValidate(t, s)
	if s.Len() != 0 || len(s.Primitives()) != 1 {
		t.Errorf("after Clear: Len() = %d, primitives = %d; want 0, 1", s.Len(), len(s.Primitives()))
	}
	b, fills = square(0, 0, 10, MustParseHex("ff0000"))
	if got := s.AddGroup(b, fills); got != 0 {
		t.Errorf("first AddGroup after Clear = %d, want 0", got)
	}
}

func TestPrimitivesSnapshot(t *testing.T) {
	s := newTestScene()
	b, fills := square(0, 0, 10, MustParseHex("ff0000"))
	s.AddGroup(b, fills)

	snap := s.Primitives()
	snap[2].(*Fill).Color = Ghost
	if _, gf, _ := s.Group(0); gf[0].Color == Ghost {
		t.Error("changing the snapshot changed the scene")
	}
}
