package geom

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func ringsNear(a, b []Point, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Near(b[i], tol) {
			return false
		}
	}
	return true
}

var square = []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

func TestCentroid(t *testing.T) {
	c, err := Centroid(square)
	if err != nil {
		t.Fatalf("Centroid() error = %v", err)
	}
	if !c.Near(Pt(5, 5), eps) {
		t.Errorf("Centroid() = %v, want (5,5)", c)
	}

	if _, err := Centroid(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Centroid(nil) error = %v, want ErrEmpty", err)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pivot := Pt(3, -7)
	for _, theta := range []float64{0, 0.3, math.Pi / 4, math.Pi, -2.5, 7} {
		got := Rotate(Rotate(square, theta, pivot), -theta, pivot)
		if !ringsNear(got, square, 1e-9) {
			t.Errorf("Rotate(%v) then Rotate(%v) = %v, want %v", theta, -theta, got, square)
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	got := Rotate([]Point{{1, 0}}, math.Pi/2, Pt(0, 0))
	if !got[0].Near(Pt(0, 1), eps) {
		t.Errorf("Rotate((1,0), 90deg) = %v, want (0,1) (counter-clockwise)", got[0])
	}

	got = Rotate([]Point{{2, 1}}, math.Pi, Pt(1, 1))
	if !got[0].Near(Pt(0, 1), eps) {
		t.Errorf("Rotate((2,1), 180deg about (1,1)) = %v, want (0,1)", got[0])
	}
}

func TestRotateComposes(t *testing.T) {
	pivot := Pt(5, 5)
	a := Rotate(Rotate(square, 0.4, pivot), 0.9, pivot)
	b := Rotate(square, 1.3, pivot)
	if !ringsNear(a, b, 1e-9) {
		t.Errorf("Rotate(0.4)+Rotate(0.9) = %v, want Rotate(1.3) = %v", a, b)
	}
}

func TestTranslateInverse(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 200, 359} {
		h := Radians(deg)
		got := Translate(Translate(square, h, 42), Radians(deg+180), 42)
		if !ringsNear(got, square, 1e-9) {
			t.Errorf("Translate at %v then %v = %v, want original", deg, deg+180, got)
		}
	}

	got := Translate([]Point{{250, 250}}, 0, 50)
	if !got[0].Near(Pt(300, 250), eps) {
		t.Errorf("Translate heading 0 = %v, want (300,250)", got[0])
	}
}

func TestScaleInverse(t *testing.T) {
	pivot := Pt(5, 5)
	for _, f := range []float64{0.5, 2, 3.7, 10} {
		got := Scale(Scale(square, f, pivot), 1/f, pivot)
		if !ringsNear(got, square, 1e-9) {
			t.Errorf("Scale(%v) then Scale(%v) = %v, want original", f, 1/f, got)
		}
	}

	got := Scale(square, 2, pivot)
	want := []Point{{-5, -5}, {15, -5}, {15, 15}, {-5, 15}}
	if !ringsNear(got, want, eps) {
		t.Errorf("Scale(2) = %v, want %v", got, want)
	}
}

func TestTransformsDoNotMutate(t *testing.T) {
	in := []Point{{1, 2}, {3, 4}}
	orig := append([]Point(nil), in...)
	Rotate(in, 1, Pt(0, 0))
	Translate(in, 1, 5)
	Scale(in, 3, Pt(1, 1))
	if !ringsNear(in, orig, 0) {
		t.Errorf("input mutated: %v, want %v", in, orig)
	}
}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		ring []Point
		want bool
	}{
		{"square centroid", Pt(5, 5), square, true},
		{"far outside", Pt(100, 100), square, false},
		{"left of square", Pt(-1, 5), square, false},
		{"closed ring", Pt(5, 5), append(append([]Point(nil), square...), square[0]), true},
		{"concave notch", Pt(5, 8), []Point{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}}, false},
		{"concave body", Pt(5, 2), []Point{{0, 0}, {10, 0}, {10, 10}, {5, 5}, {0, 10}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, tt.ring); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPolygonContainsHoles(t *testing.T) {
	p := Polygon{
		Outer: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Holes: [][]Point{{{4, 4}, {4, 6}, {6, 6}, {6, 4}}},
	}
	if p.Contains(Pt(5, 5)) {
		t.Error("Contains(5,5) = true, want false (inside hole)")
	}
	if !p.Contains(Pt(2, 2)) {
		t.Error("Contains(2,2) = false, want true")
	}
	if got := p.Area(); math.Abs(got-96) > eps {
		t.Errorf("Area() = %v, want 96", got)
	}
	if got := len(p.Points()); got != 8 {
		t.Errorf("len(Points()) = %d, want 8", got)
	}
}

func TestAreaAndOpenRing(t *testing.T) {
	if got := Area(square); math.Abs(got-100) > eps {
		t.Errorf("Area(ccw square) = %v, want 100", got)
	}
	closed := append(append([]Point(nil), square...), square[0])
	if got := len(OpenRing(closed)); got != 4 {
		t.Errorf("len(OpenRing(closed)) = %d, want 4", got)
	}
	if got := len(OpenRing(square)); got != 4 {
		t.Errorf("len(OpenRing(open)) = %d, want 4", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {45, 45}, {360, 0}, {-45, 315}, {405, 45}, {-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
