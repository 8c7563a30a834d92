// Package render rasterises controller frames with gg.
//
// Scene coordinates have their origin at the bottom left with Y up. Images
// are scaled so the whole canvas fits the requested size.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"

	"github.com/fogleman/gg"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/scene"
	"turtlegfx/internal/turtle"
)

var ErrSize = errors.New("render: invalid image size")

// Options controls what is drawn besides the scene itself.
type Options struct {
	// Labels draws each shape index at the centre of its outline.
	Labels    bool
	LabelSize float64
	// Highlight outlines the selected shape more heavily in ShapeEdit mode.
	Highlight bool
}

var background = color.White

const (
	lineWidth      = 1
	highlightWidth = 3
	pointRadius    = 2
)

// Image draws f into a w by h image.
func Image(f turtle.Frame, w, h int, opts Options) (image.Image, error) {
	dc, err := draw(f, w, h, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG draws f at canvas size and saves it to filename.
func WritePNG(f turtle.Frame, filename string, opts Options) error {
	dc, err := draw(f, int(f.Width), int(f.Height), opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

// EncodePNG draws f at canvas size and writes it to w as PNG.
func EncodePNG(w io.Writer, f turtle.Frame, opts Options) error {
	img, err := Image(f, int(f.Width), int(f.Height), opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func draw(f turtle.Frame, w, h int, opts Options) (*gg.Context, error) {
	if w < 1 || h < 1 || f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d for canvas %gx%g", ErrSize, w, h, f.Width, f.Height)
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(background)
	dc.Clear()

	dc.InvertY()
	dc.Scale(float64(w)/f.Width, float64(h)/f.Height)
	dc.SetLineWidth(lineWidth)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, p := range f.Primitives {
		switch p := p.(type) {
		case *scene.Cursor:
			drawCursor(dc, p)
		case *scene.Boundary:
			width := float64(lineWidth)
			if opts.Highlight && f.Mode == turtle.ShapeEdit && p.Shape == f.Selected {
				width = highlightWidth
			}
			drawBoundary(dc, p, width)
		case *scene.Fill:
			drawFill(dc, p)
		}
	}
	drawStroke(dc, f.Ongoing)

	if opts.Labels {
		if err := drawLabels(dc, f, opts.LabelSize); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func path(dc *gg.Context, vs []geom.Point) {
	for i, v := range vs {
		if i == 0 {
			dc.MoveTo(v.X, v.Y)
		} else {
			dc.LineTo(v.X, v.Y)
		}
	}
}

// drawFill fills the triangles of f. Triangles from one polygon share an
// orientation, so a single winding path covers them without seams.
func drawFill(dc *gg.Context, f *scene.Fill) {
	if !f.Color.Visible() || len(f.Indices) < 3 {
		return
	}
	pts := f.Polygon.Points()
	for i := 0; i+2 < len(f.Indices); i += 3 {
		path(dc, []geom.Point{pts[f.Indices[i]], pts[f.Indices[i+1]], pts[f.Indices[i+2]]})
		dc.ClosePath()
	}
	dc.SetFillRuleWinding()
	dc.SetColor(f.Color.NRGBA())
	dc.Fill()
}

func drawBoundary(dc *gg.Context, b *scene.Boundary, width float64) {
	if len(b.Vertices) < 2 || !b.Color.Visible() {
		return
	}
	path(dc, b.Vertices)
	dc.ClosePath()
	dc.SetLineWidth(width)
	dc.SetColor(b.Color.NRGBA())
	dc.Stroke()
	dc.SetLineWidth(lineWidth)
}

func drawStroke(dc *gg.Context, vs []geom.Point) {
	if len(vs) < 2 {
		return
	}
	path(dc, vs)
	dc.SetColor(scene.StrokeColor.NRGBA())
	dc.Stroke()
}

func drawCursor(dc *gg.Context, c *scene.Cursor) {
	if !c.Color.Visible() || len(c.Vertices) < 3 {
		return
	}
	dc.SetColor(c.Color.NRGBA())
	path(dc, c.Vertices)
	dc.ClosePath()
	dc.FillPreserve()
	dc.SetColor(scene.BoundaryColor.NRGBA())
	dc.Stroke()
	dc.DrawPoint(c.Centroid.X, c.Centroid.Y, pointRadius)
	dc.Fill()
}

// drawLabels writes each shape index at its outline centroid. Text is drawn
// in device space so it is not mirrored by the Y flip.
func drawLabels(dc *gg.Context, f turtle.Frame, size float64) error {
	face, err := labelFace(size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(scene.BoundaryColor.NRGBA())
	for _, p := range f.Primitives {
		b, ok := p.(*scene.Boundary)
		if !ok {
			continue
		}
		c, err := geom.Centroid(geom.OpenRing(b.Vertices))
		if err != nil {
			continue
		}
		x, y := dc.TransformPoint(c.X, c.Y)
		dc.Push()
		dc.Identity()
		dc.DrawStringAnchored(strconv.Itoa(b.Shape), x, y, 0.5, 0.5)
		dc.Pop()
	}
	return nil
}
