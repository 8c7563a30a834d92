package main

import (
	"image"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/render"
)

// viewport maps the drawing canvas onto terminal cells. Each cell shows two
// vertically stacked pixels, so pixels are roughly square.
type viewport struct {
	cols, rows int     // cells used by the image
	pw, ph     int     // image size in pixels
	sx, sy     float64 // pixels per scene unit
	canvasH    float64
}

// newViewport fits a canvasW x canvasH canvas into width x height cells,
// keeping its aspect ratio.
func newViewport(width, height int, canvasW, canvasH float64) viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := min(float64(width)/canvasW, float64(2*height)/canvasH)
	pw := max(int(canvasW*s), 1)
	ph := max(int(canvasH*s), 1)
	return viewport{
		cols:    pw,
		rows:    (ph + 1) / 2,
		pw:      pw,
		ph:      ph,
		sx:      float64(pw) / canvasW,
		sy:      float64(ph) / canvasH,
		canvasH: canvasH,
	}
}

func (m *model) viewport() viewport {
	f := m.ctrl.Frame()
	return newViewport(m.width, m.height-statusLines, f.Width, f.Height)
}

// renderCanvas draws the current frame as styled terminal rows.
func (m *model) renderCanvas() ([]string, error) {
	v := m.viewport()
	img, err := render.Image(m.ctrl.Frame(), v.pw, v.ph, render.Options{Highlight: true})
	if err != nil {
		return nil, err
	}
	return render.Cells(img), nil
}

// toScene converts the centre of cell (x, y) into scene coordinates. It
// reports false for cells outside the image.
func (v viewport) toScene(x, y int) (geom.Point, bool) {
	if !image.Pt(x, y).In(image.Rect(0, 0, v.cols, v.rows)) {
		return geom.Point{}, false
	}
	px := float64(x) + 0.5
	py := float64(2*y) + 1
	return geom.Pt(px/v.sx, v.canvasH-py/v.sy), true
}
