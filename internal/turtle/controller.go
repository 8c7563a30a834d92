// Package turtle drives a drawing from turtle-graphics commands.
//
// A Controller owns the brush state and the scene. Draw mode moves the brush
// and records the stroke while the pen is down; lifting the pen commits the
// stroke as a filled shape. ShapeEdit mode transforms, recolours and reorders
// one committed shape. SceneEdit mode transforms every shape at once.
package turtle

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/resolve"
	"turtlegfx/internal/scene"
)

var (
	ErrLimitReached  = errors.New("turtle: shape limit reached")
	ErrShapesPresent = errors.New("turtle: scene already has shapes")
	ErrNoSelection   = errors.New("turtle: no shape selected")
	ErrInvalidValue  = errors.New("turtle: invalid value")
	ErrWrongMode     = errors.New("turtle: command not available in this mode")
)

// Controller applies commands to a brush and a scene. It is not safe for
// concurrent use.
type Controller struct {
	state    State
	scene    *scene.Scene
	resolver *resolve.Resolver
}

// New returns a controller with the brush at the canvas centre, heading 0
// and the pen down.
func New(opts Options) (*Controller, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	fill, err := scene.ParseHex(opts.FillColor)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		resolver: resolve.New(opts.Precision, opts.FillRule),
		state: State{
			Width:            opts.CanvasWidth,
			Height:           opts.CanvasHeight,
			PenDown:          true,
			CursorVisible:    true,
			Displacement:     max(opts.Displacement, opts.MinDisplacement),
			MinDisplacement:  opts.MinDisplacement,
			DisplacementStep: opts.DisplacementStep,
			TurnStep:         opts.TurnStep,
			FillColor:        fill,
			MaxShapes:        opts.MaxShapes,
			ShapeCount:       -1,
			Mode:             Draw,
			Selected:         -1,
			EditAngle:        opts.EditAngle,
			EditDistance:     opts.EditDistance,
			ScaleFactor:      opts.ScaleFactor,
		},
	}
	c.state.Position = c.state.Center()
	c.state.Ongoing = []geom.Point{c.state.Position}
	c.scene = scene.New(c.newCursor())
	return c, nil
}

func (o Options) validate() error {
	switch {
	case !positive(o.CanvasWidth) || !positive(o.CanvasHeight):
		return fmt.Errorf("%w: canvas %gx%g", ErrInvalidValue, o.CanvasWidth, o.CanvasHeight)
	case !positive(o.MinDisplacement) || !finite(o.Displacement):
		return fmt.Errorf("%w: displacement %g (min %g)", ErrInvalidValue, o.Displacement, o.MinDisplacement)
	case !positive(o.DisplacementStep):
		return fmt.Errorf("%w: displacement step %g", ErrInvalidValue, o.DisplacementStep)
	case !positive(o.TurnStep):
		return fmt.Errorf("%w: turn step %g", ErrInvalidValue, o.TurnStep)
	case o.MaxShapes < 1:
		return fmt.Errorf("%w: max shapes %d", ErrInvalidValue, o.MaxShapes)
	case !positive(o.ScaleFactor):
		return fmt.Errorf("%w: scale factor %g", ErrInvalidValue, o.ScaleFactor)
	case !finite(o.EditAngle) || !finite(o.EditDistance):
		return fmt.Errorf("%w: edit angle %g distance %g", ErrInvalidValue, o.EditAngle, o.EditDistance)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

// newCursor builds the cursor triangle at the brush position, pointing along
// the current heading.
func (c *Controller) newCursor() scene.Cursor {
	p := c.state.Position
	vs := []geom.Point{
		{X: p.X - 10, Y: p.Y + 5},
		{X: p.X - 10, Y: p.Y - 5},
		{X: p.X + 20, Y: p.Y},
	}
	centroid, _ := geom.Centroid(vs)
	vs = geom.Rotate(vs, geom.Radians(c.state.Heading), centroid)
	return scene.Cursor{
		Vertices: vs,
		Color:    c.cursorColor(),
		Heading:  c.state.Heading,
		Centroid: centroid,
	}
}

func (c *Controller) cursorColor() scene.Color {
	switch {
	case !c.state.CursorVisible:
		return scene.Transparent
	case c.state.PenDown:
		return scene.CursorColor
	default:
		return scene.PenUpColor
	}
}

func (c *Controller) require(m Mode) error {
	if c.state.Mode != m {
		return fmt.Errorf("%w: %s needs %s", ErrWrongMode, c.state.Mode, m)
	}
	return nil
}

// State returns a copy of the brush state.
func (c *Controller) State() State {
	s := c.state
	s.Ongoing = slices.Clone(c.state.Ongoing)
	return s
}

// ShapeCount returns the index of the newest shape, or -1 when the scene is
// empty.
func (c *Controller) ShapeCount() int {
	return c.state.ShapeCount
}

// Frame returns a snapshot for rendering.
func (c *Controller) Frame() Frame {
	return Frame{
		Width:      c.state.Width,
		Height:     c.state.Height,
		Primitives: c.scene.Primitives(),
		Ongoing:    slices.Clone(c.state.Ongoing),
		Mode:       c.state.Mode,
		PenDown:    c.state.PenDown,
		Selected:   c.state.Selected,
	}
}

// Validate checks that the scene and the brush state agree.
func (c *Controller) Validate() error {
	if err := c.scene.Validate(); err != nil {
		return err
	}
	if n := c.scene.Len(); n-1 != c.state.ShapeCount {
		return fmt.Errorf("turtle: shape count %d, scene has %d groups", c.state.ShapeCount, n)
	}
	if c.state.Selected > c.state.ShapeCount {
		return fmt.Errorf("turtle: selection %d beyond shape count %d", c.state.Selected, c.state.ShapeCount)
	}
	return nil
}

// CycleMode switches to the next mode.
func (c *Controller) CycleMode() Mode {
	c.SetMode(c.state.Mode.Next())
	return c.state.Mode
}

// SetMode switches to m.
func (c *Controller) SetMode(m Mode) {
	if m < 0 || m >= numModes {
		return
	}
	c.state.Mode = m
	Logger().Info("mode changed", "mode", m)
}

// SetFillColor sets the colour of future fills and of RecolorSelected.
func (c *Controller) SetFillColor(hex string) error {
	col, err := scene.ParseHex(hex)
	if err != nil {
		Logger().Warn("fill colour refused", "value", hex)
		return err
	}
	c.state.FillColor = col
	return nil
}

// SetEditAngle sets the angle in degrees used by rotate and translate edits.
func (c *Controller) SetEditAngle(deg float64) error {
	if !finite(deg) {
		return fmt.Errorf("%w: angle %g", ErrInvalidValue, deg)
	}
	c.state.EditAngle = deg
	return nil
}

// SetEditDistance sets the distance used by translate edits.
func (c *Controller) SetEditDistance(d float64) error {
	if !finite(d) {
		return fmt.Errorf("%w: distance %g", ErrInvalidValue, d)
	}
	c.state.EditDistance = d
	return nil
}

// SetScaleFactor sets the factor used by ScaleSelected. It must be positive.
func (c *Controller) SetScaleFactor(f float64) error {
	if !positive(f) {
		return fmt.Errorf("%w: scale factor %g", ErrInvalidValue, f)
	}
	c.state.ScaleFactor = f
	return nil
}
