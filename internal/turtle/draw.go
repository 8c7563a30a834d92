package turtle

import (
	"fmt"
	"math"
	"slices"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/scene"
	"turtlegfx/internal/triangulate"
)

func (c *Controller) limitReached() bool {
	return c.state.ShapeCount >= c.state.MaxShapes-1
}

// MoveForward moves the brush by the displacement along the heading. With the
// pen down the new position is appended to the ongoing stroke; with the pen
// up the stroke restarts at the new position.
func (c *Controller) MoveForward() error {
	if err := c.require(Draw); err != nil {
		return err
	}
	if c.limitReached() {
		Logger().Warn("move refused", "shapes", c.state.ShapeCount+1, "max", c.state.MaxShapes)
		return fmt.Errorf("%w: %d shapes", ErrLimitReached, c.state.MaxShapes)
	}
	c.move()
	return nil
}

func (c *Controller) move() {
	theta := geom.Radians(c.state.Heading)
	d := c.state.Displacement
	next := geom.Translate([]geom.Point{c.state.Position}, theta, d)[0]
	if c.state.PenDown {
		c.state.Ongoing = append(c.state.Ongoing, next)
	} else {
		c.state.Ongoing = []geom.Point{next}
	}
	c.state.Position = next

	cur := c.scene.Cursor()
	cur.Vertices = geom.Translate(cur.Vertices, theta, d)
	cur.Centroid = geom.Translate([]geom.Point{cur.Centroid}, theta, d)[0]
	c.scene.SetCursor(cur)
	Logger().Debug("brush moved", "x", next.X, "y", next.Y, "pen", c.state.PenDown)
}

// TogglePen lifts or lowers the pen. Lifting it with at least two recorded
// points commits the stroke and returns the new shape index; otherwise it
// returns -1. The ongoing stroke always restarts at the brush position.
func (c *Controller) TogglePen() (int, error) {
	if err := c.require(Draw); err != nil {
		return -1, err
	}
	shape := -1
	var err error
	if c.state.PenDown && len(c.state.Ongoing) >= 2 {
		shape, err = c.commit(c.state.Ongoing)
	}
	c.state.PenDown = !c.state.PenDown
	c.state.Ongoing = []geom.Point{c.state.Position}
	c.refreshCursor()
	return shape, err
}

// commit closes stroke, resolves it into simple polygons, triangulates each
// and adds the result as one shape group.
func (c *Controller) commit(stroke []geom.Point) (int, error) {
	ring := slices.Clone(stroke)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	polys, err := c.resolver.Resolve(ring)
	if err != nil {
		Logger().Warn("stroke not committed", "points", len(ring), "err", err)
		return -1, fmt.Errorf("commit stroke: %w", err)
	}

	var fills []scene.Fill
	for _, p := range polys {
		idx, err := triangulate.Triangulate(p)
		if err != nil {
			Logger().Debug("polygon skipped", "vertices", len(p.Outer), "err", err)
			continue
		}
		fills = append(fills, scene.Fill{Polygon: p, Indices: idx, Color: c.state.FillColor})
	}
	if len(fills) == 0 {
		Logger().Info("stroke encloses no area", "points", len(ring))
		return -1, nil
	}

	shape := c.scene.AddGroup(scene.Boundary{Vertices: ring, Color: scene.BoundaryColor}, fills)
	c.state.ShapeCount = shape
	if c.state.Selected < 0 {
		c.state.Selected = shape
	}
	Logger().Info("shape committed", "shape", shape, "fills", len(fills))
	return shape, nil
}

func (c *Controller) refreshCursor() {
	cur := c.scene.Cursor()
	cur.Color = c.cursorColor()
	c.scene.SetCursor(cur)
}

// ToggleCursorVisible shows or hides the cursor.
func (c *Controller) ToggleCursorVisible() {
	c.state.CursorVisible = !c.state.CursorVisible
	c.refreshCursor()
}

// Turn changes the heading by deg degrees; sign is +1 for counter-clockwise
// and -1 for clockwise.
func (c *Controller) Turn(sign int, deg float64) error {
	if err := c.require(Draw); err != nil {
		return err
	}
	if (sign != 1 && sign != -1) || !finite(deg) {
		return fmt.Errorf("%w: turn %d*%g", ErrInvalidValue, sign, deg)
	}
	c.setHeading(c.state.Heading + float64(sign)*deg)
	return nil
}

// TurnStep turns by the configured step.
func (c *Controller) TurnStep(sign int) error {
	return c.Turn(sign, c.state.TurnStep)
}

// ResetHeading points the brush back along +x.
func (c *Controller) ResetHeading() error {
	if err := c.require(Draw); err != nil {
		return err
	}
	c.setHeading(0)
	return nil
}

// setHeading rotates the cursor about its centroid to face deg.
func (c *Controller) setHeading(deg float64) {
	deg = geom.NormalizeDegrees(deg)
	cur := c.scene.Cursor()
	cur.Vertices = geom.Rotate(cur.Vertices, geom.Radians(deg-cur.Heading), cur.Centroid)
	cur.Heading = deg
	c.scene.SetCursor(cur)
	c.state.Heading = deg
	Logger().Debug("heading set", "deg", deg)
}

// ChangeDisplacement grows (sign +1) or shrinks (sign -1) the displacement
// by the configured step, never going below the minimum.
func (c *Controller) ChangeDisplacement(sign int) error {
	if sign != 1 && sign != -1 {
		return fmt.Errorf("%w: sign %d", ErrInvalidValue, sign)
	}
	return c.SetDisplacement(c.state.Displacement + float64(sign)*c.state.DisplacementStep)
}

// SetDisplacement sets the move distance. Positive values below the minimum
// are raised to it.
func (c *Controller) SetDisplacement(d float64) error {
	if !finite(d) {
		return fmt.Errorf("%w: displacement %g", ErrInvalidValue, d)
	}
	c.state.Displacement = max(d, c.state.MinDisplacement)
	return nil
}

// SetMaxShapes changes the shape limit. It is refused once any shape exists.
func (c *Controller) SetMaxShapes(n int) error {
	if c.state.ShapeCount > -1 {
		Logger().Warn("max shapes refused", "shapes", c.state.ShapeCount+1)
		return ErrShapesPresent
	}
	if n < 1 {
		return fmt.Errorf("%w: max shapes %d", ErrInvalidValue, n)
	}
	c.state.MaxShapes = n
	return nil
}

// Drag points the brush from from towards to and moves it by their
// distance. Drags shorter than the minimum displacement are ignored and
// report false.
func (c *Controller) Drag(from, to geom.Point) (bool, error) {
	if err := c.require(Draw); err != nil {
		return false, err
	}
	dist := from.Distance(to)
	if !finite(dist) || dist < c.state.MinDisplacement {
		return false, nil
	}
	if c.limitReached() {
		Logger().Warn("drag refused", "shapes", c.state.ShapeCount+1, "max", c.state.MaxShapes)
		return false, fmt.Errorf("%w: %d shapes", ErrLimitReached, c.state.MaxShapes)
	}
	d := to.Sub(from)
	c.setHeading(geom.Degrees(math.Atan2(d.Y, d.X)))
	c.state.Displacement = dist
	c.move()
	return true, nil
}
