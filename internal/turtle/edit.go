package turtle

import (
	"fmt"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/scene"
)

// SelectShape makes shape the target of ShapeEdit commands.
func (c *Controller) SelectShape(shape int) error {
	if shape < 0 || shape > c.state.ShapeCount {
		Logger().Warn("selection refused", "shape", shape, "newest", c.state.ShapeCount)
		return fmt.Errorf("%w: %d", scene.ErrShapeIndex, shape)
	}
	c.state.Selected = shape
	return nil
}

// SelectAt selects the topmost shape whose fill contains p, ghosted shapes
// included. It works in every mode and reports whether a shape was hit.
func (c *Controller) SelectAt(p geom.Point) (int, bool) {
	shape, ok := c.scene.ShapeAt(p)
	if ok {
		c.state.Selected = shape
		Logger().Debug("shape picked", "shape", shape, "x", p.X, "y", p.Y)
	}
	return shape, ok
}

// selected returns the selected shape if ShapeEdit commands may act on it.
func (c *Controller) selected() (int, error) {
	if err := c.require(ShapeEdit); err != nil {
		return -1, err
	}
	if c.state.Selected < 0 || c.state.Selected > c.state.ShapeCount {
		return -1, ErrNoSelection
	}
	return c.state.Selected, nil
}

func (c *Controller) editShape(op string, fn func(shape int) error) error {
	shape, err := c.selected()
	if err != nil {
		return err
	}
	if err := fn(shape); err != nil {
		return fmt.Errorf("%s shape %d: %w", op, shape, err)
	}
	Logger().Debug("shape edited", "op", op, "shape", shape)
	return nil
}

// RotateSelected rotates the selected shape by the edit angle about its
// centroid.
func (c *Controller) RotateSelected() error {
	return c.editShape("rotate", func(shape int) error {
		return c.scene.RotateShape(shape, geom.Radians(c.state.EditAngle))
	})
}

// TranslateSelected moves the selected shape by the edit distance along the
// edit angle.
func (c *Controller) TranslateSelected() error {
	return c.editShape("translate", func(shape int) error {
		return c.scene.TranslateShape(shape, geom.Radians(c.state.EditAngle), c.state.EditDistance)
	})
}

// ScaleSelected scales the selected shape by the scale factor about its
// centroid.
func (c *Controller) ScaleSelected() error {
	return c.editShape("scale", func(shape int) error {
		return c.scene.ScaleShape(shape, c.state.ScaleFactor)
	})
}

// RecolorSelected paints the fills of the selected shape with the fill colour.
func (c *Controller) RecolorSelected() error {
	return c.editShape("recolor", func(shape int) error {
		col := c.state.FillColor
		return c.scene.RecolorShape(shape, &col)
	})
}

// ClearSelectedColor hides the fills of the selected shape. Its outline
// stays.
func (c *Controller) ClearSelectedColor() error {
	return c.editShape("clear colour", func(shape int) error {
		return c.scene.RecolorShape(shape, nil)
	})
}

// BringSelectedToFront draws the selected shape over all others. The
// selection stays on the moved shape.
func (c *Controller) BringSelectedToFront() error {
	return c.editShape("bring to front", c.scene.BringToFront)
}

// BringSelectedToBack draws the selected shape under all others.
func (c *Controller) BringSelectedToBack() error {
	return c.editShape("bring to back", c.scene.BringToBack)
}

// RotateScene rotates every shape by the edit angle about the canvas centre.
// The cursor does not move.
func (c *Controller) RotateScene() error {
	if err := c.require(SceneEdit); err != nil {
		return err
	}
	c.scene.RotateAll(geom.Radians(c.state.EditAngle), c.state.Center())
	Logger().Debug("scene rotated", "deg", c.state.EditAngle)
	return nil
}

// TranslateScene moves every shape by the edit distance along the edit angle.
func (c *Controller) TranslateScene() error {
	if err := c.require(SceneEdit); err != nil {
		return err
	}
	c.scene.TranslateAll(geom.Radians(c.state.EditAngle), c.state.EditDistance)
	Logger().Debug("scene translated", "deg", c.state.EditAngle, "distance", c.state.EditDistance)
	return nil
}

// ClearScene removes every shape and puts the brush back where it started:
// canvas centre, heading 0, pen down, with a fresh cursor.
func (c *Controller) ClearScene() error {
	if err := c.require(SceneEdit); err != nil {
		return err
	}
	c.scene.Clear()
	c.state.ShapeCount = -1
	c.state.Selected = -1
	c.state.Position = c.state.Center()
	c.state.Heading = 0
	c.state.PenDown = true
	c.scene.SetCursor(c.newCursor())
	c.state.Ongoing = []geom.Point{c.state.Position}
	Logger().Info("scene cleared")
	return nil
}
