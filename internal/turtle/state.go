package turtle

import (
	"fmt"

	"turtlegfx/internal/geom"
	"turtlegfx/internal/resolve"
	"turtlegfx/internal/scene"
)

// Mode selects which command set the controller accepts.
type Mode int

const (
	Draw Mode = iota
	ShapeEdit
	SceneEdit
	numModes
)

func (m Mode) String() string {
	switch m {
	case Draw:
		return "DRAW"
	case ShapeEdit:
		return "SHAPE"
	case SceneEdit:
		return "SCENE"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Next returns the mode after m in the Draw -> ShapeEdit -> SceneEdit cycle.
func (m Mode) Next() Mode {
	return (m + 1) % numModes
}

// Options configures a new Controller.
type Options struct {
	CanvasWidth      float64
	CanvasHeight     float64
	Displacement     float64
	MinDisplacement  float64
	DisplacementStep float64
	TurnStep         float64 // degrees
	FillColor        string  // six hex digits
	MaxShapes        int
	Precision        float64 // resolver grid units per scene unit
	FillRule         resolve.FillRule
	EditAngle        float64 // degrees
	EditDistance     float64
	ScaleFactor      float64
}

// DefaultOptions returns the settings of a fresh 500x500 canvas.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:      500,
		CanvasHeight:     500,
		Displacement:     50,
		MinDisplacement:  50,
		DisplacementStep: 50,
		TurnStep:         45,
		FillColor:        "ff0000",
		MaxShapes:        6,
		Precision:        resolve.DefaultScale,
		FillRule:         resolve.NonZero,
		EditAngle:        45,
		EditDistance:     50,
		ScaleFactor:      1.5,
	}
}

// State is the complete brush and interaction state of a controller.
type State struct {
	Width, Height    float64
	Position         geom.Point
	Heading          float64 // degrees in [0,360)
	PenDown          bool
	CursorVisible    bool
	Displacement     float64
	MinDisplacement  float64
	DisplacementStep float64
	TurnStep         float64
	FillColor        scene.Color
	MaxShapes        int

	// ShapeCount is the index of the newest shape, -1 while the scene is empty.
	ShapeCount int
	Mode       Mode
	Selected   int // -1 when nothing is selected

	// Ongoing is the stroke recorded since the pen was last lifted.
	Ongoing []geom.Point

	EditAngle    float64 // degrees
	EditDistance float64
	ScaleFactor  float64
}

// Center returns the middle of the canvas.
func (s *State) Center() geom.Point {
	return geom.Pt(s.Width/2, s.Height/2)
}

// Frame is what a renderer reads each frame. It does not alias controller
// state.
type Frame struct {
	Width, Height float64
	Primitives    []scene.Primitive
	Ongoing       []geom.Point
	Mode          Mode
	PenDown       bool
	Selected      int
}
