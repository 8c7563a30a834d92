package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"turtlegfx/internal/turtle"
)

// handleMouse turns a left-button press and release into either a drag
// move (Draw mode) or a click that picks the shape under the pointer.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Model {
	if m.ui != uiNormal || m.help {
		return m
	}
	switch msg.Type {
	case tea.MouseLeft:
		// Motion with the button held repeats MouseLeft; keep the first cell.
		if !m.pressed {
			m.pressed = true
			m.pressX, m.pressY = msg.X, msg.Y
		}
	case tea.MouseRelease:
		if !m.pressed {
			return m
		}
		m.pressed = false
		m.release(m.pressX, m.pressY, msg.X, msg.Y)
	}
	return m
}

func (m *model) release(fromX, fromY, toX, toY int) {
	v := m.viewport()
	to, ok := v.toScene(toX, toY)
	if !ok {
		return
	}
	from, fromOK := v.toScene(fromX, fromY)

	if fromOK && m.ctrl.State().Mode == turtle.Draw {
		moved, err := m.ctrl.Drag(from, to)
		if err != nil {
			m.setError(err)
			return
		}
		if moved {
			m.successMessage = fmt.Sprintf("Moved %.0f", m.ctrl.State().Displacement)
			m.errorMessage = ""
			return
		}
	}

	if shape, hit := m.ctrl.SelectAt(to); hit {
		m.successMessage = fmt.Sprintf("Selected shape %d", shape)
		m.errorMessage = ""
	}
}

func (m *model) setError(err error) {
	m.successMessage = ""
	switch {
	case errors.Is(err, turtle.ErrLimitReached):
		m.errorMessage = fmt.Sprintf("Shape limit reached (%d)", m.ctrl.State().MaxShapes)
	case errors.Is(err, turtle.ErrShapesPresent):
		m.errorMessage = "Max shapes can only change on an empty scene"
	case errors.Is(err, turtle.ErrNoSelection):
		m.errorMessage = "No shape selected"
	default:
		m.errorMessage = err.Error()
	}
}
