package main

import (
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"turtlegfx/internal/turtle"
)

func main() {
	config := loadConfig()

	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "turtle")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		turtle.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m, err := initialModel(config)
	if err != nil {
		log.Fatal(err)
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) (model, error) {
	ctrl, err := turtle.New(config.Turtle)
	if err != nil {
		return model{}, err
	}
	return model{
		ctrl:   ctrl,
		config: config,
		width:  80,
		height: 24,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg), nil
		}
		switch m.ui {
		case uiPrompt:
			return m.handlePromptKey(msg), nil
		case uiConfirm:
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleHelpKey(msg tea.KeyMsg) tea.Model {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m
}

func (m *model) startPrompt(kind promptKind) {
	m.ui = uiPrompt
	m.prompt = kind
	m.input = ""
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) startConfirm(action ConfirmAction) {
	m.ui = uiConfirm
	m.confirmAction = action
}

// report records the outcome of a controller command in the status line.
func (m *model) report(err error, success string) {
	if err != nil {
		m.setError(err)
		return
	}
	m.errorMessage = ""
	m.successMessage = success
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m, tea.Quit
		}
		m.startConfirm(ConfirmQuit)
		return m, nil
	case "esc":
		m.errorMessage = ""
		m.successMessage = ""
		m.pressed = false
		return m, nil
	case "?":
		m.help = true
		return m, nil
	case "m":
		mode := m.ctrl.CycleMode()
		m.report(nil, "Mode "+mode.String())
		return m, nil
	case "S":
		m.startPrompt(promptExport)
		return m, nil
	case "#":
		m.startPrompt(promptFillColor)
		return m, nil
	case "y":
		m.copyFillColor()
		return m, nil
	case "p":
		m.pasteFillColor()
		return m, nil
	}

	switch m.ctrl.State().Mode {
	case turtle.Draw:
		m.handleDrawKey(msg.String())
	case turtle.ShapeEdit:
		m.handleShapeKey(msg.String())
	case turtle.SceneEdit:
		m.handleSceneKey(msg.String())
	}
	return m, nil
}

func (m *model) handleDrawKey(key string) {
	switch key {
	case "w":
		m.report(m.ctrl.MoveForward(), "")
	case "b":
		shape, err := m.ctrl.TogglePen()
		switch {
		case err != nil:
			m.setError(err)
		case shape >= 0:
			m.report(nil, fmt.Sprintf("Added shape %d", shape))
		case m.ctrl.State().PenDown:
			m.report(nil, "Pen down")
		default:
			m.report(nil, "Pen up")
		}
	case "v":
		m.ctrl.ToggleCursorVisible()
	case "left":
		m.report(m.ctrl.TurnStep(1), "")
	case "right":
		m.report(m.ctrl.TurnStep(-1), "")
	case "r":
		m.report(m.ctrl.ResetHeading(), "")
	case "up":
		m.report(m.ctrl.ChangeDisplacement(1), "")
	case "down":
		m.report(m.ctrl.ChangeDisplacement(-1), "")
	case "t":
		m.startPrompt(promptTurn)
	case "d":
		m.startPrompt(promptDisplacement)
	case "x":
		m.startPrompt(promptMaxShapes)
	}
}

func (m *model) handleShapeKey(key string) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		shape := int(key[0] - '0')
		m.report(m.ctrl.SelectShape(shape), fmt.Sprintf("Selected shape %d", shape))
		return
	}
	switch key {
	case "w":
		m.report(m.ctrl.TranslateSelected(), "")
	case "right":
		m.report(m.ctrl.RotateSelected(), "")
	case "s":
		m.report(m.ctrl.ScaleSelected(), "")
	case "f":
		m.report(m.ctrl.BringSelectedToFront(), "Brought to front")
	case "b":
		m.report(m.ctrl.BringSelectedToBack(), "Sent to back")
	case "c":
		m.report(m.ctrl.RecolorSelected(), "Recoloured")
	case "r":
		m.report(m.ctrl.ClearSelectedColor(), "Colour removed")
	case "a":
		m.startPrompt(promptEditAngle)
	case "d":
		m.startPrompt(promptEditDistance)
	case "z":
		m.startPrompt(promptScaleFactor)
	}
}

func (m *model) handleSceneKey(key string) {
	switch key {
	case "w":
		m.report(m.ctrl.TranslateScene(), "")
	case "right":
		m.report(m.ctrl.RotateScene(), "")
	case "c":
		if m.config.Confirmations {
			m.startConfirm(ConfirmClearScene)
			return
		}
		m.report(m.ctrl.ClearScene(), "Scene cleared")
	case "a":
		m.startPrompt(promptEditAngle)
	case "d":
		m.startPrompt(promptEditDistance)
	}
}

func (m *model) handlePromptKey(msg tea.KeyMsg) tea.Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.ui = uiNormal
		m.input = ""
	case tea.KeyEnter:
		m.ui = uiNormal
		m.submitPrompt(m.input)
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m
}

func (m *model) submitPrompt(input string) {
	input = strings.TrimSpace(input)
	if m.prompt == promptExport {
		m.requestExport(input)
		return
	}
	if m.prompt == promptFillColor {
		m.report(m.ctrl.SetFillColor(input), "Fill colour #"+strings.TrimPrefix(strings.ToLower(input), "#"))
		return
	}
	if m.prompt == promptMaxShapes {
		n, err := strconv.Atoi(input)
		if err != nil {
			m.errorMessage = fmt.Sprintf("Not a whole number: %q", input)
			return
		}
		m.report(m.ctrl.SetMaxShapes(n), fmt.Sprintf("Max shapes %d", n))
		return
	}

	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Not a number: %q", input)
		m.successMessage = ""
		return
	}
	switch m.prompt {
	case promptTurn:
		if v < 0 {
			m.report(m.ctrl.Turn(-1, -v), "")
		} else {
			m.report(m.ctrl.Turn(1, v), "")
		}
	case promptDisplacement:
		m.report(m.ctrl.SetDisplacement(v), "")
	case promptEditAngle:
		m.report(m.ctrl.SetEditAngle(v), "")
	case promptEditDistance:
		m.report(m.ctrl.SetEditDistance(v), "")
	case promptScaleFactor:
		m.report(m.ctrl.SetScaleFactor(v), "")
	}
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ui = uiNormal
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmClearScene:
			m.report(m.ctrl.ClearScene(), "Scene cleared")
		case ConfirmOverwriteFile:
			m.exportPNG(m.pendingPath)
		}
	}
	m.pendingPath = ""
	return m, nil
}

var (
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3c6e1a")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e6334d"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#339919"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	rows, err := m.renderCanvas()
	if err != nil {
		m.errorMessage = err.Error()
	}
	for _, row := range rows {
		result.WriteString(row)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.ui {
	case uiPrompt:
		return fmt.Sprintf("%s %s: %s█ %s", modeStyle.Render("INPUT"), m.prompt.label(), m.input, dimStyle.Render("Enter=confirm, Esc=cancel"))
	case uiConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? (y/n)"
		case ConfirmClearScene:
			message = "Remove every shape? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		return fmt.Sprintf("%s %s", modeStyle.Render("CONFIRM"), message)
	}

	s := m.ctrl.State()
	pen := "up"
	if s.PenDown {
		pen = "down"
	}
	status := fmt.Sprintf("%s Pen: %s | Heading: %.0f° | Step: %.0f | Pos: (%.0f,%.0f) | Shapes: %d/%d",
		modeStyle.Render(s.Mode.String()), pen, s.Heading, s.Displacement, s.Position.X, s.Position.Y,
		s.ShapeCount+1, s.MaxShapes)
	if s.Mode != turtle.Draw {
		selected := "none"
		if s.Selected >= 0 {
			selected = strconv.Itoa(s.Selected)
		}
		status += fmt.Sprintf(" | Selected: %s | Angle: %.0f° Dist: %.0f Scale: %g", selected, s.EditAngle, s.EditDistance, s.ScaleFactor)
	}
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	default:
		status += dimStyle.Render(" | ? for help | q to quit")
	}
	return status
}

var helpLines = []string{
	"Turtle Help",
	"===========",
	"",
	"General:",
	"--------",
	"  m                Cycle mode: DRAW -> SHAPE -> SCENE",
	"  #                Set fill colour (hex)",
	"  y / p            Copy / paste fill colour via clipboard",
	"  S                Export scene as PNG",
	"  Esc              Clear message",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
	"",
	"Draw mode:",
	"----------",
	"  w                Move forward by the displacement",
	"  b                Lift pen (commits the stroke as a shape) / lower pen",
	"  ←/→              Turn left (ccw) / right (cw) by the turn step",
	"  t                Turn by a typed angle",
	"  r                Reset heading to 0",
	"  ↑/↓              Grow / shrink displacement",
	"  d                Set displacement",
	"  v                Show / hide cursor",
	"  x                Set max shapes (empty scene only)",
	"  mouse drag       Move along the drag",
	"",
	"Shape mode:",
	"-----------",
	"  0-9 / click      Select shape",
	"  w                Move selected shape along the edit angle",
	"  →                Rotate selected shape by the edit angle",
	"  s                Scale selected shape by the scale factor",
	"  f / b            Bring to front / send to back",
	"  c                Recolour with the fill colour",
	"  r                Remove fill colour",
	"  a / d / z        Set edit angle / distance / scale factor",
	"",
	"Scene mode:",
	"-----------",
	"  w                Move every shape along the edit angle",
	"  →                Rotate every shape about the canvas centre",
	"  c                Clear the scene",
	"  a / d            Set edit angle / distance",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, len(helpLines))
	end := min(start+visibleHeight, len(helpLines))
	return strings.Join(helpLines[start:end], "\n")
}
