package main

// uiMode is the input state of the shell, independent of the controller's
// drawing mode.
type uiMode int

const (
	uiNormal uiMode = iota
	uiPrompt
	uiConfirm
)

type promptKind int

const (
	promptExport promptKind = iota
	promptFillColor
	promptTurn
	promptMaxShapes
	promptDisplacement
	promptEditAngle
	promptEditDistance
	promptScaleFactor
)

func (p promptKind) label() string {
	switch p {
	case promptExport:
		return "Export PNG filename"
	case promptFillColor:
		return "Fill colour (hex)"
	case promptTurn:
		return "Turn degrees (+ccw/-cw)"
	case promptMaxShapes:
		return "Max shapes"
	case promptDisplacement:
		return "Displacement"
	case promptEditAngle:
		return "Edit angle"
	case promptEditDistance:
		return "Edit distance"
	case promptScaleFactor:
		return "Scale factor"
	default:
		return "Value"
	}
}

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClearScene
	ConfirmOverwriteFile
)

const (
	defaultExportName = "turtle.png"
	statusLines       = 1
)
