package main

import "turtlegfx/internal/turtle"

type model struct {
	width  int
	height int
	ctrl   *turtle.Controller
	config *Config

	ui            uiMode
	help          bool
	helpScroll    int
	prompt        promptKind
	input         string
	confirmAction ConfirmAction
	pendingPath   string

	// pointer-down cell of an unfinished mouse drag
	pressed bool
	pressX  int
	pressY  int

	errorMessage   string
	successMessage string
}
