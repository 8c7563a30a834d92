package main

import (
	"path/filepath"
	"strings"
	"testing"

	"turtlegfx/internal/resolve"
)

func TestParseConfig(t *testing.T) {
	input := `
# turtle settings
canvas_width = 800
canvas_height=600
max_shapes = 10
displacement = 25
turn_step = 30
fill_color = #00AAFF
fill_rule = even-odd
precision = 100
save_directory = ~/pictures
confirmations = false
labels = true
unknown_key = 3
no equals sign here
`
	config := parseConfig(strings.NewReader(input), "/home/turtle")
	opts := config.Turtle

	if opts.CanvasWidth != 800 || opts.CanvasHeight != 600 {
		t.Errorf("canvas = %gx%g, want 800x600", opts.CanvasWidth, opts.CanvasHeight)
	}
	if opts.MaxShapes != 10 || opts.Displacement != 25 || opts.TurnStep != 30 {
		t.Errorf("max %d displacement %g turn %g", opts.MaxShapes, opts.Displacement, opts.TurnStep)
	}
	if opts.FillColor != "00aaff" {
		t.Errorf("FillColor = %q, want 00aaff", opts.FillColor)
	}
	if opts.FillRule != resolve.EvenOdd || opts.Precision != 100 {
		t.Errorf("rule %v precision %g", opts.FillRule, opts.Precision)
	}
	if want := filepath.Join("/home/turtle", "pictures"); config.SaveDirectory != want {
		t.Errorf("SaveDirectory = %q, want %q", config.SaveDirectory, want)
	}
	if config.Confirmations || !config.Labels {
		t.Errorf("confirmations %v labels %v", config.Confirmations, config.Labels)
	}
}

func TestParseConfigKeepsDefaultsOnBadValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"negative width", "canvas_width = -5"},
		{"zero shapes", "max_shapes = 0"},
		{"text displacement", "displacement = far"},
		{"short colour", "fill_color = fff"},
		{"unknown rule", "fill_rule = sideways"},
		{"coarse precision", "precision = 1"},
	}
	def := defaultConfig().Turtle
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseConfig(strings.NewReader(tt.input), "/home/turtle").Turtle
			if got != def {
				t.Errorf("options = %+v, want defaults %+v", got, def)
			}
		})
	}
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	if got := config.GetSavePath("a.png"); got != "a.png" {
		t.Errorf("GetSavePath() = %q without directory", got)
	}
	config.SaveDirectory = filepath.Join(t.TempDir(), "out")
	if got, want := config.GetSavePath("a.png"), filepath.Join(config.SaveDirectory, "a.png"); got != want {
		t.Errorf("GetSavePath() = %q, want %q", got, want)
	}
}
