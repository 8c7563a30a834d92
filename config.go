package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"turtlegfx/internal/resolve"
	"turtlegfx/internal/scene"
	"turtlegfx/internal/turtle"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	Labels        bool
	LogFile       string
	Turtle        turtle.Options
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		Turtle:        turtle.DefaultOptions(),
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	file, err := os.Open(filepath.Join(homeDir, ".turtlerc"))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()

	return parseConfig(file, homeDir)
}

// parseConfig reads key = value lines. Unknown keys and unparsable values
// are ignored and leave the default in place.
func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()
	opts := &config.Turtle

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "labels":
			config.Labels = strings.ToLower(value) == "true"
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		case "canvas_width":
			setPositive(&opts.CanvasWidth, value)
		case "canvas_height":
			setPositive(&opts.CanvasHeight, value)
		case "displacement":
			setPositive(&opts.Displacement, value)
		case "min_displacement":
			setPositive(&opts.MinDisplacement, value)
		case "displacement_step":
			setPositive(&opts.DisplacementStep, value)
		case "turn_step":
			setPositive(&opts.TurnStep, value)
		case "precision":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= resolve.MinScale && v < 1e9 {
				opts.Precision = v
			}
		case "scale_factor":
			setPositive(&opts.ScaleFactor, value)
		case "max_shapes":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				opts.MaxShapes = n
			}
		case "fill_color", "fill_colour":
			if c, err := scene.ParseHex(value); err == nil {
				opts.FillColor = c.Hex()
			}
		case "fill_rule":
			if rule, err := resolve.ParseFillRule(value); err == nil {
				opts.FillRule = rule
			}
		}
	}

	return config
}

func setPositive(dst *float64, value string) {
	if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 && v < 1e9 {
		*dst = v
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
