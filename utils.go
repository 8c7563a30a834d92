package main

import (
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// hexColorPattern matches six hex digits not embedded in a longer word, so
// RTF control words and HTML attribute noise are skipped.
var hexColorPattern = regexp.MustCompile(`(?:^|[^0-9A-Za-z])#?([0-9A-Fa-f]{6})(?:$|[^0-9A-Za-z])`)

// extractHexColor returns the first six digit hex colour in text, lower
// cased and without '#'.
func extractHexColor(text string) (string, bool) {
	text = cleanClipboardText(text)
	match := hexColorPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.ToLower(match[1]), true
}

// cleanClipboardText drops control characters and normalises line endings.
func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

func (m *model) copyFillColor() {
	hex := "#" + m.ctrl.State().FillColor.Hex()
	if err := writeClipboardText(hex); err != nil {
		m.errorMessage = "Clipboard unavailable: " + err.Error()
		m.successMessage = ""
		return
	}
	m.successMessage = "Copied " + hex
	m.errorMessage = ""
}

func (m *model) pasteFillColor() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "Clipboard unavailable: " + err.Error()
		m.successMessage = ""
		return
	}
	hex, ok := extractHexColor(text)
	if !ok {
		m.errorMessage = "No hex colour on clipboard"
		m.successMessage = ""
		return
	}
	if err := m.ctrl.SetFillColor(hex); err != nil {
		m.setError(err)
		return
	}
	m.successMessage = "Fill colour #" + hex
	m.errorMessage = ""
}
