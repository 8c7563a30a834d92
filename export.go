package main

import (
	"os"
	"path/filepath"
	"strings"

	"turtlegfx/internal/render"
)

// exportTarget resolves a typed filename to the PNG path it will be saved
// to.
func (m *model) exportTarget(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultExportName
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		name += ".png"
	}
	return m.config.GetSavePath(name)
}

// requestExport saves immediately or asks before overwriting an existing file.
func (m *model) requestExport(name string) {
	path := m.exportTarget(name)
	if _, err := os.Stat(path); err == nil && m.config.Confirmations {
		m.pendingPath = path
		m.confirmAction = ConfirmOverwriteFile
		m.ui = uiConfirm
		return
	}
	m.exportPNG(path)
}

func (m *model) exportPNG(path string) {
	opts := render.Options{Labels: m.config.Labels}
	if err := render.WritePNG(m.ctrl.Frame(), path, opts); err != nil {
		m.setError(err)
		return
	}
	m.successMessage = "Exported " + path
	m.errorMessage = ""
}
