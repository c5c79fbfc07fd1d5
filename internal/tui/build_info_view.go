// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-vault-gate/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: go-vault-gate\n")
	b.WriteString("Version:     ")
	b.WriteString(valueOrNA(info.Version()))
	b.WriteString("\n")
	b.WriteString("Build date:  ")
	b.WriteString(valueOrNA(info.Date()))
	b.WriteString("\n")
	b.WriteString("Commit:      ")
	b.WriteString(valueOrNA(info.Commit()))

	return renderPage("ABOUT", b.String(), "esc back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
