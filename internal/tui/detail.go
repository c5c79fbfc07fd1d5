package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-gate/models"
)

const maskedValue = "••••••••"

type detailModel struct {
	secretID string
}

// detailView is everything the detail screen shows. The plaintext is only
// set while a reveal ticket for this secret is live.
type detailView struct {
	secret    models.Secret
	project   *models.Project
	plaintext string
	revealed  bool
	left      time.Duration
}

func (v detailView) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  [%s]\n\n", titleStyle.Render(v.secret.Name), categoryLabel(v.secret.Category))

	if v.revealed {
		fmt.Fprintf(&b, "Value:    %s  %s\n", secretStyle.Render(v.plaintext), helpStyle.Render("hides in "+remaining(v.left)))
	} else {
		fmt.Fprintf(&b, "Value:    %s\n", maskedValue)
	}

	project := "-"
	if v.project != nil {
		project = projectStyle(v.project.Color).Render(v.project.Name)
	}
	fmt.Fprintf(&b, "Project:  %s\n", project)
	fmt.Fprintf(&b, "Notes:    %s\n", valueOrDash(v.secret.Notes))
	fmt.Fprintf(&b, "Created:  %s\n", formatTime(v.secret.CreatedAt))
	fmt.Fprintf(&b, "Updated:  %s\n", formatTime(v.secret.UpdatedAt))

	return b.String()
}
