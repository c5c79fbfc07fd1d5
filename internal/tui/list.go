package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const listNameWidth = 36

type listModel struct {
	idx       int
	loading   bool
	filter    models.SecretFilter
	searching bool
	search    textinput.Model
}

func newListModel() listModel {
	search := textinput.New()
	search.Placeholder = "search name or notes"
	search.CharLimit = 100
	search.Width = 30

	return listModel{
		search: search,
		filter: models.SecretFilter{Category: models.FilterAll, Project: models.FilterAll},
	}
}

// clamp keeps the cursor inside a list of n rows.
func (m *listModel) clamp(n int) {
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *listModel) move(delta, n int) {
	m.idx += delta
	m.clamp(n)
}

// categoryOptions is the category filter cycle: all, then every category.
func categoryOptions() []string {
	options := make([]string, 0, len(models.Categories)+1)
	options = append(options, models.FilterAll)
	for _, c := range models.Categories {
		options = append(options, string(c))
	}
	return options
}

// projectOptions is the project filter cycle: all, unassigned, then every
// project id.
func projectOptions(projects []models.Project) []string {
	options := make([]string, 0, len(projects)+2)
	options = append(options, models.FilterAll, models.FilterUnassigned)
	for _, p := range projects {
		options = append(options, p.ID)
	}
	return options
}

// cycle returns the option after current, wrapping around. An unknown
// current value restarts the cycle.
func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func categoryLabel(c models.Category) string {
	switch c {
	case models.CategoryAPIKey:
		return "API key"
	case models.CategoryToken:
		return "Token"
	case models.CategoryPassword:
		return "Password"
	case models.CategorySSHKey:
		return "SSH key"
	case models.CategoryCertificate:
		return "Certificate"
	case models.CategorySecret:
		return "Secret"
	case models.CategoryAddress:
		return "Address"
	case models.CategoryID:
		return "ID"
	case models.CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

func projectFilterLabel(filter string, projects []models.Project) string {
	switch filter {
	case "", models.FilterAll:
		return "all"
	case models.FilterUnassigned:
		return "unassigned"
	}
	if p, ok := findProject(projects, filter); ok {
		return p.Name
	}
	return filter
}

func findProject(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func (m listModel) View(secrets []models.Secret, projects []models.Project) string {
	var b strings.Builder

	b.WriteString("Search: ")
	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(valueOrDash(m.filter.Search))
	}
	category := m.filter.Category
	if category == "" || category == models.FilterAll {
		category = "all"
	} else {
		category = categoryLabel(models.Category(category))
	}
	fmt.Fprintf(&b, "\nCategory: %s   Project: %s\n\n", category, projectFilterLabel(m.filter.Project, projects))

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(secrets) == 0:
		b.WriteString("No secrets\n")
	default:
		for i, s := range secrets {
			cursor := "  "
			line := fmt.Sprintf("%-*s %-12s", listNameWidth, fitText(s.Name, listNameWidth), categoryLabel(s.Category))
			if s.ProjectID != nil {
				if p, ok := findProject(projects, *s.ProjectID); ok {
					line += " " + projectStyle(p.Color).Render(p.Name)
				}
			}
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}
