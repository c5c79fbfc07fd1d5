package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type projectsModel struct {
	idx int
}

func (m *projectsModel) clamp(n int) {
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m projectsModel) View(projects []models.Project, secrets []models.Secret) string {
	if len(projects) == 0 {
		return "No projects\n"
	}

	var b strings.Builder
	for i, p := range projects {
		count := 0
		for _, s := range secrets {
			if s.InProject(p.ID) {
				count++
			}
		}
		line := fmt.Sprintf("%-30s %3d  %s", fitText(p.Name, 30), count, fitText(p.Description, 40))
		cursor := "  "
		if i == m.idx {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(projectStyle(p.Color).Render("■ "))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

const (
	projectFieldName = iota
	projectFieldDescription
	projectFieldColor
	projectFieldIcon
	projectFieldCount
)

type projectFormModel struct {
	editingID  string
	focus      int
	submitting bool
	inputs     []textinput.Model
}

func newProjectForm(project *models.Project) projectFormModel {
	placeholders := []string{"name", "description", models.DefaultProjectColor, models.DefaultProjectIcon}
	limits := []int{100, 500, 7, 32}

	f := projectFormModel{inputs: make([]textinput.Model, projectFieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		f.inputs[i] = in
	}

	if project != nil {
		f.editingID = project.ID
		f.inputs[projectFieldName].SetValue(project.Name)
		f.inputs[projectFieldDescription].SetValue(project.Description)
		f.inputs[projectFieldColor].SetValue(project.Color)
		f.inputs[projectFieldIcon].SetValue(project.Icon)
	}

	f.inputs[projectFieldName].Focus()
	return f
}

// payload builds the save request. Blank colour and icon are filled in by
// the store.
func (f projectFormModel) payload() models.ProjectPayload {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return models.ProjectPayload{
		ID:          f.editingID,
		Name:        value(projectFieldName),
		Description: value(projectFieldDescription),
		Color:       value(projectFieldColor),
		Icon:        value(projectFieldIcon),
	}
}

func (f *projectFormModel) moveFocus(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f projectFormModel) updateInput(msg tea.Msg) (projectFormModel, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f projectFormModel) View() string {
	labels := []string{"Name", "Description", "Color", "Icon"}

	var b strings.Builder
	for i, in := range f.inputs {
		cursor := "  "
		if i == f.focus {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-12s %s\n", cursor, labels[i], in.View())
	}
	if f.submitting {
		b.WriteString("\nSaving...\n")
	}
	return b.String()
}
