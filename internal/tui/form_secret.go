package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldCategory
	fieldValue
	fieldNotes
	fieldProject
	fieldCount
)

// secretFormModel edits a new or existing secret. The value field holds
// plaintext and is dropped with the form.
type secretFormModel struct {
	editingID  string
	focus      int
	category   int
	projectIdx int // 0 is "no project"
	projects   []models.Project
	submitting bool

	name  textinput.Model
	value textinput.Model
	notes textinput.Model
}

func newSecretForm(projects []models.Project, secret *models.Secret, value string) secretFormModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 200
	name.Width = 40

	val := textinput.New()
	val.Placeholder = "secret value"
	val.CharLimit = 4096
	val.Width = 40
	val.EchoMode = textinput.EchoPassword
	val.EchoCharacter = '*'

	notes := textinput.New()
	notes.Placeholder = "notes"
	notes.CharLimit = 1000
	notes.Width = 40

	f := secretFormModel{
		projects: projects,
		name:     name,
		value:    val,
		notes:    notes,
	}

	if secret != nil {
		f.editingID = secret.ID
		f.name.SetValue(secret.Name)
		f.value.SetValue(value)
		f.notes.SetValue(secret.Notes)
		for i, c := range models.Categories {
			if c == secret.Category {
				f.category = i
			}
		}
		if secret.ProjectID != nil {
			for i, p := range projects {
				if p.ID == *secret.ProjectID {
					f.projectIdx = i + 1
				}
			}
		}
	}

	f.applyFocus()
	return f
}

func (f secretFormModel) editing() bool {
	return f.editingID != ""
}

// input builds the save request. The caller wipes Value after use.
func (f secretFormModel) input() models.SecretInput {
	in := models.SecretInput{
		Name:     strings.TrimSpace(f.name.Value()),
		Category: models.Categories[f.category],
		Value:    []byte(f.value.Value()),
		Notes:    strings.TrimSpace(f.notes.Value()),
	}
	if f.projectIdx > 0 && f.projectIdx <= len(f.projects) {
		id := f.projects[f.projectIdx-1].ID
		in.ProjectID = &id
	}
	return in
}

func (f *secretFormModel) applyFocus() {
	f.name.Blur()
	f.value.Blur()
	f.notes.Blur()

	switch f.focus {
	case fieldName:
		f.name.Focus()
	case fieldValue:
		f.value.Focus()
	case fieldNotes:
		f.notes.Focus()
	}
}

func (f *secretFormModel) moveFocus(delta int) {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.applyFocus()
}

// shift changes the selector under focus.
func (f *secretFormModel) shift(delta int) {
	switch f.focus {
	case fieldCategory:
		n := len(models.Categories)
		f.category = (f.category + delta + n) % n
	case fieldProject:
		n := len(f.projects) + 1
		f.projectIdx = (f.projectIdx + delta + n) % n
	}
}

func (f secretFormModel) onSelector() bool {
	return f.focus == fieldCategory || f.focus == fieldProject
}

// updateInput feeds msg to the focused text field.
func (f secretFormModel) updateInput(msg tea.Msg) (secretFormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldValue:
		f.value, cmd = f.value.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return f, cmd
}

func (f secretFormModel) projectLabel() string {
	if f.projectIdx == 0 || f.projectIdx > len(f.projects) {
		return "(none)"
	}
	p := f.projects[f.projectIdx-1]
	return projectStyle(p.Color).Render(p.Name)
}

func (f secretFormModel) View() string {
	var b strings.Builder

	row := func(field int, label, value string) {
		cursor := "  "
		if f.focus == field {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", cursor, label, value)
	}

	row(fieldName, "Name", f.name.View())
	row(fieldCategory, "Category", "< "+categoryLabel(models.Categories[f.category])+" >")
	row(fieldValue, "Value", f.value.View())
	row(fieldNotes, "Notes", f.notes.View())
	row(fieldProject, "Project", "< "+f.projectLabel()+" >")

	if f.submitting {
		b.WriteString("\nSaving...\n")
	}
	return b.String()
}
