package tui

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/awnumar/memguard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) visibleSecrets() []models.Secret {
	return m.services.Secrets.Filter(m.list.filter)
}

func (m appModel) selectedSecret() (models.Secret, bool) {
	secrets := m.visibleSecrets()
	if m.list.idx < 0 || m.list.idx >= len(secrets) {
		return models.Secret{}, false
	}
	return secrets[m.list.idx], true
}

func (m appModel) findSecret(id string) (models.Secret, bool) {
	for _, s := range m.services.Secrets.Secrets() {
		if s.ID == id {
			return s, true
		}
	}
	return models.Secret{}, false
}

func (m appModel) updateVault(msg tea.Msg, snap service.GateSnapshot) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenSecretForm:
		return m.updateSecretForm(msg)
	case screenProjects:
		return m.updateProjects(msg)
	case screenProjectForm:
		return m.updateProjectForm(msg)
	case screenDisableTOTP:
		return m.updateDisable(msg)
	default:
		return m.updateList(msg, snap)
	}
}

func (m appModel) viewVault(snap service.GateSnapshot) string {
	store := m.services.Secrets
	projects := store.Projects()

	switch m.screen {
	case screenDetail:
		secret, ok := m.findSecret(m.detail.secretID)
		if !ok {
			return renderPage("SECRET", "Secret not found.", "esc back")
		}
		return renderPage("SECRET", m.buildDetailView(secret, projects).View(),
			"r reveal/hide  y copy  e edit  d delete  esc back  ctrl+l lock")

	case screenSecretForm:
		title := "NEW SECRET"
		if m.form.editing() {
			title = "EDIT SECRET"
		}
		return renderPage(title, m.form.View(),
			"tab/shift+tab move  left/right choose  enter save  esc cancel")

	case screenProjects:
		return renderPage("PROJECTS", m.projects.View(projects, store.Secrets()),
			"n new  e edit  d delete  esc back  ctrl+l lock")

	case screenProjectForm:
		title := "NEW PROJECT"
		if m.projectForm.editingID != "" {
			title = "EDIT PROJECT"
		}
		return renderPage(title, m.projectForm.View(), "tab/shift+tab move  enter save  esc cancel")

	case screenDisableTOTP:
		var b strings.Builder
		b.WriteString("Enter a current code to turn off two-factor authentication.\n")
		b.WriteString("The vault locks afterwards.\n\nCode: ")
		b.WriteString(m.code.View())
		b.WriteString("\n")
		m.writeGateStatus(&b, snap)
		return renderPage("DISABLE TWO-FACTOR", b.String(), "enter disable  esc cancel")
	}

	hotKeys := "enter open  n new  / search  c category  p project  P projects  ctrl+r refresh  ctrl+l lock  q quit"
	if snap.TOTP.Enabled {
		hotKeys += "  T disable 2FA"
	}
	return renderPage("VAULT", m.list.View(m.visibleSecrets(), projects), hotKeys)
}

func (m appModel) buildDetailView(secret models.Secret, projects []models.Project) detailView {
	v := detailView{secret: secret}
	if secret.ProjectID != nil {
		if p, ok := findProject(projects, *secret.ProjectID); ok {
			v.project = &p
		}
	}
	if plaintext, ok := m.services.Reveal.Revealed(secret.ID); ok {
		v.plaintext = plaintext
		v.revealed = true
		if ticket, ok := m.services.Reveal.ActiveTicket(); ok {
			v.left = ticket.ExpiresAt.Sub(m.now())
		}
	}
	return v
}

// ── list ─────────────────────────────────────────────────────────────────────

func (m appModel) updateList(msg tea.Msg, snap service.GateSnapshot) (tea.Model, tea.Cmd) {
	if m.list.searching {
		return m.updateSearch(msg)
	}

	n := len(m.visibleSecrets())

	if mouse, ok := msg.(tea.MouseMsg); ok {
		switch mouse.Button {
		case tea.MouseButtonWheelUp:
			m.list.move(-1, n)
		case tea.MouseButtonWheelDown:
			m.list.move(1, n)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.list.move(-1, n)
	case key.Matches(keyMsg, keys.down):
		m.list.move(1, n)
	case key.Matches(keyMsg, keys.enter):
		if secret, ok := m.selectedSecret(); ok {
			m.detail = detailModel{secretID: secret.ID}
			m.screen = screenDetail
		}
	case key.Matches(keyMsg, keys.newItem):
		m.form = newSecretForm(m.services.Secrets.Projects(), nil, "")
		m.screen = screenSecretForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		m.list.search.SetValue(m.list.filter.Search)
		m.list.search.Focus()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.category):
		m.list.filter.Category = cycle(categoryOptions(), m.list.filter.Category)
		m.list.idx = 0
	case key.Matches(keyMsg, keys.project):
		m.list.filter.Project = cycle(projectOptions(m.services.Secrets.Projects()), m.list.filter.Project)
		m.list.idx = 0
	case key.Matches(keyMsg, keys.projects):
		m.projects.clamp(len(m.services.Secrets.Projects()))
		m.screen = screenProjects
	case key.Matches(keyMsg, keys.disable):
		if snap.TOTP.Enabled {
			m.code.Reset()
			m.code.Focus()
			m.screen = screenDisableTOTP
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.refresh):
		m.list.loading = true
		return m, m.cmdRefresh()
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

// updateSearch filters live while the user types.
func (m appModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.enter):
			m.list.searching = false
			m.list.search.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.esc):
			m.list.searching = false
			m.list.search.Blur()
			m.list.search.Reset()
			m.list.filter.Search = ""
			m.list.clamp(len(m.visibleSecrets()))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list.search, cmd = m.list.search.Update(msg)
	m.list.filter.Search = m.list.search.Value()
	m.list.clamp(len(m.visibleSecrets()))
	return m, cmd
}

// ── detail ───────────────────────────────────────────────────────────────────

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	reveal := m.services.Reveal
	secret, found := m.findSecret(m.detail.secretID)
	if !found || key.Matches(keyMsg, keys.esc) {
		reveal.Dismiss()
		m.detail = detailModel{}
		m.screen = screenList
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.reveal):
		if _, shown := reveal.Revealed(secret.ID); shown {
			reveal.Dismiss()
			return m, nil
		}
		return m, m.cmdReveal(secret)
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopy(secret)
	case key.Matches(keyMsg, keys.edit):
		reveal.Dismiss()
		return m, m.cmdLoadEdit(secret)
	case key.Matches(keyMsg, keys.delete):
		m.showConfirm = true
		m.confirm = confirmModel{
			message: secret.Name,
			onYes:   func() tea.Cmd { return m.cmdDeleteSecret(secret.ID) },
		}
	}
	return m, nil
}

// ── secret form ──────────────────────────────────────────────────────────────

func (m appModel) updateSecretForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			back := screenList
			if m.form.editing() {
				back = screenDetail
			}
			m.form = secretFormModel{}
			m.screen = back
			return m, nil
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.down) && m.form.onSelector():
			m.form.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab), key.Matches(keyMsg, keys.up) && m.form.onSelector():
			m.form.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.left) && m.form.onSelector():
			m.form.shift(-1)
			return m, nil
		case key.Matches(keyMsg, keys.right) && m.form.onSelector():
			m.form.shift(1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			m.form.submitting = true
			return m, m.cmdSaveSecret()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.updateInput(msg)
	return m, cmd
}

func (m appModel) handleSecretSaved(msg secretSavedMsg) (tea.Model, tea.Cmd) {
	m.form.submitting = false
	if msg.err != nil {
		return m, m.handleVaultErr(msg.err)
	}
	m.form = secretFormModel{}
	m.detail = detailModel{secretID: msg.secret.ID}
	m.screen = screenDetail
	return m, m.info("Secret saved.")
}

// ── projects ─────────────────────────────────────────────────────────────────

func (m appModel) updateProjects(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	projects := m.services.Secrets.Projects()
	n := len(projects)

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.screen = screenList
	case key.Matches(keyMsg, keys.up):
		m.projects.idx--
		m.projects.clamp(n)
	case key.Matches(keyMsg, keys.down):
		m.projects.idx++
		m.projects.clamp(n)
	case key.Matches(keyMsg, keys.newItem):
		m.projectForm = newProjectForm(nil)
		m.screen = screenProjectForm
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.edit), key.Matches(keyMsg, keys.enter):
		if m.projects.idx < n {
			p := projects[m.projects.idx]
			m.projectForm = newProjectForm(&p)
			m.screen = screenProjectForm
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.delete):
		if m.projects.idx < n {
			p := projects[m.projects.idx]
			m.showConfirm = true
			m.confirm = confirmModel{
				message: p.Name,
				onYes:   func() tea.Cmd { return m.cmdDeleteProject(p.ID) },
			}
		}
	}
	return m, nil
}

func (m appModel) updateProjectForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.projectForm = projectFormModel{}
			m.screen = screenProjects
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.projectForm.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.projectForm.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.projectForm.submitting {
				return m, nil
			}
			m.projectForm.submitting = true
			return m, m.cmdSaveProject(m.projectForm.payload())
		}
	}

	var cmd tea.Cmd
	m.projectForm, cmd = m.projectForm.updateInput(msg)
	return m, cmd
}

// ── disable TOTP ─────────────────────────────────────────────────────────────

func (m appModel) updateDisable(msg tea.Msg) (tea.Model, tea.Cmd) {
	gate := m.services.Gate
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.code.Reset()
			m.screen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			code := strings.TrimSpace(m.code.Value())
			m.code.Reset()
			return m, m.runGate(opDisable, func(ctx context.Context) error {
				return gate.DisableTOTP(ctx, code)
			})
		}
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m appModel) cmdRefresh() tea.Cmd {
	ctx, store := m.ctx, m.services.Secrets
	return func() tea.Msg {
		return vaultLoadedMsg{err: store.Refresh(ctx)}
	}
}

func cmdTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m appModel) cmdSaveSecret() tea.Cmd {
	ctx, store := m.ctx, m.services.Secrets
	id := m.form.editingID
	input := m.form.input()
	return func() tea.Msg {
		defer memguard.WipeBytes(input.Value)

		var (
			secret models.Secret
			err    error
		)
		if id != "" {
			secret, err = store.Update(ctx, id, input)
		} else {
			secret, err = store.Create(ctx, input)
		}
		return secretSavedMsg{secret: secret, err: err}
	}
}

func (m appModel) cmdDeleteSecret(id string) tea.Cmd {
	ctx, store := m.ctx, m.services.Secrets
	return func() tea.Msg {
		return secretDeletedMsg{err: store.Delete(ctx, id)}
	}
}

func (m appModel) cmdLoadEdit(secret models.Secret) tea.Cmd {
	store := m.services.Secrets
	return func() tea.Msg {
		value, err := store.DecryptForEdit(secret)
		if err != nil {
			return editLoadedMsg{err: err}
		}
		defer memguard.WipeBytes(value)
		return editLoadedMsg{secret: secret, value: string(value)}
	}
}

func (m appModel) cmdReveal(secret models.Secret) tea.Cmd {
	reveal := m.services.Reveal
	return func() tea.Msg {
		_, err := reveal.Reveal(secret)
		return revealedMsg{err: err}
	}
}

func (m appModel) cmdCopy(secret models.Secret) tea.Cmd {
	reveal := m.services.Reveal
	return func() tea.Msg {
		return copiedMsg{err: reveal.Copy(secret)}
	}
}

func (m appModel) cmdSaveProject(payload models.ProjectPayload) tea.Cmd {
	ctx, store := m.ctx, m.services.Secrets
	return func() tea.Msg {
		var err error
		if payload.ID != "" {
			_, err = store.UpdateProject(ctx, payload)
		} else {
			_, err = store.CreateProject(ctx, payload)
		}
		return projectSavedMsg{err: err}
	}
}

func (m appModel) cmdDeleteProject(id string) tea.Cmd {
	ctx, store := m.ctx, m.services.Secrets
	return func() tea.Msg {
		return projectDeletedMsg{err: store.DeleteProject(ctx, id)}
	}
}
