package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const noticeTTL = 6 * time.Second

const (
	opLoad    = "load"
	opEnroll  = "enroll"
	opConfirm = "confirm"
	opSkip    = "skip"
	opSubmit  = "submit"
	opUnlock  = "unlock"
	opDisable = "disable"
)

// vaultScreen is the screen shown while the gate is unlocked. Locked states
// have no screen of their own: they follow the gate snapshot.
type vaultScreen int

const (
	screenList vaultScreen = iota
	screenDetail
	screenSecretForm
	screenProjects
	screenProjectForm
	screenDisableTOTP
)

type appModel struct {
	ctx       context.Context
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	now       func() time.Time

	spinner  spinner.Model
	code     textinput.Model
	password textinput.Model

	// unlocked is the gate state seen by the previous Update.
	unlocked    bool
	screen      vaultScreen
	list        listModel
	detail      detailModel
	form        secretFormModel
	projects    projectsModel
	projectForm projectFormModel

	notice    *models.Notice
	noticeSeq int

	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel
	showAbout    bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	code := textinput.New()
	code.Placeholder = "123456"
	code.CharLimit = 6
	code.Width = 10
	code.Focus()

	password := textinput.New()
	password.Placeholder = "master password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Focus()

	return appModel{
		ctx:       ctx,
		services:  services,
		buildInfo: buildInfo,
		now:       time.Now,
		spinner:   s,
		code:      code,
		password:  password,
		list:      newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	gate := m.services.Gate
	return tea.Batch(textinput.Blink, m.runGate(opLoad, gate.Load))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.touch(msg)
	m.syncLock()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQ) {
			return m, tea.Quit
		}
		if m.showAbout {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.about) {
				m.showAbout = false
			}
			return m, nil
		}
		if key.Matches(msg, keys.about) {
			m.showAbout = true
			return m, nil
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			switch {
			case key.Matches(msg, keys.yes):
				m.showConfirm = false
				if m.confirm.onYes == nil {
					return m, nil
				}
				return m, m.confirm.onYes()
			case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
				m.showConfirm = false
				m.confirm = confirmModel{}
			}
			return m, nil
		}
		if key.Matches(msg, keys.lock) && m.unlocked {
			m.services.Gate.Lock()
			m.syncLock()
			return m, nil
		}

	case spinner.TickMsg:
		snap := m.services.Gate.Snapshot()
		_, loading := snap.State.(service.StateLoading)
		if !loading && !snap.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		return m, m.setNotice(msg.notice)
	case clearStatusMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil
	case revealChangedMsg:
		return m, nil
	case tickMsg:
		if _, ok := m.services.Reveal.ActiveTicket(); ok {
			return m, cmdTick()
		}
		return m, nil

	case gateResultMsg:
		return m.handleGateResult(msg)
	case vaultLoadedMsg:
		m.list.loading = false
		m.list.clamp(len(m.visibleSecrets()))
		return m, m.handleVaultErr(msg.err)
	case secretSavedMsg:
		return m.handleSecretSaved(msg)
	case secretDeletedMsg:
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		m.detail = detailModel{}
		m.screen = screenList
		m.list.clamp(len(m.visibleSecrets()))
		return m, m.info("Secret deleted.")
	case projectSavedMsg:
		m.projectForm.submitting = false
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		m.projectForm = projectFormModel{}
		m.screen = screenProjects
		return m, m.info("Project saved.")
	case projectDeletedMsg:
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		m.projects.clamp(len(m.services.Secrets.Projects()))
		m.list.filter.Project = models.FilterAll
		return m, m.info("Project deleted. Its secrets are now unassigned.")
	case editLoadedMsg:
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		m.form = newSecretForm(m.services.Secrets.Projects(), &msg.secret, msg.value)
		m.screen = screenSecretForm
		return m, textinput.Blink
	case revealedMsg:
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		return m, cmdTick()
	case copiedMsg:
		if msg.err != nil {
			return m, m.handleVaultErr(msg.err)
		}
		return m, m.info("Copied. The clipboard will be cleared shortly.")
	}

	snap := m.services.Gate.Snapshot()
	switch state := snap.State.(type) {
	case service.StateSetupRequired:
		return m.updateSetup(msg, state)
	case service.StateAwaitingTOTP:
		return m.updateTOTP(msg)
	case service.StateAwaitingMasterPassword:
		return m.updatePassword(msg)
	case service.StateUnlocked:
		return m.updateVault(msg, snap)
	}
	return m, nil
}

func (m appModel) View() string {
	if m.showAbout {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	snap := m.services.Gate.Snapshot()

	var body string
	switch state := snap.State.(type) {
	case service.StateLoading:
		body = renderPage("VAULT", m.spinner.View()+" Checking two-factor status...", "")
	case service.StateSetupRequired:
		body = m.viewSetup(state, snap)
	case service.StateAwaitingTOTP:
		body = m.viewTOTP(snap)
	case service.StateAwaitingMasterPassword:
		body = m.viewPassword(snap)
	case service.StateUnlocked:
		body = m.viewVault(snap)
	}

	if m.notice != nil {
		style := infoStyle
		if m.notice.Severity == models.SeverityError {
			style = errorStyle
		}
		body = style.Render(m.notice.Message) + "\n\n" + body
	}
	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

// touch reports user activity to the idle timer.
func (m appModel) touch(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.services.Gate.Touch(service.SignalKeyPress)
	case tea.MouseMsg:
		if signal, ok := mouseSignal(msg); ok {
			m.services.Gate.Touch(signal)
		}
	}
}

// mouseSignal classifies a mouse event. Releases are not reported on their
// own because every release follows a press.
func mouseSignal(msg tea.MouseMsg) (service.ActivitySignal, bool) {
	switch {
	case tea.MouseEvent(msg).IsWheel():
		return service.SignalScroll, true
	case msg.Action == tea.MouseActionMotion:
		return service.SignalPointerMove, true
	case msg.Action == tea.MouseActionPress:
		return service.SignalClick, true
	default:
		return 0, false
	}
}

// syncLock drops everything the vault screens hold once the gate locked,
// including form fields that may carry plaintext.
func (m *appModel) syncLock() {
	unlocked := m.services.Gate.Snapshot().Unlocked()
	if m.unlocked && !unlocked {
		m.screen = screenList
		m.list = newListModel()
		m.detail = detailModel{}
		m.form = secretFormModel{}
		m.projects = projectsModel{}
		m.projectForm = projectFormModel{}
		m.showConfirm = false
		m.confirm = confirmModel{}
		m.code.Reset()
		m.password.Reset()
	}
	m.unlocked = unlocked
}

func (m *appModel) setNotice(notice models.Notice) tea.Cmd {
	m.noticeSeq++
	m.notice = &notice
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *appModel) info(message string) tea.Cmd {
	return m.setNotice(models.Notice{Severity: models.SeverityInfo, Message: message})
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// handleVaultErr reports a failed vault operation. A lock that raced the
// request is not an error worth showing, and an expired TOTP grant has
// already moved the gate to the code prompt.
func (m *appModel) handleVaultErr(err error) tea.Cmd {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrLocked), errors.Is(err, service.ErrStaleResponse):
		return nil
	case errors.Is(err, service.ErrTOTPRequired):
		return m.setNotice(models.Notice{Severity: models.SeverityInfo, Message: errorText(err)})
	}
	m.showErrorf(errorText(err))
	return nil
}

func (m appModel) handleGateResult(msg gateResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The gate keeps LastError for inline display; only the in-flight
		// guard needs a word here.
		if errors.Is(msg.err, service.ErrRequestInFlight) {
			return m, m.info(errorText(msg.err))
		}
		return m, nil
	}

	switch msg.op {
	case opUnlock:
		m.list.loading = true
		m.screen = screenList
		return m, m.cmdRefresh()
	case opDisable:
		return m, m.info("Two-factor authentication disabled. The vault was locked.")
	case opEnroll:
		m.code.Reset()
		return m, textinput.Blink
	}
	return m, nil
}

// runGate runs a gate operation off the event loop.
func (m appModel) runGate(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return gateResultMsg{op: op, err: fn(ctx)}
	})
}

// ── locked screens ───────────────────────────────────────────────────────────

func (m appModel) updateSetup(msg tea.Msg, state service.StateSetupRequired) (tea.Model, tea.Cmd) {
	gate := m.services.Gate
	keyMsg, ok := msg.(tea.KeyMsg)

	if state.Enrollment == nil {
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, keys.enter):
			return m, m.runGate(opEnroll, gate.StartEnrollment)
		case key.Matches(keyMsg, keys.skip):
			return m, m.runGate(opSkip, func(context.Context) error { return gate.SkipEnrollment() })
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if ok {
		switch {
		case key.Matches(keyMsg, keys.enter):
			code := strings.TrimSpace(m.code.Value())
			m.code.Reset()
			return m, m.runGate(opConfirm, func(ctx context.Context) error {
				return gate.ConfirmEnrollment(ctx, code)
			})
		case key.Matches(keyMsg, keys.esc):
			m.code.Reset()
			return m, m.runGate(opSkip, func(context.Context) error { return gate.SkipEnrollment() })
		}
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

func (m appModel) updateTOTP(msg tea.Msg) (tea.Model, tea.Cmd) {
	gate := m.services.Gate
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		code := strings.TrimSpace(m.code.Value())
		m.code.Reset()
		return m, m.runGate(opSubmit, func(ctx context.Context) error {
			return gate.SubmitTOTP(ctx, code)
		})
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	return m, cmd
}

func (m appModel) updatePassword(msg tea.Msg) (tea.Model, tea.Cmd) {
	gate := m.services.Gate
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		password := []byte(m.password.Value())
		m.password.Reset()
		return m, m.runGate(opUnlock, func(context.Context) error {
			return gate.Unlock(password)
		})
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m appModel) viewSetup(state service.StateSetupRequired, snap service.GateSnapshot) string {
	var b strings.Builder

	if state.Enrollment == nil {
		b.WriteString("Two-factor authentication is not set up.\n\n")
		b.WriteString("Protect the vault with an authenticator app (TOTP),\n")
		b.WriteString("or skip and continue with the master password only.\n")
		m.writeGateStatus(&b, snap)
		return renderPage("SET UP TWO-FACTOR", b.String(), "enter set up  s skip  q quit")
	}

	b.WriteString(renderEnrollment(*state.Enrollment))
	b.WriteString("\nCode: ")
	b.WriteString(m.code.View())
	b.WriteString("\n")
	m.writeGateStatus(&b, snap)
	return renderPage("SCAN WITH YOUR AUTHENTICATOR", b.String(), "enter confirm  esc skip")
}

func (m appModel) viewTOTP(snap service.GateSnapshot) string {
	var b strings.Builder
	b.WriteString("Enter the 6-digit code from your authenticator app.\n\n")
	b.WriteString("Code: ")
	b.WriteString(m.code.View())
	b.WriteString("\n")
	m.writeGateStatus(&b, snap)
	return renderPage("TWO-FACTOR CODE", b.String(), "enter verify")
}

func (m appModel) viewPassword(snap service.GateSnapshot) string {
	var b strings.Builder
	b.WriteString("Enter the master password to unlock the vault.\n\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if snap.TOTP.Enabled {
		b.WriteString(helpStyle.Render("Two-factor: verified"))
	} else {
		b.WriteString(helpStyle.Render("Two-factor: off"))
	}
	b.WriteString("\n")
	m.writeGateStatus(&b, snap)
	return renderPage("UNLOCK VAULT", b.String(), "enter unlock")
}

func (m appModel) writeGateStatus(b *strings.Builder, snap service.GateSnapshot) {
	if snap.Busy {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Please wait...\n")
		return
	}
	if snap.LastError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(errorText(snap.LastError)))
		b.WriteString("\n")
	}
}
