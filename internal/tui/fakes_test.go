package tui

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/models"
)

type fakeGate struct {
	mu        sync.Mutex
	snap      service.GateSnapshot
	touches   []service.ActivitySignal
	passwords []string
	codes     []string
	locks     int
}

func newFakeGate(state service.GateState) *fakeGate {
	return &fakeGate{snap: service.GateSnapshot{State: state}}
}

func (g *fakeGate) setState(state service.GateState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snap.State = state
}

func (g *fakeGate) Current() (uint64, bool) { return 1, g.Snapshot().Unlocked() }
func (g *fakeGate) Valid(uint64) bool       { return g.Snapshot().Unlocked() }
func (g *fakeGate) WithKey(fn func(key []byte) error) (uint64, error) {
	return 1, fn(make([]byte, 32))
}
func (g *fakeGate) OnLock(func(service.LockReason)) {}
func (g *fakeGate) RequireTOTP()                    {}

func (g *fakeGate) Load(context.Context) error            { return nil }
func (g *fakeGate) StartEnrollment(context.Context) error { return nil }
func (g *fakeGate) SkipEnrollment() error                 { return nil }

func (g *fakeGate) ConfirmEnrollment(_ context.Context, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.codes = append(g.codes, code)
	return nil
}

func (g *fakeGate) SubmitTOTP(_ context.Context, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.codes = append(g.codes, code)
	return nil
}

func (g *fakeGate) Unlock(password []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.passwords = append(g.passwords, string(password))
	for i := range password {
		password[i] = 0
	}
	g.snap.State = service.StateUnlocked{}
	return nil
}

func (g *fakeGate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.locks++
	g.snap.State = service.StateAwaitingMasterPassword{}
}

func (g *fakeGate) DisableTOTP(_ context.Context, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.codes = append(g.codes, code)
	return nil
}

func (g *fakeGate) Touch(signal service.ActivitySignal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touches = append(g.touches, signal)
}

func (g *fakeGate) Snapshot() service.GateSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

type fakeStore struct {
	secrets  []models.Secret
	projects []models.Project
	saved    []string
	deleted  []string
	refresh  int
}

func (s *fakeStore) Refresh(context.Context) error {
	s.refresh++
	return nil
}

func (s *fakeStore) Secrets() []models.Secret   { return s.secrets }
func (s *fakeStore) Projects() []models.Project { return s.projects }

func (s *fakeStore) Filter(filter models.SecretFilter) []models.Secret {
	return service.FilterSecrets(s.secrets, filter)
}

func (s *fakeStore) Create(_ context.Context, input models.SecretInput) (models.Secret, error) {
	s.saved = append(s.saved, string(input.Value))
	secret := models.Secret{ID: "new-secret", Name: input.Name, Category: input.Category, ProjectID: input.ProjectID}
	s.secrets = append(s.secrets, secret)
	return secret, nil
}

func (s *fakeStore) Update(_ context.Context, id string, input models.SecretInput) (models.Secret, error) {
	s.saved = append(s.saved, string(input.Value))
	return models.Secret{ID: id, Name: input.Name, Category: input.Category}, nil
}

func (s *fakeStore) DecryptForEdit(models.Secret) ([]byte, error) {
	return []byte("plaintext"), nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) CreateProject(_ context.Context, payload models.ProjectPayload) (models.Project, error) {
	return models.Project{ID: "new-project", Name: payload.Name}, nil
}

func (s *fakeStore) UpdateProject(_ context.Context, payload models.ProjectPayload) (models.Project, error) {
	return models.Project{ID: payload.ID, Name: payload.Name}, nil
}

func (s *fakeStore) DeleteProject(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) Clear() {}

type fakeReveal struct {
	shown     map[string]string
	revealed  []string
	copied    []string
	dismissed int
}

func newFakeReveal() *fakeReveal {
	return &fakeReveal{shown: map[string]string{}}
}

func (r *fakeReveal) Reveal(secret models.Secret) (service.RevealInfo, error) {
	r.revealed = append(r.revealed, secret.ID)
	r.shown = map[string]string{secret.ID: "plaintext"}
	return service.RevealInfo{SecretID: secret.ID}, nil
}

func (r *fakeReveal) Revealed(secretID string) (string, bool) {
	v, ok := r.shown[secretID]
	return v, ok
}

func (r *fakeReveal) ActiveTicket() (service.RevealInfo, bool) {
	for id := range r.shown {
		return service.RevealInfo{SecretID: id}, true
	}
	return service.RevealInfo{}, false
}

func (r *fakeReveal) Dismiss() {
	r.dismissed++
	r.shown = map[string]string{}
}

func (r *fakeReveal) Copy(secret models.Secret) error {
	r.copied = append(r.copied, secret.ID)
	return nil
}

func (r *fakeReveal) Clear()             { r.shown = map[string]string{} }
func (r *fakeReveal) SetOnChange(func()) {}
