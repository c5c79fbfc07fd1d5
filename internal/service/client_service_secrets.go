package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/awnumar/memguard"
)

type secretStore struct {
	mu       sync.RWMutex
	secrets  []models.Secret
	projects []models.Project

	session Session
	adapter adapter.VaultAdapter
	cipher  crypto.CipherPrimitive

	logger *logger.Logger
}

// NewSecretStore returns a SecretStore bound to session. The cache is
// cleared on every lock.
func NewSecretStore(session Session, vaultAdapter adapter.VaultAdapter, cipher crypto.CipherPrimitive, log *logger.Logger) SecretStore {
	s := &secretStore{
		session: session,
		adapter: vaultAdapter,
		cipher:  cipher,
		logger:  log,
	}
	session.OnLock(func(LockReason) { s.Clear() })
	return s
}

func (s *secretStore) Refresh(ctx context.Context) error {
	epoch, ok := s.session.Current()
	if !ok {
		return ErrLocked
	}

	secrets, err := s.adapter.ListSecrets(ctx)
	if err != nil {
		return fmt.Errorf("list secrets: %w", s.backendError(err))
	}
	projects, err := s.adapter.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return ErrLocked
	}
	s.secrets = secrets
	s.projects = projects

	s.logger.Debug().Int("secrets", len(secrets)).Int("projects", len(projects)).Msg("vault cache refreshed")
	return nil
}

func (s *secretStore) Secrets() []models.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.secrets)
}

func (s *secretStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *secretStore) Filter(filter models.SecretFilter) []models.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterSecrets(s.secrets, filter)
}

func (s *secretStore) Create(ctx context.Context, input models.SecretInput) (models.Secret, error) {
	defer memguard.WipeBytes(input.Value)

	if err := s.validateInput(input); err != nil {
		return models.Secret{}, err
	}

	epoch, triple, err := s.encrypt(input.Value)
	if err != nil {
		return models.Secret{}, err
	}

	created, err := s.adapter.CreateSecret(ctx, secretPayload("", input, triple))
	if err != nil {
		return models.Secret{}, fmt.Errorf("%w: create secret: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return models.Secret{}, ErrLocked
	}
	s.secrets = append([]models.Secret{created}, s.secrets...)

	s.logger.Debug().Str("secret_id", created.ID).Msg("secret created")
	return created, nil
}

func (s *secretStore) Update(ctx context.Context, id string, input models.SecretInput) (models.Secret, error) {
	defer memguard.WipeBytes(input.Value)

	if _, ok := s.secretByID(id); !ok {
		return models.Secret{}, ErrSecretNotFound
	}
	if err := s.validateInput(input); err != nil {
		return models.Secret{}, err
	}

	epoch, triple, err := s.encrypt(input.Value)
	if err != nil {
		return models.Secret{}, err
	}

	updated, err := s.adapter.UpdateSecret(ctx, secretPayload(id, input, triple))
	if err != nil {
		return models.Secret{}, fmt.Errorf("%w: update secret: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return models.Secret{}, ErrLocked
	}
	if i := slices.IndexFunc(s.secrets, func(sec models.Secret) bool { return sec.ID == id }); i >= 0 {
		s.secrets[i] = updated
	} else {
		s.secrets = append([]models.Secret{updated}, s.secrets...)
	}

	s.logger.Debug().Str("secret_id", id).Msg("secret updated")
	return updated, nil
}

func (s *secretStore) DecryptForEdit(secret models.Secret) ([]byte, error) {
	var plaintext []byte
	_, err := s.session.WithKey(func(key []byte) error {
		plain, err := s.cipher.Decrypt(secret.CipheredTriple, key)
		plaintext = plain
		return err
	})
	if err != nil {
		return nil, decryptError(err)
	}
	return plaintext, nil
}

func (s *secretStore) Delete(ctx context.Context, id string) error {
	epoch, ok := s.session.Current()
	if !ok {
		return ErrLocked
	}

	if err := s.adapter.DeleteSecret(ctx, id); err != nil {
		return fmt.Errorf("%w: delete secret: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return ErrLocked
	}
	s.secrets = slices.DeleteFunc(s.secrets, func(sec models.Secret) bool { return sec.ID == id })

	s.logger.Debug().Str("secret_id", id).Msg("secret deleted")
	return nil
}

func (s *secretStore) CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	epoch, ok := s.session.Current()
	if !ok {
		return models.Project{}, ErrLocked
	}

	payload.ID = ""
	payload, err := normalizeProject(payload)
	if err != nil {
		return models.Project{}, err
	}

	created, err := s.adapter.CreateProject(ctx, payload)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: create project: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return models.Project{}, ErrLocked
	}
	s.projects = append(s.projects, created)
	return created, nil
}

func (s *secretStore) UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	epoch, ok := s.session.Current()
	if !ok {
		return models.Project{}, ErrLocked
	}
	if _, found := s.projectByID(payload.ID); !found {
		return models.Project{}, ErrProjectNotFound
	}

	payload, err := normalizeProject(payload)
	if err != nil {
		return models.Project{}, err
	}

	updated, err := s.adapter.UpdateProject(ctx, payload)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: update project: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return models.Project{}, ErrLocked
	}
	if i := slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == updated.ID }); i >= 0 {
		s.projects[i] = updated
	}
	return updated, nil
}

// DeleteProject removes the project and leaves its secrets unassigned.
func (s *secretStore) DeleteProject(ctx context.Context, id string) error {
	epoch, ok := s.session.Current()
	if !ok {
		return ErrLocked
	}

	if err := s.adapter.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("%w: delete project: %w", ErrSaveFailed, s.backendError(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid(epoch) {
		return ErrLocked
	}
	s.projects = slices.DeleteFunc(s.projects, func(p models.Project) bool { return p.ID == id })
	for i := range s.secrets {
		if s.secrets[i].InProject(id) {
			s.secrets[i].ProjectID = nil
		}
	}
	return nil
}

func (s *secretStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets = nil
	s.projects = nil
}

func (s *secretStore) validateInput(input models.SecretInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}
	if !input.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(input.Value) == 0 {
		return ErrEmptyValue
	}
	if input.ProjectID != nil {
		if _, ok := s.projectByID(*input.ProjectID); !ok {
			return ErrProjectNotFound
		}
	}
	return nil
}

func (s *secretStore) encrypt(value []byte) (uint64, models.CipheredTriple, error) {
	var triple models.CipheredTriple
	epoch, err := s.session.WithKey(func(key []byte) error {
		t, err := s.cipher.Encrypt(value, key)
		triple = t
		return err
	})
	if errors.Is(err, ErrLocked) {
		return 0, models.CipheredTriple{}, ErrLocked
	}
	if err != nil {
		return 0, models.CipheredTriple{}, fmt.Errorf("encrypt secret: %w", err)
	}
	return epoch, triple, nil
}

// backendError maps err and drops the TOTP verification when the backend
// asks for a new code.
func (s *secretStore) backendError(err error) error {
	mapped := mapAdapterError(err)
	if errors.Is(mapped, ErrTOTPRequired) {
		s.logger.Info().Msg("backend requires totp verification, locking")
		s.session.RequireTOTP()
	}
	return mapped
}

func (s *secretStore) secretByID(id string) (models.Secret, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.secrets, func(sec models.Secret) bool { return sec.ID == id })
	if i < 0 {
		return models.Secret{}, false
	}
	return s.secrets[i], true
}

func (s *secretStore) projectByID(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return models.Project{}, false
	}
	return s.projects[i], true
}

func secretPayload(id string, input models.SecretInput, triple models.CipheredTriple) models.SecretPayload {
	return models.SecretPayload{
		ID:             id,
		Name:           strings.TrimSpace(input.Name),
		Category:       input.Category,
		CipheredTriple: triple,
		Notes:          input.Notes,
		ProjectID:      input.ProjectID,
	}
}

func normalizeProject(payload models.ProjectPayload) (models.ProjectPayload, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return payload, ErrNameRequired
	}
	if payload.Color == "" {
		payload.Color = models.DefaultProjectColor
	}
	if payload.Icon == "" {
		payload.Icon = models.DefaultProjectIcon
	}
	return payload, nil
}

// decryptError maps a failed decryption under the session key.
func decryptError(err error) error {
	switch {
	case errors.Is(err, ErrLocked):
		return ErrLocked
	case errors.Is(err, crypto.ErrIntegrity), errors.Is(err, crypto.ErrMalformedTriple):
		return ErrWrongMasterPassword
	default:
		return fmt.Errorf("decrypt secret: %w", err)
	}
}

// FilterSecrets returns the secrets matching every criterion of filter, in
// their original order:
//   - Search is a case-insensitive substring of the name or the notes;
//   - Category is a category or FilterAll;
//   - Project is a project id, FilterUnassigned or FilterAll.
//
// Empty criteria match everything.
func FilterSecrets(secrets []models.Secret, filter models.SecretFilter) []models.Secret {
	search := strings.ToLower(filter.Search)

	matched := make([]models.Secret, 0, len(secrets))
	for _, secret := range secrets {
		if search != "" &&
			!strings.Contains(strings.ToLower(secret.Name), search) &&
			!strings.Contains(strings.ToLower(secret.Notes), search) {
			continue
		}

		if filter.Category != "" && filter.Category != models.FilterAll && string(secret.Category) != filter.Category {
			continue
		}

		switch filter.Project {
		case "", models.FilterAll:
		case models.FilterUnassigned:
			if secret.ProjectID != nil {
				continue
			}
		default:
			if !secret.InProject(filter.Project) {
				continue
			}
		}

		matched = append(matched, secret)
	}
	return matched
}
