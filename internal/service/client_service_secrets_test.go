package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func newStoreFixture(t *testing.T) (*gateFixture, SecretStore) {
	t.Helper()
	fx := unlockedGate(t)
	return fx, NewSecretStore(fx.gate, fx.adapter, fastCipher(), logger.Nop())
}

var (
	secretAlpha = models.Secret{ID: "s1", Name: "Stripe live key", Category: models.CategoryAPIKey, Notes: "billing", ProjectID: strPtr("p1")}
	secretBeta  = models.Secret{ID: "s2", Name: "GitHub token", Category: models.CategoryToken, Notes: "ci deploy"}
	secretGamma = models.Secret{ID: "s3", Name: "db password", Category: models.CategoryPassword, ProjectID: strPtr("p2")}
	projectOne  = models.Project{ID: "p1", Name: "Payments", Color: "#22c55e", Icon: "folder"}
	projectTwo  = models.Project{ID: "p2", Name: "Infra", Color: models.DefaultProjectColor, Icon: "server"}
)

func refreshed(t *testing.T) (*gateFixture, SecretStore) {
	t.Helper()
	fx, s := newStoreFixture(t)
	fx.adapter.EXPECT().ListSecrets(gomock.Any()).Return([]models.Secret{secretAlpha, secretBeta, secretGamma}, nil)
	fx.adapter.EXPECT().ListProjects(gomock.Any()).Return([]models.Project{projectOne, projectTwo}, nil)
	require.NoError(t, s.Refresh(context.Background()))
	return fx, s
}

// ─────────────────────────────────────────────
// FilterSecrets
// ─────────────────────────────────────────────

func ids(secrets []models.Secret) []string {
	out := make([]string, 0, len(secrets))
	for _, s := range secrets {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterSecrets(t *testing.T) {
	all := []models.Secret{secretAlpha, secretBeta, secretGamma}

	tests := []struct {
		name   string
		filter models.SecretFilter
		want   []string
	}{
		{name: "zero filter is identity", filter: models.SecretFilter{}, want: []string{"s1", "s2", "s3"}},
		{name: "all/all is identity", filter: models.SecretFilter{Category: models.FilterAll, Project: models.FilterAll}, want: []string{"s1", "s2", "s3"}},
		{name: "search name case-insensitive", filter: models.SecretFilter{Search: "STRIPE"}, want: []string{"s1"}},
		{name: "search notes", filter: models.SecretFilter{Search: "deploy"}, want: []string{"s2"}},
		{name: "search keeps spaces", filter: models.SecretFilter{Search: " key"}, want: []string{"s1"}},
		{name: "padded search is literal", filter: models.SecretFilter{Search: "  github "}, want: []string{}},
		{name: "category", filter: models.SecretFilter{Category: string(models.CategoryPassword)}, want: []string{"s3"}},
		{name: "project", filter: models.SecretFilter{Project: "p1"}, want: []string{"s1"}},
		{name: "unassigned", filter: models.SecretFilter{Project: models.FilterUnassigned}, want: []string{"s2"}},
		{name: "composed", filter: models.SecretFilter{Search: "key", Category: string(models.CategoryAPIKey), Project: "p1"}, want: []string{"s1"}},
		{name: "composed no match", filter: models.SecretFilter{Search: "key", Project: "p2"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterSecrets(all, tt.filter)))
		})
	}
}

func TestFilterSecrets_DoesNotModifyInput(t *testing.T) {
	all := []models.Secret{secretAlpha, secretBeta}
	FilterSecrets(all, models.SecretFilter{Search: "github"})
	assert.Equal(t, []string{"s1", "s2"}, ids(all))
}

// ─────────────────────────────────────────────
// Refresh / Clear
// ─────────────────────────────────────────────

func TestSecretStore_Refresh(t *testing.T) {
	_, s := refreshed(t)

	assert.Len(t, s.Secrets(), 3)
	assert.Len(t, s.Projects(), 2)
	assert.Equal(t, []string{"s2"}, ids(s.Filter(models.SecretFilter{Project: models.FilterUnassigned})))
}

func TestSecretStore_Refresh_Locked(t *testing.T) {
	fx, s := newStoreFixture(t)
	fx.gate.Lock()

	assert.ErrorIs(t, s.Refresh(context.Background()), ErrLocked)
}

func TestSecretStore_Refresh_TOTPRequiredLocksGate(t *testing.T) {
	fx, s := newStoreFixture(t)
	fx.adapter.EXPECT().ListSecrets(gomock.Any()).
		Return(nil, adapterErr(adapter.ErrTOTPRequired, app.MsgTOTPRequired))

	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrTOTPRequired)
	assert.Equal(t, StateAwaitingTOTP{}, fx.gate.Snapshot().State)
}

func TestSecretStore_ClearedOnLock(t *testing.T) {
	fx, s := refreshed(t)

	fx.gate.Lock()

	assert.Empty(t, s.Secrets())
	assert.Empty(t, s.Projects())
}

func TestSecretStore_ClearedOnIdleLock(t *testing.T) {
	fx, s := refreshed(t)

	fx.clock.Advance(testIdleTimeout)

	assert.Empty(t, s.Secrets())
}

// ─────────────────────────────────────────────
// Create / Update / Delete
// ─────────────────────────────────────────────

func TestSecretStore_Create_EncryptsAndDecrypts(t *testing.T) {
	fx, s := newStoreFixture(t)

	var sent models.SecretPayload
	fx.adapter.EXPECT().CreateSecret(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.SecretPayload) (models.Secret, error) {
			sent = payload
			return models.Secret{
				ID:             "new",
				Name:           payload.Name,
				Category:       payload.Category,
				CipheredTriple: payload.CipheredTriple,
				CreatedAt:      time.Now(),
			}, nil
		})

	value := []byte("sk-live-123")
	created, err := s.Create(context.Background(), models.SecretInput{
		Name:     "  Stripe  ",
		Category: models.CategoryAPIKey,
		Value:    value,
	})
	require.NoError(t, err)

	assert.Equal(t, "Stripe", sent.Name)
	assert.Empty(t, sent.ID)
	assert.True(t, sent.Complete())
	assert.NotContains(t, sent.Ciphertext, "sk-live-123")
	assert.Equal(t, make([]byte, len("sk-live-123")), value)

	plain, err := s.DecryptForEdit(created)
	require.NoError(t, err)
	assert.Equal(t, "sk-live-123", string(plain))

	assert.Equal(t, []string{"new"}, ids(s.Secrets()))
}

func TestSecretStore_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   models.SecretInput
		wantErr error
	}{
		{name: "blank name", input: models.SecretInput{Name: " ", Category: models.CategoryOther, Value: []byte("v")}, wantErr: ErrNameRequired},
		{name: "bad category", input: models.SecretInput{Name: "n", Category: "login", Value: []byte("v")}, wantErr: ErrInvalidCategory},
		{name: "empty value", input: models.SecretInput{Name: "n", Category: models.CategoryOther}, wantErr: ErrEmptyValue},
		{name: "unknown project", input: models.SecretInput{Name: "n", Category: models.CategoryOther, Value: []byte("v"), ProjectID: strPtr("nope")}, wantErr: ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newStoreFixture(t)
			_, err := s.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSecretStore_Create_BackendRejects(t *testing.T) {
	fx, s := newStoreFixture(t)
	fx.adapter.EXPECT().CreateSecret(gomock.Any(), gomock.Any()).
		Return(models.Secret{}, adapterErr(adapter.ErrBadRequest, app.MsgIncompleteTriple))

	_, err := s.Create(context.Background(), models.SecretInput{Name: "n", Category: models.CategoryOther, Value: []byte("v")})
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Empty(t, s.Secrets())
}

func TestSecretStore_Create_Locked(t *testing.T) {
	fx, s := newStoreFixture(t)
	fx.gate.Lock()

	_, err := s.Create(context.Background(), models.SecretInput{Name: "n", Category: models.CategoryOther, Value: []byte("v")})
	assert.ErrorIs(t, err, ErrLocked)
}

func TestSecretStore_Update(t *testing.T) {
	fx, s := refreshed(t)

	fx.adapter.EXPECT().UpdateSecret(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.SecretPayload) (models.Secret, error) {
			assert.Equal(t, "s2", payload.ID)
			return models.Secret{ID: payload.ID, Name: payload.Name, Category: payload.Category, CipheredTriple: payload.CipheredTriple}, nil
		})

	updated, err := s.Update(context.Background(), "s2", models.SecretInput{
		Name:     "GitHub PAT",
		Category: models.CategoryToken,
		Value:    []byte("ghp_new"),
	})
	require.NoError(t, err)
	assert.Equal(t, "GitHub PAT", updated.Name)

	assert.Equal(t, []string{"s1", "s2", "s3"}, ids(s.Secrets()))
	assert.Equal(t, "GitHub PAT", s.Secrets()[1].Name)
}

func TestSecretStore_Update_UnknownSecret(t *testing.T) {
	_, s := refreshed(t)

	_, err := s.Update(context.Background(), "missing", models.SecretInput{Name: "n", Category: models.CategoryOther, Value: []byte("v")})
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestSecretStore_Delete(t *testing.T) {
	fx, s := refreshed(t)

	fx.adapter.EXPECT().DeleteSecret(gomock.Any(), "s1").Return(nil)
	require.NoError(t, s.Delete(context.Background(), "s1"))
	assert.Equal(t, []string{"s2", "s3"}, ids(s.Secrets()))
}

func TestSecretStore_Delete_NotFound(t *testing.T) {
	fx, s := refreshed(t)

	fx.adapter.EXPECT().DeleteSecret(gomock.Any(), "s9").
		Return(adapterErr(adapter.ErrNotFound, app.MsgSecretNotFound))

	err := s.Delete(context.Background(), "s9")
	assert.ErrorIs(t, err, ErrSecretNotFound)
	assert.Len(t, s.Secrets(), 3)
}

func TestSecretStore_DecryptForEdit_WrongPassword(t *testing.T) {
	_, s := newStoreFixture(t)

	other, err := fastCipher().Encrypt([]byte("value"), []byte("battery-staple"))
	require.NoError(t, err)

	_, err = s.DecryptForEdit(models.Secret{ID: "x", CipheredTriple: other})
	assert.ErrorIs(t, err, ErrWrongMasterPassword)
}

func TestSecretStore_RelockScenarios(t *testing.T) {
	fx, s := newStoreFixture(t)

	fx.adapter.EXPECT().CreateSecret(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.SecretPayload) (models.Secret, error) {
			return models.Secret{ID: "s-new", Name: payload.Name, Category: payload.Category, CipheredTriple: payload.CipheredTriple}, nil
		})

	created, err := s.Create(context.Background(), models.SecretInput{
		Name:     "OpenAI",
		Category: models.CategoryAPIKey,
		Value:    []byte("sk-abc123"),
	})
	require.NoError(t, err)

	t.Run("same password decrypts", func(t *testing.T) {
		fx.gate.Lock()
		require.NoError(t, fx.gate.Unlock([]byte("correct-horse")))

		plain, err := s.DecryptForEdit(created)
		require.NoError(t, err)
		assert.Equal(t, "sk-abc123", string(plain))
	})

	t.Run("other password unlocks but cannot decrypt", func(t *testing.T) {
		fx.gate.Lock()
		require.NoError(t, fx.gate.Unlock([]byte("wrong-password")))
		require.True(t, fx.gate.Snapshot().Unlocked())

		_, err := s.DecryptForEdit(created)
		assert.ErrorIs(t, err, ErrWrongMasterPassword)
	})
}

// ─────────────────────────────────────────────
// Projects
// ─────────────────────────────────────────────

func TestSecretStore_CreateProject_AppliesDefaults(t *testing.T) {
	fx, s := newStoreFixture(t)

	fx.adapter.EXPECT().CreateProject(gomock.Any(), models.ProjectPayload{
		Name:  "Payments",
		Color: models.DefaultProjectColor,
		Icon:  models.DefaultProjectIcon,
	}).Return(models.Project{ID: "p9", Name: "Payments"}, nil)

	created, err := s.CreateProject(context.Background(), models.ProjectPayload{ID: "ignored", Name: " Payments "})
	require.NoError(t, err)
	assert.Equal(t, "p9", created.ID)
	assert.Len(t, s.Projects(), 1)
}

func TestSecretStore_CreateProject_BlankName(t *testing.T) {
	_, s := newStoreFixture(t)

	_, err := s.CreateProject(context.Background(), models.ProjectPayload{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestSecretStore_UpdateProject(t *testing.T) {
	fx, s := refreshed(t)

	fx.adapter.EXPECT().UpdateProject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.ProjectPayload) (models.Project, error) {
			return models.Project{ID: payload.ID, Name: payload.Name, Color: payload.Color, Icon: payload.Icon}, nil
		})

	updated, err := s.UpdateProject(context.Background(), models.ProjectPayload{ID: "p2", Name: "Platform", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)
	assert.Equal(t, models.DefaultProjectIcon, updated.Icon)
	assert.Equal(t, "Platform", s.Projects()[1].Name)

	_, err = s.UpdateProject(context.Background(), models.ProjectPayload{ID: "p404", Name: "x"})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSecretStore_DeleteProject_UnassignsSecrets(t *testing.T) {
	fx, s := refreshed(t)

	fx.adapter.EXPECT().DeleteProject(gomock.Any(), "p1").Return(nil)
	require.NoError(t, s.DeleteProject(context.Background(), "p1"))

	assert.Len(t, s.Projects(), 1)
	assert.Equal(t, []string{"s1", "s2"}, ids(s.Filter(models.SecretFilter{Project: models.FilterUnassigned})))
	assert.Len(t, s.Secrets(), 3)
}

func TestSecretStore_ResultAfterLockIsDropped(t *testing.T) {
	fx, s := newStoreFixture(t)

	fx.adapter.EXPECT().ListSecrets(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.Secret, error) {
			fx.gate.Lock()
			return []models.Secret{secretAlpha}, nil
		})
	fx.adapter.EXPECT().ListProjects(gomock.Any()).Return(nil, nil)

	assert.ErrorIs(t, s.Refresh(context.Background()), ErrLocked)
	assert.Empty(t, s.Secrets())
}
