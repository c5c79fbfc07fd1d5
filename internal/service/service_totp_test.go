package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fake: store.TOTPRepository
// ─────────────────────────────────────────────

type memoryTOTPRepository struct {
	settings *models.TOTPSettings
	err      error
}

func (m *memoryTOTPRepository) GetTOTPSettings(_ context.Context) (models.TOTPSettings, error) {
	if m.err != nil {
		return models.TOTPSettings{}, m.err
	}
	if m.settings == nil {
		return models.TOTPSettings{}, store.ErrTOTPSettingsNotFound
	}
	return *m.settings, nil
}

func (m *memoryTOTPRepository) SaveTOTPSettings(_ context.Context, settings models.TOTPSettings) error {
	if m.err != nil {
		return m.err
	}
	settings.ID = 1
	m.settings = &settings
	return nil
}

func (m *memoryTOTPRepository) DeleteTOTPSettings(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.settings = nil
	return nil
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

var totpTestStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-vault-gate",
		GrantDuration: 10 * time.Minute,
		TOTPIssuer:    "Vault",
		TOTPAccount:   "owner",
	}
}

func newTestTOTPService(t *testing.T) (*totpService, *memoryTOTPRepository, *clock.FakeClock) {
	t.Helper()
	repo := &memoryTOTPRepository{}
	clk := clock.Fake(totpTestStart)
	svc := NewTOTPService(repo, testServerConfig(), clk, logger.Nop()).(*totpService)
	return svc, repo, clk
}

func currentCode(t *testing.T, secret string, clk *clock.FakeClock) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, clk.Now())
	require.NoError(t, err)
	return code
}

// enrolled runs setup and verify and returns the secret.
func enrolled(t *testing.T, svc *totpService, clk *clock.FakeClock) string {
	t.Helper()
	setup, err := svc.Setup(context.Background())
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), currentCode(t, setup.Secret, clk))
	require.NoError(t, err)

	// step past the spent code
	clk.Advance(30 * time.Second)
	return setup.Secret
}

// ─────────────────────────────────────────────
// Status / Setup / Verify
// ─────────────────────────────────────────────

func TestTOTPService_Status_NotEnrolled(t *testing.T) {
	svc, _, _ := newTestTOTPService(t)

	status, err := svc.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}, status)
}

func TestTOTPService_Status_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestTOTPService(t)
	repo.err = store.ErrDatabaseUnavailable

	_, err := svc.Status(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrDatabaseUnavailable))
}

func TestTOTPService_Setup_StoresPendingSecret(t *testing.T) {
	svc, repo, _ := newTestTOTPService(t)

	setup, err := svc.Setup(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.URI, "otpauth://totp/")
	assert.Contains(t, setup.URI, "issuer=Vault")
	require.NotNil(t, repo.settings)
	assert.Equal(t, setup.Secret, repo.settings.Secret)
	assert.False(t, repo.settings.Enabled)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.SetupRequired, "a pending setup is not an enrollment")
}

func TestTOTPService_Setup_AlreadyEnabled(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	enrolled(t, svc, clk)

	_, err := svc.Setup(context.Background())

	assert.ErrorIs(t, err, ErrTOTPAlreadyEnabled)
}

func TestTOTPService_Verify_WithoutSetup(t *testing.T) {
	svc, _, _ := newTestTOTPService(t)

	_, err := svc.Verify(context.Background(), "123456")

	assert.ErrorIs(t, err, ErrNoPendingSetup)
}

func TestTOTPService_Verify_WrongCodeKeepsSetupPending(t *testing.T) {
	svc, repo, _ := newTestTOTPService(t)
	_, err := svc.Setup(context.Background())
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), "abcdef")

	assert.ErrorIs(t, err, ErrInvalidTOTPCode)
	assert.False(t, repo.settings.Enabled)
}

func TestTOTPService_Verify_EnablesAndIssuesGrant(t *testing.T) {
	svc, repo, clk := newTestTOTPService(t)
	setup, err := svc.Setup(context.Background())
	require.NoError(t, err)

	result, err := svc.Verify(context.Background(), currentCode(t, setup.Secret, clk))

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.True(t, result.Enabled)
	assert.True(t, result.Verified)
	require.NotEmpty(t, result.Grant)
	assert.True(t, repo.settings.Enabled)
	assert.NoError(t, svc.ValidateGrant(result.Grant))

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TOTPStatus{Enabled: true, SetupRequired: false, Verified: false}, status)
}

// ─────────────────────────────────────────────
// Validate / replay
// ─────────────────────────────────────────────

func TestTOTPService_Validate_NotEnabled(t *testing.T) {
	svc, _, _ := newTestTOTPService(t)

	_, err := svc.Validate(context.Background(), "123456")

	assert.ErrorIs(t, err, ErrTOTPNotEnabled)
}

func TestTOTPService_Validate_AcceptsCodeOnce(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	secret := enrolled(t, svc, clk)
	code := currentCode(t, secret, clk)

	result, err := svc.Validate(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.NotEmpty(t, result.Grant)

	_, err = svc.Validate(context.Background(), code)
	assert.ErrorIs(t, err, ErrInvalidTOTPCode, "replayed code must be rejected")
}

func TestTOTPService_Validate_AcceptsCodeWithinSkew(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	secret := enrolled(t, svc, clk)
	code := currentCode(t, secret, clk)

	clk.Advance(30 * time.Second)

	_, err := svc.Validate(context.Background(), code)
	assert.NoError(t, err)
}

func TestTOTPService_Validate_RejectsExpiredCode(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	secret := enrolled(t, svc, clk)
	code := currentCode(t, secret, clk)

	clk.Advance(5 * time.Minute)

	_, err := svc.Validate(context.Background(), code)
	assert.ErrorIs(t, err, ErrInvalidTOTPCode)
}

func TestTOTPService_SweepReplayCache(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	enrolled(t, svc, clk)

	// the verify code was spent 30s ago
	assert.Equal(t, 0, svc.SweepReplayCache())

	clk.Advance(ReplayWindow)
	assert.Equal(t, 1, svc.SweepReplayCache())
	assert.Equal(t, 0, svc.SweepReplayCache())
}

// ─────────────────────────────────────────────
// Disable
// ─────────────────────────────────────────────

func TestTOTPService_Disable_RemovesSecret(t *testing.T) {
	svc, repo, clk := newTestTOTPService(t)
	secret := enrolled(t, svc, clk)

	result, err := svc.Disable(context.Background(), currentCode(t, secret, clk))

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.True(t, result.Disabled)
	assert.False(t, result.Enabled)
	assert.Nil(t, repo.settings)

	required, err := svc.GrantRequired(context.Background())
	require.NoError(t, err)
	assert.False(t, required)
}

func TestTOTPService_Disable_WrongCodeKeepsEnrollment(t *testing.T) {
	svc, repo, clk := newTestTOTPService(t)
	enrolled(t, svc, clk)

	_, err := svc.Disable(context.Background(), "abcdef")

	assert.ErrorIs(t, err, ErrInvalidTOTPCode)
	require.NotNil(t, repo.settings)
	assert.True(t, repo.settings.Enabled)
}

// ─────────────────────────────────────────────
// Grants
// ─────────────────────────────────────────────

func TestTOTPService_GrantRequired(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)

	required, err := svc.GrantRequired(context.Background())
	require.NoError(t, err)
	assert.False(t, required)

	_, err = svc.Setup(context.Background())
	require.NoError(t, err)
	required, err = svc.GrantRequired(context.Background())
	require.NoError(t, err)
	assert.False(t, required, "pending setup does not guard the vault")

	enrolled(t, svc, clk)
	required, err = svc.GrantRequired(context.Background())
	require.NoError(t, err)
	assert.True(t, required)
}

func TestTOTPService_ValidateGrant_Expires(t *testing.T) {
	svc, _, clk := newTestTOTPService(t)
	secret := enrolled(t, svc, clk)

	result, err := svc.Validate(context.Background(), currentCode(t, secret, clk))
	require.NoError(t, err)

	clk.Advance(9 * time.Minute)
	assert.NoError(t, svc.ValidateGrant(result.Grant))

	clk.Advance(2 * time.Minute)
	assert.ErrorIs(t, svc.ValidateGrant(result.Grant), ErrInvalidGrant)
}

func TestTOTPService_ValidateGrant_Rejects(t *testing.T) {
	svc, _, _ := newTestTOTPService(t)

	assert.ErrorIs(t, svc.ValidateGrant(""), ErrInvalidGrant)
	assert.ErrorIs(t, svc.ValidateGrant("not-a-jwt"), ErrInvalidGrant)

	other := NewTOTPService(&memoryTOTPRepository{}, config.ServerConfig{
		TokenSignKey:  "another-key",
		TokenIssuer:   "go-vault-gate",
		GrantDuration: time.Minute,
	}, clock.Fake(totpTestStart), logger.Nop()).(*totpService)
	forged, err := other.issueGrant()
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ValidateGrant(forged), ErrInvalidGrant)
}
