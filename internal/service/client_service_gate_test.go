package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/app"
	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/mock"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

const (
	testPassword    = "correct-horse"
	testIdleTimeout = 5 * time.Minute
)

var gateTestStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fastCipher keeps Argon2id cheap enough for unit tests.
func fastCipher() crypto.CipherPrimitive {
	return crypto.NewCipherPrimitiveWithParams(crypto.Argon2Params{
		Time:    1,
		Memory:  64,
		Threads: 1,
		KeyLen:  32,
	})
}

type funcVerifier func(password []byte) error

func (f funcVerifier) Verify(password []byte) error { return f(password) }

type noticeRecorder struct {
	notices []models.Notice
}

func (r *noticeRecorder) notify(n models.Notice) { r.notices = append(r.notices, n) }

type gateFixture struct {
	gate    AuthGate
	adapter *mock.MockServerAdapter
	clock   *clock.FakeClock
	notices *noticeRecorder
}

func newGateFixture(t *testing.T, verifier MasterKeyVerifier) *gateFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	fx := &gateFixture{
		adapter: mock.NewMockServerAdapter(ctrl),
		clock:   clock.Fake(gateTestStart),
		notices: &noticeRecorder{},
	}
	if verifier == nil {
		verifier = NewMasterKeyVerifier(fastCipher())
	}
	fx.gate = NewAuthGate(fx.adapter, verifier, fx.clock, testIdleTimeout, fx.notices.notify, logger.Nop())
	return fx
}

// load runs Load against the given backend status.
func (fx *gateFixture) load(t *testing.T, status models.TOTPStatus) {
	t.Helper()
	fx.adapter.EXPECT().Status(gomock.Any()).Return(status, nil)
	require.NoError(t, fx.gate.Load(context.Background()))
}

// unlocked returns a gate that passed Load without TOTP and was unlocked.
func unlockedGate(t *testing.T) *gateFixture {
	t.Helper()
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{Enabled: false, SetupRequired: false})
	require.NoError(t, fx.gate.Unlock([]byte(testPassword)))
	return fx
}

func adapterErr(sentinel error, body string) error {
	return fmt.Errorf("%w: %s", sentinel, body)
}

// ─────────────────────────────────────────────
// Load
// ─────────────────────────────────────────────

func TestAuthGate_StartsLoading(t *testing.T) {
	fx := newGateFixture(t, nil)
	assert.IsType(t, StateLoading{}, fx.gate.Snapshot().State)
}

func TestAuthGate_Load_Routes(t *testing.T) {
	tests := []struct {
		name     string
		status   models.TOTPStatus
		want     GateState
		verified bool
	}{
		{
			name:     "first run offers enrollment",
			status:   models.TOTPStatus{Enabled: false, SetupRequired: true},
			want:     StateSetupRequired{},
			verified: true,
		},
		{
			name:     "enabled asks for a code",
			status:   models.TOTPStatus{Enabled: true, SetupRequired: false},
			want:     StateAwaitingTOTP{},
			verified: false,
		},
		{
			name:     "disabled goes straight to password",
			status:   models.TOTPStatus{Enabled: false, SetupRequired: false},
			want:     StateAwaitingMasterPassword{},
			verified: true,
		},
		{
			name:     "backend verified flag is ignored",
			status:   models.TOTPStatus{Enabled: true, Verified: true},
			want:     StateAwaitingTOTP{},
			verified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newGateFixture(t, nil)
			fx.load(t, tt.status)

			snap := fx.gate.Snapshot()
			assert.Equal(t, tt.want, snap.State)
			assert.Equal(t, tt.verified, snap.TOTP.Verified)
			assert.False(t, snap.Busy)
		})
	}
}

func TestAuthGate_Load_DegradesWhenStatusFails(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.adapter.EXPECT().Status(gomock.Any()).Return(models.TOTPStatus{}, adapter.ErrUnavailable)

	require.NoError(t, fx.gate.Load(context.Background()))

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.Equal(t, models.DegradedTOTPStatus(), snap.TOTP)
	require.Len(t, fx.notices.notices, 1)
	assert.Equal(t, models.SeverityError, fx.notices.notices[0].Severity)
}

func TestAuthGate_Load_OnlyOnce(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{})

	err := fx.gate.Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}

// ─────────────────────────────────────────────
// Enrollment
// ─────────────────────────────────────────────

func TestAuthGate_Enrollment_Success(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{SetupRequired: true})

	setup := models.TOTPSetup{URI: "otpauth://totp/vault:owner?secret=JBSWY3DPEHPK3PXP", Secret: "JBSWY3DPEHPK3PXP"}
	fx.adapter.EXPECT().Setup(gomock.Any()).Return(setup, nil)
	require.NoError(t, fx.gate.StartEnrollment(context.Background()))

	state, ok := fx.gate.Snapshot().State.(StateSetupRequired)
	require.True(t, ok)
	require.NotNil(t, state.Enrollment)
	assert.Equal(t, setup, *state.Enrollment)

	fx.adapter.EXPECT().Verify(gomock.Any(), "123456").
		Return(models.TOTPResult{OK: true, Enabled: true, Verified: true}, nil)
	require.NoError(t, fx.gate.ConfirmEnrollment(context.Background(), "123456"))

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.Equal(t, models.TOTPStatus{Enabled: true, SetupRequired: false, Verified: true}, snap.TOTP)
}

func TestAuthGate_Enrollment_WrongCodeStays(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{SetupRequired: true})

	fx.adapter.EXPECT().Setup(gomock.Any()).Return(models.TOTPSetup{URI: "otpauth://x", Secret: "S"}, nil)
	require.NoError(t, fx.gate.StartEnrollment(context.Background()))

	fx.adapter.EXPECT().Verify(gomock.Any(), "000000").
		Return(models.TOTPResult{}, adapterErr(adapter.ErrUnauthorized, app.MsgInvalidTOTPCode))

	err := fx.gate.ConfirmEnrollment(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrTOTPRejected)

	snap := fx.gate.Snapshot()
	state, ok := snap.State.(StateSetupRequired)
	require.True(t, ok)
	assert.NotNil(t, state.Enrollment)
	assert.ErrorIs(t, snap.LastError, ErrTOTPRejected)
	assert.False(t, snap.TOTP.Enabled)
}

func TestAuthGate_ConfirmEnrollment_RequiresSetup(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{SetupRequired: true})

	err := fx.gate.ConfirmEnrollment(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrNoEnrollment)
}

func TestAuthGate_StartEnrollment_Failure(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{SetupRequired: true})

	fx.adapter.EXPECT().Setup(gomock.Any()).Return(models.TOTPSetup{}, adapter.ErrUnavailable)

	err := fx.gate.StartEnrollment(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrUnavailable)

	state, ok := fx.gate.Snapshot().State.(StateSetupRequired)
	require.True(t, ok)
	assert.Nil(t, state.Enrollment)
}

func TestAuthGate_SkipEnrollment(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{SetupRequired: true})

	require.NoError(t, fx.gate.SkipEnrollment())

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.False(t, snap.TOTP.SetupRequired)
	assert.True(t, snap.TOTP.Verified)
}

// ─────────────────────────────────────────────
// SubmitTOTP
// ─────────────────────────────────────────────

func TestAuthGate_SubmitTOTP(t *testing.T) {
	tests := []struct {
		name      string
		result    models.TOTPResult
		err       error
		wantErr   error
		wantState GateState
	}{
		{
			name:      "accepted",
			result:    models.TOTPResult{OK: true, Enabled: true, Verified: true, Grant: "grant"},
			wantState: StateAwaitingMasterPassword{},
		},
		{
			name:      "rejected by status",
			err:       adapterErr(adapter.ErrUnauthorized, app.MsgInvalidTOTPCode),
			wantErr:   ErrTOTPRejected,
			wantState: StateAwaitingTOTP{},
		},
		{
			name:      "not ok in body",
			result:    models.TOTPResult{OK: false},
			wantErr:   ErrTOTPRejected,
			wantState: StateAwaitingTOTP{},
		},
		{
			name:      "disabled elsewhere",
			err:       adapterErr(adapter.ErrBadRequest, app.MsgTOTPNotEnabled),
			wantErr:   ErrTOTPNotEnabled,
			wantState: StateSetupRequired{},
		},
		{
			name:      "backend down",
			err:       adapter.ErrUnavailable,
			wantErr:   adapter.ErrUnavailable,
			wantState: StateAwaitingTOTP{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newGateFixture(t, nil)
			fx.load(t, models.TOTPStatus{Enabled: true})

			fx.adapter.EXPECT().Validate(gomock.Any(), "123456").Return(tt.result, tt.err)
			err := fx.gate.SubmitTOTP(context.Background(), "123456")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, fx.gate.Snapshot().State)
		})
	}
}

func TestAuthGate_SubmitTOTP_WrongState(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{})

	err := fx.gate.SubmitTOTP(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrInvalidState)
}

// ─────────────────────────────────────────────
// Unlock / Lock
// ─────────────────────────────────────────────

func TestAuthGate_Unlock_EncryptDecryptRoundTrip(t *testing.T) {
	fx := unlockedGate(t)

	snap := fx.gate.Snapshot()
	require.True(t, snap.Unlocked())
	assert.Equal(t, StateUnlocked{UnlockedAt: gateTestStart}, snap.State)

	cipher := fastCipher()
	var triple models.CipheredTriple
	epoch, err := fx.gate.WithKey(func(key []byte) error {
		assert.Equal(t, testPassword, string(key))
		var encErr error
		triple, encErr = cipher.Encrypt([]byte("sk-live-123"), key)
		return encErr
	})
	require.NoError(t, err)
	assert.True(t, fx.gate.Valid(epoch))

	var plain []byte
	_, err = fx.gate.WithKey(func(key []byte) error {
		var decErr error
		plain, decErr = cipher.Decrypt(triple, key)
		return decErr
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-live-123", string(plain))

	_, err = cipher.Decrypt(triple, []byte("wrong-horse"))
	assert.ErrorIs(t, decryptError(err), ErrWrongMasterPassword)
}

func TestAuthGate_Unlock_WipesPassword(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{})

	password := []byte(testPassword)
	require.NoError(t, fx.gate.Unlock(password))
	assert.Equal(t, make([]byte, len(testPassword)), password)
}

func TestAuthGate_Unlock_VerificationFailure(t *testing.T) {
	fx := newGateFixture(t, funcVerifier(func([]byte) error { return errors.New("probe mismatch") }))
	fx.load(t, models.TOTPStatus{})

	password := []byte("wrong-horse")
	err := fx.gate.Unlock(password)

	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, make([]byte, len(password)), password)

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.ErrorIs(t, snap.LastError, ErrVerificationFailed)

	_, ok := fx.gate.Current()
	assert.False(t, ok)
}

func TestAuthGate_Unlock_EmptyPassword(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{})

	assert.ErrorIs(t, fx.gate.Unlock(nil), ErrVerificationFailed)
	assert.False(t, fx.gate.Snapshot().Unlocked())
}

func TestAuthGate_Unlock_RequiresPasswordState(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{Enabled: true})

	err := fx.gate.Unlock([]byte(testPassword))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAuthGate_Lock(t *testing.T) {
	fx := unlockedGate(t)

	var reasons []LockReason
	fx.gate.OnLock(func(r LockReason) { reasons = append(reasons, r) })

	epoch, ok := fx.gate.Current()
	require.True(t, ok)

	fx.gate.Lock()

	assert.Equal(t, StateAwaitingMasterPassword{}, fx.gate.Snapshot().State)
	assert.Equal(t, []LockReason{LockReasonUser}, reasons)
	assert.False(t, fx.gate.Valid(epoch))

	_, err := fx.gate.WithKey(func([]byte) error { return nil })
	assert.ErrorIs(t, err, ErrLocked)

	// second lock is a no-op
	fx.gate.Lock()
	assert.Len(t, reasons, 1)
	assert.Zero(t, fx.clock.PendingTimers())
}

func TestAuthGate_Lock_WithTOTPRoutesToPassword(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{Enabled: true})

	fx.adapter.EXPECT().Validate(gomock.Any(), "123456").Return(models.TOTPResult{OK: true}, nil)
	require.NoError(t, fx.gate.SubmitTOTP(context.Background(), "123456"))
	require.NoError(t, fx.gate.Unlock([]byte(testPassword)))

	fx.gate.Lock()

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.True(t, snap.TOTP.Verified)
}

func TestAuthGate_NewEpochPerUnlock(t *testing.T) {
	fx := unlockedGate(t)
	first, _ := fx.gate.Current()

	fx.gate.Lock()
	require.NoError(t, fx.gate.Unlock([]byte(testPassword)))

	second, ok := fx.gate.Current()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.False(t, fx.gate.Valid(first))
}

// ─────────────────────────────────────────────
// Idle lock
// ─────────────────────────────────────────────

func TestAuthGate_IdleLock_FiresAtTimeout(t *testing.T) {
	fx := unlockedGate(t)

	fx.clock.Advance(testIdleTimeout - time.Millisecond)
	assert.True(t, fx.gate.Snapshot().Unlocked())

	fx.clock.Advance(time.Millisecond)
	assert.Equal(t, StateAwaitingMasterPassword{}, fx.gate.Snapshot().State)

	require.Len(t, fx.notices.notices, 1)
	assert.Equal(t, models.SeverityInfo, fx.notices.notices[0].Severity)
	assert.Contains(t, fx.notices.notices[0].Message, "5m0s")
}

func TestAuthGate_IdleLock_TouchResets(t *testing.T) {
	fx := unlockedGate(t)

	fx.clock.Advance(4 * time.Minute)
	fx.gate.Touch(SignalKeyPress)
	fx.clock.Advance(4 * time.Minute)
	assert.True(t, fx.gate.Snapshot().Unlocked())

	fx.gate.Touch(SignalPointerMove)
	fx.clock.Advance(testIdleTimeout - time.Second)
	assert.True(t, fx.gate.Snapshot().Unlocked())

	fx.clock.Advance(time.Second)
	assert.False(t, fx.gate.Snapshot().Unlocked())
}

func TestAuthGate_IdleLock_ResizeIsNotActivity(t *testing.T) {
	fx := unlockedGate(t)

	fx.clock.Advance(4 * time.Minute)
	fx.gate.Touch(SignalResize)
	fx.clock.Advance(time.Minute)

	assert.False(t, fx.gate.Snapshot().Unlocked())
}

func TestAuthGate_Touch_WhileLockedDoesNothing(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{})

	fx.gate.Touch(SignalClick)
	assert.Zero(t, fx.clock.PendingTimers())
}

func TestAuthGate_IdleLock_NotifiesListeners(t *testing.T) {
	fx := unlockedGate(t)

	var got LockReason = -1
	fx.gate.OnLock(func(r LockReason) { got = r })

	fx.clock.Advance(testIdleTimeout)
	assert.Equal(t, LockReasonIdle, got)
}

// ─────────────────────────────────────────────
// DisableTOTP / RequireTOTP
// ─────────────────────────────────────────────

func enrolledUnlockedGate(t *testing.T) *gateFixture {
	t.Helper()
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{Enabled: true})

	fx.adapter.EXPECT().Validate(gomock.Any(), "111111").Return(models.TOTPResult{OK: true}, nil)
	require.NoError(t, fx.gate.SubmitTOTP(context.Background(), "111111"))
	require.NoError(t, fx.gate.Unlock([]byte(testPassword)))
	return fx
}

func TestAuthGate_DisableTOTP(t *testing.T) {
	fx := enrolledUnlockedGate(t)

	var got LockReason = -1
	fx.gate.OnLock(func(r LockReason) { got = r })

	fx.adapter.EXPECT().Disable(gomock.Any(), "222222").
		Return(models.TOTPResult{OK: true, Disabled: true}, nil)
	require.NoError(t, fx.gate.DisableTOTP(context.Background(), "222222"))

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateSetupRequired{}, snap.State)
	assert.Equal(t, models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}, snap.TOTP)
	assert.Equal(t, LockReasonTOTPDisabled, got)
}

func TestAuthGate_DisableTOTP_WrongCodeKeepsSession(t *testing.T) {
	fx := enrolledUnlockedGate(t)

	fx.adapter.EXPECT().Disable(gomock.Any(), "000000").
		Return(models.TOTPResult{}, adapterErr(adapter.ErrUnauthorized, app.MsgInvalidTOTPCode))

	err := fx.gate.DisableTOTP(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrTOTPRejected)
	assert.True(t, fx.gate.Snapshot().Unlocked())
}

func TestAuthGate_DisableTOTP_AppliedAfterConcurrentLock(t *testing.T) {
	fx := enrolledUnlockedGate(t)

	fx.adapter.EXPECT().Disable(gomock.Any(), "222222").
		DoAndReturn(func(context.Context, string) (models.TOTPResult, error) {
			// idle lock fires while the request is out
			fx.gate.Lock()
			return models.TOTPResult{OK: true, Disabled: true}, nil
		})

	err := fx.gate.DisableTOTP(context.Background(), "222222")
	assert.ErrorIs(t, err, ErrStaleResponse)

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateSetupRequired{}, snap.State)
	assert.Equal(t, models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}, snap.TOTP)
	assert.False(t, snap.Busy)
}

func TestAuthGate_DisableTOTP_RejectedAfterConcurrentLockKeepsStatus(t *testing.T) {
	fx := enrolledUnlockedGate(t)

	fx.adapter.EXPECT().Disable(gomock.Any(), "000000").
		DoAndReturn(func(context.Context, string) (models.TOTPResult, error) {
			fx.gate.Lock()
			return models.TOTPResult{}, adapterErr(adapter.ErrUnauthorized, app.MsgInvalidTOTPCode)
		})

	err := fx.gate.DisableTOTP(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrStaleResponse)

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingMasterPassword{}, snap.State)
	assert.True(t, snap.TOTP.Enabled)
}

func TestAuthGate_DisableTOTP_Guards(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		fx := newGateFixture(t, nil)
		fx.load(t, models.TOTPStatus{})
		assert.ErrorIs(t, fx.gate.DisableTOTP(context.Background(), "123456"), ErrLocked)
	})

	t.Run("not enabled", func(t *testing.T) {
		fx := unlockedGate(t)
		assert.ErrorIs(t, fx.gate.DisableTOTP(context.Background(), "123456"), ErrTOTPNotEnabled)
	})
}

func TestAuthGate_RequireTOTP(t *testing.T) {
	t.Run("unlocked gate locks", func(t *testing.T) {
		fx := enrolledUnlockedGate(t)

		var got LockReason = -1
		fx.gate.OnLock(func(r LockReason) { got = r })

		fx.gate.RequireTOTP()

		snap := fx.gate.Snapshot()
		assert.Equal(t, StateAwaitingTOTP{}, snap.State)
		assert.False(t, snap.TOTP.Verified)
		assert.Equal(t, LockReasonTOTPExpired, got)
	})

	t.Run("password step goes back to code", func(t *testing.T) {
		fx := newGateFixture(t, nil)
		fx.load(t, models.TOTPStatus{})

		fx.gate.RequireTOTP()

		snap := fx.gate.Snapshot()
		assert.Equal(t, StateAwaitingTOTP{}, snap.State)
		assert.True(t, snap.TOTP.Enabled)
	})
}

// ─────────────────────────────────────────────
// in-flight and stale guards
// ─────────────────────────────────────────────

func TestAuthGate_RejectsSecondRequestInFlight(t *testing.T) {
	fx := newGateFixture(t, nil)
	fx.load(t, models.TOTPStatus{Enabled: true})

	var nestedErr error
	fx.adapter.EXPECT().Validate(gomock.Any(), "123456").
		DoAndReturn(func(ctx context.Context, _ string) (models.TOTPResult, error) {
			assert.True(t, fx.gate.Snapshot().Busy)
			nestedErr = fx.gate.SubmitTOTP(ctx, "654321")
			return models.TOTPResult{OK: true}, nil
		})

	require.NoError(t, fx.gate.SubmitTOTP(context.Background(), "123456"))
	assert.ErrorIs(t, nestedErr, ErrRequestInFlight)
	assert.False(t, fx.gate.Snapshot().Busy)
}

func TestAuthGate_DiscardsStaleResult(t *testing.T) {
	var fx *gateFixture
	fx = newGateFixture(t, funcVerifier(func([]byte) error {
		// the state moves on while the password is being checked
		fx.gate.RequireTOTP()
		return nil
	}))
	fx.load(t, models.TOTPStatus{})

	err := fx.gate.Unlock([]byte(testPassword))
	assert.ErrorIs(t, err, ErrStaleResponse)

	snap := fx.gate.Snapshot()
	assert.Equal(t, StateAwaitingTOTP{}, snap.State)
	assert.False(t, snap.Busy)
	_, ok := fx.gate.Current()
	assert.False(t, ok)
}
