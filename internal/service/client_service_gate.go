// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/awnumar/memguard"
)

// authGate implements AuthGate.
//
// All fields below mu are guarded by it. The TOTP adapter, the verifier and
// lock listeners are always called with mu released.
type authGate struct {
	mu sync.Mutex

	state      GateState
	totp       models.TOTPStatus
	busy       bool
	generation uint64
	lastErr    error

	session *authSession
	epoch   uint64

	listeners []func(LockReason)

	totpAdapter adapter.TOTPAdapter
	verifier    MasterKeyVerifier
	idle        *IdleLockTimer
	clock       clock.Clock
	idleTimeout time.Duration
	notify      func(models.Notice)

	logger *logger.Logger
}

// NewAuthGate returns a gate in StateLoading. notify receives notices raised
// outside of a user action, such as the idle lock; it may be nil.
func NewAuthGate(
	totpAdapter adapter.TOTPAdapter,
	verifier MasterKeyVerifier,
	clk clock.Clock,
	idleTimeout time.Duration,
	notify func(models.Notice),
	log *logger.Logger,
) AuthGate {
	if notify == nil {
		notify = func(models.Notice) {}
	}

	g := &authGate{
		state:       StateLoading{},
		totpAdapter: totpAdapter,
		verifier:    verifier,
		clock:       clk,
		idleTimeout: idleTimeout,
		notify:      notify,
		logger:      log,
	}
	g.idle = NewIdleLockTimer(clk, idleTimeout, func() { g.lock(LockReasonIdle) })

	return g
}

// ── guards ───────────────────────────────────────────────────────────────────

// begin marks the gate busy if guard accepts the current state and returns
// the generation the request is issued under.
func (g *authGate) begin(guard func(GateState, models.TOTPStatus) error) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy {
		return 0, ErrRequestInFlight
	}
	if err := guard(g.state, g.totp); err != nil {
		return 0, err
	}

	g.busy = true
	g.lastErr = nil
	return g.generation, nil
}

// finishLocked clears the busy flag and reports whether a result issued under
// generation may still be applied. mu must be held.
func (g *authGate) finishLocked(generation uint64) error {
	g.busy = false
	if generation != g.generation {
		return ErrStaleResponse
	}
	return nil
}

// transitionLocked moves to next and invalidates every pending result.
func (g *authGate) transitionLocked(next GateState) {
	g.logger.Debug().
		Str("from", g.state.String()).
		Str("to", next.String()).
		Msg("gate transition")

	g.state = next
	g.generation++
}

// routeLocked picks the locked state that matches the TOTP status.
func (g *authGate) routeLocked() GateState {
	switch {
	case g.totp.SetupRequired:
		return StateSetupRequired{}
	case g.totp.Enabled && !g.totp.Verified:
		return StateAwaitingTOTP{}
	default:
		return StateAwaitingMasterPassword{}
	}
}

func (g *authGate) failLocked(err error) error {
	g.lastErr = err
	return err
}

func inState[S GateState](state GateState, _ models.TOTPStatus) error {
	if _, ok := state.(S); !ok {
		return ErrInvalidState
	}
	return nil
}

// ── transitions ──────────────────────────────────────────────────────────────

func (g *authGate) Load(ctx context.Context) error {
	generation, err := g.begin(inState[StateLoading])
	if err != nil {
		return err
	}

	status, statusErr := g.totpAdapter.Status(ctx)

	g.mu.Lock()
	if err = g.finishLocked(generation); err != nil {
		g.mu.Unlock()
		return err
	}

	degraded := statusErr != nil
	if degraded {
		status = models.DegradedTOTPStatus()
	} else {
		status.Verified = !status.Enabled
	}
	g.totp = status
	g.transitionLocked(g.routeLocked())
	g.mu.Unlock()

	if degraded {
		g.logger.Warn().Err(statusErr).Msg("totp status unavailable, continuing without second factor")
		g.notify(models.Notice{
			Severity: models.SeverityError,
			Message:  "Two-factor service unavailable. Continuing with the master password only.",
		})
	}
	return nil
}

func (g *authGate) StartEnrollment(ctx context.Context) error {
	generation, err := g.begin(inState[StateSetupRequired])
	if err != nil {
		return err
	}

	setup, setupErr := g.totpAdapter.Setup(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.finishLocked(generation); err != nil {
		return err
	}
	if setupErr != nil {
		return g.failLocked(fmt.Errorf("start totp enrollment: %w", mapAdapterError(setupErr)))
	}

	g.transitionLocked(StateSetupRequired{Enrollment: &setup})
	return nil
}

func (g *authGate) ConfirmEnrollment(ctx context.Context, code string) error {
	generation, err := g.begin(func(state GateState, _ models.TOTPStatus) error {
		setup, ok := state.(StateSetupRequired)
		if !ok {
			return ErrInvalidState
		}
		if setup.Enrollment == nil {
			return ErrNoEnrollment
		}
		return nil
	})
	if err != nil {
		return err
	}

	result, verifyErr := g.totpAdapter.Verify(ctx, code)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.finishLocked(generation); err != nil {
		return err
	}
	if err = totpOutcome(result, verifyErr); err != nil {
		return g.failLocked(err)
	}

	g.totp = models.TOTPStatus{Enabled: true, SetupRequired: false, Verified: true}
	g.transitionLocked(StateAwaitingMasterPassword{})
	return nil
}

func (g *authGate) SkipEnrollment() error {
	generation, err := g.begin(inState[StateSetupRequired])
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.finishLocked(generation); err != nil {
		return err
	}

	g.totp = models.TOTPStatus{Enabled: false, SetupRequired: false, Verified: true}
	g.transitionLocked(StateAwaitingMasterPassword{})
	return nil
}

func (g *authGate) SubmitTOTP(ctx context.Context, code string) error {
	generation, err := g.begin(inState[StateAwaitingTOTP])
	if err != nil {
		return err
	}

	result, validateErr := g.totpAdapter.Validate(ctx, code)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.finishLocked(generation); err != nil {
		return err
	}

	err = totpOutcome(result, validateErr)
	switch {
	case errors.Is(err, ErrTOTPNotEnabled):
		// Disabled elsewhere; offer enrollment again.
		g.totp = models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}
		g.transitionLocked(g.routeLocked())
		return g.failLocked(err)
	case err != nil:
		return g.failLocked(err)
	}

	g.totp.Verified = true
	g.transitionLocked(StateAwaitingMasterPassword{})
	return nil
}

func (g *authGate) Unlock(password []byte) error {
	generation, err := g.begin(inState[StateAwaitingMasterPassword])
	if err != nil {
		memguard.WipeBytes(password)
		return err
	}

	verifyErr := g.verifier.Verify(password)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err = g.finishLocked(generation); err != nil {
		memguard.WipeBytes(password)
		return err
	}
	if verifyErr != nil {
		memguard.WipeBytes(password)
		g.logger.Info().Msg("master password verification failed")
		return g.failLocked(ErrVerificationFailed)
	}

	now := g.clock.Now()
	session, err := newAuthSession(password, now)
	if err != nil {
		return g.failLocked(ErrVerificationFailed)
	}

	g.session = session
	g.epoch++
	g.transitionLocked(StateUnlocked{UnlockedAt: now})
	g.idle.Start()

	g.logger.Info().Dur("idle_timeout", g.idleTimeout).Msg("vault unlocked")
	return nil
}

func (g *authGate) Lock() {
	g.lock(LockReasonUser)
}

func (g *authGate) DisableTOTP(ctx context.Context, code string) error {
	generation, err := g.begin(func(state GateState, status models.TOTPStatus) error {
		if _, ok := state.(StateUnlocked); !ok {
			return ErrLocked
		}
		if !status.Enabled {
			return ErrTOTPNotEnabled
		}
		return nil
	})
	if err != nil {
		return err
	}

	result, disableErr := g.totpAdapter.Disable(ctx, code)
	outcome := totpOutcome(result, disableErr)

	g.mu.Lock()
	if err = g.finishLocked(generation); err != nil {
		// The backend has already turned TOTP off even if the gate locked
		// meanwhile.
		if outcome == nil {
			g.totp = models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}
			if _, unlocked := g.state.(StateUnlocked); !unlocked {
				g.transitionLocked(g.routeLocked())
			}
		}
		g.mu.Unlock()
		return err
	}
	if outcome != nil {
		defer g.mu.Unlock()
		return g.failLocked(outcome)
	}
	g.totp = models.TOTPStatus{Enabled: false, SetupRequired: true, Verified: false}
	g.mu.Unlock()

	g.lock(LockReasonTOTPDisabled)
	return nil
}

func (g *authGate) Touch(signal ActivitySignal) {
	if !signal.Qualifies() {
		return
	}

	g.mu.Lock()
	_, unlocked := g.state.(StateUnlocked)
	g.mu.Unlock()

	if unlocked {
		g.idle.Touch()
	}
}

func (g *authGate) Snapshot() GateSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return GateSnapshot{
		State:     g.state,
		TOTP:      g.totp,
		Busy:      g.busy,
		LastError: g.lastErr,
	}
}

// lock ends the session and routes to the matching locked state. It is a
// no-op when the gate is not unlocked.
func (g *authGate) lock(reason LockReason) {
	g.mu.Lock()
	if _, ok := g.state.(StateUnlocked); !ok {
		g.mu.Unlock()
		return
	}

	g.session = nil
	g.epoch++
	if reason == LockReasonTOTPExpired {
		g.totp.Verified = false
	}
	g.transitionLocked(g.routeLocked())
	listeners := slices.Clone(g.listeners)
	g.mu.Unlock()

	g.idle.Stop()
	for _, fn := range listeners {
		fn(reason)
	}

	g.logger.Info().Str("reason", reason.String()).Msg("vault locked")
	if reason == LockReasonIdle {
		g.notify(models.Notice{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("Vault locked after %s of inactivity.", g.idleTimeout),
		})
	}
}

// ── Session ──────────────────────────────────────────────────────────────────

func (g *authGate) Current() (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch, g.session != nil
}

func (g *authGate) Valid(epoch uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session != nil && g.epoch == epoch
}

func (g *authGate) WithKey(fn func(key []byte) error) (uint64, error) {
	g.mu.Lock()
	session, epoch := g.session, g.epoch
	g.mu.Unlock()

	if session == nil {
		return 0, ErrLocked
	}
	return epoch, session.withKey(fn)
}

func (g *authGate) OnLock(fn func(LockReason)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *authGate) RequireTOTP() {
	g.mu.Lock()
	g.totp.Enabled = true
	g.totp.SetupRequired = false
	g.totp.Verified = false

	switch g.state.(type) {
	case StateUnlocked:
		g.mu.Unlock()
		g.lock(LockReasonTOTPExpired)
		return
	case StateAwaitingMasterPassword:
		g.transitionLocked(StateAwaitingTOTP{})
	}
	g.mu.Unlock()
}

// totpOutcome folds a TOTP adapter result into a single error.
func totpOutcome(result models.TOTPResult, err error) error {
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrTOTPRejected) || errors.Is(mapped, ErrTOTPNotEnabled) {
			return mapped
		}
		return fmt.Errorf("totp service: %w", mapped)
	}
	if !result.OK {
		return ErrTOTPRejected
	}
	return nil
}
