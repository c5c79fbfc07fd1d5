package service

import (
	"time"

	"github.com/MKhiriev/go-vault-gate/models"
)

// GateState is one state of the authentication gate. The set of variants is
// closed: StateLoading, StateSetupRequired, StateAwaitingTOTP,
// StateAwaitingMasterPassword and StateUnlocked.
type GateState interface {
	gateState()
	String() string
}

// StateLoading is the initial state, before the TOTP status is known.
type StateLoading struct{}

// StateSetupRequired offers TOTP enrollment. Enrollment is set once setup
// material was issued.
type StateSetupRequired struct {
	Enrollment *models.TOTPSetup
}

// StateAwaitingTOTP waits for a code from the enrolled authenticator.
type StateAwaitingTOTP struct{}

// StateAwaitingMasterPassword waits for the master password.
type StateAwaitingMasterPassword struct{}

// StateUnlocked holds a live session.
type StateUnlocked struct {
	UnlockedAt time.Time
}

func (StateLoading) gateState()                {}
func (StateSetupRequired) gateState()          {}
func (StateAwaitingTOTP) gateState()           {}
func (StateAwaitingMasterPassword) gateState() {}
func (StateUnlocked) gateState()               {}

func (StateLoading) String() string                { return "loading" }
func (StateSetupRequired) String() string          { return "setup_required" }
func (StateAwaitingTOTP) String() string           { return "awaiting_totp" }
func (StateAwaitingMasterPassword) String() string { return "awaiting_master_password" }
func (StateUnlocked) String() string               { return "unlocked" }

// GateSnapshot is a read-only view of the gate for rendering.
type GateSnapshot struct {
	State     GateState
	TOTP      models.TOTPStatus
	Busy      bool
	LastError error
}

// Unlocked reports whether the snapshot was taken with a live session.
func (s GateSnapshot) Unlocked() bool {
	_, ok := s.State.(StateUnlocked)
	return ok
}

// LockReason tells lock listeners why the session ended.
type LockReason int

const (
	LockReasonUser LockReason = iota
	LockReasonIdle
	LockReasonTOTPDisabled
	LockReasonTOTPExpired
)

func (r LockReason) String() string {
	switch r {
	case LockReasonUser:
		return "user"
	case LockReasonIdle:
		return "idle"
	case LockReasonTOTPDisabled:
		return "totp_disabled"
	case LockReasonTOTPExpired:
		return "totp_expired"
	default:
		return "unknown"
	}
}

// ActivitySignal is a kind of user interaction reported to the gate.
type ActivitySignal int

const (
	SignalPointerMove ActivitySignal = iota
	SignalKeyPress
	SignalClick
	SignalScroll
	SignalTouch
	// SignalResize is reported by the terminal but is not user activity.
	SignalResize
)

// Qualifies reports whether the signal resets the idle timer.
func (s ActivitySignal) Qualifies() bool {
	switch s {
	case SignalPointerMove, SignalKeyPress, SignalClick, SignalScroll, SignalTouch:
		return true
	default:
		return false
	}
}
