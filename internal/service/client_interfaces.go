package service

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/models"
)

// Session gives collaborators scoped access to the session key of an
// unlocked gate.
//
// Every access is tagged with an epoch. A new epoch starts on each unlock and
// each lock, so a result computed under an old epoch must be discarded.
type Session interface {
	// Current returns the epoch of the live session. ok is false while locked.
	Current() (epoch uint64, ok bool)
	// Valid reports whether epoch still belongs to the live session.
	Valid(epoch uint64) bool
	// WithKey calls fn with the session key. The slice is wiped as soon as fn
	// returns and must not be retained. Returns ErrLocked while locked.
	WithKey(fn func(key []byte) error) (epoch uint64, err error)
	// OnLock registers fn to run after every lock transition.
	OnLock(fn func(reason LockReason))
	// RequireTOTP drops the TOTP verification of this process. An unlocked
	// gate is locked.
	RequireTOTP()
}

// AuthGate is the authentication state machine in front of the vault.
// Only its methods change the state; the UI reads it through Snapshot.
type AuthGate interface {
	Session

	Load(ctx context.Context) error
	StartEnrollment(ctx context.Context) error
	ConfirmEnrollment(ctx context.Context, code string) error
	SkipEnrollment() error
	SubmitTOTP(ctx context.Context, code string) error
	// Unlock verifies password and opens the session. The password slice is
	// wiped before Unlock returns.
	Unlock(password []byte) error
	Lock()
	DisableTOTP(ctx context.Context, code string) error
	Touch(signal ActivitySignal)
	Snapshot() GateSnapshot
}

// MasterKeyVerifier checks that a candidate master password drives the
// cipher end to end.
type MasterKeyVerifier interface {
	Verify(password []byte) error
}

// SecretStore is the encrypted record cache of an unlocked session. Local
// state changes only after the backend acknowledges.
type SecretStore interface {
	Refresh(ctx context.Context) error
	Secrets() []models.Secret
	Projects() []models.Project
	Filter(filter models.SecretFilter) []models.Secret

	Create(ctx context.Context, input models.SecretInput) (models.Secret, error)
	Update(ctx context.Context, id string, input models.SecretInput) (models.Secret, error)
	// DecryptForEdit returns the plaintext of secret. The caller owns the
	// slice and should wipe it when done.
	DecryptForEdit(secret models.Secret) ([]byte, error)
	Delete(ctx context.Context, id string) error

	CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	Clear()
}

// RevealManager bounds how long decrypted values stay on screen or on the
// clipboard.
type RevealManager interface {
	Reveal(secret models.Secret) (RevealInfo, error)
	// Revealed returns the plaintext of secretID while its ticket is live.
	Revealed(secretID string) (string, bool)
	ActiveTicket() (RevealInfo, bool)
	Dismiss()
	Copy(secret models.Secret) error
	Clear()
	// SetOnChange registers fn to run whenever a ticket appears or expires.
	SetOnChange(fn func())
}

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}
