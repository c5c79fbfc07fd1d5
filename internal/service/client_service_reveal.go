package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/awnumar/memguard"
)

// RevealInfo describes the live reveal ticket without its plaintext.
type RevealInfo struct {
	SecretID  string
	ExpiresAt time.Time
}

type revealTicket struct {
	secretID  string
	plaintext *memguard.LockedBuffer
	expiresAt time.Time
}

// revealManager implements RevealManager. The reveal ticket and the pending
// clipboard clear have separate timers and generations.
type revealManager struct {
	mu sync.Mutex

	ticket      *revealTicket
	revealTimer *clock.Timer
	revealGen   uint64

	clipTimer   *clock.Timer
	clipGen     uint64
	clipPending bool

	onChange func()

	session   Session
	cipher    crypto.CipherPrimitive
	clipboard Clipboard
	clock     clock.Clock
	window    time.Duration

	logger *logger.Logger
}

// NewRevealManager returns a RevealManager that keeps plaintext for window.
// Everything is cleared when session locks.
func NewRevealManager(
	session Session,
	cipher crypto.CipherPrimitive,
	clipboard Clipboard,
	clk clock.Clock,
	window time.Duration,
	log *logger.Logger,
) RevealManager {
	m := &revealManager{
		session:   session,
		cipher:    cipher,
		clipboard: clipboard,
		clock:     clk,
		window:    window,
		logger:    log,
	}
	session.OnLock(func(LockReason) { m.Clear() })
	return m
}

func (m *revealManager) Reveal(secret models.Secret) (RevealInfo, error) {
	var plaintext *memguard.LockedBuffer
	epoch, err := m.session.WithKey(func(key []byte) error {
		plain, err := m.cipher.Decrypt(secret.CipheredTriple, key)
		if err != nil {
			return err
		}
		plaintext = memguard.NewBufferFromBytes(plain)
		return nil
	})
	if err != nil {
		return RevealInfo{}, decryptError(err)
	}

	m.mu.Lock()
	if !m.session.Valid(epoch) {
		m.mu.Unlock()
		plaintext.Destroy()
		return RevealInfo{}, ErrLocked
	}

	m.dismissLocked()
	m.revealGen++
	generation := m.revealGen
	m.ticket = &revealTicket{
		secretID:  secret.ID,
		plaintext: plaintext,
		expiresAt: m.clock.Now().Add(m.window),
	}
	m.revealTimer = m.clock.AfterFunc(m.window, func() { m.expireReveal(generation) })
	info := RevealInfo{SecretID: secret.ID, ExpiresAt: m.ticket.expiresAt}
	onChange := m.onChange
	m.mu.Unlock()

	notifyChange(onChange)
	return info, nil
}

func (m *revealManager) Revealed(secretID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticket == nil || m.ticket.secretID != secretID {
		return "", false
	}
	// Copied out: the buffer is unmapped when the ticket ends.
	return string(m.ticket.plaintext.Bytes()), true
}

func (m *revealManager) ActiveTicket() (RevealInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ticket == nil {
		return RevealInfo{}, false
	}
	return RevealInfo{SecretID: m.ticket.secretID, ExpiresAt: m.ticket.expiresAt}, true
}

func (m *revealManager) Dismiss() {
	m.mu.Lock()
	had := m.dismissLocked()
	onChange := m.onChange
	m.mu.Unlock()

	if had {
		notifyChange(onChange)
	}
}

// Copy decrypts secret onto the clipboard and schedules a best-effort clear
// after the reveal window. Copying again restarts the window.
func (m *revealManager) Copy(secret models.Secret) error {
	var text string
	epoch, err := m.session.WithKey(func(key []byte) error {
		plain, err := m.cipher.Decrypt(secret.CipheredTriple, key)
		if err != nil {
			return err
		}
		text = string(plain)
		memguard.WipeBytes(plain)
		return nil
	})
	if err != nil {
		return decryptError(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.session.Valid(epoch) {
		return ErrLocked
	}

	if m.clipTimer != nil {
		m.clipTimer.Stop()
		m.clipTimer = nil
	}
	m.clipGen++
	generation := m.clipGen

	if err = m.clipboard.WriteAll(text); err != nil {
		m.clipPending = false
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	m.clipPending = true
	m.clipTimer = m.clock.AfterFunc(m.window, func() { m.expireClipboard(generation) })
	m.logger.Debug().Str("secret_id", secret.ID).Dur("window", m.window).Msg("secret copied to clipboard")
	return nil
}

// Clear dismisses the ticket and clears the clipboard right away if a clear
// is pending.
func (m *revealManager) Clear() {
	m.mu.Lock()
	had := m.dismissLocked()

	if m.clipTimer != nil {
		m.clipTimer.Stop()
		m.clipTimer = nil
	}
	m.clipGen++
	if m.clipPending {
		m.clipPending = false
		m.clearClipboardLocked()
	}
	onChange := m.onChange
	m.mu.Unlock()

	if had {
		notifyChange(onChange)
	}
}

func (m *revealManager) SetOnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *revealManager) expireReveal(generation uint64) {
	m.mu.Lock()
	if generation != m.revealGen {
		m.mu.Unlock()
		return
	}
	had := m.dismissLocked()
	onChange := m.onChange
	m.mu.Unlock()

	if had {
		notifyChange(onChange)
	}
}

func (m *revealManager) expireClipboard(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.clipGen || !m.clipPending {
		return
	}
	m.clipPending = false
	m.clipTimer = nil
	m.clearClipboardLocked()
}

func (m *revealManager) clearClipboardLocked() {
	if err := m.clipboard.WriteAll(""); err != nil {
		m.logger.Debug().Err(err).Msg("clipboard clear failed")
	}
}

// dismissLocked destroys the live ticket, if any, and reports whether there
// was one.
func (m *revealManager) dismissLocked() bool {
	if m.revealTimer != nil {
		m.revealTimer.Stop()
		m.revealTimer = nil
	}
	m.revealGen++

	if m.ticket == nil {
		return false
	}
	m.ticket.plaintext.Destroy()
	m.ticket = nil
	return true
}

func notifyChange(fn func()) {
	if fn != nil {
		fn()
	}
}
