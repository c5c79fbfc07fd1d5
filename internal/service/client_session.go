package service

import (
	"fmt"
	"time"

	"github.com/awnumar/memguard"
)

// authSession is the in-memory session of an unlocked gate. The master
// password is sealed in an enclave and only decrypted for the duration of a
// WithKey call. It is never serialized.
type authSession struct {
	key        *memguard.Enclave
	unlockedAt time.Time
}

// newAuthSession seals password into a new session. password is wiped.
func newAuthSession(password []byte, now time.Time) (*authSession, error) {
	if len(password) == 0 {
		return nil, ErrVerificationFailed
	}

	enclave := memguard.NewEnclave(password)
	if enclave == nil {
		return nil, ErrVerificationFailed
	}

	return &authSession{key: enclave, unlockedAt: now}, nil
}

// withKey opens the enclave, calls fn and destroys the plaintext copy.
func (s *authSession) withKey(fn func(key []byte) error) error {
	buf, err := s.key.Open()
	if err != nil {
		return fmt.Errorf("open session key: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}
