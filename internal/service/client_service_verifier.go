package service

import (
	"crypto/subtle"

	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/awnumar/memguard"
)

// verifierProbe is encrypted and decrypted again to prove a password works
// with the cipher. It is not secret.
const verifierProbe = "go-vault-gate:master-key-probe"

type masterKeyVerifier struct {
	cipher crypto.CipherPrimitive
}

// NewMasterKeyVerifier returns a verifier that round-trips a constant through
// cipher.
//
// Passing says nothing about whether the password matches the stored
// secrets. A mismatch shows up at the first decrypt as ErrWrongMasterPassword.
func NewMasterKeyVerifier(cipher crypto.CipherPrimitive) MasterKeyVerifier {
	return &masterKeyVerifier{cipher: cipher}
}

func (v *masterKeyVerifier) Verify(password []byte) error {
	if len(password) == 0 {
		return ErrVerificationFailed
	}

	probe := []byte(verifierProbe)
	triple, err := v.cipher.Encrypt(probe, password)
	if err != nil {
		return ErrVerificationFailed
	}

	plain, err := v.cipher.Decrypt(triple, password)
	if err != nil {
		return ErrVerificationFailed
	}
	defer memguard.WipeBytes(plain)

	if subtle.ConstantTimeCompare(plain, probe) != 1 {
		return ErrVerificationFailed
	}
	return nil
}
