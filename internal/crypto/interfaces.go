package crypto

import "github.com/MKhiriev/go-vault-gate/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_primitive_mock.go -package=mock

// CipherPrimitive is the authenticated encryption used for every secret value.
//
// The key is derived from the master password on every call with a fresh
// random salt, so encrypting the same plaintext twice never yields the same
// triple. Decrypt fails with [ErrIntegrity] whenever the password, IV, salt
// or ciphertext do not belong together.
type CipherPrimitive interface {
	Encrypt(plaintext, password []byte) (models.CipheredTriple, error)
	Decrypt(triple models.CipheredTriple, password []byte) ([]byte, error)
}
