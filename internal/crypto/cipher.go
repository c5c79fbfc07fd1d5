// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
)

// Argon2Params tunes the key derivation.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params returns the OWASP (2024) recommendation:
// one pass over 64 MiB with four lanes, producing a 256-bit AES key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
	}
}

// aesGCMCipher implements [CipherPrimitive] with Argon2id and AES-256-GCM.
type aesGCMCipher struct {
	params Argon2Params
	random io.Reader
}

// NewCipherPrimitive returns a [CipherPrimitive] with [DefaultArgon2Params].
func NewCipherPrimitive() CipherPrimitive {
	return NewCipherPrimitiveWithParams(DefaultArgon2Params())
}

// NewCipherPrimitiveWithParams returns a [CipherPrimitive] with custom Argon2id
// parameters. Lower the memory cost only in tests.
func NewCipherPrimitiveWithParams(params Argon2Params) CipherPrimitive {
	return &aesGCMCipher{params: params, random: rand.Reader}
}

// Encrypt derives a key from password and a fresh salt, then seals plaintext
// under a fresh nonce.
func (c *aesGCMCipher) Encrypt(plaintext, password []byte) (models.CipheredTriple, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return models.CipheredTriple{}, fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return models.CipheredTriple{}, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, wipe, err := c.newGCM(password, salt)
	if err != nil {
		return models.CipheredTriple{}, err
	}
	defer wipe()

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	return models.CipheredTriple{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Salt:       base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Decrypt reverses Encrypt. Any authentication failure is reported as
// [ErrIntegrity] and nothing about the cause is disclosed.
func (c *aesGCMCipher) Decrypt(triple models.CipheredTriple, password []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(triple.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrMalformedTriple, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(triple.IV)
	if err != nil || len(nonce) != nonceSize {
		return nil, fmt.Errorf("%w: iv", ErrMalformedTriple)
	}
	salt, err := base64.StdEncoding.DecodeString(triple.Salt)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrMalformedTriple)
	}

	gcm, wipe, err := c.newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	defer wipe()

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrIntegrity
	}
	return plaintext, nil
}

// newGCM derives the key and builds the AEAD. The returned func wipes the
// derived key and must be called once the AEAD is no longer needed.
func (c *aesGCMCipher) newGCM(password, salt []byte) (cipher.AEAD, func(), error) {
	key := argon2.IDKey(password, salt, c.params.Time, c.params.Memory, c.params.Threads, c.params.KeyLen)
	wipe := func() { memguard.WipeBytes(key) }

	block, err := aes.NewCipher(key)
	if err != nil {
		wipe()
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		wipe()
		return nil, nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, wipe, nil
}
