package crypto

import "errors"

var (
	// ErrIntegrity means authentication of the ciphertext failed. For the
	// vault this almost always means the master password is wrong.
	ErrIntegrity = errors.New("integrity check failed")
	// ErrMalformedTriple means the triple could not be decoded at all.
	ErrMalformedTriple = errors.New("malformed ciphered triple")
)
