package service

import "errors"

// Gate and client-side errors.
var (
	ErrLocked          = errors.New("vault is locked")
	ErrInvalidState    = errors.New("operation not allowed in the current gate state")
	ErrRequestInFlight = errors.New("another request is still in flight")
	ErrStaleResponse   = errors.New("response arrived after the gate state changed")

	// ErrVerificationFailed is the only error Unlock reports for a bad
	// password, whatever the underlying cause.
	ErrVerificationFailed = errors.New("master password verification failed")
	// ErrWrongMasterPassword means a stored secret failed authentication
	// under the session key.
	ErrWrongMasterPassword = errors.New("secret cannot be decrypted with this master password")

	ErrTOTPRejected = errors.New("totp code rejected")
	ErrTOTPRequired = errors.New("totp verification required")
	ErrNoEnrollment = errors.New("totp enrollment has not been started")

	ErrSaveFailed          = errors.New("backend rejected the change")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrEmptyValue          = errors.New("secret value is required")
	ErrSecretNotFound      = errors.New("secret not found")
	ErrProjectNotFound     = errors.New("project not found")
)

// Backend service errors.
var (
	ErrTOTPNotEnabled     = errors.New("totp is not enabled")
	ErrTOTPAlreadyEnabled = errors.New("totp is already enabled")
	ErrNoPendingSetup     = errors.New("no pending totp setup")
	ErrInvalidTOTPCode    = errors.New("invalid totp code")
	ErrUnknownTOTPAction  = errors.New("unknown totp action")
	ErrInvalidGrant       = errors.New("totp grant is missing, expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
