package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID          = errors.New("id is required")
	ErrEmptyName        = errors.New("name is required")
	ErrNameTooLong      = errors.New("name is too long")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrIncompleteTriple = errors.New("encrypted value, iv and salt are required together")
	ErrInvalidBase64    = errors.New("ciphered triple is not valid base64")
	ErrEmptyProjectID   = errors.New("project id must not be empty")
	ErrInvalidColor     = errors.New("color must be a #rrggbb hex value")
	ErrInvalidAction    = errors.New("invalid totp action")
	ErrInvalidTOTPToken = errors.New("totp token must be 6 digits")
)
