package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrTOTPRequired is returned together with ErrUnauthorized when the
	// backend wants a fresh TOTP code before serving vault routes.
	ErrTOTPRequired = errors.New("totp verification required")
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("backend unavailable")
)
