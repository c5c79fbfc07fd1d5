// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/service"
)

// errorText turns an error into a message for the user. Errors that reveal
// nothing useful are reduced to a generic line.
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrVerificationFailed):
		return "The master password could not be verified."
	case errors.Is(err, service.ErrWrongMasterPassword):
		return "This secret cannot be decrypted with the current master password."
	case errors.Is(err, service.ErrTOTPRejected):
		return "Invalid code. Wait for the next one and try again."
	case errors.Is(err, service.ErrTOTPRequired):
		return "Two-factor verification expired. Enter a new code."
	case errors.Is(err, service.ErrTOTPNotEnabled):
		return "Two-factor authentication is not enabled."
	case errors.Is(err, service.ErrRequestInFlight):
		return "Still waiting for the previous request."
	case errors.Is(err, service.ErrLocked):
		return "The vault is locked."
	case errors.Is(err, service.ErrNameRequired):
		return "Name is required."
	case errors.Is(err, service.ErrEmptyValue):
		return "Secret value is required."
	case errors.Is(err, service.ErrProjectNotFound):
		return "Project not found."
	case errors.Is(err, service.ErrSecretNotFound):
		return "Secret not found."
	}
	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, adapter.ErrUnavailable) {
		return "The vault backend is unreachable."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "The vault backend is unreachable."
	}

	return err.Error()
}
