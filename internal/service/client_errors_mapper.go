// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, adapter.ErrTOTPRequired) {
		return ErrTOTPRequired
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided, app.MsgNoIDProvided, app.MsgIncompleteTriple:
			return fmt.Errorf("%w: %s", ErrInvalidDataProvided, msg)
		case app.MsgNameRequired:
			return ErrNameRequired
		case app.MsgInvalidCategory:
			return ErrInvalidCategory
		case app.MsgTOTPNotEnabled:
			return ErrTOTPNotEnabled
		case app.MsgNoPendingSetup:
			return ErrNoPendingSetup
		case app.MsgUnknownTOTPAction:
			return ErrUnknownTOTPAction
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidTOTPCode {
			return ErrTOTPRejected
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgSecretNotFound:
			return ErrSecretNotFound
		case app.MsgProjectNotFound:
			return ErrProjectNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgTOTPAlreadyEnabled {
			return ErrTOTPAlreadyEnabled
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
