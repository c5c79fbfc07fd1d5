// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the vault
// backend handlers and by the client when it interprets backend errors.
//
// All Msg* constants are human-readable strings written into the "error"
// field of JSON error responses. Keeping them in one place lets the client
// map a response back to a sentinel error without guessing.
package app

import "github.com/MKhiriev/go-vault-gate/models"

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned when the static API token is missing or
	// does not match.
	MsgUnauthorized = "unauthorized"

	// MsgTOTPRequired is returned on vault routes when TOTP is enabled and the
	// request carries no valid grant.
	MsgTOTPRequired = models.TOTPRequiredMessage

	// MsgInvalidTOTPCode is returned when a TOTP code is wrong, expired or
	// was already used.
	MsgInvalidTOTPCode = "invalid totp code"

	// MsgTOTPNotEnabled is returned by validate and disable when no secret is
	// enrolled.
	MsgTOTPNotEnabled = "totp is not enabled"

	// MsgTOTPAlreadyEnabled is returned by setup when enrollment already
	// happened.
	MsgTOTPAlreadyEnabled = "totp is already enabled"

	// MsgNoPendingSetup is returned by verify when setup was never called.
	MsgNoPendingSetup = "no pending totp setup"

	// MsgUnknownTOTPAction is returned for an action outside
	// setup, verify, validate and disable.
	MsgUnknownTOTPAction = "unknown totp action"

	// MsgNoIDProvided is returned by update and delete when the record id is
	// missing.
	MsgNoIDProvided = "no id provided"

	// MsgNameRequired is returned when a secret or project has a blank name.
	MsgNameRequired = "name is required"

	// MsgInvalidCategory is returned for a category outside the known set.
	MsgInvalidCategory = "invalid category"

	// MsgIncompleteTriple is returned when encrypted_value, iv and salt are
	// not all present and valid base64.
	MsgIncompleteTriple = "encrypted value, iv and salt are required"

	// MsgSecretNotFound is returned when an update or delete targets a secret
	// that does not exist.
	MsgSecretNotFound = "secret not found"

	// MsgProjectNotFound is returned when a project does not exist or a
	// secret references a missing project.
	MsgProjectNotFound = "project not found"
)
