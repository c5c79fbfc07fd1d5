// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TOTPStatus describes the second-factor state as seen by the gate.
//
// Verified belongs to the running client process only. It is never persisted
// and starts out false whenever Enabled is true.
type TOTPStatus struct {
	Enabled       bool `json:"enabled"`
	SetupRequired bool `json:"setupRequired"`
	Verified      bool `json:"verified"`
}

// DegradedTOTPStatus is assumed when the TOTP service cannot be reached.
// It lets the user continue to the password step and nothing further.
func DegradedTOTPStatus() TOTPStatus {
	return TOTPStatus{Enabled: false, SetupRequired: false, Verified: true}
}

// TOTPAction names an operation of POST /vault/totp.
type TOTPAction string

const (
	TOTPActionSetup    TOTPAction = "setup"
	TOTPActionVerify   TOTPAction = "verify"
	TOTPActionValidate TOTPAction = "validate"
	TOTPActionDisable  TOTPAction = "disable"
)

// TOTPRequest is the request body of POST /vault/totp.
type TOTPRequest struct {
	Action TOTPAction `json:"action"`
	Token  string     `json:"token,omitempty"`
}

// TOTPSetup is the enrollment material returned by the setup action.
// URI is an otpauth:// URI suitable for a QR code.
type TOTPSetup struct {
	URI    string `json:"uri"`
	Secret string `json:"secret"`
}

// TOTPResult is returned by verify, validate and disable. Grant is a short
// lived token the client presents on vault routes while TOTP is enabled.
type TOTPResult struct {
	OK       bool   `json:"ok"`
	Enabled  bool   `json:"enabled"`
	Verified bool   `json:"verified"`
	Disabled bool   `json:"disabled,omitempty"`
	Grant    string `json:"grant,omitempty"`
}

const (
	// TOTPGrantHeader carries the grant token on /vault routes.
	TOTPGrantHeader = "X-Vault-TOTP-Grant"
	// TOTPRequiredMessage is the 401 error message sent when the grant is
	// missing or expired.
	TOTPRequiredMessage = "totp verification required"
)

// TOTPSettings is the persisted enrollment of the backend. A row with
// Enabled false is a pending setup that was not yet confirmed.
type TOTPSettings struct {
	ID        int64
	Secret    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
