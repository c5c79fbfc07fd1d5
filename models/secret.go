// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Category classifies a [Secret]. Only the values declared below are accepted
// by the vault.
type Category string

const (
	CategoryAPIKey      Category = "api_key"
	CategoryToken       Category = "token"
	CategoryPassword    Category = "password"
	CategorySSHKey      Category = "ssh_key"
	CategoryCertificate Category = "certificate"
	CategorySecret      Category = "secret"
	CategoryAddress     Category = "address"
	CategoryID          Category = "id"
	CategoryOther       Category = "other"
)

// Categories lists every valid [Category] in display order.
var Categories = []Category{
	CategoryAPIKey,
	CategoryToken,
	CategoryPassword,
	CategorySSHKey,
	CategoryCertificate,
	CategorySecret,
	CategoryAddress,
	CategoryID,
	CategoryOther,
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CipheredTriple is the output of one encryption: ciphertext plus the IV and
// KDF salt needed to reverse it. All three fields are base64 strings and are
// always written or cleared together.
type CipheredTriple struct {
	Ciphertext string `json:"encrypted_value"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// Complete reports whether every part of the triple is present.
func (t CipheredTriple) Complete() bool {
	return t.Ciphertext != "" && t.IV != "" && t.Salt != ""
}

// Empty reports whether no part of the triple is present.
func (t CipheredTriple) Empty() bool {
	return t.Ciphertext == "" && t.IV == "" && t.Salt == ""
}

// Secret is a stored credential. The value itself only ever exists here in
// encrypted form.
type Secret struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`

	CipheredTriple

	Notes     string    `json:"notes,omitempty"`
	ProjectID *string   `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InProject reports whether the secret is assigned to the project with the given id.
func (s Secret) InProject(projectID string) bool {
	return s.ProjectID != nil && *s.ProjectID == projectID
}

// SecretInput is what the user edits on the client. Value is plaintext and
// never leaves the process unencrypted.
type SecretInput struct {
	Name      string
	Category  Category
	Value     []byte
	Notes     string
	ProjectID *string
}

// SecretPayload is the request body of POST and PUT /vault.
type SecretPayload struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Category Category `json:"category"`

	CipheredTriple

	Notes     string  `json:"notes"`
	ProjectID *string `json:"project_id"`
}
