// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault API payloads before they reach storage.
//
// A Validator accepts a payload value (or a pointer to one) and an optional
// list of field names. Without field names each payload type is checked
// against its default field set; with them, only the named fields are
// checked, so an update can require an id that a create does not carry.
package validators

import "context"

// Validator validates a payload, optionally restricted to the named fields.
// Unknown payload types yield ErrUnsupportedType, unknown fields ErrUnknownField.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
