// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the API token middleware.
var (
	// ErrEmptyAuthorizationHeader means the request carried no "Authorization"
	// header while an API token is configured.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAPIToken means the bearer token did not match.
	ErrInvalidAPIToken = errors.New("invalid api token")

	// ErrInvalidJSON is logged when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)
