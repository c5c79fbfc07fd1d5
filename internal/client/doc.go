// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive vault client runtime.
//
// It wires the backend adapter, the authentication gate and the terminal UI
// into a single process lifecycle. The vault starts locked on every launch
// and is locked again on exit.
package client
