// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo holds the linker-injected build metadata of a vault binary.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNA(version),
		date:    orNA(date),
		commit:  orNA(commit),
	}
}

func (a AppBuildInfo) Version() string { return a.version }
func (a AppBuildInfo) Date() string    { return a.date }
func (a AppBuildInfo) Commit() string  { return a.commit }

// Response converts the build info to the body of GET /api/version.
func (a AppBuildInfo) Response() VersionResponse {
	return VersionResponse{Version: a.version, Date: a.date, Commit: a.commit}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
