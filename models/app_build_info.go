// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const notAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags, printed at server startup and
// returned by the /healthz endpoint.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// WithVersion returns a copy whose version is replaced by version unless it
// is empty.
func (a AppBuildInfo) WithVersion(version string) AppBuildInfo {
	if version != "" {
		a.buildVersion = version
	}
	return a
}

// WithDefaults returns a copy where every empty value is replaced by "N/A".
func (a AppBuildInfo) WithDefaults() AppBuildInfo {
	if a.buildVersion == "" {
		a.buildVersion = notAvailable
	}
	if a.buildDate == "" {
		a.buildDate = notAvailable
	}
	if a.buildCommit == "" {
		a.buildCommit = notAvailable
	}
	return a
}

// Health is the body of the liveness endpoint.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Date     string `json:"build_date"`
	Commit   string `json:"build_commit"`
}

const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
)
