// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo holds the values injected with -ldflags at build time. They
// are reported by GET /api/version/info.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

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

// AppInfo is the public description of a running instance.
type AppInfo struct {
	Version           string `json:"version"`
	BuildDate         string `json:"buildDate,omitempty"`
	BuildCommit       string `json:"buildCommit,omitempty"`
	ComplianceVersion string `json:"complianceVersion"`
}
