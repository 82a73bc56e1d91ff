// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime/debug"

	"github.com/aumiao/aumiao/buildvars"
)

const modulePath = "github.com/aumiao/aumiao"

var gitCommit = "" // set at build time with the short commit SHA
var buildDate = "" // set at build time (RFC3339)

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Installed as a dependency the main module is the wrapper, so look
		// for ours among the deps.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if resolvedCommit == "" && s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if resolvedDate == "" && s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
