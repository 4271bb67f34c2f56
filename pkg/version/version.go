// Package version reports build information, set with -ldflags or read
// from the module build info.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	// Name is reported to clients during the MCP handshake
	Name = "go-toolserver"

	// Version reported when there is no tag, branch or revision
	defaultVersion = "dev"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short revision, in that order
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return s.Value[:12]
			}
		}
	}
	return defaultVersion
}

// Metadata returns the build information for an executable, including
// the services it was built with
func Metadata(execName string, services ...string) map[string]any {
	metadata := map[string]any{
		"name":     execName,
		"version":  Version(),
		"compiler": runtime.Version(),
		"platform": runtime.GOOS + "/" + runtime.GOARCH,
	}
	if len(services) > 0 {
		metadata["services"] = services
	}
	if GitTag != "" {
		metadata["tag"] = GitTag
	}
	if GitBranch != "" {
		metadata["branch"] = GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path != "" {
			metadata["source"] = info.Main.Path
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					metadata["hash"] = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					metadata["build_time"] = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					metadata["modified"] = true
				}
			}
		}
	}
	return metadata
}

// JSON returns the metadata as indented JSON
func JSON(execName string, services ...string) ([]byte, error) {
	return json.MarshalIndent(Metadata(execName, services...), "", "  ")
}
