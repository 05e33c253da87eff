// Package misc keeps program identification helpers.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"sync"
)

const appName = "fontcull"

// overridden by the release build with ldflags
var (
	version = "development"
	gitHash = "unknown"
)

var readBuildInfo = sync.OnceFunc(func() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "development" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			gitHash = s.Value[:12]
		}
	}
})

// GetAppName returns short program name used in logs and temporary file names.
func GetAppName() string {
	return filepath.Base(appName)
}

// GetVersion returns program version, either set at link time or taken from
// module build information.
func GetVersion() string {
	readBuildInfo()
	return version
}

// GetGitHash returns abbreviated VCS revision the binary was built from.
func GetGitHash() string {
	readBuildInfo()
	return gitHash
}
