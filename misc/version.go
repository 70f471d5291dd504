// Package misc keeps program identity, set at link time.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	appName = "themec"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name, falling back to the executable name when
// it was not set by the linker.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
