//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const reservedFileNameChars = string(os.PathSeparator) + string(os.PathListSeparator)

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(stream.Fd()))
}
