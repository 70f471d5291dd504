package config

import (
	"strings"
	"unicode"
)

const badFileName = "_bad_file_name_"

// CleanFileName makes single path segment out of generated name: removes
// characters the platform does not allow in file names, control characters
// and leading dots (output never becomes hidden file or relative path).
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(reservedFileNameChars, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, ". "), " ")
	if len(out) == 0 {
		return badFileName
	}
	return out
}
