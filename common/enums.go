// Package common holds enums shared by the compiler stages, configuration
// and command line handling.
package common

//go:generate go tool go-enum --names --marshal

// Provenance tier of a configuration layer, higher value wins on merge.
// ENUM(default, theme, custom)
type Origin int

// Origins returns all origins in ascending precedence.
func Origins() []Origin {
	return []Origin{OriginDefault, OriginTheme, OriginCustom}
}

// Independently retrievable part of generated stylesheet.
// ENUM(variables, base-layout-styles, styles, presets, custom-css)
type Section int

// Sections returns all sections in output order.
func Sections() []Section {
	return []Section{SectionVariables, SectionBaseLayoutStyles, SectionStyles, SectionPresets, SectionCustomCss}
}

// Supported configuration document formats.
// ENUM(json, yaml)
type Format int

// FormatFromExt guesses document format by file extension, json is the default.
func FormatFromExt(ext string) Format {
	switch ext {
	case ".yaml", ".yml", ".YAML", ".YML":
		return FormatYaml
	default:
		return FormatJson
	}
}
