package presets

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
)

// Slug normalizes identifier for use in class and custom property names:
// lower case, every run of other characters becomes single hyphen. Symbols
// are replaced before transliteration so slug library never spells them out
// ("&" is not "and").
func Slug(s string) string {
	return slug.Make(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, s))
}

// KebabCase converts custom property path segments: "lineHeight" becomes
// "line-height", "h1Size" becomes "h-1-size".
func KebabCase(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				b.WriteByte('-')
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				b.WriteByte('-')
			case unicode.IsDigit(r) && unicode.IsLetter(prev), unicode.IsLetter(r) && unicode.IsDigit(prev):
				b.WriteByte('-')
			}
		}
		b.WriteRune(r)
	}
	return Slug(b.String())
}
