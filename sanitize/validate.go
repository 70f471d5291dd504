package sanitize

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/h2non/filetype"

	"themec/css"
	"themec/tree"
)

// Validator decides whether a leaf value is safe to keep.
type Validator func(tree.Value) bool

// CSSValue accepts numbers, references (checked again after resolution) and
// strings which are safe inside a declaration. url() payloads must be remote
// http(s) resources or embedded images.
func CSSValue(v tree.Value) bool {
	switch v.Kind() {
	case tree.KindNumber, tree.KindRef:
		return true
	case tree.KindString:
		s, _ := v.Str()
		return safeCSS(s)
	}
	return false
}

func safeCSS(s string) bool {
	urls, err := css.Scan(s)
	if err != nil {
		return false
	}
	for _, u := range urls {
		if !safeURL(u, false) {
			return false
		}
	}
	return true
}

// Bool accepts booleans.
func Bool(v tree.Value) bool {
	return v.Kind() == tree.KindBool
}

// Number accepts numbers.
func Number(v tree.Value) bool {
	return v.Kind() == tree.KindNumber
}

// Text accepts booleans, numbers and strings without markup.
func Text(v tree.Value) bool {
	switch v.Kind() {
	case tree.KindBool, tree.KindNumber:
		return true
	case tree.KindString:
		s, _ := v.Str()
		return !strings.ContainsAny(s, "<>")
	}
	return false
}

// Setting accepts booleans, numbers, safe CSS strings and lists of those.
func Setting(v tree.Value) bool {
	switch v.Kind() {
	case tree.KindBool, tree.KindNumber:
		return true
	case tree.KindString:
		s, _ := v.Str()
		return safeCSS(s)
	case tree.KindList:
		for _, item := range v.Items() {
			if item.IsList() || !Setting(item) {
				return false
			}
		}
		return true
	}
	return false
}

// BackgroundImage accepts references, CSS values and {url, id, source,
// title} objects. Object url may be relative.
func BackgroundImage(v tree.Value) bool {
	switch v.Kind() {
	case tree.KindRef, tree.KindString:
		return CSSValue(v)
	case tree.KindMap:
		u, ok := v.Get("url")
		if !ok {
			return false
		}
		s, ok := u.Str()
		if !ok || !safeURL(s, true) {
			return false
		}
		for k, item := range v.Map().All() {
			if k != "url" && !Text(item) {
				return false
			}
		}
		return true
	}
	return false
}

var relativeURLRe = regexp.MustCompile(`^[^\s'"()<>\\]+$`)

func safeURL(u string, allowRelative bool) bool {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "https:"), strings.HasPrefix(lower, "http:"):
		return !strings.ContainsAny(u, `'"()<>\`) && !strings.ContainsAny(u, " \t\n")
	case strings.HasPrefix(lower, "data:image/"):
		return safeImageData(u)
	case allowRelative:
		return !strings.Contains(lower, ":") && relativeURLRe.MatchString(u)
	}
	return false
}

var scriptMarkers = [][]byte{[]byte("<script"), []byte("javascript:"), []byte("onload="), []byte("onerror="), []byte("<foreignobject")}

// safeImageData checks embedded image payload: SVG must not carry scripts,
// everything else must really be an image.
func safeImageData(u string) bool {
	header, payload, ok := strings.Cut(u, ",")
	if !ok {
		return false
	}
	var data []byte
	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		var err error
		if data, err = base64.StdEncoding.DecodeString(payload); err != nil {
			return false
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return false
		}
		data = []byte(s)
	}

	if strings.HasPrefix(strings.ToLower(header), "data:image/svg+xml") {
		lower := bytes.ToLower(data)
		for _, m := range scriptMarkers {
			if bytes.Contains(lower, m) {
				return false
			}
		}
		return bytes.Contains(lower, []byte("<svg"))
	}
	return filetype.IsImage(data)
}
