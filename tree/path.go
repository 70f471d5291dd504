package tree

import "strings"

// SplitPath splits dotted path into segments, empty segments are dropped.
func SplitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath is the reverse of SplitPath.
func JoinPath(path ...string) string {
	return strings.Join(path, ".")
}

// LookupPath is Lookup with dotted path.
func (v Value) LookupPath(path string) (Value, bool) {
	return v.Lookup(SplitPath(path)...)
}

// Strings returns string items of a list skipping everything else.
func (v Value) Strings() []string {
	var out []string
	for _, item := range v.Items() {
		if s, ok := item.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}
