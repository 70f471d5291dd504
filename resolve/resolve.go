// Package resolve replaces references and preset shorthand tokens of a style
// tree with their final values.
package resolve

import (
	"maps"
	"regexp"
	"strings"

	"themec/presets"
	"themec/tree"
)

// DefaultNamespace is the custom property namespace used when none is given.
const DefaultNamespace = "wp"

// var:preset|color|grey, var:custom|lineHeight|body
var tokenRe = regexp.MustCompile(`var:([a-z][a-z0-9-]*(?:\|[A-Za-z0-9_-]+)+)`)

// Resolver rewrites trees for a single custom property namespace. It has no
// state and may be shared.
type Resolver struct {
	namespace string
}

func New(namespace string) *Resolver {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Resolver{namespace: namespace}
}

// Resolve is New(DefaultNamespace).Resolve(t).
func Resolve(t tree.Value) tree.Value {
	return New(DefaultNamespace).Resolve(t)
}

// ResolveAgainst is New(DefaultNamespace).ResolveAgainst(t, source).
func ResolveAgainst(t, source tree.Value) tree.Value {
	return New(DefaultNamespace).ResolveAgainst(t, source)
}

// Resolve looks references up in t itself.
func (r *Resolver) Resolve(t tree.Value) tree.Value {
	return r.ResolveAgainst(t, t)
}

// ResolveAgainst returns copy of t where references are replaced by values
// found in source and shorthand tokens are turned into var() expressions.
// References which are part of a cycle, point to themselves or to nothing
// are left as they are.
func (r *Resolver) ResolveAgainst(t, source tree.Value) tree.Value {
	w := &walker{r: r, source: source}
	return w.walk(t, nil, nil)
}

// Tokens rewrites shorthand tokens of s.
func (r *Resolver) Tokens(s string) string {
	if !strings.Contains(s, "var:") {
		return s
	}
	return tokenRe.ReplaceAllStringFunc(s, func(tok string) string {
		parts := strings.Split(strings.TrimPrefix(tok, "var:"), "|")
		kind := parts[0]
		for i := 1; i < len(parts); i++ {
			if kind == "custom" {
				parts[i] = presets.KebabCase(parts[i])
			} else {
				parts[i] = presets.Slug(parts[i])
			}
			if parts[i] == "" {
				return tok
			}
		}
		return "var(--" + r.namespace + "--" + strings.Join(parts, "--") + ")"
	})
}

type walker struct {
	r      *Resolver
	source tree.Value
}

// walk rebuilds v. visiting holds paths already being expanded by the chain
// of references which led here.
func (w *walker) walk(v tree.Value, path []string, visiting map[string]bool) tree.Value {
	switch v.Kind() {
	case tree.KindRef:
		return w.ref(v, tree.JoinPath(path...), visiting)
	case tree.KindString:
		s, _ := v.Str()
		if res := w.r.Tokens(s); res != s {
			return tree.String(res)
		}
	case tree.KindList:
		items := make([]tree.Value, 0, v.Len())
		for i, item := range v.Items() {
			items = append(items, w.walk(item, append(path[:len(path):len(path)], "["+tree.FormatNumber(float64(i))+"]"), visiting))
		}
		return tree.List(items...)
	case tree.KindMap:
		m := tree.NewMap()
		for k, item := range v.Map().All() {
			m.Set(k, w.walk(item, append(path[:len(path):len(path)], k), visiting))
		}
		return tree.Object(m)
	}
	return v
}

// ref follows chain of references starting at path at.
func (w *walker) ref(v tree.Value, at string, visiting map[string]bool) tree.Value {
	chain := maps.Clone(visiting)
	if chain == nil {
		chain = make(map[string]bool)
	}
	chain[at] = true

	target, _ := v.RefPath()
	for {
		// a value may not contain the reference which pulled it in
		if chain[target] || within(at, target) {
			return v
		}
		next, ok := w.source.LookupPath(target)
		if !ok || next.IsNull() {
			return v
		}
		chain[target] = true
		p, isRef := next.RefPath()
		if !isRef {
			return w.walk(next, tree.SplitPath(target), chain)
		}
		target = p
	}
}

// within reports whether path p lies inside (or is) path ancestor.
func within(p, ancestor string) bool {
	return p == ancestor || strings.HasPrefix(p, ancestor+".")
}
