package sanitize

import (
	"regexp"
	"strings"

	"themec/common"
	"themec/presets"
	"themec/tree"
)

// Options of a single sanitizer run.
type Options struct {
	// AllowRawCSS is the capability of the document author to supply
	// verbatim custom CSS.
	AllowRawCSS bool
}

var markupRe = regexp.MustCompile(`</?\w+`)

// Sanitize returns copy of t containing only paths declared in allow with
// values passing their validators. It never fails: offending fragments are
// dropped, maps left empty after filtering are dropped as well.
func Sanitize(t tree.Value, allow *AllowList, opts Options) tree.Value {
	out, _ := Report(t, allow, opts)
	return out
}

// Report is Sanitize which also returns dotted paths of dropped fragments.
func Report(t tree.Value, allow *AllowList, opts Options) (tree.Value, []string) {
	s := &sanitizer{opts: opts}
	if !t.IsMap() {
		return tree.Object(nil), nil
	}
	out, ok := s.branch(t, allow.root, nil)
	if !ok {
		return tree.Object(nil), s.dropped
	}
	return out, s.dropped
}

type sanitizer struct {
	opts    Options
	dropped []string
}

func (s *sanitizer) drop(path []string) {
	s.dropped = append(s.dropped, strings.Join(path, "."))
}

// branch filters map v against node n, returns false when nothing is left.
func (s *sanitizer) branch(v tree.Value, n *node, path []string) (tree.Value, bool) {
	out := tree.NewMap()
	for key, item := range v.Map().All() {
		p := append(path[:len(path):len(path)], key)
		c := n.child(key)
		if c == nil {
			s.drop(p)
			continue
		}
		if res, ok := s.value(item, c, p); ok {
			out.Set(key, res)
		} else {
			s.drop(p)
		}
	}
	if out.Len() == 0 {
		return tree.Value{}, false
	}
	return tree.Object(out), true
}

func (s *sanitizer) value(v tree.Value, n *node, path []string) (tree.Value, bool) {
	switch n.kind {
	case kindRawCSS:
		str, ok := v.Str()
		if !ok || !s.opts.AllowRawCSS || markupRe.MatchString(str) {
			return tree.Value{}, false
		}
		return v, true
	case kindPresets:
		return s.presets(v, n.category, path)
	case kindOpen:
		return s.open(v, n.validate)
	}

	if v.IsMap() && len(n.children) > 0 {
		return s.branch(v, n, path)
	}
	if v.IsMap() && n.leaf && indirect(path) {
		return s.sides(v, n.validate, path)
	}
	if n.leaf && n.validate != nil && n.validate(v) {
		return v, true
	}
	return tree.Value{}, false
}

var boxSides = map[string]bool{"top": true, "right": true, "bottom": true, "left": true}

// indirect reports spacing properties which also come as per-side objects.
func indirect(path []string) bool {
	l := len(path)
	return l >= 2 && path[l-2] == "spacing" && (path[l-1] == "padding" || path[l-1] == "margin")
}

// sides filters per-side object of a property declared only in shorthand
// form, every side is checked with the shorthand validator.
func (s *sanitizer) sides(v tree.Value, validate Validator, path []string) (tree.Value, bool) {
	out := tree.NewMap()
	for side, item := range v.Map().All() {
		if boxSides[side] && validate != nil && validate(item) {
			out.Set(side, item)
			continue
		}
		s.drop(append(path[:len(path):len(path)], side))
	}
	if out.Len() == 0 {
		return tree.Value{}, false
	}
	return tree.Object(out), true
}

// open keeps any structure, scalars are checked with validator.
func (s *sanitizer) open(v tree.Value, validate Validator) (tree.Value, bool) {
	switch v.Kind() {
	case tree.KindMap:
		out := tree.NewMap()
		for k, item := range v.Map().All() {
			if strings.ContainsAny(k, `<>"'`) {
				continue
			}
			if res, ok := s.open(item, validate); ok {
				out.Set(k, res)
			}
		}
		if out.Len() == 0 {
			return tree.Value{}, false
		}
		return tree.Object(out), true
	case tree.KindList:
		items := make([]tree.Value, 0, v.Len())
		for _, item := range v.Items() {
			if res, ok := s.open(item, validate); ok {
				items = append(items, res)
			}
		}
		return tree.List(items...), true
	}
	if validate != nil && validate(v) {
		return v, true
	}
	return tree.Value{}, false
}

// presets filters collection which may be either raw list or keyed by
// origin.
func (s *sanitizer) presets(v tree.Value, c *presets.Category, path []string) (tree.Value, bool) {
	if v.IsList() {
		return s.entries(v, c, path), true
	}
	if !v.IsMap() {
		return tree.Value{}, false
	}
	out := tree.NewMap()
	for key, list := range v.Map().All() {
		p := append(path[:len(path):len(path)], key)
		if _, err := common.ParseOrigin(key); err != nil || !list.IsList() {
			s.drop(p)
			continue
		}
		out.Set(key, s.entries(list, c, p))
	}
	if out.Len() == 0 {
		return tree.Value{}, false
	}
	return tree.Object(out), true
}

func (s *sanitizer) entries(list tree.Value, c *presets.Category, path []string) tree.Value {
	items := make([]tree.Value, 0, list.Len())
	for i, entry := range list.Items() {
		if res, ok := s.entry(entry, c); ok {
			items = append(items, res)
		} else {
			s.drop(append(path[:len(path):len(path)], "["+tree.FormatNumber(float64(i))+"]"))
		}
	}
	return tree.List(items...)
}

func identityOK(v tree.Value) bool {
	str, ok := v.Scalar()
	return ok && !strings.ContainsAny(str, `<>"`)
}

// entry rejects the whole preset entry when its identity or value is unsafe.
func (s *sanitizer) entry(e tree.Value, c *presets.Category) (tree.Value, bool) {
	if !e.IsMap() {
		return tree.Value{}, false
	}
	slug, ok := e.Get("slug")
	if !ok || !identityOK(slug) || presets.EntrySlug(e) == "" {
		return tree.Value{}, false
	}
	if name, ok := e.Get("name"); ok && !identityOK(name) {
		return tree.Value{}, false
	}
	val, ok := e.Get(c.ValueKey)
	if !ok || !presetValue(val) {
		return tree.Value{}, false
	}

	out := tree.NewMap()
	for k, item := range e.Map().All() {
		switch k {
		case "slug", "name", c.ValueKey:
			out.Set(k, item)
		default:
			if res, ok := s.open(item, Setting); ok {
				out.Set(k, res)
			}
		}
	}
	return tree.Object(out), true
}

func presetValue(v tree.Value) bool {
	if v.IsList() {
		if v.Len() == 0 {
			return false
		}
		for _, item := range v.Items() {
			if !item.IsString() || !CSSValue(item) {
				return false
			}
		}
		return true
	}
	return !v.IsRef() && CSSValue(v)
}
