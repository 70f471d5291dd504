// Package merge folds configuration layers into single document.
package merge

import (
	"slices"

	"themec/common"
	"themec/presets"
	"themec/schema"
	"themec/tree"
)

// keys whose object values are replaced as a whole
var opaqueKeys = map[string]bool{
	"backgroundImage": true,
}

// Merge folds normalized layers given in ascending precedence. Key presence
// decides: a null or false at higher layer overrides lower value. Result has
// the latest schema version and origin of the highest layer.
func Merge(layers []*schema.Document) *schema.Document {
	acc := tree.Object(nil)
	origin := common.OriginDefault
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		m := &merger{origin: layer.Origin}
		acc = m.merge(acc, layer.Data, nil)
		origin = layer.Origin
	}
	acc = dedupe(acc)
	acc = acc.With([]string{"version"}, tree.Number(schema.LatestVersion))
	return &schema.Document{Origin: origin, Version: schema.LatestVersion, Data: acc}
}

type merger struct {
	origin common.Origin
}

func (m *merger) merge(dst, src tree.Value, path []string) tree.Value {
	if cat, ok := presetAt(path); ok && (src.IsList() || src.IsMap()) {
		return m.mergeCollection(dst, src, cat)
	}
	if !dst.IsMap() || !src.IsMap() {
		return src
	}
	if len(path) > 0 && opaqueKeys[path[len(path)-1]] {
		return src
	}

	out := tree.NewMap()
	for k, v := range dst.Map().All() {
		out.Set(k, v)
	}
	for k, v := range src.Map().All() {
		if prev, ok := out.Get(k); ok {
			v = m.merge(prev, v, append(slices.Clip(path), k))
		}
		out.Set(k, v)
	}
	return tree.Object(out)
}

// presetAt reports whether path points to preset collection in settings root
// or settings of a block.
func presetAt(path []string) (*presets.Category, bool) {
	switch {
	case len(path) == 3 && path[0] == "settings":
		return presets.ByPath(path[1:])
	case len(path) == 5 && path[0] == "settings" && path[1] == "blocks":
		return presets.ByPath(path[3:])
	}
	return nil, false
}

// keyed makes sure collection is keyed by origin, raw lists belong to the
// layer being merged.
func (m *merger) keyed(v tree.Value) *tree.Map {
	if v.IsList() {
		return tree.MapOf(m.origin.String(), v)
	}
	return v.Map()
}

// mergeCollection replaces lists per origin. For categories with required
// fields, incomplete entries inherit missing fields from the entry with the
// same slug they override.
func (m *merger) mergeCollection(dst, src tree.Value, cat *presets.Category) tree.Value {
	prev := m.keyed(dst)
	out := tree.NewMap()
	for k, v := range prev.All() {
		out.Set(k, v)
	}
	for key, list := range m.keyed(src).All() {
		if len(cat.Required) > 0 && list.IsList() {
			list = inherit(prev, key, list, cat)
		}
		out.Set(key, list)
	}
	return tree.Object(out)
}

func inherit(prev *tree.Map, key string, list tree.Value, cat *presets.Category) tree.Value {
	origin, err := common.ParseOrigin(key)
	if err != nil {
		return list
	}
	items := make([]tree.Value, 0, list.Len())
	for _, entry := range list.Items() {
		if !entry.IsMap() || complete(entry, cat) {
			items = append(items, entry)
			continue
		}
		base, ok := findPrior(prev, origin, presets.EntrySlug(entry))
		if !ok {
			items = append(items, entry)
			continue
		}
		merged := base.Map().Clone()
		for k, v := range entry.Map().All() {
			merged.Set(k, v)
		}
		items = append(items, tree.Object(merged))
	}
	return tree.List(items...)
}

func complete(entry tree.Value, cat *presets.Category) bool {
	for _, f := range cat.Required {
		if v, ok := entry.Get(f); !ok || v.IsNull() {
			return false
		}
	}
	return true
}

// findPrior looks for entry with slug, same origin first, then lower origins
// from the closest one.
func findPrior(prev *tree.Map, origin common.Origin, slug string) (tree.Value, bool) {
	if slug == "" {
		return tree.Value{}, false
	}
	for o := origin; o >= common.OriginDefault; o-- {
		list, _ := prev.Get(o.String())
		for _, entry := range list.Items() {
			if entry.IsMap() && presets.EntrySlug(entry) == slug {
				return entry, true
			}
		}
	}
	return tree.Value{}, false
}
