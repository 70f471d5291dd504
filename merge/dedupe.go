package merge

import (
	"themec/common"
	"themec/presets"
	"themec/tree"
)

// dedupe removes default presets shadowed by theme or custom presets with
// the same slug, unless the category flag opts out at that node.
func dedupe(doc tree.Value) tree.Value {
	settings, ok := doc.Get("settings")
	if !ok || !settings.IsMap() {
		return doc
	}
	root := settings
	settings = dedupeNode(settings, root)
	if blocks, ok := settings.Get("blocks"); ok && blocks.IsMap() {
		for name, block := range blocks.Map().All() {
			if block.IsMap() {
				settings = settings.With([]string{"blocks", name}, dedupeNode(block, root))
			}
		}
	}
	return doc.With([]string{"settings"}, settings)
}

func dedupeNode(node, root tree.Value) tree.Value {
	for _, cat := range presets.Categories {
		collection, ok := node.Lookup(cat.Path...)
		if !ok || !collection.IsMap() {
			continue
		}
		defaults, ok := collection.Get(common.OriginDefault.String())
		if !ok || defaults.Len() == 0 {
			continue
		}
		if keepDefaults(cat, node, root) {
			continue
		}

		taken := make(map[string]bool)
		for _, o := range []common.Origin{common.OriginTheme, common.OriginCustom} {
			for _, entry := range presets.Collection(node, cat, o) {
				if slug := presets.EntrySlug(entry); slug != "" {
					taken[slug] = true
				}
			}
		}
		if len(taken) == 0 {
			continue
		}

		kept := make([]tree.Value, 0, defaults.Len())
		for _, entry := range defaults.Items() {
			if !taken[presets.EntrySlug(entry)] {
				kept = append(kept, entry)
			}
		}
		if len(kept) != defaults.Len() {
			node = node.With(append(cat.Path[:len(cat.Path):len(cat.Path)], common.OriginDefault.String()), tree.List(kept...))
		}
	}
	return node
}

// keepDefaults reports whether category flag is explicitly falsy. Blocks
// without their own flag follow the root one.
func keepDefaults(cat *presets.Category, node, root tree.Value) bool {
	if cat.Flag == nil {
		return false
	}
	flag, ok := node.Lookup(cat.Flag...)
	if !ok {
		flag, ok = root.Lookup(cat.Flag...)
	}
	return ok && !flag.Truthy()
}
