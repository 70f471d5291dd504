package presets

import (
	"slices"

	"github.com/maruel/natural"

	"themec/common"
	"themec/schema"
	"themec/spacing"
	"themec/tree"
)

// Normalize keys every preset collection of the document by its origin and
// folds generated spacing scale into spacing sizes. Collections which are
// already keyed by origin are left alone.
func Normalize(doc *schema.Document) *schema.Document {
	settings := doc.Settings()
	if !settings.IsMap() {
		return doc
	}
	settings = normalizeNode(settings, doc.Origin)
	if blocks, ok := settings.Get("blocks"); ok && blocks.IsMap() {
		for name, block := range blocks.Map().All() {
			if block.IsMap() {
				settings = settings.With([]string{"blocks", name}, normalizeNode(block, doc.Origin))
			}
		}
	}
	return &schema.Document{
		Origin:  doc.Origin,
		Version: doc.Version,
		Data:    doc.Data.With([]string{"settings"}, settings),
	}
}

func normalizeNode(node tree.Value, origin common.Origin) tree.Value {
	for _, c := range Categories {
		v, ok := node.Lookup(c.Path...)
		if !ok || !v.IsList() {
			continue
		}
		node = node.With(c.Path, tree.Object(tree.MapOf(origin.String(), v)))
	}
	return foldScale(node, origin)
}

// foldScale replaces origin spacing sizes with sizes generated from the node
// spacing scale, explicit sizes win on equal slug.
func foldScale(node tree.Value, origin common.Origin) tree.Value {
	raw, ok := node.Lookup("spacing", "spacingScale")
	if !ok {
		return node
	}
	scale, ok := spacing.FromTree(raw)
	if !ok {
		return node
	}
	generated := spacing.Generate(scale)
	if len(generated) == 0 {
		return node
	}

	path := []string{"spacing", "spacingSizes", origin.String()}
	explicit, _ := node.Lookup(path...)

	bySlug := make(map[string]tree.Value, len(generated))
	var slugs []string
	for _, s := range generated {
		bySlug[s.Slug] = s.Value()
		slugs = append(slugs, s.Slug)
	}
	for _, entry := range explicit.Items() {
		slug := EntrySlug(entry)
		if slug == "" {
			continue
		}
		if _, exists := bySlug[slug]; !exists {
			slugs = append(slugs, slug)
		}
		bySlug[slug] = entry
	}
	slices.SortStableFunc(slugs, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	items := make([]tree.Value, 0, len(slugs))
	for _, slug := range slugs {
		items = append(items, bySlug[slug])
	}
	return node.With(path, tree.List(items...))
}

// Collection returns entries stored for origin in an origin keyed collection.
func Collection(node tree.Value, c *Category, origin common.Origin) []tree.Value {
	v, _ := node.Lookup(append(slices.Clone(c.Path), origin.String())...)
	return v.Items()
}
