// Package presets knows about preset collections: where they live in
// settings, how their entries are named and how collections are keyed by
// origin.
package presets

import (
	"fmt"
	"strings"

	"themec/tree"
)

// Class is a utility class generated for every preset of a category.
type Class struct {
	Suffix   string // class name is .has-<slug>-<suffix>
	Property string
}

// Category describes one kind of preset collection.
type Category struct {
	Path     []string // under settings or settings.blocks.<name>
	Infix    string   // --<ns>--preset--<infix>--<slug>
	ValueKey string
	Classes  []Class
	// Flag is path of a boolean which when explicitly false keeps default
	// presets next to theme ones with the same slug.
	Flag []string
	// Required lists fields an entry must carry to replace an existing entry
	// with the same slug instead of being merged into it. Empty means entries
	// always replace.
	Required []string
}

// Categories in the order used for variables and utility classes.
var Categories = []*Category{
	{
		Path:     []string{"color", "duotone"},
		Infix:    "duotone",
		ValueKey: "colors",
		Flag:     []string{"color", "defaultDuotone"},
	},
	{
		Path:     []string{"color", "gradients"},
		Infix:    "gradient",
		ValueKey: "gradient",
		Classes:  []Class{{"gradient-background", "background"}},
		Flag:     []string{"color", "defaultGradients"},
	},
	{
		Path:     []string{"color", "palette"},
		Infix:    "color",
		ValueKey: "color",
		Classes: []Class{
			{"color", "color"},
			{"background-color", "background-color"},
			{"border-color", "border-color"},
		},
		Flag: []string{"color", "defaultPalette"},
	},
	{
		Path:     []string{"typography", "fontSizes"},
		Infix:    "font-size",
		ValueKey: "size",
		Classes:  []Class{{"font-size", "font-size"}},
		Flag:     []string{"typography", "defaultFontSizes"},
		Required: []string{"slug", "name", "size"},
	},
	{
		Path:     []string{"typography", "fontFamilies"},
		Infix:    "font-family",
		ValueKey: "fontFamily",
		Classes:  []Class{{"font-family", "font-family"}},
		Required: []string{"slug", "name", "fontFamily"},
	},
	{
		Path:     []string{"spacing", "spacingSizes"},
		Infix:    "spacing",
		ValueKey: "size",
		Flag:     []string{"spacing", "defaultSpacingSizes"},
	},
	{
		Path:     []string{"shadow", "presets"},
		Infix:    "shadow",
		ValueKey: "shadow",
		Flag:     []string{"shadow", "defaultPresets"},
	},
}

// ByInfix finds category by its custom property infix.
func ByInfix(infix string) (*Category, bool) {
	for _, c := range Categories {
		if c.Infix == infix {
			return c, true
		}
	}
	return nil, false
}

// ByPath finds category stored under path relative to settings node.
func ByPath(path []string) (*Category, bool) {
	for _, c := range Categories {
		if len(path) == len(c.Path) && path[0] == c.Path[0] && path[1] == c.Path[1] {
			return c, true
		}
	}
	return nil, false
}

func (c *Category) String() string {
	return tree.JoinPath(c.Path...)
}

// VarName returns custom property name for preset slug.
func (c *Category) VarName(ns, slug string) string {
	return fmt.Sprintf("--%s--preset--%s--%s", ns, c.Infix, Slug(slug))
}

// VarValue returns value of custom property for entry. Duotone filters are
// referenced by id and never get literal value.
func (c *Category) VarValue(ns string, entry tree.Value) (string, bool) {
	if c.Infix == "duotone" {
		slug := EntrySlug(entry)
		if slug == "" {
			return "", false
		}
		return fmt.Sprintf("url('#%s-duotone-%s')", ns, slug), true
	}
	return EntryValue(c, entry)
}

// ClassName returns utility class selector for slug.
func (cl Class) ClassName(slug string) string {
	return ".has-" + Slug(slug) + "-" + cl.Suffix
}

// EntrySlug returns normalized slug of a preset entry.
func EntrySlug(entry tree.Value) string {
	v, _ := entry.Get("slug")
	s, ok := v.Scalar()
	if !ok {
		return ""
	}
	return Slug(s)
}

// EntryValue returns category value of entry as a string. Lists (duotone
// colors) are joined.
func EntryValue(c *Category, entry tree.Value) (string, bool) {
	v, ok := entry.Get(c.ValueKey)
	if !ok {
		return "", false
	}
	if s, ok := v.Scalar(); ok {
		return s, s != ""
	}
	if v.IsList() {
		if items := v.Strings(); len(items) > 0 && len(items) == v.Len() {
			return strings.Join(items, ", "), true
		}
	}
	return "", false
}
