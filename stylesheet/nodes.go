package stylesheet

import (
	"themec/css"
	"themec/presets"
	"themec/registry"
	"themec/tree"
)

// node is a block (or block style variation) found under styles.blocks.
type node struct {
	name     string
	path     []string
	block    *registry.BlockType
	selector string // scoped
	// features maps feature key to its scoped selector
	features   map[string]string
	style      tree.Value
	variations []*node
	variation  bool
}

// elementSelectors are selectors of styleable elements.
var elementSelectors = map[string]string{
	"link":    "a:where(:not(.wp-element-button))",
	"heading": "h1, h2, h3, h4, h5, h6",
	"h1":      "h1",
	"h2":      "h2",
	"h3":      "h3",
	"h4":      "h4",
	"h5":      "h5",
	"h6":      "h6",
	"button":  ".wp-element-button, .wp-block-button__link",
	"caption": ".wp-element-caption, .wp-block-audio figcaption, .wp-block-embed figcaption, .wp-block-gallery figcaption, .wp-block-image figcaption, .wp-block-table figcaption, .wp-block-video figcaption",
	"cite":    "cite",
}

// elements with pseudo-states
var elementPseudos = map[string][]string{
	"link":   {":link", ":any-link", ":visited", ":hover", ":focus", ":focus-visible", ":active"},
	"button": {":link", ":any-link", ":visited", ":hover", ":focus", ":focus-visible", ":active"},
}

// blocks with pseudo-states
var blockPseudos = map[string][]string{
	"core/button": {":hover", ":focus", ":focus-visible", ":active"},
}

// discover builds block nodes walking styles.blocks in document order.
func (g *generator) discover() []*node {
	blocks, _ := g.t.Lookup("styles", "blocks")
	var out []*node
	for name, style := range blocks.Map().All() {
		bt, ok := g.reg.Lookup(name)
		if !ok || !style.IsMap() {
			continue
		}
		n := &node{
			name:     name,
			path:     []string{"styles", "blocks", name},
			block:    bt,
			selector: g.scope(bt.RootSelector()),
			features: make(map[string]string),
			style:    style,
		}
		for _, f := range bt.Features() {
			sel, _ := bt.Selector(f)
			n.features[f] = g.scope(sel)
		}
		if g.opts.IncludeVariations {
			n.variations = g.variations(n, style)
		}
		out = append(out, n)
	}
	return out
}

func (g *generator) variations(parent *node, style tree.Value) []*node {
	vars, _ := style.Get("variations")
	class := registry.DefaultClassName(parent.name)
	var out []*node
	for name, vstyle := range vars.Map().All() {
		slug := presets.Slug(name)
		if slug == "" || !vstyle.IsMap() {
			continue
		}
		bt := parent.block
		v := &node{
			name:      name,
			path:      append(append([]string{}, parent.path...), "variations", name),
			block:     bt,
			selector:  g.scope(css.InsertVariationClass(bt.RootSelector(), class, slug)),
			features:  make(map[string]string),
			style:     vstyle,
			variation: true,
		}
		for _, f := range bt.Features() {
			sel, _ := bt.Selector(f)
			v.features[f] = g.scope(css.InsertVariationClass(sel, class, slug))
		}
		out = append(out, v)
	}
	return out
}
