package stylesheet

import (
	"themec/css"
	"themec/tree"
)

// styles emits root, root elements, then every block with its features,
// pseudo-states, variations and elements.
func (g *generator) styles(ss *css.Stylesheet) {
	styles, _ := g.t.Get("styles")
	settings, _ := g.t.Get("settings")

	aware, _ := settings.Get("useRootPaddingAwareAlignments")
	root := g.scope(g.root)
	ss.Add(root, plain(g.declarations(styles, declContext{rootPadding: aware.Truthy()})))
	g.elements(ss, styles, "")

	for _, n := range g.blocks {
		g.block(ss, n)
		g.blockLayout(ss, n)
		for _, pseudo := range blockPseudos[n.name] {
			if ps, ok := n.style.Get(pseudo); ok {
				ss.Add(css.Where(css.AppendToSelector(n.selector, pseudo)), plain(g.declarations(ps, declContext{block: true})))
			}
		}
		for _, v := range n.variations {
			g.block(ss, v)
			g.elements(ss, v.style, v.selector)
			g.nestedBlocks(ss, v)
		}
		g.elements(ss, n.style, n.selector)
	}
}

// block emits general rule of the node followed by rules of features with
// own selectors, in feature order.
func (g *generator) block(ss *css.Stylesheet, n *node) {
	var (
		general  []decl
		features = make(map[string][]decl)
	)
	for _, d := range g.declarations(n.style, declContext{block: true}) {
		if f := n.block.FeatureOf(d.feature); f != "" {
			features[f] = append(features[f], d)
			continue
		}
		general = append(general, d)
	}
	ss.Add(css.Where(n.selector), plain(general))
	for _, f := range n.block.Features() {
		if ds := features[f]; len(ds) > 0 {
			ss.Add(css.Where(n.features[f]), plain(ds))
		}
	}
}

// elements emits element rules of style node. Empty parent means document
// level elements.
func (g *generator) elements(ss *css.Stylesheet, style tree.Value, parent string) {
	els, _ := style.Get("elements")
	for name, el := range els.Map().All() {
		sel, ok := elementSelectors[name]
		if !ok || !el.IsMap() {
			continue
		}
		if parent == "" {
			sel = g.scope(sel)
		} else {
			sel = css.ScopeSelector(parent, sel)
		}
		ss.Add(css.Where(sel), plain(g.declarations(el, declContext{})))
		for _, pseudo := range elementPseudos[name] {
			if ps, ok := el.Get(pseudo); ok {
				ss.Add(css.Where(css.AppendToSelector(sel, pseudo)), plain(g.declarations(ps, declContext{})))
			}
		}
	}
}

// nestedBlocks emits blocks styled inside a variation.
func (g *generator) nestedBlocks(ss *css.Stylesheet, v *node) {
	blocks, _ := v.style.Get("blocks")
	for name, style := range blocks.Map().All() {
		bt, ok := g.reg.Lookup(name)
		if !ok || !style.IsMap() {
			continue
		}
		sel := css.ScopeSelector(v.selector, bt.RootSelector())
		ss.Add(css.Where(sel), plain(g.declarations(style, declContext{block: true})))
		g.elements(ss, style, sel)
	}
}
