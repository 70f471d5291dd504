package stylesheet

import (
	"themec/css"
)

// customCSS emits document custom CSS verbatim and block custom CSS with
// nesting resolved against block selectors.
func (g *generator) customCSS(ss *css.Stylesheet) {
	if v, ok := g.t.Lookup("styles", "css"); ok {
		if s, ok := v.Str(); ok {
			ss.AddRaw(s)
		}
	}
	for _, n := range g.blocks {
		g.nodeCSS(ss, n)
		for _, v := range n.variations {
			g.nodeCSS(ss, v)
		}
	}
}

func (g *generator) nodeCSS(ss *css.Stylesheet, n *node) {
	v, ok := n.style.Get("css")
	if !ok {
		return
	}
	if s, ok := v.Str(); ok {
		ss.AddRaw(css.ProcessNested(n.selector, s))
	}
}
