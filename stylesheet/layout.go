package stylesheet

import (
	"themec/css"
	"themec/tree"
)

type layoutRule struct {
	selector string // appended to layout class
	decls    css.Declarations
}

// layoutDefinition describes one layout type, spacing rules depend on block
// gap value.
type layoutDefinition struct {
	class   string
	base    []layoutRule
	spacing func(gap gapValue) []layoutRule
}

type gapValue struct {
	row  string // vertical gap used by flow layouts
	both string // "row column" used by flex and grid
}

func important(property, value string) css.Declaration {
	return css.Declaration{Property: property, Value: value, Important: true}
}

var alignRules = []layoutRule{
	{" > .alignleft", css.Declarations{{Property: "float", Value: "left"}, {Property: "margin-inline-start", Value: "0"}, {Property: "margin-inline-end", Value: "2em"}}},
	{" > .alignright", css.Declarations{{Property: "float", Value: "right"}, {Property: "margin-inline-start", Value: "2em"}, {Property: "margin-inline-end", Value: "0"}}},
	{" > .aligncenter", css.Declarations{important("margin-left", "auto"), important("margin-right", "auto")}},
}

func flowSpacing(gap gapValue) []layoutRule {
	return []layoutRule{
		{" > :first-child", css.Declarations{{Property: "margin-block-start", Value: "0"}}},
		{" > :last-child", css.Declarations{{Property: "margin-block-end", Value: "0"}}},
		{" > *", css.Declarations{{Property: "margin-block-start", Value: gap.row}, {Property: "margin-block-end", Value: "0"}}},
	}
}

func gridSpacing(gap gapValue) []layoutRule {
	return []layoutRule{{"", css.Declarations{{Property: "gap", Value: gap.both}}}}
}

// layoutDefinitions in output order.
func (g *generator) layoutDefinitions() []layoutDefinition {
	return []layoutDefinition{
		{
			class:   "is-layout-flow",
			base:    alignRules,
			spacing: flowSpacing,
		},
		{
			class: "is-layout-constrained",
			base: append(append([]layoutRule{}, alignRules...),
				layoutRule{" > :where(:not(.alignleft):not(.alignright):not(.alignfull))", css.Declarations{
					{Property: "max-width", Value: "var(" + g.varName("style", "global", "content-size") + ")"},
					important("margin-left", "auto"),
					important("margin-right", "auto"),
				}},
				layoutRule{" > .alignwide", css.Declarations{
					{Property: "max-width", Value: "var(" + g.varName("style", "global", "wide-size") + ")"},
				}},
			),
			spacing: flowSpacing,
		},
		{
			class: "is-layout-flex",
			base: []layoutRule{
				{"", css.Declarations{{Property: "display", Value: "flex"}}},
				{"", css.Declarations{{Property: "flex-wrap", Value: "wrap"}, {Property: "align-items", Value: "center"}}},
				{" > :is(*, div)", css.Declarations{{Property: "margin", Value: "0"}}},
			},
			spacing: gridSpacing,
		},
		{
			class: "is-layout-grid",
			base: []layoutRule{
				{"", css.Declarations{{Property: "display", Value: "grid"}}},
				{" > :is(*, div)", css.Declarations{{Property: "margin", Value: "0"}}},
			},
			spacing: gridSpacing,
		},
	}
}

const fallbackGap = "0.5em"

// blockGap reads gap of a style node: scalar or {top, left}.
func blockGap(style tree.Value) (gapValue, bool) {
	v, ok := style.Lookup("spacing", "blockGap")
	if !ok {
		return gapValue{}, false
	}
	if s, ok := scalar(v); ok {
		return gapValue{row: s, both: s}, true
	}
	top, _ := v.Get("top")
	left, _ := v.Get("left")
	row, hasRow := scalar(top)
	col, hasCol := scalar(left)
	switch {
	case hasRow && hasCol:
		return gapValue{row: row, both: row + " " + col}, true
	case hasRow:
		return gapValue{row: row, both: row}, true
	case hasCol:
		return gapValue{row: col, both: col}, true
	}
	return gapValue{}, false
}

// layout produces root layout rules followed by layout definitions.
func (g *generator) layout(ss *css.Stylesheet) {
	settings, _ := g.t.Get("settings")
	styles, _ := g.t.Get("styles")

	gapSupport := false
	if v, ok := settings.Lookup("spacing", "blockGap"); ok {
		gapSupport, _ = v.Bool()
	}
	gap, ok := blockGap(styles)
	if !ok {
		gap = gapValue{row: fallbackGap, both: fallbackGap}
	}

	if !g.opts.SkipRootLayoutStyles {
		g.rootLayout(ss, settings, gapSupport, gap)
	}

	defs := g.layoutDefinitions()
	for _, def := range defs {
		for _, r := range def.base {
			ss.Add(g.scope(g.root+" ."+def.class+r.selector), r.decls)
		}
	}
	if g.opts.SkipRootLayoutStyles {
		return
	}
	if !gapSupport {
		ss.Add(":where("+g.scope(".is-layout-flex")+")", css.Declarations{{Property: "gap", Value: fallbackGap}})
		ss.Add(":where("+g.scope(".is-layout-grid")+")", css.Declarations{{Property: "gap", Value: fallbackGap}})
		return
	}
	for _, def := range defs {
		for _, r := range def.spacing(gap) {
			ss.Add(":where("+g.scope(g.root+" ."+def.class)+")"+r.selector, r.decls)
		}
	}
}

func (g *generator) rootLayout(ss *css.Stylesheet, settings tree.Value, gapSupport bool, gap gapValue) {
	ss.Add(":where("+g.scope(g.root)+")", css.Declarations{{Property: "margin", Value: "0"}})

	if aware, _ := settings.Get("useRootPaddingAwareAlignments"); aware.Truthy() {
		pad := func(side string) string { return "var(" + g.varName("style", "root", "padding-"+side) + ")" }
		const nested = ".has-global-padding :where(:not(.alignfull.is-layout-flow) > .has-global-padding:not(.wp-block-block, .alignfull))"
		ss.Add(g.scope(".wp-site-blocks"), css.Declarations{{Property: "padding-top", Value: pad("top")}, {Property: "padding-bottom", Value: pad("bottom")}})
		ss.Add(g.scope(".has-global-padding"), css.Declarations{{Property: "padding-right", Value: pad("right")}, {Property: "padding-left", Value: pad("left")}})
		ss.Add(g.scope(".has-global-padding > .alignfull"), css.Declarations{
			{Property: "margin-right", Value: "calc(" + pad("right") + " * -1)"},
			{Property: "margin-left", Value: "calc(" + pad("left") + " * -1)"},
		})
		ss.Add(g.scope(nested), css.Declarations{{Property: "padding-right", Value: "0"}, {Property: "padding-left", Value: "0"}})
		ss.Add(g.scope(nested+" > .alignfull"), css.Declarations{{Property: "margin-left", Value: "0"}, {Property: "margin-right", Value: "0"}})
	}

	ss.Add(g.scope(".wp-site-blocks > .alignleft"), css.Declarations{{Property: "float", Value: "left"}, {Property: "margin-right", Value: "2em"}})
	ss.Add(g.scope(".wp-site-blocks > .alignright"), css.Declarations{{Property: "float", Value: "right"}, {Property: "margin-left", Value: "2em"}})
	ss.Add(g.scope(".wp-site-blocks > .aligncenter"), css.Declarations{
		{Property: "justify-content", Value: "center"},
		{Property: "margin-left", Value: "auto"},
		{Property: "margin-right", Value: "auto"},
	})

	if gapSupport {
		ss.Add(":where("+g.scope(".wp-site-blocks")+") > *", css.Declarations{{Property: "margin-block-start", Value: gap.row}, {Property: "margin-block-end", Value: "0"}})
		ss.Add(":where("+g.scope(".wp-site-blocks")+") > :first-child", css.Declarations{{Property: "margin-block-start", Value: "0"}})
		ss.Add(":where("+g.scope(".wp-site-blocks")+") > :last-child", css.Declarations{{Property: "margin-block-end", Value: "0"}})
		ss.Add(g.varsSelector(), css.Declarations{{Property: g.varName("style", "block-gap"), Value: gap.row}})
	}

	var sizes css.Declarations
	if v, ok := settings.Lookup("layout", "contentSize"); ok {
		if s, ok := scalar(v); ok {
			sizes.Set(g.varName("style", "global", "content-size"), s)
		}
	}
	if v, ok := settings.Lookup("layout", "wideSize"); ok {
		if s, ok := scalar(v); ok {
			sizes.Set(g.varName("style", "global", "wide-size"), s)
		}
	}
	ss.AddOrdered(g.scope(g.root), sizes)
}

// blockLayout emits gap rules of a block supporting layout.
func (g *generator) blockLayout(ss *css.Stylesheet, n *node) {
	if !n.block.SupportsFeature("layout") {
		return
	}
	gap, ok := blockGap(n.style)
	if !ok {
		return
	}
	for _, def := range g.layoutDefinitions() {
		for _, r := range def.spacing(gap) {
			if r.selector == " > :first-child" || r.selector == " > :last-child" {
				continue
			}
			ss.Add(css.Where(css.AppendToSelector(n.selector, "."+def.class))+r.selector, r.decls)
		}
	}
}
