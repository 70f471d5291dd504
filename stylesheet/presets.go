package stylesheet

import (
	"themec/common"
	"themec/css"
	"themec/presets"
	"themec/registry"
	"themec/tree"
)

// entries returns preset entries of category stored in settings node,
// origins in ascending precedence, later origin replaces entry with the same
// slug keeping its position.
func entries(settings tree.Value, c *presets.Category) []tree.Value {
	var (
		out []tree.Value
		pos = make(map[string]int)
	)
	for _, origin := range common.Origins() {
		for _, e := range presets.Collection(settings, c, origin) {
			slug := presets.EntrySlug(e)
			if slug == "" {
				continue
			}
			if i, ok := pos[slug]; ok {
				out[i] = e
				continue
			}
			pos[slug] = len(out)
			out = append(out, e)
		}
	}
	return out
}

// presetVariables returns custom properties of all presets of settings node.
func (g *generator) presetVariables(settings tree.Value) css.Declarations {
	var decls css.Declarations
	for _, c := range presets.Categories {
		for _, e := range entries(settings, c) {
			if v, ok := c.VarValue(g.ns, e); ok {
				decls.Set(c.VarName(g.ns, presets.EntrySlug(e)), v)
			}
		}
	}
	return decls
}

// customVariables flattens settings.custom into custom properties.
func (g *generator) customVariables(settings tree.Value) css.Declarations {
	custom, _ := settings.Get("custom")
	var decls css.Declarations
	var walk func(v tree.Value, path []string)
	walk = func(v tree.Value, path []string) {
		if v.IsMap() {
			for k, item := range v.Map().All() {
				name := presets.KebabCase(k)
				if name == "" {
					continue
				}
				walk(item, append(path[:len(path):len(path)], name))
			}
			return
		}
		if s, ok := scalar(v); ok && len(path) > 0 {
			decls.Set(g.varName(append([]string{"custom"}, path...)...), s)
		}
	}
	walk(custom, nil)
	return decls
}

// variables: root custom properties then block scoped ones.
func (g *generator) variables(ss *css.Stylesheet) {
	settings, _ := g.t.Get("settings")

	decls := g.presetVariables(settings)
	decls = append(decls, g.customVariables(settings)...)
	ss.AddOrdered(g.varsSelector(), decls)

	g.eachBlockSettings(func(bt *registry.BlockType, node tree.Value) {
		decls := g.presetVariables(node)
		decls = append(decls, g.customVariables(node)...)
		ss.AddOrdered(g.scope(bt.RootSelector()), decls)
	})
}

// presetClasses emits utility classes: category, class, then entry order.
func (g *generator) presetClasses(ss *css.Stylesheet) {
	settings, _ := g.t.Get("settings")
	g.classes(ss, settings, func(class string) string { return g.scope(class) })

	g.eachBlockSettings(func(bt *registry.BlockType, node tree.Value) {
		root := g.scope(bt.RootSelector())
		g.classes(ss, node, func(class string) string { return css.AppendToSelector(root, class) })
	})
}

func (g *generator) classes(ss *css.Stylesheet, settings tree.Value, selector func(string) string) {
	for _, c := range presets.Categories {
		if len(c.Classes) == 0 {
			continue
		}
		list := entries(settings, c)
		for _, cl := range c.Classes {
			for _, e := range list {
				if _, ok := c.VarValue(g.ns, e); !ok {
					continue
				}
				slug := presets.EntrySlug(e)
				ss.AddOrdered(selector(cl.ClassName(slug)), css.Declarations{{
					Property:  cl.Property,
					Value:     "var(" + c.VarName(g.ns, slug) + ")",
					Important: true,
				}})
			}
		}
	}
}

// eachBlockSettings calls fn for settings of every registered block in
// document order.
func (g *generator) eachBlockSettings(fn func(*registry.BlockType, tree.Value)) {
	blocks, _ := g.t.Lookup("settings", "blocks")
	for name, node := range blocks.Map().All() {
		bt, ok := g.reg.Lookup(name)
		if !ok || !node.IsMap() {
			continue
		}
		fn(bt, node)
	}
}
