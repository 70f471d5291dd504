package stylesheet

import (
	"strings"

	"themec/css"
	"themec/tree"
)

type propKind int

const (
	propPlain propKind = iota
	propSides
	propCorners
	propImage
)

// properties maps style paths to CSS properties.
var properties = []struct {
	path     string
	property string
	kind     propKind
}{
	{"background.backgroundImage", "background-image", propImage},
	{"background.backgroundPosition", "background-position", propPlain},
	{"background.backgroundRepeat", "background-repeat", propPlain},
	{"background.backgroundSize", "background-size", propPlain},
	{"background.backgroundAttachment", "background-attachment", propPlain},
	{"border.color", "border-color", propPlain},
	{"border.radius", "border-radius", propCorners},
	{"border.style", "border-style", propPlain},
	{"border.width", "border-width", propPlain},
	{"color.background", "background-color", propPlain},
	{"color.gradient", "background", propPlain},
	{"color.text", "color", propPlain},
	{"dimensions.aspectRatio", "aspect-ratio", propPlain},
	{"dimensions.minHeight", "min-height", propPlain},
	{"filter.duotone", "filter", propPlain},
	{"outline.color", "outline-color", propPlain},
	{"outline.offset", "outline-offset", propPlain},
	{"outline.style", "outline-style", propPlain},
	{"outline.width", "outline-width", propPlain},
	{"shadow", "box-shadow", propPlain},
	{"spacing.margin", "margin", propSides},
	{"spacing.padding", "padding", propSides},
	{"typography.fontFamily", "font-family", propPlain},
	{"typography.fontSize", "font-size", propPlain},
	{"typography.fontStyle", "font-style", propPlain},
	{"typography.fontWeight", "font-weight", propPlain},
	{"typography.letterSpacing", "letter-spacing", propPlain},
	{"typography.lineHeight", "line-height", propPlain},
	{"typography.textAlign", "text-align", propPlain},
	{"typography.textColumns", "column-count", propPlain},
	{"typography.textDecoration", "text-decoration", propPlain},
	{"typography.textTransform", "text-transform", propPlain},
	{"typography.writingMode", "writing-mode", propPlain},
}

var (
	sides   = []string{"top", "right", "bottom", "left"}
	corners = []struct{ key, property string }{
		{"topLeft", "border-top-left-radius"},
		{"topRight", "border-top-right-radius"},
		{"bottomRight", "border-bottom-right-radius"},
		{"bottomLeft", "border-bottom-left-radius"},
	}
)

// decl is declaration tagged with style path it came from.
type decl struct {
	feature string
	css.Declaration
}

type declContext struct {
	// rootPadding turns padding into root padding custom properties
	rootPadding bool
	// block nodes get default background size
	block bool
}

func scalar(v tree.Value) (string, bool) {
	s, ok := v.Scalar()
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// declarations computes declarations of a single style node. Values which
// are not scalars (including unresolved references) are skipped.
func (g *generator) declarations(style tree.Value, ctx declContext) []decl {
	var out []decl
	add := func(feature, property, value string) {
		out = append(out, decl{feature: feature, Declaration: css.Declaration{Property: property, Value: value}})
	}

	for _, p := range properties {
		v, ok := style.LookupPath(p.path)
		if !ok {
			continue
		}
		switch p.kind {
		case propPlain:
			if s, ok := scalar(v); ok {
				add(p.path, p.property, s)
			}
		case propImage:
			if s, ok := backgroundImage(v); ok {
				add(p.path, p.property, s)
				if _, sized := style.Lookup("background", "backgroundSize"); ctx.block && !sized {
					add("background.backgroundSize", "background-size", "cover")
				}
			}
		case propCorners:
			if s, ok := scalar(v); ok {
				add(p.path, p.property, s)
				continue
			}
			vals := make([]string, 0, len(corners))
			for _, c := range corners {
				cv, _ := v.Get(c.key)
				if s, ok := scalar(cv); ok {
					vals = append(vals, s)
				}
			}
			if len(vals) == len(corners) {
				add(p.path, p.property, strings.Join(vals, " "))
				continue
			}
			for _, c := range corners {
				cv, _ := v.Get(c.key)
				if s, ok := scalar(cv); ok {
					add(p.path, c.property, s)
				}
			}
		case propSides:
			if p.property == "padding" && ctx.rootPadding {
				for _, side := range sides {
					if s, ok := sideValue(v, side); ok {
						add(p.path, g.varName("style", "root", "padding-"+side), s)
					}
				}
				continue
			}
			if s, ok := scalar(v); ok {
				add(p.path, p.property, s)
				continue
			}
			vals := make([]string, 0, len(sides))
			for _, side := range sides {
				if s, ok := sideValue(v, side); ok {
					vals = append(vals, s)
				}
			}
			if len(vals) == len(sides) {
				add(p.path, p.property, strings.Join(vals, " "))
				continue
			}
			for _, side := range sides {
				if s, ok := sideValue(v, side); ok {
					add(p.path, p.property+"-"+side, s)
				}
			}
		}
	}

	// per side borders
	for _, side := range sides {
		v, ok := style.Lookup("border", side)
		if !ok {
			continue
		}
		if s, ok := scalar(v); ok {
			add("border", "border-"+side, s)
			continue
		}
		for _, prop := range []string{"color", "style", "width"} {
			pv, _ := v.Get(prop)
			if s, ok := scalar(pv); ok {
				add("border", "border-"+side+"-"+prop, s)
			}
		}
	}
	return out
}

// sideValue returns value of one side of a spacing property, scalar applies
// to every side.
func sideValue(v tree.Value, side string) (string, bool) {
	if s, ok := scalar(v); ok {
		return s, true
	}
	sv, _ := v.Get(side)
	return scalar(sv)
}

// backgroundImage formats image object as url().
func backgroundImage(v tree.Value) (string, bool) {
	if s, ok := scalar(v); ok {
		return s, true
	}
	u, _ := v.Get("url")
	s, ok := u.Str()
	if !ok || s == "" {
		return "", false
	}
	return css.URL(s), true
}

// plain drops feature tags.
func plain(ds []decl) css.Declarations {
	out := make(css.Declarations, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Declaration)
	}
	return out
}
