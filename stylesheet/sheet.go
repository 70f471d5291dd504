// Package stylesheet turns resolved and sanitized style tree into CSS text.
// Generation is a pure function of the tree, the block registry and options.
package stylesheet

import (
	"io"
	"strings"

	"themec/common"
	"themec/css"
	"themec/registry"
	"themec/resolve"
	"themec/tree"
)

// DefaultRootSelector is the selector of document root styles.
const DefaultRootSelector = "body"

// Options of a single generation.
type Options struct {
	// Types lists sections to produce, unknown names are ignored. Empty
	// means all sections.
	Types []string
	// RootSelector overrides selector of document root styles.
	RootSelector string
	// SkipRootLayoutStyles leaves only layout definitions base rules in
	// base-layout-styles section.
	SkipRootLayoutStyles bool
	// ScopeSelector is prepended to every selector.
	ScopeSelector string
	// IncludeVariations enables block style variations.
	IncludeVariations bool
	// Namespace of custom properties, "wp" by default.
	Namespace string
}

func (o Options) sections() []common.Section {
	if len(o.Types) == 0 {
		return common.Sections()
	}
	requested := make(map[common.Section]bool, len(o.Types))
	for _, name := range o.Types {
		if sec, err := common.ParseSection(strings.TrimSpace(name)); err == nil {
			requested[sec] = true
		}
	}
	var out []common.Section
	for _, sec := range common.Sections() {
		if requested[sec] {
			out = append(out, sec)
		}
	}
	return out
}

// Sheet is generated stylesheet split into sections.
type Sheet struct {
	sections map[common.Section]*css.Stylesheet
}

// Stylesheet returns rules of a section, nil when section was not requested.
func (s *Sheet) Stylesheet(sec common.Section) *css.Stylesheet {
	return s.sections[sec]
}

// Section returns CSS text of a single section.
func (s *Sheet) Section(sec common.Section) string {
	if ss := s.sections[sec]; ss != nil {
		return ss.String()
	}
	return ""
}

// String returns complete CSS text, sections in fixed order.
func (s *Sheet) String() string {
	var sb strings.Builder
	for _, sec := range common.Sections() {
		if ss := s.sections[sec]; ss != nil {
			sb.WriteString(ss.String())
		}
	}
	return sb.String()
}

// WriteTo implements io.WriterTo.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

type emptyRegistry struct{}

func (emptyRegistry) Lookup(string) (*registry.BlockType, bool) { return nil, false }

// generator carries state of one Generate call.
type generator struct {
	t      tree.Value
	reg    registry.Registry
	opts   Options
	ns     string
	root   string
	blocks []*node
}

// Generate produces stylesheet for t. Blocks unknown to reg are skipped.
func Generate(t tree.Value, reg registry.Registry, opts Options) *Sheet {
	if reg == nil {
		reg = emptyRegistry{}
	}
	g := &generator{t: t, reg: reg, opts: opts, ns: opts.Namespace, root: opts.RootSelector}
	if g.ns == "" {
		g.ns = resolve.DefaultNamespace
	}
	if g.root == "" {
		g.root = DefaultRootSelector
	}
	g.blocks = g.discover()

	sheet := &Sheet{sections: make(map[common.Section]*css.Stylesheet)}
	for _, sec := range opts.sections() {
		ss := &css.Stylesheet{}
		switch sec {
		case common.SectionVariables:
			g.variables(ss)
		case common.SectionBaseLayoutStyles:
			g.layout(ss)
		case common.SectionStyles:
			g.styles(ss)
		case common.SectionPresets:
			g.presetClasses(ss)
		case common.SectionCustomCss:
			g.customCSS(ss)
		}
		sheet.sections[sec] = ss
	}
	return sheet
}

// scope applies scope selector when one is set.
func (g *generator) scope(sel string) string {
	if g.opts.ScopeSelector == "" {
		return sel
	}
	return css.ScopeSelector(g.opts.ScopeSelector, sel)
}

// varsSelector is the selector carrying global custom properties.
func (g *generator) varsSelector() string {
	if g.opts.ScopeSelector != "" {
		return g.opts.ScopeSelector
	}
	return ":root"
}

func (g *generator) varName(parts ...string) string {
	return "--" + g.ns + "--" + strings.Join(parts, "--")
}
