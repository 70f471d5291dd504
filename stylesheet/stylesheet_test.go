package stylesheet

import (
	"strings"
	"testing"

	"themec/common"
	"themec/registry"
	"themec/tree"
)

func decode(t *testing.T, src string) tree.Value {
	t.Helper()
	v, err := tree.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unable to decode fixture: %v", err)
	}
	return v
}

func testRegistry() *registry.Static {
	return registry.NewStatic(
		&registry.BlockType{
			Name: "core/button",
			Selectors: map[string]string{
				"root":                   ".wp-block-button .wp-block-button__link",
				"typography.writingMode": ".wp-block-button",
			},
		},
		&registry.BlockType{
			Name:      "core/image",
			Selectors: map[string]string{"border": ".wp-block-image img"},
		},
		&registry.BlockType{
			Name:     "core/group",
			Supports: map[string]bool{"layout": true},
		},
	)
}

func TestGenerate_EndToEnd(t *testing.T) {
	in := decode(t, `{"version":3,
		"settings":{"color":{"palette":{"theme":[{"slug":"grey","color":"grey"}]}}},
		"styles":{"color":{"text":"var(--wp--preset--color--grey)"}}}`)

	out := Generate(in, nil, Options{}).String()
	vars := strings.Index(out, ":root{--wp--preset--color--grey: grey;}")
	body := strings.Index(out, "body{color: var(--wp--preset--color--grey);}")
	class := strings.Index(out, ".has-grey-color{color: var(--wp--preset--color--grey) !important;}")
	if vars < 0 || body < 0 || class < 0 {
		t.Fatalf("missing rules in\n%s", out)
	}
	if !(vars < body && body < class) {
		t.Errorf("unexpected order %d %d %d in\n%s", vars, body, class, out)
	}
}

func TestGenerate_Types(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"palette":{"theme":[{"slug":"red","color":"#f00"}]}}},"styles":{"color":{"text":"red"}}}`)
	sheet := Generate(in, nil, Options{Types: []string{"variables", "bogus", " presets"}})

	if got := sheet.Section(common.SectionStyles); got != "" {
		t.Errorf("styles section = %q", got)
	}
	if sheet.Stylesheet(common.SectionStyles) != nil {
		t.Error("styles section must not be generated")
	}
	want := ":root{--wp--preset--color--red: #f00;}" +
		".has-red-color{color: var(--wp--preset--color--red) !important;}" +
		".has-red-background-color{background-color: var(--wp--preset--color--red) !important;}" +
		".has-red-border-color{border-color: var(--wp--preset--color--red) !important;}"
	if got := sheet.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate_Styles(t *testing.T) {
	in := decode(t, `{"styles":{
		"color":{"text":"#000"},
		"elements":{
			"link":{"color":{"text":"blue"},":hover":{"color":{"text":"red"}},":bogus":{"color":{"text":"x"}}},
			"marquee":{"color":{"text":"x"}}
		},
		"blocks":{
			"core/image":{"border":{"radius":"4px"},"color":{"background":"#eee"}},
			"core/unknown":{"color":{"text":"x"}},
			"core/button":{
				"color":{"text":"#fff"},
				"typography":{"writingMode":"vertical-rl"},
				":hover":{"color":{"text":"#ccc"}},
				"variations":{"outline":{"border":{"width":"2px"},"elements":{"link":{"color":{"text":"green"}}}}},
				"elements":{"link":{"color":{"text":"white"}}}
			}
		}}}`)

	got := Generate(in, testRegistry(), Options{Types: []string{"styles"}, IncludeVariations: true}).String()
	want := "body{color: #000;}" +
		":root :where(a:where(:not(.wp-element-button))){color: blue;}" +
		":root :where(a:where(:not(.wp-element-button)):hover){color: red;}" +
		":root :where(.wp-block-image){background-color: #eee;}" +
		":root :where(.wp-block-image img){border-radius: 4px;}" +
		":root :where(.wp-block-button .wp-block-button__link){color: #fff;}" +
		":root :where(.wp-block-button){writing-mode: vertical-rl;}" +
		":root :where(.wp-block-button .wp-block-button__link:hover){color: #ccc;}" +
		":root :where(.wp-block-button.is-style-outline .wp-block-button__link){border-width: 2px;}" +
		":root :where(.wp-block-button.is-style-outline .wp-block-button__link a:where(:not(.wp-element-button))){color: green;}" +
		":root :where(.wp-block-button .wp-block-button__link a:where(:not(.wp-element-button))){color: white;}"
	if got != want {
		t.Errorf("styles =\n%s\nwant\n%s", got, want)
	}

	noVariations := Generate(in, testRegistry(), Options{Types: []string{"styles"}}).String()
	if strings.Contains(noVariations, "is-style-outline") {
		t.Errorf("variations must be skipped unless requested:\n%s", noVariations)
	}
}

func TestGenerate_Declarations(t *testing.T) {
	in := decode(t, `{"styles":{
		"spacing":{"padding":{"top":"1px","right":"2px","bottom":"3px","left":"4px"},"margin":{"top":"0"}},
		"border":{"radius":{"topLeft":"1px","topRight":"2px"},"top":{"color":"red","width":"1px"}},
		"typography":{"lineHeight":1.5,"fontSize":{"x":1}},
		"color":{"text":true,"background":{"ref":"styles.nothing"}}
	}}`)
	got := Generate(in, nil, Options{Types: []string{"styles"}}).String()
	want := "body{border-top-color: red;border-top-left-radius: 1px;border-top-right-radius: 2px;border-top-width: 1px;" +
		"line-height: 1.5;margin-top: 0;padding: 1px 2px 3px 4px;}"
	if got != want {
		t.Errorf("styles =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate_RootPadding(t *testing.T) {
	in := decode(t, `{"settings":{"useRootPaddingAwareAlignments":true},"styles":{"spacing":{"padding":"1rem"}}}`)
	got := Generate(in, nil, Options{Types: []string{"styles"}}).String()
	want := "body{--wp--style--root--padding-bottom: 1rem;--wp--style--root--padding-left: 1rem;" +
		"--wp--style--root--padding-right: 1rem;--wp--style--root--padding-top: 1rem;}"
	if got != want {
		t.Errorf("styles =\n%s\nwant\n%s", got, want)
	}

	layout := Generate(in, nil, Options{Types: []string{"base-layout-styles"}}).String()
	if !strings.Contains(layout, ".has-global-padding{padding-left: var(--wp--style--root--padding-left);padding-right: var(--wp--style--root--padding-right);}") {
		t.Errorf("missing root padding rules:\n%s", layout)
	}
}

func TestGenerate_BackgroundImage(t *testing.T) {
	in := decode(t, `{"styles":{
		"background":{"backgroundImage":{"url":"https://example.org/a.jpg"}},
		"blocks":{
			"core/group":{"background":{"backgroundImage":{"url":"https://example.org/a.jpg"}}},
			"core/image":{"background":{"backgroundImage":{"url":"b.jpg"},"backgroundSize":"contain"}}
		}}}`)
	got := Generate(in, testRegistry(), Options{Types: []string{"styles"}}).String()
	want := "body{background-image: url('https://example.org/a.jpg');}" +
		":root :where(.wp-block-group){background-image: url('https://example.org/a.jpg');background-size: cover;}" +
		":root :where(.wp-block-image){background-image: url('b.jpg');background-size: contain;}"
	if got != want {
		t.Errorf("styles =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate_Variables(t *testing.T) {
	in := decode(t, `{"settings":{
		"color":{
			"palette":{"default":[{"slug":"red","color":"#f00"},{"slug":"grey","color":"#999"}],"theme":[{"slug":"red","color":"#e00"}]},
			"duotone":{"theme":[{"slug":"dark","colors":["#000","#fff"]}]}
		},
		"custom":{"lineHeight":{"body":1.5},"flag":true},
		"blocks":{
			"core/group":{"color":{"palette":{"theme":[{"slug":"accent","color":"pink"}]}}},
			"core/nope":{"color":{"palette":{"theme":[{"slug":"x","color":"red"}]}}}
		}}}`)

	got := Generate(in, testRegistry(), Options{Types: []string{"variables"}}).String()
	want := ":root{--wp--preset--duotone--dark: url('#wp-duotone-dark');--wp--preset--color--red: #e00;" +
		"--wp--preset--color--grey: #999;--wp--custom--line-height--body: 1.5;}" +
		".wp-block-group{--wp--preset--color--accent: pink;}"
	if got != want {
		t.Errorf("variables =\n%s\nwant\n%s", got, want)
	}

	classes := Generate(in, testRegistry(), Options{Types: []string{"presets"}}).String()
	for _, part := range []string{
		".has-red-color{color: var(--wp--preset--color--red) !important;}.has-grey-color{",
		".has-grey-border-color{border-color: var(--wp--preset--color--grey) !important;}.wp-block-group.has-accent-color{",
	} {
		if !strings.Contains(classes, part) {
			t.Errorf("presets section misses %q:\n%s", part, classes)
		}
	}
	if strings.Contains(classes, "duotone") || strings.Contains(classes, "has-x-") {
		t.Errorf("unexpected classes:\n%s", classes)
	}
}

func TestGenerate_Namespace(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"palette":{"theme":[{"slug":"a","color":"#fff"}]}}}}`)
	got := Generate(in, nil, Options{Types: []string{"variables"}, Namespace: "acme"}).String()
	if got != ":root{--acme--preset--color--a: #fff;}" {
		t.Errorf("variables = %s", got)
	}
}

func TestGenerate_Scope(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"palette":{"theme":[{"slug":"red","color":"#f00"}]}}},
		"styles":{"color":{"text":"red"},"blocks":{"core/group":{"color":{"text":"blue"}}}}}`)
	sheet := Generate(in, testRegistry(), Options{ScopeSelector: ".editor"})

	if got := sheet.Section(common.SectionVariables); got != ".editor{--wp--preset--color--red: #f00;}" {
		t.Errorf("variables = %s", got)
	}
	if got := sheet.Section(common.SectionStyles); got != ".editor body{color: red;}:root :where(.editor .wp-block-group){color: blue;}" {
		t.Errorf("styles = %s", got)
	}
	if got := sheet.Section(common.SectionPresets); !strings.HasPrefix(got, ".editor .has-red-color{") {
		t.Errorf("presets = %s", got)
	}
}

func TestGenerate_ScopedLayout(t *testing.T) {
	in := decode(t, `{"settings":{"spacing":{"blockGap":true},"layout":{"contentSize":"640px"},"useRootPaddingAwareAlignments":true},
		"styles":{"spacing":{"blockGap":"1.5rem"}}}`)
	sheet := Generate(in, nil, Options{Types: []string{"base-layout-styles"}, ScopeSelector: ".editor"})

	got := sheet.String()
	for _, part := range []string{
		":where(.editor body){margin: 0;}",
		".editor .wp-site-blocks > .alignleft{float: left;margin-right: 2em;}",
		":where(.editor .wp-site-blocks) > *{margin-block-end: 0;margin-block-start: 1.5rem;}",
		".editor{--wp--style--block-gap: 1.5rem;}",
		".editor body{--wp--style--global--content-size: 640px;}",
		".editor body .is-layout-flex{display: flex;}",
		":where(.editor body .is-layout-flow) > *{margin-block-end: 0;margin-block-start: 1.5rem;}",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("layout misses %q:\n%s", part, got)
		}
	}
	for _, r := range sheet.Stylesheet(common.SectionBaseLayoutStyles).Rules {
		if !strings.Contains(r.Selector, ".editor") {
			t.Errorf("rule %q is not scoped", r.Selector)
		}
	}

	fallback := Generate(decode(t, `{}`), nil, Options{Types: []string{"base-layout-styles"}, ScopeSelector: ".editor"}).String()
	if !strings.Contains(fallback, ":where(.editor .is-layout-flex){gap: 0.5em;}") {
		t.Errorf("fallback gap is not scoped:\n%s", fallback)
	}
}

func TestGenerate_SymbolSlugs(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"palette":{"theme":[{"slug":"Black & White","color":"#000"}]}}},
		"styles":{"blocks":{"core/button":{"variations":{"Bold & Wide":{"border":{"width":"2px"}}}}}}}`)
	sheet := Generate(in, testRegistry(), Options{IncludeVariations: true})

	if got := sheet.Section(common.SectionVariables); got != ":root{--wp--preset--color--black-white: #000;}" {
		t.Errorf("variables = %s", got)
	}
	if got := sheet.Section(common.SectionPresets); !strings.HasPrefix(got, ".has-black-white-color{color: var(--wp--preset--color--black-white) !important;}") {
		t.Errorf("presets = %s", got)
	}
	want := ":root :where(.wp-block-button.is-style-bold-wide .wp-block-button__link){border-width: 2px;}"
	if got := sheet.Section(common.SectionStyles); got != want {
		t.Errorf("styles = %s, want %s", got, want)
	}
}

func TestGenerate_Layout(t *testing.T) {
	in := decode(t, `{"settings":{"spacing":{"blockGap":true},"layout":{"contentSize":"640px","wideSize":"1200px"}},
		"styles":{"spacing":{"blockGap":"1.5rem"}}}`)

	got := Generate(in, nil, Options{Types: []string{"base-layout-styles"}}).String()
	if !strings.HasPrefix(got, ":where(body){margin: 0;}") {
		t.Errorf("layout must start with margin reset:\n%s", got)
	}
	for _, part := range []string{
		":where(.wp-site-blocks) > *{margin-block-end: 0;margin-block-start: 1.5rem;}",
		":root{--wp--style--block-gap: 1.5rem;}",
		"body{--wp--style--global--content-size: 640px;--wp--style--global--wide-size: 1200px;}",
		"body .is-layout-flex{display: flex;}",
		"body .is-layout-constrained > .alignwide{max-width: var(--wp--style--global--wide-size);}",
		":where(body .is-layout-flex){gap: 1.5rem;}",
		":where(body .is-layout-flow) > *{margin-block-end: 0;margin-block-start: 1.5rem;}",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("layout misses %q:\n%s", part, got)
		}
	}
	if strings.Contains(got, ":where(.is-layout-flex){gap: 0.5em;}") {
		t.Errorf("fallback gap with block gap support:\n%s", got)
	}

	skipped := Generate(in, nil, Options{Types: []string{"base-layout-styles"}, SkipRootLayoutStyles: true}).String()
	if !strings.HasPrefix(skipped, "body .is-layout-flow > .alignleft{float: left;margin-inline-end: 2em;margin-inline-start: 0;}") {
		t.Errorf("skipped layout =\n%s", skipped)
	}
	for _, part := range []string{":where(body){", "gap:", ".wp-site-blocks"} {
		if strings.Contains(skipped, part) {
			t.Errorf("skipped layout contains %q:\n%s", part, skipped)
		}
	}

	noGap := Generate(decode(t, `{}`), nil, Options{Types: []string{"base-layout-styles"}}).String()
	if !strings.Contains(noGap, ":where(.is-layout-flex){gap: 0.5em;}:where(.is-layout-grid){gap: 0.5em;}") {
		t.Errorf("missing fallback gap:\n%s", noGap)
	}
}

func TestGenerate_BlockLayout(t *testing.T) {
	in := decode(t, `{"styles":{"blocks":{
		"core/group":{"spacing":{"blockGap":"2rem"},":hover":{"color":{"text":"red"}}},
		"core/image":{"spacing":{"blockGap":"2rem"}}
	}}}`)
	got := Generate(in, testRegistry(), Options{Types: []string{"styles"}}).String()
	for _, part := range []string{
		":root :where(.wp-block-group.is-layout-flow) > *{margin-block-end: 0;margin-block-start: 2rem;}",
		":root :where(.wp-block-group.is-layout-flex){gap: 2rem;}",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("styles misses %q:\n%s", part, got)
		}
	}
	if strings.Contains(got, "wp-block-image") || strings.Contains(got, ":hover") {
		t.Errorf("unexpected rules:\n%s", got)
	}
}

func TestGenerate_CustomCSS(t *testing.T) {
	in := decode(t, `{"styles":{"css":"p{color:red}","blocks":{
		"core/group":{"css":"color: red;&:hover{color: blue;}","variations":{"card":{"css":"& p{margin: 0}"}}},
		"core/unknown":{"css":"color: red;"}
	}}}`)
	got := Generate(in, testRegistry(), Options{Types: []string{"custom-css"}, IncludeVariations: true}).String()
	want := "p{color:red}" +
		":root :where(.wp-block-group){color: red;}" +
		":root :where(.wp-block-group:hover){color: blue;}" +
		":root :where(.wp-block-group.is-style-card p){margin: 0}"
	if got != want {
		t.Errorf("custom css =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"palette":{"theme":[{"slug":"a","color":"#fff"}]}},"spacing":{"blockGap":true}},
		"styles":{"color":{"text":"#000"},"blocks":{"core/button":{"variations":{"x":{"color":{"text":"red"}}}}}}}`)
	before, _ := in.MarshalJSON()
	reg := testRegistry()
	opts := Options{IncludeVariations: true}

	first := Generate(in, reg, opts).String()
	second := Generate(in, reg, opts).String()
	if first != second {
		t.Errorf("output differs:\n%s\n%s", first, second)
	}
	after, _ := in.MarshalJSON()
	if string(before) != string(after) {
		t.Error("Generate() modified its input")
	}
}
