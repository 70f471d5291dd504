package presets

import (
	"strings"
	"testing"

	"themec/common"
	"themec/schema"
	"themec/tree"
)

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"grey", "grey"},
		{"Vivid Red", "vivid-red"},
		{"primary_accent", "primary-accent"},
		{"--weird--", "weird"},
		{"x  y", "x-y"},
		{"50", "50"},
		{"a&b", "a-b"},
		{"Black & White", "black-white"},
		{"Dark@Night", "dark-night"},
		{"100%", "100"},
		{"Кирпич", "kirpich"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"lineHeight", "line-height"},
		{"body", "body"},
		{"h1Size", "h-1-size"},
		{"XMLHttp", "xml-http"},
		{"font_size", "font-size"},
	}
	for _, tt := range tests {
		if got := KebabCase(tt.in); got != tt.want {
			t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntrySlug(t *testing.T) {
	tests := []struct {
		entry tree.Value
		want  string
	}{
		{tree.Object(tree.MapOf("slug", "Black & White")), "black-white"},
		{tree.Object(tree.MapOf("slug", "x@y")), "x-y"},
		{tree.Object(tree.MapOf("slug", 50)), "50"},
		{tree.Object(tree.MapOf("name", "no slug")), ""},
	}
	for _, tt := range tests {
		if got := EntrySlug(tt.entry); got != tt.want {
			t.Errorf("EntrySlug(%s) = %q, want %q", jsonOf(t, tt.entry), got, tt.want)
		}
	}
}

func TestCategory(t *testing.T) {
	c, ok := ByInfix("color")
	if !ok {
		t.Fatal("color category not found")
	}
	if got := c.VarName("wp", "Vivid Red"); got != "--wp--preset--color--vivid-red" {
		t.Errorf("VarName() = %q", got)
	}
	if got := c.Classes[1].ClassName("red"); got != ".has-red-background-color" {
		t.Errorf("ClassName() = %q", got)
	}

	d, _ := ByPath([]string{"color", "duotone"})
	entry := tree.Object(tree.MapOf("slug", "dark", "colors", []string{"#000", "#fff"}))
	if v, ok := d.VarValue("wp", entry); !ok || v != "url('#wp-duotone-dark')" {
		t.Errorf("duotone VarValue() = %q", v)
	}
	if v, ok := EntryValue(d, entry); !ok || v != "#000, #fff" {
		t.Errorf("EntryValue() = %q", v)
	}
}

func load(t *testing.T, origin common.Origin, src string) *schema.Document {
	t.Helper()
	v, err := tree.DecodeJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unable to decode fixture: %v", err)
	}
	doc, err := schema.NewDocument(origin, v)
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}
	return doc
}

func jsonOf(t *testing.T, v tree.Value) string {
	t.Helper()
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	return string(data)
}

func TestNormalize(t *testing.T) {
	doc := load(t, common.OriginTheme, `{"version":3,"settings":{"color":{"palette":[{"slug":"red","color":"#f00"}],"gradients":{"default":[]}},"blocks":{"core/button":{"typography":{"fontSizes":[]}}}}}`)
	got := Normalize(doc)

	want := `{"version":3,"settings":{"color":{"palette":{"theme":[{"slug":"red","color":"#f00"}]},"gradients":{"default":[]}},"blocks":{"core/button":{"typography":{"fontSizes":{"theme":[]}}}}}}`
	if s := jsonOf(t, got.Data); s != want {
		t.Errorf("Normalize() =\n%s\nwant\n%s", s, want)
	}
	if got.Origin != common.OriginTheme {
		t.Errorf("origin = %s", got.Origin)
	}
	// input stays as it was
	if v, _ := doc.Settings().Lookup("color", "palette"); !v.IsList() {
		t.Error("Normalize() modified input")
	}
	// second pass changes nothing
	if s := jsonOf(t, Normalize(got).Data); s != want {
		t.Errorf("Normalize() is not idempotent: %s", s)
	}
}

func TestNormalize_SpacingScale(t *testing.T) {
	doc := load(t, common.OriginDefault, `{"settings":{"spacing":{
		"spacingScale":{"operator":"+","increment":1,"steps":3,"mediumStep":2,"unit":"rem"},
		"spacingSizes":[{"slug":"50","name":"Mine","size":"3rem"},{"slug":"100","name":"Huge","size":"9rem"}]}}}`)
	got := Normalize(doc)

	sizes := Collection(got.Settings(), Categories[5], common.OriginDefault)
	var slugs, names []string
	for _, s := range sizes {
		slugs = append(slugs, EntrySlug(s))
		n, _ := s.Get("name")
		str, _ := n.Str()
		names = append(names, str)
	}
	if strings.Join(slugs, ",") != "40,50,60,100" {
		t.Errorf("slugs = %v", slugs)
	}
	if strings.Join(names, ",") != "Small,Mine,Large,Huge" {
		t.Errorf("names = %v", names)
	}
}

func TestNormalize_ZeroStepsKeepsExplicit(t *testing.T) {
	doc := load(t, common.OriginTheme, `{"settings":{"spacing":{"spacingScale":{"steps":0},"spacingSizes":[{"slug":"s","size":"1px"}]}}}`)
	got := Normalize(doc)
	if sizes := Collection(got.Settings(), Categories[5], common.OriginTheme); len(sizes) != 1 {
		t.Errorf("sizes = %d, want 1", len(sizes))
	}
}
