package resolve

import (
	"strings"
	"testing"

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

func encode(t *testing.T, v tree.Value) string {
	t.Helper()
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	return string(data)
}

func TestResolve_References(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "direct",
			in:   `{"a":"red","b":{"ref":"a"}}`,
			want: `{"a":"red","b":"red"}`,
		},
		{
			name: "chain",
			in:   `{"a":{"ref":"b"},"b":{"ref":"c"},"c":"1px"}`,
			want: `{"a":"1px","b":"1px","c":"1px"}`,
		},
		{
			name: "cycle",
			in:   `{"a":{"ref":"b"},"b":{"ref":"c"},"c":{"ref":"a"}}`,
			want: `{"a":{"ref":"b"},"b":{"ref":"c"},"c":{"ref":"a"}}`,
		},
		{
			name: "self",
			in:   `{"x":{"y":{"ref":"x.y"}}}`,
			want: `{"x":{"y":{"ref":"x.y"}}}`,
		},
		{
			name: "missing",
			in:   `{"a":{"ref":"styles.nothing"},"n":null,"b":{"ref":"n"}}`,
			want: `{"a":{"ref":"styles.nothing"},"n":null,"b":{"ref":"n"}}`,
		},
		{
			name: "object target",
			in:   `{"styles":{"blocks":{"core/cover":{"background":{"backgroundImage":{"url":"a.jpg"}}},"core/group":{"background":{"backgroundImage":{"ref":"styles.blocks.core/cover.background.backgroundImage"}}}}}}`,
			want: `{"styles":{"blocks":{"core/cover":{"background":{"backgroundImage":{"url":"a.jpg"}}},"core/group":{"background":{"backgroundImage":{"url":"a.jpg"}}}}}}`,
		},
		{
			name: "target containing reference back",
			in:   `{"a":{"ref":"c"},"c":{"x":{"ref":"a"},"y":1}}`,
			want: `{"a":{"x":{"ref":"a"},"y":1},"c":{"x":{"ref":"a"},"y":1}}`,
		},
		{
			name: "target with token",
			in:   `{"a":"var:preset|color|grey","b":{"ref":"a"}}`,
			want: `{"a":"var(--wp--preset--color--grey)","b":"var(--wp--preset--color--grey)"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decode(t, tt.in)
			before := encode(t, in)
			if got := encode(t, Resolve(in)); got != tt.want {
				t.Errorf("Resolve() =\n%s\nwant\n%s", got, tt.want)
			}
			if encode(t, in) != before {
				t.Error("Resolve() modified its input")
			}
		})
	}
}

func TestResolve_LongCycle(t *testing.T) {
	const n = 50
	m := tree.NewMap()
	for i := 0; i < n; i++ {
		next := tree.FormatNumber(float64((i + 1) % n))
		m.Set("k"+tree.FormatNumber(float64(i)), tree.Ref("k"+next))
	}
	in := tree.Object(m)
	if got := Resolve(in); !tree.Equal(got, in) {
		t.Errorf("cycle members must stay unresolved: %s", encode(t, got))
	}
}

func TestResolveAgainst(t *testing.T) {
	sanitized := decode(t, `{"styles":{"color":{"text":{"ref":"styles.color.background"}}}}`)
	merged := decode(t, `{"styles":{"color":{"text":{"ref":"styles.color.background"},"background":"#fff"}}}`)

	got := encode(t, ResolveAgainst(sanitized, merged))
	if got != `{"styles":{"color":{"text":"#fff"}}}` {
		t.Errorf("ResolveAgainst() = %s", got)
	}
	if got := encode(t, Resolve(sanitized)); got != `{"styles":{"color":{"text":{"ref":"styles.color.background"}}}}` {
		t.Errorf("Resolve() = %s", got)
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		ns, in, want string
	}{
		{"wp", "var:preset|color|grey", "var(--wp--preset--color--grey)"},
		{"wp", "var:preset|font-size|x_large", "var(--wp--preset--font-size--x-large)"},
		{"wp", "var:custom|lineHeight|body", "var(--wp--custom--line-height--body)"},
		{"acme", "var:preset|spacing|40 var:preset|spacing|50", "var(--acme--preset--spacing--40) var(--acme--preset--spacing--50)"},
		{"wp", "1px solid var:preset|color|Primary", "1px solid var(--wp--preset--color--primary)"},
		{"wp", "var:preset", "var:preset"},
		{"wp", "var(--x)", "var(--x)"},
	}
	for _, tt := range tests {
		if got := New(tt.ns).Tokens(tt.in); got != tt.want {
			t.Errorf("Tokens(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_TokensInLists(t *testing.T) {
	in := decode(t, `{"settings":{"color":{"duotone":{"theme":[{"slug":"d","colors":["var:preset|color|a","#fff"]}]}}}}`)
	got := encode(t, New("acme").Resolve(in))
	want := `{"settings":{"color":{"duotone":{"theme":[{"slug":"d","colors":["var(--acme--preset--color--a)","#fff"]}]}}}}`
	if got != want {
		t.Errorf("Resolve() =\n%s\nwant\n%s", got, want)
	}
}
