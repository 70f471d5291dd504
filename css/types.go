// Package css is the output side of the compiler: rules and declarations,
// compact writer, selector composition and a small tokenizer based parser for
// nested custom CSS.
package css

import (
	"io"
	"slices"
	"strings"
)

// cssEscapeSingleQuoted escapes a string for use inside CSS single quotes.
func cssEscapeSingleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URL returns url() value with quoted argument.
func URL(s string) string {
	return "url('" + cssEscapeSingleQuoted(s) + "')"
}

// Declaration is a single property with its value.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important;"
	}
	return d.Property + ": " + d.Value + ";"
}

// Declarations keeps properties of one rule.
type Declarations []Declaration

// Set adds declaration replacing the one with the same property.
func (ds *Declarations) Set(property, value string) {
	for i := range *ds {
		if (*ds)[i].Property == property {
			(*ds)[i].Value = value
			return
		}
	}
	*ds = append(*ds, Declaration{Property: property, Value: value})
}

// Get returns value of property.
func (ds Declarations) Get(property string) (string, bool) {
	for _, d := range ds {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Sorted returns copy of declarations ordered by property name.
func (ds Declarations) Sorted() Declarations {
	out := slices.Clone(ds)
	slices.SortStableFunc(out, func(a, b Declaration) int {
		return strings.Compare(a.Property, b.Property)
	})
	return out
}

// Rule is a selector with declarations. Raw rules carry text which is
// written verbatim.
type Rule struct {
	Selector     string
	Declarations Declarations
	Raw          string
}

// Empty reports whether rule would produce no output.
func (r Rule) Empty() bool {
	return len(r.Declarations) == 0 && r.Raw == ""
}

// WriteTo writes rule in compact form: selector{name: value;name: value;}.
// Declarations are written in the order they are stored.
func (r Rule) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	r.write(&sb)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (r Rule) write(sb *strings.Builder) {
	if r.Raw != "" {
		sb.WriteString(r.Raw)
		return
	}
	if len(r.Declarations) == 0 {
		return
	}
	sb.WriteString(r.Selector)
	sb.WriteByte('{')
	for _, d := range r.Declarations {
		sb.WriteString(d.String())
	}
	sb.WriteByte('}')
}

func (r Rule) String() string {
	var sb strings.Builder
	r.write(&sb)
	return sb.String()
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Add appends rule with declarations sorted by property, empty rules are
// ignored.
func (s *Stylesheet) Add(selector string, decls Declarations) {
	if len(decls) == 0 {
		return
	}
	s.Rules = append(s.Rules, Rule{Selector: selector, Declarations: decls.Sorted()})
}

// AddOrdered appends rule keeping declaration order.
func (s *Stylesheet) AddOrdered(selector string, decls Declarations) {
	if len(decls) == 0 {
		return
	}
	s.Rules = append(s.Rules, Rule{Selector: selector, Declarations: decls})
}

// AddRaw appends verbatim text.
func (s *Stylesheet) AddRaw(text string) {
	if text == "" {
		return
	}
	s.Rules = append(s.Rules, Rule{Raw: text})
}

// Append adds all rules of other.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Rules = append(s.Rules, other.Rules...)
}

// WriteTo writes the stylesheet to w in order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	for _, r := range s.Rules {
		r.write(&sb)
	}
	return sb.String()
}
