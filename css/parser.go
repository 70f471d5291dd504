package css

import (
	"bytes"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Combinator tells how nested rule selector relates to the selector of the
// node owning custom CSS.
type Combinator int

const (
	// CombinatorRoot - declarations apply to the node itself.
	CombinatorRoot Combinator = iota
	// CombinatorCompound - "&.foo", "&:hover": suffix is glued to the selector.
	CombinatorCompound
	// CombinatorDescendant - "& .foo", "& > p": suffix is scoped under the selector.
	CombinatorDescendant
)

// NestedRule is a single fragment of custom CSS attached to a node.
type NestedRule struct {
	Combinator   Combinator
	Suffix       string
	Pseudo       string // pseudo-element moved out of :where()
	Declarations string
}

var pseudoElementRe = regexp.MustCompile(`[>+~\s]*::[a-zA-Z-]+`)

// ParseNested splits custom CSS of a node on "&" nesting markers. Text before
// the first marker or outside of any block is applied to the node itself.
// Malformed fragments are skipped.
func ParseNested(text string) []NestedRule {
	l := css.NewLexer(parse.NewInput(bytes.NewBufferString(text)))

	var (
		out   []NestedRule
		part  strings.Builder // text of current fragment
		sel   string
		depth int
		inSel bool
		bad   bool
	)
	flush := func() {
		body := strings.TrimSpace(part.String())
		part.Reset()
		switch {
		case bad:
		case inSel:
			// selector without block
		case sel == "" && body != "":
			out = append(out, NestedRule{Combinator: CombinatorRoot, Declarations: body})
		}
		bad = false
	}

	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		switch {
		case tt == css.CommentToken:
			continue
		case tt == css.DelimToken && data[0] == '&' && depth == 0:
			flush()
			inSel, sel = true, ""
			continue
		case tt == css.LeftBraceToken:
			depth++
			if depth == 1 && inSel {
				sel = part.String()
				part.Reset()
				inSel = false
				continue
			}
			bad = true
		case tt == css.RightBraceToken:
			depth--
			if depth < 0 {
				depth, bad = 0, true
				continue
			}
			if depth == 0 && sel != "" {
				if !bad {
					out = append(out, nestedRule(sel, strings.TrimSpace(part.String())))
				}
				part.Reset()
				sel, bad = "", false
				continue
			}
		}
		part.Write(data)
	}
	if depth == 0 {
		flush()
	}
	return out
}

func nestedRule(sel, body string) NestedRule {
	r := NestedRule{Combinator: CombinatorCompound, Declarations: body}
	if m := pseudoElementRe.FindString(sel); m != "" {
		r.Pseudo = m
		sel = strings.Replace(sel, m, "", 1)
	}
	if strings.HasPrefix(sel, " ") || strings.HasPrefix(sel, "\t") || strings.HasPrefix(sel, "\n") {
		r.Combinator = CombinatorDescendant
	}
	r.Suffix = strings.TrimSpace(sel)
	return r
}

// Selector returns final selector of the rule for the owner selector.
func (r NestedRule) Selector(owner string) string {
	switch r.Combinator {
	case CombinatorDescendant:
		return Where(ScopeSelector(owner, r.Suffix)) + r.Pseudo
	case CombinatorCompound:
		return Where(AppendToSelector(owner, r.Suffix)) + r.Pseudo
	}
	return Where(owner)
}

// Render returns complete rule text for owner selector.
func (r NestedRule) Render(owner string) string {
	return r.Selector(owner) + "{" + r.Declarations + "}"
}

// ProcessNested renders all nested rules of custom CSS for owner selector.
func ProcessNested(owner, text string) string {
	var sb strings.Builder
	for _, r := range ParseNested(text) {
		if r.Declarations == "" {
			continue
		}
		sb.WriteString(r.Render(owner))
	}
	return sb.String()
}
