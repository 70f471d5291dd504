package css

import (
	"strings"
)

// SplitSelectorList splits selector list on top level commas, commas inside
// parentheses and brackets belong to pseudo-class arguments.
func SplitSelectorList(sel string) []string {
	var (
		out   []string
		depth int
		start int
		quote byte
	)
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			if part := strings.TrimSpace(sel[start:i]); part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	if part := strings.TrimSpace(sel[start:]); part != "" {
		out = append(out, part)
	}
	return out
}

// ScopeSelector prefixes every alternative of selector with every
// alternative of scope.
func ScopeSelector(scope, selector string) string {
	scopes := SplitSelectorList(scope)
	if len(scopes) == 0 {
		return strings.TrimSpace(selector)
	}
	sels := SplitSelectorList(selector)
	if len(sels) == 0 {
		return strings.Join(scopes, ", ")
	}
	out := make([]string, 0, len(scopes)*len(sels))
	for _, sc := range scopes {
		for _, s := range sels {
			out = append(out, sc+" "+s)
		}
	}
	return strings.Join(out, ", ")
}

// AppendToSelector appends suffix to every alternative of selector.
func AppendToSelector(selector, suffix string) string {
	sels := SplitSelectorList(selector)
	for i := range sels {
		sels[i] += suffix
	}
	return strings.Join(sels, ", ")
}

// Where wraps selector into zero specificity :root :where().
func Where(selector string) string {
	return ":root :where(" + selector + ")"
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// InsertVariationClass adds .is-style-<variation> class to every alternative
// of block selector. The class goes right after each occurrence of block
// class (including occurrences inside :is(), :where() and friends). When
// block class is not found, it goes after the first compound selector of the
// alternative before any pseudo-class.
func InsertVariationClass(selector, blockClass, variation string) string {
	class := ".is-style-" + variation
	alts := SplitSelectorList(selector)
	if len(alts) == 0 {
		return class
	}
	for i, alt := range alts {
		if pos := classOccurrences(alt, blockClass); len(pos) > 0 {
			var sb strings.Builder
			prev := 0
			for _, p := range pos {
				sb.WriteString(alt[prev:p])
				sb.WriteString(class)
				prev = p
			}
			sb.WriteString(alt[prev:])
			alts[i] = sb.String()
			continue
		}
		p := compoundEnd(alt)
		alts[i] = alt[:p] + class + alt[p:]
	}
	return strings.Join(alts, ", ")
}

// classOccurrences returns positions right after every whole occurrence of
// class in selector.
func classOccurrences(sel, class string) []int {
	if class == "" || !strings.HasPrefix(class, ".") {
		return nil
	}
	var out []int
	for from := 0; from < len(sel); {
		i := strings.Index(sel[from:], class)
		if i < 0 {
			break
		}
		end := from + i + len(class)
		if end == len(sel) || !isIdentByte(sel[end]) {
			out = append(out, end)
		}
		from = end
	}
	return out
}

// compoundEnd finds where class could be inserted in a complex selector: end
// of the leading type, class, id or attribute run. Selectors starting with
// pseudo-class get it after the whole first compound.
func compoundEnd(sel string) int {
	i := 0
	for i < len(sel) {
		c := sel[i]
		switch {
		case isIdentByte(c) || c == '.' || c == '#' || c == '*' || c == '|':
			i++
		case c == '[':
			i = skipGroup(sel, i, '[', ']')
		default:
			if i > 0 {
				return i
			}
			// leading pseudo-class, take complete compound
			for i < len(sel) && sel[i] != ' ' && sel[i] != '>' && sel[i] != '+' && sel[i] != '~' {
				if sel[i] == '(' {
					i = skipGroup(sel, i, '(', ')')
					continue
				}
				i++
			}
			return i
		}
	}
	return i
}

func skipGroup(sel string, i int, open, close byte) int {
	depth := 0
	for ; i < len(sel); i++ {
		switch sel[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}
