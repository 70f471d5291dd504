package css

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnsafeValue is returned by Scan for values which cannot be safely
// placed into a declaration.
var ErrUnsafeValue = errors.New("unsafe css value")

// forbidden functions
var badFunctions = map[string]bool{
	"expression(": true,
	"javascript(": true,
	"element(":    true,
}

// Scan tokenizes property value and makes sure it cannot break out of a
// declaration or inject markup. It returns payloads of all url() functions
// found so caller could decide whether to trust them.
func Scan(value string) ([]string, error) {
	if strings.ContainsAny(value, "<>\\\x00") {
		return nil, fmt.Errorf("%w: markup or escapes are not allowed", ErrUnsafeValue)
	}
	l := css.NewLexer(parse.NewInput(bytes.NewBufferString(value)))

	var (
		urls    []string
		depth   int
		wantURL bool // previous token was url( function
	)
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if wantURL && tt != css.WhitespaceToken {
			if tt != css.StringToken {
				return nil, fmt.Errorf("%w: malformed url", ErrUnsafeValue)
			}
			urls = append(urls, unquote(string(data)))
			wantURL = false
			continue
		}
		switch tt {
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken,
			css.AtKeywordToken, css.BadStringToken, css.BadURLToken,
			css.CDOToken, css.CDCToken:
			return nil, fmt.Errorf("%w: unexpected %s", ErrUnsafeValue, tt)
		case css.DelimToken:
			switch data[0] {
			case '<', '>', '!', '@', '\\', '`':
				return nil, fmt.Errorf("%w: unexpected %q", ErrUnsafeValue, data)
			}
		case css.FunctionToken:
			name := strings.ToLower(string(data))
			if badFunctions[name] {
				return nil, fmt.Errorf("%w: function %s", ErrUnsafeValue, data)
			}
			depth++
			wantURL = name == "url("
		case css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses", ErrUnsafeValue)
			}
		case css.URLToken:
			urls = append(urls, urlPayload(string(data)))
		}
	}
	if wantURL {
		return nil, fmt.Errorf("%w: malformed url", ErrUnsafeValue)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced parentheses", ErrUnsafeValue)
	}
	return urls, nil
}

// urlPayload extracts argument of url token: url( "x" ) -> x.
func urlPayload(tok string) string {
	s := tok
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ")")
	return unquote(strings.TrimSpace(s))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
