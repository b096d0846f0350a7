package render_test

import (
	"encoding/base64"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type cssDecl struct {
	Property string
	Value    string
}

type cssRule struct {
	Selector string
	Decls    []cssDecl
}

func (r cssRule) value(property string) (string, bool) {
	for _, d := range r.Decls {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// parseRules runs a stylesheet through a real CSS parser and returns its
// top-level rules, failing the test on any syntax error.
func parseRules(t *testing.T, stylesheet string) []cssRule {
	t.Helper()
	p := css.NewParser(parse.NewInputString(stylesheet), false)

	var rules []cssRule
	var current *cssRule
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				require.Nil(t, current, "unterminated rule")
				return rules
			}
			require.NoError(t, p.Err())
			return rules
		case css.BeginRulesetGrammar:
			require.Nil(t, current, "nested rule")
			current = &cssRule{Selector: joinValues(p.Values())}
		case css.EndRulesetGrammar:
			require.NotNil(t, current)
			rules = append(rules, *current)
			current = nil
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			require.NotNil(t, current, "declaration outside rule")
			current.Decls = append(current.Decls, cssDecl{
				Property: string(data),
				Value:    joinValues(p.Values()),
			})
		}
	}
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.Write(tok.Data)
	}
	return strings.TrimSpace(b.String())
}

var dataURIPayload = regexp.MustCompile(`data:image/svg\+xml;base64,([A-Za-z0-9+/=]+)`)

func decodePayload(t *testing.T, value string) string {
	t.Helper()
	m := dataURIPayload.FindStringSubmatch(value)
	require.Len(t, m, 2, "no data URI in %q", value)
	raw, err := base64.StdEncoding.DecodeString(m[1])
	require.NoError(t, err)
	return string(raw)
}
