package parser

import (
	"testing"

	"github.com/sqlfront/sqlfront/internal/lexer"
)

func TestParseDelimited_AllowsEmpty(t *testing.T) {
	p := New("()")

	if p.curTok.Type != lexer.LPAREN {
		t.Fatalf("expected initial token '(', got %s", p.curTok.Type)
	}

	// Advance into the list body, leaving curTok on either the first element or the closing token.
	p.nextToken()

	cfg := delimitedConfig{
		Closing:    lexer.RPAREN,
		Separator:  lexer.COMMA,
		AllowEmpty: true,
	}

	res, ok := parseDelimited[string](p, cfg, func(int) (string, bool) {
		t.Fatalf("unexpected element parse invocation for empty list")
		return "", false
	})

	if !ok {
		t.Fatalf("expected success for empty list, got parse failure")
	}

	if len(res.Items) != 0 {
		t.Fatalf("expected zero elements, got %d", len(res.Items))
	}

	if p.curTok.Type != lexer.RPAREN {
		t.Fatalf("expected parser to remain on closing token, got %s", p.curTok.Type)
	}
}

func TestParseDelimited_RejectsEmptyWhenDisallowed(t *testing.T) {
	p := New("()")
	p.nextToken()

	_, ok := parseDelimited[string](p, delimitedConfig{Closing: lexer.RPAREN, What: "column name"}, parseIdentLiteral(p))
	if ok {
		t.Fatalf("expected failure for empty list")
	}

	diags := p.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "expected column name, found ')'" {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestParseDelimited_ParsesMultipleElements(t *testing.T) {
	p := New("(foo, bar, baz)")

	// Consume '('
	p.nextToken()

	cfg := delimitedConfig{
		Closing:   lexer.RPAREN,
		Separator: lexer.COMMA,
	}

	res, ok := parseDelimited[string](p, cfg, parseIdentLiteral(p))
	if !ok {
		t.Fatalf("expected multi-element parse to succeed")
	}

	want := []string{"foo", "bar", "baz"}
	if len(res.Items) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(res.Items))
	}
	for i, v := range want {
		if res.Items[i] != v {
			t.Fatalf("expected element %d to be %q, got %q", i, v, res.Items[i])
		}
	}
}

func TestParseDelimited_RejectsTrailingComma(t *testing.T) {
	p := New("(foo,)")
	p.nextToken()

	res, ok := parseDelimited[string](p, delimitedConfig{Closing: lexer.RPAREN}, parseIdentLiteral(p))
	if ok {
		t.Fatalf("expected parse failure for trailing comma, got success with %#v", res)
	}

	diags := p.Diagnostics()
	if len(diags) == 0 {
		t.Fatalf("expected parser to record an error for trailing comma")
	}
	if diags[0].Message != "expected identifier, found ')'" {
		t.Fatalf("unexpected message %q", diags[0].Message)
	}
}

func TestParseDelimited_MissingSeparator(t *testing.T) {
	p := New("(foo bar)")

	// Consume '('
	p.nextToken()

	_, ok := parseDelimited[string](p, delimitedConfig{Closing: lexer.RPAREN}, parseIdentLiteral(p))
	if ok {
		t.Fatalf("expected parse failure when separator is missing")
	}

	diags := p.Diagnostics()
	if len(diags) == 0 {
		t.Fatalf("expected parser to record an error for missing separator")
	}

	if diags[0].Message != "expected ',' or ')', found identifier bar" {
		t.Fatalf("expected missing separator error message, got %q", diags[0].Message)
	}
}

func TestParseCommaList(t *testing.T) {
	p := New("a, b, c FROM")

	items, ok := parseCommaList(p, func() (string, bool) {
		return parseIdentLiteral(p)(0)
	})
	if !ok || len(items) != 3 {
		t.Fatalf("expected 3 items, got %v (ok=%v)", items, ok)
	}
	if p.curTok.Value != "c" || !p.peekIs(lexer.FROM) {
		t.Fatalf("expected to stop on the last item, cur=%q peek=%q", p.curTok.Value, p.peekTok.Type)
	}
}

func parseIdentLiteral(p *Parser) func(int) (string, bool) {
	return func(_ int) (string, bool) {
		if p.curTok.Type != lexer.IDENT {
			p.reportExpected("identifier", p.curTok)
			return "", false
		}

		return p.curTok.Value, true
	}
}
