package lexer

import (
	"testing"
)

func expectSpan(t *testing.T, tok Token, line, column, start, end int) {
	t.Helper()
	if tok.Span.Line != line || tok.Span.Column != column {
		t.Fatalf("%q: expected %d:%d, got %d:%d", tok.Raw, line, column, tok.Span.Line, tok.Span.Column)
	}
	if tok.Span.Start != start || tok.Span.End != end {
		t.Fatalf("%q: expected offsets %d..%d, got %d..%d", tok.Raw, start, end, tok.Span.Start, tok.Span.End)
	}
}

// TestTokenSpan_Basic tests that tokens have correct span information
func TestTokenSpan_Basic(t *testing.T) {
	l := New(`SELECT x = 10;`, MySQL())

	expectSpan(t, l.NextToken(), 1, 1, 0, 6)   // SELECT
	expectSpan(t, l.NextToken(), 1, 8, 7, 8)   // x
	expectSpan(t, l.NextToken(), 1, 10, 9, 10) // =
	expectSpan(t, l.NextToken(), 1, 12, 11, 13)
	expectSpan(t, l.NextToken(), 1, 14, 13, 14) // ;
	expectSpan(t, l.NextToken(), 1, 15, 14, 14) // EOF
}

// TestTokenSpan_MultiLine tests span tracking across multiple lines
func TestTokenSpan_MultiLine(t *testing.T) {
	l := New("SELECT\n  a\n\nFROM t", MySQL())

	expectSpan(t, l.NextToken(), 1, 1, 0, 6)
	expectSpan(t, l.NextToken(), 2, 3, 9, 10)
	expectSpan(t, l.NextToken(), 4, 1, 12, 16)
	expectSpan(t, l.NextToken(), 4, 6, 17, 18)
}

func TestTokenSpan_RuneOffsets(t *testing.T) {
	l := New(`SELECT 'héllo', ü`, MySQL())

	l.NextToken()
	expectSpan(t, l.NextToken(), 1, 8, 7, 14) // 'héllo' is 7 runes
	expectSpan(t, l.NextToken(), 1, 15, 14, 15)
	expectSpan(t, l.NextToken(), 1, 17, 16, 17)
}

func TestTokenSpan_AfterComments(t *testing.T) {
	l := New("/* c */ SELECT -- x\n 1", MySQL())

	expectSpan(t, l.NextToken(), 1, 9, 8, 14)
	expectSpan(t, l.NextToken(), 2, 2, 21, 22)
}

func TestTokenRawVsDecoded_String(t *testing.T) {
	tok := New(`'a''b'`, MySQL()).NextToken()

	if tok.Raw != `'a''b'` {
		t.Fatalf("expected raw to keep quotes, got %q", tok.Raw)
	}
	if tok.Value != `a'b` {
		t.Fatalf("expected decoded value, got %q", tok.Value)
	}
}

func TestTokenRawVsDecoded_NoBackslashEscapes(t *testing.T) {
	d := MySQL()
	d.BackslashEscapes = false

	tok := New(`'a\nb'`, d).NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %q", tok.Type)
	}
	if tok.Value != `a\nb` {
		t.Fatalf("expected backslash to be kept, got %q", tok.Value)
	}
}

func TestTokenRawVsDecoded_Keyword(t *testing.T) {
	tok := New(`select`, MySQL()).NextToken()

	if tok.Raw != "select" {
		t.Fatalf("expected raw spelling, got %q", tok.Raw)
	}
	if tok.Value != "SELECT" {
		t.Fatalf("expected upper-cased value, got %q", tok.Value)
	}
}

func TestToken_IsWord(t *testing.T) {
	toks, _ := Tokenize("engine Engine `engine` SELECT", MySQL())

	if !toks[0].IsWord("ENGINE") || !toks[1].IsWord("engine") {
		t.Fatalf("expected unquoted identifiers to match case-insensitively")
	}
	if toks[2].IsWord("ENGINE") {
		t.Fatalf("quoted identifier should not match")
	}
	if toks[3].IsWord("SELECT") {
		t.Fatalf("reserved keyword is not a contextual word")
	}
}

func TestToken_Describe(t *testing.T) {
	toks, _ := Tokenize("FROM foo 'bar' ) ", MySQL())

	want := []string{"keyword FROM", "identifier foo", "string 'bar'", "')'", "end of input"}
	for i, w := range want {
		if got := toks[i].Describe(); got != w {
			t.Fatalf("token %d: expected %q, got %q", i, w, got)
		}
	}
}
