package lexer

import (
	"testing"
)

type expectedToken struct {
	expectedType  TokenType
	expectedValue string
}

func assertTokens(t *testing.T, l *Lexer, tests []expectedToken) {
	t.Helper()

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (raw %q)",
				i, tt.expectedType, tok.Type, tok.Raw)
		}

		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestNextToken_Basic(t *testing.T) {
	input := `SELECT a, b FROM t WHERE id = 10;`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{SELECT, "SELECT"},
		{IDENT, "a"},
		{COMMA, ","},
		{IDENT, "b"},
		{FROM, "FROM"},
		{IDENT, "t"},
		{WHERE, "WHERE"},
		{IDENT, "id"},
		{EQ, "="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_KeywordsAreCaseInsensitive(t *testing.T) {
	input := `select Distinct fRoM`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{SELECT, "SELECT"},
		{DISTINCT, "DISTINCT"},
		{FROM, "FROM"},
		{EOF, ""},
	})
}

func TestNextToken_Operators(t *testing.T) {
	input := `= <=> <> != < > <= >= + - * / % & && | || ^ ~ ! << >> . ( ) , ;`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{EQ, "="},
		{NULL_SAFE_EQ, "<=>"},
		{NOT_EQ, "<>"},
		{NOT_EQ, "!="},
		{LT, "<"},
		{GT, ">"},
		{LE, "<="},
		{GE, ">="},
		{PLUS, "+"},
		{MINUS, "-"},
		{ASTERISK, "*"},
		{SLASH, "/"},
		{PERCENT, "%"},
		{AMPERSAND, "&"},
		{LOGICAL_AND, "&&"},
		{PIPE, "|"},
		{PIPES, "||"},
		{CARET, "^"},
		{TILDE, "~"},
		{BANG, "!"},
		{SHL, "<<"},
		{SHR, ">>"},
		{DOT, "."},
		{LPAREN, "("},
		{RPAREN, ")"},
		{COMMA, ","},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_Numbers(t *testing.T) {
	input := `42 3.14 .5 1. 1e9 2.5E-3 0x1F X'0a' 0b101 b'11' 1st`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{INT, "42"},
		{FLOAT, "3.14"},
		{FLOAT, ".5"},
		{FLOAT, "1."},
		{FLOAT, "1e9"},
		{FLOAT, "2.5E-3"},
		{HEX, "0x1F"},
		{HEX, "X'0a'"},
		{BIT, "0b101"},
		{BIT, "b'11'"},
		{IDENT, "1st"},
		{EOF, ""},
	})
}

func TestNextToken_QualifiedNameIsNotANumber(t *testing.T) {
	input := `t1.col`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{IDENT, "t1"},
		{DOT, "."},
		{IDENT, "col"},
		{EOF, ""},
	})
}

func TestNextToken_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"single quotes", `'hello'`, "hello"},
		{"double quotes", `"hello"`, "hello"},
		{"doubled quote", `'it''s'`, "it's"},
		{"backslash quote", `'it\'s'`, "it's"},
		{"newline escape", `'a\nb'`, "a\nb"},
		{"tab escape", `'a\tb'`, "a\tb"},
		{"nul escape", `'\0'`, "\x00"},
		{"ctrl-z escape", `'\Z'`, "\x1a"},
		{"backslash", `'a\\b'`, `a\b`},
		{"like wildcard escapes keep backslash", `'50\%'`, `50\%`},
		{"unknown escape drops backslash", `'\q'`, "q"},
		{"embedded newline", "'a\nb'", "a\nb"},
		{"other quote inside", `'say "hi"'`, `say "hi"`},
		{"empty", `''`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input, MySQL())
			tok := l.NextToken()
			if tok.Type != STRING {
				t.Fatalf("expected STRING, got %q", tok.Type)
			}
			if tok.Value != tt.value {
				t.Fatalf("expected value %q, got %q", tt.value, tok.Value)
			}
			if tok.Raw != tt.input {
				t.Fatalf("expected raw %q, got %q", tt.input, tok.Raw)
			}
			if len(l.Errors()) != 0 {
				t.Fatalf("unexpected lexer errors: %v", l.Errors())
			}
		})
	}
}

func TestNextToken_QuotedIdentifiers(t *testing.T) {
	input := "`order` `we``ird` `a b`"

	l := New(input, MySQL())
	assertTokens(t, l, []expectedToken{
		{IDENT, "order"},
		{IDENT, "we`ird"},
		{IDENT, "a b"},
		{EOF, ""},
	})
}

func TestQuotedIdentifierIsNotAKeyword(t *testing.T) {
	tok := New("`select`", MySQL()).NextToken()
	if tok.Type != IDENT || tok.Kind != KindIdent {
		t.Fatalf("expected quoted keyword to lex as identifier, got %q/%v", tok.Type, tok.Kind)
	}
	if !tok.Quoted() {
		t.Fatalf("expected token to report Quoted")
	}
	if tok.IsWord("select") {
		t.Fatalf("quoted identifiers must not match contextual words")
	}
}

func TestNextToken_Parameters(t *testing.T) {
	input := `? @id @id_$123 @'my var' @@sql_mode @@session.autocommit`

	l := New(input, MySQL())
	assertTokens(t, l, []expectedToken{
		{PARAM, "?"},
		{VARIABLE, "id"},
		{VARIABLE, "id_$123"},
		{VARIABLE, "my var"},
		{SYSVAR, "sql_mode"},
		{SYSVAR, "session.autocommit"},
		{EOF, ""},
	})
}

func TestNextToken_CommentsAreSkipped(t *testing.T) {
	input := "SELECT -- trailing comment\n" +
		"# hash comment\n" +
		"/* block\n comment */ 1 --\n" +
		"FROM t"

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{SELECT, "SELECT"},
		{INT, "1"},
		{FROM, "FROM"},
		{IDENT, "t"},
		{EOF, ""},
	})
}

func TestNextToken_DoubleDashNeedsWhitespace(t *testing.T) {
	input := `5--3`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{INT, "5"},
		{MINUS, "-"},
		{MINUS, "-"},
		{INT, "3"},
		{EOF, ""},
	})
}

func TestNextToken_ExecutableComment(t *testing.T) {
	input := `CREATE TABLE t (a INT) /*!50100 ENGINE=InnoDB */;`

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{CREATE, "CREATE"},
		{TABLE, "TABLE"},
		{IDENT, "t"},
		{LPAREN, "("},
		{IDENT, "a"},
		{IDENT, "INT"},
		{RPAREN, ")"},
		{IDENT, "ENGINE"},
		{EQ, "="},
		{IDENT, "InnoDB"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_EOFIsSticky(t *testing.T) {
	l := New("x", MySQL())
	l.NextToken()

	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("call %d: expected EOF, got %q", i, tok.Type)
		}
	}
}

func TestTokenKinds(t *testing.T) {
	toks, errs := Tokenize(`SELECT x, 'a', 1, ?, + ;`, MySQL())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []Kind{
		KindKeyword, KindIdent, KindPunct, KindString, KindPunct,
		KindNumber, KindPunct, KindParam, KindPunct, KindOperator, KindPunct, KindEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d (%q) - expected kind %v, got %v", i, toks[i].Raw, k, toks[i].Kind)
		}
	}
}
