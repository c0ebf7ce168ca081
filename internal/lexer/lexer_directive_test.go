package lexer

import (
	"testing"
)

func TestNextToken_DelimiterDirective(t *testing.T) {
	input := "DELIMITER $$\n" +
		"SELECT a$$\n" +
		"  delimiter ;\n" +
		"SELECT 1;"

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{DELIMITER, "$$"},
		{SELECT, "SELECT"},
		{IDENT, "a"},
		{SEMICOLON, "$$"},
		{DELIMITER, ";"},
		{SELECT, "SELECT"},
		{INT, "1"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_SemicolonStillTerminatesUnderCustomDelimiter(t *testing.T) {
	input := "DELIMITER //\nSELECT 1; SELECT 2//"

	assertTokens(t, New(input, MySQL()), []expectedToken{
		{DELIMITER, "//"},
		{SELECT, "SELECT"},
		{INT, "1"},
		{SEMICOLON, ";"},
		{SELECT, "SELECT"},
		{INT, "2"},
		{SEMICOLON, "//"},
		{EOF, ""},
	})
}

func TestNextToken_DelimiterWordOutsideDirectivePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect Dialect
		want    []expectedToken
	}{
		{
			name:    "inside a statement",
			input:   "SELECT\ndelimiter FROM t",
			dialect: MySQL(),
			want:    []expectedToken{{SELECT, "SELECT"}, {IDENT, "delimiter"}, {FROM, "FROM"}, {IDENT, "t"}, {EOF, ""}},
		},
		{
			name:    "after a token on the same line",
			input:   "SELECT 1; delimiter x",
			dialect: MySQL(),
			want:    []expectedToken{{SELECT, "SELECT"}, {INT, "1"}, {SEMICOLON, ";"}, {IDENT, "delimiter"}, {IDENT, "x"}, {EOF, ""}},
		},
		{
			name:    "longer word",
			input:   "delimiters x",
			dialect: MySQL(),
			want:    []expectedToken{{IDENT, "delimiters"}, {IDENT, "x"}, {EOF, ""}},
		},
		{
			name:    "ansi",
			input:   "delimiter x",
			dialect: ANSI(),
			want:    []expectedToken{{IDENT, "delimiter"}, {IDENT, "x"}, {EOF, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, New(tt.input, tt.dialect), tt.want)
		})
	}
}

func TestLexerErrors_MissingDelimiter(t *testing.T) {
	l := New("DELIMITER\nSELECT 1", MySQL())

	assertTokens(t, l, []expectedToken{
		{ILLEGAL, ""},
		{SELECT, "SELECT"},
		{INT, "1"},
		{EOF, ""},
	})

	err := singleError(t, l)
	if err.Kind != ErrMissingDelimiter {
		t.Fatalf("expected missing delimiter error, got %v", err.Kind)
	}
	if got := err.ToDiagnostic().Code; got != "LEX_MISSING_DELIMITER" {
		t.Fatalf("unexpected code %q", got)
	}
}

func TestComments_AreRecordedInOrder(t *testing.T) {
	input := "-- lead\n" +
		"SELECT 1; /* tail */\n" +
		"# hash\n" +
		"/*!40101 SELECT 2 */;"

	l := New(input, MySQL())
	for l.NextToken().Type != EOF {
	}

	comments := l.Comments()
	if len(comments) != 4 {
		t.Fatalf("expected 4 comments, got %d: %+v", len(comments), comments)
	}

	want := []struct {
		text       string
		trailing   bool
		executable bool
	}{
		{"-- lead", false, false},
		{"/* tail */", true, false},
		{"# hash", false, false},
		{"/*!40101 SELECT 2 */", true, true},
	}
	for i, w := range want {
		c := comments[i]
		if c.Text != w.text || c.Trailing != w.trailing || c.Executable != w.executable {
			t.Errorf("comment %d: got %+v, want %+v", i, c, w)
		}
	}
	if comments[1].Span.Line != 2 || comments[1].Span.Column != 11 {
		t.Errorf("unexpected position %d:%d for %q", comments[1].Span.Line, comments[1].Span.Column, comments[1].Text)
	}
}
