package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatterRendersSourceExcerpt(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.AddSource("query.sql", "SELECT 1;\nSELECT 1 + );\n")

	f.Format(Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeSyntaxUnexpectedToken,
		Message:  "expected expression, found ')'",
		Span:     Span{Filename: "query.sql", Line: 2, Column: 12, Start: 21, End: 22},
		Help:     "remove the stray ')'",
	})

	want := strings.Join([]string{
		"error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found ')'",
		"  --> query.sql:2:12",
		"   |",
		" 2 | SELECT 1 + );",
		"   |            ^",
		"help: remove the stray ')'",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatterFallsBackWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Format(Diagnostic{
		Severity: SeverityError,
		Code:     CodeLexIllegalChar,
		Message:  `illegal character "$"`,
		Span:     Span{Line: 1, Column: 3, Start: 2, End: 3},
	})

	want := "error[LEX_ILLEGAL_CHAR]: illegal character \"$\"\n  --> 1:3\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
}

func TestUnderlineClipsToLine(t *testing.T) {
	got := underline("abc", Span{Column: 2, Start: 1, End: 40})
	if got != " ^^" {
		t.Fatalf("expected clipped underline, got %q", got)
	}
}
