package diag_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

func TestFromLexerError(t *testing.T) {
	err := lexer.LexerError{
		Kind:    lexer.ErrUnterminatedString,
		Message: "unterminated string literal",
		Span: lexer.Span{
			Line:   1,
			Column: 3,
			Start:  2,
			End:    6,
		},
	}

	diagnostic := err.ToDiagnostic()

	if diagnostic.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, diagnostic.Stage)
	}
	if diagnostic.Code != diag.CodeLexUnterminatedString {
		t.Fatalf("expected code %q, got %q", diag.CodeLexUnterminatedString, diagnostic.Code)
	}
	if diagnostic.Message != err.Message {
		t.Fatalf("expected message %q, got %q", err.Message, diagnostic.Message)
	}
	if diagnostic.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, diagnostic.Severity)
	}

	wantSpan := diag.Span{
		Line:   err.Span.Line,
		Column: err.Span.Column,
		Start:  err.Span.Start,
		End:    err.Span.End,
	}
	if diagnostic.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, diagnostic.Span)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeSyntaxUnexpectedToken,
		Message:  "expected expression, found ')'",
		Span:     diag.Span{Filename: "q.sql", Line: 3, Column: 7},
	}

	want := "q.sql:3:7: error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found ')'"
	if got := d.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDiagnosticWithHelpAndNotesDoNotAlias(t *testing.T) {
	base := diag.Diagnostic{Severity: diag.SeverityError, Message: "boom"}
	withHelp := base.WithHelp("try this").WithNote("first")

	if base.Help != "" || len(base.Notes) != 0 {
		t.Fatalf("expected original diagnostic to be unchanged, got %+v", base)
	}
	if withHelp.Help != "try this" || len(withHelp.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", withHelp)
	}
	if !withHelp.IsError() {
		t.Fatalf("expected error severity")
	}
}

func TestDiagnosticJSON(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeRecursionLimitExceeded,
		Message:  "expression nested too deeply",
		Span:     diag.Span{Line: 1, Column: 1, Start: 0, End: 1},
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"stage":"parser"`,
		`"code":"RECURSION_LIMIT_EXCEEDED"`,
		`"span":{"line":1,"column":1,"start":0,"end":1}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "help") || strings.Contains(out, "filename") {
		t.Fatalf("expected empty optional fields to be omitted: %s", out)
	}
}
