package parser_test

import (
	"strings"
	"testing"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
	"github.com/sqlfront/sqlfront/internal/parser"
)

func parseScript(t *testing.T, src string, opts ...parser.Option) (*ast.Script, []diag.Diagnostic) {
	t.Helper()

	script, diags, err := parser.Parse(src, opts...)
	if err != nil {
		t.Fatalf("internal parser error: %v", err)
	}
	if script == nil {
		t.Fatal("expected a script")
	}

	return script, diags
}

func assertNoDiagnostics(t *testing.T, diags []diag.Diagnostic) {
	t.Helper()

	if len(diags) == 0 {
		return
	}

	for _, d := range diags {
		t.Errorf("unexpected diagnostic: %s", d)
	}
	t.Fatalf("parser reported %d diagnostic(s)", len(diags))
}

// parseOne parses src, which must hold exactly one valid statement.
func parseOne(t *testing.T, src string, opts ...parser.Option) ast.Stmt {
	t.Helper()

	script, diags := parseScript(t, src, opts...)
	assertNoDiagnostics(t, diags)

	if len(script.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(script.Stmts))
	}
	return script.Stmts[0]
}

type dumpCase struct {
	src  string
	want string
}

func runDumpCases(t *testing.T, cases []dumpCase, opts ...parser.Option) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			stmt := parseOne(t, tc.src, opts...)
			if got := ast.Dump(stmt); got != tc.want {
				t.Fatalf("dump mismatch\n got: %s\nwant: %s", got, tc.want)
			}
		})
	}
}

// expectSingleDiagnostic parses src and requires exactly one diagnostic
// with the given code whose message contains msg.
func expectSingleDiagnostic(t *testing.T, src string, code diag.Code, msg string, opts ...parser.Option) *ast.Script {
	t.Helper()

	script, diags := parseScript(t, src, opts...)
	if len(diags) != 1 {
		for _, d := range diags {
			t.Logf("diagnostic: %s", d)
		}
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, diags[0].Code, diags[0].Message)
	}
	if !strings.Contains(diags[0].Message, msg) {
		t.Fatalf("expected message containing %q, got %q", msg, diags[0].Message)
	}
	return script
}

func TestParseSimpleSelect(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b FROM t WHERE a > 1;")

	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		t.Fatalf("expected *ast.SelectStmt, got %T", stmt)
	}

	if len(sel.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(sel.Columns))
	}

	table, ok := sel.From.(*ast.TableName)
	if !ok {
		t.Fatalf("expected *ast.TableName in FROM, got %T", sel.From)
	}
	if table.Name.Name != "t" {
		t.Fatalf("expected table t, got %s", table.Name.Name)
	}

	where, ok := sel.Where.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr in WHERE, got %T", sel.Where)
	}
	if where.Op != ast.OpGt {
		t.Fatalf("expected >, got %s", where.Op)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t", ";", ";;;", "-- only a comment\n", "/* block */ ;"} {
		script, diags := parseScript(t, src)
		assertNoDiagnostics(t, diags)
		if len(script.Stmts) != 0 {
			t.Fatalf("%q: expected no statements, got %d", src, len(script.Stmts))
		}
	}
}

func TestParseStatementList(t *testing.T) {
	script, diags := parseScript(t, "SELECT 1; USE shop;; BEGIN; SELECT 2")
	assertNoDiagnostics(t, diags)

	want := []string{
		"(select (columns 1))",
		"(use shop)",
		"(begin)",
		"(select (columns 2))",
	}
	if len(script.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(script.Stmts))
	}
	for i, stmt := range script.Stmts {
		if got := ast.Dump(stmt); got != want[i] {
			t.Fatalf("statement %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestParseScriptSpan(t *testing.T) {
	src := "SELECT 1;\nSELECT 2;\n"
	script, diags := parseScript(t, src)
	assertNoDiagnostics(t, diags)

	span := script.Span()
	if span.Start != 0 || span.End != len(src) || span.Line != 1 || span.Column != 1 {
		t.Fatalf("unexpected script span %+v", span)
	}

	second := script.Stmts[1].Span()
	if second.Line != 2 || second.Column != 1 || second.Start != 10 || second.End != 18 {
		t.Fatalf("unexpected span for second statement: %+v", second)
	}
}

func TestParsePositionalParametersAreNumberedAcrossStatements(t *testing.T) {
	script, diags := parseScript(t, "SELECT ?; SELECT ?, ? FROM t WHERE a = ?")
	assertNoDiagnostics(t, diags)

	got := ast.Dump(script)
	want := "(select (columns ?1))\n(select (columns ?2 ?3) (from t) (where (= a ?4)))"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestParseWithFilenameAttributesDiagnostics(t *testing.T) {
	_, diags := parseScript(t, "SELECT FROM t", parser.WithFilename("query.sql"))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	d := diags[0]
	if d.Span.Filename != "query.sql" {
		t.Fatalf("expected filename query.sql, got %q", d.Span.Filename)
	}
	if d.Stage != diag.StageParser {
		t.Fatalf("expected parser stage, got %s", d.Stage)
	}
	if d.Message != "expected expression, found keyword FROM" {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if d.Span.Line != 1 || d.Span.Column != 8 {
		t.Fatalf("unexpected position %d:%d", d.Span.Line, d.Span.Column)
	}
}

func TestParseDialects(t *testing.T) {
	stmt := parseOne(t, `SELECT "a" || 'b' FROM t`)
	if got, want := ast.Dump(stmt), "(select (columns (OR 'a' 'b')) (from t))"; got != want {
		t.Fatalf("mysql: got %s, want %s", got, want)
	}

	stmt = parseOne(t, `SELECT "a" || 'b' FROM t`, parser.WithDialect(lexer.ANSI()))
	if got, want := ast.Dump(stmt), "(select (columns (|| a 'b')) (from t))"; got != want {
		t.Fatalf("ansi: got %s, want %s", got, want)
	}

	stmt = parseOne(t, "SELECT replace FROM t", parser.WithDialect(lexer.ANSI()))
	if got, want := ast.Dump(stmt), "(select (columns replace) (from t))"; got != want {
		t.Fatalf("ansi: got %s, want %s", got, want)
	}

	expectSingleDiagnostic(t, "SELECT mod FROM t", diag.CodeSyntaxUnexpectedToken, "expected expression, found keyword MOD")
}
