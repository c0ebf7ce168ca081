package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestParseSmokeFile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "parse", "testdata/smoke.sql")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d\nstderr: %s", exitOK, code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 statements, got %d:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "(create-table if-not-exists users ") {
		t.Fatalf("unexpected first statement %s", lines[0])
	}
	if lines[1] != "(start-transaction)" || lines[4] != "(commit)" {
		t.Fatalf("unexpected transaction statements %s, %s", lines[1], lines[4])
	}
}

func TestFormatSmokeFileReparses(t *testing.T) {
	code, formatted, stderr := runCLI(t, "", "fmt", "testdata/smoke.sql")
	if code != exitOK {
		t.Fatalf("fmt failed with %d\nstderr: %s", code, stderr)
	}

	_, want, _ := runCLI(t, "", "parse", "testdata/smoke.sql")
	code, got, stderr := runCLI(t, formatted, "parse", "-")
	if code != exitOK {
		t.Fatalf("formatted output does not parse (%d)\nstderr: %s\n%s", code, stderr, formatted)
	}
	if got != want {
		t.Fatalf("formatted output parses differently\n got: %s\nwant: %s", got, want)
	}
}

func TestFormatFromStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, "select a,b from t where x=1; use db", "fmt", "-")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d\nstderr: %s", exitOK, code, stderr)
	}
	if want := "SELECT a, b FROM t WHERE x = 1;\nUSE db;\n"; stdout != want {
		t.Fatalf("unexpected output %q, want %q", stdout, want)
	}
}

func TestFormatRefusesToDropComments(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-- keep\nSELECT a /* inner */ FROM t;", "fmt", "-")
	if code != exitDiags {
		t.Fatalf("expected exit %d, got %d", exitDiags, code)
	}
	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
	if want := "<stdin>:2:10: comment inside a statement cannot be preserved\n"; stderr != want {
		t.Fatalf("unexpected stderr %q, want %q", stderr, want)
	}
}

func TestFormatKeepsDelimiterBlocks(t *testing.T) {
	src := "delimiter //\nselect 1//\ndelimiter ;\n-- done\nselect 2;"
	code, stdout, stderr := runCLI(t, src, "fmt", "-")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d\nstderr: %s", exitOK, code, stderr)
	}
	if want := "DELIMITER //\nSELECT 1//\nDELIMITER ;\n-- done\nSELECT 2;\n"; stdout != want {
		t.Fatalf("unexpected output %q, want %q", stdout, want)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	code, stdout, stderr := runCLI(t, "SELECT 1;\nSELECT 1 +;\n", "check", "-")
	if code != exitDiags {
		t.Fatalf("expected exit %d, got %d", exitDiags, code)
	}
	if stdout != "" {
		t.Fatalf("check should not print statements, got %q", stdout)
	}
	if !strings.Contains(stderr, "error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found end of input") &&
		!strings.Contains(stderr, "error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found ';'") {
		t.Fatalf("missing diagnostic header in:\n%s", stderr)
	}
	if !strings.Contains(stderr, "--> <stdin>:2:") {
		t.Fatalf("missing location in:\n%s", stderr)
	}
}

func TestFormatRefusesInvalidInput(t *testing.T) {
	code, stdout, _ := runCLI(t, "SELECT 1; SELECT FROM", "fmt", "-")
	if code != exitDiags {
		t.Fatalf("expected exit %d, got %d", exitDiags, code)
	}
	if stdout != "" {
		t.Fatalf("expected no output for invalid input, got %q", stdout)
	}
}

func TestParseJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "SELECT 1; SELECT FROM", "parse", "-json", "-")
	if code != exitDiags {
		t.Fatalf("expected exit %d, got %d", exitDiags, code)
	}

	var res fileResult
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if res.File != stdinName {
		t.Fatalf("unexpected file %q", res.File)
	}
	if len(res.Statements) != 1 || res.Statements[0] != "(select (columns 1))" {
		t.Fatalf("unexpected statements %v", res.Statements)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "SYNTAX_UNEXPECTED_TOKEN" {
		t.Fatalf("unexpected diagnostics %+v", res.Diagnostics)
	}
}

func TestCheckJSONHasEmptyDiagnostics(t *testing.T) {
	code, stdout, _ := runCLI(t, "SELECT 1", "check", "-json", "-")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d", exitOK, code)
	}
	if !strings.Contains(stdout, `"diagnostics": []`) {
		t.Fatalf("expected an empty diagnostics array, got %s", stdout)
	}
}

func TestDialectFlag(t *testing.T) {
	code, stdout, stderr := runCLI(t, `SELECT "a" || 'b'`, "parse", "-dialect", "ansi", "-")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d\nstderr: %s", exitOK, code, stderr)
	}
	if want := "(select (columns (|| a 'b')))\n"; stdout != want {
		t.Fatalf("unexpected output %q, want %q", stdout, want)
	}
}

func TestMaxDepthFlag(t *testing.T) {
	src := "SELECT " + strings.Repeat("(", 30) + "1" + strings.Repeat(")", 30)

	code, _, stderr := runCLI(t, src, "check", "-max-depth", "10", "-")
	if code != exitDiags || !strings.Contains(stderr, "RECURSION_LIMIT_EXCEEDED") {
		t.Fatalf("expected a recursion diagnostic, got %d\n%s", code, stderr)
	}

	if code, _, stderr := runCLI(t, src, "check", "-"); code != exitOK {
		t.Fatalf("expected default depth to accept the input, got %d\n%s", code, stderr)
	}
}

func TestTokens(t *testing.T) {
	code, stdout, _ := runCLI(t, "SELECT a", "tokens", "-")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d", exitOK, code)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 tokens including end of input, got %d:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "1:1\tkeyword\tSELECT\t") {
		t.Fatalf("unexpected first token %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1:8\tidentifier\t") {
		t.Fatalf("unexpected second token %q", lines[1])
	}
}

func TestTokensReportsLexicalErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "SELECT 'abc", "tokens", "-")
	if code != exitDiags {
		t.Fatalf("expected exit %d, got %d", exitDiags, code)
	}
	if !strings.Contains(stderr, "LEX_UNTERMINATED_STRING") {
		t.Fatalf("missing lexical diagnostic in:\n%s", stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "Usage: sqlfront"},
		{"unknown command", []string{"lint", "x.sql"}, "Unknown command: lint"},
		{"unknown dialect", []string{"parse", "-dialect", "oracle", "-"}, "Unknown dialect: oracle"},
		{"missing file argument", []string{"check"}, "Usage: sqlfront check"},
		{"bad depth", []string{"parse", "-max-depth", "0", "-"}, "Invalid -max-depth"},
		{"missing file", []string{"parse", "testdata/does-not-exist.sql"}, "cannot read input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			if code != exitUsage {
				t.Fatalf("expected exit %d, got %d", exitUsage, code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("expected %q in:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestLanguageServer(t *testing.T) {
	var in strings.Builder
	for _, body := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///q.sql","languageId":"sql","version":1,"text":"SELECT a || 'b';"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(body), body)
	}

	code, stdout, stderr := runCLI(t, in.String(), "lsp", "-dialect", "ansi")
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d\nstderr: %s", exitOK, code, stderr)
	}
	for _, want := range []string{`"name":"sqlfront"`, `"method":"textDocument/publishDiagnostics"`, `"diagnostics":[]`, `"id":2,"result":null`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %s in:\n%s", want, stdout)
		}
	}
}
