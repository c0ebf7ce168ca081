package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/format"
	"github.com/sqlfront/sqlfront/internal/lexer"
	"github.com/sqlfront/sqlfront/internal/lsp"
	"github.com/sqlfront/sqlfront/internal/parser"
)

// Exit codes.
const (
	exitOK       = 0
	exitDiags    = 1
	exitUsage    = 2
	exitInternal = 3
)

const stdinName = "<stdin>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: sqlfront <command> [options] <file>...\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  parse <file>...   Print the syntax tree of each statement\n")
	fmt.Fprintf(w, "  fmt <file>...     Print the statements as canonical SQL\n")
	fmt.Fprintf(w, "  check <file>...   Report diagnostics only\n")
	fmt.Fprintf(w, "  tokens <file>     Print the token stream\n")
	fmt.Fprintf(w, "  lsp               Serve the language server protocol on stdin/stdout\n")
	fmt.Fprintf(w, "\nUse - to read from standard input.\n")
}

// cli carries the settings shared by every command.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	dialect  lexer.Dialect
	maxDepth int
	json     bool
}

// run executes one command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	command := args[0]
	switch command {
	case "parse", "fmt", "check", "tokens", "lsp":
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		usage(stderr)
		return exitUsage
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialectName := fs.String("dialect", "mysql", "SQL dialect: mysql or ansi")
	maxDepth := fs.Int("max-depth", parser.DefaultMaxDepth, "maximum expression and query nesting")
	jsonOut := fs.Bool("json", false, "write results as JSON (parse and check)")
	verbose := fs.Bool("v", false, "log per-file timings")
	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}

	dialect, ok := lexer.DialectByName(*dialectName)
	if !ok {
		fmt.Fprintf(stderr, "Unknown dialect: %s\n", *dialectName)
		return exitUsage
	}
	if *maxDepth < 1 {
		fmt.Fprintf(stderr, "Invalid -max-depth: %d\n", *maxDepth)
		return exitUsage
	}
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	c := &cli{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		dialect:  dialect,
		maxDepth: *maxDepth,
		json:     *jsonOut,
	}

	if command == "lsp" {
		return c.serve()
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: sqlfront %s [options] <file>...\n", command)
		return exitUsage
	}

	if command == "tokens" {
		if fs.NArg() != 1 {
			fmt.Fprintf(stderr, "Usage: sqlfront tokens [options] <file>\n")
			return exitUsage
		}
		return c.tokens(fs.Arg(0))
	}

	code := exitOK
	for _, name := range fs.Args() {
		code = max(code, c.file(command, name))
		if code == exitInternal {
			break
		}
	}
	return code
}

// read loads a named input; "-" reads standard input.
func (c *cli) read(name string) (string, string, error) {
	if name == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", stdinName, fmt.Errorf("read standard input: %w", err)
		}
		return string(data), stdinName, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", name, fmt.Errorf("read input: %w", err)
	}
	return string(data), name, nil
}

// fileResult is the JSON shape written by parse -json and check -json.
type fileResult struct {
	File        string            `json:"file"`
	Statements  []string          `json:"statements,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func (c *cli) file(command, name string) int {
	src, filename, err := c.read(name)
	if err != nil {
		c.logger.Error("cannot read input", "file", name, "err", err)
		return exitUsage
	}

	start := time.Now()
	script, diags, err := parser.Parse(src,
		parser.WithFilename(filename),
		parser.WithDialect(c.dialect),
		parser.WithMaxDepth(c.maxDepth),
	)
	if err != nil {
		var ie *diag.InternalError
		if errors.As(err, &ie) {
			fmt.Fprintf(c.stderr, "%s: %v\n%s", filename, err, ie.Stack)
		} else {
			fmt.Fprintf(c.stderr, "%s: %v\n", filename, err)
		}
		return exitInternal
	}

	c.logger.Debug("parsed",
		"file", filename,
		"statements", len(script.Stmts),
		"diagnostics", len(diags),
		"elapsed", time.Since(start),
	)

	failed := false
	for _, d := range diags {
		if d.IsError() {
			failed = true
			break
		}
	}

	switch {
	case c.json && (command == "parse" || command == "check"):
		res := fileResult{File: filename, Diagnostics: diags}
		if res.Diagnostics == nil {
			res.Diagnostics = []diag.Diagnostic{}
		}
		if command == "parse" {
			for _, stmt := range script.Stmts {
				res.Statements = append(res.Statements, ast.Dump(stmt))
			}
		}
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			c.logger.Error("cannot write output", "err", err)
			return exitUsage
		}
	default:
		c.report(filename, src, diags)
		switch command {
		case "parse":
			for _, stmt := range script.Stmts {
				fmt.Fprintln(c.stdout, ast.Dump(stmt))
			}
		case "fmt":
			// A partial rewrite would drop the statements that failed.
			if failed {
				break
			}
			text, err := format.Script(script, format.WithDialect(c.dialect))
			if err != nil {
				fmt.Fprintf(c.stderr, "%s:%v\n", filename, err)
				return exitDiags
			}
			fmt.Fprint(c.stdout, text)
		}
	}

	if failed {
		return exitDiags
	}
	return exitOK
}

func (c *cli) report(filename, src string, diags []diag.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	f := diag.NewFormatter(c.stderr)
	f.AddSource(filename, src)
	f.FormatAll(diags)
}

func (c *cli) tokens(name string) int {
	src, filename, err := c.read(name)
	if err != nil {
		c.logger.Error("cannot read input", "file", name, "err", err)
		return exitUsage
	}

	toks, lexErrs := lexer.Tokenize(src, c.dialect)
	for _, tok := range toks {
		fmt.Fprintf(c.stdout, "%d:%d\t%s\t%s\t%q\n", tok.Span.Line, tok.Span.Column, tok.Kind, tok.Type, tok.Raw)
	}

	if len(lexErrs) == 0 {
		return exitOK
	}

	diags := make([]diag.Diagnostic, 0, len(lexErrs))
	for _, le := range lexErrs {
		d := le.ToDiagnostic()
		d.Span.Filename = filename
		diags = append(diags, d)
	}
	c.report(filename, src, diags)
	return exitDiags
}

// serve runs the language server until the client exits.
func (c *cli) serve() int {
	srv := lsp.NewServer(c.stdin, c.stdout,
		lsp.WithDialect(c.dialect),
		lsp.WithMaxDepth(c.maxDepth),
		lsp.WithLogger(c.logger),
	)
	if err := srv.Run(context.Background()); err != nil {
		c.logger.Error("language server failed", "err", err)
		return exitInternal
	}
	return exitOK
}
