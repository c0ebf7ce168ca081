package parser

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// DefaultMaxDepth bounds expression and query nesting unless overridden with
// WithMaxDepth.
const DefaultMaxDepth = 1000

type Option func(*options)

type options struct {
	filename string
	dialect  lexer.Dialect
	maxDepth int
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithDialect selects the lexical and keyword rules. The default is MySQL.
func WithDialect(d lexer.Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// WithMaxDepth overrides the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// Parser implements a recursive descent parser with precedence climbing for
// expressions.
// Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it. Both are views over the token stream and only change through
//     nextToken and reset. A production that succeeds leaves curTok on its
//     last token; callers look at peekTok to decide what follows.
//   - Failure: a production that fails reports exactly one diagnostic (none
//     when it stopped at an ILLEGAL token, which the lexer already reported)
//     and returns nil. Callers propagate nil without reporting again.
//   - Diagnostics: the reporter is append-only except for speculative parses,
//     which truncate back to their mark when abandoned.
//   - Spans: AST node spans are composed via mergeSpan so that every child
//     span lies within its parent.
type Parser struct {
	stream  *lexer.Stream
	curTok  lexer.Token
	peekTok lexer.Token

	reporter diag.Reporter

	filename string
	dialect  lexer.Dialect

	maxDepth      int
	depth         int
	depthExceeded bool

	// params numbers positional ? placeholders across the statement list.
	params int
	// errPos is the offset of the token the last failure was reported on.
	errPos int
	// parens counts the '(' left open before curTok in the current statement.
	parens int
	// terminator is the statement terminator set by the last DELIMITER line.
	terminator string

	// queryAhead caches parenQueryAhead by token offset and notQuery the
	// speculations that failed, so nested parentheses are scanned and
	// retried once.
	queryAhead map[int]bool
	notQuery   map[parenKey]bool

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{
		dialect:  lexer.MySQL(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	lx := lexer.New(input, cfg.dialect)
	if cfg.filename != "" {
		lx.SetFilename(cfg.filename)
	}

	p := &Parser{
		stream:     lexer.NewStream(lx),
		filename:   cfg.filename,
		dialect:    cfg.dialect,
		maxDepth:   cfg.maxDepth,
		errPos:     -1,
		terminator: ";",
		queryAhead: make(map[int]bool),
		notQuery:   make(map[parenKey]bool),
		prefixFns:  make(map[lexer.TokenType]prefixParseFn),
		infixFns:   make(map[lexer.TokenType]infixParseFn),
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseNumberLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseNumberLiteral)
	p.registerPrefix(lexer.HEX, p.parseNumberLiteral)
	p.registerPrefix(lexer.BIT, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.PARAM, p.parseParam)
	p.registerPrefix(lexer.VARIABLE, p.parseParam)
	p.registerPrefix(lexer.SYSVAR, p.parseParam)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.TILDE, p.parsePrefixExpr)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpr)
	p.registerPrefix(lexer.NOT, p.parsePrefixExpr)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(lexer.EXISTS, p.parseExistsExpr)
	p.registerPrefix(lexer.CASE, p.parseCaseExpr)
	p.registerPrefix(lexer.DEFAULT, p.parseDefaultExpr)
	for _, tt := range keywordFunctions {
		if _, ok := p.prefixFns[tt]; !ok {
			p.registerPrefix(tt, p.parseKeywordCall)
		}
	}

	for tt := range binaryOperators {
		p.registerInfix(tt, p.parseInfixExpr)
	}
	p.registerInfix(lexer.IS, p.parseIsExpr)
	p.registerInfix(lexer.IN, p.parseInExpr)
	p.registerInfix(lexer.BETWEEN, p.parseBetweenExpr)
	p.registerInfix(lexer.LIKE, p.parseLikeExpr)
	p.registerInfix(lexer.REGEXP, p.parseLikeExpr)
	p.registerInfix(lexer.NOT, p.parseNegatedInfix)
	p.registerInfix(lexer.COLLATE, p.parseCollateExpr)

	p.syncWindow()

	return p
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

// Diagnostics returns every diagnostic recorded so far, lexical ones
// included, ordered by source position.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.reporter.Diagnostics()
}

// ParseStatementList parses the whole input. Statements that fail to parse
// are omitted; their diagnostics remain available through Diagnostics. A
// defect in the parser itself panics with *diag.InternalError.
func (p *Parser) ParseStatementList() *ast.Script {
	script := ast.NewScript(lexer.Span{Filename: p.filename, Line: 1, Column: 1})

	for p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
			continue
		}
		if p.curTok.Type == lexer.DELIMITER {
			p.terminator = p.curTok.Value
			script.Stmts = append(script.Stmts, ast.NewDelimiterStmt(p.curTok.Value, p.curTok.Span))
			p.nextToken()
			continue
		}

		start := p.curTok
		p.depth = 0
		p.depthExceeded = false
		p.parens = 0

		stmt := p.parseStatement()
		if stmt != nil && p.expectTerminator() {
			script.Stmts = append(script.Stmts, stmt)
			continue
		}

		if p.depth != 0 {
			diag.Bug(start.Span.ToDiag(), "nesting depth %d not unwound after statement", p.depth)
		}
		p.recoverStatement(start)
	}

	script.SetSpan(mergeSpan(script.Span(), p.curTok.Span))

	p.stream.Drain()
	for _, err := range p.stream.Lexer().Errors() {
		p.reporter.Add(err.ToDiagnostic())
	}
	script.Comments = p.stream.Lexer().Comments()

	return script
}

// Parse parses src as a statement list. Syntax problems are reported as
// diagnostics; the error is non-nil only for an internal parser defect and
// then wraps a *diag.InternalError carrying the stack trace.
func Parse(src string, opts ...Option) (script *ast.Script, diags []diag.Diagnostic, err error) {
	p := New(src, opts...)

	defer func() {
		if r := recover(); r != nil {
			script = nil
			diags = p.Diagnostics()
			err = internalError(r)
		}
	}()

	script = p.ParseStatementList()
	return script, p.Diagnostics(), nil
}

// ParseExpr parses src as a single expression followed by end of input.
func ParseExpr(src string, opts ...Option) (expr ast.Expr, diags []diag.Diagnostic, err error) {
	p := New(src, opts...)

	defer func() {
		if r := recover(); r != nil {
			expr = nil
			diags = p.Diagnostics()
			err = internalError(r)
		}
	}()

	expr = p.parseExpr()
	if expr != nil && p.peekTok.Type != lexer.EOF {
		p.reportExpected("end of input", p.peekTok)
		expr = nil
	}

	p.stream.Drain()
	for _, lexErr := range p.stream.Lexer().Errors() {
		p.reporter.Add(lexErr.ToDiagnostic())
	}

	return expr, p.Diagnostics(), nil
}

// internalError converts a recovered panic into an *diag.InternalError with
// the stack of the panicking goroutine attached.
func internalError(r any) error {
	stack := debug.Stack()

	var ie *diag.InternalError
	switch v := r.(type) {
	case *diag.InternalError:
		ie = v
	case error:
		if !errors.As(v, &ie) {
			ie = &diag.InternalError{Message: v.Error()}
		}
	default:
		ie = &diag.InternalError{Message: fmt.Sprint(v)}
	}

	if ie.Stack == nil {
		ie.Stack = stack
	}
	return fmt.Errorf("parse: %w", ie)
}

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Type {
	case lexer.SELECT, lexer.LPAREN:
		return p.parseQuery()
	case lexer.INSERT:
		return p.parseInsert(false)
	case lexer.REPLACE:
		return p.parseInsert(true)
	case lexer.UPDATE:
		return p.parseUpdate()
	case lexer.DELETE:
		return p.parseDelete()
	case lexer.CREATE:
		return p.parseCreate()
	case lexer.DROP:
		return p.parseDrop()
	case lexer.USE:
		return p.parseUse()
	case lexer.ILLEGAL:
		p.failAt(p.curTok)
		return nil
	case lexer.IDENT:
		if isTransactionStart(p.curTok) {
			return p.parseTransaction()
		}
		if p.curTok.IsWord("USE") {
			return p.parseUse()
		}
	}

	p.reportCode(diag.CodeSyntaxUnknownStatement, "expected statement, found "+p.curTok.Describe(), p.curTok)
	return nil
}

// expectTerminator requires ';' or end of input after a statement and moves
// past it.
func (p *Parser) expectTerminator() bool {
	switch p.peekTok.Type {
	case lexer.SEMICOLON:
		p.nextToken()
		p.nextToken()
		return true
	case lexer.EOF:
		p.nextToken()
		return true
	case lexer.ILLEGAL:
		p.failAt(p.peekTok)
		return false
	}

	p.reportCode(diag.CodeSyntaxMissingTerminator, "expected '"+p.terminator+"' or end of input, found "+p.peekTok.Describe(), p.peekTok)
	return false
}

// enter increments the nesting depth and reports once per statement when
// the limit is exceeded. Every successful enter must be paired with leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.maxDepth {
		return true
	}
	if !p.depthExceeded {
		p.depthExceeded = true
		p.reportCode(diag.CodeRecursionLimitExceeded,
			fmt.Sprintf("nesting exceeds the maximum depth of %d", p.maxDepth), p.curTok)
	}
	p.depth--
	return false
}

func (p *Parser) leave() {
	p.depth--
}
