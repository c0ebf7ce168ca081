package parser

import (
	"fmt"

	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// emitParseDiagnostic records a recoverable diagnostic without aborting
// parsing and remembers the offending position for recovery.
func (p *Parser) emitParseDiagnostic(code diag.Code, msg string, span lexer.Span, severity diag.Severity) {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}
	p.errPos = span.Start

	p.reporter.Add(diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: severity,
		Code:     code,
		Message:  msg,
		Span:     span.ToDiag(),
	})
}

// reportCode reports an error at tok, unless tok is ILLEGAL: the lexer has
// already described that token.
func (p *Parser) reportCode(code diag.Code, msg string, tok lexer.Token) {
	if tok.Type == lexer.ILLEGAL {
		p.failAt(tok)
		return
	}
	p.emitParseDiagnostic(code, msg, tok.Span, diag.SeverityError)
}

// reportError reports a syntax error at span.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(diag.CodeSyntaxUnexpectedToken, msg, span, diag.SeverityError)
}

// reportExpected reports "expected X, found Y".
func (p *Parser) reportExpected(expected string, found lexer.Token) {
	p.reportCode(diag.CodeSyntaxUnexpectedToken, fmt.Sprintf("expected %s, found %s", expected, found.Describe()), found)
}

// reportInvalidClause reports a clause that is well-formed but not allowed
// where it appears.
func (p *Parser) reportInvalidClause(msg string, span lexer.Span) {
	p.emitParseDiagnostic(diag.CodeSyntaxInvalidClause, msg, span, diag.SeverityError)
}

// failAt records a failure at tok without a diagnostic.
func (p *Parser) failAt(tok lexer.Token) {
	p.errPos = tok.Span.Start
}

// describeType renders a token type for "expected X" messages.
func describeType(tt lexer.TokenType) string {
	s := string(tt)
	if s != "" && s[0] >= 'A' && s[0] <= 'Z' {
		switch tt {
		case lexer.IDENT:
			return "identifier"
		case lexer.EOF:
			return "end of input"
		}
		return "keyword " + s
	}
	return "'" + s + "'"
}
