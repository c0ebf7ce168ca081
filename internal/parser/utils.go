package parser

import (
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// mergeSpan assumes start.End <= end.End and returns a span covering both.
// The parser relies on lexer spans being half-open; callers should pass the
// earliest start span first to preserve monotonic growth for AST nodes.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

// isStatementStart reports whether tok can begin a statement for recovery
// purposes. Only reserved words qualify; REPLACE followed by '(' is the
// string function.
func (p *Parser) isStatementStart(tok, next lexer.Token) bool {
	switch tok.Type {
	case lexer.SELECT, lexer.INSERT, lexer.UPDATE, lexer.DELETE, lexer.CREATE, lexer.DROP, lexer.USE, lexer.DELIMITER:
		return true
	case lexer.REPLACE:
		return next.Type != lexer.LPAREN
	default:
		return false
	}
}

func isTransactionStart(tok lexer.Token) bool {
	return tok.IsWord("BEGIN") || tok.IsWord("START") || tok.IsWord("COMMIT") || tok.IsWord("ROLLBACK")
}

// recoverStatement skips the remainder of a failed statement. It stops after
// the next ';' or before a statement-leading keyword outside parentheses.
// start is the first token of the failed statement and guarantees progress.
func (p *Parser) recoverStatement(start lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
		return
	}

	// Resume on the offending token itself when it starts a statement.
	restartHere := p.curTok.Span.Start == p.errPos &&
		p.parens <= 0 &&
		!p.depthExceeded &&
		p.isStatementStart(p.curTok, p.peekTok) &&
		!sameTokenPosition(p.curTok, start)
	if restartHere {
		return
	}
	p.nextToken()

	for p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
			return
		}
		if p.parens <= 0 && p.isStatementStart(p.curTok, p.peekTok) {
			return
		}
		p.nextToken()
	}
}
