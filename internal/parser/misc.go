package parser

import (
	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseDrop parses DROP [TEMPORARY] TABLE [IF EXISTS] t, ... [RESTRICT |
// CASCADE].
func (p *Parser) parseDrop() ast.Stmt {
	start := p.curTok.Span
	stmt := &ast.DropTableStmt{}

	stmt.Temporary = p.acceptPeekWord("TEMPORARY")
	if !p.expect(lexer.TABLE) {
		return nil
	}

	if p.acceptPeek(lexer.IF) {
		if !p.expect(lexer.EXISTS) {
			return nil
		}
		stmt.IfExists = true
	}

	p.nextToken()
	tables, ok := parseCommaList(p, func() (*ast.TableName, bool) {
		t := p.parseTableName()
		return t, t != nil
	})
	if !ok {
		return nil
	}
	stmt.Tables = tables

	switch {
	case p.acceptPeek(lexer.RESTRICT):
		stmt.Behavior = "RESTRICT"
	case p.acceptPeek(lexer.CASCADE):
		stmt.Behavior = "CASCADE"
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	return stmt
}

func (p *Parser) parseUse() ast.Stmt {
	start := p.curTok.Span

	p.nextToken()
	db := p.parseIdent()
	if db == nil {
		return nil
	}

	return ast.NewUseStmt(db, mergeSpan(start, db.Span()))
}

// parseTransaction parses BEGIN [WORK], START TRANSACTION, COMMIT [WORK] and
// ROLLBACK [WORK]. The leading words are not reserved.
func (p *Parser) parseTransaction() ast.Stmt {
	start := p.curTok.Span

	var kind ast.TxKind
	switch {
	case p.curTok.IsWord("BEGIN"):
		kind = ast.TxBegin
	case p.curTok.IsWord("START"):
		if !p.expectWord("TRANSACTION") {
			return nil
		}
		return ast.NewTransactionStmt(ast.TxStart, false, mergeSpan(start, p.curTok.Span))
	case p.curTok.IsWord("COMMIT"):
		kind = ast.TxCommit
	default:
		kind = ast.TxRollback
	}

	work := p.acceptPeekWord("WORK")
	return ast.NewTransactionStmt(kind, work, mergeSpan(start, p.curTok.Span))
}
