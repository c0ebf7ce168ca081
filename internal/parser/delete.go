package parser

import (
	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseDelete parses the three DELETE forms:
//
//	DELETE FROM t [AS a] WHERE ...
//	DELETE t1, t2 FROM table_references WHERE ...
//	DELETE FROM t1, t2 USING table_references WHERE ...
func (p *Parser) parseDelete() ast.Stmt {
	start := p.curTok.Span
	stmt := ast.NewDeleteStmt(start)

	for {
		switch {
		case p.acceptPeekKeyword(lexer.LOW_PRIORITY):
			stmt.LowPriority = true
			continue
		case p.acceptPeekWord("QUICK"):
			stmt.Quick = true
			continue
		case p.acceptPeekKeyword(lexer.IGNORE):
			stmt.Ignore = true
			continue
		}
		break
	}

	if p.acceptPeek(lexer.FROM) {
		p.nextToken()
		if !p.parseDeleteFrom(stmt) {
			return nil
		}
	} else {
		p.nextToken()
		targets, ok := parseCommaList(p, p.parseDeleteTarget)
		if !ok {
			return nil
		}
		stmt.Targets = targets

		if !p.expect(lexer.FROM) {
			return nil
		}
		p.nextToken()
		stmt.From = p.parseTableReferences()
		if stmt.From == nil {
			return nil
		}
	}

	if p.acceptPeek(lexer.WHERE) {
		p.nextToken()
		stmt.Where = p.parseExpr()
		if stmt.Where == nil {
			return nil
		}
	}

	orderBy, limit, ok := p.parseSingleTableTail(!stmt.IsMultiTable(), "DELETE")
	if !ok {
		return nil
	}
	stmt.OrderBy, stmt.Limit = orderBy, limit

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	return stmt
}

// parseDeleteFrom handles DELETE FROM t and DELETE FROM t1, t2 USING ...
// with curTok on the first table.
func (p *Parser) parseDeleteFrom(stmt *ast.DeleteStmt) bool {
	first, ok := p.parseDeleteTarget()
	if !ok {
		return false
	}

	if !p.peekIs(lexer.COMMA) && !p.peekIs(lexer.USING) {
		alias, ok := p.parseOptionalAlias()
		if !ok {
			return false
		}
		first.Alias = alias
		first.SetSpan(mergeSpan(first.Span(), p.curTok.Span))
		stmt.From = first
		return true
	}

	targets := []*ast.TableName{first}
	for p.acceptPeek(lexer.COMMA) {
		p.nextToken()
		target, ok := p.parseDeleteTarget()
		if !ok {
			return false
		}
		targets = append(targets, target)
	}
	stmt.Targets = targets

	if !p.expect(lexer.USING) {
		return false
	}
	p.nextToken()

	stmt.Using = p.parseTableReferences()
	return stmt.Using != nil
}

// parseDeleteTarget parses a table name with an optional trailing .*.
func (p *Parser) parseDeleteTarget() (*ast.TableName, bool) {
	table := p.parseTableName()
	if table == nil {
		return nil, false
	}

	if p.peekIs(lexer.DOT) && p.peekTokenAt(1).Type == lexer.ASTERISK {
		p.nextToken()
		p.nextToken()
		table.SetSpan(mergeSpan(table.Span(), p.curTok.Span))
	}

	return table, true
}
