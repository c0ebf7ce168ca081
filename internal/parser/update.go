package parser

import (
	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseUpdate parses single- and multi-table UPDATE. ORDER BY and LIMIT are
// only accepted when a single table is updated.
func (p *Parser) parseUpdate() ast.Stmt {
	start := p.curTok.Span
	stmt := ast.NewUpdateStmt(start)

	if p.acceptPeekKeyword(lexer.LOW_PRIORITY) {
		stmt.LowPriority = true
	}
	if p.acceptPeekKeyword(lexer.IGNORE) {
		stmt.Ignore = true
	}

	p.nextToken()
	stmt.Table = p.parseTableReferences()
	if stmt.Table == nil {
		return nil
	}

	if !p.expect(lexer.SET) {
		return nil
	}
	p.nextToken()

	set, ok := parseCommaList(p, p.parseAssignment)
	if !ok {
		return nil
	}
	stmt.Set = set

	if p.acceptPeek(lexer.WHERE) {
		p.nextToken()
		stmt.Where = p.parseExpr()
		if stmt.Where == nil {
			return nil
		}
	}

	_, single := stmt.Table.(*ast.TableName)
	orderBy, limit, ok := p.parseSingleTableTail(single, "UPDATE")
	if !ok {
		return nil
	}
	stmt.OrderBy, stmt.Limit = orderBy, limit

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	return stmt
}

// parseSingleTableTail parses the ORDER BY and LIMIT of UPDATE and DELETE,
// rejecting them for multiple-table statements.
func (p *Parser) parseSingleTableTail(single bool, verb string) ([]*ast.OrderItem, *ast.Limit, bool) {
	if !single && (p.peekIs(lexer.ORDER) || p.peekIs(lexer.LIMIT)) {
		clause := "LIMIT"
		if p.peekIs(lexer.ORDER) {
			clause = "ORDER BY"
		}
		p.reportInvalidClause(clause+" is not allowed in a multiple-table "+verb, p.peekTok.Span)
		return nil, nil, false
	}

	var orderBy []*ast.OrderItem
	if p.acceptPeek(lexer.ORDER) {
		items, ok := p.parseOrderBy()
		if !ok {
			return nil, nil, false
		}
		orderBy = items
	}

	var limit *ast.Limit
	if p.acceptPeek(lexer.LIMIT) {
		limit = p.parseLimit()
		if limit == nil {
			return nil, nil, false
		}
	}

	return orderBy, limit, true
}
