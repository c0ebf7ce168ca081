package parser

import (
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseInsert parses INSERT and REPLACE with curTok on the leading keyword.
// The source is VALUES rows, SET assignments or a query.
func (p *Parser) parseInsert(replace bool) ast.Stmt {
	start := p.curTok.Span
	stmt := ast.NewInsertStmt(replace, start)

	switch {
	case p.acceptPeekKeyword(lexer.LOW_PRIORITY), p.acceptPeekKeyword(lexer.DELAYED):
		stmt.Priority = strings.ToUpper(p.curTok.Value)
	case !replace && p.acceptPeekKeyword(lexer.HIGH_PRIORITY):
		stmt.Priority = strings.ToUpper(p.curTok.Value)
	}

	if !replace && p.acceptPeekKeyword(lexer.IGNORE) {
		stmt.Ignore = true
	}

	p.acceptPeek(lexer.INTO)
	p.nextToken()

	stmt.Table = p.parseTableName()
	if stmt.Table == nil {
		return nil
	}

	if p.peekIs(lexer.LPAREN) {
		p.nextToken()

		_, failed := p.parenQuery(siteInsert, func() bool {
			q := p.parseQuery()
			if q == nil {
				return false
			}
			stmt.Query = q
			return true
		})
		if failed {
			return nil
		}

		if stmt.Query == nil {
			p.nextToken()
			res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, AllowEmpty: true, What: "column name"}, func(int) (*ast.Ident, bool) {
				id := p.parseIdent()
				return id, id != nil
			})
			if !ok {
				return nil
			}
			stmt.Columns = res.Items
		}
	}

	if stmt.Query == nil && !p.parseInsertSource(stmt) {
		return nil
	}

	if p.peekIs(lexer.ON) && p.peekTokenAt(1).IsWord("DUPLICATE") {
		p.nextToken()
		p.nextToken()
		if !p.expect(lexer.KEY) || !p.expect(lexer.UPDATE) {
			return nil
		}
		p.nextToken()
		set, ok := parseCommaList(p, p.parseAssignment)
		if !ok {
			return nil
		}
		stmt.OnDuplicate = set
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	return stmt
}

// parseInsertSource parses what follows the table and column list.
func (p *Parser) parseInsertSource(stmt *ast.InsertStmt) bool {
	switch {
	case p.peekIs(lexer.VALUES), p.peekTok.IsWord("VALUE"):
		p.nextToken()
		for {
			if !p.expect(lexer.LPAREN) {
				return false
			}
			rowStart := p.curTok.Span
			p.nextToken()

			res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, AllowEmpty: true, What: "expression"}, func(int) (ast.Expr, bool) {
				e := p.parseExpr()
				return e, e != nil
			})
			if !ok {
				return false
			}
			stmt.Rows = append(stmt.Rows, ast.NewRowExpr(res.Items, mergeSpan(rowStart, p.curTok.Span)))

			if !p.acceptPeek(lexer.COMMA) {
				return true
			}
		}
	case p.peekIs(lexer.SET) && stmt.Columns == nil:
		p.nextToken()
		p.nextToken()
		set, ok := parseCommaList(p, p.parseAssignment)
		if !ok {
			return false
		}
		stmt.Set = set
		return true
	case p.peekIs(lexer.SELECT), p.peekIs(lexer.LPAREN):
		p.nextToken()
		stmt.Query = p.parseQuery()
		return stmt.Query != nil
	}

	p.reportExpected("VALUES, SET or SELECT", p.peekTok)
	return false
}

// parseAssignment parses col = expr with curTok on the column.
func (p *Parser) parseAssignment() (*ast.Assignment, bool) {
	col := p.parseColumnRef()
	if col == nil {
		return nil, false
	}

	if !p.expect(lexer.EQ) {
		return nil, false
	}
	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil, false
	}

	return ast.NewAssignment(col, value, mergeSpan(col.Span(), value.Span())), true
}
