package parser

import (
	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseQuery parses a SELECT, a parenthesised query or a UNION chain with
// curTok on SELECT or '('. ORDER BY and LIMIT written after the last union
// member apply to the whole union.
func (p *Parser) parseQuery() ast.Query {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	left, paren := p.parseQueryTerm()
	if left == nil {
		return nil
	}

	for p.peekIs(lexer.UNION) {
		if !paren && hasTrailingClauses(left) {
			p.reportInvalidClause("ORDER BY and LIMIT before UNION require parentheses around the query", p.peekTok.Span)
			return nil
		}

		p.nextToken()
		all := p.acceptPeek(lexer.ALL)
		if !all {
			p.acceptPeek(lexer.DISTINCT)
		}
		p.nextToken()

		right, rightParen := p.parseQueryTerm()
		if right == nil {
			return nil
		}

		union := ast.NewUnionStmt(left, right, all, mergeSpan(left.Span(), right.Span()))
		if sel, ok := right.(*ast.SelectStmt); ok && !rightParen {
			union.OrderBy, union.Limit = sel.OrderBy, sel.Limit
			sel.OrderBy, sel.Limit = nil, nil
		}

		left, paren = union, rightParen
	}

	if !p.peekIs(lexer.ORDER) && !p.peekIs(lexer.LIMIT) {
		return left
	}

	// Only a parenthesised last term can leave ORDER BY or LIMIT unparsed.
	clauseTok := p.peekTok
	var orderBy []*ast.OrderItem
	if p.acceptPeek(lexer.ORDER) {
		items, ok := p.parseOrderBy()
		if !ok {
			return nil
		}
		orderBy = items
	}
	var limit *ast.Limit
	if p.acceptPeek(lexer.LIMIT) {
		limit = p.parseLimit()
		if limit == nil {
			return nil
		}
	}

	switch q := left.(type) {
	case *ast.UnionStmt:
		if len(q.OrderBy) > 0 || q.Limit != nil {
			break
		}
		q.OrderBy, q.Limit = orderBy, limit
		q.SetSpan(mergeSpan(q.Span(), p.curTok.Span))
		return q
	case *ast.SelectStmt:
		if len(q.OrderBy) > 0 || q.Limit != nil {
			break
		}
		q.OrderBy, q.Limit = orderBy, limit
		q.SetSpan(mergeSpan(q.Span(), p.curTok.Span))
		return q
	}

	p.reportInvalidClause("query already has ORDER BY or LIMIT", clauseTok.Span)
	return nil
}

// parseQueryTerm parses one union operand. paren reports whether it was
// written in parentheses, in which case its span includes them.
func (p *Parser) parseQueryTerm() (q ast.Query, paren bool) {
	switch p.curTok.Type {
	case lexer.SELECT:
		sel := p.parseSelect()
		if sel == nil {
			return nil, false
		}
		return sel, false
	case lexer.LPAREN:
		inner, span, ok := p.parseParenQuery()
		if !ok {
			return nil, false
		}
		inner.SetSpan(span)
		return inner, true
	}

	p.reportExpected(describeType(lexer.SELECT), p.curTok)
	return nil, false
}

func hasTrailingClauses(q ast.Query) bool {
	switch q := q.(type) {
	case *ast.SelectStmt:
		return len(q.OrderBy) > 0 || q.Limit != nil
	case *ast.UnionStmt:
		return len(q.OrderBy) > 0 || q.Limit != nil
	}
	return false
}

func (p *Parser) parseSelect() *ast.SelectStmt {
	start := p.curTok.Span
	sel := ast.NewSelectStmt(start)

	for {
		switch {
		case p.acceptPeek(lexer.DISTINCT), p.acceptPeek(lexer.DISTINCTROW):
			sel.Distinct = true
			continue
		case p.acceptPeek(lexer.ALL):
			continue
		case p.acceptPeekKeyword(lexer.HIGH_PRIORITY):
			sel.HighPriority = true
			continue
		case p.acceptPeekKeyword(lexer.STRAIGHT_JOIN):
			sel.StraightJoin = true
			continue
		case p.acceptPeekWord("SQL_CALC_FOUND_ROWS"):
			sel.CalcFoundRows = true
			continue
		}
		break
	}

	p.nextToken()

	columns, ok := parseCommaList(p, p.parseSelectItem)
	if !ok {
		return nil
	}
	sel.Columns = columns

	if p.acceptPeek(lexer.FROM) {
		p.nextToken()
		sel.From = p.parseTableReferences()
		if sel.From == nil {
			return nil
		}
	}

	if p.acceptPeek(lexer.WHERE) {
		p.nextToken()
		sel.Where = p.parseExpr()
		if sel.Where == nil {
			return nil
		}
	}

	if p.acceptPeek(lexer.GROUP) {
		if !p.expect(lexer.BY) {
			return nil
		}
		p.nextToken()
		groupBy, ok := parseCommaList(p, func() (ast.Expr, bool) {
			e := p.parseExpr()
			return e, e != nil
		})
		if !ok {
			return nil
		}
		sel.GroupBy = groupBy

		if p.peekIs(lexer.WITH) && p.peekTokenAt(1).IsWord("ROLLUP") {
			p.nextToken()
			p.nextToken()
			sel.WithRollup = true
		}
	}

	if p.acceptPeek(lexer.HAVING) {
		p.nextToken()
		sel.Having = p.parseExpr()
		if sel.Having == nil {
			return nil
		}
	}

	if p.acceptPeek(lexer.ORDER) {
		orderBy, ok := p.parseOrderBy()
		if !ok {
			return nil
		}
		sel.OrderBy = orderBy
	}

	if p.acceptPeek(lexer.LIMIT) {
		sel.Limit = p.parseLimit()
		if sel.Limit == nil {
			return nil
		}
	}

	switch {
	case p.peekTok.IsWord("FOR") && p.peekTokenAt(1).Type == lexer.UPDATE:
		p.nextToken()
		p.nextToken()
		sel.Lock = ast.LockForUpdate
	case p.peekTok.IsWord("LOCK") && p.peekTokenAt(1).Type == lexer.IN:
		p.nextToken()
		p.nextToken()
		if !p.expectWord("SHARE") || !p.expectWord("MODE") {
			return nil
		}
		sel.Lock = ast.LockInShareMode
	}

	sel.SetSpan(mergeSpan(start, p.curTok.Span))
	return sel
}

// parseSelectItem parses *, t.*, db.t.* or expr [[AS] alias].
func (p *Parser) parseSelectItem() (*ast.SelectItem, bool) {
	if star := p.parseStar(); star != nil {
		return ast.NewSelectItem(star, nil, star.Span()), true
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil, false
	}

	alias, ok := p.parseOptionalAlias()
	if !ok {
		return nil, false
	}

	return ast.NewSelectItem(expr, alias, mergeSpan(expr.Span(), p.curTok.Span)), true
}

// parseStar consumes a possibly qualified '*' and returns nil when curTok
// does not start one.
func (p *Parser) parseStar() *ast.StarExpr {
	if p.curIs(lexer.ASTERISK) {
		return ast.NewStarExpr(nil, p.curTok.Span)
	}

	// Count the qualifier parts before ".*" without consuming anything.
	n := 0
	for {
		if p.stream.Peek(2*n).Type != lexer.IDENT || p.stream.Peek(2*n+1).Type != lexer.DOT {
			return nil
		}
		n++
		if p.stream.Peek(2*n).Type == lexer.ASTERISK {
			break
		}
		if n == 2 {
			return nil
		}
	}

	start := p.curTok.Span
	qualifier := make([]*ast.Ident, 0, n)
	for i := 0; i < n; i++ {
		qualifier = append(qualifier, identFromToken(p.curTok))
		p.nextToken() // '.'
		p.nextToken()
	}

	return ast.NewStarExpr(qualifier, mergeSpan(start, p.curTok.Span))
}

// parseOrderBy parses the keys after ORDER with curTok on ORDER.
func (p *Parser) parseOrderBy() ([]*ast.OrderItem, bool) {
	if !p.expect(lexer.BY) {
		return nil, false
	}
	p.nextToken()

	return parseCommaList(p, func() (*ast.OrderItem, bool) {
		expr := p.parseExpr()
		if expr == nil {
			return nil, false
		}
		desc := p.acceptPeek(lexer.DESC)
		if !desc {
			p.acceptPeek(lexer.ASC)
		}
		return ast.NewOrderItem(expr, desc, mergeSpan(expr.Span(), p.curTok.Span)), true
	})
}

// parseLimit parses LIMIT count, LIMIT offset, count and LIMIT count OFFSET
// offset with curTok on LIMIT.
func (p *Parser) parseLimit() *ast.Limit {
	start := p.curTok.Span
	p.nextToken()

	first := p.parseLimitValue()
	if first == nil {
		return nil
	}

	var count, offset ast.Expr = first, nil
	switch {
	case p.acceptPeek(lexer.COMMA):
		p.nextToken()
		count = p.parseLimitValue()
		if count == nil {
			return nil
		}
		offset = first
	case p.acceptPeekWord("OFFSET"):
		p.nextToken()
		offset = p.parseLimitValue()
		if offset == nil {
			return nil
		}
	}

	return ast.NewLimit(count, offset, mergeSpan(start, p.curTok.Span))
}

// parseLimitValue accepts an integer literal or a placeholder.
func (p *Parser) parseLimitValue() ast.Expr {
	switch p.curTok.Type {
	case lexer.INT:
		return p.parseNumberLiteral()
	case lexer.PARAM, lexer.VARIABLE:
		return p.parseParam()
	}
	p.reportExpected("number or '?'", p.curTok)
	return nil
}
