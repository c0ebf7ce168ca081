package parser

import (
	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// parseTableReferences parses a comma-separated list of joined tables. The
// comma is a join of its own and binds looser than JOIN.
func (p *Parser) parseTableReferences() ast.TableExpr {
	left := p.parseJoinedTable()
	if left == nil {
		return nil
	}

	for p.acceptPeek(lexer.COMMA) {
		p.nextToken()
		right := p.parseJoinedTable()
		if right == nil {
			return nil
		}
		left = ast.NewJoinExpr(ast.JoinComma, left, right, mergeSpan(left.Span(), right.Span()))
	}

	return left
}

// parseJoinedTable parses factor (join factor [ON expr | USING (cols)])*,
// associating to the left.
func (p *Parser) parseJoinedTable() ast.TableExpr {
	left := p.parseTableFactor()
	if left == nil {
		return nil
	}

	for {
		kind, found, ok := p.parseJoinKind()
		if !ok {
			return nil
		}
		if !found {
			return left
		}

		p.nextToken()
		right := p.parseTableFactor()
		if right == nil {
			return nil
		}

		join := ast.NewJoinExpr(kind, left, right, mergeSpan(left.Span(), right.Span()))
		if !p.parseJoinCondition(join) {
			return nil
		}
		join.SetSpan(mergeSpan(left.Span(), p.curTok.Span))
		left = join
	}
}

// parseJoinKind consumes the join keywords following the current table,
// leaving curTok on JOIN or STRAIGHT_JOIN. found is false when no join
// follows; ok is false after a reported error.
func (p *Parser) parseJoinKind() (kind ast.JoinKind, found, ok bool) {
	switch p.peekTok.Type {
	case lexer.JOIN:
		p.nextToken()
		return ast.JoinInner, true, true
	case lexer.STRAIGHT_JOIN:
		p.nextToken()
		return ast.JoinStraight, true, true
	case lexer.INNER:
		p.nextToken()
		return ast.JoinInner, true, p.expect(lexer.JOIN)
	case lexer.CROSS:
		p.nextToken()
		return ast.JoinCross, true, p.expect(lexer.JOIN)
	case lexer.LEFT:
		p.nextToken()
		p.acceptPeek(lexer.OUTER)
		return ast.JoinLeft, true, p.expect(lexer.JOIN)
	case lexer.RIGHT:
		p.nextToken()
		p.acceptPeek(lexer.OUTER)
		return ast.JoinRight, true, p.expect(lexer.JOIN)
	case lexer.NATURAL:
		p.nextToken()
		kind = ast.JoinNatural
		switch {
		case p.acceptPeek(lexer.LEFT):
			kind = ast.JoinNaturalLeft
			p.acceptPeek(lexer.OUTER)
		case p.acceptPeek(lexer.RIGHT):
			kind = ast.JoinNaturalRight
			p.acceptPeek(lexer.OUTER)
		}
		return kind, true, p.expect(lexer.JOIN)
	}
	return 0, false, true
}

// parseJoinCondition parses ON or USING after the right-hand table. Outer
// joins require one; natural joins take neither.
func (p *Parser) parseJoinCondition(join *ast.JoinExpr) bool {
	switch join.Kind {
	case ast.JoinNatural, ast.JoinNaturalLeft, ast.JoinNaturalRight:
		return true
	}

	switch {
	case p.acceptPeek(lexer.ON):
		p.nextToken()
		join.On = p.parseExpr()
		return join.On != nil
	case p.acceptPeek(lexer.USING):
		if !p.expect(lexer.LPAREN) {
			return false
		}
		p.nextToken()
		res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "column name"}, func(int) (*ast.Ident, bool) {
			id := p.parseIdent()
			return id, id != nil
		})
		if !ok {
			return false
		}
		join.Using = res.Items
		return true
	}

	if join.Kind == ast.JoinLeft || join.Kind == ast.JoinRight {
		p.reportExpected("ON or USING", p.peekTok)
		return false
	}
	return true
}

// parseTableFactor parses a table name, a derived table or a parenthesised
// group of table references.
func (p *Parser) parseTableFactor() ast.TableExpr {
	switch p.curTok.Type {
	case lexer.IDENT:
		table := p.parseTableName()
		if table == nil {
			return nil
		}
		alias, ok := p.parseOptionalAlias()
		if !ok {
			return nil
		}
		table.Alias = alias
		table.SetSpan(mergeSpan(table.Span(), p.curTok.Span))
		return table
	case lexer.LPAREN:
		return p.parseParenTable()
	}

	p.reportExpected("table name", p.curTok)
	return nil
}

// parseParenTable disambiguates '(' in FROM: (SELECT ...) AS t is a derived
// table, anything else is a group such as (a JOIN b).
func (p *Parser) parseParenTable() ast.TableExpr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	start := p.curTok.Span

	var query ast.Query
	var querySpan lexer.Span
	matched, failed := p.parenQuery(siteTable, func() bool {
		q, span, ok := p.parseParenQuery()
		if !ok {
			return false
		}
		query, querySpan = q, span
		return true
	})
	if failed {
		return nil
	}
	if matched {
		query.SetSpan(querySpan)
		return p.finishDerivedTable(query, start)
	}

	p.nextToken()

	inner := p.parseTableReferences()
	if inner == nil {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	group := &ast.ParenTableExpr{Expr: inner}
	group.SetSpan(mergeSpan(start, p.curTok.Span))
	return group
}

// finishDerivedTable requires the alias of a derived table.
func (p *Parser) finishDerivedTable(query ast.Query, start lexer.Span) ast.TableExpr {
	alias, ok := p.parseOptionalAlias()
	if !ok {
		return nil
	}
	if alias == nil {
		p.reportCode(diag.CodeSyntaxUnexpectedToken, "every derived table must have an alias, found "+p.peekTok.Describe(), p.peekTok)
		return nil
	}

	derived := &ast.DerivedTable{Query: query, Alias: alias}
	derived.SetSpan(mergeSpan(start, p.curTok.Span))
	return derived
}
