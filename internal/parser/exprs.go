package parser

import (
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

var binaryOperators = map[lexer.TokenType]ast.BinaryOp{
	lexer.OR:           ast.OpOr,
	lexer.PIPES:        ast.OpOr,
	lexer.XOR:          ast.OpXor,
	lexer.AND:          ast.OpAnd,
	lexer.LOGICAL_AND:  ast.OpAnd,
	lexer.EQ:           ast.OpEq,
	lexer.NULL_SAFE_EQ: ast.OpNullSafeEq,
	lexer.NOT_EQ:       ast.OpNotEq,
	lexer.LT:           ast.OpLt,
	lexer.LE:           ast.OpLe,
	lexer.GT:           ast.OpGt,
	lexer.GE:           ast.OpGe,
	lexer.PIPE:         ast.OpBitOr,
	lexer.AMPERSAND:    ast.OpBitAnd,
	lexer.SHL:          ast.OpShl,
	lexer.SHR:          ast.OpShr,
	lexer.PLUS:         ast.OpAdd,
	lexer.MINUS:        ast.OpSub,
	lexer.ASTERISK:     ast.OpMul,
	lexer.SLASH:        ast.OpDiv,
	lexer.DIV:          ast.OpIntDiv,
	lexer.MOD:          ast.OpMod,
	lexer.PERCENT:      ast.OpMod,
	lexer.CARET:        ast.OpBitXor,
}

var unaryOperators = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS: ast.OpNeg,
	lexer.PLUS:  ast.OpPlus,
	lexer.TILDE: ast.OpBitNot,
	lexer.NOT:   ast.OpNot,
	lexer.BANG:  ast.OpBang,
}

// binaryOp resolves the operator for tok; || depends on the dialect.
func (p *Parser) binaryOp(tok lexer.Token) (ast.BinaryOp, bool) {
	if tok.Type == lexer.PIPES && p.dialect.PipesAsConcat {
		return ast.OpConcat, true
	}
	op, ok := binaryOperators[tok.Type]
	return op, ok
}

// infixPrecedence returns the binding strength of tok in infix position.
// NOT only continues an expression as NOT IN, NOT BETWEEN, NOT LIKE or
// NOT REGEXP.
func (p *Parser) infixPrecedence(tok, next lexer.Token) ast.Precedence {
	if op, ok := p.binaryOp(tok); ok {
		return op.Precedence()
	}

	switch tok.Type {
	case lexer.COLLATE:
		return ast.PrecPostfix
	case lexer.IS, lexer.IN, lexer.BETWEEN, lexer.LIKE, lexer.REGEXP:
		return ast.PrecCompare
	case lexer.NOT:
		switch next.Type {
		case lexer.IN, lexer.BETWEEN, lexer.LIKE, lexer.REGEXP:
			return ast.PrecCompare
		}
	}

	return ast.PrecLowest
}

func (p *Parser) peekPrecedence() ast.Precedence {
	return p.infixPrecedence(p.peekTok, p.peekTokenAt(1))
}

func (p *Parser) curPrecedence() ast.Precedence {
	return p.infixPrecedence(p.curTok, p.peekTok)
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(ast.PrecLowest)
}

// parseExprPrecedence parses an expression whose infix operators all bind
// tighter than precedence. Equal precedence stops the loop, which makes
// binary operators left-associative.
func (p *Parser) parseExprPrecedence(precedence ast.Precedence) ast.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportExpected("expression", p.curTok)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	opTok := p.curTok
	op := unaryOperators[opTok.Type]

	p.nextToken()

	operand := p.parseExprPrecedence(op.Precedence())
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(op, operand, mergeSpan(opTok.Span, operand.Span()))
}

// parseBinaryOperator parses BINARY x with curTok on BINARY.
func (p *Parser) parseBinaryOperator() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	operand := p.parseExprPrecedence(ast.OpBinary.Precedence())
	if operand == nil {
		return nil
	}

	return ast.NewUnaryExpr(ast.OpBinary, operand, mergeSpan(start, operand.Span()))
}

func (p *Parser) parseCollateExpr(left ast.Expr) ast.Expr {
	name, ok := p.parseNameValue()
	if !ok {
		return nil
	}

	expr := &ast.CollateExpr{Expr: left, Collation: name}
	expr.SetSpan(mergeSpan(left.Span(), p.curTok.Span))
	return expr
}

var intervalUnits = map[string]bool{
	"MICROSECOND":        true,
	"SECOND":             true,
	"MINUTE":             true,
	"HOUR":               true,
	"DAY":                true,
	"WEEK":               true,
	"MONTH":              true,
	"QUARTER":            true,
	"YEAR":               true,
	"SECOND_MICROSECOND": true,
	"MINUTE_MICROSECOND": true,
	"MINUTE_SECOND":      true,
	"HOUR_MICROSECOND":   true,
	"HOUR_SECOND":        true,
	"HOUR_MINUTE":        true,
	"DAY_MICROSECOND":    true,
	"DAY_SECOND":         true,
	"DAY_MINUTE":         true,
	"DAY_HOUR":           true,
	"YEAR_MONTH":         true,
}

func isIntervalUnit(tok lexer.Token) bool {
	if (tok.Type != lexer.IDENT && tok.Kind != lexer.KindKeyword) || tok.Quoted() {
		return false
	}
	return intervalUnits[strings.ToUpper(tok.Value)]
}

// parseIntervalExpr parses INTERVAL value unit with curTok on INTERVAL.
func (p *Parser) parseIntervalExpr() ast.Expr {
	start := p.curTok.Span

	p.nextToken()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	return p.finishInterval(start, value)
}

// parseIntervalCall handles INTERVAL followed by '('. With a single
// argument and a unit after the ')' it is INTERVAL (value) unit, otherwise
// the INTERVAL(n, n1, ...) function.
func (p *Parser) parseIntervalCall() ast.Expr {
	start := p.curTok.Span

	call, ok := p.parseFuncCall(identFromToken(p.curTok)).(*ast.FuncCall)
	if !ok {
		return nil
	}
	if len(call.Args) != 1 || call.Distinct || !isIntervalUnit(p.peekTok) {
		return call
	}

	return p.finishInterval(start, call.Args[0])
}

func (p *Parser) finishInterval(start lexer.Span, value ast.Expr) ast.Expr {
	if !isIntervalUnit(p.peekTok) {
		p.reportExpected("interval unit", p.peekTok)
		return nil
	}
	p.nextToken()

	expr := &ast.IntervalExpr{Value: value, Unit: strings.ToUpper(p.curTok.Value)}
	expr.SetSpan(mergeSpan(start, p.curTok.Span))
	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	operatorTok := p.curTok
	op, _ := p.binaryOp(operatorTok)

	p.nextToken()

	right := p.parseExprPrecedence(op.Precedence())
	if right == nil {
		return nil
	}

	return ast.NewBinaryExpr(op, left, right, mergeSpan(left.Span(), right.Span()))
}

// parseGroupedExpr handles '(' in expression position: a subquery, a row
// constructor or a parenthesised expression. The latter widens the inner
// expression's span instead of adding a node.
func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok.Span

	var sub ast.Expr
	matched, failed := p.parenQuery(siteExpr, func() bool {
		p.nextToken()
		q := p.parseQuery()
		if q == nil || !p.expect(lexer.RPAREN) {
			return false
		}
		sub = ast.NewSubqueryExpr(q, mergeSpan(start, p.curTok.Span))
		return true
	})
	if matched {
		return sub
	}
	if failed {
		return nil
	}

	p.nextToken()

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if p.peekIs(lexer.COMMA) {
		items := []ast.Expr{first}
		for p.acceptPeek(lexer.COMMA) {
			p.nextToken()
			item := p.parseExpr()
			if item == nil {
				return nil
			}
			items = append(items, item)
		}
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return ast.NewRowExpr(items, mergeSpan(start, p.curTok.Span))
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	first.SetSpan(mergeSpan(start, p.curTok.Span))
	return first
}

// parseParenQuery parses '(' query ')' with curTok on '('. The returned span
// covers the parentheses.
func (p *Parser) parseParenQuery() (ast.Query, lexer.Span, bool) {
	start := p.curTok.Span

	p.nextToken()

	q := p.parseQuery()
	if q == nil {
		return nil, lexer.Span{}, false
	}
	if !p.expect(lexer.RPAREN) {
		return nil, lexer.Span{}, false
	}

	return q, mergeSpan(start, p.curTok.Span), true
}

func (p *Parser) parseExistsExpr() ast.Expr {
	start := p.curTok.Span

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	q, _, ok := p.parseParenQuery()
	if !ok {
		return nil
	}

	expr := &ast.ExistsExpr{Query: q}
	expr.SetSpan(mergeSpan(start, p.curTok.Span))
	return expr
}

func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	not := p.acceptPeek(lexer.NOT)

	var value ast.IsValue
	switch {
	case p.peekIs(lexer.NULL):
		value = ast.IsNull
	case p.peekIs(lexer.TRUE):
		value = ast.IsTrue
	case p.peekIs(lexer.FALSE):
		value = ast.IsFalse
	case p.peekTok.IsWord("UNKNOWN"):
		value = ast.IsUnknown
	default:
		p.reportExpected("NULL, TRUE, FALSE or UNKNOWN", p.peekTok)
		return nil
	}
	p.nextToken()

	expr := &ast.IsExpr{Expr: left, Not: not, Value: value}
	expr.SetSpan(mergeSpan(left.Span(), p.curTok.Span))
	return expr
}

// parseNegatedInfix handles the NOT of NOT IN, NOT BETWEEN, NOT LIKE and
// NOT REGEXP.
func (p *Parser) parseNegatedInfix(left ast.Expr) ast.Expr {
	p.nextToken()

	switch p.curTok.Type {
	case lexer.IN:
		return p.parseInTail(left, true)
	case lexer.BETWEEN:
		return p.parseBetweenTail(left, true)
	case lexer.LIKE, lexer.REGEXP:
		return p.parseLikeTail(left, true)
	}

	p.reportExpected("IN, BETWEEN, LIKE or REGEXP", p.curTok)
	return nil
}

func (p *Parser) parseInExpr(left ast.Expr) ast.Expr {
	return p.parseInTail(left, false)
}

func (p *Parser) parseInTail(left ast.Expr, not bool) ast.Expr {
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	expr := &ast.InExpr{Expr: left, Not: not}

	matched, failed := p.parenQuery(siteInList, func() bool {
		p.nextToken()
		q := p.parseQuery()
		if q == nil || !p.expect(lexer.RPAREN) {
			return false
		}
		expr.Query = q
		return true
	})
	if failed {
		return nil
	}
	if matched {
		expr.SetSpan(mergeSpan(left.Span(), p.curTok.Span))
		return expr
	}

	p.nextToken()

	res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "expression"}, func(int) (ast.Expr, bool) {
		item := p.parseExpr()
		return item, item != nil
	})
	if !ok {
		return nil
	}

	expr.List = res.Items
	expr.SetSpan(mergeSpan(left.Span(), p.curTok.Span))
	return expr
}

func (p *Parser) parseBetweenExpr(left ast.Expr) ast.Expr {
	return p.parseBetweenTail(left, false)
}

// parseBetweenTail parses the bounds above comparison level so that the AND
// separating them is not taken as a logical operator.
func (p *Parser) parseBetweenTail(left ast.Expr, not bool) ast.Expr {
	p.nextToken()

	low := p.parseExprPrecedence(ast.PrecCompare)
	if low == nil {
		return nil
	}

	if !p.expect(lexer.AND) {
		return nil
	}
	p.nextToken()

	high := p.parseExprPrecedence(ast.PrecCompare)
	if high == nil {
		return nil
	}

	expr := &ast.BetweenExpr{Expr: left, Not: not, Low: low, High: high}
	expr.SetSpan(mergeSpan(left.Span(), high.Span()))
	return expr
}

func (p *Parser) parseLikeExpr(left ast.Expr) ast.Expr {
	return p.parseLikeTail(left, false)
}

func (p *Parser) parseLikeTail(left ast.Expr, not bool) ast.Expr {
	regexp := p.curIs(lexer.REGEXP)

	p.nextToken()

	pattern := p.parseExprPrecedence(ast.PrecCompare)
	if pattern == nil {
		return nil
	}

	expr := &ast.LikeExpr{Expr: left, Not: not, Regexp: regexp, Pattern: pattern}
	end := pattern.Span()

	if !regexp && p.acceptPeekWord("ESCAPE") {
		p.nextToken()
		escape := p.parseExprPrecedence(ast.PrecCompare)
		if escape == nil {
			return nil
		}
		expr.Escape = escape
		end = escape.Span()
	}

	expr.SetSpan(mergeSpan(left.Span(), end))
	return expr
}

func (p *Parser) parseCaseExpr() ast.Expr {
	start := p.curTok.Span
	expr := &ast.CaseExpr{}

	if !p.peekIs(lexer.WHEN) {
		p.nextToken()
		expr.Operand = p.parseExpr()
		if expr.Operand == nil {
			return nil
		}
	}

	for p.peekIs(lexer.WHEN) {
		p.nextToken()
		whenSpan := p.curTok.Span
		p.nextToken()

		cond := p.parseExpr()
		if cond == nil {
			return nil
		}
		if !p.expect(lexer.THEN) {
			return nil
		}
		p.nextToken()

		result := p.parseExpr()
		if result == nil {
			return nil
		}

		expr.Whens = append(expr.Whens, ast.NewWhenClause(cond, result, mergeSpan(whenSpan, result.Span())))
	}

	if len(expr.Whens) == 0 {
		p.reportExpected(describeType(lexer.WHEN), p.peekTok)
		return nil
	}

	if p.acceptPeek(lexer.ELSE) {
		p.nextToken()
		expr.Else = p.parseExpr()
		if expr.Else == nil {
			return nil
		}
	}

	if !p.expect(lexer.END) {
		return nil
	}

	expr.SetSpan(mergeSpan(start, p.curTok.Span))
	return expr
}

// parseCastExpr parses CAST(x AS type) and CONVERT(x, type) with curTok on
// the function name.
func (p *Parser) parseCastExpr() ast.Expr {
	start := p.curTok.Span
	convert := p.curTok.IsWord("CONVERT")

	p.nextToken() // '('
	p.nextToken()

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	if convert {
		if !p.expect(lexer.COMMA) {
			return nil
		}
	} else if !p.expect(lexer.AS) {
		return nil
	}
	p.nextToken()

	typ := p.parseCastType()
	if typ == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	expr := &ast.CastExpr{Expr: inner, Type: typ, Convert: convert}
	expr.SetSpan(mergeSpan(start, p.curTok.Span))
	return expr
}

// parseCastType accepts the cast targets, which include the keyword
// UNSIGNED and SIGNED with an optional INTEGER.
func (p *Parser) parseCastType() *ast.DataType {
	if p.curIs(lexer.UNSIGNED) || p.curTok.IsWord("UNSIGNED") || p.curTok.IsWord("SIGNED") {
		typ := ast.NewDataType(strings.ToUpper(p.curTok.Value), p.curTok.Span)
		if p.acceptPeekWord("INTEGER") || p.acceptPeekWord("INT") {
			typ.SetSpan(mergeSpan(typ.Span(), p.curTok.Span))
		}
		return typ
	}
	return p.parseDataType()
}

func (p *Parser) parseDefaultExpr() ast.Expr {
	if p.peekIs(lexer.LPAREN) {
		return p.parseKeywordCall()
	}
	return ast.NewDefaultExpr(p.curTok.Span)
}
