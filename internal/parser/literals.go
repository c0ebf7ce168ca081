package parser

import (
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

var numberKinds = map[lexer.TokenType]ast.LiteralKind{
	lexer.INT:   ast.LitInt,
	lexer.FLOAT: ast.LitFloat,
	lexer.HEX:   ast.LitHex,
	lexer.BIT:   ast.LitBit,
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	return ast.NewLiteral(numberKinds[p.curTok.Type], p.curTok.Value, p.curTok.Span)
}

// parseStringLiteral folds adjacent string literals: 'a' 'b' is 'ab'.
func (p *Parser) parseStringLiteral() ast.Expr {
	span := p.curTok.Span
	value := p.curTok.Value

	for p.peekIs(lexer.STRING) {
		p.nextToken()
		value += p.curTok.Value
		span = mergeSpan(span, p.curTok.Span)
	}

	return ast.NewLiteral(ast.LitString, value, span)
}

func (p *Parser) parseNullLiteral() ast.Expr {
	return ast.NewLiteral(ast.LitNull, "NULL", p.curTok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	value := "FALSE"
	if p.curTok.Type == lexer.TRUE {
		value = "TRUE"
	}
	return ast.NewLiteral(ast.LitBool, value, p.curTok.Span)
}

// parseParam handles ?, @var and @@var. Positional markers are numbered from
// 1 in source order across the whole input.
func (p *Parser) parseParam() ast.Expr {
	tok := p.curTok

	switch tok.Type {
	case lexer.PARAM:
		p.params++
		return ast.NewParamExpr(ast.ParamPositional, "", p.params, tok.Span)
	case lexer.SYSVAR:
		return ast.NewParamExpr(ast.ParamSysVar, tok.Value, 0, tok.Span)
	default:
		return ast.NewParamExpr(ast.ParamUserVar, tok.Value, 0, tok.Span)
	}
}

// parseStringValue requires curTok to be a string literal and returns it as
// a node, for COMMENT 'text' and similar clauses.
func (p *Parser) parseStringValue() *ast.Literal {
	if !p.curIs(lexer.STRING) {
		p.reportExpected("string", p.curTok)
		return nil
	}
	return ast.NewLiteral(ast.LitString, p.curTok.Value, p.curTok.Span)
}

// isIntroducer reports whether tok is a character set introducer for next:
// _charset before a string, hex or bit literal, or N directly before a
// string.
func isIntroducer(tok, next lexer.Token) bool {
	if tok.Type != lexer.IDENT {
		return false
	}
	if strings.HasPrefix(tok.Value, "_") && len(tok.Value) > 1 {
		switch next.Type {
		case lexer.STRING, lexer.HEX, lexer.BIT:
			return true
		}
		return false
	}
	return next.Type == lexer.STRING && strings.EqualFold(tok.Value, "N") && tok.Span.End == next.Span.Start
}

// parseIntroducedLiteral parses _utf8mb4'text', _binary 0x41 and N'text'
// with curTok on the introducer.
func (p *Parser) parseIntroducedLiteral() ast.Expr {
	tok := p.curTok
	introducer := strings.ToLower(tok.Value)
	if introducer == "n" {
		introducer = "N"
	}

	p.nextToken()

	var lit *ast.Literal
	if p.curIs(lexer.STRING) {
		lit = p.parseStringLiteral().(*ast.Literal)
	} else {
		lit = ast.NewLiteral(numberKinds[p.curTok.Type], p.curTok.Value, p.curTok.Span)
	}
	lit.Introducer = introducer
	lit.SetSpan(mergeSpan(tok.Span, lit.Span()))
	return lit
}
