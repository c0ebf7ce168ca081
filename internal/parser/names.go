package parser

import (
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// keywordFunctions are reserved words that are still function names when
// followed by '(': IF(c, a, b), LEFT(s, n), VALUES(col), ...
var keywordFunctions = []lexer.TokenType{
	lexer.IF,
	lexer.LEFT,
	lexer.RIGHT,
	lexer.REPLACE,
	lexer.MOD,
	lexer.INSERT,
	lexer.VALUES,
}

// identFromToken converts an identifier token, or a reserved word used as a
// qualified name part, into an Ident.
func identFromToken(tok lexer.Token) *ast.Ident {
	if tok.Kind == lexer.KindKeyword {
		return ast.NewIdent(tok.Raw, false, tok.Span)
	}
	return ast.NewIdent(tok.Value, tok.Quoted(), tok.Span)
}

// parseIdent requires curTok to be an identifier.
func (p *Parser) parseIdent() *ast.Ident {
	if !p.curIs(lexer.IDENT) {
		p.reportExpected("identifier", p.curTok)
		return nil
	}
	return identFromToken(p.curTok)
}

// parseQualifiedPart reads the name after a '.'. Reserved words are allowed
// there, as in t.order.
func (p *Parser) parseQualifiedPart() *ast.Ident {
	if p.peekIs(lexer.IDENT) || p.peekTok.Kind == lexer.KindKeyword {
		p.nextToken()
		return identFromToken(p.curTok)
	}
	p.reportExpected("identifier", p.peekTok)
	return nil
}

func (p *Parser) parseColumnRef() *ast.ColumnRef {
	first := p.parseIdent()
	if first == nil {
		return nil
	}

	parts := []*ast.Ident{first}
	for len(parts) < 3 && p.peekIs(lexer.DOT) {
		p.nextToken()
		part := p.parseQualifiedPart()
		if part == nil {
			return nil
		}
		parts = append(parts, part)
	}

	return ast.NewColumnRef(parts, mergeSpan(first.Span(), p.curTok.Span))
}

// parseTableName parses name or schema.name without an alias.
func (p *Parser) parseTableName() *ast.TableName {
	first := p.parseIdent()
	if first == nil {
		return nil
	}

	// t.* belongs to the caller.
	if !p.peekIs(lexer.DOT) || p.peekTokenAt(1).Type == lexer.ASTERISK {
		return ast.NewTableName(nil, first, first.Span())
	}

	p.nextToken()
	name := p.parseQualifiedPart()
	if name == nil {
		return nil
	}

	return ast.NewTableName(first, name, mergeSpan(first.Span(), name.Span()))
}

// isAliasCandidate reports whether tok can be an alias written without AS.
// FOR UPDATE and LOCK IN SHARE MODE start locking clauses instead.
func isAliasCandidate(tok, next lexer.Token) bool {
	if tok.Type != lexer.IDENT {
		return false
	}
	if tok.IsWord("FOR") && next.Type == lexer.UPDATE {
		return false
	}
	if tok.IsWord("LOCK") && next.Type == lexer.IN {
		return false
	}
	return true
}

// parseOptionalAlias consumes [AS] alias. The boolean is false only when AS
// was present without a valid alias.
func (p *Parser) parseOptionalAlias() (*ast.Ident, bool) {
	if p.acceptPeek(lexer.AS) {
		p.nextToken()
		if p.curIs(lexer.STRING) {
			return ast.NewIdent(p.curTok.Value, true, p.curTok.Span), true
		}
		alias := p.parseIdent()
		return alias, alias != nil
	}

	if isAliasCandidate(p.peekTok, p.peekTokenAt(1)) {
		p.nextToken()
		return identFromToken(p.curTok), true
	}

	return nil, true
}

// parseIdentifier parses a column reference or a call. CAST, CONVERT and ROW
// are ordinary words that get special argument syntax before '('. BINARY
// and INTERVAL are operators when an operand follows, and a word such as
// _utf8mb4 or N before a string is a character set introducer.
func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.curTok

	if !tok.Quoted() {
		switch {
		case isIntroducer(tok, p.peekTok):
			return p.parseIntroducedLiteral()
		case tok.IsWord("BINARY") && p.startsOperand(p.peekTok):
			return p.parseBinaryOperator()
		case tok.IsWord("INTERVAL") && p.peekIs(lexer.LPAREN) && p.peekTokenAt(1).Type != lexer.SELECT:
			return p.parseIntervalCall()
		case tok.IsWord("INTERVAL") && p.startsOperand(p.peekTok):
			return p.parseIntervalExpr()
		}
	}

	if p.peekIs(lexer.LPAREN) {
		switch {
		case tok.IsWord("CAST"), tok.IsWord("CONVERT"):
			return p.parseCastExpr()
		case tok.IsWord("ROW"):
			return p.parseRowConstructor()
		}
		return p.parseFuncCall(identFromToken(tok))
	}

	ref := p.parseColumnRef()
	if ref == nil {
		return nil
	}

	// db.f(1) calls a stored function.
	if len(ref.Parts) == 2 && p.peekIs(lexer.LPAREN) {
		call, ok := p.parseFuncCall(ref.Parts[1]).(*ast.FuncCall)
		if !ok {
			return nil
		}
		call.Schema = ref.Parts[0]
		call.SetSpan(mergeSpan(ref.Span(), call.Span()))
		return call
	}
	return ref
}

// startsOperand reports whether tok can begin an expression.
func (p *Parser) startsOperand(tok lexer.Token) bool {
	_, ok := p.prefixFns[tok.Type]
	return ok
}

// parseKeywordCall handles reserved words used as function names.
func (p *Parser) parseKeywordCall() ast.Expr {
	if !p.peekIs(lexer.LPAREN) {
		p.reportExpected("expression", p.curTok)
		return nil
	}
	return p.parseFuncCall(ast.NewIdent(p.curTok.Value, false, p.curTok.Span))
}

// parseFuncCall parses the argument list after name, including COUNT(*)
// and aggregate DISTINCT.
func (p *Parser) parseFuncCall(name *ast.Ident) ast.Expr {
	start := name.Span()
	call := ast.NewFuncCall(name, nil, start)

	p.nextToken() // '('

	switch {
	case p.peekIs(lexer.RPAREN):
		p.nextToken()
	case p.peekIs(lexer.ASTERISK) && p.peekTokenAt(1).Type == lexer.RPAREN:
		p.nextToken()
		p.nextToken()
		call.Star = true
	default:
		if p.acceptPeek(lexer.DISTINCT) {
			call.Distinct = true
		} else {
			p.acceptPeek(lexer.ALL)
		}
		p.nextToken()

		res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "expression"}, func(int) (ast.Expr, bool) {
			arg := p.parseExpr()
			return arg, arg != nil
		})
		if !ok {
			return nil
		}
		call.Args = res.Items
	}

	call.SetSpan(mergeSpan(start, p.curTok.Span))
	return call
}

// parseRowConstructor parses ROW(a, b, ...).
func (p *Parser) parseRowConstructor() ast.Expr {
	start := p.curTok.Span

	p.nextToken() // '('
	p.nextToken()

	res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "expression"}, func(int) (ast.Expr, bool) {
		item := p.parseExpr()
		return item, item != nil
	})
	if !ok {
		return nil
	}

	row := ast.NewRowExpr(res.Items, mergeSpan(start, p.curTok.Span))
	row.Row = true
	return row
}

// acceptPeekKeyword consumes a MySQL keyword that other dialects lex as a
// plain word, such as UNSIGNED or IGNORE.
func (p *Parser) acceptPeekKeyword(tt lexer.TokenType) bool {
	if p.peekIs(tt) || p.peekTok.IsWord(string(tt)) {
		p.nextToken()
		return true
	}
	return false
}

// parseNameValue reads the name after CHARACTER SET, COLLATE and similar
// clauses. Quoted strings are accepted as names.
func (p *Parser) parseNameValue() (string, bool) {
	switch p.peekTok.Type {
	case lexer.IDENT, lexer.STRING:
		p.nextToken()
		return p.curTok.Value, true
	}
	if p.peekTok.Kind == lexer.KindKeyword {
		p.nextToken()
		return p.curTok.Value, true
	}
	p.reportExpected("name", p.peekTok)
	return "", false
}

// parseDataType parses a column or cast type with curTok on its name.
func (p *Parser) parseDataType() *ast.DataType {
	tok := p.curTok

	switch {
	case tok.Type == lexer.IDENT && !tok.Quoted(), tok.Type == lexer.SET, tok.Type == lexer.CHARACTER:
	default:
		p.reportExpected("data type", tok)
		return nil
	}

	typ := ast.NewDataType(strings.ToUpper(tok.Value), tok.Span)
	if typ.Name == "DOUBLE" && p.acceptPeekWord("PRECISION") {
		typ.Name = "DOUBLE PRECISION"
	}

	if p.peekIs(lexer.LPAREN) {
		p.nextToken()
		p.nextToken()

		if typ.Name == "ENUM" || typ.Name == "SET" {
			res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "string"}, func(int) (string, bool) {
				if !p.curIs(lexer.STRING) {
					p.reportExpected("string", p.curTok)
					return "", false
				}
				return p.curTok.Value, true
			})
			if !ok {
				return nil
			}
			typ.Values = res.Items
		} else {
			res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "length"}, func(int) (string, bool) {
				if !p.curIs(lexer.INT) {
					p.reportExpected("length", p.curTok)
					return "", false
				}
				return p.curTok.Value, true
			})
			if !ok {
				return nil
			}
			typ.Args = res.Items
		}
	}

	for {
		switch {
		case p.acceptPeekKeyword(lexer.UNSIGNED):
			typ.Unsigned = true
		case p.acceptPeekKeyword(lexer.ZEROFILL):
			typ.Zerofill = true
		case p.peekIs(lexer.CHARACTER) && p.peekTokenAt(1).Type == lexer.SET, p.peekTok.IsWord("CHARSET"):
			if p.peekIs(lexer.CHARACTER) {
				p.nextToken()
			}
			p.nextToken()
			name, ok := p.parseNameValue()
			if !ok {
				return nil
			}
			typ.Charset = name
		case p.peekIs(lexer.COLLATE):
			p.nextToken()
			name, ok := p.parseNameValue()
			if !ok {
				return nil
			}
			typ.Collate = name
		default:
			typ.SetSpan(mergeSpan(tok.Span, p.curTok.Span))
			return typ
		}
	}
}
