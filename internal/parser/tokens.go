package parser

import (
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). Only nextToken
// and reset move the stream cursor, which keeps lookahead bookkeeping
// centralized.
func (p *Parser) nextToken() {
	switch p.curTok.Type {
	case lexer.LPAREN:
		p.parens++
	case lexer.RPAREN:
		p.parens--
	}
	p.stream.Next()
	p.syncWindow()
}

func (p *Parser) syncWindow() {
	p.curTok = p.stream.Peek(0)
	p.peekTok = p.stream.Peek(1)
}

// peekTokenAt returns the token n positions after peekTok; peekTokenAt(0)
// is peekTok itself.
func (p *Parser) peekTokenAt(n int) lexer.Token {
	return p.stream.Peek(n + 1)
}

func (p *Parser) curIs(tt lexer.TokenType) bool {
	return p.curTok.Type == tt
}

func (p *Parser) peekIs(tt lexer.TokenType) bool {
	return p.peekTok.Type == tt
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportExpected(describeType(tt), p.peekTok)
	return false
}

// expectWord is expect for non-reserved words such as ENGINE or TRANSACTION.
func (p *Parser) expectWord(word string) bool {
	if p.peekTok.IsWord(word) {
		p.nextToken()
		return true
	}

	p.reportExpected(word, p.peekTok)
	return false
}

// acceptPeek consumes the peek token when it has type tt.
func (p *Parser) acceptPeek(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}
	return false
}

// acceptPeekWord consumes the peek token when it is the unquoted word.
func (p *Parser) acceptPeekWord(word string) bool {
	if p.peekTok.IsWord(word) {
		p.nextToken()
		return true
	}
	return false
}

type parserMark struct {
	pos    lexer.Mark
	diags  int
	params int
	errPos int
	parens int
}

// mark captures everything a speculative parse may change.
func (p *Parser) mark() parserMark {
	return parserMark{
		pos:    p.stream.Mark(),
		diags:  p.reporter.Len(),
		params: p.params,
		errPos: p.errPos,
		parens: p.parens,
	}
}

// reset rewinds to m and drops the diagnostics recorded since.
func (p *Parser) reset(m parserMark) {
	p.stream.Reset(m.pos)
	p.reporter.Truncate(m.diags)
	p.params = m.params
	p.errPos = m.errPos
	p.parens = m.parens
	p.syncWindow()
}

// speculate runs fn from the current position. When fn fails the parser is
// rewound and false is returned, unless the nesting limit was hit: that
// aborts the statement, so the state and the diagnostic are kept and abort
// is set.
func (p *Parser) speculate(fn func() bool) (ok, abort bool) {
	m := p.mark()
	if fn() {
		return true, false
	}
	if p.depthExceeded {
		return false, true
	}
	p.reset(m)
	return false, false
}

// parenSite names the production trying a '(' as a query, so a failure
// recorded at one offset is only reused by the same production.
type parenSite uint8

const (
	siteExpr parenSite = iota
	siteInList
	siteTable
	siteInsert
)

type parenKey struct {
	offset int
	site   parenSite
}

// parenQueryAhead reports whether the '(' at curTok opens, possibly through
// further '(', a SELECT. The answer is shared by every '(' of the run.
func (p *Parser) parenQueryAhead() bool {
	if ahead, ok := p.queryAhead[p.curTok.Span.Start]; ok {
		return ahead
	}

	opens := []int{p.curTok.Span.Start}
	i := 1
	for ; p.stream.Peek(i).Type == lexer.LPAREN; i++ {
		opens = append(opens, p.stream.Peek(i).Span.Start)
	}
	ahead := p.stream.Peek(i).Type == lexer.SELECT

	for _, offset := range opens {
		p.queryAhead[offset] = ahead
	}
	return ahead
}

// parenQuery runs fn when the '(' at curTok opens a query. Directly after
// '(' a SELECT can only start a query, so fn runs committed and its failure
// is final. Behind further '(' the query may be an operand, so fn is
// speculative and a failure is remembered for the offset: the same tokens
// fail the same way when an enclosing speculation is retried. failed is set
// when the statement must be abandoned.
func (p *Parser) parenQuery(site parenSite, fn func() bool) (matched, failed bool) {
	if p.peekIs(lexer.SELECT) {
		if fn() {
			return true, false
		}
		return false, true
	}
	if !p.parenQueryAhead() {
		return false, false
	}

	key := parenKey{offset: p.curTok.Span.Start, site: site}
	if p.notQuery[key] {
		return false, false
	}
	matched, failed = p.speculate(fn)
	if !matched && !failed {
		p.notQuery[key] = true
	}
	return matched, failed
}
