package parser

import (
	"github.com/sqlfront/sqlfront/internal/lexer"
)

type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType

	AllowEmpty bool

	// What names the element in "expected X, found Y" messages.
	What string
}

type delimitedResult[T any] struct {
	Items []T
}

// parseDelimited parses separator-delimited items up to cfg.Closing. On
// entry curTok is the first token after the opening delimiter; on success
// curTok is the closing token. parseItem starts on its first token and
// leaves curTok on its last.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	var result delimitedResult[T]

	if cfg.Separator == "" {
		cfg.Separator = lexer.COMMA
	}

	if cfg.Closing == "" {
		panic("parseDelimited requires a closing token")
	}

	what := cfg.What
	if what == "" {
		what = "element"
	}

	if p.curTok.Type == cfg.Closing {
		if cfg.AllowEmpty {
			return result, true
		}
		p.reportExpected(what, p.curTok)
		return result, false
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		switch p.peekTok.Type {
		case cfg.Separator:
			p.nextToken() // move to separator
			p.nextToken() // move to next element
			continue
		case cfg.Closing:
			p.nextToken()
			return result, true
		default:
			p.reportExpected("'"+string(cfg.Separator)+"' or '"+string(cfg.Closing)+"'", p.peekTok)
			return result, false
		}
	}
}

// parseCommaList parses item (, item)* with no closing delimiter. On
// success curTok is the last token of the last item.
func parseCommaList[T any](p *Parser, parseItem func() (T, bool)) ([]T, bool) {
	var items []T
	for {
		item, ok := parseItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)

		if !p.peekIs(lexer.COMMA) {
			return items, true
		}
		p.nextToken() // ','
		p.nextToken() // next item
	}
}
