package lexer

import (
	"sort"
	"strings"
)

// Dialect selects the keyword set and literal rules used by the lexer. The
// boolean fields mirror the MySQL sql_mode switches that change lexing, so a
// caller can start from MySQL() and flip ANSI_QUOTES or NO_BACKSLASH_ESCAPES.
type Dialect struct {
	Name string

	// AnsiQuotes makes "..." a quoted identifier instead of a string.
	AnsiQuotes bool
	// BackslashEscapes enables \n, \', \\ ... inside string literals.
	BackslashEscapes bool
	// BacktickIdents enables `quoted identifiers`.
	BacktickIdents bool
	// HashComments enables # line comments.
	HashComments bool
	// ExecutableComments unwraps /*! ... */ so its body is lexed as SQL.
	ExecutableComments bool
	// PipesAsConcat makes || string concatenation instead of logical OR.
	PipesAsConcat bool
	// DelimiterDirective recognises "DELIMITER x" lines between statements,
	// after which x terminates statements as well as ';'.
	DelimiterDirective bool

	keywords map[string]TokenType
}

var (
	standardKeywordSet = mergeKeywords(standardKeywords)
	mysqlKeywordSet    = mergeKeywords(standardKeywords, mysqlKeywords)
)

func mergeKeywords(sets ...map[string]TokenType) map[string]TokenType {
	merged := make(map[string]TokenType)
	for _, set := range sets {
		for word, tt := range set {
			merged[word] = tt
		}
	}
	return merged
}

// MySQL returns the default MySQL dialect.
func MySQL() Dialect {
	return Dialect{
		Name:               "mysql",
		BackslashEscapes:   true,
		BacktickIdents:     true,
		HashComments:       true,
		ExecutableComments: true,
		DelimiterDirective: true,
		keywords:           mysqlKeywordSet,
	}
}

// ANSI returns a dialect following standard SQL lexing rules.
func ANSI() Dialect {
	return Dialect{
		Name:          "ansi",
		AnsiQuotes:    true,
		PipesAsConcat: true,
		keywords:      standardKeywordSet,
	}
}

// DialectByName resolves a dialect name as accepted on the command line.
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "", "mysql":
		return MySQL(), true
	case "ansi", "standard":
		return ANSI(), true
	default:
		return Dialect{}, false
	}
}

// LookupIdent returns the keyword token type for word, or IDENT.
func (d Dialect) LookupIdent(word string) TokenType {
	if tt, ok := d.keywordSet()[strings.ToUpper(word)]; ok {
		return tt
	}
	return IDENT
}

// IsKeyword reports whether word is reserved in the dialect.
func (d Dialect) IsKeyword(word string) bool {
	return d.LookupIdent(word) != IDENT
}

// Keywords returns the reserved words of the dialect in sorted order.
func (d Dialect) Keywords() []string {
	set := d.keywordSet()
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// keywordSet tolerates a zero Dialect by falling back to the standard set.
func (d Dialect) keywordSet() map[string]TokenType {
	if d.keywords == nil {
		return standardKeywordSet
	}
	return d.keywords
}
