package lexer

// TokenType represents the type of a token
type TokenType string

// Kind is the coarse classification of a token.
type Kind int

const (
	KindIllegal Kind = iota
	KindEOF
	KindKeyword
	KindIdent
	KindNumber
	KindString
	KindParam
	KindOperator
	KindPunct
	KindDirective
)

var kindNames = [...]string{
	KindIllegal:   "illegal",
	KindEOF:       "end of input",
	KindKeyword:   "keyword",
	KindIdent:     "identifier",
	KindNumber:    "number",
	KindString:    "string",
	KindParam:     "parameter",
	KindOperator:  "operator",
	KindPunct:     "punctuation",
	KindDirective: "directive",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // rune offset of the first rune
	End      int    // exclusive end offset
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Kind  Kind
	Raw   string // exact runes from source
	Value string // decoded value: unquoted strings and identifiers, upper-cased keywords
	Span  Span   // source location information
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsWord reports whether the token is an unquoted identifier spelled word,
// compared case-insensitively. Non-reserved words such as ENGINE or QUICK are
// matched this way.
func (t Token) IsWord(word string) bool {
	if t.Type != IDENT || t.Quoted() {
		return false
	}
	return equalFold(t.Value, word)
}

// Quoted reports whether an identifier token was written with quotes.
func (t Token) Quoted() bool {
	return t.Type == IDENT && len(t.Raw) > 0 && (t.Raw[0] == '`' || t.Raw[0] == '"')
}

// Describe renders the token for "found X" messages.
func (t Token) Describe() string {
	switch t.Kind {
	case KindEOF:
		return "end of input"
	case KindKeyword:
		return "keyword " + t.Value
	case KindString:
		return "string " + t.Raw
	case KindIdent:
		return "identifier " + t.Raw
	}
	return "'" + t.Raw + "'"
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// DELIMITER is a client directive line; Value holds the new terminator.
	DELIMITER TokenType = "DELIMITER"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // name, `quoted name`
	INT    TokenType = "INT"    // 1343456
	FLOAT  TokenType = "FLOAT"  // 3.14, .5, 1e9
	HEX    TokenType = "HEX"    // 0x1F, X'1F'
	BIT    TokenType = "BIT"    // 0b101, B'101'
	STRING TokenType = "STRING" // 'hello'

	// Parameters and variables
	PARAM    TokenType = "?"
	VARIABLE TokenType = "@"
	SYSVAR   TokenType = "@@"

	// Operators
	EQ           TokenType = "="
	NULL_SAFE_EQ TokenType = "<=>"
	NOT_EQ       TokenType = "<>" // also written !=
	LT           TokenType = "<"
	LE           TokenType = "<="
	GT           TokenType = ">"
	GE           TokenType = ">="
	PLUS         TokenType = "+"
	MINUS        TokenType = "-"
	ASTERISK     TokenType = "*"
	SLASH        TokenType = "/"
	PERCENT      TokenType = "%"
	AMPERSAND    TokenType = "&"
	LOGICAL_AND  TokenType = "&&"
	PIPE         TokenType = "|"
	PIPES        TokenType = "||"
	CARET        TokenType = "^"
	TILDE        TokenType = "~"
	BANG         TokenType = "!"
	SHL          TokenType = "<<"
	SHR          TokenType = ">>"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"

	// Keywords
	ALL           TokenType = "ALL"
	AND           TokenType = "AND"
	AS            TokenType = "AS"
	ASC           TokenType = "ASC"
	BETWEEN       TokenType = "BETWEEN"
	BY            TokenType = "BY"
	CASCADE       TokenType = "CASCADE"
	CASE          TokenType = "CASE"
	CHARACTER     TokenType = "CHARACTER"
	CHECK         TokenType = "CHECK"
	COLLATE       TokenType = "COLLATE"
	CONSTRAINT    TokenType = "CONSTRAINT"
	CREATE        TokenType = "CREATE"
	CROSS         TokenType = "CROSS"
	DEFAULT       TokenType = "DEFAULT"
	DELAYED       TokenType = "DELAYED"
	DELETE        TokenType = "DELETE"
	DESC          TokenType = "DESC"
	DISTINCT      TokenType = "DISTINCT"
	DISTINCTROW   TokenType = "DISTINCTROW"
	DIV           TokenType = "DIV"
	DROP          TokenType = "DROP"
	ELSE          TokenType = "ELSE"
	END           TokenType = "END"
	EXISTS        TokenType = "EXISTS"
	FALSE         TokenType = "FALSE"
	FOREIGN       TokenType = "FOREIGN"
	FROM          TokenType = "FROM"
	FULLTEXT      TokenType = "FULLTEXT"
	GROUP         TokenType = "GROUP"
	HAVING        TokenType = "HAVING"
	HIGH_PRIORITY TokenType = "HIGH_PRIORITY"
	IF            TokenType = "IF"
	IGNORE        TokenType = "IGNORE"
	IN            TokenType = "IN"
	INDEX         TokenType = "INDEX"
	INNER         TokenType = "INNER"
	INSERT        TokenType = "INSERT"
	INTO          TokenType = "INTO"
	IS            TokenType = "IS"
	JOIN          TokenType = "JOIN"
	KEY           TokenType = "KEY"
	LEFT          TokenType = "LEFT"
	LIKE          TokenType = "LIKE"
	LIMIT         TokenType = "LIMIT"
	LOW_PRIORITY  TokenType = "LOW_PRIORITY"
	MOD           TokenType = "MOD"
	NATURAL       TokenType = "NATURAL"
	NOT           TokenType = "NOT"
	NULL          TokenType = "NULL"
	ON            TokenType = "ON"
	OR            TokenType = "OR"
	ORDER         TokenType = "ORDER"
	OUTER         TokenType = "OUTER"
	PRIMARY       TokenType = "PRIMARY"
	REFERENCES    TokenType = "REFERENCES"
	REGEXP        TokenType = "REGEXP"
	REPLACE       TokenType = "REPLACE"
	RESTRICT      TokenType = "RESTRICT"
	RIGHT         TokenType = "RIGHT"
	SELECT        TokenType = "SELECT"
	SET           TokenType = "SET"
	SPATIAL       TokenType = "SPATIAL"
	STRAIGHT_JOIN TokenType = "STRAIGHT_JOIN"
	TABLE         TokenType = "TABLE"
	THEN          TokenType = "THEN"
	TRUE          TokenType = "TRUE"
	UNION         TokenType = "UNION"
	UNIQUE        TokenType = "UNIQUE"
	UNSIGNED      TokenType = "UNSIGNED"
	UPDATE        TokenType = "UPDATE"
	USE           TokenType = "USE"
	USING         TokenType = "USING"
	VALUES        TokenType = "VALUES"
	WHEN          TokenType = "WHEN"
	WHERE         TokenType = "WHERE"
	WITH          TokenType = "WITH"
	XOR           TokenType = "XOR"
	ZEROFILL      TokenType = "ZEROFILL"
)

// standardKeywords are reserved in every dialect.
var standardKeywords = map[string]TokenType{
	"ALL":        ALL,
	"AND":        AND,
	"AS":         AS,
	"ASC":        ASC,
	"BETWEEN":    BETWEEN,
	"BY":         BY,
	"CASCADE":    CASCADE,
	"CASE":       CASE,
	"CHARACTER":  CHARACTER,
	"CHECK":      CHECK,
	"COLLATE":    COLLATE,
	"CONSTRAINT": CONSTRAINT,
	"CREATE":     CREATE,
	"CROSS":      CROSS,
	"DEFAULT":    DEFAULT,
	"DELETE":     DELETE,
	"DESC":       DESC,
	"DISTINCT":   DISTINCT,
	"DROP":       DROP,
	"ELSE":       ELSE,
	"END":        END,
	"EXISTS":     EXISTS,
	"FALSE":      FALSE,
	"FOREIGN":    FOREIGN,
	"FROM":       FROM,
	"GROUP":      GROUP,
	"HAVING":     HAVING,
	"IF":         IF,
	"IN":         IN,
	"INDEX":      INDEX,
	"INNER":      INNER,
	"INSERT":     INSERT,
	"INTO":       INTO,
	"IS":         IS,
	"JOIN":       JOIN,
	"KEY":        KEY,
	"LEFT":       LEFT,
	"LIKE":       LIKE,
	"LIMIT":      LIMIT,
	"NATURAL":    NATURAL,
	"NOT":        NOT,
	"NULL":       NULL,
	"ON":         ON,
	"OR":         OR,
	"ORDER":      ORDER,
	"OUTER":      OUTER,
	"PRIMARY":    PRIMARY,
	"REFERENCES": REFERENCES,
	"RESTRICT":   RESTRICT,
	"RIGHT":      RIGHT,
	"SELECT":     SELECT,
	"SET":        SET,
	"TABLE":      TABLE,
	"THEN":       THEN,
	"TRUE":       TRUE,
	"UNION":      UNION,
	"UNIQUE":     UNIQUE,
	"UPDATE":     UPDATE,
	"USING":      USING,
	"VALUES":     VALUES,
	"WHEN":       WHEN,
	"WHERE":      WHERE,
	"WITH":       WITH,
}

// mysqlKeywords extend standardKeywords for the MySQL dialect.
var mysqlKeywords = map[string]TokenType{
	"DELAYED":       DELAYED,
	"DISTINCTROW":   DISTINCTROW,
	"DIV":           DIV,
	"FULLTEXT":      FULLTEXT,
	"HIGH_PRIORITY": HIGH_PRIORITY,
	"IGNORE":        IGNORE,
	"LOW_PRIORITY":  LOW_PRIORITY,
	"MOD":           MOD,
	"REGEXP":        REGEXP,
	"REPLACE":       REPLACE,
	"RLIKE":         REGEXP,
	"SPATIAL":       SPATIAL,
	"STRAIGHT_JOIN": STRAIGHT_JOIN,
	"UNSIGNED":      UNSIGNED,
	"USE":           USE,
	"XOR":           XOR,
	"ZEROFILL":      ZEROFILL,
}

// equalFold compares ASCII words case-insensitively without allocating.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
