package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/sqlfront/sqlfront/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalChar LexerErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedIdent
	ErrUnterminatedComment
	ErrMalformedNumber
	ErrMissingDelimiter
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalChar:
		return diag.CodeLexIllegalChar
	case ErrUnterminatedString:
		return diag.CodeLexUnterminatedString
	case ErrUnterminatedIdent:
		return diag.CodeLexUnterminatedIdent
	case ErrUnterminatedComment:
		return diag.CodeLexUnterminatedComment
	case ErrMalformedNumber:
		return diag.CodeLexMalformedNumber
	case ErrMissingDelimiter:
		return diag.CodeLexMissingDelimiter
	default:
		return diag.Code("LEX_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     e.Span.ToDiag(),
	}
}

// ToDiag converts a token span into a diagnostic span.
func (s Span) ToDiag() diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// Comment is a comment the lexer skipped. Executable comments are recorded
// as well, although their body is lexed as SQL.
type Comment struct {
	Text string
	Span Span
	// Trailing is set when a token precedes the comment on its line.
	Trailing   bool
	Executable bool
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 at EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	dialect  Dialect
	filename string

	// execComment is set while inside a /*! ... */ executable comment.
	execComment      bool
	execCommentStart Span

	// delimiter is the terminator set by a DELIMITER directive, "" for ';'.
	delimiter string
	// lineHasToken is set once a token was returned on the current line.
	lineHasToken bool
	// boundary is set between statements, where a directive may appear.
	boundary bool

	comments []Comment
	errors   []LexerError
}

// New creates a lexer for input using the given dialect.
func New(input string, dialect Dialect) *Lexer {
	l := &Lexer{
		input:    []rune(input),
		pos:      -1, // start before first rune
		line:     1,
		column:   0, // will be 1 after first read()
		dialect:  dialect,
		boundary: true,
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes every subsequent span to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Errors returns the lexical errors found so far, in source order.
func (l *Lexer) Errors() []LexerError {
	return l.errors
}

// Comments returns the comments skipped so far, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

// Dialect returns the dialect the lexer was created with.
func (l *Lexer) Dialect() Dialect {
	return l.dialect
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.errors = append(l.errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// read advances the lexer to the next character. line/column always reflect
// the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// Normalize position to virtual EOF
		l.pos = inputLen
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			l.column = 1
		}
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

// peekAt returns the character n positions after the current one.
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentSpanStart captures the position of the character at l.pos.
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

func (l *Lexer) span(startLine, startColumn, startPos int) Span {
	return Span{
		Filename: l.filename,
		Line:     startLine,
		Column:   startColumn,
		Start:    startPos,
		End:      l.pos,
	}
}

// makeToken creates a token ending at the current position.
func (l *Lexer) makeToken(tokType TokenType, kind Kind, startLine, startColumn, startPos int, value string) Token {
	return Token{
		Type:  tokType,
		Kind:  kind,
		Raw:   string(l.input[startPos:l.pos]),
		Value: value,
		Span:  l.span(startLine, startColumn, startPos),
	}
}

// operator consumes width runes and returns them as a token of type tt.
func (l *Lexer) operator(tt TokenType, kind Kind, width int) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for i := 0; i < width; i++ {
		l.read()
	}
	raw := string(l.input[startPos:l.pos])
	return l.makeToken(tt, kind, startLine, startColumn, startPos, raw)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && isSpace(l.ch) {
		if l.ch == '\n' {
			l.lineHasToken = false
		}
		l.read()
	}
}

func (l *Lexer) addComment(executable bool, startLine, startColumn, startPos int) {
	l.comments = append(l.comments, Comment{
		Text:       string(l.input[startPos:l.pos]),
		Span:       l.span(startLine, startColumn, startPos),
		Trailing:   l.lineHasToken,
		Executable: executable,
	})
}

// skipLineComment skips to the end of the line; the newline itself is left
// for skipWhitespace.
func (l *Lexer) skipLineComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.read()
	}
}

// skipBlockComment skips a /* */ comment whose opening has been consumed.
// MySQL block comments do not nest.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) {
	for {
		if l.atEOF() {
			l.addError(
				ErrUnterminatedComment,
				"unterminated block comment",
				l.span(startLine, startColumn, startPos),
			)
			return
		}
		if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			return
		}
		l.read()
	}
}

// isDashComment reports whether the current "--" starts a comment. MySQL
// requires whitespace or end of input after the second dash.
func (l *Lexer) isDashComment() bool {
	if l.ch != '-' || l.peek() != '-' {
		return false
	}
	next := l.peekAt(2)
	return l.pos+2 >= len(l.input) || isSpace(next) || unicode.IsControl(next)
}

// NextToken returns the next token from the input. At end of input it keeps
// returning EOF.
func (l *Lexer) NextToken() Token {
	tok := l.next()
	l.lineHasToken = true
	l.boundary = tok.Type == SEMICOLON || tok.Type == DELIMITER
	return tok
}

func (l *Lexer) next() Token {
	for {
		l.skipWhitespace()

		startLine, startColumn, startPos := l.currentSpanStart()

		if l.atEOF() {
			if l.execComment {
				l.execComment = false
				l.addError(ErrUnterminatedComment, "unterminated executable comment", l.execCommentStart)
			}
			return l.makeToken(EOF, KindEOF, startLine, startColumn, startPos, "")
		}

		if l.atDelimiter() {
			return l.operator(SEMICOLON, KindPunct, len([]rune(l.delimiter)))
		}
		if l.atDirective() {
			return l.readDelimiter()
		}

		switch l.ch {
		case '-':
			if l.isDashComment() {
				l.skipLineComment()
				l.addComment(false, startLine, startColumn, startPos)
				continue
			}
			return l.operator(MINUS, KindOperator, 1)

		case '#':
			if l.dialect.HashComments {
				l.skipLineComment()
				l.addComment(false, startLine, startColumn, startPos)
				continue
			}
			return l.illegal()

		case '/':
			if l.peek() != '*' {
				return l.operator(SLASH, KindOperator, 1)
			}
			if l.dialect.ExecutableComments && l.peekAt(2) == '!' && !l.execComment {
				l.read() // '/'
				l.read() // '*'
				l.read() // '!'
				for isDigit(l.ch) {
					l.read()
				}
				l.execComment = true
				l.execCommentStart = l.span(startLine, startColumn, startPos)
				continue
			}
			l.read()
			l.read()
			l.skipBlockComment(startLine, startColumn, startPos)
			l.addComment(false, startLine, startColumn, startPos)
			continue

		case '*':
			if l.execComment && l.peek() == '/' {
				l.read()
				l.read()
				l.execComment = false
				start := l.execCommentStart
				l.addComment(true, start.Line, start.Column, start.Start)
				continue
			}
			return l.operator(ASTERISK, KindOperator, 1)

		case '=':
			return l.operator(EQ, KindOperator, 1)

		case '<':
			switch {
			case l.peek() == '=' && l.peekAt(2) == '>':
				return l.operator(NULL_SAFE_EQ, KindOperator, 3)
			case l.peek() == '=':
				return l.operator(LE, KindOperator, 2)
			case l.peek() == '>':
				return l.operator(NOT_EQ, KindOperator, 2)
			case l.peek() == '<':
				return l.operator(SHL, KindOperator, 2)
			default:
				return l.operator(LT, KindOperator, 1)
			}

		case '>':
			switch l.peek() {
			case '=':
				return l.operator(GE, KindOperator, 2)
			case '>':
				return l.operator(SHR, KindOperator, 2)
			default:
				return l.operator(GT, KindOperator, 1)
			}

		case '!':
			if l.peek() == '=' {
				return l.operator(NOT_EQ, KindOperator, 2)
			}
			return l.operator(BANG, KindOperator, 1)

		case '&':
			if l.peek() == '&' {
				return l.operator(LOGICAL_AND, KindOperator, 2)
			}
			return l.operator(AMPERSAND, KindOperator, 1)

		case '|':
			if l.peek() == '|' {
				return l.operator(PIPES, KindOperator, 2)
			}
			return l.operator(PIPE, KindOperator, 1)

		case '+':
			return l.operator(PLUS, KindOperator, 1)
		case '%':
			return l.operator(PERCENT, KindOperator, 1)
		case '^':
			return l.operator(CARET, KindOperator, 1)
		case '~':
			return l.operator(TILDE, KindOperator, 1)

		case ',':
			return l.operator(COMMA, KindPunct, 1)
		case ';':
			return l.operator(SEMICOLON, KindPunct, 1)
		case '(':
			return l.operator(LPAREN, KindPunct, 1)
		case ')':
			return l.operator(RPAREN, KindPunct, 1)

		case '.':
			if isDigit(l.peek()) {
				return l.readNumber()
			}
			return l.operator(DOT, KindPunct, 1)

		case '?':
			return l.operator(PARAM, KindParam, 1)

		case '@':
			return l.readVariable()

		case '\'':
			return l.readString()

		case '"':
			if l.dialect.AnsiQuotes {
				return l.readQuotedIdent()
			}
			return l.readString()

		case '`':
			if l.dialect.BacktickIdents {
				return l.readQuotedIdent()
			}
			return l.illegal()

		default:
			switch {
			case (l.ch == 'x' || l.ch == 'X') && l.peek() == '\'':
				return l.readQuotedNumber(HEX, isHexDigit)
			case (l.ch == 'b' || l.ch == 'B') && l.peek() == '\'':
				return l.readQuotedNumber(BIT, isBinDigit)
			case isDigit(l.ch):
				return l.readNumber()
			case isIdentStart(l.ch):
				return l.readWord()
			default:
				return l.illegal()
			}
		}
	}
}

// hasPrefix reports whether the input at the current rune starts with s.
func (l *Lexer) hasPrefix(s string) bool {
	i := l.pos
	for _, r := range s {
		if i >= len(l.input) || l.input[i] != r {
			return false
		}
		i++
	}
	return true
}

// atDelimiter reports whether a custom terminator starts at the current rune.
// It also ends words, so "a$$" is a followed by the terminator $$.
func (l *Lexer) atDelimiter() bool {
	return l.delimiter != "" && l.hasPrefix(l.delimiter)
}

// atDirective reports whether a DELIMITER directive starts here: the word
// must open its line and follow a statement terminator or the start of
// input.
func (l *Lexer) atDirective() bool {
	if !l.dialect.DelimiterDirective || !l.boundary || l.lineHasToken || l.execComment {
		return false
	}
	const word = "delimiter"
	i := l.pos
	for _, r := range word {
		if i >= len(l.input) || unicode.ToLower(l.input[i]) != r {
			return false
		}
		i++
	}
	return i >= len(l.input) || !isIdentPart(l.input[i])
}

// readDelimiter reads "DELIMITER x" and makes x the statement terminator.
// The terminator runs to the next whitespace; "DELIMITER ;" restores ';'.
func (l *Lexer) readDelimiter() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for isIdentPart(l.ch) {
		l.read()
	}
	for l.ch == ' ' || l.ch == '\t' {
		l.read()
	}
	valueStart := l.pos
	for !l.atEOF() && !isSpace(l.ch) {
		l.read()
	}
	value := string(l.input[valueStart:l.pos])

	if value == "" {
		tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, "")
		l.addError(ErrMissingDelimiter, "DELIMITER requires a terminator", tok.Span)
		return tok
	}

	l.delimiter = value
	if value == ";" {
		l.delimiter = ""
	}
	return l.makeToken(DELIMITER, KindDirective, startLine, startColumn, startPos, value)
}

// illegal consumes the current rune and reports it.
func (l *Lexer) illegal() Token {
	tok := l.operator(ILLEGAL, KindIllegal, 1)
	l.addError(
		ErrIllegalChar,
		"illegal character "+strconv.Quote(tok.Raw),
		tok.Span,
	)
	return tok
}

// readWord reads an identifier or keyword.
func (l *Lexer) readWord() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for isIdentPart(l.ch) && !l.atDelimiter() {
		l.read()
	}
	word := string(l.input[startPos:l.pos])

	tokType := l.dialect.LookupIdent(word)
	if tokType == IDENT {
		return l.makeToken(IDENT, KindIdent, startLine, startColumn, startPos, word)
	}
	return l.makeToken(tokType, KindKeyword, startLine, startColumn, startPos, strings.ToUpper(word))
}

// identTail continues a token that started like a number but turned out to
// be an identifier such as 1st_column or 0xyz.
func (l *Lexer) identTail(startLine, startColumn, startPos int) Token {
	for isIdentPart(l.ch) && !l.atDelimiter() {
		l.read()
	}
	word := string(l.input[startPos:l.pos])
	return l.makeToken(IDENT, KindIdent, startLine, startColumn, startPos, word)
}

// readNumber reads a numeric literal: decimal integers, fixed point (1.5,
// .5, 1.), exponents (1e9, 2.5E-3), hex (0x1F) and binary (0b101).
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.currentSpanStart()

	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X' || l.peek() == 'b' || l.peek() == 'B') {
		hex := l.peek() == 'x' || l.peek() == 'X'
		digitOK := isBinDigit
		tokType := BIT
		if hex {
			digitOK = isHexDigit
			tokType = HEX
		}
		l.read() // '0'
		l.read() // 'x' or 'b'
		digits := 0
		for digitOK(l.ch) {
			l.read()
			digits++
		}
		if isIdentPart(l.ch) && !l.atDelimiter() {
			return l.identTail(startLine, startColumn, startPos)
		}
		if digits == 0 {
			return l.malformedNumber(startLine, startColumn, startPos, "missing digits after "+string(l.input[startPos:l.pos]))
		}
		return l.makeToken(tokType, KindNumber, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
	}

	tokType := INT
	for isDigit(l.ch) {
		l.read()
	}

	if l.ch == '.' {
		tokType = FLOAT
		l.read()
		for isDigit(l.ch) {
			l.read()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peek()
		switch {
		case isDigit(next), (next == '+' || next == '-') && isDigit(l.peekAt(2)):
			l.read() // 'e'
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			for isDigit(l.ch) {
				l.read()
			}
			return l.makeToken(FLOAT, KindNumber, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
		case next == '+' || next == '-':
			l.read()
			l.read()
			return l.malformedNumber(startLine, startColumn, startPos, "missing exponent digits in "+string(l.input[startPos:l.pos]))
		case tokType == FLOAT:
			l.read()
			return l.malformedNumber(startLine, startColumn, startPos, "missing exponent digits in "+string(l.input[startPos:l.pos]))
		}
	}

	if tokType == INT && isIdentPart(l.ch) && !l.atDelimiter() {
		return l.identTail(startLine, startColumn, startPos)
	}

	return l.makeToken(tokType, KindNumber, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
}

func (l *Lexer) malformedNumber(startLine, startColumn, startPos int, msg string) Token {
	tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
	l.addError(ErrMalformedNumber, "malformed number: "+msg, tok.Span)
	return tok
}

// readQuotedNumber reads X'1F' and B'101' literals.
func (l *Lexer) readQuotedNumber(tokType TokenType, digitOK func(rune) bool) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // prefix
	_, digits, terminated := l.readQuoted('\'', false)
	if !terminated {
		tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, digits)
		l.addError(ErrUnterminatedString, "unterminated string literal", tok.Span)
		return tok
	}

	valid := true
	for _, r := range digits {
		if !digitOK(r) {
			valid = false
			break
		}
	}
	if tokType == HEX && len(digits)%2 != 0 {
		valid = false
	}
	if !valid {
		return l.malformedNumber(startLine, startColumn, startPos, "invalid digits in "+string(l.input[startPos:l.pos]))
	}
	return l.makeToken(tokType, KindNumber, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
}

// readString reads a '...' (or "..." outside ANSI_QUOTES) string literal.
func (l *Lexer) readString() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	_, value, terminated := l.readQuoted(l.ch, l.dialect.BackslashEscapes)
	if !terminated {
		tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, value)
		l.addError(ErrUnterminatedString, "unterminated string literal", tok.Span)
		return tok
	}
	return l.makeToken(STRING, KindString, startLine, startColumn, startPos, value)
}

// readQuotedIdent reads a `quoted` (or ANSI "quoted") identifier.
func (l *Lexer) readQuotedIdent() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	_, value, terminated := l.readQuoted(l.ch, false)
	if !terminated {
		tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, value)
		l.addError(ErrUnterminatedIdent, "unterminated quoted identifier", tok.Span)
		return tok
	}
	return l.makeToken(IDENT, KindIdent, startLine, startColumn, startPos, value)
}

// readVariable reads @name, @'name', @@name and @@session.name.
func (l *Lexer) readVariable() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read() // '@'

	tokType := VARIABLE
	if l.ch == '@' {
		tokType = SYSVAR
		l.read()
	}

	if tokType == VARIABLE && (l.ch == '\'' || l.ch == '"' || l.ch == '`') {
		_, value, terminated := l.readQuoted(l.ch, l.ch != '`' && l.dialect.BackslashEscapes)
		if !terminated {
			tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, value)
			l.addError(ErrUnterminatedString, "unterminated variable name", tok.Span)
			return tok
		}
		return l.makeToken(VARIABLE, KindParam, startLine, startColumn, startPos, value)
	}

	nameStart := l.pos
	for isIdentPart(l.ch) || l.ch == '.' {
		l.read()
	}
	if l.pos == nameStart {
		tok := l.makeToken(ILLEGAL, KindIllegal, startLine, startColumn, startPos, string(l.input[startPos:l.pos]))
		l.addError(ErrIllegalChar, "illegal character "+strconv.Quote(tok.Raw), tok.Span)
		return tok
	}
	return l.makeToken(tokType, KindParam, startLine, startColumn, startPos, string(l.input[nameStart:l.pos]))
}

// readQuoted reads a literal delimited by quote, starting at the opening
// quote. A doubled quote stands for the quote itself; backslash escapes are
// decoded when escapes is set. It returns the raw text, the decoded value
// and whether the closing quote was found.
func (l *Lexer) readQuoted(quote rune, escapes bool) (raw string, value string, terminated bool) {
	start := l.pos
	var decoded []rune

	l.read() // skip opening quote

	for {
		if l.atEOF() {
			return string(l.input[start:l.pos]), string(decoded), false
		}
		if l.ch == quote {
			if l.peek() == quote {
				decoded = append(decoded, quote)
				l.read()
				l.read()
				continue
			}
			l.read() // consume closing quote
			return string(l.input[start:l.pos]), string(decoded), true
		}
		if escapes && l.ch == '\\' {
			l.read() // skip '\'
			if l.atEOF() {
				return string(l.input[start:l.pos]), string(decoded), false
			}
			decoded = append(decoded, unescape(l.ch)...)
			l.read()
			continue
		}
		decoded = append(decoded, l.ch)
		l.read()
	}
}

// unescape decodes the character following a backslash. \% and \_ keep
// their backslash so LIKE patterns can still tell them apart.
func unescape(ch rune) []rune {
	switch ch {
	case '0':
		return []rune{0}
	case 'b':
		return []rune{'\b'}
	case 'n':
		return []rune{'\n'}
	case 'r':
		return []rune{'\r'}
	case 't':
		return []rune{'\t'}
	case 'Z':
		return []rune{'\x1a'}
	case '%', '_':
		return []rune{'\\', ch}
	default:
		return []rune{ch}
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

func isBinDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

// Tokenize lexes src to the end and returns every token, including the final
// EOF, together with the lexical errors encountered.
func Tokenize(src string, dialect Dialect) ([]Token, []LexerError) {
	l := New(src, dialect)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, l.Errors()
		}
	}
}
