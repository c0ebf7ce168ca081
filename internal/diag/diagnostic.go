package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexIllegalChar         Code = "LEX_ILLEGAL_CHAR"
	CodeLexUnterminatedString  Code = "LEX_UNTERMINATED_STRING"
	CodeLexUnterminatedIdent   Code = "LEX_UNTERMINATED_IDENT"
	CodeLexUnterminatedComment Code = "LEX_UNTERMINATED_COMMENT"
	CodeLexMalformedNumber     Code = "LEX_MALFORMED_NUMBER"
	CodeLexMissingDelimiter    Code = "LEX_MISSING_DELIMITER"

	// Parser errors
	CodeSyntaxUnexpectedToken   Code = "SYNTAX_UNEXPECTED_TOKEN"
	CodeSyntaxMissingTerminator Code = "SYNTAX_MISSING_TERMINATOR"
	CodeSyntaxUnknownStatement  Code = "SYNTAX_UNKNOWN_STATEMENT"
	CodeSyntaxInvalidClause     Code = "SYNTAX_INVALID_CLAUSE"
	CodeRecursionLimitExceeded  Code = "RECURSION_LIMIT_EXCEEDED"
)

// Span represents a location in source code.
type Span struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
	Help     string   `json:"help,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// String renders the diagnostic on a single line, e.g.
// "3:7: error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found ')'".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Message)
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}
