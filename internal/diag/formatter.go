package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with a source excerpt and a caret underline:
//
//	error[SYNTAX_UNEXPECTED_TOKEN]: expected expression, found ')'
//	  --> query.sql:1:12
//	   |
//	 1 | SELECT 1 + )
//	   |            ^
type Formatter struct {
	w           io.Writer
	sourceCache map[string]string // Cache of sources by filename
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		w:           w,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source text for filename so that it does not
// need to be read from disk.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format writes one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	if !d.Span.IsValid() {
		f.formatSimple(d)
		return
	}

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil || src == "" {
		f.formatSimple(d)
		return
	}

	lines := strings.Split(src, "\n")
	if d.Span.Line > len(lines) {
		f.formatSimple(d)
		return
	}

	f.printHeader(d)
	fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())

	lineNumWidth := len(fmt.Sprintf("%d", d.Span.Line))
	gutter := strings.Repeat(" ", lineNumWidth)
	lineContent := strings.TrimRight(lines[d.Span.Line-1], "\r")

	fmt.Fprintf(f.w, " %s |\n", gutter)
	fmt.Fprintf(f.w, " %*d | %s\n", lineNumWidth, d.Span.Line, lineContent)
	fmt.Fprintf(f.w, " %s | %s\n", gutter, underline(lineContent, d.Span))

	f.printHelp(d)
}

// FormatAll writes every diagnostic in order.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for _, d := range diags {
		f.Format(d)
	}
}

// underline builds the caret line for span. Spans that run past the end of
// the line are clipped to it; empty spans get a single caret.
func underline(lineContent string, span Span) string {
	runes := []rune(lineContent)
	start := max(0, span.Column-1)
	width := max(1, span.End-span.Start)
	if start+width > len(runes) && start < len(runes) {
		width = len(runes) - start
	}

	var b strings.Builder
	for i := 0; i < start; i++ {
		if i < len(runes) && runes[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.w, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}
