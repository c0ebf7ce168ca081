package lsp

import (
	"encoding/json"
	"slices"
	"strings"
	"unicode"

	"github.com/sqlfront/sqlfront/internal/ast"
)

// CompletionParams represents completion request parameters.
type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

type CompletionContext struct {
	TriggerKind      int    `json:"triggerKind"`
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

// CompletionList represents a list of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type CompletionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleCompletion(msg *jsonrpcMessage) error {
	var params CompletionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.replyInvalidParams(msg.ID, err)
	}

	doc, ok := s.document(params.TextDocument.URI)
	if !ok {
		return s.reply(msg.ID, CompletionList{Items: []CompletionItem{}})
	}

	return s.reply(msg.ID, s.complete(doc, params.Position))
}

// complete offers the word being typed at pos: reserved words, tables and
// columns named anywhere in the document. After a '.' only columns are
// offered.
func (s *Server) complete(doc *Document, pos Position) CompletionList {
	runes := []rune(doc.Content)
	offset := min(positionToOffset(doc.Content, pos), len(runes))

	start := offset
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	prefix := string(runes[start:offset])
	afterDot := start > 0 && runes[start-1] == '.'

	tables, columns := documentNames(doc.Script)

	items := []CompletionItem{}
	add := func(label string, kind int, detail string) {
		if len(label) >= len(prefix) && strings.EqualFold(label[:len(prefix)], prefix) {
			items = append(items, CompletionItem{Label: label, Kind: kind, Detail: detail})
		}
	}

	if !afterDot {
		for _, kw := range s.dialect.Keywords() {
			add(kw, completionKindKeyword, "keyword")
		}
		for _, name := range tables {
			add(name, completionKindClass, "table")
		}
	}
	for _, name := range columns {
		add(name, completionKindField, "column")
	}

	return CompletionList{Items: items}
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// documentNames collects the table and column names used in script, each
// sorted and without duplicates.
func documentNames(script *ast.Script) (tables, columns []string) {
	if script == nil {
		return nil, nil
	}

	seenTables := make(map[string]bool)
	seenColumns := make(map[string]bool)

	ast.Walk(script, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.TableName:
			if !seenTables[n.Name.Name] {
				seenTables[n.Name.Name] = true
				tables = append(tables, n.Name.Name)
			}
			return false
		case *ast.ColumnDef:
			if !seenColumns[n.Name.Name] {
				seenColumns[n.Name.Name] = true
				columns = append(columns, n.Name.Name)
			}
		case *ast.ColumnRef:
			if name := n.Name(); !seenColumns[name] {
				seenColumns[name] = true
				columns = append(columns, name)
			}
			return false
		}
		return true
	})

	slices.Sort(tables)
	slices.Sort(columns)
	return tables, columns
}
