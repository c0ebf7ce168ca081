package lsp

import (
	"encoding/json"
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
)

func (s *Server) handleDefinition(msg *jsonrpcMessage) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.replyInvalidParams(msg.ID, err)
	}

	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.Script == nil {
		return s.reply(msg.ID, nil)
	}

	loc := findDefinition(doc, params.Position)
	if loc == nil {
		return s.reply(msg.ID, nil)
	}
	return s.reply(msg.ID, loc)
}

// findDefinition resolves the qualifier of the column reference under pos
// to the table or alias that introduces it, searching the enclosing
// statements from the innermost outwards so correlated subqueries resolve
// to their outer query.
func findDefinition(doc *Document, pos Position) *Location {
	path := nodePath(doc.Script, positionToOffset(doc.Content, pos))

	var qualifier string
	for i := len(path) - 1; i >= 0 && qualifier == ""; i-- {
		switch n := path[i].(type) {
		case *ast.ColumnRef:
			if len(n.Parts) >= 2 {
				qualifier = n.Parts[len(n.Parts)-2].Name
			}
		case *ast.StarExpr:
			if len(n.Qualifier) > 0 {
				qualifier = n.Qualifier[len(n.Qualifier)-1].Name
			}
		}
	}
	if qualifier == "" {
		return nil
	}

	for i := len(path) - 1; i >= 0; i-- {
		if def := lookupTable(tableSources(path[i]), qualifier); def != nil {
			span := def.Span()
			return &Location{
				URI: doc.URI,
				Range: Range{
					Start: offsetToPosition(doc.Content, span.Start),
					End:   offsetToPosition(doc.Content, span.End),
				},
			}
		}
	}
	return nil
}

// tableSources returns the FROM-level table expressions n introduces.
func tableSources(n ast.Node) []ast.TableExpr {
	switch n := n.(type) {
	case *ast.SelectStmt:
		return []ast.TableExpr{n.From}
	case *ast.UpdateStmt:
		return []ast.TableExpr{n.Table}
	case *ast.DeleteStmt:
		return []ast.TableExpr{n.From, n.Using}
	}
	return nil
}

// lookupTable finds the alias or table name that name refers to. Derived
// tables are not searched inside, their queries have their own scope.
func lookupTable(sources []ast.TableExpr, name string) *ast.Ident {
	var found *ast.Ident
	for _, src := range sources {
		if src == nil {
			continue
		}
		ast.Walk(src, func(n ast.Node) bool {
			if found != nil {
				return false
			}
			switch t := n.(type) {
			case *ast.TableName:
				switch {
				case t.Alias != nil:
					if strings.EqualFold(t.Alias.Name, name) {
						found = t.Alias
					}
				case strings.EqualFold(t.Name.Name, name):
					found = t.Name
				}
				return false
			case *ast.DerivedTable:
				if strings.EqualFold(t.Alias.Name, name) {
					found = t.Alias
				}
				return false
			case *ast.JoinExpr, *ast.ParenTableExpr:
				return true
			}
			return false
		})
	}
	return found
}
