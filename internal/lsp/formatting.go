package lsp

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/sqlfront/sqlfront/internal/format"
)

type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// handleFormatting replaces the whole document with its canonical form. A
// document with errors is left alone, since reprinting it would drop the
// statements that failed to parse, and so is one with a comment that would
// not survive.
func (s *Server) handleFormatting(msg *jsonrpcMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.replyInvalidParams(msg.ID, err)
	}

	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.hasErrors() {
		return s.reply(msg.ID, nil)
	}

	text, err := format.Script(doc.Script, format.WithDialect(s.dialect))
	if err != nil {
		s.logger.Debug("formatting skipped", "uri", params.TextDocument.URI, "err", err)
		return s.reply(msg.ID, nil)
	}
	if text == doc.Content {
		return s.reply(msg.ID, []TextEdit{})
	}

	return s.reply(msg.ID, []TextEdit{{
		Range: Range{
			End: offsetToPosition(doc.Content, utf8.RuneCountInString(doc.Content)),
		},
		NewText: text,
	}})
}
