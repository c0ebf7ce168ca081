// Package lsp serves SQL diagnostics, formatting, completion, hover and
// alias navigation over the Language Server Protocol.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
	"github.com/sqlfront/sqlfront/internal/parser"
)

// Server is a language server speaking JSON-RPC over a byte stream.
type Server struct {
	in  *bufio.Reader
	out io.Writer

	// writeMu serialises frames on out.
	writeMu sync.Mutex

	// documents tracks open files by URI.
	documents map[string]*Document
	mu        sync.RWMutex

	dialect  lexer.Dialect
	maxDepth int
	logger   *slog.Logger

	shutdown bool
}

// Document is an open file and the result of its last parse.
type Document struct {
	URI         string
	Content     string
	Version     int
	Script      *ast.Script
	Diagnostics []diag.Diagnostic
}

// Option configures a Server.
type Option func(*Server)

// WithDialect selects the dialect documents are parsed with.
func WithDialect(d lexer.Dialect) Option {
	return func(s *Server) {
		s.dialect = d
	}
}

// WithMaxDepth sets the parser nesting limit.
func WithMaxDepth(n int) Option {
	return func(s *Server) {
		s.maxDepth = n
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server reading requests from r and writing responses
// and notifications to w.
func NewServer(r io.Reader, w io.Writer, opts ...Option) *Server {
	s := &Server{
		in:        bufio.NewReader(r),
		out:       w,
		documents: make(map[string]*Document),
		dialect:   lexer.MySQL(),
		maxDepth:  parser.DefaultMaxDepth,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// errExit ends Run after an exit notification.
var errExit = errors.New("exit")

// Run serves messages until the input ends, an exit notification arrives or
// ctx is cancelled between messages.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			s.logger.Warn("malformed JSON-RPC message", "err", err)
			continue
		}

		if err := s.handleMessage(&msg); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

// readMessage reads one Content-Length framed message body.
func (s *Server) readMessage() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" && contentLength < 0 {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read header: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid Content-Length %q", value)
		}
		contentLength = n
	}

	if contentLength < 0 {
		return nil, errors.New("message without Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.in, body); err != nil {
		return nil, fmt.Errorf("read message body: %w", err)
	}
	return body, nil
}

// handleMessage dispatches a request or notification. Only transport
// failures and exit are returned as errors.
func (s *Server) handleMessage(msg *jsonrpcMessage) error {
	isRequest := len(msg.ID) > 0

	if s.shutdown && msg.Method != "exit" {
		if isRequest {
			return s.replyError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.reply(msg.ID, s.initialize())
	case "initialized", "$/cancelRequest", "workspace/didChangeConfiguration":
		return nil
	case "shutdown":
		s.shutdown = true
		return s.reply(msg.ID, nil)
	case "exit":
		return errExit
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	}

	if isRequest {
		return s.replyError(msg.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
	s.logger.Debug("ignoring notification", "method", msg.Method)
	return nil
}

func (s *Server) initialize() InitializeResult {
	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: textDocumentSyncFull,
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{"."},
			},
			HoverProvider:              true,
			DefinitionProvider:         true,
			DocumentFormattingProvider: true,
		},
		ServerInfo: ServerInfo{
			Name:    "sqlfront",
			Version: "0.1.0",
		},
	}
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didOpen params", "err", err)
		return nil
	}

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(doc)

	s.mu.Lock()
	s.documents[doc.URI] = doc
	s.mu.Unlock()

	return s.publishDiagnostics(doc)
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didChange params", "err", err)
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}

	s.mu.RLock()
	_, ok := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	// Full sync: the last change carries the whole text.
	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.ContentChanges[len(params.ContentChanges)-1].Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(doc)

	s.mu.Lock()
	s.documents[doc.URI] = doc
	s.mu.Unlock()

	return s.publishDiagnostics(doc)
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) error {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Warn("invalid didClose params", "err", err)
		return nil
	}

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear the diagnostics the client still shows for the file.
	return s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
}

// document returns the open document for uri.
func (s *Server) document(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[uri]
	return doc, ok
}

// updateDocument parses doc and records its tree and diagnostics.
func (s *Server) updateDocument(doc *Document) {
	script, diags, err := parser.Parse(doc.Content,
		parser.WithFilename(uriToPath(doc.URI)),
		parser.WithDialect(s.dialect),
		parser.WithMaxDepth(s.maxDepth),
	)
	if err != nil {
		s.logger.Error("parser failure", "uri", doc.URI, "err", err)
		diags = append(diags, diag.Diagnostic{
			Stage:    diag.StageParser,
			Severity: diag.SeverityError,
			Message:  err.Error(),
			Span:     diag.Span{Line: 1, Column: 1},
		})
	}

	doc.Script = script
	doc.Diagnostics = diags

	s.logger.Debug("parsed document", "uri", doc.URI, "version", doc.Version, "diagnostics", len(diags))
}

// hasErrors reports whether the last parse of doc failed anywhere.
func (doc *Document) hasErrors() bool {
	for _, d := range doc.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return doc.Script == nil
}

func (s *Server) publishDiagnostics(doc *Document) error {
	out := make([]Diagnostic, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		out = append(out, Diagnostic{
			Range:    spanRange(doc.Content, d.Span),
			Severity: diagnosticSeverity(d.Severity),
			Code:     string(d.Code),
			Source:   "sqlfront",
			Message:  d.Message,
		})
	}

	return s.notify("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     doc.Version,
		Diagnostics: out,
	})
}

func diagnosticSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SeverityWarning:
		return severityWarning
	case diag.SeverityNote:
		return severityInformation
	default:
		return severityError
	}
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return uri
	}
	// file:///C:/x on Windows
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return path
}

func (s *Server) reply(id json.RawMessage, result any) error {
	return s.write(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) replyError(id json.RawMessage, code int, message string) error {
	return s.write(errorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonrpcError{Code: code, Message: message},
	})
}

// replyInvalidParams answers a request whose params did not decode.
func (s *Server) replyInvalidParams(id json.RawMessage, err error) error {
	return s.replyError(id, codeInvalidParams, fmt.Sprintf("invalid params: %v", err))
}

func (s *Server) notify(method string, params any) error {
	return s.write(notification{JSONRPC: "2.0", Method: method, Params: params})
}

// write sends one framed message.
func (s *Server) write(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}
