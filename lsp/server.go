// Package lsp implements a language server that checks documents against
// EBNF grammars and reports the furthest parse failure as a diagnostic.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/dhamidi/cmb/ebnf/parse"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "ahi"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     commonlog.Logger

	// parsers by file extension
	parsers map[string]*parse.Parser

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

// NewServer compiles the grammars of every configured language.
func NewServer(version string, cfg *Config) (*Server, error) {
	s := &Server{
		version:   version,
		log:       commonlog.GetLogger("ahi.lsp"),
		parsers:   make(map[string]*parse.Parser),
		documents: make(map[protocol.DocumentUri]string),
	}

	for _, lang := range cfg.Languages {
		var opts []parse.Option
		if lang.Trivia != "" {
			opts = append(opts, parse.WithTriviaProduction(lang.Trivia))
		}
		p, err := parse.NewParser(lang.Grammar, lang.Start, opts...)
		if err != nil {
			return nil, err
		}
		for _, ext := range lang.Extensions {
			s.parsers[ext] = p
		}
		s.log.Infof("language %s: %s from %s", lang.Name, lang.Start, lang.Grammar)
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s, nil
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// Diagnose parses text with the parser registered for the extension of
// uri. It returns no diagnostics for unknown extensions and for documents
// that parse.
func (s *Server) Diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, 1)

	path, err := uriToPath(uri)
	if err != nil {
		return diagnostics
	}
	p, ok := s.parsers[filepath.Ext(path)]
	if !ok {
		return diagnostics
	}

	_, err = p.Parse(path, []byte(text))
	if err == nil {
		return diagnostics
	}

	var serr *parse.SyntaxError
	if !errors.As(err, &serr) {
		s.log.Errorf("parse %s: %s", path, err)
		return diagnostics
	}

	lineStart := serr.Position.Offset - (serr.Position.Column - 1)
	start := protocol.Position{
		Line:      protocol.UInteger(serr.Position.Line - 1),
		Character: protocol.UInteger(utf16Len(text[lineStart:serr.Position.Offset])),
	}
	end := start
	end.Character += protocol.UInteger(utf16Len(serr.Unexpected))

	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Source:   stringPtr(lsName),
		Message:  syntaxMessage(p.Start(), serr),
	})
	return diagnostics
}

func syntaxMessage(start string, serr *parse.SyntaxError) string {
	if serr.Unexpected == "" {
		return start + ": unexpected end of input"
	}
	return start + ": unexpected " + quoteRune(serr.Unexpected)
}

// utf16Len counts s in UTF-16 code units, the unit of LSP character
// offsets.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func quoteRune(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	s.publish(ctx, params.TextDocument.URI, make([]protocol.Diagnostic, 0))
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}

	s.mu.Lock()
	text, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if ok {
		s.publish(ctx, params.TextDocument.URI, s.Diagnose(params.TextDocument.URI, text))
	}
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	s.publish(ctx, uri, s.Diagnose(uri, text))
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	s.log.Debugf("publish %d diagnostic(s) for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func severityPtr(sev protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &sev
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
