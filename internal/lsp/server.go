// Package lsp exposes the formatting pipeline to editors over the
// Language Server Protocol: whole-document and range formatting backed
// by the external sqlfluff tool, plus lint diagnostics.
package lsp

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/oboki/sqlfluff-formatter/internal/config"
	"github.com/oboki/sqlfluff-formatter/internal/pipeline"
	"github.com/oboki/sqlfluff-formatter/internal/runner"
	"github.com/oboki/sqlfluff-formatter/internal/sqlconf"
)

const serverName = "sqlfluff-lsp"

// formatService is the slice of the pipeline the server uses; tests
// substitute a fake so no external tool runs.
type formatService interface {
	Format(ctx context.Context, req pipeline.Request) (string, error)
	Lint(ctx context.Context, sql string) ([]runner.Violation, error)
}

type Server struct {
	handler  protocol.Handler
	docs     *DocumentStore
	settings config.Settings
	version  string
	log      commonlog.Logger

	rootPath  string
	formatter formatService

	// Notification function captured from the latest request, for
	// publishing diagnostics outside a request context.
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc
}

func NewServer(settings config.Settings, version string) *Server {
	s := &Server{
		docs:     NewDocumentStore(),
		settings: settings,
		version:  version,
		log:      commonlog.GetLogger(serverName),
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentFormatting:      s.textDocumentFormatting,
		TextDocumentRangeFormatting: s.textDocumentRangeFormatting,
	}

	return s
}

func (s *Server) Run() error {
	commonlog.Configure(1, nil)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	if params.RootURI != nil {
		s.rootPath = uriToPath(*params.RootURI)
	} else if params.RootPath != nil {
		s.rootPath = *params.RootPath
	}

	s.formatter = pipeline.New(s.settings, sqlconf.Lookup{
		WorkspaceRoot: s.rootPath,
		HomeDir:       homeDir(),
		BundledDir:    installDir(),
	}, s.log)

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	s.docs.Open(params.TextDocument.URI, int32(params.TextDocument.Version), params.TextDocument.Text)
	go s.lintAndPublish(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// Full sync: the last whole-document change wins. Linting waits for
	// save so the external tool is not spawned on every keystroke.
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			s.docs.Update(params.TextDocument.URI, int32(params.TextDocument.Version), c.Text)
		case protocol.TextDocumentContentChangeEvent:
			s.docs.Update(params.TextDocument.URI, int32(params.TextDocument.Version), c.Text)
		}
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	go s.lintAndPublish(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

// showError surfaces a single user-facing message; details stay in the
// log. Formatting failures never crash the host or leave a dangling
// request.
func (s *Server) showError(message string) {
	s.sendNotification(protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// installDir is where the bundled .sqlfluff.default ships: next to the
// server binary.
func installDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
