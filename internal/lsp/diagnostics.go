package lsp

import (
	"context"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/oboki/sqlfluff-formatter/internal/runner"
)

// lintAndPublish lints the current document content and publishes the
// findings. Runs in its own goroutine; a panic or error here must never
// reach a request handler.
func (s *Server) lintAndPublish(uri string) {
	defer func() { _ = recover() }()

	if s.formatter == nil {
		return
	}
	doc, ok := s.docs.Get(uri)
	if !ok {
		return
	}

	violations, err := s.formatter.Lint(context.Background(), doc.Content)
	if err != nil {
		s.log.Errorf("lint %s: %v", uri, err)
		return
	}

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toDiagnostics(violations),
	})
}

// lintFormatted reports on a freshly formatted result. Fire-and-forget:
// the format result is already resolved, so failures are only logged.
func (s *Server) lintFormatted(sql string) {
	defer func() { _ = recover() }()

	if s.formatter == nil {
		return
	}
	violations, err := s.formatter.Lint(context.Background(), sql)
	if err != nil {
		s.log.Noticef("post-format lint failed: %v", err)
		return
	}
	s.log.Infof("post-format lint: %d violations remain", len(violations))
}

func toDiagnostics(violations []runner.Violation) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	source := "sqlfluff"

	diagnostics := make([]protocol.Diagnostic, 0, len(violations))
	for _, v := range violations {
		line := safeUint(v.Line - 1)
		col := safeUint(v.Col - 1)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + 1},
			},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: v.Rule},
			Source:   &source,
			Message:  v.Message,
		})
	}
	return diagnostics
}
