package lsp

import (
	"context"
	"errors"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/oboki/sqlfluff-formatter/internal/pipeline"
	"github.com/oboki/sqlfluff-formatter/internal/runner"
	"github.com/oboki/sqlfluff-formatter/internal/text"
)

// textDocumentFormatting handles textDocument/formatting: the whole
// document goes through the pipeline and comes back as one replacing
// edit, or no edit when nothing changed.
func (s *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	s.captureNotify(ctx)

	doc, ok := s.docs.Get(params.TextDocument.URI)
	if !ok || s.formatter == nil || strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	req := pipeline.Request{
		Text:      doc.Content,
		TargetEOL: text.DetectEOL(doc.Content),
	}

	formatted, err := s.formatter.Format(context.Background(), req)
	if err != nil {
		s.reportFormatError(params.TextDocument.URI, err)
		return nil, nil
	}
	if formatted == doc.Content {
		return nil, nil
	}

	go s.lintFormatted(formatted)

	return []protocol.TextEdit{
		{Range: fullRange(doc.Content), NewText: formatted},
	}, nil
}

// textDocumentRangeFormatting handles textDocument/rangeFormatting. The
// selection is de-indented before it reaches the external tool and the
// original margin is restored afterwards, so the edit is an in-place
// replacement rather than a left-shift of the surrounding code.
func (s *Server) textDocumentRangeFormatting(ctx *glsp.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	s.captureNotify(ctx)

	doc, ok := s.docs.Get(params.TextDocument.URI)
	if !ok || s.formatter == nil {
		return nil, nil
	}

	selected := sliceRange(doc.Content, params.Range)
	if strings.TrimSpace(selected) == "" {
		return nil, nil
	}

	req := pipeline.Request{
		Text:                 selected,
		IsSelection:          true,
		TargetEOL:            text.DetectEOL(doc.Content),
		FirstLineIndent:      text.CaptureIndent(firstLine(selected)),
		ContainingLineIndent: text.CaptureIndent(lineAt(doc.Content, params.Range.Start.Line)),
	}

	formatted, err := s.formatter.Format(context.Background(), req)
	if err != nil {
		s.reportFormatError(params.TextDocument.URI, err)
		return nil, nil
	}

	go s.lintFormatted(formatted)

	return []protocol.TextEdit{
		{Range: params.Range, NewText: formatted},
	}, nil
}

// reportFormatError logs the full failure and shows the user a single
// condensed message. Returning nil edits keeps the request well-formed;
// a formatting failure must never take the session down.
func (s *Server) reportFormatError(uri string, err error) {
	s.log.Errorf("formatting %s: %v", uri, err)
	if errors.Is(err, runner.ErrToolNotFound) {
		s.showError("sqlfluff was not found; install it or point the settings file at the binary or interpreter")
		return
	}
	s.showError("sqlfluff formatting failed: " + err.Error())
}
