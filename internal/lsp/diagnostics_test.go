package lsp

import (
	"testing"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/oboki/sqlfluff-formatter/internal/runner"
)

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	service := &fakeService{violations: []runner.Violation{
		{Line: 2, Col: 5, Rule: "LT02", Message: "Expected indent of 4 spaces."},
	}}
	s := newTestServer(service)

	ctx, notifications := capturingContext()
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     "file:///q.sql",
			Version: 1,
			Text:    "select 1\n  from t\n",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case params := <-notifications:
		published, ok := params.(*protocol.PublishDiagnosticsParams)
		if !ok {
			t.Fatalf("unexpected notification %T", params)
		}
		if published.URI != "file:///q.sql" {
			t.Errorf("URI = %q", published.URI)
		}
		if len(published.Diagnostics) != 1 {
			t.Fatalf("got %d diagnostics, want 1", len(published.Diagnostics))
		}
		d := published.Diagnostics[0]
		if d.Range.Start.Line != 1 || d.Range.Start.Character != 4 {
			t.Errorf("diagnostic start = %+v, want zero-based line 1 col 4", d.Range.Start)
		}
		if d.Message != "Expected indent of 4 spaces." {
			t.Errorf("Message = %q", d.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no diagnostics published")
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := newTestServer(&fakeService{})
	s.docs.Open("file:///q.sql", 1, "select 1\n")

	ctx, notifications := capturingContext()
	s.captureNotify(ctx)

	err := s.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///q.sql"},
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case params := <-notifications:
		published, ok := params.(*protocol.PublishDiagnosticsParams)
		if !ok {
			t.Fatalf("unexpected notification %T", params)
		}
		if len(published.Diagnostics) != 0 {
			t.Errorf("expected cleared diagnostics, got %v", published.Diagnostics)
		}
	default:
		t.Error("no clearing notification sent")
	}

	if _, ok := s.docs.Get("file:///q.sql"); ok {
		t.Error("document still open after close")
	}
}

func TestToDiagnostics(t *testing.T) {
	diagnostics := toDiagnostics([]runner.Violation{
		{Line: 1, Col: 1, Rule: "LT09", Message: "Select targets should be on a new line."},
	})

	if len(diagnostics) != 1 {
		t.Fatalf("got %d diagnostics", len(diagnostics))
	}
	d := diagnostics[0]
	if d.Source == nil || *d.Source != "sqlfluff" {
		t.Errorf("Source = %v", d.Source)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("Severity = %v", d.Severity)
	}
	if d.Code == nil || d.Code.Value != "LT09" {
		t.Errorf("Code = %v", d.Code)
	}
}
