// Package pipeline runs one text-region formatting operation end to end:
// resolve the applicable sqlfluff config, reflow compact SQL, strip the
// selection's indentation, invoke the external tool, then restore the
// margin and the document's line endings.
package pipeline

import (
	"context"

	"github.com/tliron/commonlog"

	"github.com/oboki/sqlfluff-formatter/internal/config"
	"github.com/oboki/sqlfluff-formatter/internal/reflow"
	"github.com/oboki/sqlfluff-formatter/internal/runner"
	"github.com/oboki/sqlfluff-formatter/internal/sqlconf"
	"github.com/oboki/sqlfluff-formatter/internal/text"
)

// Request describes one formatting operation. It is built once per
// invocation and never shared between concurrent runs.
type Request struct {
	Text        string
	IsSelection bool
	// TargetEOL is "\n" or "\r\n"; empty defaults to "\n".
	TargetEOL string
	// FirstLineIndent is the leading whitespace of the selection's first
	// line; ContainingLineIndent that of the full document line the
	// selection starts on. Both are empty for whole-document requests.
	FirstLineIndent      string
	ContainingLineIndent string
}

// Tool is the slice of the runner the pipeline needs; tests substitute a
// mock so no external tool is required.
type Tool interface {
	Fix(ctx context.Context, sql string) (string, error)
	Lint(ctx context.Context, sql string) ([]runner.Violation, error)
}

// Formatter orchestrates formatting operations against one workspace.
type Formatter struct {
	Settings config.Settings
	Lookup   sqlconf.Lookup
	// TempDir overrides the runner's staging directory (tests only).
	TempDir string
	Log     commonlog.Logger

	newTool func(opts runner.Options) Tool
}

func New(settings config.Settings, lookup sqlconf.Lookup, log commonlog.Logger) *Formatter {
	f := &Formatter{Settings: settings, Lookup: lookup, Log: log}
	f.newTool = func(opts runner.Options) Tool {
		return runner.New(opts, log)
	}
	return f
}

// Format runs the full pipeline and returns the replacement text for the
// originally-resolved range.
func (f *Formatter) Format(ctx context.Context, req Request) (string, error) {
	resolved := sqlconf.Resolve(f.Lookup, f.Log)

	sql := reflow.Reflow(req.Text)
	if req.IsSelection {
		sql = text.StripIndent(sql, req.FirstLineIndent)
	}

	formatted, err := f.newTool(f.toolOptions(resolved)).Fix(ctx, sql)
	if err != nil {
		return "", err
	}

	if req.IsSelection {
		formatted = text.RestoreIndent(formatted, req.FirstLineIndent, req.ContainingLineIndent)
	}

	target := req.TargetEOL
	if target == "" {
		target = "\n"
	}
	return text.NormalizeEOL(formatted, target), nil
}

// Lint reports violations for the given text. Config resolution is
// repeated here rather than reused from a prior Format call; the two
// invocations are independent by design.
func (f *Formatter) Lint(ctx context.Context, sqlText string) ([]runner.Violation, error) {
	resolved := sqlconf.Resolve(f.Lookup, f.Log)
	return f.newTool(f.toolOptions(resolved)).Lint(ctx, sqlText)
}

func (f *Formatter) toolOptions(resolved sqlconf.Resolved) runner.Options {
	return runner.Options{
		Executable:   f.Settings.Executable,
		Interpreter:  f.Settings.Interpreter,
		ExcludeRules: f.Settings.ExcludeRules,
		ExtraArgs:    f.Settings.ExtraArgs,
		ConfigPath:   resolved.Path,
		TempDir:      f.TempDir,
	}
}
