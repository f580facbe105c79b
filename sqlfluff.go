// Package sqlfluff bridges editors and scripts to the external sqlfluff
// SQL formatter: it stages text into temp files, drives the tool through
// a chain of execution strategies, and re-integrates the result with the
// original indentation and line endings.
package sqlfluff

import (
	"context"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/oboki/sqlfluff-formatter/internal/config"
	"github.com/oboki/sqlfluff-formatter/internal/pipeline"
	"github.com/oboki/sqlfluff-formatter/internal/sqlconf"
	"github.com/oboki/sqlfluff-formatter/internal/text"
)

// Violation is one lint finding, with one-based line and column.
type Violation struct {
	Line    int
	Col     int
	Rule    string
	Message string
}

// Format formats a whole SQL text using the settings file at
// settingsPath (empty for defaults) and workspaceRoot for .sqlfluff
// discovery. The result keeps the input's line-ending convention.
func Format(ctx context.Context, settingsPath, workspaceRoot, sqlText string) (string, error) {
	f, err := newFormatter(settingsPath, workspaceRoot)
	if err != nil {
		return "", err
	}
	return f.Format(ctx, pipeline.Request{
		Text:      sqlText,
		TargetEOL: text.DetectEOL(sqlText),
	})
}

// Lint reports the violations sqlfluff finds in sqlText.
func Lint(ctx context.Context, settingsPath, workspaceRoot, sqlText string) ([]Violation, error) {
	f, err := newFormatter(settingsPath, workspaceRoot)
	if err != nil {
		return nil, err
	}
	found, err := f.Lint(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	violations := make([]Violation, 0, len(found))
	for _, v := range found {
		violations = append(violations, Violation{Line: v.Line, Col: v.Col, Rule: v.Rule, Message: v.Message})
	}
	return violations, nil
}

func newFormatter(settingsPath, workspaceRoot string) (*pipeline.Formatter, error) {
	settings, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	home, _ := os.UserHomeDir()
	return pipeline.New(settings, sqlconf.Lookup{
		WorkspaceRoot: workspaceRoot,
		HomeDir:       home,
	}, commonlog.GetLogger("sqlfluff")), nil
}
