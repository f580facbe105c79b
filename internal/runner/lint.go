package runner

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Violation is one finding reported by lint mode.
type Violation struct {
	Line    int
	Col     int
	Rule    string
	Message string
}

// Lint runs the tool in lint mode and returns the parsed findings.
// A nonzero exit is expected whenever violations exist, so only spawn
// failures surface as errors. Like Fix, it falls back from the binary to
// the interpreter's module entry point.
func (r *Runner) Lint(ctx context.Context, sql string) ([]Violation, error) {
	tmp, err := r.stageTemp(sql)
	if err != nil {
		return nil, err
	}
	defer r.removeTemp(tmp)

	args := lintArgs(r.opts, tmp)
	out, err := r.run(ctx, r.opts.Executable, args)
	if err != nil {
		out, err = r.run(ctx, r.opts.Interpreter, append([]string{"-m", "sqlfluff"}, args...))
		if err != nil {
			return nil, err
		}
	}
	return ParseViolations(out.Stdout), nil
}

// violationLine matches the tool's human-readable lint output, e.g.
//
//	L:   2 | P:   5 | LT02 | Expected indent of 4 spaces.
var violationLine = regexp.MustCompile(`^L:\s*(\d+)\s*\|\s*P:\s*(\d+)\s*\|\s*(\S+)\s*\|\s*(.+)$`)

// ParseViolations extracts findings from lint output, skipping summary
// and separator lines.
func ParseViolations(output string) []Violation {
	var violations []Violation
	for _, line := range strings.Split(output, "\n") {
		m := violationLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		violations = append(violations, Violation{
			Line:    lineNo,
			Col:     col,
			Rule:    m[3],
			Message: strings.TrimSpace(m[4]),
		})
	}
	return violations
}
