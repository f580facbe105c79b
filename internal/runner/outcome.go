package runner

import (
	"errors"
	"fmt"
)

// ErrToolNotFound marks a strategy whose binary or interpreter could not
// be spawned at all. It is distinct from a formatting failure so the
// caller can tell "install sqlfluff" apart from "your SQL broke it".
var ErrToolNotFound = errors.New("sqlfluff not found")

// InvocationError is a tool run that exited nonzero without leaving any
// usable output behind.
type InvocationError struct {
	ExitCode int
	Stderr   string // already truncated
}

func (e *InvocationError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("sqlfluff exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("sqlfluff exited with code %d: %s", e.ExitCode, e.Stderr)
}

// Outcome captures a single child-process run. It lives only for the
// duration of one strategy attempt.
type Outcome struct {
	ExitCode int // -1 when the process failed to spawn
	Stdout   string
	Stderr   string
}

// stderrLimit bounds how much stderr is carried into error messages and
// diagnostics, keeping them readable when the tool dumps a stack trace.
const stderrLimit = 500

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
