// Package runner invokes the external sqlfluff tool. It owns the
// temp-file lifecycle, builds the command line, classifies exit codes and
// recovers a best-effort result when the tool only partially succeeds.
//
// Three execution strategies are tried in order: the sqlfluff binary
// itself, the module entry point through a Python interpreter, and the
// library API through the interpreter. A strategy escalates to the next
// only when it fails to launch or exits nonzero without leaving usable
// output; a nonzero exit with output is a soft success.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/tliron/commonlog"
)

// Options configures a Runner for one formatting operation. ConfigPath
// is the already-resolved .sqlfluff path, empty when none applies.
type Options struct {
	Executable   string
	Interpreter  string
	ExcludeRules []string
	ExtraArgs    []string
	ConfigPath   string
	// TempDir overrides the staging directory; empty means os.TempDir().
	TempDir string
}

// Runner executes sqlfluff through the escalating strategy chain.
type Runner struct {
	opts Options
	log  commonlog.Logger
}

func New(opts Options, log commonlog.Logger) *Runner {
	return &Runner{opts: opts, log: log}
}

type strategy struct {
	name    string
	attempt func(ctx context.Context, sql string) (string, error)
}

// Fix formats sql and returns the result. Strategies are attempted in
// order and escalate strictly on failure, never on success. The terminal
// error aggregates every strategy's failure.
func (r *Runner) Fix(ctx context.Context, sql string) (string, error) {
	strategies := []strategy{
		{"direct binary", r.fixDirect},
		{"interpreter module", r.fixModule},
		{"interpreter library", r.fixLibrary},
	}

	var failures []error
	for i, s := range strategies {
		result, err := s.attempt(ctx, sql)
		if err == nil {
			return result, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
		if i < len(strategies)-1 {
			r.log.Noticef("%s strategy failed, escalating: %v", s.name, err)
		}
	}
	return "", fmt.Errorf("all execution strategies failed: %w", errors.Join(failures...))
}

// fixDirect runs the sqlfluff binary itself. Exit status 1 from the CLI
// fix command commonly just means fixes were applied, so it is treated
// the same as 0 on this path only.
func (r *Runner) fixDirect(ctx context.Context, sql string) (string, error) {
	tmp, err := r.stageTemp(sql)
	if err != nil {
		return "", err
	}
	defer r.removeTemp(tmp)

	out, err := r.run(ctx, r.opts.Executable, fixArgs(r.opts, tmp))
	if err != nil {
		return "", err
	}
	if out.ExitCode == 0 || out.ExitCode == 1 {
		content, err := os.ReadFile(tmp)
		if err != nil {
			return "", fmt.Errorf("reading formatted file: %w", err)
		}
		return string(content), nil
	}
	return r.recoverPartial(tmp, out)
}

// fixModule runs `<interpreter> -m sqlfluff fix ...` for installs where
// the sqlfluff entry point is not on PATH.
func (r *Runner) fixModule(ctx context.Context, sql string) (string, error) {
	tmp, err := r.stageTemp(sql)
	if err != nil {
		return "", err
	}
	defer r.removeTemp(tmp)

	args := append([]string{"-m", "sqlfluff"}, fixArgs(r.opts, tmp)...)
	out, err := r.run(ctx, r.opts.Interpreter, args)
	if err != nil {
		return "", err
	}
	if out.ExitCode == 0 {
		content, err := os.ReadFile(tmp)
		if err != nil {
			return "", fmt.Errorf("reading formatted file: %w", err)
		}
		return string(content), nil
	}
	return r.recoverPartial(tmp, out)
}

// libraryScript calls the sqlfluff Python API directly and writes the
// result to stdout, bypassing the CLI entirely. argv[1] is the staged
// file, argv[2] the optional config path.
const libraryScript = `import sys

import sqlfluff

with open(sys.argv[1], encoding="utf-8") as handle:
    src = handle.read()

kwargs = {}
if len(sys.argv) > 2 and sys.argv[2]:
    kwargs["config_path"] = sys.argv[2]
else:
    kwargs["dialect"] = "ansi"

sys.stdout.write(sqlfluff.fix(src, **kwargs))
`

// fixLibrary is the terminal fallback: invoke the tool's library API
// through the interpreter. The result arrives on stdout rather than in
// the staged file.
func (r *Runner) fixLibrary(ctx context.Context, sql string) (string, error) {
	tmp, err := r.stageTemp(sql)
	if err != nil {
		return "", err
	}
	defer r.removeTemp(tmp)

	out, err := r.run(ctx, r.opts.Interpreter, []string{"-c", libraryScript, tmp, r.opts.ConfigPath})
	if err != nil {
		return "", err
	}
	if out.ExitCode == 0 {
		return out.Stdout, nil
	}
	if strings.TrimSpace(out.Stdout) != "" {
		r.warnPartial(out)
		return out.Stdout, nil
	}
	return "", &InvocationError{ExitCode: out.ExitCode, Stderr: truncate(out.Stderr, stderrLimit)}
}

// recoverPartial salvages a nonzero exit on the file-based strategies:
// if the staged file still holds content, the tool fixed what it could
// and the content is returned with a warning. An empty or unreadable
// file means the attempt produced nothing and the caller escalates.
func (r *Runner) recoverPartial(tmp string, out *Outcome) (string, error) {
	content, err := os.ReadFile(tmp)
	if err == nil && len(content) > 0 {
		r.warnPartial(out)
		return string(content), nil
	}
	return "", &InvocationError{ExitCode: out.ExitCode, Stderr: truncate(out.Stderr, stderrLimit)}
}

var unfixableCount = regexp.MustCompile(`(\d+)\s+unfixable`)

func (r *Runner) warnPartial(out *Outcome) {
	if m := unfixableCount.FindStringSubmatch(out.Stdout + "\n" + out.Stderr); m != nil {
		r.log.Warningf("formatting applied, %s violations were unfixable (exit code %d)", m[1], out.ExitCode)
		return
	}
	r.log.Warningf("formatting applied despite exit code %d", out.ExitCode)
}

// run spawns one child process and waits for it. A process that started
// and exited is never an error here regardless of exit code; only spawn
// failures are, with a missing binary classified as ErrToolNotFound.
func (r *Runner) run(ctx context.Context, name string, args []string) (*Outcome, error) {
	r.log.Infof("running: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Outcome{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			out.ExitCode = -1
			if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
				return out, fmt.Errorf("%w: %s", ErrToolNotFound, name)
			}
			return out, fmt.Errorf("spawning %s: %w", name, err)
		}
		out.ExitCode = exitErr.ExitCode()
	}

	r.log.Infof("exit code %d", out.ExitCode)
	if out.Stdout != "" {
		r.log.Debugf("stdout: %s", truncate(out.Stdout, stderrLimit))
	}
	if out.Stderr != "" {
		r.log.Debugf("stderr: %s", truncate(out.Stderr, stderrLimit))
	}
	return out, nil
}
