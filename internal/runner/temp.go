package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// stageTemp writes sql to a fresh temp file for the tool to rewrite in
// place. Names combine a timestamp with a random fragment so concurrent
// invocations never collide; each strategy attempt stages its own file
// and removes it before returning or escalating.
func (r *Runner) stageTemp(sql string) (string, error) {
	dir := r.opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("sqlfluff-%d-%s.sql", time.Now().UnixNano(), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(sql), 0o600); err != nil {
		return "", fmt.Errorf("staging temp file: %w", err)
	}
	r.log.Infof("staged temp file %s", path)
	return path, nil
}

// removeTemp is best-effort: a failed deletion must never mask the
// primary result or error, so it is logged and swallowed.
func (r *Runner) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.log.Debugf("temp cleanup failed: %v", err)
	}
}
