// Package sqlconf locates the sqlfluff configuration file that applies to
// a formatting run. Only existence is probed; the file's contents are the
// external tool's business.
package sqlconf

import (
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
)

// Source identifies where a resolved configuration file came from.
type Source int

const (
	SourceNone Source = iota
	SourceWorkspace
	SourceHome
	SourceBundled
)

func (s Source) String() string {
	switch s {
	case SourceWorkspace:
		return "workspace"
	case SourceHome:
		return "home"
	case SourceBundled:
		return "bundled-default"
	default:
		return "none"
	}
}

// Resolved is the outcome of a configuration lookup. Path is empty when
// no file was found, in which case the external tool falls back to its
// own internal defaults.
type Resolved struct {
	Path   string
	Source Source
}

// Lookup describes the directories probed for a configuration file.
type Lookup struct {
	// WorkspaceRoot is the workspace folder of the document being
	// formatted; empty when the document has none.
	WorkspaceRoot string
	// HomeDir is the user's home directory; empty disables the probe.
	HomeDir string
	// BundledDir holds the install-time default config, named
	// ".sqlfluff.default"; empty disables the probe.
	BundledDir string
}

// Resolve returns the first existing configuration file in precedence
// order: workspace, home, bundled default. Resolution is repeated on
// every call rather than cached, since workspace and home files may
// appear or change between invocations. One diagnostic line is emitted
// per candidate probed.
func Resolve(lookup Lookup, log commonlog.Logger) Resolved {
	type candidate struct {
		path   string
		source Source
	}

	var candidates []candidate
	if lookup.WorkspaceRoot != "" {
		candidates = append(candidates, candidate{filepath.Join(lookup.WorkspaceRoot, ".sqlfluff"), SourceWorkspace})
	}
	if lookup.HomeDir != "" {
		candidates = append(candidates, candidate{filepath.Join(lookup.HomeDir, ".sqlfluff"), SourceHome})
	}
	if lookup.BundledDir != "" {
		candidates = append(candidates, candidate{filepath.Join(lookup.BundledDir, ".sqlfluff.default"), SourceBundled})
	}

	for _, c := range candidates {
		if fileExists(c.path) {
			log.Infof("config candidate %s: found (%s)", c.path, c.source)
			return Resolved{Path: c.path, Source: c.source}
		}
		log.Infof("config candidate %s: not found", c.path)
	}

	log.Info("no sqlfluff config file found, tool defaults apply")
	return Resolved{Source: SourceNone}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
