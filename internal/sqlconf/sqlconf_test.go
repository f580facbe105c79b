package sqlconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("[sqlfluff]\ndialect = ansi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolvePrecedence(t *testing.T) {
	log := commonlog.GetLogger("test")

	workspace := t.TempDir()
	home := t.TempDir()
	bundled := t.TempDir()

	wsConfig := writeFile(t, workspace, ".sqlfluff")
	homeConfig := writeFile(t, home, ".sqlfluff")
	bundledConfig := writeFile(t, bundled, ".sqlfluff.default")

	lookup := Lookup{WorkspaceRoot: workspace, HomeDir: home, BundledDir: bundled}

	// All three present: workspace wins.
	got := Resolve(lookup, log)
	if got.Path != wsConfig || got.Source != SourceWorkspace {
		t.Errorf("got %+v, want workspace config %s", got, wsConfig)
	}

	// Workspace gone: home wins.
	if err := os.Remove(wsConfig); err != nil {
		t.Fatal(err)
	}
	got = Resolve(lookup, log)
	if got.Path != homeConfig || got.Source != SourceHome {
		t.Errorf("got %+v, want home config %s", got, homeConfig)
	}

	// Home gone too: bundled default wins.
	if err := os.Remove(homeConfig); err != nil {
		t.Fatal(err)
	}
	got = Resolve(lookup, log)
	if got.Path != bundledConfig || got.Source != SourceBundled {
		t.Errorf("got %+v, want bundled config %s", got, bundledConfig)
	}

	// Nothing anywhere: tool defaults.
	if err := os.Remove(bundledConfig); err != nil {
		t.Fatal(err)
	}
	got = Resolve(lookup, log)
	if got.Path != "" || got.Source != SourceNone {
		t.Errorf("got %+v, want empty resolution", got)
	}
}

func TestResolveSkipsEmptyLookupDirs(t *testing.T) {
	log := commonlog.GetLogger("test")

	home := t.TempDir()
	homeConfig := writeFile(t, home, ".sqlfluff")

	got := Resolve(Lookup{HomeDir: home}, log)
	if got.Path != homeConfig || got.Source != SourceHome {
		t.Errorf("got %+v, want home config %s", got, homeConfig)
	}
}

func TestResolveIgnoresDirectories(t *testing.T) {
	log := commonlog.GetLogger("test")

	workspace := t.TempDir()
	if err := os.Mkdir(filepath.Join(workspace, ".sqlfluff"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := Resolve(Lookup{WorkspaceRoot: workspace}, log)
	if got.Source != SourceNone {
		t.Errorf("directory should not resolve as config, got %+v", got)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceWorkspace, "workspace"},
		{SourceHome, "home"},
		{SourceBundled, "bundled-default"},
		{SourceNone, "none"},
	}

	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}
