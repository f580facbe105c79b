// Package config loads the bridge's own settings file. These settings
// describe how to reach the external sqlfluff tool; the tool's formatting
// configuration lives in .sqlfluff files and is resolved separately.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Settings holds the external-tool invocation settings.
type Settings struct {
	// Executable is the sqlfluff binary, as a name on PATH or a full path.
	Executable string
	// Interpreter is the Python interpreter used by the fallback
	// execution strategies.
	Interpreter string
	// ExcludeRules lists rule identifiers passed via --exclude-rules.
	ExcludeRules []string
	// ExtraArgs are verbatim arguments appended to every invocation.
	ExtraArgs []string
}

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		Executable:  "sqlfluff",
		Interpreter: "python3",
	}
}

// DefaultPath returns the conventional settings file location, or an
// empty string when the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sqlfluff-formatter", "settings.hcl")
}

// Load parses an HCL settings file. A missing file is not an error:
// defaults are returned so the bridge works out of the box.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading settings file: %w", err)
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return settings, fmt.Errorf("parsing settings: %s", diags.Error())
	}

	body := file.Body.(*hclsyntax.Body)
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return settings, fmt.Errorf("parsing settings: %s", diags.Error())
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return settings, fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		switch name {
		case "executable":
			settings.Executable = val.AsString()
		case "interpreter":
			settings.Interpreter = val.AsString()
		case "exclude_rules":
			list, err := stringList(val)
			if err != nil {
				return settings, fmt.Errorf("exclude_rules: %w", err)
			}
			settings.ExcludeRules = list
		case "extra_args":
			list, err := stringList(val)
			if err != nil {
				return settings, fmt.Errorf("extra_args: %w", err)
			}
			settings.ExtraArgs = list
		default:
			return settings, fmt.Errorf("unknown setting %q", name)
		}
	}

	return settings, nil
}

func stringList(val cty.Value) ([]string, error) {
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of strings, got %s", val.Type().FriendlyName())
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.Type() != cty.String {
			return nil, fmt.Errorf("expected a list of strings, got element of %s", v.Type().FriendlyName())
		}
		out = append(out, v.AsString())
	}
	return out, nil
}
