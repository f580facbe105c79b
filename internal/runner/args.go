package runner

import "strings"

// fixArgs builds the argument list for a fix-mode run against target.
// Order matters to the tool: mode, filters, config, output flags, user
// extras, then the file.
func fixArgs(opts Options, target string) []string {
	return append(commonArgs(opts, "fix", true), target)
}

// lintArgs is fixArgs minus --force; lint never rewrites the file.
func lintArgs(opts Options, target string) []string {
	return append(commonArgs(opts, "lint", false), target)
}

func commonArgs(opts Options, mode string, force bool) []string {
	args := []string{mode}
	if len(opts.ExcludeRules) > 0 {
		args = append(args, "--exclude-rules", strings.Join(opts.ExcludeRules, ","))
	}
	if opts.ConfigPath != "" {
		args = append(args, "--config", opts.ConfigPath)
	}
	args = append(args, "--nocolor")
	if force {
		args = append(args, "--force")
	}
	args = append(args, opts.ExtraArgs...)
	// A config file may declare its own dialect and user args must not be
	// overridden, so the ansi default only applies when neither is present.
	if opts.ConfigPath == "" && !hasDialect(opts.ExtraArgs) {
		args = append(args, "--dialect", "ansi")
	}
	return args
}

func hasDialect(args []string) bool {
	for _, arg := range args {
		if arg == "--dialect" || arg == "-d" || strings.HasPrefix(arg, "--dialect=") {
			return true
		}
	}
	return false
}
