// Package text provides the whitespace bookkeeping around an external
// formatting run: capturing and re-applying indentation so a formatted
// selection drops back into its surrounding block, and normalizing line
// endings to the document's convention.
package text

import (
	"regexp"
	"strings"
)

var leadingWhitespace = regexp.MustCompile(`^[ \t]*`)

// CaptureIndent returns the run of spaces and tabs at the start of line.
func CaptureIndent(line string) string {
	return leadingWhitespace.FindString(line)
}

// StripIndent removes indent from the first line of text if it is present.
// Lines after the first are left untouched; the external formatter sees
// left-margin-aligned SQL and produces output assuming zero ambient
// indentation.
func StripIndent(text, indent string) string {
	if indent == "" {
		return text
	}
	if rest, ok := strings.CutPrefix(text, indent); ok {
		return rest
	}
	return text
}

// RestoreIndent re-applies the margin captured before formatting.
// The first line gets firstIndent prepended. Every subsequent non-blank
// line is re-based onto otherIndent, replacing whatever leading
// whitespace the formatter emitted, so the whole selection sits at the
// containing line's margin. Whitespace-only lines are left unmodified to
// avoid turning empty lines into whitespace-only ones.
func RestoreIndent(text, firstIndent, otherIndent string) string {
	lines := strings.Split(text, "\n")
	lines[0] = firstIndent + lines[0]
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		lines[i] = otherIndent + strings.TrimLeft(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
