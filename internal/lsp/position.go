package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines breaks content on "\n" and trims a trailing "\r" from each
// line so CRLF documents index the same as LF ones.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// lineAt returns the full document line at index n, or "" out of range.
func lineAt(content string, n protocol.UInteger) string {
	lines := splitLines(content)
	if int(n) >= len(lines) {
		return ""
	}
	return lines[n]
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r")
	}
	return s
}

// sliceRange extracts the text addressed by rng, clamping positions that
// run past line or document ends.
func sliceRange(content string, rng protocol.Range) string {
	lines := splitLines(content)

	startLine := int(rng.Start.Line)
	endLine := int(rng.End.Line)
	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	clampCol := func(line string, col int) int {
		if col > len(line) {
			return len(line)
		}
		return col
	}

	if startLine == endLine {
		line := lines[startLine]
		start := clampCol(line, int(rng.Start.Character))
		end := clampCol(line, int(rng.End.Character))
		if start > end {
			return ""
		}
		return line[start:end]
	}

	var parts []string
	first := lines[startLine]
	parts = append(parts, first[clampCol(first, int(rng.Start.Character)):])
	parts = append(parts, lines[startLine+1:endLine]...)
	last := lines[endLine]
	parts = append(parts, last[:clampCol(last, int(rng.End.Character))])
	return strings.Join(parts, "\n")
}

// fullRange addresses the whole document for a single replacing edit.
func fullRange(content string) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: safeUint(strings.Count(content, "\n") + 1), Character: 0},
	}
}

func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n)
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}
