// Package reflow breaks compact SQL statements onto multiple lines before
// they are handed to the external formatter. The tool's structural
// recognition is noticeably better when clause keywords start their own
// lines, which a one-liner pasted from a log or an ORM rarely provides.
//
// This is a best-effort textual pass, not a SQL parser. It can misfire on
// clause keywords appearing inside string or comment literals; that is an
// accepted limitation.
package reflow

import (
	"regexp"
	"strings"
)

var clauseKeyword = regexp.MustCompile(`(?i)\s+(SELECT|FROM|WHERE|GROUP\s+BY|HAVING|ORDER\s+BY|LIMIT|UNION\s+ALL|UNION|EXCEPT|INTERSECT|WITH)\b`)
var joinKeyword = regexp.MustCompile(`(?i)\s+((?:INNER|LEFT|RIGHT|FULL|CROSS)(?:\s+OUTER)?\s+JOIN)\b`)
var onClause = regexp.MustCompile(`(?i)\s+(ON)\s*\(`)
var comma = regexp.MustCompile(`,[ \t]*`)

// Reflow rewrites a compact statement into a naive multi-line form:
// a newline before each top-level clause keyword and JOIN, a newline
// before "ON (", and a newline after every comma. Input that already
// spans more than two lines is returned unchanged.
func Reflow(sql string) string {
	if strings.Count(sql, "\n") >= 2 {
		return sql
	}

	out := clauseKeyword.ReplaceAllString(sql, "\n$1")
	out = joinKeyword.ReplaceAllString(out, "\n$1")
	out = onClause.ReplaceAllString(out, "\n$1 (")
	out = comma.ReplaceAllString(out, ",\n")

	// Trim every line and drop the blanks left behind by the rewrites.
	lines := strings.Split(out, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
