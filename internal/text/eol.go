package text

import "strings"

// NormalizeEOL rewrites every line ending in text to target. All endings
// are first collapsed to "\n" (both "\r\n" and lone "\r"), then expanded
// if the target is "\r\n". The operation is idempotent.
func NormalizeEOL(text, target string) string {
	unified := strings.ReplaceAll(text, "\r\n", "\n")
	unified = strings.ReplaceAll(unified, "\r", "\n")
	if target == "\r\n" {
		return strings.ReplaceAll(unified, "\n", "\r\n")
	}
	return unified
}

// DetectEOL reports the line-ending convention of text, defaulting to
// "\n" when no "\r\n" is present.
func DetectEOL(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
