package text

import "testing"

func TestNormalizeEOL(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target string
		want   string
	}{
		{"lf to lf", "a\nb", "\n", "a\nb"},
		{"crlf to lf", "a\r\nb", "\n", "a\nb"},
		{"lone cr to lf", "a\rb", "\n", "a\nb"},
		{"lf to crlf", "a\nb", "\r\n", "a\r\nb"},
		{"crlf to crlf", "a\r\nb", "\r\n", "a\r\nb"},
		{"mixed to crlf", "a\r\nb\nc\rd", "\r\n", "a\r\nb\r\nc\r\nd"},
		{"empty", "", "\r\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEOL(tt.text, tt.target); got != tt.want {
				t.Errorf("NormalizeEOL(%q, %q) = %q, want %q", tt.text, tt.target, got, tt.want)
			}
		})
	}
}

func TestNormalizeEOLIdempotent(t *testing.T) {
	texts := []string{"a\nb\r\nc\rd", "select 1\r\n", "", "\r\r\n\n"}
	targets := []string{"\n", "\r\n"}

	for _, text := range texts {
		for _, target := range targets {
			once := NormalizeEOL(text, target)
			twice := NormalizeEOL(once, target)
			if once != twice {
				t.Errorf("NormalizeEOL(%q, %q) not idempotent: %q != %q", text, target, once, twice)
			}
		}
	}
}

func TestDetectEOL(t *testing.T) {
	if got := DetectEOL("a\r\nb"); got != "\r\n" {
		t.Errorf("DetectEOL crlf = %q", got)
	}
	if got := DetectEOL("a\nb"); got != "\n" {
		t.Errorf("DetectEOL lf = %q", got)
	}
	if got := DetectEOL("ab"); got != "\n" {
		t.Errorf("DetectEOL none = %q", got)
	}
}
