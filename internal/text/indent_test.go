package text

import "testing"

func TestCaptureIndent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"spaces", "    select 1", "    "},
		{"tabs", "\t\tselect 1", "\t\t"},
		{"mixed", " \t select 1", " \t "},
		{"none", "select 1", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaptureIndent(tt.line); got != tt.want {
				t.Errorf("CaptureIndent(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestStripIndent(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		indent string
		want   string
	}{
		{"strips first line only", "  select 1\n  from t", "  ", "select 1\n  from t"},
		{"empty indent is no-op", "  select 1", "", "  select 1"},
		{"missing prefix is no-op", "select 1", "  ", "select 1"},
		{"tab indent", "\tselect 1", "\t", "select 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripIndent(tt.text, tt.indent); got != tt.want {
				t.Errorf("StripIndent(%q, %q) = %q, want %q", tt.text, tt.indent, got, tt.want)
			}
		})
	}
}

func TestRestoreIndent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		first string
		other string
		want  string
	}{
		{
			name:  "single line",
			text:  "select 1",
			first: "  ",
			other: "    ",
			want:  "  select 1",
		},
		{
			name:  "continuation lines re-based onto other indent",
			text:  "select\n  1",
			first: "  ",
			other: "    ",
			want:  "  select\n    1",
		},
		{
			name:  "blank lines untouched",
			text:  "select 1\n\nfrom t",
			first: "",
			other: "  ",
			want:  "select 1\n\n  from t",
		},
		{
			name:  "whitespace-only lines untouched",
			text:  "select 1\n   \nfrom t",
			first: "",
			other: "  ",
			want:  "select 1\n   \n  from t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RestoreIndent(tt.text, tt.first, tt.other); got != tt.want {
				t.Errorf("RestoreIndent() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Stripping an indent and restoring it must leave the first line's margin
// exactly where it started, for any indent that actually prefixes the text.
func TestStripRestoreRoundTrip(t *testing.T) {
	indents := []string{"", " ", "    ", "\t", "\t  "}
	texts := []string{"select 1", "select\n  a,\n  b\nfrom t"}

	for _, indent := range indents {
		for _, text := range texts {
			in := indent + text
			stripped := StripIndent(in, indent)
			restored := RestoreIndent(stripped, indent, indent)
			if got := CaptureIndent(restored); got != CaptureIndent(in) {
				t.Errorf("round trip indent %q on %q: first-line indent %q, want %q",
					indent, text, got, CaptureIndent(in))
			}
		}
	}
}
