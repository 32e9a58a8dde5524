package normalize

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text unchanged", "hello world", "hello world"},
		{"literal backslash-n becomes space", `line one\nline two`, "line one line two"},
		{"escaped slash unescaped", `https:\/\/example.com\/p`, "https://example.com/p"},
		{"whitespace collapsed", "a  b\t\tc", "a b c"},
		{"real newlines collapsed", "a\nb\n\nc", "a b c"},
		{"trimmed", "  padded  ", "padded"},
		{"leading literal escape trimmed", `\nstart`, "start"},
		{"combined", `  Builder\nof things\/apps   at  Acme `, "Builder of things/apps at Acme"},
		{"unicode preserved", "東京 スタートアップ", "東京 スタートアップ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{`a\nb`, "  x   y  ", `path\/to\/thing`}
	for _, in := range inputs {
		once := CleanText(in)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}
