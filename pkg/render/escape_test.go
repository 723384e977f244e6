package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		text string
		attr string
	}{
		{"empty", "", "", ""},
		{"plain", "Widget title", "Widget title", "Widget title"},
		{"markup", `<Badge label="a&b">`, "&lt;Badge label=&quot;a&amp;b&quot;&gt;", "&lt;Badge label=&quot;a&amp;b&quot;&gt;"},
		{"apostrophe", "it's", "it&#39;s", "it&#39;s"},
		{"whitespace", "a\n\tb\r", "a\n\tb\r", "a&#10;&#9;b&#13;"},
		{"already escaped", "&amp;", "&amp;amp;", "&amp;amp;"},
		{"unicode", "héllo 世界", "héllo 世界", "héllo 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeText(tt.in); got != tt.text {
				t.Errorf("EscapeText(%q) = %q, want %q", tt.in, got, tt.text)
			}
			if got := EscapeAttr(tt.in); got != tt.attr {
				t.Errorf("EscapeAttr(%q) = %q, want %q", tt.in, got, tt.attr)
			}
		})
	}
}

func BenchmarkEscapeAttr(b *testing.B) {
	s := `class="note" data-x='1 & 2'`
	for i := 0; i < b.N; i++ {
		EscapeAttr(s)
	}
}
