package service

import (
	"encoding/json"
	"testing"
)

func TestHasText(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "nil content",
			content: "",
			want:    false,
		},
		{
			name:    "invalid json",
			content: "{not json",
			want:    false,
		},
		{
			name:    "empty doc",
			content: `{"type":"doc","content":[]}`,
			want:    false,
		},
		{
			name:    "empty paragraph",
			content: `{"type":"doc","content":[{"type":"paragraph"}]}`,
			want:    false,
		},
		{
			name:    "whitespace only text",
			content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"   "}]}]}`,
			want:    false,
		},
		{
			name:    "text in nested paragraph",
			content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}`,
			want:    true,
		},
		{
			name:    "text deep in list",
			content: `{"type":"doc","content":[{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"item"}]}]}]}]}`,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.HasText(json.RawMessage(tt.content))
			if got != tt.want {
				t.Errorf("HasText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractHeading(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "nil content",
			content: "",
			want:    "",
		},
		{
			name:    "no heading",
			content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"body"}]}]}`,
			want:    "",
		},
		{
			name:    "first heading wins",
			content: `{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"First"}]},{"type":"heading","content":[{"type":"text","text":"Second"}]}]}`,
			want:    "First",
		},
		{
			name:    "heading text concatenates children",
			content: `{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"Hello "},{"type":"text","text":"World"}]}]}`,
			want:    "Hello World",
		},
		{
			name:    "heading after paragraph",
			content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"intro"}]},{"type":"heading","content":[{"type":"text","text":"Title"}]}]}`,
			want:    "Title",
		},
		{
			name:    "empty heading",
			content: `{"type":"doc","content":[{"type":"heading","content":[]}]}`,
			want:    "",
		},
		{
			name:    "heading text trimmed",
			content: `{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"  Padded  "}]}]}`,
			want:    "Padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.ExtractHeading(json.RawMessage(tt.content))
			if got != tt.want {
				t.Errorf("ExtractHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}
