package service

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "accented characters transliterate",
			title: "Café au Lait",
			want:  "cafe-au-lait",
		},
		{
			name:  "punctuation stripped",
			title: "What's Up, Doc?!",
			want:  "whats-up-doc",
		},
		{
			name:  "underscores become hyphens and dots are dropped",
			title: "some_file.name here",
			want:  "some-filename-here",
		},
		{
			name:  "collapses whitespace runs",
			title: "  lots   of    space  ",
			want:  "lots-of-space",
		},
		{
			name:  "non-latin script drops entirely",
			title: "日本語のタイトル",
			want:  "",
		},
		{
			name:  "mixed script keeps latin part",
			title: "Go 言語 Guide",
			want:  "go-guide",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			title: "!!! ??? ...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlug(tt.title)
			if got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestGenerateSlugTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := GenerateSlug(long)
	if len(got) > 200 {
		t.Errorf("slug length = %d, want <= 200", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestGenerateSlugWithID(t *testing.T) {
	const docID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "normal title gets short id suffix",
			title: "My Document",
			want:  "my-document-7890",
		},
		{
			name:  "empty title falls back to short id",
			title: "",
			want:  "untitled-7890",
		},
		{
			name:  "unsluggable title falls back to short id",
			title: "日本語",
			want:  "untitled-7890",
		},
		{
			name:  "reserved slug gets short id",
			title: "Document",
			want:  "doc-7890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlugWithID(tt.title, docID)
			if got != tt.want {
				t.Errorf("GenerateSlugWithID(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestGenerateSlugWithIDTruncation(t *testing.T) {
	const docID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

	t.Run("long title leaves room for the suffix", func(t *testing.T) {
		got := GenerateSlugWithID(strings.Repeat("a", 250), docID)
		if len(got) > 200 {
			t.Errorf("slug length = %d, want <= 200", len(got))
		}
		if !strings.HasSuffix(got, "-7890") {
			t.Errorf("slug %q missing short id suffix", got)
		}
	})

	t.Run("re-truncation strips a trailing hyphen", func(t *testing.T) {
		// 194 a's, a hyphen, then filler: the cut lands right after the
		// hyphen, which must not survive into "...a--7890".
		title := strings.Repeat("a", 194) + " " + strings.Repeat("b", 50)
		got := GenerateSlugWithID(title, docID)
		if len(got) > 200 {
			t.Errorf("slug length = %d, want <= 200", len(got))
		}
		if strings.Contains(got, "--") {
			t.Errorf("slug %q contains a double hyphen", got)
		}
	})
}

func TestGenerateUniqueSlug(t *testing.T) {
	const docID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

	t.Run("no collision keeps base slug", func(t *testing.T) {
		got, err := GenerateUniqueSlug("My Document", docID, func(string) (bool, error) {
			return false, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "my-document" {
			t.Errorf("slug = %q, want %q", got, "my-document")
		}
	})

	t.Run("collision appends short id", func(t *testing.T) {
		taken := map[string]bool{"my-document": true}
		got, err := GenerateUniqueSlug("My Document", docID, func(s string) (bool, error) {
			return taken[s], nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "my-document-7890" {
			t.Errorf("slug = %q, want %q", got, "my-document-7890")
		}
	})

	t.Run("empty title skips uniqueness check", func(t *testing.T) {
		got, err := GenerateUniqueSlug("", docID, func(string) (bool, error) {
			t.Fatal("existsCheck should not be called for empty titles")
			return false, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "untitled-7890" {
			t.Errorf("slug = %q, want %q", got, "untitled-7890")
		}
	})
}

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "uuid takes last four hex chars",
			id:   "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
			want: "7890",
		},
		{
			name: "uppercase lowered",
			id:   "A1B2C3D4-E5F6-7890-ABCD-EF12345678AB",
			want: "78ab",
		},
		{
			name: "short id returned whole",
			id:   "ab",
			want: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortID(tt.id); got != tt.want {
				t.Errorf("ShortID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestIsValidTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"My Document", true},
		{"", false},
		{"   ", false},
		{"untitled", false},
		{"Untitled", false},
		{"UNTITLED", false},
		{"untitled draft", true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := IsValidTitle(tt.title); got != tt.want {
				t.Errorf("IsValidTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
