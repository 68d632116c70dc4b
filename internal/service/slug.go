package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"inkwell/internal/config"
)

var (
	// Matches characters that never appear in a slug: anything that is
	// not a lowercase letter, digit, whitespace, underscore, or hyphen.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	// Matches whitespace and underscore runs, which become one hyphen.
	separatorRuns = regexp.MustCompile(`[\s_]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// reservedSlug collides with the fallback namespace, so a title that
// slugifies to exactly this word is pushed into "doc-{shortID}".
const reservedSlug = "document"

// GenerateSlug converts a title to a URL-safe slug.
// "My Article" -> "my-article".
// "Café au lait!" -> "cafe-au-lait".
// Empty or punctuation-only input yields "".
func GenerateSlug(title string) string {
	// Normalize unicode (decompose accented characters).
	s := norm.NFKD.String(title)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Strip punctuation.
	s = nonSlugChars.ReplaceAllString(s, "")

	// Collapse whitespace and underscores to single hyphens.
	s = separatorRuns.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	// Truncate, then strip any trailing hyphen the cut left behind.
	if len(s) > config.MaxSlugLength {
		s = s[:config.MaxSlugLength]
		s = strings.TrimRight(s, "-")
	}

	return s
}

// GenerateSlugWithID appends the document's short ID to the base slug.
// An empty base falls into the "untitled-{shortID}" namespace; the
// reserved word "document" falls into "doc-{shortID}" so it cannot
// collide with the fallback namespace. The base is re-truncated so the
// suffixed form still fits the slug length limit.
func GenerateSlugWithID(title, documentID string) string {
	base := GenerateSlug(title)
	shortID := ShortID(documentID)

	// Make room for "-{shortID}".
	if max := config.MaxSlugLength - len(shortID) - 1; len(base) > max {
		base = strings.TrimRight(base[:max], "-")
	}

	switch {
	case base == "":
		return "untitled-" + shortID
	case base == reservedSlug:
		return "doc-" + shortID
	default:
		return base + "-" + shortID
	}
}

// GenerateUniqueSlug computes the slug for a document. Titles that
// slugify to empty always get the ID-suffixed untitled form without a
// uniqueness check: empty-title collisions are expected and tolerated.
// Otherwise the bare slug is used when free, the ID-suffixed form when
// taken. existsCheck is supplied by the caller so this stays free of
// persistence concerns.
func GenerateUniqueSlug(title, documentID string, existsCheck func(slug string) (bool, error)) (string, error) {
	base := GenerateSlug(title)
	if base == "" {
		return GenerateSlugWithID(title, documentID), nil
	}

	exists, err := existsCheck(base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	return GenerateSlugWithID(title, documentID), nil
}

// ShortID returns the last ShortIDLength characters of a document ID
// with hyphens removed, lowercased. For UUIDs this is 4 lowercase hex
// characters.
func ShortID(documentID string) string {
	id := strings.ToLower(strings.ReplaceAll(documentID, "-", ""))
	if len(id) > config.ShortIDLength {
		id = id[len(id)-config.ShortIDLength:]
	}
	return id
}

// IsValidTitle reports whether a title counts as real for submission or
// publication: non-empty after trimming and not the placeholder
// "untitled" (case-insensitive).
func IsValidTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false
	}
	return !strings.EqualFold(trimmed, "untitled")
}
