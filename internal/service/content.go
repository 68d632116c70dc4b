package service

import (
	"encoding/json"
	"strings"
)

// ContentAnalyzer answers the two questions the lifecycle asks of the
// otherwise opaque content blob: does it contain any real text, and
// what is its first heading. Both are pure reads; the tree is never
// rewritten.
type ContentAnalyzer struct{}

// NewContentAnalyzer creates a new content analyzer
func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{}
}

// contentNode mirrors the structured-document tree shape: typed nodes
// with optional text and children. Unknown fields are ignored.
type contentNode struct {
	Type    string        `json:"type"`
	Text    string        `json:"text"`
	Content []contentNode `json:"content"`
}

// HasText reports whether the content tree contains any non-whitespace
// text node. Nil, invalid, or empty trees count as empty.
func (a *ContentAnalyzer) HasText(content json.RawMessage) bool {
	root, ok := parseContent(content)
	if !ok {
		return false
	}
	return hasText(root)
}

// ExtractHeading returns the concatenated text of the first heading
// node, trimmed, or "" when the tree has no heading.
func (a *ContentAnalyzer) ExtractHeading(content json.RawMessage) string {
	root, ok := parseContent(content)
	if !ok {
		return ""
	}
	if heading := findHeading(root); heading != nil {
		var sb strings.Builder
		collectText(*heading, &sb)
		return strings.TrimSpace(sb.String())
	}
	return ""
}

func parseContent(content json.RawMessage) (contentNode, bool) {
	if len(content) == 0 {
		return contentNode{}, false
	}
	var root contentNode
	if err := json.Unmarshal(content, &root); err != nil {
		return contentNode{}, false
	}
	return root, true
}

func hasText(node contentNode) bool {
	if strings.TrimSpace(node.Text) != "" {
		return true
	}
	for _, child := range node.Content {
		if hasText(child) {
			return true
		}
	}
	return false
}

// findHeading walks the tree depth-first and returns the first node
// whose type is "heading".
func findHeading(node contentNode) *contentNode {
	if node.Type == "heading" {
		return &node
	}
	for i := range node.Content {
		if heading := findHeading(node.Content[i]); heading != nil {
			return heading
		}
	}
	return nil
}

func collectText(node contentNode, sb *strings.Builder) {
	if node.Text != "" {
		sb.WriteString(node.Text)
	}
	for _, child := range node.Content {
		collectText(child, sb)
	}
}
