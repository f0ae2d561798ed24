package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"golang.org/x/net/html"
)

// Flatten parses an HTML response sheet into the text and table structure
// the scoring engine reads. Text nodes are trimmed and joined with a single
// space; script and style content is skipped.
func Flatten(r io.Reader) (scoring.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return scoring.Document{}, fmt.Errorf("parse response sheet html: %w", err)
	}

	doc := scoring.Document{Text: joinedText(root, " ")}
	walk(root, func(n *html.Node) {
		if isElement(n, "table") {
			doc.Tables = append(doc.Tables, flattenTable(n))
		}
	})
	return doc, nil
}

// FlattenString is Flatten over an in-memory document.
func FlattenString(s string) (scoring.Document, error) {
	return Flatten(strings.NewReader(s))
}

func flattenTable(table *html.Node) scoring.Table {
	t := scoring.Table{Text: joinedText(table, " ")}
	walk(table, func(n *html.Node) {
		if !isElement(n, "tr") {
			return
		}
		var cells []string
		walk(n, func(c *html.Node) {
			if isElement(c, "td") {
				cells = append(cells, joinedText(c, ""))
			}
		})
		t.Rows = append(t.Rows, cells)
	})
	return t
}

func joinedText(n *html.Node, sep string) string {
	var parts []string
	walk(n, func(c *html.Node) {
		if c.Type != html.TextNode || skipped(c) {
			return
		}
		if s := strings.TrimSpace(c.Data); s != "" {
			parts = append(parts, s)
		}
	})
	return strings.Join(parts, sep)
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func skipped(text *html.Node) bool {
	p := text.Parent
	return p != nil && p.Type == html.ElementNode && (p.Data == "script" || p.Data == "style")
}
