// Package goquery implements lecture page parsing with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leetmommy/leetmommy"
)

// DefaultContentSelector matches the lecture body on curriculum pages.
const DefaultContentSelector = "div #page-content"

var _ leetmommy.Extractor = (*Extractor)(nil)

// Extractor extracts title, headers, bullets, paragraphs and code blocks
// from lecture pages.
type Extractor struct {
	// ContentSelector scopes body extraction. When it matches nothing the
	// whole document is used.
	ContentSelector string
}

// NewExtractor creates an Extractor scoped to DefaultContentSelector.
func NewExtractor() *Extractor {
	return &Extractor{ContentSelector: DefaultContentSelector}
}

// Extract parses the HTML and returns its fields in document order.
// Headers and title are trimmed; every newline in bullets, paragraphs and
// code blocks is replaced by a single space. Unparseable input yields a
// document with empty fields.
func (e *Extractor) Extract(html string) *leetmommy.Document {
	doc := leetmommy.NewDocument("")

	root, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return doc
	}

	doc.Title = extractTitle(root)

	body := root.Selection
	if e.ContentSelector != "" {
		if content := root.Find(e.ContentSelector).First(); content.Length() > 0 {
			body = content
		}
	}

	body.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		doc.Headers = append(doc.Headers, leetmommy.CollapseNewlines(strings.TrimSpace(sel.Text())))
	})
	doc.Bullets = collectText(body, "li")
	doc.Text = collectText(body, "p")
	doc.Code = collectText(body, "pre")

	return doc
}

// extractTitle returns the declared page title, preferring the one in head.
func extractTitle(root *goquery.Document) string {
	title := root.Find("head > title").First()
	if title.Length() == 0 {
		title = root.Find("title").First()
	}
	return leetmommy.CollapseNewlines(strings.TrimSpace(title.Text()))
}

func collectText(sel *goquery.Selection, selector string) []string {
	texts := []string{}
	sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, leetmommy.CollapseNewlines(s.Text()))
	})
	return texts
}
