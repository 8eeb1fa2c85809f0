package leetmommy

// Extractor derives a structured document from a lecture page.
type Extractor interface {
	// Extract parses HTML and returns the page's title, headers, bullets,
	// paragraphs and code blocks. It never fails: malformed or missing
	// structure yields empty fields. The returned document has no URL.
	Extract(html string) *Document
}
