package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/leetmommy/leetmommy"
)

// Field separators keep ["ab", "c"] and ["a", "bc"] from hashing alike.
const (
	fieldSep = "\x1e"
	itemSep  = "\x1f"
)

// ComputeHash fingerprints the indexed content of a document using xxhash.
// The URL is not part of the fingerprint.
func ComputeHash(doc *leetmommy.Document) string {
	d := xxhash.New()
	_, _ = d.WriteString(doc.Title)
	for _, field := range [][]string{doc.Headers, doc.Bullets, doc.Text, doc.Code} {
		_, _ = d.WriteString(fieldSep)
		for _, s := range field {
			_, _ = d.WriteString(s)
			_, _ = d.WriteString(itemSep)
		}
	}
	return fmt.Sprintf("%x", d.Sum64())
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
