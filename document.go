package leetmommy

import (
	"context"
	"strings"
)

// Document is the structured record derived from one crawled lecture page.
// URL is the identity key: re-crawling a URL replaces the stored record.
type Document struct {
	URL     string   `json:"url" yaml:"url"`
	Title   string   `json:"title" yaml:"title"`
	Headers []string `json:"headers" yaml:"headers"`
	Bullets []string `json:"bullets" yaml:"bullets"`
	Text    []string `json:"text" yaml:"text"`
	Code    []string `json:"code" yaml:"code"`
}

// NewDocument returns a document for url with empty, non-nil field lists.
func NewDocument(url string) *Document {
	return &Document{
		URL:     url,
		Headers: []string{},
		Bullets: []string{},
		Text:    []string{},
		Code:    []string{},
	}
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document url required")
	}
	return nil
}

// CollapseNewlines replaces every newline character in s with a single space.
// No other whitespace normalization is applied.
func CollapseNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// DocumentWriter upserts documents into a search index.
type DocumentWriter interface {
	// WriteDocuments submits one upsert per document, keyed by URL, as a
	// single batch and then refreshes the index so the writes are visible
	// to subsequent queries. Individual upserts may fail independently;
	// those are listed in the report rather than returned as an error.
	WriteDocuments(ctx context.Context, index string, docs []*Document) (*WriteReport, error)
}

// WriteReport summarizes the outcome of a batch write.
type WriteReport struct {
	Written int            `json:"written"`
	Failed  []WriteFailure `json:"failed"`
}

// WriteFailure identifies a document whose upsert was rejected.
type WriteFailure struct {
	URL    string `json:"url"`
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

// FailedURLs returns the identities of the documents that failed to write.
func (r *WriteReport) FailedURLs() []string {
	urls := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		urls[i] = f.URL
	}
	return urls
}

// DocumentStore persists crawled documents with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type DocumentStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}
