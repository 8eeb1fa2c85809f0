package leetmommy

import "context"

// SearchService answers read-only queries against a cohort index.
type SearchService interface {
	// Search matches the query against every text field of the indexed
	// documents. All query terms must match, each with a bounded spelling
	// tolerance. Results are ordered most relevant first, with title and
	// header matches weighted above body text and code weighted below it.
	// Returns ENOTFOUND if the index does not exist.
	Search(ctx context.Context, index string, query string) ([]*Document, error)

	// Autocomplete matches a partial title against document titles only,
	// so that a prefix of a title word matches the title.
	// Returns ENOTFOUND if the index does not exist.
	Autocomplete(ctx context.Context, index string, text string) ([]*Match, error)
}

// Match is a raw hit record as returned by the index engine.
type Match struct {
	ID     string    `json:"_id"`
	Index  string    `json:"_index"`
	Score  float64   `json:"_score"`
	Source *Document `json:"_source"`
}
