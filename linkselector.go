package leetmommy

// LinkSelector extracts the lecture page links from a cohort listing page.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns absolute URLs of the pages to
	// crawl, in document order and without duplicates. The baseURL is used
	// to resolve relative links.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
