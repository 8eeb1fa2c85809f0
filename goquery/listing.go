package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/leetmommy/leetmommy"
)

// parentLink is the directory listing link back to the parent directory.
const parentLink = "../"

// archiveExtensions are link targets that are downloads, not lecture pages.
var archiveExtensions = []string{".zip", ".tar", ".gz", ".tgz", ".bz2", ".xz", ".7z", ".rar"}

var _ leetmommy.LinkSelector = (*ListingSelector)(nil)

// ListingSelector selects lecture page links from a cohort listing page.
// Every anchor is followed except the parent directory link, archive
// downloads, non-HTTP links and links back to the listing itself.
type ListingSelector struct{}

// NewListingSelector creates a new ListingSelector.
func NewListingSelector() *ListingSelector {
	return &ListingSelector{}
}

// ExtractLinks parses the listing HTML and returns the lecture page URLs
// resolved against baseURL, in document order, without duplicates.
func (s *ListingSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, leetmommy.Errorf(leetmommy.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, leetmommy.Errorf(leetmommy.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	links := []string{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || href == parentLink {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || isArchive(resolved) {
			return
		}

		link := resolved.String()
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil if the href cannot be parsed, is not HTTP(S), or resolves
// to the base URL itself.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return nil
	}
	return resolved
}

// isArchive reports whether the URL path ends in an archive extension.
func isArchive(u *url.URL) bool {
	ext := strings.ToLower(path.Ext(u.Path))
	for _, archive := range archiveExtensions {
		if ext == archive {
			return true
		}
	}
	return false
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
