// Package crawl crawls cohort lecture listings and keeps cohort indexes in
// sync with the crawled pages.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/leetmommy/leetmommy"
	"golang.org/x/sync/errgroup"
)

// Crawl defaults.
const (
	DefaultListingURL  = "http://curric.rithmschool.com/{cohort}/lectures/"
	DefaultTimeout     = 60 * time.Second
	DefaultConcurrency = 8
)

var _ leetmommy.CohortCrawler = (*Crawler)(nil)

// Crawler fetches a cohort's lecture listing and every lecture page it
// links to. Each call to Crawl runs its own fetch scheduler, which is
// torn down before Crawl returns.
type Crawler struct {
	Fetcher     leetmommy.Fetcher
	Extractor   leetmommy.Extractor
	Links       leetmommy.LinkSelector
	RateLimiter leetmommy.DomainLimiter // nil disables throttling

	// ListingURL is the listing page template; "{cohort}" is replaced
	// with the cohort identifier.
	ListingURL string

	// Concurrency bounds the number of in-flight page fetches.
	Concurrency int

	// Timeout bounds the whole crawl, listing included.
	Timeout time.Duration

	// Progress, if set, is called after each lecture page is processed.
	Progress leetmommy.CrawlProgressFunc
}

// pageResult holds the outcome of processing a single lecture page.
type pageResult struct {
	url string
	doc *leetmommy.Document
	err error
}

// ListingURLFor returns the listing page URL of the cohort.
func (c *Crawler) ListingURLFor(cohort leetmommy.Cohort) string {
	tmpl := c.ListingURL
	if tmpl == "" {
		tmpl = DefaultListingURL
	}
	return strings.ReplaceAll(tmpl, "{cohort}", url.PathEscape(string(cohort)))
}

// Crawl crawls the cohort and blocks until every page is processed or the
// crawl timeout elapses. On timeout all in-flight fetches are canceled and
// awaited, and an ETIMEOUT error is returned without any documents.
func (c *Crawler) Crawl(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.CrawlResult, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	crawlCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := c.crawl(crawlCtx, cohort)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if errors.Is(crawlCtx.Err(), context.DeadlineExceeded) {
		return nil, leetmommy.Errorf(leetmommy.ETIMEOUT, "crawl of cohort %q exceeded %s", cohort, timeout)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Crawler) crawl(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.CrawlResult, error) {
	listingURL := c.ListingURLFor(cohort)

	listing, err := c.fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", listingURL, err)
	}

	links, err := c.Links.ExtractLinks(listing.HTML, listing.URL)
	if err != nil {
		return nil, fmt.Errorf("extract listing links: %w", err)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Buffered to hold every result so workers never block on send.
	resultCh := make(chan pageResult, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, link := range links {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- c.processPage(gctx, link)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &leetmommy.CrawlResult{
		Documents: []*leetmommy.Document{},
		Failed:    []leetmommy.FailedPage{},
	}
	completed := 0
	for res := range resultCh {
		completed++
		if res.err != nil {
			result.Failed = append(result.Failed, leetmommy.FailedPage{URL: res.url, Error: res.err.Error()})
		} else {
			result.Documents = append(result.Documents, res.doc)
		}
		if c.Progress != nil {
			c.Progress(leetmommy.CrawlProgress{
				URL:       res.url,
				Completed: completed,
				Total:     len(links),
				Error:     res.err,
			})
		}
	}

	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].URL < result.Failed[j].URL
	})

	return result, nil
}

// processPage fetches a lecture page and extracts its document.
// The document is keyed by the final response URL.
func (c *Crawler) processPage(ctx context.Context, link string) pageResult {
	page, err := c.fetch(ctx, link)
	if err != nil {
		return pageResult{url: link, err: err}
	}

	doc := c.Extractor.Extract(page.HTML)
	doc.URL = page.URL
	return pageResult{url: link, doc: doc}
}

// fetch waits for the rate limiter, if any, then fetches the URL.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (*leetmommy.Page, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}
	return c.Fetcher.Fetch(ctx, rawURL)
}
