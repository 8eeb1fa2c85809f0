package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/crawl"
	"github.com/leetmommy/leetmommy/fs"
	"github.com/schollz/progressbar/v3"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	req := leetmommy.CohortRequest{Cohort: c.Cohort}
	if err := req.Validate(deps.Config.CohortSet()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}
	if c.Out != "" && !c.DryRun {
		fmt.Fprintf(deps.Stderr, "error: --out requires --dry-run\n")
		return leetmommy.Errorf(leetmommy.EINVALID, "--out requires --dry-run")
	}
	cohort := leetmommy.Cohort(c.Cohort)

	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}
	if !c.NoProgress {
		deps.Crawler.Progress = progressReporter(deps.Stderr, "Crawling "+c.Cohort)
	}

	if c.DryRun {
		return c.dryRun(deps, cohort)
	}

	result, err := deps.Indexer.IndexCohort(deps.Ctx, cohort)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	printFailures(deps.Stderr, result.Failed)
	for _, f := range result.Report.Failed {
		fmt.Fprintf(deps.Stderr, "  rejected %s: %s\n", crawl.TruncateURL(f.URL, 60), f.Reason)
	}
	fmt.Fprintf(deps.Stdout, "Indexed %d documents into %q (%d changed, %d failed pages, %d failed writes)\n",
		result.Report.Written, cohort.IndexName(), result.Run.Changed, len(result.Failed), len(result.Report.Failed))
	return nil
}

// dryRun crawls without writing to the index and optionally dumps the
// documents to YAML files.
func (c *CrawlCmd) dryRun(deps *Dependencies, cohort leetmommy.Cohort) error {
	result, err := deps.Crawler.Crawl(deps.Ctx, cohort)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", leetmommy.ErrorMessage(err))
		return err
	}
	printFailures(deps.Stderr, result.Failed)

	if c.Out == "" {
		for _, doc := range result.Documents {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", doc.URL, doc.Title)
		}
		fmt.Fprintf(deps.Stdout, "Crawled %d documents (%d failed)\n", len(result.Documents), len(result.Failed))
		return nil
	}

	store := fs.NewFileStore(filepath.Dir(c.Out), filepath.Base(c.Out))
	for _, doc := range result.Documents {
		if err := store.Save(deps.Ctx, doc); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: saving %s: %v\n", doc.URL, err)
			return err
		}
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d documents to %s\n", len(result.Documents), c.Out)
	return nil
}

func printFailures(w io.Writer, failed []leetmommy.FailedPage) {
	for _, f := range failed {
		fmt.Fprintf(w, "  skip %s: %s\n", crawl.TruncateURL(f.URL, 60), f.Error)
	}
}

// progressReporter returns a progress callback drawing a bar on w. The bar
// is created on the first report, once the number of pages is known.
func progressReporter(w io.Writer, description string) leetmommy.CrawlProgressFunc {
	var bar *progressbar.ProgressBar
	return func(p leetmommy.CrawlProgress) {
		if bar == nil {
			bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription(color.CyanString(description)),
				progressbar.OptionSetItsString("pages"),
				progressbar.OptionShowCount(),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
			)
		}
		_ = bar.Set(p.Completed)
	}
}
