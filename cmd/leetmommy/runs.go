package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/leetmommy/leetmommy"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := leetmommy.CrawlRunFilter{Limit: c.Limit}
	if c.Cohort != "" {
		cohort := leetmommy.Cohort(c.Cohort)
		filter.Cohort = &cohort
	}

	runs, err := deps.Runs.FindCrawlRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl runs found. Use 'leetmommy crawl' to start one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tCOHORT\tSTATUS\tDOCS\tCHANGED\tFAILED\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Cohort, r.Status, r.Documents, r.Changed, r.FailedPages+r.FailedWrites,
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
	}
	return tw.Flush()
}
