package main

import (
	"fmt"

	"github.com/leetmommy/leetmommy"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	req := leetmommy.QueryRequest{Cohort: c.Cohort, Query: c.Query}
	if err := req.Validate(deps.Config.CohortSet()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	docs, err := deps.Search.Search(deps.Ctx, leetmommy.Cohort(c.Cohort).IndexName(), c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", searchErrorMessage(err, c.Cohort))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}
	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%2d. %s\n    %s\n", i+1, doc.Title, doc.URL)
	}
	return nil
}

// Run executes the autocomplete command.
func (c *AutocompleteCmd) Run(deps *Dependencies) error {
	req := leetmommy.QueryRequest{Cohort: c.Cohort, Query: c.Text}
	if err := req.Validate(deps.Config.CohortSet()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	matches, err := deps.Search.Autocomplete(deps.Ctx, leetmommy.Cohort(c.Cohort).IndexName(), c.Text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", searchErrorMessage(err, c.Cohort))
		return err
	}

	for _, m := range matches {
		title := ""
		if m.Source != nil {
			title = m.Source.Title
		}
		fmt.Fprintf(deps.Stdout, "%6.2f  %s  %s\n", m.Score, title, m.ID)
	}
	return nil
}

func searchErrorMessage(err error, cohort string) string {
	if leetmommy.ErrorCode(err) == leetmommy.ENOTFOUND {
		return fmt.Sprintf("cohort %q has no index yet. Run 'leetmommy crawl %s' first.", cohort, cohort)
	}
	return leetmommy.ErrorMessage(err)
}
