package main

import (
	"fmt"

	"github.com/leetmommy/leetmommy"
)

// Run executes the recreate command.
func (c *RecreateCmd) Run(deps *Dependencies) error {
	req := leetmommy.CohortRequest{Cohort: c.Cohort}
	if err := req.Validate(deps.Config.CohortSet()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm discarding all documents of %q\n", c.Cohort)
		return leetmommy.Errorf(leetmommy.EINVALID, "use --force to confirm recreation")
	}

	index := leetmommy.Cohort(c.Cohort).IndexName()
	if err := deps.Indexes.Recreate(deps.Ctx, index, leetmommy.DefaultIndexSchema()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Recreated index %q\n", index)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	req := leetmommy.CohortRequest{Cohort: c.Cohort}
	if err := req.Validate(deps.Config.CohortSet()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return leetmommy.Errorf(leetmommy.EINVALID, "use --force to confirm deletion")
	}

	index := leetmommy.Cohort(c.Cohort).IndexName()
	if err := deps.Indexes.Delete(deps.Ctx, index); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leetmommy.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted index %q\n", index)
	return nil
}
