package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	lmhttp "github.com/leetmommy/leetmommy/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := waitForEngine(deps.Ctx, deps.Engine, c.Wait); err != nil {
		fmt.Fprintf(deps.Stderr, "error: search engine unreachable at %s: %v\n", deps.Config.ElasticsearchURL, err)
		return err
	}

	s := lmhttp.NewServer()
	s.Addr = deps.Config.Addr
	if c.Addr != "" {
		s.Addr = c.Addr
	}
	s.Cohorts = deps.Config.CohortSet()
	s.Indexer = deps.Indexer
	s.Search = deps.Search
	s.Runs = deps.Runs
	s.Health = deps.Engine
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}

// waitForEngine polls the engine with exponential backoff until it answers
// or maxElapsed passes. A zero maxElapsed checks once.
func waitForEngine(ctx context.Context, engine lmhttp.HealthChecker, maxElapsed time.Duration) error {
	if maxElapsed <= 0 {
		return engine.Health(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed

	operation := func() error {
		return engine.Health(ctx)
	}
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
