package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/crawl"
	lmhttp "github.com/leetmommy/leetmommy/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	Engine  lmhttp.HealthChecker
	Indexes leetmommy.IndexService
	Search  leetmommy.SearchService
	Runs    leetmommy.CrawlRunService

	// Crawler is the concrete crawler so commands can attach progress
	// reporting; Indexer crawls through it.
	Crawler *crawl.Crawler
	Indexer leetmommy.CohortIndexer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"C" type:"path" help:"Path to YAML config file (default: ./leetmommy.yaml if present)"`

	Serve        ServeCmd        `cmd:"" help:"Run the HTTP API server"`
	Crawl        CrawlCmd        `cmd:"" help:"Crawl a cohort and update its index"`
	Search       SearchCmd       `cmd:"" help:"Search a cohort's lecture notes"`
	Autocomplete AutocompleteCmd `cmd:"" help:"Autocomplete lecture titles"`
	Recreate     RecreateCmd     `cmd:"" help:"Delete and recreate a cohort index"`
	Delete       DeleteCmd       `cmd:"" help:"Delete a cohort index"`
	Runs         RunsCmd         `cmd:"" help:"List recent crawl runs"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string        `short:"a" help:"Bind address (overrides config)"`
	Wait time.Duration `default:"30s" help:"How long to wait for the search engine at startup"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Cohort      string `arg:"" help:"Cohort to crawl"`
	DryRun      bool   `short:"n" help:"Crawl without touching the index"`
	Out         string `short:"o" type:"path" help:"Directory to dump crawled documents to as YAML (with --dry-run)"`
	Concurrency int    `short:"c" help:"Concurrent fetch limit (overrides config)"`
	NoProgress  bool   `help:"Disable the progress bar"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Cohort string `arg:"" help:"Cohort to search"`
	Query  string `arg:"" help:"Search terms"`
}

// AutocompleteCmd is the "autocomplete" subcommand.
type AutocompleteCmd struct {
	Cohort string `arg:"" help:"Cohort to search"`
	Text   string `arg:"" help:"Partial title"`
}

// RecreateCmd is the "recreate" subcommand.
type RecreateCmd struct {
	Cohort string `arg:"" help:"Cohort whose index to recreate"`
	Force  bool   `help:"Confirm discarding all indexed documents"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Cohort string `arg:"" help:"Cohort whose index to delete"`
	Force  bool   `help:"Confirm deletion"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Cohort string `arg:"" optional:"" help:"Only show runs of this cohort"`
	Limit  int    `short:"l" default:"20" help:"Maximum number of runs to show"`
}
