package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/crawl"
	"github.com/leetmommy/leetmommy/elasticsearch"
	"github.com/leetmommy/leetmommy/goquery"
	lmhttp "github.com/leetmommy/leetmommy/http"
	lmslog "github.com/leetmommy/leetmommy/slog"
	"github.com/leetmommy/leetmommy/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Transport, if set, is used to reach Elasticsearch.
	Transport http.RoundTripper

	// SQLite database holding crawl history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leetmommy"),
		kong.Description("Search lecture notes by cohort."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leetmommy --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	config, err := LoadConfig(cli.Config, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: invalid configuration: %s\n", leetmommy.ErrorMessage(err))
		return err
	}
	deps.Config = config
	deps.Logger = newLogger(config, stderr)

	if err := m.wire(deps); err != nil {
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire connects the services used by the commands.
func (m *Main) wire(deps *Dependencies) error {
	config, logger := deps.Config, deps.Logger

	var opts []elasticsearch.Option
	if m.Transport != nil {
		opts = append(opts, elasticsearch.WithTransport(m.Transport))
	}
	client, err := elasticsearch.NewClient([]string{config.ElasticsearchURL}, opts...)
	if err != nil {
		return err
	}

	searchService, err := elasticsearch.NewSearchServiceWithConfig(client, config.QueryConfig())
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set LEETMOMMY_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", config.DBPath, err)
	}

	var (
		indexes leetmommy.IndexService   = elasticsearch.NewIndexService(client)
		writer  leetmommy.DocumentWriter = elasticsearch.NewDocumentWriter(client)
		search  leetmommy.SearchService  = searchService
		fetcher leetmommy.Fetcher        = newFetcher(config)
	)

	deps.Crawler = &crawl.Crawler{
		Extractor:   goquery.NewExtractor(),
		Links:       goquery.NewListingSelector(),
		ListingURL:  config.Crawl.ListingURL,
		Concurrency: config.Crawl.Concurrency,
		Timeout:     config.Crawl.Timeout,
	}
	if config.Crawl.RateLimit > 0 {
		deps.Crawler.RateLimiter = crawl.NewDomainLimiter(config.Crawl.RateLimit)
	}

	var crawler leetmommy.CohortCrawler = deps.Crawler
	if config.DebugEnabled() {
		fetcher = lmslog.NewLoggingFetcher(fetcher, logger)
		crawler = lmslog.NewLoggingCrawler(deps.Crawler, logger)
		indexes = lmslog.NewLoggingIndexService(indexes, logger)
		writer = lmslog.NewLoggingDocumentWriter(writer, logger)
		search = lmslog.NewLoggingSearchService(search, logger)
	}
	deps.Crawler.Fetcher = fetcher

	deps.Engine = client
	deps.Indexes = indexes
	deps.Search = search
	deps.Runs = sqlite.NewCrawlRunService(m.DB)
	deps.Indexer = lmslog.NewLoggingIndexer(&crawl.Indexer{
		Crawler: crawler,
		Indexes: indexes,
		Writer:  writer,
		Runs:    deps.Runs,
		Hashes:  sqlite.NewPageHashService(m.DB),
	}, logger)

	return nil
}

func newFetcher(config *Config) *lmhttp.Fetcher {
	var opts []lmhttp.Option
	if config.Crawl.FetchTimeout > 0 {
		opts = append(opts, lmhttp.WithTimeout(config.Crawl.FetchTimeout))
	}
	return lmhttp.NewFetcher(opts...)
}

// newLogger returns a colored console logger in debug mode and a JSON
// logger at info level otherwise.
func newLogger(config *Config, w io.Writer) *slog.Logger {
	if config.DebugEnabled() {
		return slog.New(lmslog.NewColorHandler(w, &lmslog.ColorHandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
