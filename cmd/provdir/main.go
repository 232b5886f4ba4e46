package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/provdir/provdir"
	"github.com/provdir/provdir/extract"
	"github.com/provdir/provdir/goquery"
	provhttp "github.com/provdir/provdir/http"
	"github.com/provdir/provdir/postgres"
	"github.com/provdir/provdir/rod"
	"github.com/provdir/provdir/scrape"
	provslog "github.com/provdir/provdir/slog"
	"github.com/provdir/provdir/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Resolved configuration, available after Run() begins.
	Config *Config

	// SQLite database used when no Postgres DSN is configured.
	DB *sqlite.DB

	// Postgres database used when a DSN is configured.
	PG *postgres.DB

	// Service for end-to-end testing.
	ProviderService provdir.ProviderService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.PG != nil {
		return m.PG.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}
	m.Config = cfg

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("provdir"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'provdir --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// kong reports the selected command with its positional placeholders,
	// e.g. "delete <id>"; the first word identifies the command regardless
	// of where global flags appear in args.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	// Open storage: Postgres when a DSN is configured, SQLite otherwise.
	if cfg.PostgresDSN != "" {
		m.PG = postgres.NewDB(cfg.PostgresDSN)
		if err := m.PG.Open(ctx); err != nil {
			return fmt.Errorf("failed to open postgres database: %w", err)
		}
		m.ProviderService = postgres.NewProviderService(m.PG)
	} else {
		m.DB = sqlite.NewDB(cfg.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PROVDIR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
		}
		m.ProviderService = sqlite.NewProviderService(m.DB)
	}
	defer m.Close()

	deps.Providers = m.ProviderService
	if cli.Verbose {
		deps.Providers = provslog.NewLoggingProviderService(m.ProviderService, logger)
	}

	// Wire the scraper only for the scrape command; it launches a browser.
	if cmd == "scrape" {
		var fetcher provdir.Fetcher
		if cli.Scrape.Snapshot {
			fetcher = provhttp.NewFetcher()
		} else {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		}
		if cli.Verbose {
			fetcher = rod.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		extractor, err := extract.NewExtractor(cfg.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to create extractor: %w", err)
		}

		rps := cfg.RateLimit
		if cli.Scrape.RPS > 0 {
			rps = cli.Scrape.RPS
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			Parser:      goquery.NewParser(""),
			Extractor:   extractor,
			Providers:   deps.Providers,
			Limiter:     scrape.NewLimiter(rps),
			Pages:       cfg.Pages,
			Concurrency: cfg.Concurrency,
		}

		return kongCtx.Run(deps)
	}

	return kongCtx.Run(deps)
}
