package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/provdir/provdir"
	"github.com/provdir/provdir/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Providers provdir.ProviderService
	Scraper   *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape the provider directory and save records"`
	Report ReportCmd `cmd:"" help:"Compute the analysis report from stored records"`
	List   ListCmd   `cmd:"" help:"List stored providers"`
	Delete DeleteCmd `cmd:"" help:"Delete a provider record"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string  `help:"Directory search URL (defaults to configured search_url)"`
	Pages       int     `short:"p" help:"Number of listing pages to fetch"`
	Concurrency int     `short:"c" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" help:"Maximum page requests per second"`
	Snapshot    bool    `help:"Fetch with plain HTTP instead of a browser (pre-rendered sources only)"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Output string `short:"o" help:"Report file path (defaults to doctor_analysis_report.json)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Specialty string `help:"Only providers with this specialty"`
	Multi     bool   `help:"Only providers with multiple locations"`
	Limit     int    `help:"Maximum number of rows"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Provider ID"`
	Force bool   `help:"Confirm deletion"`
}
