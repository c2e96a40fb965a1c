package main

import (
	"context"
	"io"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/scrape"
	"github.com/pagelens/pagelens/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	DB          *sqlite.DB
	Scrapes     pagelens.ScrapeService
	Coordinator *scrape.Coordinator
	Fetcher     pagelens.Fetcher
	Enricher    pagelens.Enricher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Detect  DetectCmd  `cmd:"" help:"Classify a page's site type"`
	Scrape  ScrapeCmd  `cmd:"" help:"Extract structured data from a page"`
	Walk    WalkCmd    `cmd:"" help:"Extract a site page by page from a start URL"`
	Export  ExportCmd  `cmd:"" help:"Export a saved scrape to csv, xml, md or pdf"`
	Enrich  EnrichCmd  `cmd:"" help:"Look up contact details for a saved profile scrape"`
	History HistoryCmd `cmd:"" help:"Manage saved scrapes"`

	Verbose bool `short:"v" help:"Log fetch and classification activity"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Render bool   `short:"r" help:"Render the page in a headless browser"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Render bool   `short:"r" help:"Render the page in a headless browser"`
	Save   bool   `short:"s" help:"Save the result to history"`
}

// WalkCmd is the "walk" subcommand.
type WalkCmd struct {
	URL         string  `arg:"" help:"Start URL"`
	Render      bool    `short:"r" help:"Render pages in a headless browser"`
	Save        bool    `short:"s" help:"Save each result to history"`
	MaxPages    int     `short:"n" default:"50" help:"Page limit"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent page workers"`
	RPS         float64 `default:"1" help:"Requests per second per domain"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Scrape ID"`
	Format string `short:"f" default:"csv" enum:"csv,xml,md,pdf" help:"Output format"`
	Output string `short:"o" help:"Output file (default: generated name; '-' for stdout)"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	ID       string `arg:"" help:"Scrape ID of a saved profile extraction"`
	Provider string `short:"p" default:"hunter" enum:"hunter,apollo,snov" help:"Enrichment provider"`
	APIKey   string `short:"k" env:"PAGELENS_ENRICH_KEY" help:"Provider API key"`
	Contact  int    `default:"0" help:"Index of the contact to enrich"`
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" help:"List saved scrapes"`
	Show   HistoryShowCmd   `cmd:"" help:"Print a saved scrape as JSON"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a saved scrape"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	Category string `help:"Filter by category (ecommerce, professional_profile, general)"`
	Limit    int    `default:"20" help:"Maximum rows"`
	Offset   int    `default:"0" help:"Rows to skip"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID string `arg:"" help:"Scrape ID"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Scrape ID"`
}
