package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/enrich"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/htmltomarkdown"
	pagehttp "github.com/pagelens/pagelens/http"
	"github.com/pagelens/pagelens/relay"
	"github.com/pagelens/pagelens/rod"
	"github.com/pagelens/pagelens/scrape"
	pageslog "github.com/pagelens/pagelens/slog"
	"github.com/pagelens/pagelens/sqlite"
	"github.com/pagelens/pagelens/trafilatura"
	"github.com/pagelens/pagelens/voyager"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the scrape history.
	DB *sqlite.DB

	// Service for end-to-end testing.
	ScrapeService pagelens.ScrapeService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
		kong.Name("pagelens"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagelens --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGELENS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ScrapeService = sqlite.NewScrapeService(m.DB)
	deps.DB = m.DB
	deps.Scrapes = m.ScrapeService

	// Commands that touch the network get a fetcher: rendered when
	// requested, plain HTTP otherwise. A rendered fetcher can also carry
	// the session cookies the profile-API client needs.
	var fetcher pagelens.Fetcher
	render := cli.Detect.Render || cli.Scrape.Render || cli.Walk.Render
	switch cmd {
	case "detect", "scrape", "walk":
		if render {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = pagehttp.NewFetcher()
		}
		deps.Fetcher = pageslog.NewLoggingFetcher(fetcher, logger)
		defer deps.Fetcher.Close()
	}

	deps.Coordinator = newCoordinator(logger, SessionToken(fetcher, commandURL(cli, cmd)))

	if cmd == "enrich" {
		enricher, err := enrich.New(cli.Enrich.Provider, cli.Enrich.APIKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set PAGELENS_ENRICH_KEY or pass --api-key")
			return err
		}
		deps.Enricher = pageslog.NewLoggingEnricher(enricher, logger)
	}

	return kongCtx.Run(deps)
}

// sessionCookier is implemented by fetchers that can expose the
// browser's cookies for a URL (the rod fetcher).
type sessionCookier interface {
	SessionCookies(rawURL string) (string, error)
}

// SessionToken recovers the anti-forgery token for internal-API profile
// lookups: from PAGELENS_SESSION_COOKIE when set, otherwise from the
// fetcher's browser session when it has one. Returns "" when no token
// can be recovered; profile extraction is then DOM-only.
func SessionToken(fetcher pagelens.Fetcher, rawURL string) string {
	if cookie := os.Getenv("PAGELENS_SESSION_COOKIE"); cookie != "" {
		return voyager.ParseSessionToken(cookie)
	}
	sc, ok := fetcher.(sessionCookier)
	if !ok {
		return ""
	}
	cookies, err := sc.SessionCookies(rawURL)
	if err != nil {
		return ""
	}
	return voyager.ParseSessionToken(cookies)
}

// commandURL returns the page URL argument of the command being run, if
// it has one.
func commandURL(cli *CLI, cmd string) string {
	switch cmd {
	case "detect":
		return cli.Detect.URL
	case "scrape":
		return cli.Scrape.URL
	case "walk":
		return cli.Walk.URL
	}
	return ""
}

// newCoordinator assembles the extraction pipeline. A non-empty session
// token enables internal-API profile lookups.
func newCoordinator(logger *slog.Logger, token string) *scrape.Coordinator {
	var profileOpts []goquery.ProfileOption
	if token != "" {
		api := voyager.NewClient(relay.Static(token))
		profileOpts = append(profileOpts, goquery.WithProfileAPI(api))
	}

	return scrape.NewCoordinator(
		pageslog.NewLoggingClassifier(goquery.NewClassifier(), logger),
		goquery.NewCommerceExtractor(goquery.NewDefaultRegistry()),
		goquery.NewProfileExtractor(profileOpts...),
		goquery.NewGeneralExtractor(
			goquery.WithContentExtractor(trafilatura.NewExtractor()),
			goquery.WithMarkdownConverter(htmltomarkdown.NewConverter()),
		),
	)
}

func defaultDBPath() string {
	if path := os.Getenv("PAGELENS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagelens.db"
	}
	dir := filepath.Join(home, ".pagelens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagelens.db")
}
