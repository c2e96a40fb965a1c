package main

import (
	"encoding/json"
	"fmt"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	snap := goquery.NewSnapshot(c.URL, html)
	env := deps.Coordinator.Extract(deps.Ctx, snap, "")

	if c.Save {
		id, err := saveEnvelope(deps, env)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "saved %s\n", id)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// saveEnvelope persists an envelope to the scrape history.
func saveEnvelope(deps *Dependencies, env *pagelens.Envelope) (string, error) {
	s := &pagelens.Scrape{
		Category:  env.Category,
		SourceURL: env.SourceURL,
		PageTitle: env.PageTitle,
		Envelope:  *env,
	}
	if err := deps.Scrapes.CreateScrape(deps.Ctx, s); err != nil {
		return "", err
	}
	return s.ID, nil
}
