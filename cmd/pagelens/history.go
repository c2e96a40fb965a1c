package main

import (
	"encoding/json"
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := pagelens.ScrapeFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Category != "" {
		category := pagelens.SiteCategory(c.Category)
		if !category.Valid() {
			err := pagelens.Errorf(pagelens.EINVALID, "invalid category %q", c.Category)
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
			return err
		}
		filter.Category = &category
	}

	scrapes, err := deps.Scrapes.FindScrapes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if len(scrapes) == 0 {
		fmt.Fprintln(deps.Stdout, "No scrapes found. Use 'pagelens scrape --save' to create one.")
		return nil
	}

	for _, s := range scrapes {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-20s  %s\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Category, s.SourceURL)
	}
	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	s, err := deps.Scrapes.FindScrapeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Scrapes.DeleteScrape(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted scrape %s\n", c.ID)
	return nil
}
