package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	snap := goquery.NewSnapshot(c.URL, html)
	category := deps.Coordinator.DetectSiteType(snap)

	fmt.Fprintln(deps.Stdout, category)
	return nil
}
