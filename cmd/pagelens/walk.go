package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/walk"
)

// Run executes the walk command.
func (c *WalkCmd) Run(deps *Dependencies) error {
	var mu sync.Mutex
	var saveErrs int

	walker := walk.NewWalker(deps.Fetcher, deps.Coordinator,
		walk.WithMaxPages(c.MaxPages),
		walk.WithConcurrency(c.Concurrency),
		walk.WithRPS(c.RPS),
	)
	walker.OnPage = func(url string, env *pagelens.Envelope, err error) {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "failed  %s: %s\n", url, pagelens.ErrorMessage(err))
			return
		}
		fmt.Fprintf(deps.Stderr, "scraped %s (%s)\n", url, env.Category)

		if c.Save {
			mu.Lock()
			defer mu.Unlock()
			if _, err := saveEnvelope(deps, env); err != nil {
				saveErrs++
				fmt.Fprintf(deps.Stderr, "save failed for %s: %s\n", url, pagelens.ErrorMessage(err))
			}
		}
	}

	result, err := walker.Walk(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "done: %d pages extracted, %d failed\n", len(result.Envelopes), result.Failed)
	if saveErrs > 0 {
		fmt.Fprintf(deps.Stderr, "%d results could not be saved\n", saveErrs)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Envelopes)
}
