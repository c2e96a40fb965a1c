package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	s, err := deps.Scrapes.FindScrapeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if len(s.Envelope.Profiles) == 0 {
		err := pagelens.Errorf(pagelens.EINVALID, "scrape %s has no profile contacts", c.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}
	if c.Contact < 0 || c.Contact >= len(s.Envelope.Profiles) {
		err := pagelens.Errorf(pagelens.EINVALID, "contact index %d out of range (0-%d)", c.Contact, len(s.Envelope.Profiles)-1)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	p := s.Envelope.Profiles[c.Contact]
	result, err := deps.Enricher.Enrich(deps.Ctx, pagelens.EnrichmentRequest{
		Name:       p.Name,
		Company:    p.Company,
		Websites:   p.Websites,
		ProfileURL: p.ProfileURL,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", p.Name, deps.Enricher.Name())
	if result.Email != "" {
		fmt.Fprintf(deps.Stdout, "email: %s", result.Email)
		if result.Confidence != "" {
			fmt.Fprintf(deps.Stdout, " (%s)", result.Confidence)
		}
		fmt.Fprintln(deps.Stdout)
	}
	if result.Phone != "" {
		fmt.Fprintf(deps.Stdout, "phone: %s\n", result.Phone)
	}
	if result.Email == "" && result.Phone == "" {
		fmt.Fprintln(deps.Stdout, "no contact details found")
	}
	return nil
}
