package main

import (
	"fmt"

	"github.com/provdir/provdir"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := provdir.ProviderFilter{
		SortBy: provdir.SortByName,
		Limit:  c.Limit,
	}
	if c.Specialty != "" {
		filter.Specialty = &c.Specialty
	}
	if c.Multi {
		multi := true
		filter.HasMultipleLocations = &multi
	}

	providers, err := deps.Providers.FindProviders(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", provdir.ErrorMessage(err))
		return err
	}

	if len(providers) == 0 {
		fmt.Fprintln(deps.Stdout, "No providers found. Use 'provdir scrape' to populate the database.")
		return nil
	}

	for _, p := range providers {
		specialty := "-"
		if p.Specialty != nil {
			specialty = *p.Specialty
		}
		phone := "-"
		if p.Phone != nil {
			phone = *p.Phone
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", p.ID, p.Name, specialty, phone)
	}

	return nil
}
