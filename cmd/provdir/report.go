package main

import (
	"fmt"
	"strings"

	"github.com/provdir/provdir"
	"github.com/provdir/provdir/fs"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	providers, err := deps.Providers.FindProviders(deps.Ctx, provdir.ProviderFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", provdir.ErrorMessage(err))
		return err
	}

	report := provdir.Aggregate(providers)

	path := c.Output
	if path == "" {
		path = fs.DefaultReportFilename
	}
	writer := fs.NewWriter(path)
	if err := writer.WriteReport(deps.Ctx, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", provdir.ErrorMessage(err))
		return err
	}

	printSummary(deps, report)
	fmt.Fprintf(deps.Stdout, "\nReport written to %s\n", writer.Path())
	return nil
}

// printSummary prints a human-readable version of the report.
func printSummary(deps *Dependencies, report *provdir.Report) {
	s := report.Summary

	fmt.Fprintf(deps.Stdout, "Total doctors: %d\n", s.TotalProviders)
	fmt.Fprintf(deps.Stdout, "Doctors with ratings: %d (%.1f%%)\n", s.ProvidersWithRatings, report.RatedPercent)
	fmt.Fprintf(deps.Stdout, "Doctors with multiple locations: %d (%.1f%%)\n", s.MultiLocationProviders, report.MultiLocationPercent)
	fmt.Fprintf(deps.Stdout, "Shared phone numbers: %d\n", s.SharedPhoneNumbers)

	for _, phone := range report.PhoneOrder {
		refs := report.SharedPhoneNumbers[phone]
		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = ref.Name
		}
		fmt.Fprintf(deps.Stdout, "  %s: %s\n", phone, strings.Join(names, ", "))
	}

	for _, ref := range report.MultiLocation {
		fmt.Fprintf(deps.Stdout, "  multiple locations: %s\n", ref.Name)
	}
}
