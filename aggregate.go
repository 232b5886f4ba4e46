package provdir

import "math"

// Aggregate computes the summary report from a full set of provider records.
// It is a single read-only pass over the input: records are never mutated and
// the result is fully determined by input content and order.
//
// Groups in SharedPhoneNumbers retain only phone values shared by two or more
// records; PhoneOrder lists those values in first-encountered input order.
// An empty input yields zero counts and zero percentages rather than an error.
func Aggregate(providers []*Provider) *Report {
	report := &Report{
		SharedPhoneNumbers: make(map[string][]ProviderRef),
		MultiLocation:      []ProviderRef{},
	}
	report.Summary.TotalProviders = len(providers)

	phoneGroups := make(map[string][]ProviderRef)
	var phoneOrder []string

	for _, p := range providers {
		if p.Rating != nil && *p.Rating > 0 {
			report.Summary.ProvidersWithRatings++
		}

		if p.Phone != nil && *p.Phone != "" {
			phone := *p.Phone
			if _, ok := phoneGroups[phone]; !ok {
				phoneOrder = append(phoneOrder, phone)
			}
			phoneGroups[phone] = append(phoneGroups[phone], ProviderRef{
				Name:       p.Name,
				ProfileURL: p.ProfileURL,
			})
		}

		if p.HasMultipleLocations {
			report.MultiLocation = append(report.MultiLocation, ProviderRef{
				Name:       p.Name,
				ProfileURL: p.ProfileURL,
			})
		}
	}

	for _, phone := range phoneOrder {
		group := phoneGroups[phone]
		if len(group) < 2 {
			continue
		}
		report.SharedPhoneNumbers[phone] = group
		report.PhoneOrder = append(report.PhoneOrder, phone)
	}

	report.Summary.SharedPhoneNumbers = len(report.SharedPhoneNumbers)
	report.Summary.MultiLocationProviders = len(report.MultiLocation)

	if total := report.Summary.TotalProviders; total > 0 {
		report.RatedPercent = percent(report.Summary.ProvidersWithRatings, total)
		report.MultiLocationPercent = percent(report.Summary.MultiLocationProviders, total)
	}

	return report
}

// percent returns n/total as a percentage rounded to one decimal place.
func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}
