package provdir

import "context"

// ProviderRef identifies a provider within a report listing.
type ProviderRef struct {
	Name       string  `json:"name"`
	ProfileURL *string `json:"profile_url"`
}

// ReportSummary holds the report's headline counts. The JSON field names are
// part of the external contract; report consumers depend on them.
type ReportSummary struct {
	TotalProviders         int `json:"total_doctors"`
	ProvidersWithRatings   int `json:"doctors_with_ratings"`
	SharedPhoneNumbers     int `json:"shared_phone_numbers"`
	MultiLocationProviders int `json:"doctors_with_multiple_locations"`
}

// Report is the aggregate insight document computed from the full stored
// record set. The percentage figures are derived for human-readable output
// only and are excluded from the serialized shape.
type Report struct {
	Summary            ReportSummary            `json:"summary"`
	SharedPhoneNumbers map[string][]ProviderRef `json:"shared_phone_numbers"`
	MultiLocation      []ProviderRef            `json:"doctors_with_multiple_locations"`

	// PhoneOrder records each shared phone value in first-encountered input
	// order, since map iteration order is unspecified.
	PhoneOrder []string `json:"-"`

	RatedPercent         float64 `json:"-"`
	MultiLocationPercent float64 `json:"-"`
}

// ReportWriter serializes a report to its external representation.
type ReportWriter interface {
	WriteReport(ctx context.Context, report *Report) error
}
