package provdir

import (
	"context"
	"time"
)

// UnknownProviderName is the sentinel used when a directory entry's name
// cannot be located or parsed. A record never carries an empty name.
const UnknownProviderName = "Unknown Doctor"

// Provider represents a single provider record extracted from the directory.
//
// Provider has two distinct identities that must not be conflated: Name
// deduplicates records within a single extraction batch (name collisions on
// one page are expected to be the same person), while ProfileURL is the
// durable identity used for cross-run upserts by the persistence layer.
//
// Optional fields are pointers so that "field absent" survives the storage
// round-trip and remains distinguishable from "present but zero".
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Specialty  *string `json:"specialty"`
	ProfileURL *string `json:"profileUrl"`
	ImageURL   *string `json:"imageUrl"`
	Location   *string `json:"location"`
	Phone      *string `json:"phone"`

	HasMultipleLocations   bool `json:"hasMultipleLocations"`
	IsEmployedProvider     bool `json:"isEmployedProvider"`
	IsAcceptingNewPatients bool `json:"isAcceptingNewPatients"`

	Rating      *float64 `json:"rating"`
	RatingCount *int     `json:"ratingCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the provider contains invalid fields.
func (p *Provider) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "provider name required")
	}
	return nil
}

// ProviderService represents a service for managing stored provider records.
type ProviderService interface {
	// SaveProvider upserts a provider record. When the record carries a
	// profile URL and a stored record matches it, every extracted field is
	// overwritten in place; otherwise a new record is inserted.
	SaveProvider(ctx context.Context, p *Provider) error

	// FindProviderByID retrieves a provider by ID.
	// Returns ENOTFOUND if the provider does not exist.
	FindProviderByID(ctx context.Context, id string) (*Provider, error)

	// FindProviders retrieves providers matching the filter.
	FindProviders(ctx context.Context, filter ProviderFilter) ([]*Provider, error)

	// DeleteProvider permanently removes a provider.
	// Returns ENOTFOUND if the provider does not exist.
	DeleteProvider(ctx context.Context, id string) error
}

// ProviderSortOrder represents the sort order for provider queries.
type ProviderSortOrder string

// Sort orders for ProviderFilter.
const (
	SortByName      ProviderSortOrder = "name"
	SortByCreatedAt ProviderSortOrder = "created_at"
)

// ProviderFilter represents a filter for FindProviders.
type ProviderFilter struct {
	Name                 *string `json:"name"`
	Specialty            *string `json:"specialty"`
	HasPhone             *bool   `json:"hasPhone"`
	HasMultipleLocations *bool   `json:"hasMultipleLocations"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ProviderSortOrder `json:"sortBy"`
}
