// Package mock provides hand-written mock implementations of provdir
// interfaces for testing.
package mock

import (
	"context"

	"github.com/provdir/provdir"
)

var _ provdir.ProviderService = (*ProviderService)(nil)

// ProviderService is a mock implementation of provdir.ProviderService.
type ProviderService struct {
	SaveProviderFn     func(ctx context.Context, p *provdir.Provider) error
	FindProviderByIDFn func(ctx context.Context, id string) (*provdir.Provider, error)
	FindProvidersFn    func(ctx context.Context, filter provdir.ProviderFilter) ([]*provdir.Provider, error)
	DeleteProviderFn   func(ctx context.Context, id string) error
}

func (s *ProviderService) SaveProvider(ctx context.Context, p *provdir.Provider) error {
	return s.SaveProviderFn(ctx, p)
}

func (s *ProviderService) FindProviderByID(ctx context.Context, id string) (*provdir.Provider, error) {
	return s.FindProviderByIDFn(ctx, id)
}

func (s *ProviderService) FindProviders(ctx context.Context, filter provdir.ProviderFilter) ([]*provdir.Provider, error) {
	return s.FindProvidersFn(ctx, filter)
}

func (s *ProviderService) DeleteProvider(ctx context.Context, id string) error {
	return s.DeleteProviderFn(ctx, id)
}
