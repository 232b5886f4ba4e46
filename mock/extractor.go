package mock

import "github.com/provdir/provdir"

var _ provdir.ProviderExtractor = (*ProviderExtractor)(nil)

// ProviderExtractor is a mock implementation of provdir.ProviderExtractor.
type ProviderExtractor struct {
	ExtractProvidersFn func(fragments []provdir.Fragment) []*provdir.Provider
}

func (e *ProviderExtractor) ExtractProviders(fragments []provdir.Fragment) []*provdir.Provider {
	return e.ExtractProvidersFn(fragments)
}
