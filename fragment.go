package provdir

// Fragment is one self-contained markup unit representing a single directory
// entry. It exposes the minimal lookup capability the extractor needs, so the
// extraction core stays independent of any particular rendering technology.
type Fragment interface {
	// Find returns the first descendant matching the CSS selector.
	// Returns ENOTFOUND if nothing matches.
	Find(selector string) (Fragment, error)

	// FindAll returns all descendants matching the CSS selector.
	// An empty result is not an error.
	FindAll(selector string) ([]Fragment, error)

	// Text returns the fragment's text content, whitespace-trimmed.
	Text() (string, error)

	// Attr returns the value of the named attribute.
	// Returns ENOTFOUND if the attribute is not present.
	Attr(name string) (string, error)
}

// FragmentParser splits rendered directory markup into per-entry fragments.
type FragmentParser interface {
	ParseFragments(html string) ([]Fragment, error)
}

// ProviderExtractor turns directory fragments into normalized provider
// records. Implementations must be pure with respect to their input: no I/O,
// no clock or network dependence, and per-call dedup state only.
type ProviderExtractor interface {
	ExtractProviders(fragments []Fragment) []*Provider
}
