// Package goquery adapts goquery selections to the provdir.Fragment lookup
// interface used by the extraction core.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/provdir/provdir"
)

// DefaultFragmentSelector matches one directory entry container in the
// rendered widget markup.
const DefaultFragmentSelector = "div.list-item-content"

// Ensure interface compliance at compile time.
var (
	_ provdir.Fragment       = (*Fragment)(nil)
	_ provdir.FragmentParser = (*Parser)(nil)
)

// Fragment wraps a goquery selection as a provdir.Fragment.
type Fragment struct {
	sel *goquery.Selection
}

// Find returns the first descendant matching the CSS selector.
func (f *Fragment) Find(selector string) (provdir.Fragment, error) {
	found := f.sel.Find(selector)
	if found.Length() == 0 {
		return nil, provdir.Errorf(provdir.ENOTFOUND, "no element matches %q", selector)
	}
	return &Fragment{sel: found.First()}, nil
}

// FindAll returns all descendants matching the CSS selector.
func (f *Fragment) FindAll(selector string) ([]provdir.Fragment, error) {
	var fragments []provdir.Fragment
	f.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, &Fragment{sel: sel})
	})
	return fragments, nil
}

// Text returns the selection's text content, whitespace-trimmed.
func (f *Fragment) Text() (string, error) {
	return strings.TrimSpace(f.sel.Text()), nil
}

// Attr returns the value of the named attribute.
func (f *Fragment) Attr(name string) (string, error) {
	value, ok := f.sel.Attr(name)
	if !ok {
		return "", provdir.Errorf(provdir.ENOTFOUND, "attribute %q not present", name)
	}
	return value, nil
}

// Parser splits rendered directory markup into per-entry fragments.
type Parser struct {
	selector string
}

// NewParser creates a Parser that locates entry containers with the given
// CSS selector. An empty selector uses DefaultFragmentSelector.
func NewParser(selector string) *Parser {
	if selector == "" {
		selector = DefaultFragmentSelector
	}
	return &Parser{selector: selector}
}

// ParseFragments parses the markup and returns one fragment per directory
// entry, in document order. Markup with no entry containers yields an empty
// result, not an error.
func (p *Parser) ParseFragments(html string) ([]provdir.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, provdir.Errorf(provdir.EINVALID, "failed to parse HTML: %v", err)
	}

	var fragments []provdir.Fragment
	doc.Find(p.selector).Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, &Fragment{sel: sel})
	})
	return fragments, nil
}
