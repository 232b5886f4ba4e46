// Package extract implements the provider record extraction core. It turns
// per-entry directory fragments into normalized provider records, tolerant of
// missing fields, malformed text, and partial markup.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/provdir/provdir"
)

// Selectors for the sub-elements of one directory entry.
const (
	SelectorName          = "span[itemprop='name'], a span.link_provider_display_name"
	SelectorProfileURL    = "a[href*='/provider']"
	SelectorSpecialty     = "span[itemprop='medicalSpecialty']"
	SelectorImage         = "div.provider-image img"
	SelectorFacility      = "span[itemprop='name'][color='gray_800']"
	SelectorStreetAddress = "span[itemprop='streetAddress']"
	SelectorLocationLink  = "a[data-testref='provider-cards-location']"
	SelectorPhone         = "a[href^='tel:']"
	SelectorBadge         = "div.styles__Badge-sc-o9cga9-6 span"
	SelectorRating        = "div.loyal-stars[itemprop='aggregateRating']"
	SelectorRatingValue   = "span[itemprop='ratingValue']"
	SelectorRatingCount   = "span[itemprop='ratingCount']"
)

// Text markers tested by substring match.
const (
	markerMultiLocation = "+1 other location"
	markerEmployed      = "Employed Provider"
	markerNewPatients   = "Accepts New Patients"
)

const telScheme = "tel:"

// Ensure Extractor implements provdir.ProviderExtractor at compile time.
var _ provdir.ProviderExtractor = (*Extractor)(nil)

// rule binds one record field to its extraction step. Rules are evaluated
// independently: a lookup miss or parse failure in one rule never affects
// the others.
type rule struct {
	field string
	apply func(frag provdir.Fragment, p *provdir.Provider) error
}

// Extractor extracts provider records from directory fragments.
// It performs no I/O; fragments are handed to it already rendered.
type Extractor struct {
	base   *url.URL
	logger *slog.Logger
	rules  []rule
}

// NewExtractor creates an Extractor that resolves relative profile URLs
// against baseURL. The logger is the extractor's diagnostics sink; pass nil
// to discard diagnostics.
func NewExtractor(baseURL string, logger *slog.Logger) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, provdir.Errorf(provdir.EINVALID, "invalid base URL: %v", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Extractor{base: base, logger: logger}
	e.rules = []rule{
		{"name", e.extractName},
		{"profile_url", e.extractProfileURL},
		{"specialty", e.extractSpecialty},
		{"image_url", e.extractImageURL},
		{"location", e.extractLocation},
		{"multi_location", e.extractMultiLocation},
		{"phone", e.extractPhone},
		{"badges", e.extractBadges},
		{"rating", e.extractRating},
	}
	return e, nil
}

// ExtractProviders builds one candidate record per fragment, in input order,
// and deduplicates the batch by name (first occurrence wins). A fragment that
// fails outside the per-field fallback policy is logged and skipped; it never
// aborts the batch. Dedup state is local to a single call.
func (e *Extractor) ExtractProviders(fragments []provdir.Fragment) []*provdir.Provider {
	seen := make(map[string]bool)
	var providers []*provdir.Provider

	for i, frag := range fragments {
		p, err := e.buildRecord(frag)
		if err != nil {
			e.logger.Warn("skipping directory entry", "index", i, "err", err)
			continue
		}
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		providers = append(providers, p)
	}

	return providers
}

// buildRecord evaluates every rule against one fragment. Field-level misses
// are absorbed by the rules themselves; only unexpected lookup errors surface
// here and fail the whole fragment.
func (e *Extractor) buildRecord(frag provdir.Fragment) (*provdir.Provider, error) {
	p := &provdir.Provider{Name: provdir.UnknownProviderName}
	for _, r := range e.rules {
		if err := r.apply(frag, p); err != nil {
			return nil, fmt.Errorf("%s: %w", r.field, err)
		}
	}
	return p, nil
}

func (e *Extractor) extractName(frag provdir.Fragment, p *provdir.Provider) error {
	text, ok, err := findText(frag, SelectorName)
	if err != nil {
		return err
	}
	if ok && text != "" {
		p.Name = text
	}
	return nil
}

func (e *Extractor) extractProfileURL(frag provdir.Fragment, p *provdir.Provider) error {
	href, ok, err := findAttr(frag, SelectorProfileURL, "href")
	if err != nil || !ok || href == "" {
		return err
	}
	if resolved := resolveURL(e.base, href); resolved != "" {
		p.ProfileURL = &resolved
	}
	return nil
}

func (e *Extractor) extractSpecialty(frag provdir.Fragment, p *provdir.Provider) error {
	text, ok, err := findText(frag, SelectorSpecialty)
	if err != nil {
		return err
	}
	if ok && text != "" {
		p.Specialty = &text
	}
	return nil
}

func (e *Extractor) extractImageURL(frag provdir.Fragment, p *provdir.Provider) error {
	src, ok, err := findAttr(frag, SelectorImage, "src")
	if err != nil {
		return err
	}
	if ok && src != "" {
		p.ImageURL = &src
	}
	return nil
}

// extractLocation composes the location from the facility name and street
// address: both joined as "facility: street", else whichever is present.
func (e *Extractor) extractLocation(frag provdir.Fragment, p *provdir.Provider) error {
	facility, _, err := findText(frag, SelectorFacility)
	if err != nil {
		return err
	}
	street, _, err := findText(frag, SelectorStreetAddress)
	if err != nil {
		return err
	}

	var location string
	switch {
	case facility != "" && street != "":
		location = facility + ": " + street
	case street != "":
		location = street
	case facility != "":
		location = facility
	default:
		return nil
	}
	p.Location = &location
	return nil
}

func (e *Extractor) extractMultiLocation(frag provdir.Fragment, p *provdir.Provider) error {
	text, ok, err := findText(frag, SelectorLocationLink)
	if err != nil {
		return err
	}
	if ok && strings.Contains(text, markerMultiLocation) {
		p.HasMultipleLocations = true
	}
	return nil
}

func (e *Extractor) extractPhone(frag provdir.Fragment, p *provdir.Provider) error {
	href, ok, err := findAttr(frag, SelectorPhone, "href")
	if err != nil || !ok {
		return err
	}
	if phone := strings.TrimPrefix(href, telScheme); phone != "" {
		p.Phone = &phone
	}
	return nil
}

// extractBadges tests each badge's text for two independent markers. Both
// flags may end up true, both may stay false.
func (e *Extractor) extractBadges(frag provdir.Fragment, p *provdir.Provider) error {
	badges, err := frag.FindAll(SelectorBadge)
	if err != nil {
		return err
	}
	for _, badge := range badges {
		text, err := badge.Text()
		if err != nil {
			return err
		}
		if strings.Contains(text, markerEmployed) {
			p.IsEmployedProvider = true
		}
		if strings.Contains(text, markerNewPatients) {
			p.IsAcceptingNewPatients = true
		}
	}
	return nil
}

// extractRating reads the nested rating container. A parse failure anywhere
// in the chain leaves both rating and rating count absent; a partial result
// is never produced.
func (e *Extractor) extractRating(frag provdir.Fragment, p *provdir.Provider) error {
	container, err := frag.Find(SelectorRating)
	if err != nil {
		if provdir.ErrorCode(err) == provdir.ENOTFOUND {
			return nil
		}
		return err
	}

	valueText, ok, err := findText(container, SelectorRatingValue)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	rating, ok := ParseRating(valueText)
	if !ok {
		return nil
	}

	countText, countFound, err := findText(container, SelectorRatingCount)
	if err != nil {
		return err
	}
	if countFound {
		count, ok := ParseRatingCount(countText)
		if !ok {
			return nil
		}
		p.RatingCount = &count
	}
	p.Rating = &rating
	return nil
}

// findText returns the trimmed text of the first descendant matching the
// selector. A lookup miss is reported as ok=false, not an error.
func findText(frag provdir.Fragment, selector string) (text string, ok bool, err error) {
	el, err := frag.Find(selector)
	if err != nil {
		if provdir.ErrorCode(err) == provdir.ENOTFOUND {
			return "", false, nil
		}
		return "", false, err
	}
	text, err = el.Text()
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}

// findAttr returns the named attribute of the first descendant matching the
// selector. Missing elements and missing attributes are reported as ok=false.
func findAttr(frag provdir.Fragment, selector, name string) (value string, ok bool, err error) {
	el, err := frag.Find(selector)
	if err != nil {
		if provdir.ErrorCode(err) == provdir.ENOTFOUND {
			return "", false, nil
		}
		return "", false, err
	}
	value, err = el.Attr(name)
	if err != nil {
		if provdir.ErrorCode(err) == provdir.ENOTFOUND {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// resolveURL resolves href against the base URL. Already-absolute URLs pass
// through unchanged. Returns empty string when href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}
