package extract_test

import (
	"testing"

	"github.com/provdir/provdir"
	"github.com/provdir/provdir/extract"
	"github.com/provdir/provdir/goquery"
	"github.com/provdir/provdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://example.com"

// fullCard mirrors the markup of a fully populated directory entry.
const fullCard = `
<div class="list-item-content">
	<a href="/provider/123">
		<span itemprop="name">Dr. Jane Smith</span>
	</a>
	<span itemprop="medicalSpecialty">Cardiology</span>
	<div class="provider-image"><img src="https://cdn.example.com/jane.jpg"></div>
	<a data-testref="provider-cards-location" href="/locations">Main Clinic +1 other location</a>
	<span itemprop="name" color="gray_800">Andalusia Clinic</span>
	<span itemprop="streetAddress">100 Main St</span>
	<a href="tel:334-222-1111">Call</a>
	<div class="styles__Badge-sc-o9cga9-6"><span>Employed Provider</span></div>
	<div class="styles__Badge-sc-o9cga9-6"><span>Accepts New Patients</span></div>
	<div class="loyal-stars" itemprop="aggregateRating">
		<span itemprop="ratingValue">4.8 / 5</span>
		<span itemprop="ratingCount">(194)</span>
	</div>
</div>`

func newExtractor(t *testing.T) *extract.Extractor {
	t.Helper()
	e, err := extract.NewExtractor(testBaseURL, nil)
	require.NoError(t, err)
	return e
}

func parseCards(t *testing.T, html string) []provdir.Fragment {
	t.Helper()
	fragments, err := goquery.NewParser("").ParseFragments(html)
	require.NoError(t, err)
	return fragments
}

func TestExtractor_ExtractProviders(t *testing.T) {
	t.Parallel()

	t.Run("extracts every field from a fully populated entry", func(t *testing.T) {
		t.Parallel()

		providers := newExtractor(t).ExtractProviders(parseCards(t, fullCard))

		require.Len(t, providers, 1)
		p := providers[0]

		assert.Equal(t, "Dr. Jane Smith", p.Name)
		require.NotNil(t, p.Specialty)
		assert.Equal(t, "Cardiology", *p.Specialty)
		require.NotNil(t, p.ProfileURL)
		assert.Equal(t, "https://example.com/provider/123", *p.ProfileURL)
		require.NotNil(t, p.ImageURL)
		assert.Equal(t, "https://cdn.example.com/jane.jpg", *p.ImageURL)
		require.NotNil(t, p.Location)
		assert.Equal(t, "Andalusia Clinic: 100 Main St", *p.Location)
		require.NotNil(t, p.Phone)
		assert.Equal(t, "334-222-1111", *p.Phone)
		assert.True(t, p.HasMultipleLocations)
		assert.True(t, p.IsEmployedProvider)
		assert.True(t, p.IsAcceptingNewPatients)
		require.NotNil(t, p.Rating)
		assert.Equal(t, 4.8, *p.Rating)
		require.NotNil(t, p.RatingCount)
		assert.Equal(t, 194, *p.RatingCount)
	})

	t.Run("entry missing every optional element yields sentinel name and absent fields", func(t *testing.T) {
		t.Parallel()

		providers := newExtractor(t).ExtractProviders(parseCards(t, `<div class="list-item-content"></div>`))

		require.Len(t, providers, 1)
		p := providers[0]

		assert.Equal(t, provdir.UnknownProviderName, p.Name)
		assert.Nil(t, p.Specialty)
		assert.Nil(t, p.ProfileURL)
		assert.Nil(t, p.ImageURL)
		assert.Nil(t, p.Location)
		assert.Nil(t, p.Phone)
		assert.False(t, p.HasMultipleLocations)
		assert.False(t, p.IsEmployedProvider)
		assert.False(t, p.IsAcceptingNewPatients)
		assert.Nil(t, p.Rating)
		assert.Nil(t, p.RatingCount)
	})

	t.Run("deduplicates by name keeping the first occurrence", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. Jane Smith</span>
	<span itemprop="medicalSpecialty">Cardiology</span>
</div>
<div class="list-item-content">
	<span itemprop="name">Dr. Jane Smith</span>
	<span itemprop="medicalSpecialty">Dermatology</span>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		require.NotNil(t, providers[0].Specialty)
		assert.Equal(t, "Cardiology", *providers[0].Specialty)
	})

	t.Run("preserves input order for distinct names", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content"><span itemprop="name">Dr. Charlie</span></div>
<div class="list-item-content"><span itemprop="name">Dr. Alice</span></div>
<div class="list-item-content"><span itemprop="name">Dr. Bob</span></div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 3)
		assert.Equal(t, "Dr. Charlie", providers[0].Name)
		assert.Equal(t, "Dr. Alice", providers[1].Name)
		assert.Equal(t, "Dr. Bob", providers[2].Name)
	})

	t.Run("keeps already-absolute profile URLs unchanged", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<a href="https://other.example.org/provider/9"><span itemprop="name">Dr. A</span></a>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		require.NotNil(t, providers[0].ProfileURL)
		assert.Equal(t, "https://other.example.org/provider/9", *providers[0].ProfileURL)
	})

	t.Run("falls back to the provider display name span", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<a href="/provider/5"><span class="link_provider_display_name">Dr. Display Name</span></a>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.Equal(t, "Dr. Display Name", providers[0].Name)
	})

	t.Run("composes location from street address only", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<span itemprop="streetAddress">200 Oak Ave</span>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		require.NotNil(t, providers[0].Location)
		assert.Equal(t, "200 Oak Ave", *providers[0].Location)
	})

	t.Run("composes location from facility only", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<span itemprop="name" color="gray_800">Clinic West</span>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		require.NotNil(t, providers[0].Location)
		assert.Equal(t, "Clinic West", *providers[0].Location)
	})

	t.Run("location link without marker leaves multi-location false", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<a data-testref="provider-cards-location" href="/locations">Main Clinic</a>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.False(t, providers[0].HasMultipleLocations)
	})

	t.Run("badge markers set flags independently", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<div class="styles__Badge-sc-o9cga9-6"><span>Employed Provider</span></div>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.True(t, providers[0].IsEmployedProvider)
		assert.False(t, providers[0].IsAcceptingNewPatients)
	})

	t.Run("unparsable rating text leaves both rating fields absent", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<div class="loyal-stars" itemprop="aggregateRating">
		<span itemprop="ratingValue">N/A</span>
		<span itemprop="ratingCount">(194)</span>
	</div>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.Nil(t, providers[0].Rating)
		assert.Nil(t, providers[0].RatingCount)
	})

	t.Run("unparsable rating count leaves both rating fields absent", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<div class="loyal-stars" itemprop="aggregateRating">
		<span itemprop="ratingValue">4.2 / 5</span>
		<span itemprop="ratingCount">(many)</span>
	</div>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.Nil(t, providers[0].Rating)
		assert.Nil(t, providers[0].RatingCount)
	})

	t.Run("out-of-range rating is treated as absent", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<div class="loyal-stars" itemprop="aggregateRating">
		<span itemprop="ratingValue">9.9 / 10</span>
	</div>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		assert.Nil(t, providers[0].Rating)
	})

	t.Run("rating without a count node keeps the rating", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="list-item-content">
	<span itemprop="name">Dr. A</span>
	<div class="loyal-stars" itemprop="aggregateRating">
		<span itemprop="ratingValue">3.5 / 5</span>
	</div>
</div>`

		providers := newExtractor(t).ExtractProviders(parseCards(t, html))

		require.Len(t, providers, 1)
		require.NotNil(t, providers[0].Rating)
		assert.Equal(t, 3.5, *providers[0].Rating)
		assert.Nil(t, providers[0].RatingCount)
	})

	t.Run("failing fragment is skipped without aborting the batch", func(t *testing.T) {
		t.Parallel()

		broken := &mock.Fragment{
			FindFn: func(selector string) (provdir.Fragment, error) {
				return nil, provdir.Errorf(provdir.ENOTFOUND, "no element matches %q", selector)
			},
			FindAllFn: func(selector string) ([]provdir.Fragment, error) {
				return nil, provdir.Errorf(provdir.EINTERNAL, "stale element handle")
			},
		}
		good := parseCards(t, `<div class="list-item-content"><span itemprop="name">Dr. Good</span></div>`)

		providers := newExtractor(t).ExtractProviders([]provdir.Fragment{broken, good[0]})

		require.Len(t, providers, 1)
		assert.Equal(t, "Dr. Good", providers[0].Name)
	})

	t.Run("dedup state does not leak across calls", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t)
		cards := parseCards(t, `<div class="list-item-content"><span itemprop="name">Dr. Same</span></div>`)

		first := e.ExtractProviders(cards)
		second := e.ExtractProviders(cards)

		assert.Len(t, first, 1)
		assert.Len(t, second, 1)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newExtractor(t).ExtractProviders(nil))
	})
}

func TestNewExtractor_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := extract.NewExtractor("://bad", nil)
	require.Error(t, err)
	assert.Equal(t, provdir.EINVALID, provdir.ErrorCode(err))
}
