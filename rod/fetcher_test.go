//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/provdir/provdir"
	"github.com/provdir/provdir/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements provdir.Fetcher.
var _ provdir.Fetcher = (*rod.Fetcher)(nil)

// widgetPage renders a shadow DOM widget the way the directory site does:
// the host element is empty in the page source and the listing is attached
// to its shadow root by script.
const widgetPage = `<!DOCTYPE html>
<html>
<head><title>Find a Doctor</title></head>
<body>
<div id="loyal-search"></div>
<script>
	const host = document.getElementById('loyal-search');
	const root = host.attachShadow({mode: 'open'});
	root.innerHTML = '<div class="list-item-content">' +
		'<span itemprop="name">Dr. Jane Smith</span>' +
		'<a href="/provider/jane-smith"><span class="link_provider_display_name">Dr. Jane Smith</span></a>' +
		'</div>';
</script>
</body>
</html>`

const emptyWidgetPage = `<!DOCTYPE html>
<html>
<body>
<div id="loyal-search"></div>
<script>
	const root = document.getElementById('loyal-search').attachShadow({mode: 'open'});
	root.innerHTML = '<span class="text-md">No results found</span>';
</script>
</body>
</html>`

func TestFetcher_Fetch_ReturnsShadowRootMarkup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(widgetPage))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	assert.Contains(t, html, "list-item-content")
	assert.Contains(t, html, "Dr. Jane Smith")
}

func TestFetcher_Fetch_EmptyDirectoryStillRenders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(emptyWidgetPage))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	assert.Contains(t, html, "No results found")
}

func TestFetcher_Fetch_MissingWidget(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>no widget here</p></body></html>"))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // never respond
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
