// Package rod provides browser-automated fetching of provider directory
// pages using Chrome. The directory widget renders its listing inside a
// shadow DOM, so a plain HTTP GET returns an empty host element; a real
// browser is needed to obtain the rendered markup.
package rod

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
	"github.com/provdir/provdir"
)

// Default selectors for the directory widget.
const (
	// DefaultWidgetSelector locates the shadow DOM host element the
	// directory widget renders into.
	DefaultWidgetSelector = "#loyal-search"

	// DefaultReadySelector matches inside the shadow root once the widget
	// has finished rendering: either a result card or the empty-state
	// message. A CSS selector list lets one wait cover both outcomes.
	DefaultReadySelector = "div.list-item-content, span.text-md"
)

// Ensure Fetcher implements provdir.Fetcher at compile time.
var _ provdir.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves the rendered shadow DOM markup of directory pages using
// Chrome browser automation. The underlying browser is recycled periodically
// to keep memory in check on long scrapes.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager        *BrowserManager
	widgetSelector string
	readySelector  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithWidgetSelector overrides the shadow DOM host selector.
func WithWidgetSelector(selector string) Option {
	return func(f *Fetcher) {
		f.widgetSelector = selector
	}
}

// WithReadySelector overrides the selector that signals the widget has
// rendered.
func WithReadySelector(selector string) Option {
	return func(f *Fetcher) {
		f.readySelector = selector
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:        manager,
		widgetSelector: DefaultWidgetSelector,
		readySelector:  DefaultReadySelector,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL, waits for the directory widget to render, and
// returns the markup of its shadow root.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	host, err := page.Element(f.widgetSelector)
	if err != nil {
		return "", fmt.Errorf("directory widget %q not found: %w", f.widgetSelector, err)
	}

	shadow, err := host.ShadowRoot()
	if err != nil {
		return "", fmt.Errorf("directory widget has no shadow root: %w", err)
	}

	// Block until the widget has rendered either results or its
	// empty-state message.
	if _, err := shadow.Element(f.readySelector); err != nil {
		return "", fmt.Errorf("directory widget did not render: %w", err)
	}

	html, err := shadow.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
