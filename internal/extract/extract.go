// Package extract resolves track page URLs into normalized media records
// by calling the hosting site's JSON API.
package extract

import (
	"context"
	"net/http"

	"ponyget/internal/media"
)

// Extractor resolves a page URL into a track record.
type Extractor interface {
	// Name returns the extractor name (e.g., "ponyfm").
	Name() string

	// Suitable reports whether the extractor handles the URL.
	Suitable(rawURL string) bool

	// Extract performs the lookup. It makes exactly one outbound request.
	Extract(ctx context.Context, rawURL string) (*media.Track, error)
}

// Registry dispatches URLs to the first suitable extractor.
type Registry struct {
	extractors []Extractor
}

// New returns a registry of the built-in extractors sharing client.
// An empty apiBase selects the public Pony.fm API.
func New(client *http.Client, apiBase string) *Registry {
	return NewRegistry(NewPonyFM(client, apiBase))
}

// NewRegistry builds a registry from explicit extractors, checked in order.
func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// ForURL returns the extractor for rawURL or a *NoMatchError.
func (r *Registry) ForURL(rawURL string) (Extractor, error) {
	for _, e := range r.extractors {
		if e.Suitable(rawURL) {
			return e, nil
		}
	}
	return nil, &NoMatchError{URL: rawURL}
}

// Extract dispatches rawURL and runs the matching extractor.
func (r *Registry) Extract(ctx context.Context, rawURL string) (*media.Track, error) {
	e, err := r.ForURL(rawURL)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, rawURL)
}
