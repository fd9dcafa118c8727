package routes

import (
	"fmt"
	"strings"
)

// Router resolves paths against a compiled route table.
// It is immutable after New and safe for concurrent use.
type Router[C any] struct {
	entries  []Entry[C]
	patterns []*pattern
	names    map[string]int
}

// New compiles and validates table. Paths must be unique by shape, names must
// be unique when present, and redirect targets must be absolute paths.
// The table is copied; later changes to the slice do not affect the router.
func New[C any](table []Entry[C]) (*Router[C], error) {
	r := &Router[C]{
		entries:  make([]Entry[C], 0, len(table)),
		patterns: make([]*pattern, 0, len(table)),
		names:    make(map[string]int),
	}

	shapes := make(map[string]string, len(table))

	for _, e := range table {
		p, err := compilePattern(e.Path)
		if err != nil {
			return nil, err
		}

		if prev, exists := shapes[p.shape()]; exists {
			return nil, fmt.Errorf("%w: %q conflicts with %q", ErrDuplicatePath, e.Path, prev)
		}
		shapes[p.shape()] = e.Path

		if e.Name != "" {
			if _, exists := r.names[e.Name]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Name)
			}
			r.names[e.Name] = len(r.entries)
		}

		if e.IsRedirect() {
			if !strings.HasPrefix(e.Redirect, "/") {
				return nil, fmt.Errorf("%w: %q redirects to relative target %q", ErrInvalidEntry, e.Path, e.Redirect)
			}
			if e.Props {
				return nil, fmt.Errorf("%w: %q cannot both redirect and forward props", ErrInvalidEntry, e.Path)
			}
		}

		r.entries = append(r.entries, e)
		r.patterns = append(r.patterns, p)
	}

	return r, nil
}

// Resolve returns the first entry, in declaration order, whose pattern matches
// path. path is in escaped form, as from url.URL.EscapedPath or URL; segments
// are split before unescaping, so param values may contain "/". A trailing
// slash is ignored. Empty interior segments ("/a//b") never match.
func (r *Router[C]) Resolve(path string) (Match[C], error) {
	parts, ok := splitRequest(path)
	if !ok {
		return Match[C]{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	for i, p := range r.patterns {
		if params, ok := p.match(parts); ok {
			return Match[C]{Entry: r.entries[i], Params: params}, nil
		}
	}
	return Match[C]{}, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// URL builds the path of the named entry, substituting params into its
// dynamic segments.
func (r *Router[C]) URL(name string, params map[string]string) (string, error) {
	i, ok := r.names[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return r.patterns[i].build(params)
}

// Lookup returns the entry registered under name.
func (r *Router[C]) Lookup(name string) (Entry[C], bool) {
	i, ok := r.names[name]
	if !ok {
		var zero Entry[C]
		return zero, false
	}
	return r.entries[i], true
}

// Entries returns a copy of the table in declaration order.
func (r *Router[C]) Entries() []Entry[C] {
	out := make([]Entry[C], len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Router[C]) Len() int {
	return len(r.entries)
}
