package routes

import (
	"fmt"
	"net/url"
	"strings"
)

const paramPrefix = ':'

type segment struct {
	value   string
	isParam bool
}

// pattern is a compiled Entry.Path.
type pattern struct {
	raw      string
	segments []segment
}

func compilePattern(raw string) (*pattern, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with /", ErrInvalidPattern, raw)
	}

	parts := splitPath(raw)
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]struct{})

	for _, part := range parts {
		if part[0] != paramPrefix {
			segments = append(segments, segment{value: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, raw)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, raw, name)
		}
		seen[name] = struct{}{}
		segments = append(segments, segment{value: name, isParam: true})
	}

	return &pattern{raw: raw, segments: segments}, nil
}

// shape identifies patterns that match the same set of paths regardless of
// parameter names: "/a/:id" and "/a/:key" share a shape.
func (p *pattern) shape() string {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.isParam {
			b.WriteByte(paramPrefix)
			continue
		}
		b.WriteString(seg.value)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func (p *pattern) match(parts []string) (Params, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range p.segments {
		if seg.isParam {
			params = append(params, Param{Key: seg.value, Value: parts[i]})
			continue
		}
		if seg.value != parts[i] {
			return nil, false
		}
	}
	return params, true
}

func (p *pattern) build(params map[string]string) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if !seg.isParam {
			b.WriteString(seg.value)
			continue
		}
		v, ok := params[seg.value]
		if !ok || v == "" {
			return "", fmt.Errorf("%w: %q requires %q", ErrMissingParam, p.raw, seg.value)
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}

// splitRequest splits an escaped request path on its literal slashes and
// unescapes each segment, so an encoded "%2F" stays inside one segment.
// A single trailing slash is ignored. Empty interior segments and invalid
// escapes report false.
func splitRequest(escaped string) ([]string, bool) {
	if escaped == "" || escaped[0] != '/' {
		return nil, false
	}
	if escaped == "/" {
		return nil, true
	}

	trimmed := strings.TrimSuffix(escaped[1:], "/")
	if trimmed == "" {
		return nil, false
	}

	raw := strings.Split(trimmed, "/")
	parts := make([]string, len(raw))
	for i, seg := range raw {
		if seg == "" {
			return nil, false
		}
		v, err := url.PathUnescape(seg)
		if err != nil {
			return nil, false
		}
		parts[i] = v
	}
	return parts, true
}

// splitPath returns the non-empty segments of a pattern. Leading, trailing and
// repeated slashes produce no segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	maxSegments := 1
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			maxSegments++
		}
	}

	segments := make([]string, 0, maxSegments)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}
